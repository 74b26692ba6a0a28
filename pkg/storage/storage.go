package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/oarkflow/squealx"

	"github.com/oarkflow/authforms/pkg/models"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrEmailTaken   = errors.New("email already registered")
)

// DatabaseType represents the type of database
type DatabaseType string

const (
	MySQL      DatabaseType = "mysql"
	PostgreSQL DatabaseType = "postgres"
	SQLite     DatabaseType = "sqlite"
)

type DatabaseStorage struct {
	db     *squealx.DB
	dbType DatabaseType
}

func NewDatabaseStorage(db *squealx.DB) (*DatabaseStorage, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	storage := &DatabaseStorage{
		db:     db,
		dbType: DatabaseType(db.DriverName()),
	}
	if err := storage.createTables(); err != nil {
		return nil, fmt.Errorf("failed to create database schema: %w", err)
	}
	return storage, nil
}

func (d *DatabaseStorage) createTables() error {
	var queries []string
	switch d.dbType {
	case MySQL:
		queries = mysqlSchema
	case PostgreSQL:
		queries = postgresSchema
	case SQLite:
		queries = sqliteSchema
	default:
		return fmt.Errorf("unsupported database type: %s", d.dbType)
	}
	for _, query := range queries {
		if _, err := d.db.Exec(query); err != nil {
			return fmt.Errorf("failed to execute schema query: %w", err)
		}
	}
	return nil
}

// created_at holds unix seconds so every driver scans it the same way.
var mysqlSchema = []string{
	`CREATE TABLE IF NOT EXISTS usuarios (
		user_id BIGINT PRIMARY KEY,
		nombre VARCHAR(255) NOT NULL,
		apellido VARCHAR(255) NOT NULL,
		email VARCHAR(255) UNIQUE NOT NULL,
		password_hash TEXT NOT NULL,
		created_at BIGINT NOT NULL,
		INDEX idx_usuarios_email (email)
	) ENGINE=InnoDB`,
}

var postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS usuarios (
		user_id BIGINT PRIMARY KEY,
		nombre VARCHAR(255) NOT NULL,
		apellido VARCHAR(255) NOT NULL,
		email VARCHAR(255) UNIQUE NOT NULL,
		password_hash TEXT NOT NULL,
		created_at BIGINT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_usuarios_email ON usuarios(email)`,
}

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS usuarios (
		user_id INTEGER PRIMARY KEY,
		nombre TEXT NOT NULL,
		apellido TEXT NOT NULL,
		email TEXT UNIQUE NOT NULL,
		password_hash TEXT NOT NULL,
		created_at INTEGER NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_usuarios_email ON usuarios(email)`,
}

type userRow struct {
	UserID       int64  `db:"user_id"`
	Nombre       string `db:"nombre"`
	Apellido     string `db:"apellido"`
	Email        string `db:"email"`
	PasswordHash string `db:"password_hash"`
	CreatedAt    int64  `db:"created_at"`
}

func (r userRow) user() models.User {
	return models.User{
		UserID:       r.UserID,
		Nombre:       r.Nombre,
		Apellido:     r.Apellido,
		Email:        r.Email,
		PasswordHash: r.PasswordHash,
		CreatedAt:    time.Unix(r.CreatedAt, 0),
	}
}

// CreateUser inserts user, lower-casing the email. It fails with
// ErrEmailTaken when the address is already registered.
func (d *DatabaseStorage) CreateUser(user models.User) error {
	email := strings.ToLower(strings.TrimSpace(user.Email))
	exists, err := d.EmailExists(email)
	if err != nil {
		return err
	}
	if exists {
		return ErrEmailTaken
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	query := `
		INSERT INTO usuarios (user_id, nombre, apellido, email, password_hash, created_at)
		VALUES (:user_id, :nombre, :apellido, :email, :password_hash, :created_at)`
	params := map[string]any{
		"user_id":       user.UserID,
		"nombre":        user.Nombre,
		"apellido":      user.Apellido,
		"email":         email,
		"password_hash": user.PasswordHash,
		"created_at":    user.CreatedAt.Unix(),
	}
	if _, err := d.db.NamedExec(query, params); err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (d *DatabaseStorage) GetUserByEmail(email string) (models.User, error) {
	query := `SELECT user_id, nombre, apellido, email, password_hash, created_at FROM usuarios WHERE email = :email`
	params := map[string]any{
		"email": strings.ToLower(strings.TrimSpace(email)),
	}
	return d.getUser(query, params)
}

func (d *DatabaseStorage) GetUserByID(userID int64) (models.User, error) {
	query := `SELECT user_id, nombre, apellido, email, password_hash, created_at FROM usuarios WHERE user_id = :user_id`
	params := map[string]any{
		"user_id": userID,
	}
	return d.getUser(query, params)
}

func (d *DatabaseStorage) getUser(query string, params map[string]any) (models.User, error) {
	var row userRow
	if err := d.db.NamedGet(&row, query, params); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrUserNotFound
		}
		return models.User{}, err
	}
	return row.user(), nil
}

func (d *DatabaseStorage) EmailExists(email string) (bool, error) {
	query := `SELECT COUNT(*) FROM usuarios WHERE email = :email`
	params := map[string]any{
		"email": strings.ToLower(strings.TrimSpace(email)),
	}
	var count int
	if err := d.db.NamedGet(&count, query, params); err != nil {
		return false, err
	}
	return count > 0, nil
}

func (d *DatabaseStorage) Close() error {
	return d.db.Close()
}
