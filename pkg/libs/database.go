package libs

import (
	"fmt"

	"github.com/oarkflow/squealx"
	"github.com/oarkflow/squealx/connection"
	"github.com/oarkflow/squealx/drivers/sqlite"

	"github.com/oarkflow/authforms/pkg/objects"
)

// MemoryDriver keeps users in process memory instead of a database.
const MemoryDriver = "memory"

// OpenDatabase connects to the database described by the db.* settings.
func OpenDatabase() (*squealx.DB, error) {
	driver := objects.Config.GetString("db.driver", "sqlite")
	switch driver {
	case "sqlite":
		db, err := sqlite.Open(objects.Config.GetString("db.path", "usuarios.db"), "sqlite")
		if err != nil {
			return nil, fmt.Errorf("open sqlite: %w", err)
		}
		return db, nil
	case MemoryDriver:
		return nil, fmt.Errorf("driver %q has no database connection", driver)
	}
	db, _, err := connection.FromConfig(squealx.Config{
		Driver:   driver,
		Host:     objects.Config.GetString("db.host"),
		Port:     objects.Config.GetInt("db.port"),
		Username: objects.Config.GetString("db.username"),
		Password: objects.Config.GetString("db.password"),
		Database: objects.Config.GetString("db.database"),
	})
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", driver, err)
	}
	return db, nil
}
