package contracts

import (
	"github.com/oarkflow/authforms/pkg/models"
)

// Storage is the user directory behind the verification endpoints.
type Storage interface {
	CreateUser(user models.User) error
	GetUserByEmail(email string) (models.User, error)
	GetUserByID(userID int64) (models.User, error)
	EmailExists(email string) (bool, error)
}
