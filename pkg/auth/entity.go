package auth

import (
	"time"

	"github.com/google/uuid"
)

// Account holds login credentials and points at the profile the user acts as.
type Account struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	ProfileID    string
	CreatedAt    time.Time
}
