package models

import (
	"time"

	"github.com/google/uuid"
)

// Admin is the privileged identity that manages camps and donor records.
// PasswordHash is a bcrypt hash; the plaintext never leaves the login path.
type Admin struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}
