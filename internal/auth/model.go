package auth

import (
	"time"

	"github.com/google/uuid"
)

// APIKey represents a row in the api_keys table. The raw key is never
// stored; only its bcrypt hash and an 8-character lookup prefix.
type APIKey struct {
	ID        uuid.UUID
	Name      string
	KeyPrefix string
	KeyHash   string
	Revoked   bool
	CreatedAt time.Time
}

// Identity is stored in the request context after authentication.
type Identity struct {
	KeyID   uuid.UUID
	KeyName string
}
