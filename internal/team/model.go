package team

import (
	"time"

	"github.com/google/uuid"
)

// Team represents a row in the teams table.
type Team struct {
	ID          uuid.UUID
	Name        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Member represents a row in the members table.
type Member struct {
	ID        uuid.UUID
	TeamID    uuid.UUID
	Name      string
	Email     string
	Role      *string
	CreatedAt time.Time
}
