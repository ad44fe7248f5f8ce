package sprint

import (
	"time"

	"github.com/google/uuid"
)

// Sprint represents a row in the sprints table.
type Sprint struct {
	ID        uuid.UUID
	TeamID    uuid.UUID
	Name      string
	StartDate time.Time
	EndDate   time.Time
	Velocity  *float64
	CreatedAt time.Time
}
