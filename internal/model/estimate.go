package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/sustainamine/sustainamine/internal/estimation"
)

// Estimate is one computed estimate together with the context it was requested with.
type Estimate struct {
	ID        uuid.UUID
	CreatedAt time.Time
	// State is the canonical extraction state, empty when not given.
	State  string
	Input  estimation.Input
	Result estimation.Result
}
