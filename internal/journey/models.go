package journey

import (
	"time"

	"importintel/internal/intelligence"
	"importintel/internal/resolver"
)

// Step is the session state machine. A session starts at the lookup step
// and advances to journey once a destination is committed; it never moves
// backwards.
type Step string

const (
	StepLookup  Step = "lookup"
	StepJourney Step = "journey"
)

// Session is a resumable import investigation. The token is the only
// credential; anyone holding it can read and advance the session.
type Session struct {
	Token           string                   `json:"token"`
	OriginalQuery   string                   `json:"original_query"`
	Vehicle         resolver.VehicleIdentity `json:"vehicle"`
	ConfidenceScore int                      `json:"confidence_score"`
	CurrentStep     Step                     `json:"current_step"`
	// Destination and State are set when the session advances to the
	// journey step.
	Destination string                     `json:"destination,omitempty"`
	State       *intelligence.Intelligence `json:"state,omitempty"`
	// Active is cleared by the idle sweep, never by a user action. Inactive
	// sessions stay readable by token but are excluded from reconstruction
	// and listings.
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"created_at"`
	LastAccessed time.Time `json:"last_accessed"`
}

// ReconstructParams are the partial identifiers a client can offer when it
// lost its token. Matching is best-effort over recent active sessions on the
// vehicle fields only; Destination, when present, advances the matched
// session instead of constraining the match.
type ReconstructParams struct {
	Make        string
	Model       string
	ChassisCode string
	Destination string
}

// Empty reports whether the params carry nothing to match or mint on.
func (p ReconstructParams) Empty() bool {
	return p.Make == "" && p.Model == "" && p.ChassisCode == ""
}
