package handler

import (
	"time"

	"importintel/internal/journey"
)

// SessionResponse is the full session view returned to the token holder.
type SessionResponse struct {
	Session       journey.Session `json:"session"`
	Reconstructed *bool           `json:"reconstructed,omitempty"`
}

// RecentQueryResponse is one entry of the activity feed. It deliberately
// omits the token: the feed is public and the token is the session's only
// credential.
type RecentQueryResponse struct {
	Query        string    `json:"query"`
	Make         string    `json:"make"`
	Model        string    `json:"model"`
	CurrentStep  string    `json:"current_step"`
	Destination  string    `json:"destination,omitempty"`
	LastAccessed time.Time `json:"last_accessed"`
}

// FromSessions converts sessions into feed entries.
func FromSessions(sessions []journey.Session) []RecentQueryResponse {
	feed := make([]RecentQueryResponse, 0, len(sessions))
	for _, session := range sessions {
		feed = append(feed, RecentQueryResponse{
			Query:        session.OriginalQuery,
			Make:         session.Vehicle.Make,
			Model:        session.Vehicle.Model,
			CurrentStep:  string(session.CurrentStep),
			Destination:  session.Destination,
			LastAccessed: session.LastAccessed,
		})
	}
	return feed
}
