package domain

import (
	"strings"
	"time"
)

// MaxListItems caps every listing, regardless of backend.
const MaxListItems = 100

// Item is a named record stored in the items table.
type Item struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

// MatchesQuery reports whether the item name contains q, ignoring case.
// An empty query matches everything.
func (i Item) MatchesQuery(q string) bool {
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(i.Name), strings.ToLower(q))
}

// ValidateItemName checks the only client-supplied field of an Item.
func ValidateItemName(name string) error {
	if name == "" {
		return NewValidationError("name", "name is required")
	}
	return nil
}

// NormalizeQuery lower-cases and trims a list filter.
func NormalizeQuery(q string) string {
	return strings.ToLower(strings.TrimSpace(q))
}

// ConnectionState is the lifecycle state of the shared database handle.
type ConnectionState string

const (
	ConnUnconfigured ConnectionState = "UNCONFIGURED"
	ConnInitializing ConnectionState = "INITIALIZING"
	ConnReady        ConnectionState = "READY"
	ConnFailed       ConnectionState = "FAILED"
)

// AllConnectionStates lists every state in lifecycle order.
var AllConnectionStates = []ConnectionState{ConnUnconfigured, ConnInitializing, ConnReady, ConnFailed}
