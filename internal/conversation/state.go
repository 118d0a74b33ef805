package conversation

import (
	"context"

	"restaurant-chatbot/internal/models"
)

// Phase is the discrete stage of a customer conversation.
type Phase string

const (
	PhaseIdle            Phase = "idle"
	PhaseViewingMenu     Phase = "viewing_menu"
	PhaseAwaitingAddress Phase = "waiting_address"
)

// State is the per-customer dialogue state tracked between the first message
// and order completion or cancellation.
type State struct {
	Phase Phase `json:"phase"`

	// Menu is the exact ordered list last shown to or fetched for the
	// customer. Numeric selections resolve against this snapshot, never
	// against a live query, so that positions stay stable between display
	// and selection.
	Menu []models.MenuItem `json:"menu"`

	Selected []models.SelectedLine `json:"selected"`

	// CustomerName and Notes distinguish "absent" from empty text.
	CustomerName *string `json:"customer_name,omitempty"`
	Notes        *string `json:"notes,omitempty"`
}

// NewState returns a fresh idle conversation.
func NewState() *State {
	return &State{Phase: PhaseIdle}
}

// Store maps customer identifiers to conversation state. Entries are created
// lazily on first contact and must be removed on cancellation, completion,
// or an unrecoverable failure while finalizing an order.
//
// Implementations guarantee per-customer isolation: concurrent turns for
// different customers never interfere. The design assumes at most one
// in-flight turn per customer at a time.
type Store interface {
	GetOrCreate(ctx context.Context, customerID string) (*State, error)
	Save(ctx context.Context, customerID string, state *State) error
	Delete(ctx context.Context, customerID string) error
}
