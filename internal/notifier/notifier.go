// Package notifier carries workflow transition events to the surrounding
// collaborators (email dispatch, dashboards). Delivery is fire-and-forget:
// a lost event never fails the transition that produced it.
package notifier

import "context"

// Event types published on workflow transitions.
const (
	EventPropositionCreated   = "proposition.created"
	EventPropositionResponded = "proposition.responded"
	EventIntroRequestCreated  = "intro_request.created"
	EventIntroRequestResolved = "intro_request.resolved"
	EventTransferCreated      = "transfer.created"
	EventTransferResolved     = "transfer.resolved"
)

type Event struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

type Notifier interface {
	Publish(ctx context.Context, event Event)
}

// Nop discards every event. Used in tests and when redis is not configured.
type Nop struct{}

func (Nop) Publish(context.Context, Event) {}
