package domain

import "time"

// PropositionStatus is the stored per-recipient status. Expiry is never
// stored; it is computed from elapsed time so a late response and a clock
// skew cannot disagree about what is persisted.
type PropositionStatus string

const (
	PropositionPending  PropositionStatus = "pending"
	PropositionAccepted PropositionStatus = "accepted"
	PropositionRejected PropositionStatus = "rejected"
	PropositionExpired  PropositionStatus = "expired"
)

// Proposition is one directed introduction message sent to exactly one
// recipient, either the reference person or the candidate. Two rows sharing
// (reference, candidate, message) form a group; the group status is derived,
// never stored.
type Proposition struct {
	ID              int               `json:"id" db:"id"`
	ReferenceID     int               `json:"reference_id" db:"reference_id"`
	CandidateID     int               `json:"candidate_id" db:"candidate_id"`
	RecipientID     int               `json:"recipient_id" db:"recipient_id"`
	SenderID        int               `json:"sender_id" db:"sender_id"`
	Message         string            `json:"message" db:"message"`
	Status          PropositionStatus `json:"status" db:"status"`
	ResponseMessage *string           `json:"response_message" db:"response_message"`
	RespondedAt     *time.Time        `json:"responded_at" db:"responded_at"`
	CreatedAt       time.Time         `json:"created_at" db:"created_at"`
}

// IsExpired reports whether an unanswered proposition has outlived the TTL.
func (p *Proposition) IsExpired(now time.Time, ttl time.Duration) bool {
	return p.Status == PropositionPending && now.Sub(p.CreatedAt) >= ttl
}

// EffectiveStatus is the stored status with expiry applied on top.
func (p *Proposition) EffectiveStatus(now time.Time, ttl time.Duration) PropositionStatus {
	if p.IsExpired(now, ttl) {
		return PropositionExpired
	}
	return p.Status
}

// RecipientIsReference reports which party the row addresses.
func (p *Proposition) RecipientIsReference() bool {
	return p.RecipientID == p.ReferenceID
}

// GroupStatus derives the aggregate status of a proposition group:
// rejected beats expired beats pending; accepted only when both expected
// recipients exist and accepted.
func GroupStatus(members []*Proposition, now time.Time, ttl time.Duration) PropositionStatus {
	if len(members) == 0 {
		return PropositionPending
	}
	var (
		anyExpired   bool
		anyPending   bool
		refAddressed bool
		cndAddressed bool
	)
	for _, m := range members {
		switch m.EffectiveStatus(now, ttl) {
		case PropositionRejected:
			return PropositionRejected
		case PropositionExpired:
			anyExpired = true
		case PropositionPending:
			anyPending = true
		}
		if m.RecipientIsReference() {
			refAddressed = true
		} else {
			cndAddressed = true
		}
	}
	if anyExpired {
		return PropositionExpired
	}
	if anyPending || !refAddressed || !cndAddressed {
		return PropositionPending
	}
	return PropositionAccepted
}
