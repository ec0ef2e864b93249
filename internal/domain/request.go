package domain

import "time"

// RequestStatus is shared by proposition requests and transfer requests.
// Both machines are pending -> {accepted, rejected}, terminal, no expiry.
type RequestStatus string

const (
	RequestPending  RequestStatus = "pending"
	RequestAccepted RequestStatus = "accepted"
	RequestRejected RequestStatus = "rejected"
)

// Organizer values on an accepted proposition request: who hosts the
// introduction once permission is granted.
const (
	OrganizerRequester = "requester"
	OrganizerOwner     = "owner"
	OrganizerAgency    = "agency"
)

// PropositionRequest is a matchmaker's ask, directed at the matchmaker who
// owns the candidate, for permission to propose the candidate to the
// requester's reference person.
type PropositionRequest struct {
	ID              int           `json:"id" db:"id"`
	ReferenceID     int           `json:"reference_id" db:"reference_id"`
	CandidateID     int           `json:"candidate_id" db:"candidate_id"`
	RequesterID     int           `json:"requester_id" db:"requester_id"`
	OwnerID         int           `json:"owner_id" db:"owner_id"`
	Message         string        `json:"message" db:"message"`
	Status          RequestStatus `json:"status" db:"status"`
	SharePhone      *bool         `json:"share_phone" db:"share_phone"`
	Organizer       *string       `json:"organizer" db:"organizer"`
	ResponseMessage *string       `json:"response_message" db:"response_message"`
	RejectionReason *string       `json:"rejection_reason" db:"rejection_reason"`
	RespondedAt     *time.Time    `json:"responded_at" db:"responded_at"`
	CreatedAt       time.Time     `json:"created_at" db:"created_at"`
}

// ProposalGrant is the single-use right to propose a (reference, candidate)
// pair, minted when a proposition request is accepted. Consumption is a
// compare-and-set on used_at so the right cannot be spent twice.
type ProposalGrant struct {
	ID           int        `json:"id" db:"id"`
	Token        string     `json:"token" db:"token"`
	MatchmakerID int        `json:"matchmaker_id" db:"matchmaker_id"`
	ReferenceID  int        `json:"reference_id" db:"reference_id"`
	CandidateID  int        `json:"candidate_id" db:"candidate_id"`
	UsedAt       *time.Time `json:"used_at" db:"used_at"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
}

// TransferRequest asks another matchmaker to take over a person record.
// Acceptance reassigns ownership atomically.
type TransferRequest struct {
	ID              int           `json:"id" db:"id"`
	PersonID        int           `json:"person_id" db:"person_id"`
	FromMatchmaker  int           `json:"from_matchmaker_id" db:"from_matchmaker_id"`
	ToMatchmaker    int           `json:"to_matchmaker_id" db:"to_matchmaker_id"`
	Reason          string        `json:"reason" db:"reason"`
	Status          RequestStatus `json:"status" db:"status"`
	RejectionReason *string       `json:"rejection_reason" db:"rejection_reason"`
	RespondedAt     *time.Time    `json:"responded_at" db:"responded_at"`
	CreatedAt       time.Time     `json:"created_at" db:"created_at"`
}
