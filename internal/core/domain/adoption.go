package domain

import (
	"fmt"
	"time"
)

// AdoptionStatus represents the lifecycle state of an adoption request.
type AdoptionStatus string

const (
	AdoptionPending  AdoptionStatus = "pending"
	AdoptionApproved AdoptionStatus = "approved"
	AdoptionRejected AdoptionStatus = "rejected"
)

// validTransitions defines the allowed state machine transitions.
var validTransitions = map[AdoptionStatus][]AdoptionStatus{
	AdoptionPending: {AdoptionApproved, AdoptionRejected},
}

// CanTransitionTo reports whether a transition from current status to next is valid.
func (s AdoptionStatus) CanTransitionTo(next AdoptionStatus) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Decision is an admin's verdict on a pending request.
type Decision string

const (
	DecisionApprove Decision = "approve"
	DecisionReject  Decision = "reject"
)

// ParseDecision validates a decision taken from a URL.
func ParseDecision(s string) (Decision, bool) {
	switch Decision(s) {
	case DecisionApprove:
		return DecisionApprove, true
	case DecisionReject:
		return DecisionReject, true
	}
	return "", false
}

// Status is the request status the decision leads to.
func (d Decision) Status() AdoptionStatus {
	if d == DecisionApprove {
		return AdoptionApproved
	}
	return AdoptionRejected
}

// PastTense is used in confirmation messages ("approved", "rejected").
func (d Decision) PastTense() string {
	return string(d.Status())
}

// Requester is the subset of the requesting user embedded in a request.
type Requester struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

// AdoptionRequest is a user's request to adopt a pet.
type AdoptionRequest struct {
	ID        string         `json:"id"`
	UserID    string         `json:"userId"`
	PetID     string         `json:"petId"`
	Message   string         `json:"message,omitempty"`
	Status    AdoptionStatus `json:"status"`
	CreatedAt time.Time      `json:"createdAt"`
	Pet       *Pet           `json:"pet,omitempty"`
	User      *Requester     `json:"user,omitempty"`
}

// Decide applies d to a pending request.
func (r *AdoptionRequest) Decide(d Decision) error {
	next := d.Status()
	if !r.Status.CanTransitionTo(next) {
		return fmt.Errorf("adoption request %s: %w (from %s to %s)", r.ID, ErrInvalidTransition, r.Status, next)
	}
	r.Status = next
	return nil
}

// AdoptionDecision is what gets handed to the decision collaborator once a
// request has been decided locally.
type AdoptionDecision struct {
	RequestID string
	Status    AdoptionStatus
	DecidedBy string
	DecidedAt time.Time
}
