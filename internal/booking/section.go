package booking

import (
	"errors"
	"time"
)

var (
	ErrSectionNotFound    = errors.New("section not found")
	ErrAssignmentNotFound = errors.New("assignment not found")
	ErrInvalidAssignment  = errors.New("invalid assignment")
)

// Section is a named class group with a fixed weekly schedule.
type Section struct {
	ID        string              `json:"id"`
	Name      string              `json:"name"`
	Slots     map[string][]string `json:"slots"`
	CreatedAt time.Time           `json:"createdAt"`
}

// Assignment binds a user to a section until the end of the subscription.
type Assignment struct {
	UserID     string    `json:"userId"`
	SectionID  string    `json:"sectionId"`
	ValidUntil time.Time `json:"validUntil"`
	UpdatedAt  time.Time `json:"updatedAt"`
}
