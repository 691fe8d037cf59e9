package models

// Course represents a course owned by a single instructor within an edition.
// The owning instructor is fixed at creation and never reassigned.
type Course struct {
	ID           int64  `json:"id" db:"id"`
	Name         string `json:"name" db:"name"`
	Description  string `json:"description" db:"description"`
	IsVisible    bool   `json:"isVisible" db:"is_visible"` // Controls catalog/detail exposure to students
	InstructorID int64  `json:"instructorId" db:"instructor_id"`
	EditionID    int64  `json:"editionId" db:"edition_id"`

	// Number of pending enrollment requests, computed on read.
	PendingEnrollments int64 `json:"pendingEnrollments" db:"pending_enrollments"`

	// Relations (populated when needed)
	Instructor *User          `json:"instructor,omitempty"`
	Edition    *CourseEdition `json:"edition,omitempty"`
}
