package models

import "time"

// EnrollmentStatus is the tri-state status of an enrollment record.
// The absence of a record is its own state: a student with no row for a
// course has never requested it (or the request was deleted).
type EnrollmentStatus string

const (
	EnrollmentPending  EnrollmentStatus = "pending"
	EnrollmentApproved EnrollmentStatus = "approved"
	EnrollmentRejected EnrollmentStatus = "rejected"
)

// ParseEnrollmentStatus returns the status matching s, or false when s is not
// one of the three valid values. Callers treat an invalid filter as "no
// filter" rather than an error.
func ParseEnrollmentStatus(s string) (EnrollmentStatus, bool) {
	switch EnrollmentStatus(s) {
	case EnrollmentPending, EnrollmentApproved, EnrollmentRejected:
		return EnrollmentStatus(s), true
	}
	return "", false
}

// BulkAction is an instructor action applied atomically to a set of
// enrollment records of one course.
type BulkAction string

const (
	BulkActionApprove BulkAction = "approve"
	BulkActionReject  BulkAction = "reject"
	BulkActionRestore BulkAction = "restore" // Re-approves a previously rejected (or any) enrollment
	BulkActionDelete  BulkAction = "delete"  // Removes the records entirely, allowing re-enrollment
)

// ParseBulkAction validates an action string from the API.
func ParseBulkAction(s string) (BulkAction, bool) {
	switch BulkAction(s) {
	case BulkActionApprove, BulkActionReject, BulkActionRestore, BulkActionDelete:
		return BulkAction(s), true
	}
	return "", false
}

// TargetStatus returns the status the action transitions matched records to.
// The delete action removes rows instead and has no target status.
func (a BulkAction) TargetStatus() (EnrollmentStatus, bool) {
	switch a {
	case BulkActionApprove, BulkActionRestore:
		return EnrollmentApproved, true
	case BulkActionReject:
		return EnrollmentRejected, true
	}
	return "", false
}

// Enrollment links a student to a course with a status. The (student, course)
// pair is unique and immutable after creation; only the status changes, and
// only through the instructor's bulk-update action.
type Enrollment struct {
	ID        int64            `json:"id" db:"id"`
	StudentID int64            `json:"studentId" db:"student_id"`
	CourseID  int64            `json:"courseId" db:"course_id"`
	Status    EnrollmentStatus `json:"status" db:"status"`
	CreatedAt time.Time        `json:"createdAt" db:"created_at"`

	// Relation (populated when needed)
	Student *User `json:"student,omitempty"`
}
