package dto

import "time"

// EnrollmentResponse represents an enrollment entry
type EnrollmentResponse struct {
	ID        int64        `json:"id" example:"3"`
	CourseID  int64        `json:"courseId" example:"7"`
	Status    string       `json:"status" example:"pending"`
	CreatedAt time.Time    `json:"createdAt"`
	Student   UserResponse `json:"student"`
}

// EnrollmentListResponse wraps a paginated list of enrollments for a course.
type EnrollmentListResponse struct {
	Enrollments []EnrollmentResponse `json:"enrollments"`
	Pagination  PaginationInfo       `json:"pagination"`
}

// BulkUpdateRequest represents a bulk action on a set of enrollments. The
// whole batch succeeds or fails together.
type BulkUpdateRequest struct {
	Action        string  `json:"action" binding:"required,oneof=approve reject restore delete" example:"approve"`
	EnrollmentIDs []int64 `json:"enrollmentIds" binding:"required,min=1,dive,gt=0" example:"3,4,5"`
}

// BulkUpdateResponse reports the outcome of a bulk enrollment action.
type BulkUpdateResponse struct {
	Message      string `json:"message" example:"Enrollments updated"`
	Action       string `json:"action" example:"approve"`
	UpdatedCount int    `json:"updatedCount" example:"3"`
}

// MyCourseResponse represents a course on a student's "my courses" list.
type MyCourseResponse struct {
	ID         int64            `json:"id" example:"7"`
	Name       string           `json:"name" example:"Algorithms and Data Structures"`
	Instructor UserResponse     `json:"instructor"`
	Edition    *EditionResponse `json:"edition,omitempty"`
}
