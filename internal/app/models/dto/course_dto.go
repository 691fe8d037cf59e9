package dto

// CreateCourseRequest represents data for creating a course
type CreateCourseRequest struct {
	Name        string `json:"name" binding:"required,max=255" example:"Algorithms and Data Structures"`
	Description string `json:"description" example:"Sorting, searching and graph algorithms."`
	IsVisible   *bool  `json:"isVisible" example:"true"`
	EditionID   int64  `json:"editionId" binding:"required" example:"1"`
}

// UpdateCourseRequest represents data for updating a course. All fields are
// optional; omitted fields keep their current value.
type UpdateCourseRequest struct {
	Name        *string `json:"name" binding:"omitempty,max=255" example:"Algorithms and Data Structures"`
	Description *string `json:"description" example:"Sorting, searching and graph algorithms."`
	IsVisible   *bool   `json:"isVisible" example:"false"`
	EditionID   *int64  `json:"editionId" example:"2"`
}

// CourseResponse represents course details returned to instructors and on
// catalog detail pages.
type CourseResponse struct {
	ID          int64            `json:"id" example:"7"`
	Name        string           `json:"name" example:"Algorithms and Data Structures"`
	Description string           `json:"description" example:"Sorting, searching and graph algorithms."`
	IsVisible   bool             `json:"isVisible" example:"true"`
	Instructor  UserResponse     `json:"instructor"`
	Edition     *EditionResponse `json:"edition,omitempty"`

	// PendingEnrollments counts enrollment requests awaiting a decision.
	PendingEnrollments int64 `json:"pendingEnrollments" example:"3"`
}

// CatalogCourseResponse represents a course as seen by a student browsing the
// catalog, annotated with that student's enrollment status.
type CatalogCourseResponse struct {
	ID               int64            `json:"id" example:"7"`
	Name             string           `json:"name" example:"Algorithms and Data Structures"`
	Description      string           `json:"description" example:"Sorting, searching and graph algorithms."`
	Instructor       UserResponse     `json:"instructor"`
	Edition          *EditionResponse `json:"edition,omitempty"`
	EnrollmentStatus *string          `json:"enrollmentStatus,omitempty" example:"pending"`
}

// CatalogCourseDetailResponse extends the catalog entry with published
// lessons, returned only to approved students.
type CatalogCourseDetailResponse struct {
	CatalogCourseResponse
	Lessons []LessonSummaryResponse `json:"lessons"`
}

// CourseListResponse wraps a paginated list of instructor courses.
type CourseListResponse struct {
	Courses    []CourseResponse `json:"courses"`
	Pagination PaginationInfo   `json:"pagination"`
}

// CatalogListResponse wraps a paginated list of catalog entries.
type CatalogListResponse struct {
	Courses    []CatalogCourseResponse `json:"courses"`
	Pagination PaginationInfo          `json:"pagination"`
}
