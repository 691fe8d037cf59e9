package dto

// CreateLessonRequest represents data for creating a lesson
type CreateLessonRequest struct {
	Title       string `json:"title" binding:"required,max=255" example:"Week 1: Complexity"`
	Description string `json:"description" example:"Big-O notation and amortized analysis."`
	IsPublished *bool  `json:"isPublished" example:"true"`
}

// UpdateLessonRequest represents data for updating a lesson. Omitted fields
// keep their current value.
type UpdateLessonRequest struct {
	Title       *string `json:"title" binding:"omitempty,max=255" example:"Week 1: Complexity"`
	Description *string `json:"description" example:"Big-O notation and amortized analysis."`
	IsPublished *bool   `json:"isPublished" example:"false"`
}

// LessonSummaryResponse represents a lesson entry inside a course detail.
type LessonSummaryResponse struct {
	ID    int64  `json:"id" example:"13"`
	Title string `json:"title" example:"Week 1: Complexity"`
}

// LessonResponse represents full lesson details
type LessonResponse struct {
	ID          int64  `json:"id" example:"13"`
	Title       string `json:"title" example:"Week 1: Complexity"`
	Description string `json:"description" example:"Big-O notation and amortized analysis."`
	IsPublished bool   `json:"isPublished" example:"true"`
	CourseID    int64  `json:"courseId" example:"7"`

	AttachmentCount int64 `json:"attachmentCount" example:"2"`
}

// LessonDetailResponse represents a lesson with its attachments, as returned
// to approved students and instructors.
type LessonDetailResponse struct {
	LessonResponse
	Attachments []AttachmentResponse `json:"attachments"`
}
