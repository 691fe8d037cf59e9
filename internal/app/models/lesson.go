package models

// Lesson belongs to exactly one course and is deleted with it.
// Students only ever see published lessons.
type Lesson struct {
	ID          int64  `json:"id" db:"id"`
	Title       string `json:"title" db:"title"`
	Description string `json:"description" db:"description"`
	IsPublished bool   `json:"isPublished" db:"is_published"`
	CourseID    int64  `json:"courseId" db:"course_id"`

	// Number of attachments, computed on read.
	AttachmentCount int64 `json:"attachmentCount" db:"attachment_count"`
}
