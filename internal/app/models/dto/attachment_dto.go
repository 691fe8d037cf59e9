package dto

// AttachmentResponse represents an attachment entry on a lesson
type AttachmentResponse struct {
	ID               int64  `json:"id" example:"31"`
	OriginalFilename string `json:"originalFilename" example:"lecture-notes.pdf"`
	DownloadCount    int64  `json:"downloadCount" example:"12"`
	LessonID         int64  `json:"lessonId" example:"13"`
}
