package models

// Attachment limits, enforced before any file is stored.
const (
	MaxAttachmentsPerLesson = 10
	MaxAttachmentSize       = 10 << 20 // 10 MiB
)

// AllowedAttachmentExtensions is the fixed allow-list for uploaded files.
// Lookup keys are lower-case extensions including the leading dot.
var AllowedAttachmentExtensions = map[string]bool{
	".pdf":  true,
	".zip":  true,
	".pptx": true,
	".docx": true,
	".txt":  true,
	".jpg":  true,
	".jpeg": true,
}

// Attachment is a file attached to a lesson, deleted with it.
type Attachment struct {
	ID               int64  `json:"id" db:"id"`
	OriginalFilename string `json:"originalFilename" db:"original_filename"` // Name as uploaded by the instructor
	FilePath         string `json:"filePath" db:"file_path"`                 // Stored location on the server
	DownloadCount    int64  `json:"downloadCount" db:"download_count"`       // Monotonic, starts at 0
	LessonID         int64  `json:"lessonId" db:"lesson_id"`
}
