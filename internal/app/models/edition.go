package models

// CourseEdition groups courses into an edition (e.g. an academic semester).
// Editions are never deleted while a course references them.
type CourseEdition struct {
	ID   int64  `json:"id" db:"id" example:"1"`
	Name string `json:"name" db:"name" example:"2025/26 Semester 2"` // Unique edition name
}
