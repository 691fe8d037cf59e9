package repositories

import (
	"github.com/mkowalski/coursehub/internal/db"
)

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository       *UserRepository
	EditionRepository    *EditionRepository
	CourseRepository     *CourseRepository
	LessonRepository     *LessonRepository
	AttachmentRepository *AttachmentRepository
	EnrollmentRepository *EnrollmentRepository
}

// NewRepositories initializes all repositories
func NewRepositories(database *db.PostgresDB) *Repositories {
	return &Repositories{
		UserRepository:       NewUserRepository(database.Pool),
		EditionRepository:    NewEditionRepository(database.Pool),
		CourseRepository:     NewCourseRepository(database.Pool),
		LessonRepository:     NewLessonRepository(database.Pool),
		AttachmentRepository: NewAttachmentRepository(database.Pool),
		EnrollmentRepository: NewEnrollmentRepository(database),
	}
}
