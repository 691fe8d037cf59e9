package services

import (
	"context"

	"github.com/mkowalski/coursehub/internal/app/models"
	"github.com/mkowalski/coursehub/internal/app/models/dto"
	"github.com/mkowalski/coursehub/internal/app/repositories"
	"github.com/mkowalski/coursehub/internal/pkg/auth"
	"github.com/mkowalski/coursehub/internal/pkg/filestorage"
)

// Repository interfaces consumed by the services. Defined here, on the
// consumer side, so tests can substitute in-memory fakes.

// UserRepository provides user persistence.
type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User) (int64, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
}

// EditionRepository provides course edition persistence.
type EditionRepository interface {
	CreateEdition(ctx context.Context, edition *models.CourseEdition) (int64, error)
	GetEditionByID(ctx context.Context, id int64) (*models.CourseEdition, error)
	GetAllEditions(ctx context.Context) ([]*models.CourseEdition, error)
	UpdateEdition(ctx context.Context, edition *models.CourseEdition) error
	DeleteEdition(ctx context.Context, id int64) error
}

// CourseRepository provides course persistence.
type CourseRepository interface {
	CreateCourse(ctx context.Context, course *models.Course) (int64, error)
	GetCourseByID(ctx context.Context, id int64) (*models.Course, error)
	GetCoursesByInstructor(ctx context.Context, instructorID int64, page, size int) ([]*models.Course, dto.PaginationInfo, error)
	GetVisibleCourses(ctx context.Context, page, size int) ([]*models.Course, dto.PaginationInfo, error)
	GetApprovedCoursesForStudent(ctx context.Context, studentID int64, page, size int) ([]*models.Course, dto.PaginationInfo, error)
	UpdateCourse(ctx context.Context, course *models.Course) error
	DeleteCourse(ctx context.Context, id int64) error
}

// LessonRepository provides lesson persistence.
type LessonRepository interface {
	CreateLesson(ctx context.Context, lesson *models.Lesson) (int64, error)
	GetLessonByID(ctx context.Context, id int64) (*models.Lesson, error)
	GetLessonsByCourse(ctx context.Context, courseID int64, onlyPublished bool) ([]*models.Lesson, error)
	UpdateLesson(ctx context.Context, lesson *models.Lesson) error
	DeleteLesson(ctx context.Context, id int64) error
}

// AttachmentRepository provides attachment persistence.
type AttachmentRepository interface {
	CreateAttachment(ctx context.Context, attachment *models.Attachment) (int64, error)
	GetAttachmentByID(ctx context.Context, id int64) (*models.Attachment, error)
	GetAttachmentsByLesson(ctx context.Context, lessonID int64) ([]*models.Attachment, error)
	CountAttachmentsByLesson(ctx context.Context, lessonID int64) (int, error)
	IncrementDownloadCount(ctx context.Context, id int64) error
	DeleteAttachment(ctx context.Context, id int64) error
}

// EnrollmentRepository provides enrollment persistence.
type EnrollmentRepository interface {
	CreateEnrollment(ctx context.Context, studentID, courseID int64) (int64, error)
	GetEnrollment(ctx context.Context, studentID, courseID int64) (*models.Enrollment, error)
	GetStatusesForStudent(ctx context.Context, studentID int64, courseIDs []int64) (map[int64]models.EnrollmentStatus, error)
	GetEnrollmentsByCourse(ctx context.Context, courseID int64, status *models.EnrollmentStatus, page, size int) ([]*models.Enrollment, dto.PaginationInfo, error)
	BulkUpdateEnrollments(ctx context.Context, courseID int64, action models.BulkAction, enrollmentIDs []int64) (int, error)
}

// Services holds all the service instances
type Services struct {
	AuthService       AuthService
	EditionService    EditionService
	CourseService     CourseService
	CatalogService    CatalogService
	LessonService     LessonService
	AttachmentService AttachmentService
	EnrollmentService EnrollmentService
}

// NewServices initializes all services
func NewServices(repos *repositories.Repositories, jwtService *auth.JWTService, storage filestorage.FileStorage) *Services {
	return &Services{
		AuthService:       NewAuthService(repos.UserRepository, jwtService),
		EditionService:    NewEditionService(repos.EditionRepository),
		CourseService:     NewCourseService(repos.CourseRepository, repos.EditionRepository),
		CatalogService:    NewCatalogService(repos.CourseRepository, repos.LessonRepository, repos.AttachmentRepository, repos.EnrollmentRepository, storage),
		LessonService:     NewLessonService(repos.CourseRepository, repos.LessonRepository, repos.AttachmentRepository, storage),
		AttachmentService: NewAttachmentService(repos.CourseRepository, repos.LessonRepository, repos.AttachmentRepository, storage),
		EnrollmentService: NewEnrollmentService(repos.CourseRepository, repos.EnrollmentRepository, repos.UserRepository),
	}
}
