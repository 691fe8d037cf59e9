package services

import (
	"context"
	"mime/multipart"

	"github.com/mkowalski/coursehub/internal/app/models"
	"github.com/mkowalski/coursehub/internal/app/models/dto"
)

// mockUserRepository is a mock implementation of UserRepository
type mockUserRepository struct {
	user      *models.User
	getErr    error
	createID  int64
	createErr error
	created   *models.User
}

func (m *mockUserRepository) CreateUser(ctx context.Context, user *models.User) (int64, error) {
	m.created = user
	if m.createErr != nil {
		return 0, m.createErr
	}
	return m.createID, nil
}

func (m *mockUserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.user, nil
}

func (m *mockUserRepository) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.user, nil
}

// mockEditionRepository is a mock implementation of EditionRepository
type mockEditionRepository struct {
	edition   *models.CourseEdition
	editions  []*models.CourseEdition
	getErr    error
	createID  int64
	createErr error
	updateErr error
	deleteErr error
}

func (m *mockEditionRepository) CreateEdition(ctx context.Context, edition *models.CourseEdition) (int64, error) {
	if m.createErr != nil {
		return 0, m.createErr
	}
	return m.createID, nil
}

func (m *mockEditionRepository) GetEditionByID(ctx context.Context, id int64) (*models.CourseEdition, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.edition, nil
}

func (m *mockEditionRepository) GetAllEditions(ctx context.Context) ([]*models.CourseEdition, error) {
	return m.editions, nil
}

func (m *mockEditionRepository) UpdateEdition(ctx context.Context, edition *models.CourseEdition) error {
	return m.updateErr
}

func (m *mockEditionRepository) DeleteEdition(ctx context.Context, id int64) error {
	return m.deleteErr
}

// mockCourseRepository is a mock implementation of CourseRepository
type mockCourseRepository struct {
	course     *models.Course
	courses    []*models.Course
	pagination dto.PaginationInfo
	getErr     error
	listErr    error
	createID   int64
	createErr  error
	created    *models.Course
	updateErr  error
	updated    *models.Course
	deleteErr  error
	deletedID  int64
}

func (m *mockCourseRepository) CreateCourse(ctx context.Context, course *models.Course) (int64, error) {
	m.created = course
	if m.createErr != nil {
		return 0, m.createErr
	}
	return m.createID, nil
}

func (m *mockCourseRepository) GetCourseByID(ctx context.Context, id int64) (*models.Course, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.course, nil
}

func (m *mockCourseRepository) GetCoursesByInstructor(ctx context.Context, instructorID int64, page, size int) ([]*models.Course, dto.PaginationInfo, error) {
	if m.listErr != nil {
		return nil, dto.PaginationInfo{}, m.listErr
	}
	return m.courses, m.pagination, nil
}

func (m *mockCourseRepository) GetVisibleCourses(ctx context.Context, page, size int) ([]*models.Course, dto.PaginationInfo, error) {
	if m.listErr != nil {
		return nil, dto.PaginationInfo{}, m.listErr
	}
	return m.courses, m.pagination, nil
}

func (m *mockCourseRepository) GetApprovedCoursesForStudent(ctx context.Context, studentID int64, page, size int) ([]*models.Course, dto.PaginationInfo, error) {
	if m.listErr != nil {
		return nil, dto.PaginationInfo{}, m.listErr
	}
	return m.courses, m.pagination, nil
}

func (m *mockCourseRepository) UpdateCourse(ctx context.Context, course *models.Course) error {
	m.updated = course
	return m.updateErr
}

func (m *mockCourseRepository) DeleteCourse(ctx context.Context, id int64) error {
	m.deletedID = id
	return m.deleteErr
}

// mockLessonRepository is a mock implementation of LessonRepository
type mockLessonRepository struct {
	lesson            *models.Lesson
	lessons           []*models.Lesson
	getErr            error
	listErr           error
	listOnlyPublished *bool
	createID          int64
	createErr         error
	created           *models.Lesson
	updateErr         error
	updated           *models.Lesson
	deleteErr         error
	deletedID         int64
}

func (m *mockLessonRepository) CreateLesson(ctx context.Context, lesson *models.Lesson) (int64, error) {
	m.created = lesson
	if m.createErr != nil {
		return 0, m.createErr
	}
	return m.createID, nil
}

func (m *mockLessonRepository) GetLessonByID(ctx context.Context, id int64) (*models.Lesson, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.lesson, nil
}

func (m *mockLessonRepository) GetLessonsByCourse(ctx context.Context, courseID int64, onlyPublished bool) ([]*models.Lesson, error) {
	m.listOnlyPublished = &onlyPublished
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.lessons, nil
}

func (m *mockLessonRepository) UpdateLesson(ctx context.Context, lesson *models.Lesson) error {
	m.updated = lesson
	return m.updateErr
}

func (m *mockLessonRepository) DeleteLesson(ctx context.Context, id int64) error {
	m.deletedID = id
	return m.deleteErr
}

// mockAttachmentRepository is a mock implementation of AttachmentRepository
type mockAttachmentRepository struct {
	attachment      *models.Attachment
	attachments     []*models.Attachment
	getErr          error
	listErr         error
	count           int
	countErr        error
	createID        int64
	createErr       error
	created         *models.Attachment
	incrementErr    error
	incrementCalled bool
	deleteErr       error
	deletedID       int64
}

func (m *mockAttachmentRepository) CreateAttachment(ctx context.Context, attachment *models.Attachment) (int64, error) {
	m.created = attachment
	if m.createErr != nil {
		return 0, m.createErr
	}
	return m.createID, nil
}

func (m *mockAttachmentRepository) GetAttachmentByID(ctx context.Context, id int64) (*models.Attachment, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.attachment, nil
}

func (m *mockAttachmentRepository) GetAttachmentsByLesson(ctx context.Context, lessonID int64) ([]*models.Attachment, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.attachments, nil
}

func (m *mockAttachmentRepository) CountAttachmentsByLesson(ctx context.Context, lessonID int64) (int, error) {
	if m.countErr != nil {
		return 0, m.countErr
	}
	return m.count, nil
}

func (m *mockAttachmentRepository) IncrementDownloadCount(ctx context.Context, id int64) error {
	m.incrementCalled = true
	return m.incrementErr
}

func (m *mockAttachmentRepository) DeleteAttachment(ctx context.Context, id int64) error {
	m.deletedID = id
	return m.deleteErr
}

// mockEnrollmentRepository is a mock implementation of EnrollmentRepository
type mockEnrollmentRepository struct {
	enrollment   *models.Enrollment
	getErr       error
	statuses     map[int64]models.EnrollmentStatus
	statusesErr  error
	enrollments  []*models.Enrollment
	pagination   dto.PaginationInfo
	listErr      error
	listStatus   *models.EnrollmentStatus
	listCalled   bool
	createID     int64
	createErr    error
	bulkCount    int
	bulkErr      error
	bulkAction   models.BulkAction
	bulkIDs      []int64
	bulkCourseID int64
}

func (m *mockEnrollmentRepository) CreateEnrollment(ctx context.Context, studentID, courseID int64) (int64, error) {
	if m.createErr != nil {
		return 0, m.createErr
	}
	return m.createID, nil
}

func (m *mockEnrollmentRepository) GetEnrollment(ctx context.Context, studentID, courseID int64) (*models.Enrollment, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.enrollment, nil
}

func (m *mockEnrollmentRepository) GetStatusesForStudent(ctx context.Context, studentID int64, courseIDs []int64) (map[int64]models.EnrollmentStatus, error) {
	if m.statusesErr != nil {
		return nil, m.statusesErr
	}
	return m.statuses, nil
}

func (m *mockEnrollmentRepository) GetEnrollmentsByCourse(ctx context.Context, courseID int64, status *models.EnrollmentStatus, page, size int) ([]*models.Enrollment, dto.PaginationInfo, error) {
	m.listCalled = true
	m.listStatus = status
	if m.listErr != nil {
		return nil, dto.PaginationInfo{}, m.listErr
	}
	return m.enrollments, m.pagination, nil
}

func (m *mockEnrollmentRepository) BulkUpdateEnrollments(ctx context.Context, courseID int64, action models.BulkAction, enrollmentIDs []int64) (int, error) {
	m.bulkCourseID = courseID
	m.bulkAction = action
	m.bulkIDs = enrollmentIDs
	if m.bulkErr != nil {
		return 0, m.bulkErr
	}
	return m.bulkCount, nil
}

// mockFileStorage is a mock implementation of filestorage.FileStorage
type mockFileStorage struct {
	savedPath    string
	saveErr      error
	saveCalled   bool
	deleteErr    error
	deletedPaths []string
}

func (m *mockFileStorage) SaveFile(fileHeader *multipart.FileHeader, subPath string) (string, error) {
	m.saveCalled = true
	if m.saveErr != nil {
		return "", m.saveErr
	}
	return m.savedPath, nil
}

func (m *mockFileStorage) DeleteFile(filePath string) error {
	m.deletedPaths = append(m.deletedPaths, filePath)
	return m.deleteErr
}

func (m *mockFileStorage) FullPath(filePath string) string {
	return "/var/uploads/" + filePath
}
