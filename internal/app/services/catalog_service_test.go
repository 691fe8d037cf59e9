package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkowalski/coursehub/internal/app/models"
	"github.com/mkowalski/coursehub/internal/pkg/apperrors"
)

func approvedEnrollment() *models.Enrollment {
	return &models.Enrollment{ID: 11, StudentID: 4, CourseID: 7, Status: models.EnrollmentApproved}
}

func publishedLesson() *models.Lesson {
	return &models.Lesson{ID: 21, Title: "Sorting", IsPublished: true, CourseID: 7}
}

func newCatalogServiceForTest(courseRepo *mockCourseRepository, lessonRepo *mockLessonRepository, attachmentRepo *mockAttachmentRepository, enrollmentRepo *mockEnrollmentRepository, storage *mockFileStorage) CatalogService {
	return NewCatalogService(courseRepo, lessonRepo, attachmentRepo, enrollmentRepo, storage)
}

func TestGetCatalog_AnnotatesEnrollmentStatus(t *testing.T) {
	courseRepo := &mockCourseRepository{
		courses: []*models.Course{
			{ID: 7, Name: "Algorithms", IsVisible: true, InstructorID: 1},
			{ID: 8, Name: "Databases", IsVisible: true, InstructorID: 1},
		},
	}
	enrollmentRepo := &mockEnrollmentRepository{
		statuses: map[int64]models.EnrollmentStatus{7: models.EnrollmentPending},
	}

	svc := newCatalogServiceForTest(courseRepo, &mockLessonRepository{}, &mockAttachmentRepository{}, enrollmentRepo, &mockFileStorage{})

	resp, err := svc.GetCatalog(context.Background(), 4, 1, 10)

	require.NoError(t, err)
	require.Len(t, resp.Courses, 2)
	require.NotNil(t, resp.Courses[0].EnrollmentStatus)
	assert.Equal(t, "pending", *resp.Courses[0].EnrollmentStatus)
	assert.Nil(t, resp.Courses[1].EnrollmentStatus)
}

func TestGetCourseDetail_HiddenCourseReadsAsMissing(t *testing.T) {
	course := testCourse()
	course.IsVisible = false
	courseRepo := &mockCourseRepository{course: course}

	svc := newCatalogServiceForTest(courseRepo, &mockLessonRepository{}, &mockAttachmentRepository{}, &mockEnrollmentRepository{enrollment: approvedEnrollment()}, &mockFileStorage{})

	_, err := svc.GetCourseDetail(context.Background(), 4, 7)

	assert.ErrorIs(t, err, apperrors.ErrCourseNotFound)
}

func TestGetCourseDetail_NotEnrolledForbidden(t *testing.T) {
	courseRepo := &mockCourseRepository{course: testCourse()}
	enrollmentRepo := &mockEnrollmentRepository{getErr: apperrors.ErrEnrollmentNotFound}

	svc := newCatalogServiceForTest(courseRepo, &mockLessonRepository{}, &mockAttachmentRepository{}, enrollmentRepo, &mockFileStorage{})

	_, err := svc.GetCourseDetail(context.Background(), 4, 7)

	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
}

func TestGetCourseDetail_PendingEnrollmentForbiddenWithStatus(t *testing.T) {
	enrollment := approvedEnrollment()
	enrollment.Status = models.EnrollmentPending

	courseRepo := &mockCourseRepository{course: testCourse()}
	enrollmentRepo := &mockEnrollmentRepository{enrollment: enrollment}

	svc := newCatalogServiceForTest(courseRepo, &mockLessonRepository{}, &mockAttachmentRepository{}, enrollmentRepo, &mockFileStorage{})

	_, err := svc.GetCourseDetail(context.Background(), 4, 7)

	require.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	var customErr *apperrors.CustomError
	require.True(t, errors.As(err, &customErr))
	assert.Equal(t, "pending", customErr.Details["status"])
}

func TestGetCourseDetail_ListsOnlyPublishedLessons(t *testing.T) {
	courseRepo := &mockCourseRepository{course: testCourse()}
	lessonRepo := &mockLessonRepository{lessons: []*models.Lesson{publishedLesson()}}

	svc := newCatalogServiceForTest(courseRepo, lessonRepo, &mockAttachmentRepository{}, &mockEnrollmentRepository{enrollment: approvedEnrollment()}, &mockFileStorage{})

	resp, err := svc.GetCourseDetail(context.Background(), 4, 7)

	require.NoError(t, err)
	require.NotNil(t, lessonRepo.listOnlyPublished)
	assert.True(t, *lessonRepo.listOnlyPublished)
	require.Len(t, resp.Lessons, 1)
	assert.Equal(t, "Sorting", resp.Lessons[0].Title)
	require.NotNil(t, resp.EnrollmentStatus)
	assert.Equal(t, "approved", *resp.EnrollmentStatus)
}

func TestGetLessonDetail_UnpublishedLessonReadsAsMissing(t *testing.T) {
	lesson := publishedLesson()
	lesson.IsPublished = false

	courseRepo := &mockCourseRepository{course: testCourse()}
	lessonRepo := &mockLessonRepository{lesson: lesson}

	svc := newCatalogServiceForTest(courseRepo, lessonRepo, &mockAttachmentRepository{}, &mockEnrollmentRepository{enrollment: approvedEnrollment()}, &mockFileStorage{})

	_, err := svc.GetLessonDetail(context.Background(), 4, 7, 21)

	assert.ErrorIs(t, err, apperrors.ErrLessonNotFound)
}

func TestGetLessonDetail_ForeignLessonReadsAsMissing(t *testing.T) {
	lesson := publishedLesson()
	lesson.CourseID = 8

	courseRepo := &mockCourseRepository{course: testCourse()}
	lessonRepo := &mockLessonRepository{lesson: lesson}

	svc := newCatalogServiceForTest(courseRepo, lessonRepo, &mockAttachmentRepository{}, &mockEnrollmentRepository{enrollment: approvedEnrollment()}, &mockFileStorage{})

	_, err := svc.GetLessonDetail(context.Background(), 4, 7, 21)

	assert.ErrorIs(t, err, apperrors.ErrLessonNotFound)
}

func TestGetLessonDetail_ReturnsAttachments(t *testing.T) {
	courseRepo := &mockCourseRepository{course: testCourse()}
	lessonRepo := &mockLessonRepository{lesson: publishedLesson()}
	attachmentRepo := &mockAttachmentRepository{
		attachments: []*models.Attachment{
			{ID: 31, OriginalFilename: "notes.pdf", DownloadCount: 2, LessonID: 21},
		},
	}

	svc := newCatalogServiceForTest(courseRepo, lessonRepo, attachmentRepo, &mockEnrollmentRepository{enrollment: approvedEnrollment()}, &mockFileStorage{})

	resp, err := svc.GetLessonDetail(context.Background(), 4, 7, 21)

	require.NoError(t, err)
	require.Len(t, resp.Attachments, 1)
	assert.Equal(t, "notes.pdf", resp.Attachments[0].OriginalFilename)
	assert.Equal(t, int64(2), resp.Attachments[0].DownloadCount)
}

func TestDownloadAttachment_IncrementsCounter(t *testing.T) {
	courseRepo := &mockCourseRepository{course: testCourse()}
	lessonRepo := &mockLessonRepository{lesson: publishedLesson()}
	attachmentRepo := &mockAttachmentRepository{
		attachment: &models.Attachment{ID: 31, OriginalFilename: "notes.pdf", FilePath: "7/21/notes.pdf", LessonID: 21},
	}
	storage := &mockFileStorage{}

	svc := newCatalogServiceForTest(courseRepo, lessonRepo, attachmentRepo, &mockEnrollmentRepository{enrollment: approvedEnrollment()}, storage)

	attachment, fullPath, err := svc.DownloadAttachment(context.Background(), 4, 7, 21, 31)

	require.NoError(t, err)
	assert.True(t, attachmentRepo.incrementCalled)
	assert.Equal(t, "notes.pdf", attachment.OriginalFilename)
	assert.Equal(t, "/var/uploads/7/21/notes.pdf", fullPath)
}

func TestDownloadAttachment_ForeignAttachmentReadsAsMissing(t *testing.T) {
	courseRepo := &mockCourseRepository{course: testCourse()}
	lessonRepo := &mockLessonRepository{lesson: publishedLesson()}
	attachmentRepo := &mockAttachmentRepository{
		attachment: &models.Attachment{ID: 31, LessonID: 99},
	}

	svc := newCatalogServiceForTest(courseRepo, lessonRepo, attachmentRepo, &mockEnrollmentRepository{enrollment: approvedEnrollment()}, &mockFileStorage{})

	_, _, err := svc.DownloadAttachment(context.Background(), 4, 7, 21, 31)

	assert.ErrorIs(t, err, apperrors.ErrAttachmentNotFound)
}

func TestDownloadAttachment_CounterFailureDoesNotBlockDownload(t *testing.T) {
	courseRepo := &mockCourseRepository{course: testCourse()}
	lessonRepo := &mockLessonRepository{lesson: publishedLesson()}
	attachmentRepo := &mockAttachmentRepository{
		attachment:   &models.Attachment{ID: 31, FilePath: "7/21/notes.pdf", LessonID: 21},
		incrementErr: errors.New("connection reset"),
	}

	svc := newCatalogServiceForTest(courseRepo, lessonRepo, attachmentRepo, &mockEnrollmentRepository{enrollment: approvedEnrollment()}, &mockFileStorage{})

	_, fullPath, err := svc.DownloadAttachment(context.Background(), 4, 7, 21, 31)

	require.NoError(t, err)
	assert.NotEmpty(t, fullPath)
}

func TestGetMyCourses_MapsCourses(t *testing.T) {
	instructor := &models.User{ID: 1, Email: "prof@example.com", FirstName: "Jan", LastName: "Kowalski", RoleType: models.RoleInstructor}
	courseRepo := &mockCourseRepository{
		courses: []*models.Course{
			{
				ID: 7, Name: "Algorithms", IsVisible: true, InstructorID: 1,
				Instructor: instructor,
				Edition:    &models.CourseEdition{ID: 1, Name: "2025/2026 Winter"},
			},
		},
	}

	svc := newCatalogServiceForTest(courseRepo, &mockLessonRepository{}, &mockAttachmentRepository{}, &mockEnrollmentRepository{}, &mockFileStorage{})

	courses, _, err := svc.GetMyCourses(context.Background(), 4, 1, 10)

	require.NoError(t, err)
	require.Len(t, courses, 1)
	assert.Equal(t, "Algorithms", courses[0].Name)
	assert.Equal(t, "prof@example.com", courses[0].Instructor.Email)
	require.NotNil(t, courses[0].Edition)
	assert.Equal(t, "2025/2026 Winter", courses[0].Edition.Name)
}
