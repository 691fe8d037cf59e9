package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkowalski/coursehub/internal/app/models"
	"github.com/mkowalski/coursehub/internal/app/models/dto"
	"github.com/mkowalski/coursehub/internal/pkg/apperrors"
)

func testStudent() *models.User {
	return &models.User{
		ID:        4,
		Email:     "student@example.com",
		FirstName: "Anna",
		LastName:  "Nowak",
		RoleType:  models.RoleStudent,
		IsActive:  true,
	}
}

func testCourse() *models.Course {
	return &models.Course{
		ID:           7,
		Name:         "Algorithms and Data Structures",
		IsVisible:    true,
		InstructorID: 1,
		EditionID:    1,
	}
}

func TestEnroll_CreatesPendingEnrollment(t *testing.T) {
	userRepo := &mockUserRepository{user: testStudent()}
	courseRepo := &mockCourseRepository{course: testCourse()}
	enrollmentRepo := &mockEnrollmentRepository{
		createID: 11,
		enrollment: &models.Enrollment{
			ID:        11,
			StudentID: 4,
			CourseID:  7,
			Status:    models.EnrollmentPending,
			CreatedAt: time.Now(),
		},
	}

	svc := NewEnrollmentService(courseRepo, enrollmentRepo, userRepo)

	resp, err := svc.Enroll(context.Background(), 4, 7)

	require.NoError(t, err)
	assert.Equal(t, int64(11), resp.ID)
	assert.Equal(t, "pending", resp.Status)
	assert.Equal(t, "student@example.com", resp.Student.Email)
}

func TestEnroll_InstructorsCannotEnroll(t *testing.T) {
	instructor := testStudent()
	instructor.RoleType = models.RoleInstructor

	userRepo := &mockUserRepository{user: instructor}
	courseRepo := &mockCourseRepository{course: testCourse()}
	enrollmentRepo := &mockEnrollmentRepository{}

	svc := NewEnrollmentService(courseRepo, enrollmentRepo, userRepo)

	_, err := svc.Enroll(context.Background(), 4, 7)

	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
}

func TestEnroll_HiddenCourseReadsAsMissing(t *testing.T) {
	course := testCourse()
	course.IsVisible = false

	userRepo := &mockUserRepository{user: testStudent()}
	courseRepo := &mockCourseRepository{course: course}
	enrollmentRepo := &mockEnrollmentRepository{}

	svc := NewEnrollmentService(courseRepo, enrollmentRepo, userRepo)

	_, err := svc.Enroll(context.Background(), 4, 7)

	assert.ErrorIs(t, err, apperrors.ErrCourseNotFound)
}

func TestEnroll_DuplicateReportsExistingStatus(t *testing.T) {
	userRepo := &mockUserRepository{user: testStudent()}
	courseRepo := &mockCourseRepository{course: testCourse()}
	enrollmentRepo := &mockEnrollmentRepository{
		createErr: apperrors.ErrEnrollmentExists,
		enrollment: &models.Enrollment{
			ID:        11,
			StudentID: 4,
			CourseID:  7,
			Status:    models.EnrollmentApproved,
		},
	}

	svc := NewEnrollmentService(courseRepo, enrollmentRepo, userRepo)

	_, err := svc.Enroll(context.Background(), 4, 7)

	require.ErrorIs(t, err, apperrors.ErrEnrollmentExists)

	var customErr *apperrors.CustomError
	require.True(t, errors.As(err, &customErr))
	assert.Equal(t, "approved", customErr.Details["status"])
}

func TestGetEnrollments_ForeignCourseReadsAsMissing(t *testing.T) {
	course := testCourse()
	course.InstructorID = 99

	courseRepo := &mockCourseRepository{course: course}
	enrollmentRepo := &mockEnrollmentRepository{}

	svc := NewEnrollmentService(courseRepo, enrollmentRepo, &mockUserRepository{})

	_, err := svc.GetEnrollments(context.Background(), 1, 7, "", 1, 10)

	assert.ErrorIs(t, err, apperrors.ErrCourseNotFound)
	assert.False(t, enrollmentRepo.listCalled)
}

func TestGetEnrollments_InvalidStatusFilterIgnored(t *testing.T) {
	courseRepo := &mockCourseRepository{course: testCourse()}
	enrollmentRepo := &mockEnrollmentRepository{
		enrollments: []*models.Enrollment{},
	}

	svc := NewEnrollmentService(courseRepo, enrollmentRepo, &mockUserRepository{})

	_, err := svc.GetEnrollments(context.Background(), 1, 7, "bogus", 1, 10)

	require.NoError(t, err)
	assert.True(t, enrollmentRepo.listCalled)
	assert.Nil(t, enrollmentRepo.listStatus)
}

func TestGetEnrollments_StatusFilterApplied(t *testing.T) {
	courseRepo := &mockCourseRepository{course: testCourse()}
	enrollmentRepo := &mockEnrollmentRepository{
		enrollments: []*models.Enrollment{
			{ID: 3, CourseID: 7, Status: models.EnrollmentPending, Student: testStudent()},
		},
	}

	svc := NewEnrollmentService(courseRepo, enrollmentRepo, &mockUserRepository{})

	resp, err := svc.GetEnrollments(context.Background(), 1, 7, "pending", 1, 10)

	require.NoError(t, err)
	require.NotNil(t, enrollmentRepo.listStatus)
	assert.Equal(t, models.EnrollmentPending, *enrollmentRepo.listStatus)
	require.Len(t, resp.Enrollments, 1)
	assert.Equal(t, "student@example.com", resp.Enrollments[0].Student.Email)
}

func TestBulkUpdate_InvalidAction(t *testing.T) {
	courseRepo := &mockCourseRepository{course: testCourse()}
	enrollmentRepo := &mockEnrollmentRepository{}

	svc := NewEnrollmentService(courseRepo, enrollmentRepo, &mockUserRepository{})

	_, err := svc.BulkUpdate(context.Background(), 1, 7, &dto.BulkUpdateRequest{
		Action:        "promote",
		EnrollmentIDs: []int64{3},
	})

	assert.ErrorIs(t, err, apperrors.ErrInvalidBulkAction)
}

func TestBulkUpdate_AppliesActionToBatch(t *testing.T) {
	courseRepo := &mockCourseRepository{course: testCourse()}
	enrollmentRepo := &mockEnrollmentRepository{bulkCount: 3}

	svc := NewEnrollmentService(courseRepo, enrollmentRepo, &mockUserRepository{})

	resp, err := svc.BulkUpdate(context.Background(), 1, 7, &dto.BulkUpdateRequest{
		Action:        "approve",
		EnrollmentIDs: []int64{3, 4, 5},
	})

	require.NoError(t, err)
	assert.Equal(t, 3, resp.UpdatedCount)
	assert.Equal(t, "approve", resp.Action)
	assert.Equal(t, models.BulkActionApprove, enrollmentRepo.bulkAction)
	assert.Equal(t, []int64{3, 4, 5}, enrollmentRepo.bulkIDs)
	assert.Equal(t, int64(7), enrollmentRepo.bulkCourseID)
}

func TestBulkUpdate_MismatchRejectsWholeBatch(t *testing.T) {
	courseRepo := &mockCourseRepository{course: testCourse()}
	enrollmentRepo := &mockEnrollmentRepository{bulkErr: apperrors.ErrEnrollmentMismatch}

	svc := NewEnrollmentService(courseRepo, enrollmentRepo, &mockUserRepository{})

	_, err := svc.BulkUpdate(context.Background(), 1, 7, &dto.BulkUpdateRequest{
		Action:        "delete",
		EnrollmentIDs: []int64{3, 999},
	})

	assert.ErrorIs(t, err, apperrors.ErrEnrollmentMismatch)
}
