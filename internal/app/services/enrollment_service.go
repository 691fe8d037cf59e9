package services

import (
	"context"
	"fmt"

	"github.com/mkowalski/coursehub/internal/app/models"
	"github.com/mkowalski/coursehub/internal/app/models/dto"
	"github.com/mkowalski/coursehub/internal/pkg/apperrors"
	"github.com/mkowalski/coursehub/internal/pkg/logger"
)

// EnrollmentService defines the enrollment lifecycle operations. Students
// request enrollment; instructors act on the requests in bulk.
type EnrollmentService interface {
	Enroll(ctx context.Context, studentID, courseID int64) (*dto.EnrollmentResponse, error)
	GetEnrollments(ctx context.Context, instructorID, courseID int64, statusFilter string, page, size int) (*dto.EnrollmentListResponse, error)
	BulkUpdate(ctx context.Context, instructorID, courseID int64, req *dto.BulkUpdateRequest) (*dto.BulkUpdateResponse, error)
}

// enrollmentServiceImpl implements EnrollmentService
type enrollmentServiceImpl struct {
	courseRepo     CourseRepository
	enrollmentRepo EnrollmentRepository
	userRepo       UserRepository
}

// NewEnrollmentService creates a new EnrollmentService
func NewEnrollmentService(courseRepo CourseRepository, enrollmentRepo EnrollmentRepository, userRepo UserRepository) EnrollmentService {
	return &enrollmentServiceImpl{
		courseRepo:     courseRepo,
		enrollmentRepo: enrollmentRepo,
		userRepo:       userRepo,
	}
}

func newEnrollmentResponse(enrollment *models.Enrollment) dto.EnrollmentResponse {
	resp := dto.EnrollmentResponse{
		ID:        enrollment.ID,
		CourseID:  enrollment.CourseID,
		Status:    string(enrollment.Status),
		CreatedAt: enrollment.CreatedAt,
	}
	if enrollment.Student != nil {
		resp.Student = newUserResponse(enrollment.Student)
	}
	return resp
}

// Enroll creates a pending enrollment for a student on a visible course.
// Instructors cannot enroll, and a student can hold at most one enrollment
// per course; a repeated request reports the existing status.
func (s *enrollmentServiceImpl) Enroll(ctx context.Context, studentID, courseID int64) (*dto.EnrollmentResponse, error) {
	student, err := s.userRepo.GetUserByID(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if student.IsInstructor() {
		return nil, apperrors.NewForbiddenError("instructors cannot enroll in courses")
	}

	course, err := s.courseRepo.GetCourseByID(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if !course.IsVisible {
		return nil, apperrors.ErrCourseNotFound
	}

	id, err := s.enrollmentRepo.CreateEnrollment(ctx, studentID, courseID)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrEnrollmentExists) {
			existing, getErr := s.enrollmentRepo.GetEnrollment(ctx, studentID, courseID)
			if getErr != nil {
				return nil, getErr
			}
			return nil, apperrors.NewCustomError(apperrors.ErrEnrollmentExists,
				fmt.Sprintf("you already have a %s enrollment for this course", existing.Status)).
				WithDetails(map[string]interface{}{"status": string(existing.Status)})
		}
		return nil, err
	}

	logger.Info().Int64("enrollmentId", id).Int64("studentId", studentID).Int64("courseId", courseID).Msg("Enrollment requested")

	enrollment, err := s.enrollmentRepo.GetEnrollment(ctx, studentID, courseID)
	if err != nil {
		return nil, err
	}
	enrollment.Student = student

	resp := newEnrollmentResponse(enrollment)
	return &resp, nil
}

// GetEnrollments lists the enrollments of one of the instructor's courses,
// optionally filtered by status. An unknown status filter is ignored.
func (s *enrollmentServiceImpl) GetEnrollments(ctx context.Context, instructorID, courseID int64, statusFilter string, page, size int) (*dto.EnrollmentListResponse, error) {
	if _, err := requireOwnedCourse(ctx, s.courseRepo, instructorID, courseID); err != nil {
		return nil, err
	}

	var status *models.EnrollmentStatus
	if parsed, ok := models.ParseEnrollmentStatus(statusFilter); ok {
		status = &parsed
	}

	enrollments, pagination, err := s.enrollmentRepo.GetEnrollmentsByCourse(ctx, courseID, status, page, size)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.EnrollmentResponse, 0, len(enrollments))
	for _, enrollment := range enrollments {
		responses = append(responses, newEnrollmentResponse(enrollment))
	}

	return &dto.EnrollmentListResponse{Enrollments: responses, Pagination: pagination}, nil
}

// BulkUpdate applies one action to a batch of enrollments on one of the
// instructor's courses. The batch is atomic: if any ID falls outside the
// course, nothing changes.
func (s *enrollmentServiceImpl) BulkUpdate(ctx context.Context, instructorID, courseID int64, req *dto.BulkUpdateRequest) (*dto.BulkUpdateResponse, error) {
	if _, err := requireOwnedCourse(ctx, s.courseRepo, instructorID, courseID); err != nil {
		return nil, err
	}

	action, ok := models.ParseBulkAction(req.Action)
	if !ok {
		return nil, apperrors.ErrInvalidBulkAction
	}

	updated, err := s.enrollmentRepo.BulkUpdateEnrollments(ctx, courseID, action, req.EnrollmentIDs)
	if err != nil {
		return nil, err
	}

	logger.Info().Int64("courseId", courseID).Str("action", req.Action).Int("updated", updated).Msg("Bulk enrollment update applied")

	return &dto.BulkUpdateResponse{
		Message:      "Enrollments updated",
		Action:       req.Action,
		UpdatedCount: updated,
	}, nil
}
