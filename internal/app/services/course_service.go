package services

import (
	"context"

	"github.com/mkowalski/coursehub/internal/app/models"
	"github.com/mkowalski/coursehub/internal/app/models/dto"
	"github.com/mkowalski/coursehub/internal/pkg/logger"
)

// CourseService defines the interface for instructor course management
type CourseService interface {
	CreateCourse(ctx context.Context, instructorID int64, req *dto.CreateCourseRequest) (*dto.CourseResponse, error)
	GetCourse(ctx context.Context, instructorID, courseID int64) (*dto.CourseResponse, error)
	GetCourses(ctx context.Context, instructorID int64, page, size int) (*dto.CourseListResponse, error)
	UpdateCourse(ctx context.Context, instructorID, courseID int64, req *dto.UpdateCourseRequest) (*dto.CourseResponse, error)
	DeleteCourse(ctx context.Context, instructorID, courseID int64) error
}

// courseServiceImpl implements CourseService
type courseServiceImpl struct {
	courseRepo  CourseRepository
	editionRepo EditionRepository
}

// NewCourseService creates a new CourseService
func NewCourseService(courseRepo CourseRepository, editionRepo EditionRepository) CourseService {
	return &courseServiceImpl{
		courseRepo:  courseRepo,
		editionRepo: editionRepo,
	}
}

func newCourseResponse(course *models.Course) *dto.CourseResponse {
	resp := &dto.CourseResponse{
		ID:                 course.ID,
		Name:               course.Name,
		Description:        course.Description,
		IsVisible:          course.IsVisible,
		PendingEnrollments: course.PendingEnrollments,
	}
	if course.Instructor != nil {
		resp.Instructor = newUserResponse(course.Instructor)
	}
	if course.Edition != nil {
		resp.Edition = &dto.EditionResponse{ID: course.Edition.ID, Name: course.Edition.Name}
	}
	return resp
}

// getOwnedCourse loads a course and verifies ownership. A course owned by
// another instructor is reported as not found, never as forbidden.
func (s *courseServiceImpl) getOwnedCourse(ctx context.Context, instructorID, courseID int64) (*models.Course, error) {
	return requireOwnedCourse(ctx, s.courseRepo, instructorID, courseID)
}

// CreateCourse creates a course owned by the calling instructor. New courses
// stay hidden from the catalog unless the request says otherwise.
func (s *courseServiceImpl) CreateCourse(ctx context.Context, instructorID int64, req *dto.CreateCourseRequest) (*dto.CourseResponse, error) {
	if _, err := s.editionRepo.GetEditionByID(ctx, req.EditionID); err != nil {
		return nil, err
	}

	isVisible := false
	if req.IsVisible != nil {
		isVisible = *req.IsVisible
	}

	course := &models.Course{
		Name:         req.Name,
		Description:  req.Description,
		IsVisible:    isVisible,
		InstructorID: instructorID,
		EditionID:    req.EditionID,
	}

	id, err := s.courseRepo.CreateCourse(ctx, course)
	if err != nil {
		return nil, err
	}

	logger.Info().Int64("courseId", id).Int64("instructorId", instructorID).Msg("Course created")

	created, err := s.courseRepo.GetCourseByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return newCourseResponse(created), nil
}

// GetCourse retrieves one of the instructor's own courses.
func (s *courseServiceImpl) GetCourse(ctx context.Context, instructorID, courseID int64) (*dto.CourseResponse, error) {
	course, err := s.getOwnedCourse(ctx, instructorID, courseID)
	if err != nil {
		return nil, err
	}

	return newCourseResponse(course), nil
}

// GetCourses retrieves the instructor's own courses, visible or not.
func (s *courseServiceImpl) GetCourses(ctx context.Context, instructorID int64, page, size int) (*dto.CourseListResponse, error) {
	courses, pagination, err := s.courseRepo.GetCoursesByInstructor(ctx, instructorID, page, size)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.CourseResponse, 0, len(courses))
	for _, course := range courses {
		responses = append(responses, *newCourseResponse(course))
	}

	return &dto.CourseListResponse{Courses: responses, Pagination: pagination}, nil
}

// UpdateCourse updates one of the instructor's own courses. Omitted fields
// keep their current value.
func (s *courseServiceImpl) UpdateCourse(ctx context.Context, instructorID, courseID int64, req *dto.UpdateCourseRequest) (*dto.CourseResponse, error) {
	course, err := s.getOwnedCourse(ctx, instructorID, courseID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		course.Name = *req.Name
	}
	if req.Description != nil {
		course.Description = *req.Description
	}
	if req.IsVisible != nil {
		course.IsVisible = *req.IsVisible
	}
	if req.EditionID != nil {
		if _, err := s.editionRepo.GetEditionByID(ctx, *req.EditionID); err != nil {
			return nil, err
		}
		course.EditionID = *req.EditionID
	}

	if err := s.courseRepo.UpdateCourse(ctx, course); err != nil {
		return nil, err
	}

	updated, err := s.courseRepo.GetCourseByID(ctx, courseID)
	if err != nil {
		return nil, err
	}

	return newCourseResponse(updated), nil
}

// DeleteCourse deletes one of the instructor's own courses together with its
// lessons, attachments and enrollments.
func (s *courseServiceImpl) DeleteCourse(ctx context.Context, instructorID, courseID int64) error {
	if _, err := s.getOwnedCourse(ctx, instructorID, courseID); err != nil {
		return err
	}

	if err := s.courseRepo.DeleteCourse(ctx, courseID); err != nil {
		return err
	}

	logger.Info().Int64("courseId", courseID).Int64("instructorId", instructorID).Msg("Course deleted")
	return nil
}
