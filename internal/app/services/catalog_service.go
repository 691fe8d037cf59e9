package services

import (
	"context"

	"github.com/mkowalski/coursehub/internal/app/models"
	"github.com/mkowalski/coursehub/internal/app/models/dto"
	"github.com/mkowalski/coursehub/internal/pkg/apperrors"
	"github.com/mkowalski/coursehub/internal/pkg/filestorage"
	"github.com/mkowalski/coursehub/internal/pkg/logger"
)

// CatalogService defines the student-facing course operations. Every lookup
// is filtered by visibility and the student's enrollment status: content the
// student may not reach is reported as not found, restricted content as
// forbidden.
type CatalogService interface {
	GetCatalog(ctx context.Context, studentID int64, page, size int) (*dto.CatalogListResponse, error)
	GetCourseDetail(ctx context.Context, studentID, courseID int64) (*dto.CatalogCourseDetailResponse, error)
	GetLessonDetail(ctx context.Context, studentID, courseID, lessonID int64) (*dto.LessonDetailResponse, error)
	DownloadAttachment(ctx context.Context, studentID, courseID, lessonID, attachmentID int64) (*models.Attachment, string, error)
	GetMyCourses(ctx context.Context, studentID int64, page, size int) ([]dto.MyCourseResponse, dto.PaginationInfo, error)
}

// catalogServiceImpl implements CatalogService
type catalogServiceImpl struct {
	courseRepo     CourseRepository
	lessonRepo     LessonRepository
	attachmentRepo AttachmentRepository
	enrollmentRepo EnrollmentRepository
	storage        filestorage.FileStorage
}

// NewCatalogService creates a new CatalogService
func NewCatalogService(
	courseRepo CourseRepository,
	lessonRepo LessonRepository,
	attachmentRepo AttachmentRepository,
	enrollmentRepo EnrollmentRepository,
	storage filestorage.FileStorage,
) CatalogService {
	return &catalogServiceImpl{
		courseRepo:     courseRepo,
		lessonRepo:     lessonRepo,
		attachmentRepo: attachmentRepo,
		enrollmentRepo: enrollmentRepo,
		storage:        storage,
	}
}

func newCatalogCourseResponse(course *models.Course, status *models.EnrollmentStatus) dto.CatalogCourseResponse {
	resp := dto.CatalogCourseResponse{
		ID:          course.ID,
		Name:        course.Name,
		Description: course.Description,
	}
	if course.Instructor != nil {
		resp.Instructor = newUserResponse(course.Instructor)
	}
	if course.Edition != nil {
		resp.Edition = &dto.EditionResponse{ID: course.Edition.ID, Name: course.Edition.Name}
	}
	if status != nil {
		s := string(*status)
		resp.EnrollmentStatus = &s
	}
	return resp
}

// GetCatalog lists visible courses annotated with the student's own
// enrollment status for each one.
func (s *catalogServiceImpl) GetCatalog(ctx context.Context, studentID int64, page, size int) (*dto.CatalogListResponse, error) {
	courses, pagination, err := s.courseRepo.GetVisibleCourses(ctx, page, size)
	if err != nil {
		return nil, err
	}

	courseIDs := make([]int64, 0, len(courses))
	for _, course := range courses {
		courseIDs = append(courseIDs, course.ID)
	}

	statuses, err := s.enrollmentRepo.GetStatusesForStudent(ctx, studentID, courseIDs)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.CatalogCourseResponse, 0, len(courses))
	for _, course := range courses {
		var status *models.EnrollmentStatus
		if st, ok := statuses[course.ID]; ok {
			status = &st
		}
		responses = append(responses, newCatalogCourseResponse(course, status))
	}

	return &dto.CatalogListResponse{Courses: responses, Pagination: pagination}, nil
}

// getVisibleCourse loads a course for a student. Hidden and missing courses
// are indistinguishable.
func (s *catalogServiceImpl) getVisibleCourse(ctx context.Context, courseID int64) (*models.Course, error) {
	course, err := s.courseRepo.GetCourseByID(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if !course.IsVisible {
		return nil, apperrors.ErrCourseNotFound
	}
	return course, nil
}

// requireApproved loads a visible course and verifies the student holds an
// approved enrollment for it. Pending and rejected enrollments are refused
// with the current status attached.
func (s *catalogServiceImpl) requireApproved(ctx context.Context, studentID, courseID int64) (*models.Course, error) {
	course, err := s.getVisibleCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}

	enrollment, err := s.enrollmentRepo.GetEnrollment(ctx, studentID, courseID)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrEnrollmentNotFound) {
			return nil, apperrors.NewForbiddenError("you are not enrolled in this course")
		}
		return nil, err
	}

	if enrollment.Status != models.EnrollmentApproved {
		return nil, apperrors.NewCustomError(apperrors.ErrPermissionDenied, "your enrollment is not approved").
			WithDetails(map[string]interface{}{"status": string(enrollment.Status)})
	}

	return course, nil
}

// GetCourseDetail returns a visible course with its published lessons for an
// approved student.
func (s *catalogServiceImpl) GetCourseDetail(ctx context.Context, studentID, courseID int64) (*dto.CatalogCourseDetailResponse, error) {
	course, err := s.requireApproved(ctx, studentID, courseID)
	if err != nil {
		return nil, err
	}

	lessons, err := s.lessonRepo.GetLessonsByCourse(ctx, courseID, true)
	if err != nil {
		return nil, err
	}

	lessonResponses := make([]dto.LessonSummaryResponse, 0, len(lessons))
	for _, lesson := range lessons {
		lessonResponses = append(lessonResponses, dto.LessonSummaryResponse{ID: lesson.ID, Title: lesson.Title})
	}

	approved := models.EnrollmentApproved
	return &dto.CatalogCourseDetailResponse{
		CatalogCourseResponse: newCatalogCourseResponse(course, &approved),
		Lessons:               lessonResponses,
	}, nil
}

// getPublishedLesson loads a lesson within a course for a student.
// Unpublished lessons and lessons of other courses are indistinguishable
// from missing ones.
func (s *catalogServiceImpl) getPublishedLesson(ctx context.Context, courseID, lessonID int64) (*models.Lesson, error) {
	lesson, err := s.lessonRepo.GetLessonByID(ctx, lessonID)
	if err != nil {
		return nil, err
	}
	if lesson.CourseID != courseID || !lesson.IsPublished {
		return nil, apperrors.ErrLessonNotFound
	}
	return lesson, nil
}

// GetLessonDetail returns a published lesson with its attachments for an
// approved student.
func (s *catalogServiceImpl) GetLessonDetail(ctx context.Context, studentID, courseID, lessonID int64) (*dto.LessonDetailResponse, error) {
	if _, err := s.requireApproved(ctx, studentID, courseID); err != nil {
		return nil, err
	}

	lesson, err := s.getPublishedLesson(ctx, courseID, lessonID)
	if err != nil {
		return nil, err
	}

	attachments, err := s.attachmentRepo.GetAttachmentsByLesson(ctx, lessonID)
	if err != nil {
		return nil, err
	}

	attachmentResponses := make([]dto.AttachmentResponse, 0, len(attachments))
	for _, attachment := range attachments {
		attachmentResponses = append(attachmentResponses, dto.AttachmentResponse{
			ID:               attachment.ID,
			OriginalFilename: attachment.OriginalFilename,
			DownloadCount:    attachment.DownloadCount,
			LessonID:         attachment.LessonID,
		})
	}

	return &dto.LessonDetailResponse{
		LessonResponse: dto.LessonResponse{
			ID:          lesson.ID,
			Title:       lesson.Title,
			Description: lesson.Description,
			IsPublished: lesson.IsPublished,
			CourseID:    lesson.CourseID,
		},
		Attachments: attachmentResponses,
	}, nil
}

// DownloadAttachment resolves an attachment for an approved student, bumps
// its download counter and returns the attachment with its filesystem path.
func (s *catalogServiceImpl) DownloadAttachment(ctx context.Context, studentID, courseID, lessonID, attachmentID int64) (*models.Attachment, string, error) {
	if _, err := s.requireApproved(ctx, studentID, courseID); err != nil {
		return nil, "", err
	}

	if _, err := s.getPublishedLesson(ctx, courseID, lessonID); err != nil {
		return nil, "", err
	}

	attachment, err := s.attachmentRepo.GetAttachmentByID(ctx, attachmentID)
	if err != nil {
		return nil, "", err
	}
	if attachment.LessonID != lessonID {
		return nil, "", apperrors.ErrAttachmentNotFound
	}

	if err := s.attachmentRepo.IncrementDownloadCount(ctx, attachmentID); err != nil {
		// Counter update is best effort; the download proceeds regardless.
		logger.Warn().Err(err).Int64("attachmentId", attachmentID).Msg("Failed to increment download count")
	}

	return attachment, s.storage.FullPath(attachment.FilePath), nil
}

// GetMyCourses lists the visible courses the student is approved for.
func (s *catalogServiceImpl) GetMyCourses(ctx context.Context, studentID int64, page, size int) ([]dto.MyCourseResponse, dto.PaginationInfo, error) {
	courses, pagination, err := s.courseRepo.GetApprovedCoursesForStudent(ctx, studentID, page, size)
	if err != nil {
		return nil, dto.PaginationInfo{}, err
	}

	responses := make([]dto.MyCourseResponse, 0, len(courses))
	for _, course := range courses {
		resp := dto.MyCourseResponse{ID: course.ID, Name: course.Name}
		if course.Instructor != nil {
			resp.Instructor = newUserResponse(course.Instructor)
		}
		if course.Edition != nil {
			resp.Edition = &dto.EditionResponse{ID: course.Edition.ID, Name: course.Edition.Name}
		}
		responses = append(responses, resp)
	}

	return responses, pagination, nil
}
