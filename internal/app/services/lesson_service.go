package services

import (
	"context"

	"github.com/mkowalski/coursehub/internal/app/models"
	"github.com/mkowalski/coursehub/internal/app/models/dto"
	"github.com/mkowalski/coursehub/internal/pkg/apperrors"
	"github.com/mkowalski/coursehub/internal/pkg/filestorage"
	"github.com/mkowalski/coursehub/internal/pkg/logger"
)

// LessonService defines the interface for instructor lesson management
type LessonService interface {
	CreateLesson(ctx context.Context, instructorID, courseID int64, req *dto.CreateLessonRequest) (*dto.LessonResponse, error)
	GetLesson(ctx context.Context, instructorID, courseID, lessonID int64) (*dto.LessonDetailResponse, error)
	GetLessons(ctx context.Context, instructorID, courseID int64) ([]dto.LessonResponse, error)
	UpdateLesson(ctx context.Context, instructorID, courseID, lessonID int64, req *dto.UpdateLessonRequest) (*dto.LessonResponse, error)
	DeleteLesson(ctx context.Context, instructorID, courseID, lessonID int64) error
}

// lessonServiceImpl implements LessonService
type lessonServiceImpl struct {
	courseRepo     CourseRepository
	lessonRepo     LessonRepository
	attachmentRepo AttachmentRepository
	storage        filestorage.FileStorage
}

// NewLessonService creates a new LessonService
func NewLessonService(courseRepo CourseRepository, lessonRepo LessonRepository, attachmentRepo AttachmentRepository, storage filestorage.FileStorage) LessonService {
	return &lessonServiceImpl{
		courseRepo:     courseRepo,
		lessonRepo:     lessonRepo,
		attachmentRepo: attachmentRepo,
		storage:        storage,
	}
}

func newLessonResponse(lesson *models.Lesson) *dto.LessonResponse {
	return &dto.LessonResponse{
		ID:              lesson.ID,
		Title:           lesson.Title,
		Description:     lesson.Description,
		IsPublished:     lesson.IsPublished,
		CourseID:        lesson.CourseID,
		AttachmentCount: lesson.AttachmentCount,
	}
}

// requireOwnedCourse verifies the course exists and belongs to the
// instructor. Foreign courses read as missing.
func requireOwnedCourse(ctx context.Context, courseRepo CourseRepository, instructorID, courseID int64) (*models.Course, error) {
	course, err := courseRepo.GetCourseByID(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if course.InstructorID != instructorID {
		return nil, apperrors.ErrCourseNotFound
	}
	return course, nil
}

// getOwnedLesson loads a lesson and verifies it belongs to the instructor's
// course.
func (s *lessonServiceImpl) getOwnedLesson(ctx context.Context, instructorID, courseID, lessonID int64) (*models.Lesson, error) {
	if _, err := requireOwnedCourse(ctx, s.courseRepo, instructorID, courseID); err != nil {
		return nil, err
	}

	lesson, err := s.lessonRepo.GetLessonByID(ctx, lessonID)
	if err != nil {
		return nil, err
	}
	if lesson.CourseID != courseID {
		return nil, apperrors.ErrLessonNotFound
	}
	return lesson, nil
}

// CreateLesson creates a lesson in one of the instructor's courses. New
// lessons start unpublished unless the request says otherwise.
func (s *lessonServiceImpl) CreateLesson(ctx context.Context, instructorID, courseID int64, req *dto.CreateLessonRequest) (*dto.LessonResponse, error) {
	if _, err := requireOwnedCourse(ctx, s.courseRepo, instructorID, courseID); err != nil {
		return nil, err
	}

	isPublished := false
	if req.IsPublished != nil {
		isPublished = *req.IsPublished
	}

	lesson := &models.Lesson{
		Title:       req.Title,
		Description: req.Description,
		IsPublished: isPublished,
		CourseID:    courseID,
	}

	id, err := s.lessonRepo.CreateLesson(ctx, lesson)
	if err != nil {
		return nil, err
	}
	lesson.ID = id

	logger.Info().Int64("lessonId", id).Int64("courseId", courseID).Msg("Lesson created")
	return newLessonResponse(lesson), nil
}

// GetLesson retrieves a lesson with its attachments, published or not.
func (s *lessonServiceImpl) GetLesson(ctx context.Context, instructorID, courseID, lessonID int64) (*dto.LessonDetailResponse, error) {
	lesson, err := s.getOwnedLesson(ctx, instructorID, courseID, lessonID)
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
		LessonResponse: *newLessonResponse(lesson),
		Attachments:    attachmentResponses,
	}, nil
}

// GetLessons lists all lessons of one of the instructor's courses,
// including unpublished drafts.
func (s *lessonServiceImpl) GetLessons(ctx context.Context, instructorID, courseID int64) ([]dto.LessonResponse, error) {
	if _, err := requireOwnedCourse(ctx, s.courseRepo, instructorID, courseID); err != nil {
		return nil, err
	}

	lessons, err := s.lessonRepo.GetLessonsByCourse(ctx, courseID, false)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.LessonResponse, 0, len(lessons))
	for _, lesson := range lessons {
		responses = append(responses, *newLessonResponse(lesson))
	}

	return responses, nil
}

// UpdateLesson updates a lesson's editable fields.
func (s *lessonServiceImpl) UpdateLesson(ctx context.Context, instructorID, courseID, lessonID int64, req *dto.UpdateLessonRequest) (*dto.LessonResponse, error) {
	lesson, err := s.getOwnedLesson(ctx, instructorID, courseID, lessonID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		lesson.Title = *req.Title
	}
	if req.Description != nil {
		lesson.Description = *req.Description
	}
	if req.IsPublished != nil {
		lesson.IsPublished = *req.IsPublished
	}

	if err := s.lessonRepo.UpdateLesson(ctx, lesson); err != nil {
		return nil, err
	}

	return newLessonResponse(lesson), nil
}

// DeleteLesson deletes a lesson, its attachment records and the stored files.
func (s *lessonServiceImpl) DeleteLesson(ctx context.Context, instructorID, courseID, lessonID int64) error {
	if _, err := s.getOwnedLesson(ctx, instructorID, courseID, lessonID); err != nil {
		return err
	}

	attachments, err := s.attachmentRepo.GetAttachmentsByLesson(ctx, lessonID)
	if err != nil {
		return err
	}

	if err := s.lessonRepo.DeleteLesson(ctx, lessonID); err != nil {
		return err
	}

	// Attachment rows cascade with the lesson; stored files are cleaned up
	// afterwards.
	for _, attachment := range attachments {
		if err := s.storage.DeleteFile(attachment.FilePath); err != nil {
			logger.Warn().Err(err).Str("path", attachment.FilePath).Msg("Failed to delete attachment file")
		}
	}

	logger.Info().Int64("lessonId", lessonID).Int64("courseId", courseID).Msg("Lesson deleted")
	return nil
}
