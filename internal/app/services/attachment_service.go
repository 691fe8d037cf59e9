package services

import (
	"context"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/mkowalski/coursehub/internal/app/models"
	"github.com/mkowalski/coursehub/internal/app/models/dto"
	"github.com/mkowalski/coursehub/internal/pkg/apperrors"
	"github.com/mkowalski/coursehub/internal/pkg/filestorage"
	"github.com/mkowalski/coursehub/internal/pkg/logger"
)

// AttachmentService defines the interface for instructor attachment
// management. Admission checks run before any file touches the disk.
type AttachmentService interface {
	UploadAttachment(ctx context.Context, instructorID, courseID, lessonID int64, fileHeader *multipart.FileHeader) (*dto.AttachmentResponse, error)
	DeleteAttachment(ctx context.Context, instructorID, courseID, lessonID, attachmentID int64) error
}

// attachmentServiceImpl implements AttachmentService
type attachmentServiceImpl struct {
	courseRepo     CourseRepository
	lessonRepo     LessonRepository
	attachmentRepo AttachmentRepository
	storage        filestorage.FileStorage
}

// NewAttachmentService creates a new AttachmentService
func NewAttachmentService(courseRepo CourseRepository, lessonRepo LessonRepository, attachmentRepo AttachmentRepository, storage filestorage.FileStorage) AttachmentService {
	return &attachmentServiceImpl{
		courseRepo:     courseRepo,
		lessonRepo:     lessonRepo,
		attachmentRepo: attachmentRepo,
		storage:        storage,
	}
}

func (s *attachmentServiceImpl) getOwnedLesson(ctx context.Context, instructorID, courseID, lessonID int64) (*models.Lesson, error) {
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

// validateUpload applies the admission rules: per-lesson cap, extension
// allow-list and size limit, in that order.
func (s *attachmentServiceImpl) validateUpload(ctx context.Context, lessonID int64, fileHeader *multipart.FileHeader) error {
	count, err := s.attachmentRepo.CountAttachmentsByLesson(ctx, lessonID)
	if err != nil {
		return err
	}
	if count >= models.MaxAttachmentsPerLesson {
		return apperrors.ErrAttachmentLimitReached
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if !models.AllowedAttachmentExtensions[ext] {
		return apperrors.NewCustomError(apperrors.ErrFileExtensionNotAllowed, "file extension not allowed").
			WithDetails(map[string]interface{}{"extension": ext})
	}

	if fileHeader.Size > models.MaxAttachmentSize {
		return apperrors.ErrFileTooLarge
	}

	return nil
}

// UploadAttachment stores a file on one of the instructor's lessons. The
// file is only written after all admission checks pass, and removed again
// if the database insert fails.
func (s *attachmentServiceImpl) UploadAttachment(ctx context.Context, instructorID, courseID, lessonID int64, fileHeader *multipart.FileHeader) (*dto.AttachmentResponse, error) {
	if _, err := s.getOwnedLesson(ctx, instructorID, courseID, lessonID); err != nil {
		return nil, err
	}

	if err := s.validateUpload(ctx, lessonID, fileHeader); err != nil {
		return nil, err
	}

	filePath, err := s.storage.SaveFile(fileHeader, filestorage.AttachmentSubPath(courseID, lessonID))
	if err != nil {
		return nil, err
	}

	attachment := &models.Attachment{
		OriginalFilename: fileHeader.Filename,
		FilePath:         filePath,
		LessonID:         lessonID,
	}

	id, err := s.attachmentRepo.CreateAttachment(ctx, attachment)
	if err != nil {
		if delErr := s.storage.DeleteFile(filePath); delErr != nil {
			logger.Warn().Err(delErr).Str("path", filePath).Msg("Failed to remove orphaned attachment file")
		}
		return nil, err
	}
	attachment.ID = id

	logger.Info().Int64("attachmentId", id).Int64("lessonId", lessonID).Str("filename", fileHeader.Filename).Msg("Attachment uploaded")

	return &dto.AttachmentResponse{
		ID:               attachment.ID,
		OriginalFilename: attachment.OriginalFilename,
		DownloadCount:    attachment.DownloadCount,
		LessonID:         attachment.LessonID,
	}, nil
}

// DeleteAttachment removes an attachment record and its stored file.
func (s *attachmentServiceImpl) DeleteAttachment(ctx context.Context, instructorID, courseID, lessonID, attachmentID int64) error {
	if _, err := s.getOwnedLesson(ctx, instructorID, courseID, lessonID); err != nil {
		return err
	}

	attachment, err := s.attachmentRepo.GetAttachmentByID(ctx, attachmentID)
	if err != nil {
		return err
	}
	if attachment.LessonID != lessonID {
		return apperrors.ErrAttachmentNotFound
	}

	if err := s.attachmentRepo.DeleteAttachment(ctx, attachmentID); err != nil {
		return err
	}

	if err := s.storage.DeleteFile(attachment.FilePath); err != nil {
		logger.Warn().Err(err).Str("path", attachment.FilePath).Msg("Failed to delete attachment file")
	}

	return nil
}
