package services

import (
	"context"
	"errors"
	"mime/multipart"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkowalski/coursehub/internal/app/models"
	"github.com/mkowalski/coursehub/internal/pkg/apperrors"
)

func fileHeader(name string, size int64) *multipart.FileHeader {
	return &multipart.FileHeader{Filename: name, Size: size}
}

func newAttachmentServiceForTest(courseRepo *mockCourseRepository, lessonRepo *mockLessonRepository, attachmentRepo *mockAttachmentRepository, storage *mockFileStorage) AttachmentService {
	return NewAttachmentService(courseRepo, lessonRepo, attachmentRepo, storage)
}

func TestUploadAttachment_RejectsWhenLessonFull(t *testing.T) {
	courseRepo := &mockCourseRepository{course: testCourse()}
	lessonRepo := &mockLessonRepository{lesson: publishedLesson()}
	attachmentRepo := &mockAttachmentRepository{count: models.MaxAttachmentsPerLesson}
	storage := &mockFileStorage{}

	svc := newAttachmentServiceForTest(courseRepo, lessonRepo, attachmentRepo, storage)

	_, err := svc.UploadAttachment(context.Background(), 1, 7, 21, fileHeader("notes.pdf", 1024))

	assert.ErrorIs(t, err, apperrors.ErrAttachmentLimitReached)
	assert.False(t, storage.saveCalled)
}

func TestUploadAttachment_RejectsDisallowedExtension(t *testing.T) {
	courseRepo := &mockCourseRepository{course: testCourse()}
	lessonRepo := &mockLessonRepository{lesson: publishedLesson()}
	storage := &mockFileStorage{}

	svc := newAttachmentServiceForTest(courseRepo, lessonRepo, &mockAttachmentRepository{}, storage)

	_, err := svc.UploadAttachment(context.Background(), 1, 7, 21, fileHeader("setup.exe", 1024))

	require.ErrorIs(t, err, apperrors.ErrFileExtensionNotAllowed)

	var customErr *apperrors.CustomError
	require.True(t, errors.As(err, &customErr))
	assert.Equal(t, ".exe", customErr.Details["extension"])
	assert.False(t, storage.saveCalled)
}

func TestUploadAttachment_ExtensionCheckIsCaseInsensitive(t *testing.T) {
	courseRepo := &mockCourseRepository{course: testCourse()}
	lessonRepo := &mockLessonRepository{lesson: publishedLesson()}
	attachmentRepo := &mockAttachmentRepository{createID: 31}
	storage := &mockFileStorage{savedPath: "7/21/NOTES.PDF"}

	svc := newAttachmentServiceForTest(courseRepo, lessonRepo, attachmentRepo, storage)

	_, err := svc.UploadAttachment(context.Background(), 1, 7, 21, fileHeader("NOTES.PDF", 1024))

	assert.NoError(t, err)
}

func TestUploadAttachment_RejectsOversizedFile(t *testing.T) {
	courseRepo := &mockCourseRepository{course: testCourse()}
	lessonRepo := &mockLessonRepository{lesson: publishedLesson()}
	storage := &mockFileStorage{}

	svc := newAttachmentServiceForTest(courseRepo, lessonRepo, &mockAttachmentRepository{}, storage)

	_, err := svc.UploadAttachment(context.Background(), 1, 7, 21, fileHeader("notes.pdf", models.MaxAttachmentSize+1))

	assert.ErrorIs(t, err, apperrors.ErrFileTooLarge)
	assert.False(t, storage.saveCalled)
}

func TestUploadAttachment_StoresFileAndRecord(t *testing.T) {
	courseRepo := &mockCourseRepository{course: testCourse()}
	lessonRepo := &mockLessonRepository{lesson: publishedLesson()}
	attachmentRepo := &mockAttachmentRepository{createID: 31}
	storage := &mockFileStorage{savedPath: "7/21/notes.pdf"}

	svc := newAttachmentServiceForTest(courseRepo, lessonRepo, attachmentRepo, storage)

	resp, err := svc.UploadAttachment(context.Background(), 1, 7, 21, fileHeader("notes.pdf", 1024))

	require.NoError(t, err)
	assert.Equal(t, int64(31), resp.ID)
	assert.Equal(t, "notes.pdf", resp.OriginalFilename)
	assert.Equal(t, int64(21), resp.LessonID)
	assert.Zero(t, resp.DownloadCount)
	require.NotNil(t, attachmentRepo.created)
	assert.Equal(t, "7/21/notes.pdf", attachmentRepo.created.FilePath)
}

func TestUploadAttachment_RemovesFileOnInsertFailure(t *testing.T) {
	courseRepo := &mockCourseRepository{course: testCourse()}
	lessonRepo := &mockLessonRepository{lesson: publishedLesson()}
	attachmentRepo := &mockAttachmentRepository{createErr: errors.New("insert failed")}
	storage := &mockFileStorage{savedPath: "7/21/notes.pdf"}

	svc := newAttachmentServiceForTest(courseRepo, lessonRepo, attachmentRepo, storage)

	_, err := svc.UploadAttachment(context.Background(), 1, 7, 21, fileHeader("notes.pdf", 1024))

	require.Error(t, err)
	assert.Contains(t, storage.deletedPaths, "7/21/notes.pdf")
}

func TestDeleteAttachment_ForeignAttachmentReadsAsMissing(t *testing.T) {
	courseRepo := &mockCourseRepository{course: testCourse()}
	lessonRepo := &mockLessonRepository{lesson: publishedLesson()}
	attachmentRepo := &mockAttachmentRepository{
		attachment: &models.Attachment{ID: 31, LessonID: 99},
	}

	svc := newAttachmentServiceForTest(courseRepo, lessonRepo, attachmentRepo, &mockFileStorage{})

	err := svc.DeleteAttachment(context.Background(), 1, 7, 21, 31)

	assert.ErrorIs(t, err, apperrors.ErrAttachmentNotFound)
	assert.Zero(t, attachmentRepo.deletedID)
}

func TestDeleteAttachment_RemovesRecordAndFile(t *testing.T) {
	courseRepo := &mockCourseRepository{course: testCourse()}
	lessonRepo := &mockLessonRepository{lesson: publishedLesson()}
	attachmentRepo := &mockAttachmentRepository{
		attachment: &models.Attachment{ID: 31, FilePath: "7/21/notes.pdf", LessonID: 21},
	}
	storage := &mockFileStorage{}

	svc := newAttachmentServiceForTest(courseRepo, lessonRepo, attachmentRepo, storage)

	err := svc.DeleteAttachment(context.Background(), 1, 7, 21, 31)

	require.NoError(t, err)
	assert.Equal(t, int64(31), attachmentRepo.deletedID)
	assert.Contains(t, storage.deletedPaths, "7/21/notes.pdf")
}
