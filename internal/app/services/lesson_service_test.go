package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkowalski/coursehub/internal/app/models"
	"github.com/mkowalski/coursehub/internal/app/models/dto"
	"github.com/mkowalski/coursehub/internal/pkg/apperrors"
)

func TestCreateLesson_DefaultsUnpublished(t *testing.T) {
	courseRepo := &mockCourseRepository{course: testCourse()}
	lessonRepo := &mockLessonRepository{createID: 21}

	svc := NewLessonService(courseRepo, lessonRepo, &mockAttachmentRepository{}, &mockFileStorage{})

	resp, err := svc.CreateLesson(context.Background(), 1, 7, &dto.CreateLessonRequest{
		Title: "Sorting",
	})

	require.NoError(t, err)
	require.NotNil(t, lessonRepo.created)
	assert.False(t, lessonRepo.created.IsPublished)
	assert.Equal(t, int64(7), lessonRepo.created.CourseID)
	assert.Equal(t, int64(21), resp.ID)
}

func TestCreateLesson_ForeignCourseReadsAsMissing(t *testing.T) {
	course := testCourse()
	course.InstructorID = 99
	courseRepo := &mockCourseRepository{course: course}
	lessonRepo := &mockLessonRepository{}

	svc := NewLessonService(courseRepo, lessonRepo, &mockAttachmentRepository{}, &mockFileStorage{})

	_, err := svc.CreateLesson(context.Background(), 1, 7, &dto.CreateLessonRequest{Title: "Sorting"})

	assert.ErrorIs(t, err, apperrors.ErrCourseNotFound)
	assert.Nil(t, lessonRepo.created)
}

func TestGetLesson_ForeignLessonReadsAsMissing(t *testing.T) {
	lesson := publishedLesson()
	lesson.CourseID = 8

	courseRepo := &mockCourseRepository{course: testCourse()}
	lessonRepo := &mockLessonRepository{lesson: lesson}

	svc := NewLessonService(courseRepo, lessonRepo, &mockAttachmentRepository{}, &mockFileStorage{})

	_, err := svc.GetLesson(context.Background(), 1, 7, 21)

	assert.ErrorIs(t, err, apperrors.ErrLessonNotFound)
}

func TestGetLessons_IncludesDrafts(t *testing.T) {
	draft := &models.Lesson{ID: 22, Title: "Graphs", IsPublished: false, CourseID: 7, AttachmentCount: 3}

	courseRepo := &mockCourseRepository{course: testCourse()}
	lessonRepo := &mockLessonRepository{lessons: []*models.Lesson{publishedLesson(), draft}}

	svc := NewLessonService(courseRepo, lessonRepo, &mockAttachmentRepository{}, &mockFileStorage{})

	lessons, err := svc.GetLessons(context.Background(), 1, 7)

	require.NoError(t, err)
	require.NotNil(t, lessonRepo.listOnlyPublished)
	assert.False(t, *lessonRepo.listOnlyPublished)
	require.Len(t, lessons, 2)
	assert.Equal(t, int64(3), lessons[1].AttachmentCount)
}

func TestUpdateLesson_PublishesDraft(t *testing.T) {
	lesson := publishedLesson()
	lesson.IsPublished = false

	courseRepo := &mockCourseRepository{course: testCourse()}
	lessonRepo := &mockLessonRepository{lesson: lesson}

	svc := NewLessonService(courseRepo, lessonRepo, &mockAttachmentRepository{}, &mockFileStorage{})

	resp, err := svc.UpdateLesson(context.Background(), 1, 7, 21, &dto.UpdateLessonRequest{
		IsPublished: boolPtr(true),
	})

	require.NoError(t, err)
	require.NotNil(t, lessonRepo.updated)
	assert.True(t, lessonRepo.updated.IsPublished)
	assert.Equal(t, "Sorting", resp.Title)
}

func TestDeleteLesson_RemovesStoredFiles(t *testing.T) {
	courseRepo := &mockCourseRepository{course: testCourse()}
	lessonRepo := &mockLessonRepository{lesson: publishedLesson()}
	attachmentRepo := &mockAttachmentRepository{
		attachments: []*models.Attachment{
			{ID: 31, FilePath: "7/21/notes.pdf", LessonID: 21},
			{ID: 32, FilePath: "7/21/slides.pptx", LessonID: 21},
		},
	}
	storage := &mockFileStorage{}

	svc := NewLessonService(courseRepo, lessonRepo, attachmentRepo, storage)

	err := svc.DeleteLesson(context.Background(), 1, 7, 21)

	require.NoError(t, err)
	assert.Equal(t, int64(21), lessonRepo.deletedID)
	assert.ElementsMatch(t, []string{"7/21/notes.pdf", "7/21/slides.pptx"}, storage.deletedPaths)
}
