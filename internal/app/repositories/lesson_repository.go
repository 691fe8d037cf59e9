package repositories

import (
	"context"
	"errors"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/mkowalski/coursehub/internal/app/models"
	"github.com/mkowalski/coursehub/internal/db"
	"github.com/mkowalski/coursehub/internal/pkg/apperrors"
	"github.com/mkowalski/coursehub/internal/pkg/logger"
)

// LessonRepository handles database operations for lessons.
type LessonRepository struct {
	DB db.Querier
}

// NewLessonRepository creates a new LessonRepository instance.
func NewLessonRepository(pool db.Querier) *LessonRepository {
	return &LessonRepository{DB: pool}
}

func selectLessonQuery() squirrel.SelectBuilder {
	return squirrel.Select(
		"id", "title", "description", "is_published", "course_id",
		"(SELECT count(*) FROM attachments a WHERE a.lesson_id = lessons.id) as attachment_count",
	).From("lessons").
		PlaceholderFormat(squirrel.Dollar)
}

func scanLesson(row pgx.Row) (*models.Lesson, error) {
	var lesson models.Lesson
	err := row.Scan(&lesson.ID, &lesson.Title, &lesson.Description, &lesson.IsPublished, &lesson.CourseID, &lesson.AttachmentCount)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrLessonNotFound
		}
		logger.Error().Err(err).Msg("Error scanning lesson row")
		return nil, err
	}
	return &lesson, nil
}

// CreateLesson inserts a new lesson and returns its ID.
func (r *LessonRepository) CreateLesson(ctx context.Context, lesson *models.Lesson) (int64, error) {
	sql, args, err := squirrel.Insert("lessons").
		Columns("title", "description", "is_published", "course_id").
		Values(lesson.Title, lesson.Description, lesson.IsPublished, lesson.CourseID).
		Suffix("RETURNING id").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create lesson SQL")
		return 0, err
	}

	var id int64
	err = r.DB.QueryRow(ctx, sql, args...).Scan(&id)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing create lesson query")
		return 0, err
	}

	return id, nil
}

// GetLessonByID retrieves a lesson by ID.
func (r *LessonRepository) GetLessonByID(ctx context.Context, id int64) (*models.Lesson, error) {
	sqlStr, args, err := selectLessonQuery().Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get lesson by ID SQL")
		return nil, err
	}

	return scanLesson(r.DB.QueryRow(ctx, sqlStr, args...))
}

// GetLessonsByCourse retrieves a course's lessons ordered by title. When
// onlyPublished is set, unpublished lessons are filtered out.
func (r *LessonRepository) GetLessonsByCourse(ctx context.Context, courseID int64, onlyPublished bool) ([]*models.Lesson, error) {
	builder := selectLessonQuery().
		Where(squirrel.Eq{"course_id": courseID}).
		OrderBy("title ASC")
	if onlyPublished {
		builder = builder.Where(squirrel.Eq{"is_published": true})
	}

	sqlStr, args, err := builder.ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get lessons by course SQL")
		return nil, err
	}

	rows, err := r.DB.Query(ctx, sqlStr, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing get lessons by course query")
		return nil, err
	}
	defer rows.Close()

	lessons := make([]*models.Lesson, 0)
	for rows.Next() {
		lesson, err := scanLesson(rows)
		if err != nil {
			return nil, err
		}
		lessons = append(lessons, lesson)
	}

	if err = rows.Err(); err != nil {
		logger.Error().Err(err).Msg("Error iterating through lesson rows")
		return nil, err
	}

	return lessons, nil
}

// UpdateLesson updates a lesson's editable fields.
func (r *LessonRepository) UpdateLesson(ctx context.Context, lesson *models.Lesson) error {
	sql, args, err := squirrel.Update("lessons").
		Set("title", lesson.Title).
		Set("description", lesson.Description).
		Set("is_published", lesson.IsPublished).
		Where(squirrel.Eq{"id": lesson.ID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building update lesson SQL")
		return err
	}

	cmdTag, err := r.DB.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing update lesson query")
		return err
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrLessonNotFound
	}

	return nil
}

// DeleteLesson deletes a lesson; attachments cascade.
func (r *LessonRepository) DeleteLesson(ctx context.Context, id int64) error {
	sql, args, err := squirrel.Delete("lessons").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building delete lesson SQL")
		return err
	}

	cmdTag, err := r.DB.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing delete lesson query")
		return err
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrLessonNotFound
	}

	return nil
}
