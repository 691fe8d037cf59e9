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

// AttachmentRepository handles database operations for lesson attachments.
type AttachmentRepository struct {
	DB db.Querier
}

// NewAttachmentRepository creates a new AttachmentRepository instance.
func NewAttachmentRepository(pool db.Querier) *AttachmentRepository {
	return &AttachmentRepository{DB: pool}
}

func selectAttachmentQuery() squirrel.SelectBuilder {
	return squirrel.Select("id", "original_filename", "file_path", "download_count", "lesson_id").
		From("attachments").
		PlaceholderFormat(squirrel.Dollar)
}

func scanAttachment(row pgx.Row) (*models.Attachment, error) {
	var attachment models.Attachment
	err := row.Scan(&attachment.ID, &attachment.OriginalFilename, &attachment.FilePath, &attachment.DownloadCount, &attachment.LessonID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrAttachmentNotFound
		}
		logger.Error().Err(err).Msg("Error scanning attachment row")
		return nil, err
	}
	return &attachment, nil
}

// CreateAttachment inserts a new attachment record and returns its ID.
func (r *AttachmentRepository) CreateAttachment(ctx context.Context, attachment *models.Attachment) (int64, error) {
	sql, args, err := squirrel.Insert("attachments").
		Columns("original_filename", "file_path", "lesson_id").
		Values(attachment.OriginalFilename, attachment.FilePath, attachment.LessonID).
		Suffix("RETURNING id").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create attachment SQL")
		return 0, err
	}

	var id int64
	err = r.DB.QueryRow(ctx, sql, args...).Scan(&id)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing create attachment query")
		return 0, err
	}

	return id, nil
}

// GetAttachmentByID retrieves an attachment by ID.
func (r *AttachmentRepository) GetAttachmentByID(ctx context.Context, id int64) (*models.Attachment, error) {
	sqlStr, args, err := selectAttachmentQuery().Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get attachment by ID SQL")
		return nil, err
	}

	return scanAttachment(r.DB.QueryRow(ctx, sqlStr, args...))
}

// GetAttachmentsByLesson retrieves all attachments of a lesson ordered by
// original filename.
func (r *AttachmentRepository) GetAttachmentsByLesson(ctx context.Context, lessonID int64) ([]*models.Attachment, error) {
	sqlStr, args, err := selectAttachmentQuery().
		Where(squirrel.Eq{"lesson_id": lessonID}).
		OrderBy("original_filename ASC").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get attachments by lesson SQL")
		return nil, err
	}

	rows, err := r.DB.Query(ctx, sqlStr, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing get attachments by lesson query")
		return nil, err
	}
	defer rows.Close()

	attachments := make([]*models.Attachment, 0)
	for rows.Next() {
		attachment, err := scanAttachment(rows)
		if err != nil {
			return nil, err
		}
		attachments = append(attachments, attachment)
	}

	if err = rows.Err(); err != nil {
		logger.Error().Err(err).Msg("Error iterating through attachment rows")
		return nil, err
	}

	return attachments, nil
}

// CountAttachmentsByLesson returns the number of attachments on a lesson.
func (r *AttachmentRepository) CountAttachmentsByLesson(ctx context.Context, lessonID int64) (int, error) {
	sqlStr, args, err := squirrel.Select("count(*)").
		From("attachments").
		Where(squirrel.Eq{"lesson_id": lessonID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building count attachments SQL")
		return 0, err
	}

	var count int
	if err := r.DB.QueryRow(ctx, sqlStr, args...).Scan(&count); err != nil {
		logger.Error().Err(err).Msg("Error executing count attachments query")
		return 0, err
	}

	return count, nil
}

// IncrementDownloadCount bumps the download counter for an attachment.
func (r *AttachmentRepository) IncrementDownloadCount(ctx context.Context, id int64) error {
	sqlStr, args, err := squirrel.Update("attachments").
		Set("download_count", squirrel.Expr("download_count + 1")).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building increment download count SQL")
		return err
	}

	cmdTag, err := r.DB.Exec(ctx, sqlStr, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing increment download count query")
		return err
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrAttachmentNotFound
	}

	return nil
}

// DeleteAttachment deletes an attachment record.
func (r *AttachmentRepository) DeleteAttachment(ctx context.Context, id int64) error {
	sqlStr, args, err := squirrel.Delete("attachments").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building delete attachment SQL")
		return err
	}

	cmdTag, err := r.DB.Exec(ctx, sqlStr, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing delete attachment query")
		return err
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrAttachmentNotFound
	}

	return nil
}
