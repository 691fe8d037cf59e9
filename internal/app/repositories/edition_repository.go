package repositories

import (
	"context"
	"errors"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/mkowalski/coursehub/internal/app/models"
	"github.com/mkowalski/coursehub/internal/db"
	"github.com/mkowalski/coursehub/internal/pkg/apperrors"
	"github.com/mkowalski/coursehub/internal/pkg/dberrors"
	"github.com/mkowalski/coursehub/internal/pkg/logger"
)

// EditionRepository handles database operations for course editions.
type EditionRepository struct {
	DB db.Querier
}

// NewEditionRepository creates a new EditionRepository instance.
func NewEditionRepository(pool db.Querier) *EditionRepository {
	return &EditionRepository{DB: pool}
}

// CreateEdition inserts a new edition and returns its ID.
func (r *EditionRepository) CreateEdition(ctx context.Context, edition *models.CourseEdition) (int64, error) {
	sql, args, err := squirrel.Insert("course_editions").
		Columns("name").
		Values(edition.Name).
		Suffix("RETURNING id").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create edition SQL")
		return 0, err
	}

	var id int64
	err = r.DB.QueryRow(ctx, sql, args...).Scan(&id)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing create edition query")
		return 0, err
	}

	return id, nil
}

// GetEditionByID retrieves an edition by ID.
func (r *EditionRepository) GetEditionByID(ctx context.Context, id int64) (*models.CourseEdition, error) {
	sql, args, err := squirrel.Select("id", "name").
		From("course_editions").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get edition by ID SQL")
		return nil, err
	}

	var edition models.CourseEdition
	err = r.DB.QueryRow(ctx, sql, args...).Scan(&edition.ID, &edition.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrEditionNotFound
		}
		logger.Error().Err(err).Msg("Error executing get edition by ID query")
		return nil, err
	}

	return &edition, nil
}

// GetAllEditions retrieves all editions ordered by name.
func (r *EditionRepository) GetAllEditions(ctx context.Context) ([]*models.CourseEdition, error) {
	sql, args, err := squirrel.Select("id", "name").
		From("course_editions").
		OrderBy("name ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get all editions SQL")
		return nil, err
	}

	rows, err := r.DB.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing get all editions query")
		return nil, err
	}
	defer rows.Close()

	editions := make([]*models.CourseEdition, 0)
	for rows.Next() {
		var edition models.CourseEdition
		if err := rows.Scan(&edition.ID, &edition.Name); err != nil {
			logger.Error().Err(err).Msg("Error scanning edition row")
			return nil, err
		}
		editions = append(editions, &edition)
	}

	if err = rows.Err(); err != nil {
		logger.Error().Err(err).Msg("Error iterating through edition rows")
		return nil, err
	}

	return editions, nil
}

// UpdateEdition renames an edition.
func (r *EditionRepository) UpdateEdition(ctx context.Context, edition *models.CourseEdition) error {
	sql, args, err := squirrel.Update("course_editions").
		Set("name", edition.Name).
		Where(squirrel.Eq{"id": edition.ID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building update edition SQL")
		return err
	}

	cmdTag, err := r.DB.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing update edition query")
		return err
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrEditionNotFound
	}

	return nil
}

// DeleteEdition deletes an edition. An edition referenced by courses cannot
// be deleted and maps to ErrEditionInUse.
func (r *EditionRepository) DeleteEdition(ctx context.Context, id int64) error {
	sql, args, err := squirrel.Delete("course_editions").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building delete edition SQL")
		return err
	}

	cmdTag, err := r.DB.Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrEditionInUse
		}
		logger.Error().Err(err).Msg("Error executing delete edition query")
		return err
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrEditionNotFound
	}

	return nil
}
