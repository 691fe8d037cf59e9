package repositories

import (
	"context"
	"errors"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/mkowalski/coursehub/internal/app/models"
	"github.com/mkowalski/coursehub/internal/app/models/dto"
	"github.com/mkowalski/coursehub/internal/db"
	"github.com/mkowalski/coursehub/internal/pkg/apperrors"
	"github.com/mkowalski/coursehub/internal/pkg/dberrors"
	"github.com/mkowalski/coursehub/internal/pkg/helpers"
	"github.com/mkowalski/coursehub/internal/pkg/logger"
)

// EnrollmentRepository handles database operations for enrollments. It holds
// the wrapped database rather than the bare pool because bulk updates run
// inside a transaction.
type EnrollmentRepository struct {
	database *db.PostgresDB
}

// NewEnrollmentRepository creates a new EnrollmentRepository instance.
func NewEnrollmentRepository(database *db.PostgresDB) *EnrollmentRepository {
	return &EnrollmentRepository{database: database}
}

// CreateEnrollment inserts a pending enrollment for a student. A second
// enrollment for the same (student, course) pair maps to ErrEnrollmentExists.
func (r *EnrollmentRepository) CreateEnrollment(ctx context.Context, studentID, courseID int64) (int64, error) {
	sql, args, err := squirrel.Insert("enrollments").
		Columns("student_id", "course_id", "status").
		Values(studentID, courseID, models.EnrollmentPending).
		Suffix("RETURNING id").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create enrollment SQL")
		return 0, err
	}

	var id int64
	err = r.database.Pool.QueryRow(ctx, sql, args...).Scan(&id)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return 0, apperrors.ErrEnrollmentExists
		}
		logger.Error().Err(err).Msg("Error executing create enrollment query")
		return 0, err
	}

	return id, nil
}

// GetEnrollment retrieves the enrollment of a student for a course.
func (r *EnrollmentRepository) GetEnrollment(ctx context.Context, studentID, courseID int64) (*models.Enrollment, error) {
	sqlStr, args, err := squirrel.Select("id", "student_id", "course_id", "status", "created_at").
		From("enrollments").
		Where(squirrel.Eq{"student_id": studentID, "course_id": courseID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get enrollment SQL")
		return nil, err
	}

	var enrollment models.Enrollment
	err = r.database.Pool.QueryRow(ctx, sqlStr, args...).
		Scan(&enrollment.ID, &enrollment.StudentID, &enrollment.CourseID, &enrollment.Status, &enrollment.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrEnrollmentNotFound
		}
		logger.Error().Err(err).Msg("Error executing get enrollment query")
		return nil, err
	}

	return &enrollment, nil
}

// GetStatusesForStudent returns a map of course ID to enrollment status for
// the given courses. Courses without an enrollment are absent from the map.
func (r *EnrollmentRepository) GetStatusesForStudent(ctx context.Context, studentID int64, courseIDs []int64) (map[int64]models.EnrollmentStatus, error) {
	statuses := make(map[int64]models.EnrollmentStatus)
	if len(courseIDs) == 0 {
		return statuses, nil
	}

	sqlStr, args, err := squirrel.Select("course_id", "status").
		From("enrollments").
		Where(squirrel.Eq{"student_id": studentID, "course_id": courseIDs}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get statuses for student SQL")
		return nil, err
	}

	rows, err := r.database.Pool.Query(ctx, sqlStr, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing get statuses for student query")
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var courseID int64
		var status models.EnrollmentStatus
		if err := rows.Scan(&courseID, &status); err != nil {
			logger.Error().Err(err).Msg("Error scanning enrollment status row")
			return nil, err
		}
		statuses[courseID] = status
	}

	if err = rows.Err(); err != nil {
		logger.Error().Err(err).Msg("Error iterating through enrollment status rows")
		return nil, err
	}

	return statuses, nil
}

// GetEnrollmentsByCourse retrieves a paginated list of a course's
// enrollments with the student joined, optionally filtered by status.
func (r *EnrollmentRepository) GetEnrollmentsByCourse(ctx context.Context, courseID int64, status *models.EnrollmentStatus, page, size int) ([]*models.Enrollment, dto.PaginationInfo, error) {
	countBuilder := squirrel.Select("count(*)").From("enrollments en").
		Where(squirrel.Eq{"en.course_id": courseID}).
		PlaceholderFormat(squirrel.Dollar)
	builder := squirrel.Select(
		"en.id", "en.student_id", "en.course_id", "en.status", "en.created_at",
		"u.email", "u.first_name", "u.last_name",
	).From("enrollments en").
		Join("users u ON en.student_id = u.id").
		Where(squirrel.Eq{"en.course_id": courseID}).
		PlaceholderFormat(squirrel.Dollar)

	if status != nil {
		countBuilder = countBuilder.Where(squirrel.Eq{"en.status": *status})
		builder = builder.Where(squirrel.Eq{"en.status": *status})
	}

	countSql, countArgs, err := countBuilder.ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building count enrollments SQL")
		return nil, dto.PaginationInfo{}, err
	}

	var totalItems int64
	if err := r.database.Pool.QueryRow(ctx, countSql, countArgs...).Scan(&totalItems); err != nil {
		logger.Error().Err(err).Msg("Error executing count enrollments query")
		return nil, dto.PaginationInfo{}, err
	}

	pagination := helpers.NewPaginationInfo(totalItems, page, size)
	if totalItems == 0 {
		return []*models.Enrollment{}, pagination, nil
	}

	offset, limit := helpers.CalculateOffsetLimit(page, size)
	builder = builder.OrderBy("en.created_at ASC").Limit(uint64(limit)).Offset(offset)

	sqlStr, args, err := builder.ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get enrollments by course SQL")
		return nil, dto.PaginationInfo{}, err
	}

	rows, err := r.database.Pool.Query(ctx, sqlStr, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing get enrollments by course query")
		return nil, dto.PaginationInfo{}, err
	}
	defer rows.Close()

	enrollments := make([]*models.Enrollment, 0)
	for rows.Next() {
		var enrollment models.Enrollment
		var student models.User
		err := rows.Scan(
			&enrollment.ID, &enrollment.StudentID, &enrollment.CourseID, &enrollment.Status, &enrollment.CreatedAt,
			&student.Email, &student.FirstName, &student.LastName,
		)
		if err != nil {
			logger.Error().Err(err).Msg("Error scanning enrollment row")
			return nil, dto.PaginationInfo{}, err
		}
		student.ID = enrollment.StudentID
		student.RoleType = models.RoleStudent
		enrollment.Student = &student
		enrollments = append(enrollments, &enrollment)
	}

	if err = rows.Err(); err != nil {
		logger.Error().Err(err).Msg("Error iterating through enrollment rows")
		return nil, dto.PaginationInfo{}, err
	}

	return enrollments, pagination, nil
}

// BulkUpdateEnrollments applies an action to a set of enrollments of one
// course inside a single transaction. The matched rows are locked first; if
// any requested ID does not belong to the course, the whole batch fails with
// ErrEnrollmentMismatch and nothing is changed.
func (r *EnrollmentRepository) BulkUpdateEnrollments(ctx context.Context, courseID int64, action models.BulkAction, enrollmentIDs []int64) (int, error) {
	if len(enrollmentIDs) == 0 {
		return 0, nil
	}

	updated := 0
	err := r.database.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		lockSql, lockArgs, err := squirrel.Select("id").
			From("enrollments").
			Where(squirrel.Eq{"id": enrollmentIDs, "course_id": courseID}).
			Suffix("FOR UPDATE").
			PlaceholderFormat(squirrel.Dollar).
			ToSql()
		if err != nil {
			logger.Error().Err(err).Msg("Error building lock enrollments SQL")
			return err
		}

		rows, err := tx.Query(ctx, lockSql, lockArgs...)
		if err != nil {
			logger.Error().Err(err).Msg("Error locking enrollment rows")
			return err
		}

		matched := 0
		for rows.Next() {
			var id int64
			if err := rows.Scan(&id); err != nil {
				rows.Close()
				return err
			}
			matched++
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return err
		}

		if matched != len(enrollmentIDs) {
			return apperrors.ErrEnrollmentMismatch
		}

		var execSql string
		var execArgs []interface{}
		if target, ok := action.TargetStatus(); ok {
			execSql, execArgs, err = squirrel.Update("enrollments").
				Set("status", target).
				Where(squirrel.Eq{"id": enrollmentIDs, "course_id": courseID}).
				PlaceholderFormat(squirrel.Dollar).
				ToSql()
		} else {
			execSql, execArgs, err = squirrel.Delete("enrollments").
				Where(squirrel.Eq{"id": enrollmentIDs, "course_id": courseID}).
				PlaceholderFormat(squirrel.Dollar).
				ToSql()
		}
		if err != nil {
			logger.Error().Err(err).Msg("Error building bulk update enrollments SQL")
			return err
		}

		cmdTag, err := tx.Exec(ctx, execSql, execArgs...)
		if err != nil {
			logger.Error().Err(err).Msg("Error executing bulk update enrollments")
			return err
		}

		updated = int(cmdTag.RowsAffected())
		return nil
	})
	if err != nil {
		return 0, err
	}

	return updated, nil
}
