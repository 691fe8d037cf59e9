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

// CourseRepository handles database operations for courses.
type CourseRepository struct {
	DB db.Querier
}

// NewCourseRepository creates a new CourseRepository instance.
func NewCourseRepository(pool db.Querier) *CourseRepository {
	return &CourseRepository{DB: pool}
}

// selectCourseQuery joins the instructor and edition so that callers always
// get a fully populated course.
func selectCourseQuery() squirrel.SelectBuilder {
	return squirrel.Select(
		"c.id", "c.name", "c.description", "c.is_visible", "c.instructor_id", "c.edition_id",
		"u.email", "u.first_name", "u.last_name",
		"e.name as edition_name",
		"(SELECT count(*) FROM enrollments pe WHERE pe.course_id = c.id AND pe.status = 'pending') as pending_enrollments",
	).From("courses c").
		Join("users u ON c.instructor_id = u.id").
		Join("course_editions e ON c.edition_id = e.id").
		PlaceholderFormat(squirrel.Dollar)
}

// scanCourse scans a joined course row into a Course with its relations.
func scanCourse(row pgx.Row) (*models.Course, error) {
	var course models.Course
	var instructor models.User
	var editionName string

	err := row.Scan(
		&course.ID, &course.Name, &course.Description, &course.IsVisible, &course.InstructorID, &course.EditionID,
		&instructor.Email, &instructor.FirstName, &instructor.LastName,
		&editionName,
		&course.PendingEnrollments,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCourseNotFound
		}
		logger.Error().Err(err).Msg("Error scanning course row")
		return nil, err
	}

	instructor.ID = course.InstructorID
	instructor.RoleType = models.RoleInstructor
	course.Instructor = &instructor
	course.Edition = &models.CourseEdition{ID: course.EditionID, Name: editionName}
	return &course, nil
}

func (r *CourseRepository) queryCourses(ctx context.Context, builder squirrel.SelectBuilder) ([]*models.Course, error) {
	sqlStr, args, err := builder.ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building course list SQL")
		return nil, err
	}

	rows, err := r.DB.Query(ctx, sqlStr, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing course list query")
		return nil, err
	}
	defer rows.Close()

	courses := make([]*models.Course, 0)
	for rows.Next() {
		course, err := scanCourse(rows)
		if err != nil {
			return nil, err
		}
		courses = append(courses, course)
	}

	if err = rows.Err(); err != nil {
		logger.Error().Err(err).Msg("Error iterating through course rows")
		return nil, err
	}

	return courses, nil
}

func (r *CourseRepository) countCourses(ctx context.Context, builder squirrel.SelectBuilder) (int64, error) {
	countSql, countArgs, err := builder.ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building course count SQL")
		return 0, err
	}

	var total int64
	if err := r.DB.QueryRow(ctx, countSql, countArgs...).Scan(&total); err != nil {
		logger.Error().Err(err).Msg("Error executing course count query")
		return 0, err
	}
	return total, nil
}

// CreateCourse inserts a new course and returns its ID. A missing edition
// maps to ErrEditionNotFound.
func (r *CourseRepository) CreateCourse(ctx context.Context, course *models.Course) (int64, error) {
	sql, args, err := squirrel.Insert("courses").
		Columns("name", "description", "is_visible", "instructor_id", "edition_id").
		Values(course.Name, course.Description, course.IsVisible, course.InstructorID, course.EditionID).
		Suffix("RETURNING id").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create course SQL")
		return 0, err
	}

	var id int64
	err = r.DB.QueryRow(ctx, sql, args...).Scan(&id)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return 0, apperrors.ErrEditionNotFound
		}
		logger.Error().Err(err).Msg("Error executing create course query")
		return 0, err
	}

	return id, nil
}

// GetCourseByID retrieves a course with its instructor and edition.
func (r *CourseRepository) GetCourseByID(ctx context.Context, id int64) (*models.Course, error) {
	sqlStr, args, err := selectCourseQuery().Where(squirrel.Eq{"c.id": id}).ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get course by ID SQL")
		return nil, err
	}

	return scanCourse(r.DB.QueryRow(ctx, sqlStr, args...))
}

// GetCoursesByInstructor retrieves a paginated list of an instructor's own
// courses, visible or not.
func (r *CourseRepository) GetCoursesByInstructor(ctx context.Context, instructorID int64, page, size int) ([]*models.Course, dto.PaginationInfo, error) {
	countBuilder := squirrel.Select("count(*)").From("courses c").
		Where(squirrel.Eq{"c.instructor_id": instructorID}).
		PlaceholderFormat(squirrel.Dollar)

	totalItems, err := r.countCourses(ctx, countBuilder)
	if err != nil {
		return nil, dto.PaginationInfo{}, err
	}

	pagination := helpers.NewPaginationInfo(totalItems, page, size)
	if totalItems == 0 {
		return []*models.Course{}, pagination, nil
	}

	offset, limit := helpers.CalculateOffsetLimit(page, size)
	builder := selectCourseQuery().
		Where(squirrel.Eq{"c.instructor_id": instructorID}).
		OrderBy("c.name ASC").
		Limit(uint64(limit)).Offset(offset)

	courses, err := r.queryCourses(ctx, builder)
	if err != nil {
		return nil, dto.PaginationInfo{}, err
	}

	return courses, pagination, nil
}

// GetVisibleCourses retrieves the paginated catalog of visible courses.
func (r *CourseRepository) GetVisibleCourses(ctx context.Context, page, size int) ([]*models.Course, dto.PaginationInfo, error) {
	countBuilder := squirrel.Select("count(*)").From("courses c").
		Where(squirrel.Eq{"c.is_visible": true}).
		PlaceholderFormat(squirrel.Dollar)

	totalItems, err := r.countCourses(ctx, countBuilder)
	if err != nil {
		return nil, dto.PaginationInfo{}, err
	}

	pagination := helpers.NewPaginationInfo(totalItems, page, size)
	if totalItems == 0 {
		return []*models.Course{}, pagination, nil
	}

	offset, limit := helpers.CalculateOffsetLimit(page, size)
	builder := selectCourseQuery().
		Where(squirrel.Eq{"c.is_visible": true}).
		OrderBy("c.name ASC").
		Limit(uint64(limit)).Offset(offset)

	courses, err := r.queryCourses(ctx, builder)
	if err != nil {
		return nil, dto.PaginationInfo{}, err
	}

	return courses, pagination, nil
}

// GetApprovedCoursesForStudent retrieves the paginated list of courses the
// student is approved for. Hidden courses are excluded even when approved.
func (r *CourseRepository) GetApprovedCoursesForStudent(ctx context.Context, studentID int64, page, size int) ([]*models.Course, dto.PaginationInfo, error) {
	countBuilder := squirrel.Select("count(*)").From("courses c").
		Join("enrollments en ON en.course_id = c.id").
		Where(squirrel.Eq{"en.student_id": studentID, "en.status": models.EnrollmentApproved, "c.is_visible": true}).
		PlaceholderFormat(squirrel.Dollar)

	totalItems, err := r.countCourses(ctx, countBuilder)
	if err != nil {
		return nil, dto.PaginationInfo{}, err
	}

	pagination := helpers.NewPaginationInfo(totalItems, page, size)
	if totalItems == 0 {
		return []*models.Course{}, pagination, nil
	}

	offset, limit := helpers.CalculateOffsetLimit(page, size)
	builder := selectCourseQuery().
		Join("enrollments en ON en.course_id = c.id").
		Where(squirrel.Eq{"en.student_id": studentID, "en.status": models.EnrollmentApproved, "c.is_visible": true}).
		OrderBy("c.name ASC").
		Limit(uint64(limit)).Offset(offset)

	courses, err := r.queryCourses(ctx, builder)
	if err != nil {
		return nil, dto.PaginationInfo{}, err
	}

	return courses, pagination, nil
}

// UpdateCourse updates a course's editable fields.
func (r *CourseRepository) UpdateCourse(ctx context.Context, course *models.Course) error {
	sql, args, err := squirrel.Update("courses").
		Set("name", course.Name).
		Set("description", course.Description).
		Set("is_visible", course.IsVisible).
		Set("edition_id", course.EditionID).
		Where(squirrel.Eq{"id": course.ID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building update course SQL")
		return err
	}

	cmdTag, err := r.DB.Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrEditionNotFound
		}
		logger.Error().Err(err).Msg("Error executing update course query")
		return err
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrCourseNotFound
	}

	return nil
}

// DeleteCourse deletes a course. Lessons, attachments and enrollments go
// with it via cascading foreign keys.
func (r *CourseRepository) DeleteCourse(ctx context.Context, id int64) error {
	sql, args, err := squirrel.Delete("courses").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building delete course SQL")
		return err
	}

	cmdTag, err := r.DB.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing delete course query")
		return err
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrCourseNotFound
	}

	return nil
}
