package repositories

import (
	"context"
	"testing"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkowalski/coursehub/internal/app/models"
	"github.com/mkowalski/coursehub/internal/db"
	"github.com/mkowalski/coursehub/internal/pkg/apperrors"
)

func newEnrollmentRepoWithMock(t *testing.T) (*EnrollmentRepository, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return NewEnrollmentRepository(&db.PostgresDB{Pool: mock}), mock
}

func TestBulkUpdateEnrollments_LocksThenUpdatesInOneTransaction(t *testing.T) {
	repo, mock := newEnrollmentRepoWithMock(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT id FROM enrollments WHERE course_id = \$1 AND id IN \(\$2,\$3\) FOR UPDATE`).
		WithArgs(int64(7), int64(3), int64(4)).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(3)).AddRow(int64(4)))
	mock.ExpectExec(`UPDATE enrollments SET status = \$1 WHERE course_id = \$2 AND id IN \(\$3,\$4\)`).
		WithArgs(models.EnrollmentApproved, int64(7), int64(3), int64(4)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 2))
	mock.ExpectCommit()

	updated, err := repo.BulkUpdateEnrollments(context.Background(), 7, models.BulkActionApprove, []int64{3, 4})

	require.NoError(t, err)
	assert.Equal(t, 2, updated)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBulkUpdateEnrollments_MismatchRollsBackWithoutMutation(t *testing.T) {
	repo, mock := newEnrollmentRepoWithMock(t)

	// Only one of the two requested IDs belongs to the course; the lock
	// query comes back short and no UPDATE may follow.
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT id FROM enrollments WHERE course_id = \$1 AND id IN \(\$2,\$3\) FOR UPDATE`).
		WithArgs(int64(7), int64(3), int64(99)).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(3)))
	mock.ExpectRollback()

	updated, err := repo.BulkUpdateEnrollments(context.Background(), 7, models.BulkActionApprove, []int64{3, 99})

	assert.ErrorIs(t, err, apperrors.ErrEnrollmentMismatch)
	assert.Zero(t, updated)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBulkUpdateEnrollments_DeleteActionRemovesRows(t *testing.T) {
	repo, mock := newEnrollmentRepoWithMock(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT id FROM enrollments WHERE course_id = \$1 AND id IN \(\$2,\$3\) FOR UPDATE`).
		WithArgs(int64(7), int64(3), int64(4)).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(3)).AddRow(int64(4)))
	mock.ExpectExec(`DELETE FROM enrollments WHERE course_id = \$1 AND id IN \(\$2,\$3\)`).
		WithArgs(int64(7), int64(3), int64(4)).
		WillReturnResult(pgxmock.NewResult("DELETE", 2))
	mock.ExpectCommit()

	updated, err := repo.BulkUpdateEnrollments(context.Background(), 7, models.BulkActionDelete, []int64{3, 4})

	require.NoError(t, err)
	assert.Equal(t, 2, updated)
	assert.NoError(t, mock.ExpectationsWereMet())
}
