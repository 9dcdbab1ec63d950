package repository

import (
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	mysqldriver "github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/job-marketplace-api/internal/models"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	return db, mock
}

func TestApplicationRepository_Create_MySQLDuplicateEntry(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewApplicationRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO `applications`")).
		WillReturnError(&mysqldriver.MySQLError{Number: 1062, Message: "Duplicate entry '1-1' for key 'idx_application_job_freelancer'"})
	mock.ExpectRollback()

	err := repo.Create(&models.Application{
		JobID:           1,
		FreelancerID:    1,
		ProposalText:    "again",
		ExpectedPayment: 100,
		Status:          models.ApplicationStatusPending,
	})

	require.ErrorIs(t, err, ErrDuplicateApplication)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestApplicationRepository_Create_MySQLSuccess(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewApplicationRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO `applications`")).
		WillReturnResult(sqlmock.NewResult(7, 1))
	mock.ExpectCommit()

	app := &models.Application{
		JobID:           1,
		FreelancerID:    2,
		ProposalText:    "hello",
		ExpectedPayment: 100,
		Status:          models.ApplicationStatusPending,
	}
	require.NoError(t, repo.Create(app))
	require.EqualValues(t, 7, app.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestApplicationRepository_UpdateStatus_RollsBackOnInterviewDeleteFailure(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewApplicationRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE `applications` SET `status`")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM `interviews`")).
		WillReturnError(&mysqldriver.MySQLError{Number: 1205, Message: "Lock wait timeout exceeded"})
	mock.ExpectRollback()

	app := &models.Application{ID: 3, Status: models.ApplicationStatusApproved}
	err := repo.UpdateStatus(app, models.ApplicationStatusRejected)

	require.Error(t, err)
	require.Equal(t, models.ApplicationStatusApproved, app.Status)
	require.NoError(t, mock.ExpectationsWereMet())
}
