package repository

import (
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/hireboard/hireboard/internal/models"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	return db, mock
}

func TestCreateWithProfile_RollsBackWhenProfileFails(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO `users`")).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO `companies`")).
		WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	user := &models.User{Email: "a@test.com", Name: "Anna", Role: models.RoleEmployer, IsActive: true}
	err := repo.CreateWithProfile(user, &models.Company{Name: "Anna"}, nil)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCreateProfile)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateWithProfile_LinksPortfolio(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO `users`")).
		WillReturnResult(sqlmock.NewResult(42, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO `portfolios`")).
		WillReturnResult(sqlmock.NewResult(7, 1))
	mock.ExpectCommit()

	user := &models.User{Email: "b@test.com", Name: "Boris", Role: models.RoleSeeker, IsActive: true}
	portfolio := &models.Portfolio{Title: "Portfolio of Boris", Profession: "Specialist", IsPublic: true}
	require.NoError(t, repo.CreateWithProfile(user, nil, portfolio))

	assert.Equal(t, uint64(42), user.ID)
	assert.Equal(t, uint64(42), portfolio.UserID)
	assert.NotNil(t, portfolio.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateWithProfile_UserFailureSkipsProfile(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO `users`")).
		WillReturnError(errors.New("Error 1062 (23000): Duplicate entry 'c@test.com' for key 'users.email'"))
	mock.ExpectRollback()

	err := repo.CreateWithProfile(&models.User{Email: "c@test.com"}, nil, &models.Portfolio{Title: "t", Profession: "p"})
	require.ErrorIs(t, err, ErrCreateUser)
	assert.True(t, IsDuplicateKey(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestToggleActive_SingleStatement(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewVacancyRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE `vacancies` SET `is_active`=NOT is_active")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.ToggleActive(3))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIsDuplicateKey(t *testing.T) {
	assert.True(t, IsDuplicateKey(gorm.ErrDuplicatedKey))
	assert.True(t, IsDuplicateKey(errors.New("UNIQUE constraint failed: applications.vacancy_id")))
	assert.False(t, IsDuplicateKey(errors.New("connection refused")))
	assert.False(t, IsDuplicateKey(nil))
	assert.True(t, IsNotFound(gorm.ErrRecordNotFound))
}
