package repository

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/traduflow-api/internal/models"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupMockDB wires a GORM handle over sqlmock so the generated SQL can
// be asserted without a live MySQL server.
func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	return db, mock
}

func userRows(users ...models.User) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{"id", "name", "email", "password_hash", "role", "created_at", "updated_at", "deleted_at"})
	for _, u := range users {
		rows.AddRow(u.ID, u.Name, u.Email, u.PasswordHash, u.Role, time.Now(), time.Now(), nil)
	}
	return rows
}

func TestGormUserRepository_Create(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `users`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	user := &models.User{
		Name:         "Maria",
		Email:        "maria@example.com",
		PasswordHash: "hash",
		Role:         models.RolePM,
	}
	err := repo.Create(user)

	require.NoError(t, err)
	assert.Equal(t, uint64(1), user.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormUserRepository_FindByEmail(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery("SELECT (.+) FROM `users` WHERE email = (.+)").
		WillReturnRows(userRows(models.User{
			ID:    7,
			Name:  "Maria",
			Email: "maria@example.com",
			Role:  models.RolePM,
		}))

	user, err := repo.FindByEmail("maria@example.com")

	require.NoError(t, err)
	assert.Equal(t, uint64(7), user.ID)
	assert.Equal(t, "maria@example.com", user.Email)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormUserRepository_FindByEmail_NotFound(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery("SELECT (.+) FROM `users` WHERE email = (.+)").
		WillReturnRows(userRows())

	_, err := repo.FindByEmail("nobody@example.com")

	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormUserRepository_FindByID(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery("SELECT (.+) FROM `users` WHERE `users`.`id` = (.+)").
		WillReturnRows(userRows(models.User{
			ID:    7,
			Name:  "Maria",
			Email: "maria@example.com",
			Role:  models.RolePM,
		}))

	user, err := repo.FindByID(7)

	require.NoError(t, err)
	assert.Equal(t, uint64(7), user.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormUserRepository_ListByRole(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery("SELECT (.+) FROM `users` WHERE role = (.+) ORDER BY name ASC").
		WillReturnRows(userRows(
			models.User{ID: 1, Name: "Ana", Email: "ana@example.com", Role: models.RoleTranslator},
			models.User{ID: 2, Name: "Bruno", Email: "bruno@example.com", Role: models.RoleTranslator},
		))

	users, err := repo.ListByRole(models.RoleTranslator)

	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "Ana", users[0].Name)
	assert.Equal(t, "Bruno", users[1].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}
