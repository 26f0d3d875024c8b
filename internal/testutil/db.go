// Package testutil holds fixtures shared by the package tests.
package testutil

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/yukikurage/team-management-api/internal/database"
	"github.com/yukikurage/team-management-api/internal/models"
	"github.com/yukikurage/team-management-api/internal/slug"
)

// NewDB opens a private in-memory SQLite database with foreign keys enforced
// and all models migrated.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(models.All()...))
	database.SetDB(db)
	return db
}

// Password is the plain text password of every employee created by CreateEmployee.
const Password = "password123"

func CreatePosition(t *testing.T, db *gorm.DB, name string) models.Position {
	t.Helper()
	position := models.Position{Name: name}
	require.NoError(t, db.Create(&position).Error)
	return position
}

func CreateEmployee(t *testing.T, db *gorm.DB, username, email string, positionID uint64) models.Employee {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(Password), bcrypt.MinCost)
	require.NoError(t, err)

	employee := models.Employee{
		Username:     username,
		Email:        email,
		FirstName:    username,
		PasswordHash: string(hash),
		PositionID:   positionID,
		Slug:         username,
	}
	require.NoError(t, db.Create(&employee).Error)
	return employee
}

func CreateTaskType(t *testing.T, db *gorm.DB, name string) models.TaskType {
	t.Helper()
	taskType := models.TaskType{Name: name}
	require.NoError(t, db.Create(&taskType).Error)
	return taskType
}

func CreateProject(t *testing.T, db *gorm.DB, name, slug string) models.Project {
	t.Helper()
	project := models.Project{Name: name, Slug: slug}
	require.NoError(t, db.Create(&project).Error)
	return project
}

// Slugify builds a fixture slug from a display name.
func Slugify(name string) string {
	return slug.Make(name)
}
