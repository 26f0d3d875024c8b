package database

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type index struct {
	table   string
	name    string
	columns string
}

// Composite and join-table indexes that model tags cannot express.
var indexes = []index{
	// Default list orders
	{"tasks", "idx_tasks_listing", "is_completed, priority, deadline"},
	{"invitations", "idx_invitations_listing", "created_at, id"},
	{"projects", "idx_projects_listing", "created_at, name"},

	// Reverse lookups for the dashboard and employee deletion
	{"team_members", "idx_team_members_employee_id", "employee_id"},
	{"task_assignees", "idx_task_assignees_employee_id", "employee_id"},
	{"project_teams", "idx_project_teams_team_id", "team_id"},
}

// AddIndexes creates the indexes above when they are missing.
func AddIndexes(db *gorm.DB, log *logrus.Logger) error {
	migrator := db.Migrator()

	for _, idx := range indexes {
		if migrator.HasIndex(idx.table, idx.name) {
			log.WithField("index", idx.name).Debug("Index already exists, skipping")
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}

		log.WithFields(logrus.Fields{
			"index":   idx.name,
			"table":   idx.table,
			"columns": idx.columns,
		}).Info("Created index")
	}

	return nil
}
