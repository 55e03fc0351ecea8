package database

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/yukikurage/portal-api/internal/logging"
	"github.com/yukikurage/portal-api/internal/models"
)

// AddIndexes makes sure the lookup and filter indexes exist. AutoMigrate creates them on a
// fresh schema; this also repairs databases created before an index was declared.
func AddIndexes(db *gorm.DB) error {
	indexes := []struct {
		model interface{}
		name  string
	}{
		// Natural-key lookups
		{&models.Project{}, "idx_projects_name"},
		{&models.Server{}, "idx_servers_name"},
		{&models.Environment{}, "idx_environments_type"},
		{&models.DailyNote{}, "idx_daily_notes_date"},

		// Foreign keys
		{&models.Environment{}, "idx_environments_project_id"},
		{&models.Environment{}, "idx_environments_server_id"},
		{&models.Task{}, "idx_tasks_project_id"},

		// Task filters and stats
		{&models.Task{}, "idx_tasks_status"},
		{&models.Task{}, "idx_tasks_priority"},
		{&models.Task{}, "idx_tasks_updated_at"},
	}

	migrator := db.Migrator()
	for _, idx := range indexes {
		if migrator.HasIndex(idx.model, idx.name) {
			continue
		}
		if err := migrator.CreateIndex(idx.model, idx.name); err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}
		logging.Logger.WithField("index", idx.name).Info("Created index")
	}

	return nil
}
