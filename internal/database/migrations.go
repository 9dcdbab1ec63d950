package database

import (
	"fmt"
	"log"
	"strings"

	"github.com/yukikurage/job-marketplace-api/internal/models"
	"gorm.io/gorm"
)

type secondaryIndex struct {
	model   interface{}
	table   string
	name    string
	columns []string
}

// Composite indexes for the listing and review queries. Single-column and
// unique indexes live on the model tags.
var secondaryIndexes = []secondaryIndex{
	{&models.JobListing{}, "job_listings", "idx_job_listings_active_created", []string{"is_active", "created_at"}},
	{&models.Application{}, "applications", "idx_applications_job_status", []string{"job_id", "status"}},
}

// AddIndexes creates composite indexes, skipping any that already exist.
func AddIndexes(db *gorm.DB) error {
	migrator := db.Migrator()

	for _, idx := range secondaryIndexes {
		if migrator.HasIndex(idx.model, idx.name) {
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, strings.Join(idx.columns, ", "))
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}

		log.Printf("Created index %s on %s(%s)", idx.name, idx.table, strings.Join(idx.columns, ", "))
	}

	return nil
}
