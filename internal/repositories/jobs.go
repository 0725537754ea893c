package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/jobmapa/scraper/internal/entities"
	"gorm.io/gorm"
)

type Jobs struct {
	db *gorm.DB
}

func NewJobsRepository(db *gorm.DB) *Jobs {
	return &Jobs{db: db}
}

// Upsert atomically creates a posting or fully replaces the stored record
// with the same source URL. No field-level merging: the incoming record wins
// wholesale. Returns the stored posting and whether it was newly created.
func (j Jobs) Upsert(ctx context.Context, job entities.JobPosting) (entities.JobPosting, bool, error) {

	created := false

	err := j.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		var existing entities.JobPosting
		err := tx.Where("source_url = ?", job.SourceURL).First(&existing).Error

		if errors.Is(err, gorm.ErrRecordNotFound) {
			created = true
			return tx.Create(&job).Error
		}
		if err != nil {
			return err
		}

		job.ID = existing.ID
		job.CreatedAt = existing.CreatedAt
		return tx.Save(&job).Error
	})

	if err != nil {
		return entities.JobPosting{}, false, err
	}
	return job, created, nil
}

func (j Jobs) GetBySourceURL(ctx context.Context, sourceURL string) (*entities.JobPosting, error) {
	var job entities.JobPosting
	err := j.db.WithContext(ctx).Where("source_url = ?", sourceURL).First(&job).Error
	if err != nil {
		return nil, err
	}
	return &job, nil
}

// SourceURLs returns every stored posting URL, used by the refresh scheduler.
func (j Jobs) SourceURLs(ctx context.Context) ([]string, error) {
	var urls []string
	err := j.db.WithContext(ctx).Model(&entities.JobPosting{}).
		Order("id").
		Pluck("source_url", &urls).Error
	return urls, err
}

func (j Jobs) Count(ctx context.Context) (int64, error) {
	var count int64
	err := j.db.WithContext(ctx).Model(&entities.JobPosting{}).Count(&count).Error
	return count, err
}

// RepairListFields rewrites any stored list column that does not hold a JSON
// array to an empty one. New writes cannot produce such values; this covers
// rows imported from before that guarantee held.
func (j Jobs) RepairListFields(ctx context.Context) (int64, error) {

	columns := []string{"contract_types", "duties", "requirements", "benefits"}

	var repaired int64

	err := j.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, column := range columns {
			rows, err := tx.Model(&entities.JobPosting{}).
				Select("id", column).Rows()
			if err != nil {
				return err
			}

			var broken []int
			for rows.Next() {
				var id int
				var raw sql.NullString
				if err := rows.Scan(&id, &raw); err != nil {
					rows.Close()
					return err
				}
				if !isJSONArray(raw) {
					broken = append(broken, id)
				}
			}
			if err := rows.Close(); err != nil {
				return err
			}

			if len(broken) == 0 {
				continue
			}

			res := tx.Model(&entities.JobPosting{}).
				Where("id IN ?", broken).
				Update(column, "[]")
			if res.Error != nil {
				return res.Error
			}
			repaired += res.RowsAffected
		}
		return nil
	})

	return repaired, err
}

func isJSONArray(raw sql.NullString) bool {
	if !raw.Valid {
		return false
	}
	var items []string
	return json.Unmarshal([]byte(raw.String), &items) == nil && items != nil
}
