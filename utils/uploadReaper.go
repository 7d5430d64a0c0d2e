package utils

import (
	"academy/config"
	"academy/database"
	"academy/repository"
	"academy/storage"
	"log"
	"time"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// ReapOrphanUploads removes files in the upload directory that no CourseFile
// row points at and that are older than grace. Fresh files are kept so an
// upload whose row is still being written is never removed.
func ReapOrphanUploads(db *gorm.DB, store *storage.LocalStorage, grace time.Duration, now time.Time) ([]string, error) {
	known, err := repository.StoredFilenames(db)
	if err != nil {
		return nil, err
	}
	entries, err := store.Entries()
	if err != nil {
		return nil, err
	}

	var removed []string
	for _, e := range entries {
		if _, ok := known[e.Name]; ok {
			continue
		}
		if now.Sub(e.ModTime) < grace {
			continue
		}
		if err := store.Remove(e.Name); err != nil {
			log.Printf("[UPLOAD-REAPER] Error removing %s: %v", e.Name, err)
			continue
		}
		removed = append(removed, e.Name)
	}
	return removed, nil
}

// InitializeUploadReaper schedules ReapOrphanUploads. It returns nil when no
// schedule is configured.
func InitializeUploadReaper(cfg *config.Config, store *storage.LocalStorage) (*cron.Cron, error) {
	if cfg.UploadReaperSchedule == "" {
		log.Println("[UPLOAD-REAPER] UPLOAD_REAPER_SCHEDULE not set, reaper disabled")
		return nil, nil
	}

	grace := time.Duration(cfg.UploadReaperGraceHours) * time.Hour
	c := cron.New()
	_, err := c.AddFunc(cfg.UploadReaperSchedule, func() {
		log.Println("[UPLOAD-REAPER] Scanning upload directory...")
		removed, err := ReapOrphanUploads(database.Database.Db, store, grace, time.Now())
		if err != nil {
			log.Printf("[UPLOAD-REAPER] Error: %v", err)
			return
		}
		log.Printf("[UPLOAD-REAPER] Removed %d orphaned files", len(removed))
	})
	if err != nil {
		return nil, err
	}

	c.Start()
	log.Printf("[UPLOAD-REAPER] Upload reaper started with schedule %q", cfg.UploadReaperSchedule)
	return c, nil
}
