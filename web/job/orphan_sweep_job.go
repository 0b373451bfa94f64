// Package job contains scheduled maintenance jobs run by the web server's
// cron instance.
package job

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Tushar-web474/ImageForge/config"
	"github.com/Tushar-web474/ImageForge/database"
	"github.com/Tushar-web474/ImageForge/database/model"
	"github.com/Tushar-web474/ImageForge/logger"
)

// orphanMinAge keeps the sweep away from files a request is still writing.
const orphanMinAge = time.Hour

// OrphanSweepJob reclaims image files with no matching history row and
// stale temp files left behind by interrupted edits. Generation writes the
// file before the row, so a crash in between leaves exactly this debris.
type OrphanSweepJob struct{}

func NewOrphanSweepJob() *OrphanSweepJob {
	return new(OrphanSweepJob)
}

func (j *OrphanSweepJob) Run() {
	folder := config.GetImageFolderPath()
	entries, err := os.ReadDir(folder)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Warning("orphan sweep: reading image folder:", err)
		}
		return
	}

	cutoff := time.Now().Add(-orphanMinAge)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil || info.ModTime().After(cutoff) {
			continue
		}

		path := filepath.Join(folder, entry.Name())
		switch {
		case strings.HasSuffix(entry.Name(), ".tmp"):
			j.remove(path, "stale temp file")
		case strings.HasSuffix(entry.Name(), ".png") && !j.hasRecord(path):
			j.remove(path, "orphaned image")
		}
	}
}

func (j *OrphanSweepJob) hasRecord(path string) bool {
	db := database.GetDB()
	var count int64
	err := db.Model(model.ImageRecord{}).
		Where("image_path = ?", path).
		Count(&count).
		Error
	if err != nil {
		logger.Warning("orphan sweep: counting records:", err)
		return true
	}
	return count > 0
}

func (j *OrphanSweepJob) remove(path, kind string) {
	if err := os.Remove(path); err != nil {
		logger.Warningf("orphan sweep: removing %s %s: %v", kind, path, err)
		return
	}
	logger.Debugf("orphan sweep: removed %s %s", kind, path)
}
