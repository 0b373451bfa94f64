package job

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Tushar-web474/ImageForge/database"
	"github.com/Tushar-web474/ImageForge/database/model"
	"github.com/Tushar-web474/ImageForge/logger"

	"github.com/op/go-logging"
)

func TestMain(m *testing.M) {
	logDir, _ := os.MkdirTemp("", "imageforge-test-log")
	os.Setenv("IMAGEFORGE_LOG_FOLDER", logDir)
	logger.InitLogger(logging.ERROR)
	code := m.Run()
	os.RemoveAll(logDir)
	os.Exit(code)
}

func writeAgedFile(t *testing.T, path string, age time.Duration) {
	t.Helper()
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
	old := time.Now().Add(-age)
	if err := os.Chtimes(path, old, old); err != nil {
		t.Fatalf("aging %s: %v", path, err)
	}
}

func TestOrphanSweep(t *testing.T) {
	if err := database.InitDB(filepath.Join(t.TempDir(), "test.db")); err != nil {
		t.Fatalf("InitDB() error = %v", err)
	}
	t.Cleanup(func() { database.CloseDB() })

	imageDir := t.TempDir()
	t.Setenv("IMAGEFORGE_IMAGE_FOLDER", imageDir)

	user := &model.User{Username: "alice", Email: "a@x.com", PasswordHash: "h"}
	if err := database.GetDB().Create(user).Error; err != nil {
		t.Fatalf("creating user: %v", err)
	}

	referenced := filepath.Join(imageDir, "img_1_20240101_000000.png")
	orphan := filepath.Join(imageDir, "img_1_20240101_000001.png")
	staleTmp := filepath.Join(imageDir, "img_1_20240101_000000.png.abc.tmp")
	fresh := filepath.Join(imageDir, "img_1_20240101_000002.png")

	writeAgedFile(t, referenced, 2*time.Hour)
	writeAgedFile(t, orphan, 2*time.Hour)
	writeAgedFile(t, staleTmp, 2*time.Hour)
	if err := os.WriteFile(fresh, []byte("x"), 0o644); err != nil {
		t.Fatalf("writing fresh file: %v", err)
	}

	record := &model.ImageRecord{UserId: user.Id, Prompt: "p", ImagePath: referenced}
	if err := database.GetDB().Create(record).Error; err != nil {
		t.Fatalf("creating record: %v", err)
	}

	NewOrphanSweepJob().Run()

	tests := []struct {
		name       string
		path       string
		wantsAlive bool
	}{
		{"referenced image kept", referenced, true},
		{"orphaned image removed", orphan, false},
		{"stale temp file removed", staleTmp, false},
		{"recent file kept regardless", fresh, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := os.Stat(tt.path)
			alive := err == nil
			if alive != tt.wantsAlive {
				t.Errorf("alive = %v, expected %v (stat err = %v)", alive, tt.wantsAlive, err)
			}
		})
	}
}
