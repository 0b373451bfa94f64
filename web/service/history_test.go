package service

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/Tushar-web474/ImageForge/database"
	"github.com/Tushar-web474/ImageForge/database/model"
)

func mustRegister(t *testing.T, username, email string) *model.User {
	t.Helper()
	svc := &UserService{}
	user, err := svc.Register(username, email, "pw123", "pw123")
	if err != nil {
		t.Fatalf("Register(%s) error = %v", username, err)
	}
	return user
}

func mustInsertImage(t *testing.T, dir string, userID int, prompt string) *model.ImageRecord {
	t.Helper()
	path := filepath.Join(dir, "img_test.png")
	if err := os.WriteFile(path, []byte("png-bytes"), 0o644); err != nil {
		t.Fatalf("writing image file: %v", err)
	}
	record := &model.ImageRecord{UserId: userID, Prompt: prompt, ImagePath: path}
	if err := database.GetDB().Create(record).Error; err != nil {
		t.Fatalf("inserting image row: %v", err)
	}
	return record
}

func TestListForUser(t *testing.T) {
	setupTestDB(t)
	svc := &HistoryService{}
	alice := mustRegister(t, "alice", "a@x.com")
	bob := mustRegister(t, "bob", "b@x.com")

	dir := t.TempDir()
	first := &model.ImageRecord{UserId: alice.Id, Prompt: "first", ImagePath: filepath.Join(dir, "1.png")}
	second := &model.ImageRecord{UserId: alice.Id, Prompt: "second", ImagePath: filepath.Join(dir, "2.png")}
	other := &model.ImageRecord{UserId: bob.Id, Prompt: "not alice's", ImagePath: filepath.Join(dir, "3.png")}
	for _, r := range []*model.ImageRecord{first, second, other} {
		if err := database.GetDB().Create(r).Error; err != nil {
			t.Fatalf("inserting image row: %v", err)
		}
	}

	images, err := svc.ListForUser(alice.Id)
	if err != nil {
		t.Fatalf("ListForUser() error = %v", err)
	}
	if len(images) != 2 {
		t.Fatalf("ListForUser() returned %d images, expected 2", len(images))
	}
	// newest first; identical timestamps fall back to descending id
	if images[0].Prompt != "second" || images[1].Prompt != "first" {
		t.Errorf("unexpected order: %q then %q", images[0].Prompt, images[1].Prompt)
	}
}

func TestDeleteOwnershipIsolation(t *testing.T) {
	setupTestDB(t)
	svc := &HistoryService{}
	alice := mustRegister(t, "alice", "a@x.com")
	bob := mustRegister(t, "bob", "b@x.com")
	record := mustInsertImage(t, t.TempDir(), bob.Id, "bob's image")

	tests := []struct {
		name    string
		imageID int
	}{
		{"existing image of another user", record.Id},
		{"image that does not exist", record.Id + 999},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := svc.Delete(tt.imageID, alice.Id); !errors.Is(err, ErrNotFound) {
				t.Errorf("Delete() error = %v, expected ErrNotFound", err)
			}
		})
	}

	// bob's row and file are untouched
	if _, err := svc.GetForUser(record.Id, bob.Id); err != nil {
		t.Errorf("bob's record disappeared: %v", err)
	}
	if _, err := os.Stat(record.ImagePath); err != nil {
		t.Errorf("bob's file disappeared: %v", err)
	}
}

func TestDeleteRemovesRowAndFile(t *testing.T) {
	setupTestDB(t)
	svc := &HistoryService{}
	alice := mustRegister(t, "alice", "a@x.com")
	record := mustInsertImage(t, t.TempDir(), alice.Id, "a cat")

	if err := svc.Delete(record.Id, alice.Id); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	if _, err := os.Stat(record.ImagePath); !os.IsNotExist(err) {
		t.Errorf("file still exists after delete (stat err = %v)", err)
	}
	images, err := svc.ListForUser(alice.Id)
	if err != nil {
		t.Fatalf("ListForUser() error = %v", err)
	}
	if len(images) != 0 {
		t.Errorf("history still lists %d images after delete", len(images))
	}
}

func TestDeleteMissingFileIsNotAnError(t *testing.T) {
	setupTestDB(t)
	svc := &HistoryService{}
	alice := mustRegister(t, "alice", "a@x.com")
	record := mustInsertImage(t, t.TempDir(), alice.Id, "a cat")

	if err := os.Remove(record.ImagePath); err != nil {
		t.Fatalf("removing file: %v", err)
	}
	if err := svc.Delete(record.Id, alice.Id); err != nil {
		t.Errorf("Delete() error = %v, expected success with missing file", err)
	}
}

func TestReplaceImageContent(t *testing.T) {
	setupTestDB(t)
	svc := &HistoryService{}
	alice := mustRegister(t, "alice", "a@x.com")
	dir := t.TempDir()
	record := mustInsertImage(t, dir, alice.Id, "a cat")

	if err := svc.ReplaceImageContent(record.Id, alice.Id, bytes.NewReader([]byte("edited"))); err != nil {
		t.Fatalf("ReplaceImageContent() error = %v", err)
	}

	content, err := os.ReadFile(record.ImagePath)
	if err != nil {
		t.Fatalf("reading replaced file: %v", err)
	}
	if string(content) != "edited" {
		t.Errorf("file content = %q, expected %q", content, "edited")
	}
	assertNoTempFiles(t, dir)
}

func TestReplaceImageContentOwnership(t *testing.T) {
	setupTestDB(t)
	svc := &HistoryService{}
	mustRegister(t, "alice", "a@x.com")
	bob := mustRegister(t, "bob", "b@x.com")
	intruder := mustRegister(t, "carol", "c@x.com")
	record := mustInsertImage(t, t.TempDir(), bob.Id, "bob's image")

	err := svc.ReplaceImageContent(record.Id, intruder.Id, bytes.NewReader([]byte("x")))
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("ReplaceImageContent() error = %v, expected ErrNotFound", err)
	}
	content, readErr := os.ReadFile(record.ImagePath)
	if readErr != nil || string(content) != "png-bytes" {
		t.Errorf("bob's file changed: content=%q err=%v", content, readErr)
	}
}

func TestReplaceImageContentRenameFailure(t *testing.T) {
	setupTestDB(t)
	svc := &HistoryService{}
	alice := mustRegister(t, "alice", "a@x.com")

	// The stored path is a non-empty directory, so the temp write succeeds
	// but the final rename over it fails.
	dir := t.TempDir()
	target := filepath.Join(dir, "blocked")
	if err := os.MkdirAll(target, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(target, "keep"), []byte("x"), 0o644); err != nil {
		t.Fatalf("writing blocker: %v", err)
	}
	record := &model.ImageRecord{UserId: alice.Id, Prompt: "p", ImagePath: target}
	if err := database.GetDB().Create(record).Error; err != nil {
		t.Fatalf("inserting image row: %v", err)
	}

	err := svc.ReplaceImageContent(record.Id, alice.Id, bytes.NewReader([]byte("edited")))
	if !errors.Is(err, ErrIO) {
		t.Fatalf("ReplaceImageContent() error = %v, expected ErrIO", err)
	}

	// original path untouched, no stray temp files
	if _, err := os.Stat(filepath.Join(target, "keep")); err != nil {
		t.Errorf("original content disturbed: %v", err)
	}
	assertNoTempFiles(t, dir)
}

func assertNoTempFiles(t *testing.T, dir string) {
	t.Helper()
	matches, err := filepath.Glob(filepath.Join(dir, "*.tmp"))
	if err != nil {
		t.Fatalf("glob: %v", err)
	}
	if len(matches) != 0 {
		t.Errorf("stray temp files left behind: %v", matches)
	}
}
