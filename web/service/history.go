package service

import (
	"fmt"
	"io"
	"os"

	"github.com/Tushar-web474/ImageForge/database"
	"github.com/Tushar-web474/ImageForge/database/model"
	"github.com/Tushar-web474/ImageForge/logger"

	"github.com/google/uuid"
)

// HistoryService lists, deletes and edits a user's generated images. Every
// lookup is scoped to the owning user id.
type HistoryService struct{}

// ListForUser returns the user's images, newest first.
func (s *HistoryService) ListForUser(userID int) ([]model.ImageRecord, error) {
	db := database.GetDB()

	var records []model.ImageRecord
	err := db.Model(model.ImageRecord{}).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&records).
		Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

// GetForUser returns one image owned by userID. A row that exists but
// belongs to someone else yields the same ErrNotFound as a missing row.
func (s *HistoryService) GetForUser(imageID, userID int) (*model.ImageRecord, error) {
	db := database.GetDB()

	record := &model.ImageRecord{}
	err := db.Model(model.ImageRecord{}).
		Where("id = ? AND user_id = ?", imageID, userID).
		First(record).
		Error
	if database.IsNotFound(err) {
		return nil, fmt.Errorf("%w: image not found", ErrNotFound)
	} else if err != nil {
		return nil, err
	}
	return record, nil
}

// Delete removes the backing file (best-effort) and the history row.
func (s *HistoryService) Delete(imageID, userID int) error {
	record, err := s.GetForUser(imageID, userID)
	if err != nil {
		return err
	}

	if err := os.Remove(record.ImagePath); err != nil && !os.IsNotExist(err) {
		logger.Warningf("removing image file %s: %v", record.ImagePath, err)
	}

	db := database.GetDB()
	return db.Delete(&model.ImageRecord{}, record.Id).Error
}

// ReplaceImageContent atomically replaces the stored image with the bytes
// read from r, keeping the same path and record id. The new content is
// staged in a temp file beside the original; on any failure after staging
// the temp file is removed, so the failure path leaves no strays.
func (s *HistoryService) ReplaceImageContent(imageID, userID int, r io.Reader) error {
	record, err := s.GetForUser(imageID, userID)
	if err != nil {
		return err
	}

	tmpPath := record.ImagePath + "." + uuid.NewString() + ".tmp"
	tmpFile, err := os.Create(tmpPath)
	if err != nil {
		return fmt.Errorf("%w: creating temp file: %v", ErrIO, err)
	}

	if _, err := io.Copy(tmpFile, r); err != nil {
		tmpFile.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("%w: writing temp file: %v", ErrIO, err)
	}
	if err := tmpFile.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("%w: closing temp file: %v", ErrIO, err)
	}

	if _, err := os.Stat(tmpPath); err != nil {
		return fmt.Errorf("%w: temp file vanished before replace: %v", ErrIO, err)
	}

	if err := os.Rename(tmpPath, record.ImagePath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("%w: replacing image: %v", ErrIO, err)
	}
	return nil
}
