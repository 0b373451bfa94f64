// Package model defines the database models for imageforge.
package model

import "time"

// User is a registered account. Username and email are globally unique and
// the password is only ever stored as a bcrypt hash.
type User struct {
	Id           int       `json:"id" gorm:"primaryKey;autoIncrement"`
	Username     string    `json:"username" gorm:"uniqueIndex;not null"`
	Email        string    `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash string    `json:"-" gorm:"column:password_hash;not null"`
	CreatedAt    time.Time `json:"createdAt"`
}

// ImageRecord is one generated image owned by a user. The backing PNG lives
// at ImagePath; the row and the file are created and destroyed together.
type ImageRecord struct {
	Id        int       `json:"id" gorm:"primaryKey;autoIncrement"`
	UserId    int       `json:"userId" gorm:"index;not null"`
	Prompt    string    `json:"prompt" gorm:"not null"`
	ImagePath string    `json:"imagePath" gorm:"column:image_path;not null"`
	CreatedAt time.Time `json:"createdAt"`

	User User `json:"-" gorm:"foreignKey:UserId;constraint:OnDelete:CASCADE"`
}

// TableName keeps the historical table name.
func (ImageRecord) TableName() string {
	return "image_history"
}
