package learning

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Lesson struct {
	ID              uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Title           string         `gorm:"column:title;not null" json:"title"`
	Description     string         `gorm:"column:description;type:text" json:"description,omitempty"`
	VideoURL        string         `gorm:"column:video_url" json:"video_url"`
	DurationSec     float64        `gorm:"column:duration_sec;not null;default:0" json:"duration_sec"`
	DifficultyLevel int            `gorm:"column:difficulty_level;not null;default:2" json:"difficulty_level"`
	CreatedBy       *uuid.UUID     `gorm:"type:uuid;column:created_by;index" json:"created_by,omitempty"`
	CreatedAt       time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt       time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Lesson) TableName() string { return "lesson" }

// LessonVersion is the revision the checkpoint editor works against. The
// version carries the derived metadata (cleaned URL, numeric difficulty,
// target vocabulary id list) separately from the lesson's display fields.
type LessonVersion struct {
	ID              uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	LessonID        uuid.UUID      `gorm:"type:uuid;not null;index" json:"lesson_id"`
	VideoURL        string         `gorm:"column:video_url" json:"video_url"`
	DifficultyLevel int            `gorm:"column:difficulty_level;not null;default:2" json:"difficulty_level"`
	VocabularyIDs   datatypes.JSON `gorm:"column:vocabulary_ids;type:jsonb" json:"vocabulary_ids,omitempty"`
	CreatedAt       time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt       time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (LessonVersion) TableName() string { return "lesson_version" }
