package content

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Category struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"column:name;not null;uniqueIndex" json:"name"`
	Color     string    `gorm:"column:color" json:"color"`
	Icon      string    `gorm:"column:icon" json:"icon"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Category) TableName() string { return "category" }

type VocabItem struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Word       string     `gorm:"column:word;not null;index" json:"word"`
	Meaning    string     `gorm:"column:meaning;not null" json:"meaning"`
	CategoryID *uuid.UUID `gorm:"type:uuid;column:category_id;index" json:"category_id,omitempty"`
	ImageURL   string     `gorm:"column:image_url" json:"image_url,omitempty"`
	AudioURL   string     `gorm:"column:audio_url" json:"audio_url,omitempty"`
	CreatedAt  time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt  time.Time  `gorm:"not null" json:"updated_at"`
}

func (VocabItem) TableName() string { return "vocab_item" }

type Video struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Title       string     `gorm:"column:title;not null" json:"title"`
	URL         string     `gorm:"column:url;not null" json:"url"`
	CategoryID  *uuid.UUID `gorm:"type:uuid;column:category_id;index" json:"category_id,omitempty"`
	DurationSec float64    `gorm:"column:duration_sec;not null;default:0" json:"duration_sec"`
	CreatedAt   time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"not null" json:"updated_at"`
}

func (Video) TableName() string { return "video" }

type Game struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string         `gorm:"column:name;not null" json:"name"`
	Kind      string         `gorm:"column:kind;not null" json:"kind"`
	Color     string         `gorm:"column:color" json:"color"`
	Icon      string         `gorm:"column:icon" json:"icon"`
	Config    datatypes.JSON `gorm:"column:config;type:jsonb" json:"config,omitempty"`
	CreatedAt time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null" json:"updated_at"`
}

func (Game) TableName() string { return "game" }

type GameScore struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	StudentID uuid.UUID `gorm:"type:uuid;not null;index" json:"student_id"`
	GameID    uuid.UUID `gorm:"type:uuid;not null;index" json:"game_id"`
	Score     int       `gorm:"column:score;not null;default:0" json:"score"`
	Stars     int       `gorm:"column:stars;not null;default:0" json:"stars"`
	PlayedAt  time.Time `gorm:"column:played_at;not null" json:"played_at"`
}

func (GameScore) TableName() string { return "game_score" }
