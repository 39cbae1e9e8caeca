package learning

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type CheckpointKind string

const (
	CheckpointVocab    CheckpointKind = "vocab"
	CheckpointQuestion CheckpointKind = "question"
	CheckpointNote     CheckpointKind = "note"
)

func ParseCheckpointKind(s string) (CheckpointKind, bool) {
	switch CheckpointKind(s) {
	case CheckpointVocab, CheckpointQuestion, CheckpointNote:
		return CheckpointKind(s), true
	default:
		return "", false
	}
}

// CheckpointContent is the interactive payload shown when a checkpoint
// fires. A new checkpoint starts with everything blank and four empty
// options; which fields matter depends on the kind.
type CheckpointContent struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
	Answer   string   `json:"answer"`
	Note     string   `json:"note"`
}

func EmptyCheckpointContent() CheckpointContent {
	return CheckpointContent{Options: []string{"", "", "", ""}}
}

// CheckpointItem is the editor's in-memory unit: Token is the
// client-generated id, unique within one lesson version.
type CheckpointItem struct {
	Token   string            `json:"id"`
	TimeSec float64           `json:"time_sec"`
	Kind    CheckpointKind    `json:"kind"`
	VocabID *uuid.UUID        `json:"vocab_id,omitempty"`
	Content CheckpointContent `json:"content"`
}

// Checkpoint is the persisted row backing a CheckpointItem.
type Checkpoint struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	VersionID uuid.UUID      `gorm:"type:uuid;not null;index:idx_version_token,unique,priority:1" json:"version_id"`
	Token     string         `gorm:"column:token;not null;index:idx_version_token,unique,priority:2" json:"token"`
	TimeSec   float64        `gorm:"column:time_sec;not null;default:0" json:"time_sec"`
	Kind      string         `gorm:"column:kind;not null" json:"kind"`
	VocabID   *uuid.UUID     `gorm:"type:uuid;column:vocab_id;index" json:"vocab_id,omitempty"`
	Content   datatypes.JSON `gorm:"column:content;type:jsonb" json:"content,omitempty"`
	CreatedAt time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null" json:"updated_at"`
}

func (Checkpoint) TableName() string { return "checkpoint" }
