package auth

import (
	"time"

	"github.com/google/uuid"
)

// Student is a registered child account. PinCode is the 4-digit login code;
// it is nullable because quick-login students created by a teacher may not
// have been assigned one yet.
type Student struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"column:name;not null;index" json:"name"`
	ClassName string    `gorm:"column:class_name;index" json:"class_name"`
	PinCode   *string   `gorm:"column:pin_code;uniqueIndex" json:"-"`
	Score     int       `gorm:"column:score;not null;default:0" json:"score"`
	Stars     int       `gorm:"column:stars;not null;default:0" json:"stars"`
	AvatarKey string    `gorm:"column:avatar_key" json:"-"`
	AvatarURL string    `gorm:"column:avatar_url" json:"avatar_url"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Student) TableName() string { return "student" }

// Principal builds the session identity for a registered student row.
func (s *Student) Principal() Principal {
	return Principal{
		ID:          s.ID,
		DisplayName: s.Name,
		Role:        RoleStudent,
		ClassName:   s.ClassName,
		Score:       s.Score,
		Stars:       s.Stars,
		AvatarURL:   s.AvatarURL,
	}
}

// GuestPrincipal synthesizes an ephemeral student identity when quick login
// finds no matching row. Zero score and stars, no usable ID.
func GuestPrincipal(name, className string) Principal {
	return Principal{
		DisplayName: name,
		Role:        RoleGuest,
		ClassName:   className,
		Guest:       true,
	}
}
