// Package domain re-exports the entity types of each area so callers can
// import a single package as `types`.
package domain

import (
	"github.com/ngocanhdo/engkids-backend/internal/domain/auth"
	"github.com/ngocanhdo/engkids-backend/internal/domain/content"
	"github.com/ngocanhdo/engkids-backend/internal/domain/learning"
)

type Role = auth.Role
type Principal = auth.Principal
type User = auth.User
type UserToken = auth.UserToken
type Student = auth.Student

const (
	RoleAdmin   = auth.RoleAdmin
	RoleTeacher = auth.RoleTeacher
	RoleParent  = auth.RoleParent
	RoleStudent = auth.RoleStudent
	RoleGuest   = auth.RoleGuest
)

type Lesson = learning.Lesson
type LessonVersion = learning.LessonVersion
type Checkpoint = learning.Checkpoint
type CheckpointItem = learning.CheckpointItem
type CheckpointKind = learning.CheckpointKind
type CheckpointContent = learning.CheckpointContent

const (
	CheckpointVocab    = learning.CheckpointVocab
	CheckpointQuestion = learning.CheckpointQuestion
	CheckpointNote     = learning.CheckpointNote
)

var (
	ParseCheckpointKind    = learning.ParseCheckpointKind
	EmptyCheckpointContent = learning.EmptyCheckpointContent
)

type Category = content.Category
type VocabItem = content.VocabItem
type Video = content.Video
type Game = content.Game
type GameScore = content.GameScore
