package testutil

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	types "github.com/ngocanhdo/engkids-backend/internal/domain"
	"github.com/ngocanhdo/engkids-backend/internal/platform/logger"
)

// DB opens an isolated in-memory sqlite database migrated with the full
// schema. Shared cache keeps the database alive across the pooled
// connections gorm opens for one test.
func DB(tb testing.TB) *gorm.DB {
	tb.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(tb.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		tb.Fatalf("open test db: %v", err)
	}
	if err := gdb.AutoMigrate(
		&types.User{},
		&types.UserToken{},
		&types.Student{},
		&types.Lesson{},
		&types.LessonVersion{},
		&types.Checkpoint{},
		&types.Category{},
		&types.VocabItem{},
		&types.Video{},
		&types.Game{},
		&types.GameScore{},
	); err != nil {
		tb.Fatalf("migrate test db: %v", err)
	}
	return gdb
}

// Tx wraps the test in a transaction rolled back on cleanup.
func Tx(tb testing.TB, gdb *gorm.DB) *gorm.DB {
	tb.Helper()
	tx := gdb.Begin()
	if tx.Error != nil {
		tb.Fatalf("begin tx: %v", tx.Error)
	}
	tb.Cleanup(func() { tx.Rollback() })
	return tx
}

func Logger(tb testing.TB) *logger.Logger {
	tb.Helper()
	return logger.Noop()
}

func SeedStudent(tb testing.TB, ctx context.Context, tx *gorm.DB, name, className, pin string) *types.Student {
	tb.Helper()
	s := &types.Student{
		ID:        uuid.New(),
		Name:      name,
		ClassName: className,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
	if pin != "" {
		s.PinCode = &pin
	}
	if err := tx.WithContext(ctx).Create(s).Error; err != nil {
		tb.Fatalf("seed student: %v", err)
	}
	return s
}

func SeedLesson(tb testing.TB, ctx context.Context, tx *gorm.DB, title string) *types.Lesson {
	tb.Helper()
	l := &types.Lesson{
		ID:        uuid.New(),
		Title:     title,
		VideoURL:  "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
	if err := tx.WithContext(ctx).Create(l).Error; err != nil {
		tb.Fatalf("seed lesson: %v", err)
	}
	return l
}

func SeedLessonVersion(tb testing.TB, ctx context.Context, tx *gorm.DB, lessonID uuid.UUID) *types.LessonVersion {
	tb.Helper()
	v := &types.LessonVersion{
		ID:        uuid.New(),
		LessonID:  lessonID,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
	if err := tx.WithContext(ctx).Create(v).Error; err != nil {
		tb.Fatalf("seed lesson version: %v", err)
	}
	return v
}

func SeedCategory(tb testing.TB, ctx context.Context, tx *gorm.DB, name string) *types.Category {
	tb.Helper()
	c := &types.Category{
		ID:        uuid.New(),
		Name:      name,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
	if err := tx.WithContext(ctx).Create(c).Error; err != nil {
		tb.Fatalf("seed category: %v", err)
	}
	return c
}

func SeedVocab(tb testing.TB, ctx context.Context, tx *gorm.DB, word string, categoryID *uuid.UUID) *types.VocabItem {
	tb.Helper()
	v := &types.VocabItem{
		ID:         uuid.New(),
		Word:       word,
		Meaning:    "nghĩa",
		CategoryID: categoryID,
		CreatedAt:  time.Now().UTC(),
		UpdatedAt:  time.Now().UTC(),
	}
	if err := tx.WithContext(ctx).Create(v).Error; err != nil {
		tb.Fatalf("seed vocab: %v", err)
	}
	return v
}
