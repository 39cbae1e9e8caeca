package db

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"

	types "github.com/ngocanhdo/engkids-backend/internal/domain"
	"github.com/ngocanhdo/engkids-backend/internal/platform/envutil"
	"github.com/ngocanhdo/engkids-backend/internal/platform/logger"
)

type seedFile struct {
	Categories []struct {
		Name  string `yaml:"name"`
		Color string `yaml:"color"`
		Icon  string `yaml:"icon"`
		Words []struct {
			Word    string `yaml:"word"`
			Meaning string `yaml:"meaning"`
		} `yaml:"words"`
	} `yaml:"categories"`
	Games []struct {
		Name  string `yaml:"name"`
		Kind  string `yaml:"kind"`
		Color string `yaml:"color"`
		Icon  string `yaml:"icon"`
	} `yaml:"games"`
}

// SeedStarterContent loads the starter categories, vocabulary and mini-games
// from a YAML file on first boot. A non-empty category table means the
// instance already has content and the seed is skipped entirely.
func SeedStarterContent(log *logger.Logger, gdb *gorm.DB) error {
	seedLog := log.With("service", "DBSeed")

	path := envutil.GetEnv("SEED_FILE", "configs/seed.yaml", log)
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			seedLog.Info("No seed file found, skipping", "path", path)
			return nil
		}
		return fmt.Errorf("read seed file: %w", err)
	}

	var sf seedFile
	if err := yaml.Unmarshal(raw, &sf); err != nil {
		return fmt.Errorf("parse seed file: %w", err)
	}

	var count int64
	if err := gdb.Model(&types.Category{}).Count(&count).Error; err != nil {
		return fmt.Errorf("count categories: %w", err)
	}
	if count > 0 {
		seedLog.Debug("Content already present, skipping seed")
		return nil
	}

	return gdb.Transaction(func(tx *gorm.DB) error {
		for _, c := range sf.Categories {
			cat := &types.Category{
				ID:    uuid.New(),
				Name:  c.Name,
				Color: c.Color,
				Icon:  c.Icon,
			}
			if err := tx.Create(cat).Error; err != nil {
				return fmt.Errorf("seed category %q: %w", c.Name, err)
			}
			for _, w := range c.Words {
				item := &types.VocabItem{
					ID:         uuid.New(),
					Word:       w.Word,
					Meaning:    w.Meaning,
					CategoryID: &cat.ID,
				}
				if err := tx.Create(item).Error; err != nil {
					return fmt.Errorf("seed word %q: %w", w.Word, err)
				}
			}
		}
		for _, g := range sf.Games {
			game := &types.Game{
				ID:    uuid.New(),
				Name:  g.Name,
				Kind:  g.Kind,
				Color: g.Color,
				Icon:  g.Icon,
			}
			if err := tx.Create(game).Error; err != nil {
				return fmt.Errorf("seed game %q: %w", g.Name, err)
			}
		}
		seedLog.Info("Starter content seeded", "categories", len(sf.Categories), "games", len(sf.Games))
		return nil
	})
}
