package command

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-rogue/internal/game"
	"github.com/pixil98/go-rogue/internal/progress"
	"github.com/pixil98/go-rogue/internal/storage"
	"github.com/pixil98/go-rogue/internal/tuning"
)

type StorageConfig struct {
	Items AssetConfig[*game.ItemDefinition] `json:"items"`
}

func (c *StorageConfig) validate() error {
	el := errors.NewErrorList()
	el.Add(c.Items.Validate("items"))
	return el.Err()
}

type AssetConfig[T storage.ValidatingSpec] struct {
	Path string `json:"path" env:"ROGUE_ITEMS_PATH"`
}

func (c *AssetConfig[T]) Validate(name string) error {
	if c.Path == "" {
		return fmt.Errorf("%s: path is required", name)
	}
	_, err := os.Stat(c.Path)
	if err != nil {
		return fmt.Errorf("%s: invalid path %q: %w", name, c.Path, err)
	}

	return nil
}

func (c *AssetConfig[T]) BuildFileStore() (*storage.FileStore[T], error) {
	return storage.NewFileStore[T](c.Path)
}

type ProgressConfig struct {
	Database string `json:"database" env:"ROGUE_PROGRESS_DB"`
	SavePath string `json:"save_path" env:"ROGUE_SAVE_PATH"`
}

func (c *ProgressConfig) validate() error {
	el := errors.NewErrorList()

	if c.Database == "" {
		el.Add(fmt.Errorf("progress: database is required"))
	}
	if c.SavePath == "" {
		el.Add(fmt.Errorf("progress: save_path is required"))
	} else if filepath.Clean(c.SavePath) == filepath.Clean(c.Database) {
		el.Add(fmt.Errorf("progress: save_path and database must differ"))
	}

	return el.Err()
}

func (c *ProgressConfig) openStore(ctx context.Context) (*progress.Store, error) {
	if dir := filepath.Dir(c.Database); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating progress directory: %w", err)
		}
	}
	return progress.Open(ctx, c.Database)
}

type TuningConfig struct {
	Path string `json:"path" env:"ROGUE_TUNING"`
}

func (c *TuningConfig) validate() error {
	if c.Path == "" {
		return nil
	}
	t, err := tuning.Load(c.Path)
	if err != nil {
		return fmt.Errorf("tuning: %w", err)
	}
	if err := t.Validate(); err != nil {
		return fmt.Errorf("tuning: %w", err)
	}
	return nil
}

func (c *TuningConfig) load() (tuning.Tuning, error) {
	t, err := tuning.Load(c.Path)
	if err != nil {
		return t, err
	}
	if err := t.Validate(); err != nil {
		return t, err
	}
	return t, nil
}

type ConsoleConfig struct {
	MaxHP        int    `json:"max_hp" env:"ROGUE_MAX_HP"`
	EventSubject string `json:"event_subject"`
}

func (c *ConsoleConfig) validate() error {
	el := errors.NewErrorList()

	if c.MaxHP < 0 {
		el.Add(fmt.Errorf("console: max_hp must not be negative"))
	}

	return el.Err()
}
