package stores

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"story-generator/config"
	"story-generator/core"
	"testing"
)

func TestGetStoreBackends(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	tests := []struct {
		name string
		cfg  config.Storage
	}{
		{"memory", config.Storage{}},
		{"filesystem", config.Storage{Type: "filesystem", LocalStoragePath: filepath.Join(dir, "fs")}},
		{"sqlite", config.Storage{Type: "sqlite", DataSourceName: filepath.Join(dir, "stories.db")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := GetStore(ctx, tt.cfg)
			if err := store.Ping(ctx); err != nil {
				t.Fatalf("Ping: %v", err)
			}
			if _, err := store.Create(ctx, &core.Story{Prompt: "P", Story: "S"}); err != nil {
				t.Fatalf("Create: %v", err)
			}
			stories, err := store.FindAll(ctx)
			if err != nil {
				t.Fatalf("FindAll: %v", err)
			}
			if len(stories) != 1 || stories[0] != (core.Story{Prompt: "P", Story: "S"}) {
				t.Errorf("stories = %+v", stories)
			}
		})
	}
}

func TestGetStoreInitFailureIsDeferred(t *testing.T) {
	ctx := context.Background()
	file := filepath.Join(t.TempDir(), "not-a-dir")
	if err := os.WriteFile(file, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	for _, cfg := range []config.Storage{
		{Type: "filesystem", LocalStoragePath: filepath.Join(file, "stories")},
		{Type: "mongodb"},
		{Type: "s3"},
	} {
		store := GetStore(ctx, cfg)
		if err := store.Ping(ctx); !errors.Is(err, ErrUnavailable) {
			t.Errorf("%s: Ping err = %v, want ErrUnavailable", cfg.Type, err)
		}
		if _, err := store.Create(ctx, &core.Story{Prompt: "P", Story: "S"}); !errors.Is(err, ErrUnavailable) {
			t.Errorf("%s: Create err = %v, want ErrUnavailable", cfg.Type, err)
		}
		if _, err := store.FindAll(ctx); !errors.Is(err, ErrUnavailable) {
			t.Errorf("%s: FindAll err = %v, want ErrUnavailable", cfg.Type, err)
		}
	}
}
