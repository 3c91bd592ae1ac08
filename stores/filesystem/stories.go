package filesystem

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"story-generator/core"
	"strings"

	"github.com/oklog/ulid/v2"
	"github.com/sirupsen/logrus"
)

const ext = ".json"

type storyStore struct {
	basePath string // Directory where stories are stored, one JSON file each.
}

func NewStoryStore(basePath string) (core.StoryStore, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create base directory: %w", err)
	}
	return &storyStore{basePath: basePath}, nil
}

func (s *storyStore) Create(ctx context.Context, story *core.Story) (string, error) {
	id := ulid.Make().String()
	filePath := filepath.Join(s.basePath, id+ext)
	log := logrus.WithFields(logrus.Fields{
		"story_id":  id,
		"file_path": filePath,
	})
	log.Info("Creating new story")

	data, err := json.Marshal(story)
	if err != nil {
		return "", err
	}
	if err := writeFile(s.basePath, filePath, data); err != nil {
		log.WithField("error", err).Error("Failed to create story")
		return "", err
	}

	log.Info("Story created successfully")
	return id, nil
}

// FindAll returns stories in file name order (ReadDir sorts), which for
// ulids is creation order.
func (s *storyStore) FindAll(ctx context.Context) ([]core.Story, error) {
	log := logrus.WithField("base_path", s.basePath)
	entries, err := os.ReadDir(s.basePath)
	if err != nil {
		log.WithField("error", err).Error("Failed to list stories")
		return nil, err
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ext) {
			continue
		}
		names = append(names, e.Name())
	}

	stories := make([]core.Story, 0, len(names))
	for _, name := range names {
		data, err := os.ReadFile(filepath.Join(s.basePath, name))
		if err != nil {
			log.WithFields(logrus.Fields{"file": name, "error": err}).Error("Failed to read story")
			return nil, err
		}
		var story core.Story
		if err := json.Unmarshal(data, &story); err != nil {
			return nil, fmt.Errorf("failed to decode story %s: %w", name, err)
		}
		stories = append(stories, story)
	}

	log.WithField("count", len(stories)).Info("Stories retrieved successfully")
	return stories, nil
}

func (s *storyStore) Ping(ctx context.Context) error {
	info, err := os.Stat(s.basePath)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", s.basePath)
	}
	return nil
}

// writeFile stages data in a temp file next to filePath and renames it into
// place, so readers never see a partial story. Temp names lack the .json
// suffix and are skipped by FindAll.
func writeFile(dir, filePath string, data []byte) error {
	tmp, err := os.CreateTemp(dir, ".story-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, filePath); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}
