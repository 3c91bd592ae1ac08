package memory

import (
	"context"
	"story-generator/core"
	"sync"

	"github.com/oklog/ulid/v2"
)

type storyStore struct {
	mu      sync.RWMutex
	ids     []string
	stories map[string]core.Story
}

func NewStoryStore() core.StoryStore {
	return &storyStore{stories: make(map[string]core.Story)}
}

func (s *storyStore) Create(ctx context.Context, story *core.Story) (string, error) {
	id := ulid.Make().String()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ids = append(s.ids, id)
	s.stories[id] = *story
	return id, nil
}

func (s *storyStore) FindAll(ctx context.Context) ([]core.Story, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	stories := make([]core.Story, 0, len(s.ids))
	for _, id := range s.ids {
		stories = append(stories, s.stories[id])
	}
	return stories, nil
}

func (s *storyStore) Ping(ctx context.Context) error {
	return nil
}
