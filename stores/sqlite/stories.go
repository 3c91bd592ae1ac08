package sqlite

import (
	"context"
	"database/sql"
	"story-generator/core"

	_ "github.com/mattn/go-sqlite3"
	"github.com/oklog/ulid/v2"
	"github.com/sirupsen/logrus"
)

type storyStore struct {
	db *sql.DB
}

func NewStoryStore(dataSourceName string) (core.StoryStore, error) {
	db, err := sql.Open("sqlite3", dataSourceName)
	if err != nil {
		return nil, err
	}
	sts := `CREATE TABLE IF NOT EXISTS stories (id TEXT PRIMARY KEY, title TEXT NOT NULL, prompt TEXT NOT NULL, story TEXT NOT NULL);`
	if _, err = db.Exec(sts); err != nil {
		db.Close()
		return nil, err
	}
	return &storyStore{db}, nil
}

func (s *storyStore) Create(ctx context.Context, story *core.Story) (string, error) {
	id := ulid.Make().String()
	log := logrus.WithFields(logrus.Fields{
		"story_id":     id,
		"story_length": len(story.Story),
	})

	_, err := s.db.ExecContext(ctx, "INSERT INTO stories (id, title, prompt, story) VALUES (?, ?, ?, ?)",
		id, story.Title, story.Prompt, story.Story)
	if err != nil {
		log.WithField("error", err).Error("Failed to create story")
		return "", err
	}
	log.Info("Story created successfully")
	return id, nil
}

func (s *storyStore) FindAll(ctx context.Context) ([]core.Story, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT title, prompt, story FROM stories ORDER BY rowid")
	if err != nil {
		logrus.WithField("error", err).Error("Failed to retrieve stories")
		return nil, err
	}
	defer rows.Close()

	stories := []core.Story{}
	for rows.Next() {
		var story core.Story
		if err := rows.Scan(&story.Title, &story.Prompt, &story.Story); err != nil {
			return nil, err
		}
		stories = append(stories, story)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	logrus.WithField("count", len(stories)).Debug("Stories retrieved successfully")
	return stories, nil
}

func (s *storyStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}
