package mongo

import (
	"context"
	"fmt"
	"story-generator/core"

	"github.com/oklog/ulid/v2"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// storyDocument is the stored shape. The ulid lives in _id and is
// projected away on reads.
type storyDocument struct {
	ID     string `bson:"_id,omitempty"`
	Title  string `bson:"title"`
	Prompt string `bson:"prompt"`
	Story  string `bson:"story"`
}

type storyStore struct {
	client     *mongo.Client
	collection *mongo.Collection
}

// NewStoryStore configures a client for uri. The driver connects lazily, so
// an unreachable server only shows up on Ping or the first operation.
func NewStoryStore(ctx context.Context, uri, database, collection string) (core.StoryStore, error) {
	if uri == "" {
		return nil, fmt.Errorf("DATABASE_URI must be set")
	}
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to configure mongo client: %w", err)
	}
	return &storyStore{
		client:     client,
		collection: client.Database(database).Collection(collection),
	}, nil
}

func (s *storyStore) Create(ctx context.Context, story *core.Story) (string, error) {
	id := ulid.Make().String()
	log := logrus.WithFields(logrus.Fields{
		"story_id":   id,
		"collection": s.collection.Name(),
	})

	_, err := s.collection.InsertOne(ctx, storyDocument{
		ID:     id,
		Title:  story.Title,
		Prompt: story.Prompt,
		Story:  story.Story,
	})
	if err != nil {
		log.WithField("error", err).Error("Failed to create story")
		return "", err
	}
	log.Info("Story created successfully")
	return id, nil
}

func (s *storyStore) FindAll(ctx context.Context) ([]core.Story, error) {
	opts := options.Find().SetProjection(bson.D{{Key: "_id", Value: 0}})
	cursor, err := s.collection.Find(ctx, bson.D{}, opts)
	if err != nil {
		logrus.WithField("error", err).Error("Failed to retrieve stories")
		return nil, err
	}

	stories := []core.Story{}
	if err := cursor.All(ctx, &stories); err != nil {
		return nil, err
	}
	return stories, nil
}

func (s *storyStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}
