package stores

import (
	"context"
	"errors"
	"fmt"
	"story-generator/config"
	"story-generator/core"
	"story-generator/stores/aws"
	"story-generator/stores/filesystem"
	"story-generator/stores/memory"
	"story-generator/stores/mongo"
	"story-generator/stores/sqlite"

	"github.com/sirupsen/logrus"
)

var ErrUnavailable = errors.New("story store unavailable")

// GetStore builds the backend named by cfg.Type. A backend that fails to
// initialise is logged and replaced by a store that reports the failure on
// every call, so the process still starts.
func GetStore(ctx context.Context, cfg config.Storage) core.StoryStore {
	storageField := logrus.Fields{
		"storageType": cfg.Type,
	}

	var (
		store core.StoryStore
		err   error
	)
	switch cfg.Type {
	case "mongodb":
		storageField["databaseName"] = cfg.DatabaseName
		storageField["collection"] = cfg.CollectionName
		store, err = mongo.NewStoryStore(ctx, cfg.DatabaseURI, cfg.DatabaseName, cfg.CollectionName)
	case "filesystem":
		storageField["basePath"] = cfg.LocalStoragePath
		store, err = filesystem.NewStoryStore(cfg.LocalStoragePath)
	case "sqlite":
		storageField["dataSourceName"] = cfg.DataSourceName
		store, err = sqlite.NewStoryStore(cfg.DataSourceName)
	case "s3":
		storageField["bucketName"] = cfg.S3BucketName
		store, err = aws.NewStoryStore(ctx, cfg.S3BucketName)
	default:
		store = memory.NewStoryStore()
		storageField["storageType"] = "in-memory"
	}

	if err != nil {
		logrus.WithFields(storageField).WithField("error", err).Error("Failed to initialise storage")
		return &unavailableStore{err: fmt.Errorf("%w: %v", ErrUnavailable, err)}
	}
	logrus.WithFields(storageField).Info("Use storage")
	return store
}

type unavailableStore struct {
	err error
}

func (s *unavailableStore) Create(ctx context.Context, story *core.Story) (string, error) {
	return "", s.err
}

func (s *unavailableStore) FindAll(ctx context.Context) ([]core.Story, error) {
	return nil, s.err
}

func (s *unavailableStore) Ping(ctx context.Context) error {
	return s.err
}
