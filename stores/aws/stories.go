package aws

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"story-generator/core"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/oklog/ulid/v2"
	"github.com/sirupsen/logrus"
)

const keyPrefix = "stories/"

// s3API is the subset of *s3.Client the store uses.
type s3API interface {
	s3.ListObjectsV2APIClient
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	HeadBucket(ctx context.Context, params *s3.HeadBucketInput, optFns ...func(*s3.Options)) (*s3.HeadBucketOutput, error)
}

type storyStore struct {
	s3Client s3API
	bucket   string // Name of the S3 bucket
}

func NewStoryStore(ctx context.Context, bucketName string) (core.StoryStore, error) {
	if bucketName == "" {
		return nil, fmt.Errorf("S3_BUCKET_NAME must be set")
	}
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("unable to load SDK config: %w", err)
	}
	return newStoryStore(s3.NewFromConfig(cfg), bucketName), nil
}

func newStoryStore(client s3API, bucketName string) *storyStore {
	return &storyStore{
		s3Client: client,
		bucket:   bucketName,
	}
}

func (s *storyStore) Create(ctx context.Context, story *core.Story) (string, error) {
	id := ulid.Make().String()
	data, err := json.Marshal(story)
	if err != nil {
		return "", err
	}

	_, err = s.s3Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(keyPrefix + id),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload story: %w", err)
	}

	logrus.WithFields(logrus.Fields{"story_id": id, "bucket": s.bucket}).Info("Story created successfully")
	return id, nil
}

// FindAll walks every object under the stories prefix. S3 lists keys in
// lexical order, so ulid keys come back oldest first.
func (s *storyStore) FindAll(ctx context.Context) ([]core.Story, error) {
	stories := []core.Story{}
	paginator := s3.NewListObjectsV2Paginator(s.s3Client, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
		Prefix: aws.String(keyPrefix),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list stories: %w", err)
		}
		for _, obj := range page.Contents {
			story, err := s.get(ctx, aws.ToString(obj.Key))
			if err != nil {
				return nil, err
			}
			stories = append(stories, *story)
		}
	}
	return stories, nil
}

func (s *storyStore) get(ctx context.Context, key string) (*core.Story, error) {
	resp, err := s.s3Client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get story %s: %w", key, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read story data: %w", err)
	}
	var story core.Story
	if err := json.Unmarshal(data, &story); err != nil {
		return nil, fmt.Errorf("failed to decode story %s: %w", key, err)
	}
	return &story, nil
}

func (s *storyStore) Ping(ctx context.Context) error {
	_, err := s.s3Client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(s.bucket)})
	return err
}
