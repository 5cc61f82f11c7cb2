package blob

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/google/uuid"

	"github.com/suawasthi/job-recom/internal/preference"
)

// Config holds the connection settings for an S3-compatible object store.
type Config struct {
	Endpoint  string // empty for plain AWS S3
	Region    string
	AccessKey string
	SecretKey string
	Bucket    string
	Prefix    string
}

// S3ArtifactStore keeps one model artifact per user under
// <prefix>/<user-id>.json. It is an alternative ArtifactStore backend for
// deployments where model blobs should not live in the relational database.
type S3ArtifactStore struct {
	client *s3.Client
	bucket string
	prefix string
}

func NewS3ArtifactStore(ctx context.Context, cfg Config) (*S3ArtifactStore, error) {
	if cfg.Bucket == "" {
		return nil, errors.New("blob: empty bucket")
	}
	region := cfg.Region
	if region == "" {
		region = "auto"
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")),
		awsconfig.WithRegion(region),
	)
	if err != nil {
		return nil, fmt.Errorf("blob: load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	})

	return &S3ArtifactStore{client: client, bucket: cfg.Bucket, prefix: cfg.Prefix}, nil
}

var _ preference.ArtifactStore = (*S3ArtifactStore)(nil)

func (s *S3ArtifactStore) Save(ctx context.Context, m preference.Model) error {
	body, err := json.Marshal(m)
	if err != nil {
		return err
	}

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(s.key(m.UserID)),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("blob: put model for %s: %w", m.UserID, err)
	}
	return nil
}

func (s *S3ArtifactStore) Load(ctx context.Context, userID uuid.UUID) (preference.Model, bool, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(userID)),
	})
	if err != nil {
		var notFound *types.NoSuchKey
		if errors.As(err, &notFound) {
			return preference.Model{}, false, nil
		}
		return preference.Model{}, false, fmt.Errorf("blob: get model for %s: %w", userID, err)
	}
	defer out.Body.Close()

	body, err := io.ReadAll(out.Body)
	if err != nil {
		return preference.Model{}, false, fmt.Errorf("blob: read model for %s: %w", userID, err)
	}

	var m preference.Model
	if err := json.Unmarshal(body, &m); err != nil {
		return preference.Model{}, false, fmt.Errorf("blob: decode model for %s: %w", userID, err)
	}
	return m, true, nil
}

func (s *S3ArtifactStore) key(userID uuid.UUID) string {
	if s.prefix == "" {
		return userID.String() + ".json"
	}
	return s.prefix + "/" + userID.String() + ".json"
}
