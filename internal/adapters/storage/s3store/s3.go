// Package s3store keeps uploads in an S3-compatible bucket (AWS, MinIO, R2).
package s3store

import (
	"bytes"
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awscfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/phenrril/kiddocorner/internal/adapters/storage"
	"github.com/phenrril/kiddocorner/internal/config"
)

type Store struct {
	client  *s3.Client
	bucket  string
	baseURL string
	prefix  string
}

func New(ctx context.Context, c config.S3Config) (*Store, error) {
	if c.Bucket == "" {
		return nil, fmt.Errorf("s3store: S3_BUCKET is not configured")
	}
	opts := []func(*awscfg.LoadOptions) error{awscfg.WithRegion(c.Region)}
	if c.Key != "" && c.Secret != "" {
		opts = append(opts, awscfg.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(c.Key, c.Secret, ""),
		))
	}
	cfg, err := awscfg.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("s3store: load config: %w", err)
	}
	clientOpts := []func(*s3.Options){}
	if c.Endpoint != "" {
		clientOpts = append(clientOpts, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(c.Endpoint)
			o.UsePathStyle = true
		})
	}
	baseURL := c.URL
	if baseURL == "" {
		baseURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", c.Bucket, c.Region)
	}
	return &Store{client: s3.NewFromConfig(cfg, clientOpts...), bucket: c.Bucket, baseURL: baseURL, prefix: "variations/"}, nil
}

func (s *Store) SaveImage(ctx context.Context, filename string, data []byte) (string, error) {
	key := s.prefix + storage.ObjectName(filename)
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(storage.ContentType(filename, data)),
	})
	if err != nil {
		return "", fmt.Errorf("s3store: put %s: %w", key, err)
	}
	return s.baseURL + "/" + key, nil
}
