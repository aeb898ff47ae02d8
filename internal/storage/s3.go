// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	s3v2 "github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/cloudchore/cloudchore/internal/log"
)

// ErrStorage indicates an object read or write against the store failed.
var ErrStorage = errors.New("object storage failure")

// S3API is the subset of the S3 client the store depends on. Narrowed for
// testability.
type S3API interface {
	GetObject(ctx context.Context, params *s3v2.GetObjectInput, optFns ...func(*s3v2.Options)) (*s3v2.GetObjectOutput, error)
	PutObject(ctx context.Context, params *s3v2.PutObjectInput, optFns ...func(*s3v2.Options)) (*s3v2.PutObjectOutput, error)
}

// ObjectStore abstracts a single-bucket object namespace with read and
// write-once (overwrite allowed) semantics.
type ObjectStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, data []byte, contentType string) error
	URL(key string) string
}

// S3Store is the AWS-backed ObjectStore.
type S3Store struct {
	client S3API
	bucket string
}

// NewS3Store constructs an S3Store bound to one bucket.
func NewS3Store(client S3API, bucket string) *S3Store {
	return &S3Store{client: client, bucket: bucket}
}

// Get reads the full object body for key.
func (s *S3Store) Get(ctx context.Context, key string) ([]byte, error) {
	out, err := s.client.GetObject(ctx, &s3v2.GetObjectInput{
		Bucket: awsv2.String(s.bucket),
		Key:    awsv2.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: get s3://%s/%s: %v", ErrStorage, s.bucket, key, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read s3://%s/%s: %v", ErrStorage, s.bucket, key, err)
	}
	log.Debugf("got object: bucket=%s key=%s bytes=%d", s.bucket, key, len(data))
	return data, nil
}

// Put writes data under key. Existing objects are overwritten; no versioning
// contract is assumed.
func (s *S3Store) Put(ctx context.Context, key string, data []byte, contentType string) error {
	_, err := s.client.PutObject(ctx, &s3v2.PutObjectInput{
		Bucket:      awsv2.String(s.bucket),
		Key:         awsv2.String(key),
		Body:        bytes.NewReader(data),
		ContentType: awsv2.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("%w: put s3://%s/%s: %v", ErrStorage, s.bucket, key, err)
	}
	log.Debugf("put object: bucket=%s key=%s bytes=%d", s.bucket, key, len(data))
	return nil
}

// URL returns the public https URL for key.
func (s *S3Store) URL(key string) string {
	return fmt.Sprintf("https://%s.s3.amazonaws.com/%s", s.bucket, key)
}
