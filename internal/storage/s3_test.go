// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package storage

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	s3v2 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeS3 records calls and plays back canned responses.
type fakeS3 struct {
	getBody    string
	getErr     error
	putErr     error
	lastBucket string
	lastKey    string
	lastCT     string
	lastBody   []byte
}

func (f *fakeS3) GetObject(_ context.Context, params *s3v2.GetObjectInput, _ ...func(*s3v2.Options)) (*s3v2.GetObjectOutput, error) {
	f.lastBucket = *params.Bucket
	f.lastKey = *params.Key
	if f.getErr != nil {
		return nil, f.getErr
	}
	return &s3v2.GetObjectOutput{Body: io.NopCloser(strings.NewReader(f.getBody))}, nil
}

func (f *fakeS3) PutObject(_ context.Context, params *s3v2.PutObjectInput, _ ...func(*s3v2.Options)) (*s3v2.PutObjectOutput, error) {
	f.lastBucket = *params.Bucket
	f.lastKey = *params.Key
	f.lastCT = *params.ContentType
	body, _ := io.ReadAll(params.Body)
	f.lastBody = body
	if f.putErr != nil {
		return nil, f.putErr
	}
	return &s3v2.PutObjectOutput{}, nil
}

func TestS3StoreGet(t *testing.T) {
	fake := &fakeS3{getBody: "image-bytes"}
	store := NewS3Store(fake, "uploads")

	data, err := store.Get(context.Background(), "cat.jpg")
	require.NoError(t, err)
	assert.Equal(t, []byte("image-bytes"), data)
	assert.Equal(t, "uploads", fake.lastBucket)
	assert.Equal(t, "cat.jpg", fake.lastKey)
}

func TestS3StoreGetError(t *testing.T) {
	fake := &fakeS3{getErr: errors.New("boom")}
	store := NewS3Store(fake, "uploads")

	_, err := store.Get(context.Background(), "cat.jpg")
	assert.ErrorIs(t, err, ErrStorage)
}

func TestS3StorePut(t *testing.T) {
	fake := &fakeS3{}
	store := NewS3Store(fake, "resized")

	err := store.Put(context.Background(), "out.png", []byte{1, 2, 3}, "image/png")
	require.NoError(t, err)
	assert.Equal(t, "resized", fake.lastBucket)
	assert.Equal(t, "out.png", fake.lastKey)
	assert.Equal(t, "image/png", fake.lastCT)
	assert.Equal(t, []byte{1, 2, 3}, fake.lastBody)
}

func TestS3StorePutError(t *testing.T) {
	fake := &fakeS3{putErr: errors.New("denied")}
	store := NewS3Store(fake, "resized")

	err := store.Put(context.Background(), "out.png", nil, "image/png")
	assert.ErrorIs(t, err, ErrStorage)
}

func TestS3StoreURL(t *testing.T) {
	store := NewS3Store(&fakeS3{}, "my-resized-images")
	assert.Equal(t,
		"https://my-resized-images.s3.amazonaws.com/abc.jpg",
		store.URL("abc.jpg"))
}
