package storage

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Store keeps leaf images in a private bucket and hands out presigned
// read URLs; nothing else ever touches the objects (no delete, no overwrite).
type Store struct {
	client     *minio.Client
	bucketName string
	region     string
	now        func() time.Time
}

// New connects to MinIO and ensures the bucket exists.
func New(ctx context.Context, endpoint, region, bucket, accessKey, secretKey string, useSSL bool) (*Store, error) {
	cli, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
		Region: region,
	})
	if err != nil {
		return nil, err
	}

	exists, err := cli.BucketExists(ctx, bucket)
	if err != nil {
		return nil, err
	}
	if !exists {
		if err := cli.MakeBucket(ctx, bucket, minio.MakeBucketOptions{Region: region}); err != nil {
			return nil, err
		}
	}

	return &Store{client: cli, bucketName: bucket, region: region, now: time.Now}, nil
}

// Put implements ImageStore. The millisecond timestamp in the key only
// exists to keep repeated uploads of the same filename from colliding.
func (s *Store) Put(ctx context.Context, owner, filename string, size int64, r io.Reader) (string, error) {
	key := objectKey(owner, filename, s.now())

	contentType := "application/octet-stream"
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".jpg", ".jpeg":
		contentType = "image/jpeg"
	case ".png":
		contentType = "image/png"
	case ".webp":
		contentType = "image/webp"
	}

	_, err := s.client.PutObject(ctx, s.bucketName, key, r, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", err
	}
	return key, nil
}

// objectKey builds {owner}/{unixMillis}_{filename}.
func objectKey(owner, filename string, now time.Time) string {
	return fmt.Sprintf("%s/%d_%s", owner, now.UnixMilli(), filepath.Base(filename))
}

// Ping verifies the bucket is still reachable; used by health checks.
func (s *Store) Ping(ctx context.Context) error {
	_, err := s.client.BucketExists(ctx, s.bucketName)
	return err
}

// SignedURL implements ImageStore. An expired URL is a normal condition for
// callers; they re-request a fresh one, they do not treat it as data loss.
func (s *Store) SignedURL(ctx context.Context, imagePath string, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		ttl = time.Hour
	}
	u, err := s.client.PresignedGetObject(ctx, s.bucketName, imagePath, ttl, nil)
	if err != nil {
		return "", err
	}
	return u.String(), nil
}
