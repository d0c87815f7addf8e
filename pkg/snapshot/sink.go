// Package snapshot stores serialized HTML of an attached app after each
// update cycle.
package snapshot

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/vango-dev/livetree/internal/errors"
)

// Sink stores a named HTML document.
type Sink interface {
	Put(ctx context.Context, name string, html []byte) error
}

// DirSink writes snapshots as files under a directory.
type DirSink struct {
	dir string
}

// NewDirSink creates a DirSink rooted at dir. The directory is created on
// the first Put.
func NewDirSink(dir string) *DirSink {
	return &DirSink{dir: dir}
}

// Dir returns the output directory.
func (s *DirSink) Dir() string { return s.dir }

// Put writes html to dir/name.
func (s *DirSink) Put(_ context.Context, name string, html []byte) error {
	path := filepath.Join(s.dir, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.New("E030").WithDetailf("creating %s", filepath.Dir(path)).Wrap(err)
	}
	if err := os.WriteFile(path, html, 0o644); err != nil {
		return errors.New("E030").WithDetailf("writing %s", path).Wrap(err)
	}
	return nil
}

// S3API is the subset of the S3 client S3Sink uses.
type S3API interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

var _ S3API = (*s3.Client)(nil)

// S3Sink uploads snapshots to an S3 bucket.
//
// Example usage:
//
//	cfg, _ := config.LoadDefaultConfig(ctx)
//	sink := snapshot.NewS3Sink(s3.NewFromConfig(cfg), "my-bucket", "snapshots/")
type S3Sink struct {
	client S3API
	bucket string
	prefix string
	now    func() time.Time
}

// NewS3Sink creates an S3Sink. prefix is prepended to every object key.
func NewS3Sink(client S3API, bucket, prefix string) *S3Sink {
	return &S3Sink{
		client: client,
		bucket: bucket,
		prefix: prefix,
		now:    time.Now,
	}
}

// Put uploads html as prefix+name.
func (s *S3Sink) Put(ctx context.Context, name string, html []byte) error {
	key := s.prefix + name
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(html),
		ContentType: aws.String("text/html; charset=utf-8"),
		Metadata: map[string]string{
			"snapshot-time": s.now().UTC().Format(time.RFC3339),
		},
	})
	if err != nil {
		return errors.New("E031").WithDetailf("s3://%s/%s", s.bucket, key).Wrap(err)
	}
	return nil
}
