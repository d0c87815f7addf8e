package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/vango-dev/livetree/internal/config"
	"github.com/vango-dev/livetree/pkg/app"
	"github.com/vango-dev/livetree/pkg/journal"
	"github.com/vango-dev/livetree/pkg/snapshot"
)

// sinkOptions overrides the snapshot config from flags.
type sinkOptions struct {
	dir    string
	bucket string
}

func (o sinkOptions) apply(cfg *config.Config) {
	if o.dir != "" {
		cfg.Snapshot.Dir = o.dir
	}
	if o.bucket != "" {
		cfg.Snapshot.Bucket = o.bucket
	}
}

// snapshotObservers returns one observer per configured snapshot sink.
func snapshotObservers(cfg *config.Config, logger *slog.Logger) []app.Option {
	var opts []app.Option
	if cfg.Snapshot.Dir != "" {
		sink := snapshot.NewDirSink(cfg.Snapshot.Dir)
		opts = append(opts, app.WithObserver(snapshot.NewObserver(sink, cfg.Snapshot.Prefix, logger)))
	}
	if cfg.Snapshot.Bucket != "" {
		sink := snapshot.NewS3Sink(newS3Client(cfg.Snapshot.Region), cfg.Snapshot.Bucket, cfg.Snapshot.Prefix)
		opts = append(opts, app.WithObserver(snapshot.NewObserver(sink, "", logger)))
	}
	return opts
}

// openRecorder opens the journal when recording is enabled. The returned
// close function is never nil.
func openRecorder(cfg *config.Config, logger *slog.Logger) ([]app.Option, func() error, error) {
	if !cfg.Journal.Record {
		return nil, func() error { return nil }, nil
	}
	j, err := journal.Open(cfg.Journal.Path, journal.WithLogger(logger))
	if err != nil {
		return nil, nil, err
	}
	logger.Info("recording messages", "journal", cfg.Journal.Path)
	return []app.Option{app.WithObserver(journal.NewRecorder(j))}, j.Close, nil
}

// newS3Client builds a client from the standard AWS environment variables.
func newS3Client(region string) *s3.Client {
	if region == "" {
		region = os.Getenv("AWS_REGION")
	}
	return s3.New(s3.Options{
		Region:      region,
		Credentials: aws.NewCredentialsCache(aws.CredentialsProviderFunc(envCredentials)),
	})
}

func envCredentials(context.Context) (aws.Credentials, error) {
	id, secret := os.Getenv("AWS_ACCESS_KEY_ID"), os.Getenv("AWS_SECRET_ACCESS_KEY")
	if id == "" || secret == "" {
		return aws.Credentials{}, fmt.Errorf("AWS_ACCESS_KEY_ID and AWS_SECRET_ACCESS_KEY must be set")
	}
	return aws.Credentials{
		AccessKeyID:     id,
		SecretAccessKey: secret,
		SessionToken:    os.Getenv("AWS_SESSION_TOKEN"),
		Source:          "environment",
	}, nil
}
