// Package s3 implements the key-value store as objects in an S3 bucket.
package s3

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"liftit/internal/domain"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// Client is the subset of the S3 API the store needs.
type Client interface {
	GetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// Options configures Open.
type Options struct {
	Bucket          string
	Prefix          string
	Region          string
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
}

// DB stores each key as one object named prefix+key.
type DB struct {
	client Client
	bucket string
	prefix string
}

var _ domain.KVStore = (*DB)(nil)

var loadDefaultAWSConfig = awsconfig.LoadDefaultConfig

// Open builds an S3 client from opts and the default AWS config chain. A
// custom endpoint switches to path-style addressing for S3-compatible
// servers such as MinIO.
func Open(ctx context.Context, opts Options) (*DB, error) {
	loadOpts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(opts.Region),
	}
	if opts.AccessKeyID != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(opts.AccessKeyID, opts.SecretAccessKey, ""),
		))
	}

	cfg, err := loadDefaultAWSConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
			o.UsePathStyle = true
		}
	})
	return New(client, opts.Bucket, opts.Prefix), nil
}

// New wraps an existing client.
func New(client Client, bucket, prefix string) *DB {
	return &DB{client: client, bucket: bucket, prefix: prefix}
}

func (db *DB) objectKey(key string) *string {
	return aws.String(db.prefix + key)
}

// Get returns the value stored under key. Missing objects report ok=false.
func (db *DB) Get(ctx context.Context, key string) (string, bool, error) {
	out, err := db.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(db.bucket),
		Key:    db.objectKey(key),
	})
	if isNotFound(err) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("s3 get %s: %w", key, err)
	}
	defer out.Body.Close() //nolint:errcheck

	b, err := io.ReadAll(out.Body)
	if err != nil {
		return "", false, fmt.Errorf("s3 read %s: %w", key, err)
	}
	return string(b), true, nil
}

// Set writes value as the object for key.
func (db *DB) Set(ctx context.Context, key, value string) error {
	_, err := db.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(db.bucket),
		Key:         db.objectKey(key),
		Body:        strings.NewReader(value),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("s3 put %s: %w", key, err)
	}
	return nil
}

// Delete removes the object for key. S3 treats absent keys as deleted.
func (db *DB) Delete(ctx context.Context, key string) error {
	_, err := db.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(db.bucket),
		Key:    db.objectKey(key),
	})
	if err != nil && !isNotFound(err) {
		return fmt.Errorf("s3 delete %s: %w", key, err)
	}
	return nil
}

func isNotFound(err error) bool {
	if err == nil {
		return false
	}
	var noKey *types.NoSuchKey
	var notFound *types.NotFound
	return errors.As(err, &noKey) || errors.As(err, &notFound)
}
