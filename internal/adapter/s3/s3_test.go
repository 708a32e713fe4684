package s3

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClient struct {
	mu      sync.Mutex
	objects map[string]string
	err     error
}

func newFakeClient() *fakeClient {
	return &fakeClient{objects: make(map[string]string)}
}

func (f *fakeClient) GetObject(ctx context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	v, ok := f.objects[aws.ToString(in.Bucket)+"/"+aws.ToString(in.Key)]
	if !ok {
		return nil, &types.NoSuchKey{}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(strings.NewReader(v))}, nil
}

func (f *fakeClient) PutObject(ctx context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	b, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.objects[aws.ToString(in.Bucket)+"/"+aws.ToString(in.Key)] = string(b)
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeClient) DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	delete(f.objects, aws.ToString(in.Bucket)+"/"+aws.ToString(in.Key))
	return &s3.DeleteObjectOutput{}, nil
}

func TestDB_RoundTrip(t *testing.T) {
	client := newFakeClient()
	db := New(client, "bucket", "liftit/")
	ctx := context.Background()

	_, ok, err := db.Get(ctx, "liftit_users")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, db.Set(ctx, "liftit_users", `[{"id":"1"}]`))
	assert.Contains(t, client.objects, "bucket/liftit/liftit_users")

	v, ok, err := db.Get(ctx, "liftit_users")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[{"id":"1"}]`, v)

	require.NoError(t, db.Delete(ctx, "liftit_users"))
	_, ok, err = db.Get(ctx, "liftit_users")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDB_Errors(t *testing.T) {
	client := newFakeClient()
	client.err = errors.New("access denied")
	db := New(client, "bucket", "")
	ctx := context.Background()

	_, _, err := db.Get(ctx, "k")
	assert.ErrorContains(t, err, "access denied")
	assert.ErrorContains(t, db.Set(ctx, "k", "v"), "s3 put k")
	assert.ErrorContains(t, db.Delete(ctx, "k"), "s3 delete k")
}

func TestDB_NotFoundVariants(t *testing.T) {
	assert.False(t, isNotFound(nil))
	assert.True(t, isNotFound(&types.NoSuchKey{}))
	assert.True(t, isNotFound(&types.NotFound{}))
	assert.False(t, isNotFound(errors.New("boom")))
}

func TestOpen_ConfigError(t *testing.T) {
	orig := loadDefaultAWSConfig
	t.Cleanup(func() { loadDefaultAWSConfig = orig })

	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		return aws.Config{}, errors.New("no config")
	}
	_, err := Open(context.Background(), Options{Bucket: "b", Region: "us-east-1"})
	assert.ErrorContains(t, err, "no config")
}

func TestOpen_StaticCredentials(t *testing.T) {
	orig := loadDefaultAWSConfig
	t.Cleanup(func() { loadDefaultAWSConfig = orig })

	var applied int
	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		applied = len(optFns)
		return aws.Config{Region: "us-east-1"}, nil
	}
	db, err := Open(context.Background(), Options{
		Bucket:          "b",
		Prefix:          "p/",
		Region:          "us-east-1",
		Endpoint:        "http://127.0.0.1:9000",
		AccessKeyID:     "id",
		SecretAccessKey: "secret",
	})
	require.NoError(t, err)
	assert.Equal(t, 2, applied)
	assert.Equal(t, "b", db.bucket)
	assert.Equal(t, "p/", db.prefix)
}
