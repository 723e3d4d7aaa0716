package archive

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

const objectPrefix = "auth-events"

// MinioConfig holds the object storage connection settings.
type MinioConfig struct {
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	Bucket          string
	UseSSL          bool
}

// objectStore is the subset of *minio.Client the recorder uses.
type objectStore interface {
	BucketExists(ctx context.Context, bucketName string) (bool, error)
	MakeBucket(ctx context.Context, bucketName string, opts minio.MakeBucketOptions) error
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
}

// MinioRecorder writes every event as a JSON object into a bucket.
type MinioRecorder struct {
	client objectStore
	bucket string
	newID  func() string

	mu       sync.Mutex
	bucketOK bool
}

// NewMinioRecorder connects to the object store described by cfg.
func NewMinioRecorder(cfg MinioConfig) (*MinioRecorder, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}
	return newMinioRecorder(client, cfg.Bucket), nil
}

func newMinioRecorder(client objectStore, bucket string) *MinioRecorder {
	return &MinioRecorder{
		client: client,
		bucket: bucket,
		newID:  func() string { return uuid.NewString() },
	}
}

// Record uploads ev, creating the bucket on first use.
func (r *MinioRecorder) Record(ctx context.Context, ev Event) error {
	if err := r.ensureBucket(ctx); err != nil {
		return err
	}

	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}

	objectName := ObjectName(ev, r.newID())
	slog.DebugContext(ctx, "archiving auth event", "bucket", r.bucket, "object", objectName)
	_, err = r.client.PutObject(ctx, r.bucket, objectName, bytes.NewReader(body), int64(len(body)), minio.PutObjectOptions{
		ContentType: "application/json",
	})
	if err != nil {
		return fmt.Errorf("put %s: %w", objectName, err)
	}
	return nil
}

func (r *MinioRecorder) ensureBucket(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.bucketOK {
		return nil
	}

	exists, err := r.client.BucketExists(ctx, r.bucket)
	if err != nil {
		return fmt.Errorf("check bucket %s: %w", r.bucket, err)
	}
	if !exists {
		if err := r.client.MakeBucket(ctx, r.bucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("make bucket %s: %w", r.bucket, err)
		}
	}
	r.bucketOK = true
	return nil
}

// ObjectName places events in daily folders: auth-events/YYYY/MM/DD/<id>.json.
func ObjectName(ev Event, id string) string {
	return fmt.Sprintf("%s/%s/%s.json", objectPrefix, ev.At.UTC().Format("2006/01/02"), id)
}
