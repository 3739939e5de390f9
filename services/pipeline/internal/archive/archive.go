package archive

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/02loveslollipop/station-backfill/services/pipeline/internal/config"
)

// Archiver copies written pipeline outputs to an S3-compatible bucket.
type Archiver struct {
	client *minio.Client
	bucket string
	prefix string
}

// New builds an Archiver from cfg. It does not contact the endpoint.
func New(cfg config.Archive) (*Archiver, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.Secure,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create S3 client: %w", err)
	}

	return &Archiver{
		client: client,
		bucket: cfg.Bucket,
		prefix: cfg.Prefix,
	}, nil
}

// ObjectKey returns the key a file is archived under: prefix, the UTC date
// of at as yyyy/mm/dd, then the file's base name.
func ObjectKey(prefix, localPath string, at time.Time) string {
	prefix = strings.Trim(prefix, "/")
	key := path.Join(at.UTC().Format("2006/01/02"), filepath.Base(localPath))
	if prefix == "" {
		return key
	}
	return prefix + "/" + key
}

// Upload stores data under the key derived from localPath and at, returning
// the key.
func (a *Archiver) Upload(ctx context.Context, localPath string, data []byte, at time.Time) (string, error) {
	if a == nil || a.client == nil {
		return "", fmt.Errorf("s3 client not initialized")
	}

	key := ObjectKey(a.prefix, localPath, at)
	_, err := a.client.PutObject(
		ctx,
		a.bucket,
		key,
		bytes.NewReader(data),
		int64(len(data)),
		minio.PutObjectOptions{
			ContentType: "application/json",
		},
	)
	if err != nil {
		return "", fmt.Errorf("s3 put object: %w", err)
	}

	return key, nil
}
