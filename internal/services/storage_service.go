package services

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"path"
	"strings"
	"time"

	"menuboard/internal/common"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// StorageService wraps the object store. Uploads return the public URL the
// stored documents reference; deletion takes that URL and reverse-maps it to
// the object key.
type StorageService interface {
	UploadImage(ctx context.Context, objectKey string, reader io.Reader, size int64, contentType string) (string, error)
	DeleteImageByURL(ctx context.Context, imageURL string) error
	ListImageKeys(ctx context.Context) ([]string, error)
	EnsureBucket(ctx context.Context) error
}

type minioStorage struct {
	client  *minio.Client
	bucket  string
	baseURL string
}

func NewMinioStorage(endpoint, accessKey, secretKey, bucket string, useSSL bool) (StorageService, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, err
	}
	scheme := "http"
	if useSSL {
		scheme = "https"
	}
	return &minioStorage{
		client:  client,
		bucket:  bucket,
		baseURL: fmt.Sprintf("%s://%s", scheme, endpoint),
	}, nil
}

func (s *minioStorage) UploadImage(ctx context.Context, objectKey string, reader io.Reader, size int64, contentType string) (string, error) {
	if !strings.HasPrefix(contentType, "image/") {
		return "", &common.ValidationError{Field: "image", Message: "file must be an image"}
	}
	if size > common.MaxImageSize {
		return "", &common.ValidationError{Field: "image", Message: "image size must be less than 10MB"}
	}

	_, err := s.client.PutObject(ctx, s.bucket, objectKey, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", common.RemoteErr("upload image", err)
	}
	return fmt.Sprintf("%s/%s/%s", s.baseURL, s.bucket, objectKey), nil
}

func (s *minioStorage) DeleteImageByURL(ctx context.Context, imageURL string) error {
	objectKey, err := ObjectKeyFromURL(imageURL, s.bucket)
	if err != nil {
		return err
	}
	if err := s.client.RemoveObject(ctx, s.bucket, objectKey, minio.RemoveObjectOptions{}); err != nil {
		return common.RemoteErr("delete image", err)
	}
	return nil
}

func (s *minioStorage) ListImageKeys(ctx context.Context) ([]string, error) {
	var keys []string
	for object := range s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{Recursive: true}) {
		if object.Err != nil {
			return nil, common.RemoteErr("list images", object.Err)
		}
		keys = append(keys, object.Key)
	}
	return keys, nil
}

func (s *minioStorage) EnsureBucket(ctx context.Context) error {
	found, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return common.RemoteErr("bucket exists", err)
	}
	if !found {
		if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
			return common.RemoteErr("make bucket", err)
		}
	}
	return nil
}

// ObjectKeyFromURL maps a public image URL back to its object key. The URL
// path must be /<bucket>/<key>; anything else is ErrInvalidURLFormat.
func ObjectKeyFromURL(imageURL, bucket string) (string, error) {
	parsed, err := url.Parse(imageURL)
	if err != nil {
		return "", common.ErrInvalidURLFormat
	}
	prefix := "/" + bucket + "/"
	unescaped, err := url.PathUnescape(parsed.Path)
	if err != nil {
		return "", common.ErrInvalidURLFormat
	}
	if !strings.HasPrefix(unescaped, prefix) {
		return "", common.ErrInvalidURLFormat
	}
	objectKey := strings.TrimPrefix(unescaped, prefix)
	if objectKey == "" {
		return "", common.ErrInvalidURLFormat
	}
	return objectKey, nil
}

// CategoryImageKey derives the storage key for a category image. The fresh
// uuid keeps repeated uploads under the same id unique even within the same
// millisecond; the timestamp keeps keys chronologically sortable.
func CategoryImageKey(categoryID uuid.UUID, filename string, now time.Time) string {
	return fmt.Sprintf("categories/%s/%d-%s%s", categoryID, now.UnixMilli(), uuid.New(), path.Ext(filename))
}

// ItemImageKey derives the storage key for an item image.
func ItemImageKey(itemID uuid.UUID, filename string, now time.Time) string {
	return fmt.Sprintf("items/%s/%d-%s%s", itemID, now.UnixMilli(), uuid.New(), path.Ext(filename))
}
