package blob

import (
	"context"
	"errors"
	"fmt"

	"checklist-app-go/internal/db"
	checklistdomain "checklist-app-go/internal/domain/checklist"

	"cloud.google.com/go/storage"
)

// FirebaseStorage stores blobs in the app's Cloud Storage bucket and hands
// back the public object URL.
type FirebaseStorage struct {
	fb     *db.Firebase
	bucket string
}

func NewFirebaseStorage(fb *db.Firebase, bucket string) *FirebaseStorage {
	return &FirebaseStorage{fb: fb, bucket: bucket}
}

func (s *FirebaseStorage) Put(ctx context.Context, path, contentType string, data []byte) (string, error) {
	bucket, err := s.bucketHandle(ctx)
	if err != nil {
		return "", err
	}

	ctx, cancel := s.fb.OpContext(ctx)
	defer cancel()

	w := bucket.Object(path).NewWriter(ctx)
	w.ObjectAttrs.ContentType = contentType
	w.ObjectAttrs.PredefinedACL = "publicRead"

	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("write object %s: %w", path, err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("close object %s: %w", path, err)
	}

	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", s.bucket, path), nil
}

func (s *FirebaseStorage) bucketHandle(ctx context.Context) (*storage.BucketHandle, error) {
	if s.bucket == "" {
		return nil, fmt.Errorf("%w: FIREBASE_STORAGE_BUCKET is not set", checklistdomain.ErrNotConfigured)
	}

	client, err := s.fb.Storage(ctx)
	if err != nil {
		if errors.Is(err, db.ErrNotConfigured) {
			return nil, fmt.Errorf("%w: %v", checklistdomain.ErrNotConfigured, err)
		}
		return nil, err
	}
	return client.Bucket(s.bucket)
}
