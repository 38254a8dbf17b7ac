package checklist

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
)

const defaultUser = "anonymous"

type PhotoConfig struct {
	// MaxImageEdge caps the long edge of stored photos; larger decodable
	// images are downscaled and re-encoded as JPEG.
	MaxImageEdge int
}

type Service struct {
	repo   Repository
	blobs  BlobStore
	photos PhotoConfig
}

func NewService(repo Repository, blobs BlobStore) *Service {
	return NewServiceWithPhotoConfig(repo, blobs, PhotoConfig{MaxImageEdge: 1600})
}

func NewServiceWithPhotoConfig(repo Repository, blobs BlobStore, photos PhotoConfig) *Service {
	if photos.MaxImageEdge <= 0 {
		photos.MaxImageEdge = 1600
	}
	return &Service{repo: repo, blobs: blobs, photos: photos}
}

func (s *Service) Items(ctx context.Context) (MasterList, error) {
	return s.repo.MasterItems(ctx)
}

// ReplaceItems replaces the master list wholesale, preserving order. Tasks
// submitted without an id get one; duplicate ids are rejected because
// completion history is keyed by them.
func (s *Service) ReplaceItems(ctx context.Context, items []Task) ([]Task, error) {
	seen := make(map[string]struct{}, len(items))
	out := make([]Task, 0, len(items))
	for _, task := range items {
		task.ID = strings.TrimSpace(task.ID)
		task.Label = strings.TrimSpace(task.Label)
		if task.ID == "" {
			task.ID = uuid.NewString()
		}
		if _, dup := seen[task.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate task id %q", ErrInvalidInput, task.ID)
		}
		seen[task.ID] = struct{}{}
		out = append(out, task)
	}

	if err := s.repo.ReplaceMasterItems(ctx, out); err != nil {
		return nil, err
	}
	return out, nil
}

// Day returns the persisted record for a date, or nil when none exists.
func (s *Service) Day(ctx context.Context, date string) (*DailyRecord, error) {
	return s.repo.Record(ctx, date)
}

// SaveDay merge-upserts a day's record: provided items/checked are merged
// into the stored document, untouched fields survive.
func (s *Service) SaveDay(ctx context.Context, rec DailyRecord) error {
	if rec.Date == "" {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if rec.Items == nil {
		rec.Items = []Task{}
	}
	if rec.Checked == nil {
		rec.Checked = CheckedMap{}
	}
	return s.repo.MergeRecord(ctx, rec)
}

type ToggleInput struct {
	Date   string
	TaskID string
	User   string
	Note   string
}

// Toggle flips the presence of checked[task][user] for a date and returns
// the day's updated checked map. The read decides check vs uncheck; the
// write itself only touches the targeted nested field, so concurrent
// toggles on other tasks or users are never clobbered.
func (s *Service) Toggle(ctx context.Context, in ToggleInput) (CheckedMap, error) {
	taskID := strings.TrimSpace(in.TaskID)
	if taskID == "" {
		return nil, fmt.Errorf("%w: item_id is required", ErrInvalidInput)
	}
	user := strings.TrimSpace(in.User)
	if user == "" {
		user = defaultUser
	}

	rec, err := s.repo.Record(ctx, in.Date)
	if err != nil {
		return nil, err
	}

	var present bool
	if rec != nil {
		_, present = rec.Checked[taskID][user]
	}

	if present {
		removeTask := len(rec.Checked[taskID]) == 1
		if err := s.repo.ClearCheck(ctx, in.Date, taskID, user, removeTask); err != nil {
			return nil, err
		}
	} else {
		entry := CheckEntry{Checked: true, Note: in.Note}
		if err := s.repo.SetCheck(ctx, in.Date, taskID, user, entry); err != nil {
			return nil, err
		}
	}

	updated, err := s.repo.Record(ctx, in.Date)
	if err != nil {
		return nil, err
	}
	if updated == nil || updated.Checked == nil {
		return CheckedMap{}, nil
	}
	return updated.Checked, nil
}

type PhotoInput struct {
	Date        string
	TaskID      string
	User        string
	ContentType string
	Data        []byte
}

// AttachPhoto stores the photo in the blob store and merges the resulting
// URL into checked[task][user].photoUrl without disturbing sibling fields.
func (s *Service) AttachPhoto(ctx context.Context, in PhotoInput) (string, error) {
	taskID := strings.TrimSpace(in.TaskID)
	if taskID == "" {
		return "", fmt.Errorf("%w: item_id is required", ErrInvalidInput)
	}
	if len(in.Data) == 0 {
		return "", fmt.Errorf("%w: file is empty", ErrInvalidInput)
	}
	user := strings.TrimSpace(in.User)
	if user == "" {
		user = defaultUser
	}

	data, contentType, ext := s.preparePhoto(in.Data, in.ContentType)
	path := fmt.Sprintf("photos/%s/%s/%s%s", in.Date, taskID, uuid.NewString(), ext)

	url, err := s.blobs.Put(ctx, path, contentType, data)
	if err != nil {
		return "", err
	}

	if err := s.repo.AttachPhotoURL(ctx, in.Date, taskID, user, url); err != nil {
		return "", err
	}
	return url, nil
}

// preparePhoto downscales oversized images to the configured long edge.
// Payloads that do not decode are stored untouched.
func (s *Service) preparePhoto(data []byte, contentType string) ([]byte, string, string) {
	if !strings.HasPrefix(contentType, "image/") {
		return data, contentType, extensionFor(contentType)
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return data, contentType, extensionFor(contentType)
	}

	bounds := img.Bounds()
	if bounds.Dx() <= s.photos.MaxImageEdge && bounds.Dy() <= s.photos.MaxImageEdge {
		return data, contentType, extensionFor(contentType)
	}

	resized := imaging.Fit(img, s.photos.MaxImageEdge, s.photos.MaxImageEdge, imaging.Lanczos)
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, resized, imaging.JPEG, imaging.JPEGQuality(85)); err != nil {
		return data, contentType, extensionFor(contentType)
	}
	return buf.Bytes(), "image/jpeg", ".jpg"
}

func extensionFor(contentType string) string {
	switch contentType {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	default:
		return ".bin"
	}
}
