package db

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"checklist-app-go/internal/config"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	firebasestorage "firebase.google.com/go/v4/storage"
	"google.golang.org/api/option"
)

// ErrNotConfigured means no usable Firebase credentials were provided.
// The app still starts; store-backed requests fail with this error until
// credentials appear.
var ErrNotConfigured = errors.New("firebase is not configured")

const defaultOpTimeout = 10 * time.Second

// Firebase owns the Firestore and Cloud Storage clients. Connect is
// idempotent and safe for concurrent use; repositories call it lazily on
// first use so a credential fix does not require a restart.
type Firebase struct {
	cfg       config.FirebaseConfig
	opTimeout time.Duration

	mu        sync.Mutex
	app       *firebase.App
	firestore *firestore.Client
	storage   *firebasestorage.Client
}

func NewFirebase(cfg config.FirebaseConfig, opTimeout time.Duration) *Firebase {
	if opTimeout <= 0 {
		opTimeout = defaultOpTimeout
	}
	return &Firebase{cfg: cfg, opTimeout: opTimeout}
}

// Connect initializes the Firebase app and its Firestore client. The first
// successful call wins; later calls return immediately. A failed call may be
// retried.
func (f *Firebase) Connect(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.connectLocked(ctx)
}

func (f *Firebase) connectLocked(ctx context.Context) error {
	if f.firestore != nil {
		return nil
	}

	opt, err := f.credentials()
	if err != nil {
		return err
	}

	conf := &firebase.Config{
		ProjectID:     f.cfg.ProjectID,
		StorageBucket: f.cfg.StorageBucket,
	}
	app, err := firebase.NewApp(ctx, conf, opt)
	if err != nil {
		return fmt.Errorf("init firebase app: %w", err)
	}

	client, err := app.Firestore(ctx)
	if err != nil {
		return fmt.Errorf("init firestore client: %w", err)
	}

	f.app = app
	f.firestore = client
	return nil
}

func (f *Firebase) credentials() (option.ClientOption, error) {
	if f.cfg.CredentialsJSON != "" {
		return option.WithCredentialsJSON([]byte(f.cfg.CredentialsJSON)), nil
	}
	if f.cfg.CredentialsPath != "" {
		if _, err := os.Stat(f.cfg.CredentialsPath); err == nil {
			return option.WithCredentialsFile(f.cfg.CredentialsPath), nil
		}
	}
	return nil, fmt.Errorf("%w: set FIREBASE_CREDENTIALS or FIREBASE_CREDENTIALS_PATH", ErrNotConfigured)
}

// Firestore returns the document store client, connecting on first use.
func (f *Firebase) Firestore(ctx context.Context) (*firestore.Client, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.connectLocked(ctx); err != nil {
		return nil, err
	}
	return f.firestore, nil
}

// Storage returns the blob store client, connecting on first use.
func (f *Firebase) Storage(ctx context.Context) (*firebasestorage.Client, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.connectLocked(ctx); err != nil {
		return nil, err
	}
	if f.storage == nil {
		client, err := f.app.Storage(ctx)
		if err != nil {
			return nil, fmt.Errorf("init storage client: %w", err)
		}
		f.storage = client
	}
	return f.storage, nil
}

// OpContext bounds a single store operation. Streaming scans use the
// request context instead, which the router already caps.
func (f *Firebase) OpContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, f.opTimeout)
}

func (f *Firebase) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.firestore == nil {
		return nil
	}
	err := f.firestore.Close()
	f.firestore = nil
	f.app = nil
	f.storage = nil
	return err
}
