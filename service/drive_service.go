package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"path"
	"time"

	"github.com/sony/gobreaker/v2"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
)

// DriveImageStore uploads images to a Google Drive folder and shares them publicly.
// Calls go through a circuit breaker so an unavailable Drive fails fast.
type DriveImageStore struct {
	client   *drive.Service
	folderID string
	breaker  *gobreaker.CircuitBreaker[string]
	upload   func(ctx context.Context, key, contentType string, data []byte) (string, error)
}

// Ensure DriveImageStore implements ImageStore
var _ ImageStore = (*DriveImageStore)(nil)

// NewDriveImageStore creates a DriveImageStore.
// credentialsPath should be the path to the Service Account JSON file.
func NewDriveImageStore(ctx context.Context, credentialsPath, folderID string) (*DriveImageStore, error) {
	if folderID == "" {
		return nil, fmt.Errorf("drive folder id is required")
	}

	client, err := drive.NewService(ctx, option.WithCredentialsFile(credentialsPath))
	if err != nil {
		return nil, fmt.Errorf("failed to create drive service: %w", err)
	}

	store := &DriveImageStore{
		client:   client,
		folderID: folderID,
		breaker:  newDriveBreaker(),
	}
	store.upload = store.uploadFile
	return store, nil
}

func newDriveBreaker() *gobreaker.CircuitBreaker[string] {
	return gobreaker.NewCircuitBreaker[string](gobreaker.Settings{
		Name:        "google-drive",
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Printf("⚠️  Circuit breaker %s: %s -> %s", name, from, to)
		},
	})
}

// Save uploads data as a file named after the last segment of key
func (s *DriveImageStore) Save(ctx context.Context, key string, contentType string, data []byte) (string, error) {
	url, err := s.breaker.Execute(func() (string, error) {
		return s.upload(ctx, key, contentType, data)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return "", fmt.Errorf("image storage temporarily unavailable: %w", err)
	}
	return url, err
}

// uploadFile creates the file in the folder and shares it with anyone holding the link
func (s *DriveImageStore) uploadFile(ctx context.Context, key, contentType string, data []byte) (string, error) {
	file := &drive.File{
		Name:     path.Base(key),
		MimeType: contentType,
		Parents:  []string{s.folderID},
	}

	created, err := s.client.Files.Create(file).
		Media(bytes.NewReader(data)).
		Fields("id").
		Context(ctx).
		Do()
	if err != nil {
		return "", fmt.Errorf("failed to upload file to drive: %w", err)
	}

	_, err = s.client.Permissions.Create(created.Id, &drive.Permission{Type: "anyone", Role: "reader"}).
		Context(ctx).
		Do()
	if err != nil {
		return "", fmt.Errorf("failed to share drive file %s: %w", created.Id, err)
	}

	log.Printf("✓ Uploaded %s to drive as %s", key, created.Id)
	return fmt.Sprintf("https://drive.google.com/uc?id=%s", created.Id), nil
}
