// Package imagestore stores player images in a Supabase storage bucket via
// its REST API.
package imagestore

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/village-coders/attendance-api/internal/domain"
	"github.com/village-coders/attendance-api/internal/ports/out/imagestore"
)

const objectPrefix = "players"

var allowedTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

type Config struct {
	// BaseURL is the project URL, e.g. https://abc.supabase.co.
	BaseURL string
	// ServiceKey is the service-role API key.
	ServiceKey string
	// Bucket defaults to "player-images".
	Bucket string
	// HTTPClient defaults to a client with a 30s timeout.
	HTTPClient *http.Client
}

// Store implements imagestore.Store against Supabase storage.
type Store struct {
	baseURL string
	key     string
	bucket  string
	client  *http.Client
}

func NewStore(cfg Config) (*Store, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("supabase base URL is required")
	}
	if cfg.ServiceKey == "" {
		return nil, fmt.Errorf("supabase service key is required")
	}
	bucket := cfg.Bucket
	if bucket == "" {
		bucket = "player-images"
	}
	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &Store{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		key:     cfg.ServiceKey,
		bucket:  bucket,
		client:  client,
	}, nil
}

func (s *Store) Upload(ctx context.Context, playerID domain.PlayerID, filename, contentType string, data []byte) (string, error) {
	ext, ok := allowedTypes[contentType]
	if !ok {
		return "", imagestore.ErrUnsupportedType
	}
	if e := path.Ext(filename); e != "" {
		ext = e
	}

	objectPath := fmt.Sprintf("%s/player-%s-%s%s", objectPrefix, playerID, uuid.NewString()[:8], ext)
	uploadURL := fmt.Sprintf("%s/storage/v1/object/%s/%s", s.baseURL, s.bucket, objectPath)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, uploadURL, bytes.NewReader(data))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+s.key)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("x-upsert", "true")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("supabase upload: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return "", fmt.Errorf("supabase upload: status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s", s.baseURL, s.bucket, objectPath), nil
}

func (s *Store) Delete(ctx context.Context, imageURL string) error {
	objectPath := s.objectPathFromURL(imageURL)
	if objectPath == "" {
		// Not one of ours; nothing to delete.
		return nil
	}

	deleteURL := fmt.Sprintf("%s/storage/v1/object/%s/%s", s.baseURL, s.bucket, objectPath)
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, deleteURL, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+s.key)

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("supabase delete: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNotFound {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return fmt.Errorf("supabase delete: status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return nil
}

// objectPathFromURL recovers the bucket-relative path from a public URL
// previously returned by Upload.
func (s *Store) objectPathFromURL(imageURL string) string {
	u, err := url.Parse(imageURL)
	if err != nil {
		return ""
	}
	marker := fmt.Sprintf("/storage/v1/object/public/%s/", s.bucket)
	_, after, found := strings.Cut(u.Path, marker)
	if !found {
		return ""
	}
	return after
}
