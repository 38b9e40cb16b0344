package imagestore

import (
	"context"
	"fmt"
	"sync"

	"github.com/village-coders/attendance-api/internal/domain"
	"github.com/village-coders/attendance-api/internal/ports/out/imagestore"
)

var allowedTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

// Store is an in-memory image store used in tests and local development.
// Returned URLs use a mem:// scheme so they are recognizably fake.
type Store struct {
	mu    sync.Mutex
	blobs map[string][]byte
	seq   int
}

func NewStore() *Store {
	return &Store{blobs: make(map[string][]byte)}
}

func (s *Store) Upload(ctx context.Context, playerID domain.PlayerID, filename, contentType string, data []byte) (string, error) {
	_ = ctx
	ext, ok := allowedTypes[contentType]
	if !ok {
		return "", imagestore.ErrUnsupportedType
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	url := fmt.Sprintf("mem://player-images/players/player-%s-%d%s", playerID, s.seq, ext)
	s.blobs[url] = append([]byte(nil), data...)
	return url, nil
}

func (s *Store) Delete(ctx context.Context, url string) error {
	_ = ctx
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.blobs, url)
	return nil
}

// Len reports how many blobs are held; used by tests to assert cleanup.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.blobs)
}
