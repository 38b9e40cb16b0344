package imagestore

import (
	"context"
	"errors"

	"github.com/village-coders/attendance-api/internal/domain"
)

// ErrUnsupportedType indicates the uploaded blob is not an accepted image type.
var ErrUnsupportedType = errors.New("unsupported image type")

// Store is the external object-storage collaborator that holds player images.
//
// Upload stores the blob under a name derived from the player ID and returns
// a public reference URL. Delete accepts a previously returned URL; deleting
// an unknown URL is not an error.
type Store interface {
	Upload(ctx context.Context, playerID domain.PlayerID, filename, contentType string, data []byte) (string, error)
	Delete(ctx context.Context, url string) error
}
