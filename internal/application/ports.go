package application

import (
	"context"
	"io"
	"time"

	"github.com/oksasatya/courseitda/internal/domain/entity"
)

// PasswordHasher turns a plain password into the stored form and checks it back.
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Compare(hash, plain string) bool
}

// TokenCodec issues and resolves session tokens.
type TokenCodec interface {
	Issue(userID string, issuedAt time.Time) (string, error)
	Parse(token string) (userID string, err error)
}

// PlaceSearcher is the external keyword search API.
type PlaceSearcher interface {
	Search(ctx context.Context, apiKey string, q SearchQuery) (*entity.SearchResult, error)
}

// SearchQuery is a keyword search request. Page and Size are optional (0 = API default).
type SearchQuery struct {
	Query string
	Page  int
	Size  int
}

// PlaceIndex keeps stored places searchable by text.
type PlaceIndex interface {
	IndexPlace(ctx context.Context, p *entity.Place) error
	DeletePlace(ctx context.Context, id string) error
	SearchPlaces(ctx context.Context, q string, size int) ([]*entity.Place, error)
}

// ObjectUploader stores an object and returns its public URL.
type ObjectUploader interface {
	Upload(ctx context.Context, objectPath, contentType string, r io.Reader) (string, error)
}

// JobPublisher enqueues background jobs such as emails.
type JobPublisher interface {
	PublishJSON(ctx context.Context, body any) error
}
