package application_test

import (
	"context"
	"io"
	"strings"
	"sync"

	"github.com/oksasatya/courseitda/internal/application"
	"github.com/oksasatya/courseitda/internal/domain/entity"
)

type fakeSearcher struct {
	searchFn func(ctx context.Context, apiKey string, q application.SearchQuery) (*entity.SearchResult, error)
	lastKey  string
}

func (f *fakeSearcher) Search(ctx context.Context, apiKey string, q application.SearchQuery) (*entity.SearchResult, error) {
	f.lastKey = apiKey
	if f.searchFn != nil {
		return f.searchFn(ctx, apiKey, q)
	}
	return &entity.SearchResult{}, nil
}

type fakeIndex struct {
	mu     sync.Mutex
	places map[string]*entity.Place
}

func newFakeIndex() *fakeIndex {
	return &fakeIndex{places: map[string]*entity.Place{}}
}

func (f *fakeIndex) IndexPlace(_ context.Context, p *entity.Place) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.places[p.ID] = p
	return nil
}

func (f *fakeIndex) DeletePlace(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.places, id)
	return nil
}

func (f *fakeIndex) SearchPlaces(_ context.Context, q string, size int) ([]*entity.Place, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.Place
	for _, p := range f.places {
		if strings.Contains(strings.ToLower(p.Name), strings.ToLower(q)) && len(out) < size {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeIndex) has(id string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.places[id]
	return ok
}

type fakeUploader struct {
	path        string
	contentType string
	body        string
}

func (f *fakeUploader) Upload(_ context.Context, objectPath, contentType string, r io.Reader) (string, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	f.path, f.contentType, f.body = objectPath, contentType, string(b)
	return "https://storage.example/" + objectPath, nil
}

type fakeJobs struct {
	jobs []any
	err  error
}

func (f *fakeJobs) PublishJSON(_ context.Context, body any) error {
	if f.err != nil {
		return f.err
	}
	f.jobs = append(f.jobs, body)
	return nil
}
