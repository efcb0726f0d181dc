package application

import (
	"context"
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/courseitda/internal/domain/entity"
	repo "github.com/oksasatya/courseitda/internal/domain/repository"
)

const defaultSavedSearchSize = 20

type PlaceService struct {
	Store    repo.Store
	Searcher PlaceSearcher
	Index    PlaceIndex
	Settings *SettingsService
	Logger   *logrus.Logger

	// FallbackKey is used when neither the request nor the user's settings carry a REST key.
	FallbackKey string
}

func NewPlaceService(store repo.Store, searcher PlaceSearcher, index PlaceIndex, settings *SettingsService, logger *logrus.Logger) *PlaceService {
	return &PlaceService{
		Store:    store,
		Searcher: searcher,
		Index:    index,
		Settings: settings,
		Logger:   logger,
	}
}

// AttachToCategory links an external search result to the category. A place is stored once per
// external id; attaching it again to another category only adds a link.
func (s *PlaceService) AttachToCategory(ctx context.Context, workspaceID, categoryID string, ext entity.ExternalPlace) (*entity.Place, error) {
	cat, err := s.Store.Categories().GetByID(ctx, categoryID)
	if err != nil && !errors.Is(err, repo.ErrNotFound) {
		return nil, err
	}
	if cat == nil || cat.WorkspaceID != workspaceID {
		return nil, validationError("category not found in workspace")
	}
	if strings.TrimSpace(ext.ID) == "" {
		return nil, validationError("external place id is required")
	}

	p, err := s.Store.Places().GetByKakaoID(ctx, ext.ID)
	switch {
	case err == nil:
		if _, err := s.Store.CategoryPlaces().GetByPair(ctx, categoryID, p.ID); err == nil {
			return nil, conflictError("place already in category")
		} else if !errors.Is(err, repo.ErrNotFound) {
			return nil, err
		}
	case errors.Is(err, repo.ErrNotFound):
		if p, err = s.createPlace(ctx, ext); err != nil {
			return nil, err
		}
	default:
		return nil, err
	}

	link := &entity.CategoryPlace{
		ID:         uuid.NewString(),
		CategoryID: categoryID,
		PlaceID:    p.ID,
		CreatedAt:  nowUTC(),
	}
	if err := s.Store.CategoryPlaces().Create(ctx, link); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, conflictError("place already in category")
		}
		return nil, err
	}
	return p, nil
}

// parseCoord accepts finite degrees within ±limit.
func parseCoord(s string, limit float64) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || math.Abs(v) > limit {
		return 0, false
	}
	return v, true
}

func (s *PlaceService) createPlace(ctx context.Context, ext entity.ExternalPlace) (*entity.Place, error) {
	lat, ok := parseCoord(ext.Y, 90)
	if !ok {
		return nil, validationError("invalid latitude " + strconv.Quote(ext.Y))
	}
	lng, ok := parseCoord(ext.X, 180)
	if !ok {
		return nil, validationError("invalid longitude " + strconv.Quote(ext.X))
	}
	p := &entity.Place{
		ID:           uuid.NewString(),
		KakaoPlaceID: ext.ID,
		Name:         ext.PlaceName,
		Address:      ext.AddressName,
		RoadAddress:  ext.RoadAddressName,
		Lat:          lat,
		Lng:          lng,
		Phone:        ext.Phone,
		URL:          ext.PlaceURL,
		CreatedAt:    nowUTC(),
	}
	if err := s.Store.Places().Create(ctx, p); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			// created concurrently under the same external id
			return s.Store.Places().GetByKakaoID(ctx, ext.ID)
		}
		return nil, err
	}
	if s.Index != nil {
		if err := s.Index.IndexPlace(ctx, p); err != nil && s.Logger != nil {
			s.Logger.WithError(err).WithField("place_id", p.ID).Warn("index place failed")
		}
	}
	return p, nil
}

// Remove unlinks the place from the category, deletes the place when no category links it
// anymore and clears the category's representative if it pointed at the place.
func (s *PlaceService) Remove(ctx context.Context, placeID, categoryID string) error {
	if _, err := s.Store.CategoryPlaces().DeleteByPair(ctx, categoryID, placeID); err != nil {
		return err
	}
	if err := deletePlaceIfUnlinked(ctx, s.Store, s.Index, s.Logger, placeID); err != nil {
		return err
	}

	cat, err := s.Store.Categories().GetByID(ctx, categoryID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil
		}
		return err
	}
	if !cat.HasRepresentative(placeID) {
		return nil
	}
	cat.RepresentativePlaceID = nil
	cat.UpdatedAt = nowUTC()
	if err := s.Store.Categories().Update(ctx, cat); err != nil && !errors.Is(err, repo.ErrNotFound) {
		return err
	}
	return nil
}

// ListByCategory returns the places linked to the category. Links whose place is gone are skipped.
func (s *PlaceService) ListByCategory(ctx context.Context, categoryID string) ([]*entity.Place, error) {
	links, err := s.Store.CategoryPlaces().ListByCategory(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(links))
	for _, l := range links {
		ids = append(ids, l.PlaceID)
	}
	places, err := s.Store.Places().GetMany(ctx, ids)
	if err != nil {
		return nil, err
	}
	out := places[:0]
	for _, p := range places {
		if p != nil {
			out = append(out, p)
		}
	}
	return out, nil
}

type SearchInput struct {
	UserID string
	Query  string
	Page   int
	Size   int
	APIKey string
}

// Search runs a keyword search against the external place API. Without an explicit key the
// REST key saved in the user's settings is used.
func (s *PlaceService) Search(ctx context.Context, in SearchInput) (*entity.SearchResult, error) {
	q := strings.TrimSpace(in.Query)
	if q == "" {
		return nil, validationError("query is required")
	}
	key := in.APIKey
	if key == "" && s.Settings != nil && in.UserID != "" {
		st, err := s.Settings.Get(ctx, in.UserID)
		if err != nil {
			return nil, err
		}
		key = st.KakaoRestKey
	}
	if key == "" {
		key = s.FallbackKey
	}
	if key == "" {
		return nil, validationError("kakao REST API key is not set")
	}
	if s.Searcher == nil {
		return nil, errors.New("place search is not configured")
	}
	res, err := s.Searcher.Search(ctx, key, SearchQuery{Query: q, Page: in.Page, Size: in.Size})
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("query", q).Warn("place search failed")
		}
		return nil, err
	}
	return res, nil
}

// SearchSaved looks up stored places by text. It returns nothing when no index is configured.
func (s *PlaceService) SearchSaved(ctx context.Context, query string, size int) ([]*entity.Place, error) {
	q := strings.TrimSpace(query)
	if q == "" {
		return nil, validationError("query is required")
	}
	if s.Index == nil {
		return []*entity.Place{}, nil
	}
	if size <= 0 {
		size = defaultSavedSearchSize
	}
	return s.Index.SearchPlaces(ctx, q, size)
}
