package application

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/courseitda/internal/domain/entity"
	repo "github.com/oksasatya/courseitda/internal/domain/repository"
	"github.com/oksasatya/courseitda/pkg/helpers"
)

// DefaultCenter is Seoul City Hall, used when a course has no places yet.
var DefaultCenter = LatLng{Lat: 37.5665, Lng: 126.9780}

type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type Bounds struct {
	SouthWest LatLng `json:"southWest"`
	NorthEast LatLng `json:"northEast"`
}

// Marker is one place on the course map. Order is the 1-based route position and is only set
// for representative places.
type Marker struct {
	PlaceID        string  `json:"placeId"`
	CategoryID     string  `json:"categoryId"`
	Name           string  `json:"name"`
	Lat            float64 `json:"lat"`
	Lng            float64 `json:"lng"`
	Color          string  `json:"color"`
	Representative bool    `json:"representative"`
	Order          int     `json:"order,omitempty"`
}

type RouteStop struct {
	Order        int           `json:"order"`
	CategoryID   string        `json:"categoryId"`
	CategoryName string        `json:"categoryName"`
	Color        string        `json:"color"`
	Place        *entity.Place `json:"place"`
}

type CourseOverview struct {
	Workspace  *entity.Workspace  `json:"workspace"`
	Categories []*entity.Category `json:"categories"`
	Markers    []Marker           `json:"markers"`
	Route      []RouteStop        `json:"route"`
	Path       []LatLng           `json:"path,omitempty"`
	Bounds     *Bounds            `json:"bounds,omitempty"`
	Center     LatLng             `json:"center"`
}

type CourseService struct {
	Store    repo.Store
	Uploader ObjectUploader
	Logger   *logrus.Logger
}

func NewCourseService(store repo.Store, uploader ObjectUploader, logger *logrus.Logger) *CourseService {
	return &CourseService{Store: store, Uploader: uploader, Logger: logger}
}

// Overview assembles what the course map shows: every place of the workspace as a marker and
// the route through the representative places, in category order.
func (s *CourseService) Overview(ctx context.Context, workspaceID string) (*CourseOverview, error) {
	w, err := s.Store.Workspaces().GetByID(ctx, workspaceID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, notFoundError("workspace not found")
		}
		return nil, err
	}
	cats, err := s.Store.Categories().ListByWorkspace(ctx, workspaceID)
	if err != nil {
		return nil, err
	}

	out := &CourseOverview{
		Workspace:  w,
		Categories: cats,
		Markers:    []Marker{},
		Route:      []RouteStop{},
	}
	markerAt := make(map[string]int)
	for i, c := range cats {
		places, err := s.categoryPlaces(ctx, c.ID)
		if err != nil {
			return nil, err
		}
		for _, p := range places {
			rep := c.HasRepresentative(p.ID)
			m := Marker{
				PlaceID:    p.ID,
				CategoryID: c.ID,
				Name:       p.Name,
				Lat:        p.Lat,
				Lng:        p.Lng,
				Color:      c.Color,
			}
			if rep {
				m.Representative = true
				m.Order = i + 1
				out.Route = append(out.Route, RouteStop{
					Order:        i + 1,
					CategoryID:   c.ID,
					CategoryName: c.Name,
					Color:        c.Color,
					Place:        p,
				})
			}
			if at, ok := markerAt[p.ID]; ok {
				// a place shared by several categories keeps one marker; a representative wins
				if rep && !out.Markers[at].Representative {
					out.Markers[at] = m
				}
				continue
			}
			markerAt[p.ID] = len(out.Markers)
			out.Markers = append(out.Markers, m)
		}
	}

	if len(out.Route) >= 2 {
		out.Path = make([]LatLng, 0, len(out.Route))
		for _, st := range out.Route {
			out.Path = append(out.Path, LatLng{Lat: st.Place.Lat, Lng: st.Place.Lng})
		}
	}
	out.Bounds = markerBounds(out.Markers)
	if out.Bounds == nil {
		out.Center = DefaultCenter
	} else {
		out.Center = LatLng{
			Lat: (out.Bounds.SouthWest.Lat + out.Bounds.NorthEast.Lat) / 2,
			Lng: (out.Bounds.SouthWest.Lng + out.Bounds.NorthEast.Lng) / 2,
		}
	}
	return out, nil
}

func (s *CourseService) categoryPlaces(ctx context.Context, categoryID string) ([]*entity.Place, error) {
	links, err := s.Store.CategoryPlaces().ListByCategory(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(links))
	for _, l := range links {
		ids = append(ids, l.PlaceID)
	}
	return s.Store.Places().GetMany(ctx, ids)
}

func markerBounds(ms []Marker) *Bounds {
	if len(ms) == 0 {
		return nil
	}
	b := &Bounds{
		SouthWest: LatLng{Lat: ms[0].Lat, Lng: ms[0].Lng},
		NorthEast: LatLng{Lat: ms[0].Lat, Lng: ms[0].Lng},
	}
	for _, m := range ms[1:] {
		b.SouthWest.Lat = min(b.SouthWest.Lat, m.Lat)
		b.SouthWest.Lng = min(b.SouthWest.Lng, m.Lng)
		b.NorthEast.Lat = max(b.NorthEast.Lat, m.Lat)
		b.NorthEast.Lng = max(b.NorthEast.Lng, m.Lng)
	}
	return b
}

// Export uploads the overview as JSON to object storage and returns its public URL.
func (s *CourseService) Export(ctx context.Context, workspaceID string) (string, error) {
	if s.Uploader == nil {
		return "", errors.New("object storage is not configured")
	}
	ov, err := s.Overview(ctx, workspaceID)
	if err != nil {
		return "", err
	}
	b, err := json.Marshal(ov)
	if err != nil {
		return "", fmt.Errorf("marshal overview: %w", err)
	}
	objectPath := fmt.Sprintf("exports/%s/%d.json", workspaceID, time.Now().Unix())
	url, err := s.Uploader.Upload(ctx, objectPath, "application/json", bytes.NewReader(b))
	if err != nil {
		helpers.LogError(s.Logger, "export course failed", err, logrus.Fields{"workspace_id": workspaceID})
		return "", err
	}
	return url, nil
}
