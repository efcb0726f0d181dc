// Package esindex keeps stored places searchable by name and address.
package esindex

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"github.com/oksasatya/courseitda/internal/application"
	"github.com/oksasatya/courseitda/internal/domain/entity"
)

const (
	DefaultIndex   = "courseitda_places"
	requestTimeout = 3 * time.Second
	maxSearchSize  = 50
)

var _ application.PlaceIndex = (*PlaceIndex)(nil)

type PlaceIndex struct {
	ES    *elasticsearch.Client
	Index string
}

func NewPlaceIndex(es *elasticsearch.Client, index string) *PlaceIndex {
	if index == "" {
		index = DefaultIndex
	}
	return &PlaceIndex{ES: es, Index: index}
}

type placeDoc struct {
	ID           string  `json:"id"`
	KakaoPlaceID string  `json:"kakao_place_id"`
	Name         string  `json:"name"`
	Address      string  `json:"address"`
	RoadAddress  string  `json:"road_address"`
	Lat          float64 `json:"lat"`
	Lng          float64 `json:"lng"`
	Phone        string  `json:"phone,omitempty"`
	URL          string  `json:"url,omitempty"`
	CreatedAt    string  `json:"created_at"`
}

func toDoc(p *entity.Place) placeDoc {
	return placeDoc{
		ID:           p.ID,
		KakaoPlaceID: p.KakaoPlaceID,
		Name:         p.Name,
		Address:      p.Address,
		RoadAddress:  p.RoadAddress,
		Lat:          p.Lat,
		Lng:          p.Lng,
		Phone:        p.Phone,
		URL:          p.URL,
		CreatedAt:    p.CreatedAt.Format(time.RFC3339Nano),
	}
}

func (d placeDoc) toPlace() *entity.Place {
	p := &entity.Place{
		ID:           d.ID,
		KakaoPlaceID: d.KakaoPlaceID,
		Name:         d.Name,
		Address:      d.Address,
		RoadAddress:  d.RoadAddress,
		Lat:          d.Lat,
		Lng:          d.Lng,
		Phone:        d.Phone,
		URL:          d.URL,
	}
	if t, err := time.Parse(time.RFC3339Nano, d.CreatedAt); err == nil {
		p.CreatedAt = t
	}
	return p
}

func (x *PlaceIndex) IndexPlace(ctx context.Context, p *entity.Place) error {
	b, err := json.Marshal(toDoc(p))
	if err != nil {
		return err
	}
	req := esapi.IndexRequest{Index: x.Index, DocumentID: p.ID, Body: bytes.NewReader(b), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()
	res, err := req.Do(c, x.ES)
	if err != nil {
		return fmt.Errorf("es index place %s: %w", p.ID, err)
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return fmt.Errorf("es index place %s: %s", p.ID, res.Status())
	}
	return nil
}

// DeletePlace removes the document; a missing document is not an error.
func (x *PlaceIndex) DeletePlace(ctx context.Context, id string) error {
	req := esapi.DeleteRequest{Index: x.Index, DocumentID: id}
	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()
	res, err := req.Do(c, x.ES)
	if err != nil {
		return fmt.Errorf("es delete place %s: %w", id, err)
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && res.StatusCode != http.StatusNotFound {
		return fmt.Errorf("es delete place %s: %s", id, res.Status())
	}
	return nil
}

// SearchPlaces performs a multi_match search on name and addresses.
func (x *PlaceIndex) SearchPlaces(ctx context.Context, q string, size int) ([]*entity.Place, error) {
	if size <= 0 || size > maxSearchSize {
		size = 10
	}
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"name^2", "road_address", "address"},
			},
		},
		"size": size,
	}
	b, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	res, err := x.ES.Search(
		x.ES.Search.WithContext(c),
		x.ES.Search.WithIndex(x.Index),
		x.ES.Search.WithBody(bytes.NewReader(b)),
	)
	if err != nil {
		return nil, fmt.Errorf("es search places: %w", err)
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		if res.StatusCode == http.StatusNotFound {
			return []*entity.Place{}, nil
		}
		return nil, fmt.Errorf("es search places: %s", res.Status())
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID     string   `json:"_id"`
				Source placeDoc `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	out := make([]*entity.Place, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		p := h.Source.toPlace()
		if p.ID == "" {
			p.ID = h.ID
		}
		out = append(out, p)
	}
	return out, nil
}
