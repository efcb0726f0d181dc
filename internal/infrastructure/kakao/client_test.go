package kakao

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/courseitda/internal/application"
)

const sampleResponse = `{
  "documents": [{
    "id": "26338954",
    "place_name": "카카오프렌즈 코엑스점",
    "address_name": "서울 강남구 삼성동 159",
    "road_address_name": "서울 강남구 영동대로 513",
    "phone": "02-6002-1880",
    "place_url": "http://place.map.kakao.com/26338954",
    "category_name": "가정,생활 > 문구,사무용품",
    "x": "127.05902969025047",
    "y": "37.51207412593136"
  }],
  "meta": {"total_count": 1, "pageable_count": 1, "is_end": true}
}`

func newTestServer(t *testing.T, hits *int32) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(hits, 1)
		if r.URL.Path != keywordPath {
			http.NotFound(w, r)
			return
		}
		if r.Header.Get("Authorization") != "KakaoAK good-key" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"errorType":"AccessDeniedError"}`))
			return
		}
		if r.URL.Query().Get("query") != "코엑스 카페" {
			t.Errorf("query not decoded: %q", r.URL.RawQuery)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(sampleResponse))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestClientSearch(t *testing.T) {
	var hits int32
	srv := newTestServer(t, &hits)
	c := NewClient(srv.URL+"/", time.Second)

	res, err := c.Search(context.Background(), "good-key", application.SearchQuery{Query: "코엑스 카페"})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(res.Documents) != 1 {
		t.Fatalf("documents = %d", len(res.Documents))
	}
	d := res.Documents[0]
	if d.ID != "26338954" || d.X != "127.05902969025047" || d.Y != "37.51207412593136" || d.RoadAddressName == "" {
		t.Errorf("unexpected document %+v", d)
	}
	if !res.Meta.IsEnd || res.Meta.TotalCount != 1 {
		t.Errorf("unexpected meta %+v", res.Meta)
	}
}

func TestClientSearchNon2xx(t *testing.T) {
	var hits int32
	srv := newTestServer(t, &hits)
	c := NewClient(srv.URL, time.Second)

	_, err := c.Search(context.Background(), "bad-key", application.SearchQuery{Query: "코엑스 카페"})
	if !errors.Is(err, ErrSearchFailed) {
		t.Fatalf("err = %v, want ErrSearchFailed", err)
	}
}

func TestSearchURL(t *testing.T) {
	c := NewClient("", 0)
	got := c.searchURL(application.SearchQuery{Query: "a b&c", Page: 2, Size: 15})
	want := DefaultBaseURL + keywordPath + "?page=2&query=a+b%26c&size=15"
	if got != want {
		t.Errorf("searchURL = %q, want %q", got, want)
	}
}

func TestCachedSearcher(t *testing.T) {
	var hits int32
	srv := newTestServer(t, &hits)
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	cs := NewCachedSearcher(NewClient(srv.URL, time.Second), rdb, time.Minute, nil)
	ctx := context.Background()
	q := application.SearchQuery{Query: "코엑스 카페"}

	for i := 0; i < 3; i++ {
		res, err := cs.Search(ctx, "good-key", q)
		if err != nil {
			t.Fatalf("Search #%d: %v", i, err)
		}
		if len(res.Documents) != 1 {
			t.Fatalf("Search #%d documents = %d", i, len(res.Documents))
		}
	}
	if atomic.LoadInt32(&hits) != 1 {
		t.Errorf("api hits = %d, want 1", atomic.LoadInt32(&hits))
	}
	if !mr.Exists(cacheKey(q)) {
		t.Error("expected cached entry")
	}

	mr.FastForward(2 * time.Minute)
	if _, err := cs.Search(ctx, "good-key", q); err != nil {
		t.Fatalf("Search after expiry: %v", err)
	}
	if atomic.LoadInt32(&hits) != 2 {
		t.Errorf("api hits = %d, want 2", atomic.LoadInt32(&hits))
	}
}

func TestCachedSearcherDoesNotCacheFailures(t *testing.T) {
	var hits int32
	srv := newTestServer(t, &hits)
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	cs := NewCachedSearcher(NewClient(srv.URL, time.Second), rdb, time.Minute, nil)
	q := application.SearchQuery{Query: "코엑스 카페"}
	if _, err := cs.Search(context.Background(), "bad-key", q); !errors.Is(err, ErrSearchFailed) {
		t.Fatalf("err = %v", err)
	}
	if mr.Exists(cacheKey(q)) {
		t.Error("failure must not be cached")
	}
}

func TestCachedSearcherRedisDown(t *testing.T) {
	var hits int32
	srv := newTestServer(t, &hits)
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	defer rdb.Close()
	mr.Close()

	cs := NewCachedSearcher(NewClient(srv.URL, time.Second), rdb, time.Minute, nil)
	if _, err := cs.Search(context.Background(), "good-key", application.SearchQuery{Query: "코엑스 카페"}); err != nil {
		t.Fatalf("Search with redis down: %v", err)
	}
}
