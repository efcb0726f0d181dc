package handlers

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/courseitda/internal/application"
	"github.com/oksasatya/courseitda/internal/domain/event"
	"github.com/oksasatya/courseitda/internal/interface/middleware"
)

func TestStatusFor(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{&application.Error{Kind: application.KindValidation, Message: "title is required"}, http.StatusBadRequest},
		{&application.Error{Kind: application.KindAuth}, http.StatusUnauthorized},
		{application.ForbiddenError("not yours"), http.StatusForbidden},
		{&application.Error{Kind: application.KindNotFound}, http.StatusNotFound},
		{fmt.Errorf("attach: %w", &application.Error{Kind: application.KindConflict}), http.StatusConflict},
		{errors.New("connection reset"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		if got := statusFor(tc.err); got != tc.want {
			t.Errorf("statusFor(%v) = %d, want %d", tc.err, got, tc.want)
		}
	}
}

func TestFailHidesInternalErrors(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	fail(c, nil, errors.New("pq: password authentication failed"))

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", w.Code)
	}
	if strings.Contains(w.Body.String(), "password authentication") {
		t.Fatalf("internal error leaked: %s", w.Body.String())
	}
}

func TestParseCollections(t *testing.T) {
	got, ok := parseCollections("categories, places")
	if !ok || len(got) != 2 || got[0] != event.Categories || got[1] != event.Places {
		t.Fatalf("got %v, %v", got, ok)
	}
	if got, ok := parseCollections(""); !ok || got != nil {
		t.Fatalf("empty: got %v, %v", got, ok)
	}
	if _, ok := parseCollections("categories,trips"); ok {
		t.Fatal("unknown collection accepted")
	}
}

func TestChangesStream(t *testing.T) {
	gin.SetMode(gin.TestMode)
	hub := event.NewHub(4)
	r := gin.New()
	r.GET("/changes", NewChangesHandler(hub, nil, time.Minute, nil).Stream)
	srv := httptest.NewServer(r)
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/changes?collections=categories", nil)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/event-stream") {
		t.Fatalf("content type = %q", ct)
	}

	for hub.Subscribers() == 0 {
		time.Sleep(5 * time.Millisecond)
	}
	event.Emit(ctx, hub, event.Places, event.OpCreate, "p1")
	event.Emit(ctx, hub, event.Categories, event.OpUpdate, "c1")

	sc := bufio.NewScanner(resp.Body)
	var sawChange bool
	for sc.Scan() {
		line := sc.Text()
		if line == "event:change" {
			sawChange = true
			continue
		}
		if sawChange && strings.HasPrefix(line, "data:") {
			if strings.Contains(line, `"p1"`) {
				t.Fatalf("filtered collection delivered: %s", line)
			}
			if !strings.Contains(line, `"collection":"categories"`) || !strings.Contains(line, `"id":"c1"`) {
				t.Fatalf("unexpected payload: %s", line)
			}
			return
		}
	}
	t.Fatalf("stream ended without a change: %v", sc.Err())
}

func TestChangesStreamRejectsUnknownCollection(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/changes", NewChangesHandler(event.NewHub(1), nil, 0, nil).Stream)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/changes?collections=nope", nil))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", w.Code)
	}
}

func TestUserIDReadsTheAuthMiddlewareKey(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Set(middleware.CtxUserIDKey, "u1")
	if got := userID(c); got != "u1" {
		t.Fatalf("userID = %q", got)
	}
}
