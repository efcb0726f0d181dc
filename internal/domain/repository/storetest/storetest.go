// Package storetest checks a repository.Store implementation against the shared contract.
package storetest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/oksasatya/courseitda/internal/domain/entity"
	"github.com/oksasatya/courseitda/internal/domain/repository"
)

// Run executes every contract test. newStore must return an empty store.
func Run(t *testing.T, newStore func(t *testing.T) repository.Store) {
	t.Run("Users", func(t *testing.T) { testUsers(t, newStore(t)) })
	t.Run("Workspaces", func(t *testing.T) { testWorkspaces(t, newStore(t)) })
	t.Run("Categories", func(t *testing.T) { testCategories(t, newStore(t)) })
	t.Run("Places", func(t *testing.T) { testPlaces(t, newStore(t)) })
	t.Run("CategoryPlaces", func(t *testing.T) { testCategoryPlaces(t, newStore(t)) })
}

func now() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}

func testUsers(t *testing.T, s repository.Store) {
	ctx := context.Background()
	u := &entity.User{ID: uuid.NewString(), Nickname: "demo", Email: "demo@courseitda.com", Password: "ZGVtbzEyMw==", CreatedAt: now()}
	if err := s.Users().Create(ctx, u); err != nil {
		t.Fatalf("Create: %v", err)
	}
	dup := *u
	dup.ID = uuid.NewString()
	if err := s.Users().Create(ctx, &dup); !errors.Is(err, repository.ErrDuplicate) {
		t.Fatalf("duplicate email err = %v", err)
	}

	got, err := s.Users().GetByEmail(ctx, u.Email)
	if err != nil || got.ID != u.ID || got.Password != u.Password || got.Nickname != "demo" {
		t.Fatalf("GetByEmail = %+v, %v", got, err)
	}
	if _, err := s.Users().GetByID(ctx, "missing"); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("GetByID missing err = %v", err)
	}
	if n, err := s.Users().Count(ctx); err != nil || n != 1 {
		t.Fatalf("Count = %d, %v", n, err)
	}
}

func testWorkspaces(t *testing.T, s repository.Store) {
	ctx := context.Background()
	mk := func(owner, title string) *entity.Workspace {
		w := &entity.Workspace{ID: uuid.NewString(), OwnerID: owner, Title: title, Headcount: 2, Date: "2025-06-01", CreatedAt: now(), UpdatedAt: now()}
		if err := s.Workspaces().Create(ctx, w); err != nil {
			t.Fatalf("Create: %v", err)
		}
		return w
	}
	a := mk("o1", "A")
	mk("o2", "B")
	c := mk("o1", "C")

	list, err := s.Workspaces().ListByOwner(ctx, "o1")
	if err != nil || len(list) != 2 || list[0].ID != a.ID || list[1].ID != c.ID {
		t.Fatalf("ListByOwner = %v, %v", list, err)
	}

	a.Title = "A2"
	a.Headcount = 5
	if err := s.Workspaces().Update(ctx, a); err != nil {
		t.Fatalf("Update: %v", err)
	}
	got, err := s.Workspaces().GetByID(ctx, a.ID)
	if err != nil || got.Title != "A2" || got.Headcount != 5 {
		t.Fatalf("GetByID = %+v, %v", got, err)
	}
	missing := *a
	missing.ID = "missing"
	if err := s.Workspaces().Update(ctx, &missing); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("Update missing err = %v", err)
	}

	if err := s.Workspaces().Delete(ctx, a.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := s.Workspaces().Delete(ctx, a.ID); err != nil {
		t.Fatalf("Delete twice: %v", err)
	}
	if _, err := s.Workspaces().GetByID(ctx, a.ID); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("GetByID deleted err = %v", err)
	}
}

func testCategories(t *testing.T, s repository.Store) {
	ctx := context.Background()
	mk := func(ws, name string, order int) *entity.Category {
		c := &entity.Category{ID: uuid.NewString(), WorkspaceID: ws, Name: name, Color: entity.CategoryColor(order), SortOrder: order, CreatedAt: now(), UpdatedAt: now()}
		if err := s.Categories().Create(ctx, c); err != nil {
			t.Fatalf("Create: %v", err)
		}
		return c
	}
	a := mk("w1", "a", 0)
	b := mk("w1", "b", 1)
	mk("w2", "x", 0)

	if n, err := s.Categories().CountByWorkspace(ctx, "w1"); err != nil || n != 2 {
		t.Fatalf("CountByWorkspace = %d, %v", n, err)
	}

	if err := s.Categories().UpdateSortOrder(ctx, a.ID, 5, now()); err != nil {
		t.Fatalf("UpdateSortOrder: %v", err)
	}
	if err := s.Categories().UpdateSortOrder(ctx, "missing", 1, now()); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("UpdateSortOrder missing err = %v", err)
	}
	list, err := s.Categories().ListByWorkspace(ctx, "w1")
	if err != nil || len(list) != 2 || list[0].ID != b.ID || list[1].ID != a.ID || list[1].SortOrder != 5 {
		t.Fatalf("ListByWorkspace = %v, %v", list, err)
	}

	rep := "place-1"
	b.RepresentativePlaceID = &rep
	b.Name = "b2"
	if err := s.Categories().Update(ctx, b); err != nil {
		t.Fatalf("Update: %v", err)
	}
	got, err := s.Categories().GetByID(ctx, b.ID)
	if err != nil || got.Name != "b2" || !got.HasRepresentative("place-1") || got.SortOrder != 1 {
		t.Fatalf("GetByID = %+v, %v", got, err)
	}
	got.RepresentativePlaceID = nil
	if err := s.Categories().Update(ctx, got); err != nil {
		t.Fatalf("Update clear: %v", err)
	}
	if got, _ = s.Categories().GetByID(ctx, b.ID); got.RepresentativePlaceID != nil {
		t.Fatalf("representative not cleared: %v", *got.RepresentativePlaceID)
	}

	if err := s.Categories().Delete(ctx, a.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	n, err := s.Categories().DeleteByWorkspace(ctx, "w1")
	if err != nil || n != 1 {
		t.Fatalf("DeleteByWorkspace = %d, %v", n, err)
	}
	if n, _ := s.Categories().CountByWorkspace(ctx, "w2"); n != 1 {
		t.Fatalf("other workspace touched: %d", n)
	}
}

func testPlaces(t *testing.T, s repository.Store) {
	ctx := context.Background()
	mk := func(kakaoID string) *entity.Place {
		p := &entity.Place{ID: uuid.NewString(), KakaoPlaceID: kakaoID, Name: "place " + kakaoID, Lat: 37.5, Lng: 127.0, CreatedAt: now()}
		if err := s.Places().Create(ctx, p); err != nil {
			t.Fatalf("Create: %v", err)
		}
		return p
	}
	a := mk("k1")
	b := mk("k2")

	dup := &entity.Place{ID: uuid.NewString(), KakaoPlaceID: "k1", Name: "dup", CreatedAt: now()}
	if err := s.Places().Create(ctx, dup); !errors.Is(err, repository.ErrDuplicate) {
		t.Fatalf("duplicate kakao id err = %v", err)
	}

	got, err := s.Places().GetByKakaoID(ctx, "k2")
	if err != nil || got.ID != b.ID || got.Lat != 37.5 || got.Lng != 127.0 {
		t.Fatalf("GetByKakaoID = %+v, %v", got, err)
	}

	many, err := s.Places().GetMany(ctx, []string{b.ID, "missing", a.ID})
	if err != nil || len(many) != 2 || many[0].ID != b.ID || many[1].ID != a.ID {
		t.Fatalf("GetMany = %v, %v", many, err)
	}
	if none, err := s.Places().GetMany(ctx, nil); err != nil || len(none) != 0 {
		t.Fatalf("GetMany(nil) = %v, %v", none, err)
	}

	if err := s.Places().Delete(ctx, a.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := s.Places().GetByKakaoID(ctx, "k1"); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("GetByKakaoID deleted err = %v", err)
	}
	if err := s.Places().Create(ctx, &entity.Place{ID: uuid.NewString(), KakaoPlaceID: "k1", CreatedAt: now()}); err != nil {
		t.Fatalf("re-create after delete: %v", err)
	}
}

func testCategoryPlaces(t *testing.T, s repository.Store) {
	ctx := context.Background()
	link := func(cat, place string) *entity.CategoryPlace {
		cp := &entity.CategoryPlace{ID: uuid.NewString(), CategoryID: cat, PlaceID: place, CreatedAt: now()}
		if err := s.CategoryPlaces().Create(ctx, cp); err != nil {
			t.Fatalf("Create: %v", err)
		}
		return cp
	}
	l1 := link("c1", "p1")
	l2 := link("c1", "p2")
	link("c2", "p1")

	dup := &entity.CategoryPlace{ID: uuid.NewString(), CategoryID: "c1", PlaceID: "p1", CreatedAt: now()}
	if err := s.CategoryPlaces().Create(ctx, dup); !errors.Is(err, repository.ErrDuplicate) {
		t.Fatalf("duplicate pair err = %v", err)
	}

	got, err := s.CategoryPlaces().GetByPair(ctx, "c1", "p2")
	if err != nil || got.ID != l2.ID {
		t.Fatalf("GetByPair = %+v, %v", got, err)
	}
	if _, err := s.CategoryPlaces().GetByPair(ctx, "c2", "p2"); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("GetByPair missing err = %v", err)
	}

	list, err := s.CategoryPlaces().ListByCategory(ctx, "c1")
	if err != nil || len(list) != 2 || list[0].ID != l1.ID || list[1].ID != l2.ID {
		t.Fatalf("ListByCategory = %v, %v", list, err)
	}
	if n, err := s.CategoryPlaces().CountByPlace(ctx, "p1"); err != nil || n != 2 {
		t.Fatalf("CountByPlace = %d, %v", n, err)
	}

	if n, err := s.CategoryPlaces().DeleteByPair(ctx, "c1", "p1"); err != nil || n != 1 {
		t.Fatalf("DeleteByPair = %d, %v", n, err)
	}
	if n, err := s.CategoryPlaces().DeleteByPair(ctx, "c1", "p1"); err != nil || n != 0 {
		t.Fatalf("DeleteByPair again = %d, %v", n, err)
	}
	if n, _ := s.CategoryPlaces().CountByPlace(ctx, "p1"); n != 1 {
		t.Fatalf("CountByPlace after delete = %d", n)
	}
	if n, err := s.CategoryPlaces().DeleteByCategory(ctx, "c1"); err != nil || n != 1 {
		t.Fatalf("DeleteByCategory = %d, %v", n, err)
	}
	if list, _ := s.CategoryPlaces().ListByCategory(ctx, "c1"); len(list) != 0 {
		t.Fatalf("links left: %v", list)
	}
}
