package application_test

import (
	"context"
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/oksasatya/courseitda/internal/application"
	"github.com/oksasatya/courseitda/internal/domain/entity"
	"github.com/oksasatya/courseitda/internal/domain/repository"
	"github.com/oksasatya/courseitda/internal/infrastructure/memory"
)

var _ = Describe("PlaceService", func() {
	var (
		ctx      context.Context
		store    *memory.Store
		index    *fakeIndex
		searcher *fakeSearcher
		settings *application.SettingsService
		svc      *application.PlaceService
		cats     *application.CategoryService
		ws       *entity.Workspace
		lunch    *entity.Category
		cafe     *entity.Category
	)

	cafeX := entity.ExternalPlace{
		ID:              "abc123",
		PlaceName:       "Cafe X",
		AddressName:     "서울 마포구 서교동 1",
		RoadAddressName: "서울 마포구 와우산로 1",
		Phone:           "02-123-4567",
		PlaceURL:        "http://place.map.kakao.com/abc123",
		X:               "127.0",
		Y:               "37.5",
	}

	BeforeEach(func() {
		ctx = context.Background()
		store = memory.New(nil)
		index = newFakeIndex()
		searcher = &fakeSearcher{}
		settings = application.NewSettingsService(memory.NewKV())
		svc = application.NewPlaceService(store, searcher, index, settings, nil)
		cats = application.NewCategoryService(store, index, nil)

		var err error
		ws, err = application.NewWorkspaceService(store, index, nil).Create(ctx, application.WorkspaceInput{OwnerID: "u1", Title: "Trip", Headcount: 2})
		Expect(err).NotTo(HaveOccurred())
		lunch, err = cats.Add(ctx, ws.ID, "Lunch")
		Expect(err).NotTo(HaveOccurred())
		cafe, err = cats.Add(ctx, ws.ID, "Cafe")
		Expect(err).NotTo(HaveOccurred())
	})

	Describe("AttachToCategory", func() {
		It("creates the place from the search result", func() {
			p, err := svc.AttachToCategory(ctx, ws.ID, lunch.ID, cafeX)
			Expect(err).NotTo(HaveOccurred())
			Expect(p.KakaoPlaceID).To(Equal("abc123"))
			Expect(p.Name).To(Equal("Cafe X"))
			Expect(p.Address).To(Equal(cafeX.AddressName))
			Expect(p.RoadAddress).To(Equal(cafeX.RoadAddressName))
			Expect(p.Lat).To(Equal(37.5))
			Expect(p.Lng).To(Equal(127.0))
			Expect(p.Phone).To(Equal(cafeX.Phone))
			Expect(p.URL).To(Equal(cafeX.PlaceURL))
			Expect(index.has(p.ID)).To(BeTrue())
		})

		It("stores one place for the same external id in two categories", func() {
			p1, err := svc.AttachToCategory(ctx, ws.ID, lunch.ID, cafeX)
			Expect(err).NotTo(HaveOccurred())
			p2, err := svc.AttachToCategory(ctx, ws.ID, cafe.ID, cafeX)
			Expect(err).NotTo(HaveOccurred())
			Expect(p2.ID).To(Equal(p1.ID))

			n, err := store.CategoryPlaces().CountByPlace(ctx, p1.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(n).To(Equal(2))
		})

		It("rejects attaching the same place twice to a category", func() {
			_, err := svc.AttachToCategory(ctx, ws.ID, lunch.ID, cafeX)
			Expect(err).NotTo(HaveOccurred())
			_, err = svc.AttachToCategory(ctx, ws.ID, lunch.ID, cafeX)
			Expect(err).To(MatchError(application.ErrConflict))
		})

		It("rejects a category of another workspace or a missing one", func() {
			_, err := svc.AttachToCategory(ctx, "other", lunch.ID, cafeX)
			Expect(err).To(MatchError(application.ErrValidation))
			_, err = svc.AttachToCategory(ctx, ws.ID, "missing", cafeX)
			Expect(err).To(MatchError(application.ErrValidation))
		})

		It("rejects unparsable coordinates without storing anything", func() {
			bad := cafeX
			bad.Y = "north"
			_, err := svc.AttachToCategory(ctx, ws.ID, lunch.ID, bad)
			Expect(err).To(MatchError(application.ErrValidation))
			_, err = store.Places().GetByKakaoID(ctx, cafeX.ID)
			Expect(err).To(MatchError(repository.ErrNotFound))
		})

		DescribeTable("rejects coordinates that are not finite degrees",
			func(x, y string) {
				bad := cafeX
				bad.X, bad.Y = x, y
				_, err := svc.AttachToCategory(ctx, ws.ID, lunch.ID, bad)
				Expect(err).To(MatchError(application.ErrValidation))
				_, err = store.Places().GetByKakaoID(ctx, cafeX.ID)
				Expect(err).To(MatchError(repository.ErrNotFound))
			},
			Entry("NaN latitude", "127.0", "NaN"),
			Entry("infinite latitude", "127.0", "Inf"),
			Entry("NaN longitude", "nan", "37.5"),
			Entry("negative infinite longitude", "-Inf", "37.5"),
			Entry("latitude past the pole", "127.0", "90.5"),
			Entry("longitude past the antimeridian", "180.01", "37.5"),
		)

		It("accepts the boundary degrees", func() {
			edge := cafeX
			edge.X, edge.Y = "-180", "90"
			p, err := svc.AttachToCategory(ctx, ws.ID, lunch.ID, edge)
			Expect(err).NotTo(HaveOccurred())
			Expect(p.Lat).To(Equal(90.0))
			Expect(p.Lng).To(Equal(-180.0))
		})
	})

	Describe("Remove", func() {
		It("deletes the place with its last link", func() {
			p, _ := svc.AttachToCategory(ctx, ws.ID, lunch.ID, cafeX)
			Expect(svc.Remove(ctx, p.ID, lunch.ID)).To(Succeed())
			_, err := store.Places().GetByID(ctx, p.ID)
			Expect(err).To(MatchError(repository.ErrNotFound))
			Expect(index.has(p.ID)).To(BeFalse())
		})

		It("keeps a place still linked from another category", func() {
			p, _ := svc.AttachToCategory(ctx, ws.ID, lunch.ID, cafeX)
			_, _ = svc.AttachToCategory(ctx, ws.ID, cafe.ID, cafeX)
			Expect(svc.Remove(ctx, p.ID, lunch.ID)).To(Succeed())

			_, err := store.Places().GetByID(ctx, p.ID)
			Expect(err).NotTo(HaveOccurred())
			list, err := svc.ListByCategory(ctx, cafe.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(list).To(HaveLen(1))
			list, err = svc.ListByCategory(ctx, lunch.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(list).To(BeEmpty())
		})

		It("clears the representative when it pointed at the removed place", func() {
			id := "abc123-place"
			_, err := cats.SetRepresentative(ctx, lunch.ID, &id)
			Expect(err).To(MatchError(application.ErrValidation))

			p, _ := svc.AttachToCategory(ctx, ws.ID, lunch.ID, cafeX)
			_, err = cats.SetRepresentative(ctx, lunch.ID, &p.ID)
			Expect(err).NotTo(HaveOccurred())

			Expect(svc.Remove(ctx, p.ID, lunch.ID)).To(Succeed())
			got, err := store.Categories().GetByID(ctx, lunch.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(got.RepresentativePlaceID).To(BeNil())
		})
	})

	Describe("ListByCategory", func() {
		It("returns linked places in link order", func() {
			other := cafeX
			other.ID, other.PlaceName = "def456", "Bakery"
			p1, _ := svc.AttachToCategory(ctx, ws.ID, lunch.ID, cafeX)
			p2, _ := svc.AttachToCategory(ctx, ws.ID, lunch.ID, other)

			list, err := svc.ListByCategory(ctx, lunch.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(list).To(HaveLen(2))
			Expect(list[0].ID).To(Equal(p1.ID))
			Expect(list[1].ID).To(Equal(p2.ID))
		})

		It("skips links whose place is gone", func() {
			p, _ := svc.AttachToCategory(ctx, ws.ID, lunch.ID, cafeX)
			Expect(store.Places().Delete(ctx, p.ID)).To(Succeed())
			list, err := svc.ListByCategory(ctx, lunch.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(list).To(BeEmpty())
		})
	})

	Describe("Search", func() {
		It("requires a query", func() {
			_, err := svc.Search(ctx, application.SearchInput{Query: "  ", APIKey: "k"})
			Expect(err).To(MatchError(application.ErrValidation))
		})

		It("requires an API key", func() {
			_, err := svc.Search(ctx, application.SearchInput{UserID: "u1", Query: "cafe"})
			Expect(err).To(MatchError(application.ErrValidation))
		})

		It("falls back to the user's saved REST key", func() {
			Expect(settings.SetKakaoRestKey(ctx, "u1", "saved-key")).To(Succeed())
			searcher.searchFn = func(_ context.Context, _ string, q application.SearchQuery) (*entity.SearchResult, error) {
				Expect(q.Query).To(Equal("cafe"))
				Expect(q.Page).To(Equal(2))
				return &entity.SearchResult{Documents: []entity.ExternalPlace{cafeX}, Meta: entity.SearchMeta{TotalCount: 1, IsEnd: true}}, nil
			}
			res, err := svc.Search(ctx, application.SearchInput{UserID: "u1", Query: " cafe ", Page: 2})
			Expect(err).NotTo(HaveOccurred())
			Expect(searcher.lastKey).To(Equal("saved-key"))
			Expect(res.Documents).To(HaveLen(1))
		})

		It("uses the server-wide key when the user has none", func() {
			svc.FallbackKey = "server-key"
			searcher.searchFn = func(context.Context, string, application.SearchQuery) (*entity.SearchResult, error) {
				return &entity.SearchResult{}, nil
			}
			_, err := svc.Search(ctx, application.SearchInput{UserID: "u1", Query: "cafe"})
			Expect(err).NotTo(HaveOccurred())
			Expect(searcher.lastKey).To(Equal("server-key"))
		})

		It("prefers the key of the request and surfaces search failures", func() {
			Expect(settings.SetKakaoRestKey(ctx, "u1", "saved-key")).To(Succeed())
			failure := errors.New("search failed")
			searcher.searchFn = func(context.Context, string, application.SearchQuery) (*entity.SearchResult, error) {
				return nil, failure
			}
			_, err := svc.Search(ctx, application.SearchInput{UserID: "u1", Query: "cafe", APIKey: "explicit"})
			Expect(err).To(MatchError(failure))
			Expect(searcher.lastKey).To(Equal("explicit"))
		})
	})

	Describe("SearchSaved", func() {
		It("searches indexed places", func() {
			_, _ = svc.AttachToCategory(ctx, ws.ID, lunch.ID, cafeX)
			got, err := svc.SearchSaved(ctx, "cafe", 0)
			Expect(err).NotTo(HaveOccurred())
			Expect(got).To(HaveLen(1))
			Expect(got[0].KakaoPlaceID).To(Equal("abc123"))
		})

		It("returns nothing without an index", func() {
			svc.Index = nil
			got, err := svc.SearchSaved(ctx, "cafe", 10)
			Expect(err).NotTo(HaveOccurred())
			Expect(got).To(BeEmpty())
		})
	})
})
