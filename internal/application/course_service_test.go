package application_test

import (
	"context"
	"encoding/json"
	"fmt"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/oksasatya/courseitda/internal/application"
	"github.com/oksasatya/courseitda/internal/domain/entity"
	"github.com/oksasatya/courseitda/internal/infrastructure/memory"
)

var _ = Describe("CourseService", func() {
	var (
		ctx      context.Context
		store    *memory.Store
		uploader *fakeUploader
		svc      *application.CourseService
		cats     *application.CategoryService
		places   *application.PlaceService
		ws       *entity.Workspace
	)

	ext := func(id string, lat, lng float64) entity.ExternalPlace {
		return entity.ExternalPlace{ID: id, PlaceName: "place " + id, Y: fmt.Sprint(lat), X: fmt.Sprint(lng)}
	}

	BeforeEach(func() {
		ctx = context.Background()
		store = memory.New(nil)
		uploader = &fakeUploader{}
		svc = application.NewCourseService(store, uploader, nil)
		cats = application.NewCategoryService(store, nil, nil)
		places = application.NewPlaceService(store, nil, nil, nil, nil)
		var err error
		ws, err = application.NewWorkspaceService(store, nil, nil).Create(ctx, application.WorkspaceInput{OwnerID: "u1", Title: "Trip", Headcount: 2})
		Expect(err).NotTo(HaveOccurred())
	})

	It("centers on Seoul when there are no places", func() {
		ov, err := svc.Overview(ctx, ws.ID)
		Expect(err).NotTo(HaveOccurred())
		Expect(ov.Markers).To(BeEmpty())
		Expect(ov.Route).To(BeEmpty())
		Expect(ov.Path).To(BeNil())
		Expect(ov.Bounds).To(BeNil())
		Expect(ov.Center).To(Equal(application.DefaultCenter))
	})

	It("fails with NotFoundError for a missing workspace", func() {
		_, err := svc.Overview(ctx, "missing")
		Expect(err).To(MatchError(application.ErrNotFound))
	})

	It("numbers representative places by category position and draws a path", func() {
		lunch, _ := cats.Add(ctx, ws.ID, "Lunch")
		cafe, _ := cats.Add(ctx, ws.ID, "Cafe")
		bar, _ := cats.Add(ctx, ws.ID, "Bar")

		p1, err := places.AttachToCategory(ctx, ws.ID, lunch.ID, ext("a", 37.50, 126.90))
		Expect(err).NotTo(HaveOccurred())
		_, err = places.AttachToCategory(ctx, ws.ID, lunch.ID, ext("b", 37.60, 127.10))
		Expect(err).NotTo(HaveOccurred())
		p3, err := places.AttachToCategory(ctx, ws.ID, bar.ID, ext("c", 37.55, 127.00))
		Expect(err).NotTo(HaveOccurred())
		_, _ = cats.SetRepresentative(ctx, lunch.ID, &p1.ID)
		_, _ = cats.SetRepresentative(ctx, bar.ID, &p3.ID)
		Expect(cats.Reorder(ctx, ws.ID, []string{bar.ID, lunch.ID, cafe.ID})).To(Succeed())

		ov, err := svc.Overview(ctx, ws.ID)
		Expect(err).NotTo(HaveOccurred())
		Expect(ov.Categories[0].ID).To(Equal(bar.ID))
		Expect(ov.Markers).To(HaveLen(3))

		Expect(ov.Route).To(HaveLen(2))
		Expect(ov.Route[0].Place.ID).To(Equal(p3.ID))
		Expect(ov.Route[0].Order).To(Equal(1))
		Expect(ov.Route[1].Place.ID).To(Equal(p1.ID))
		Expect(ov.Route[1].Order).To(Equal(2))
		Expect(ov.Path).To(Equal([]application.LatLng{{Lat: 37.55, Lng: 127.00}, {Lat: 37.50, Lng: 126.90}}))

		for _, m := range ov.Markers {
			switch m.PlaceID {
			case p1.ID:
				Expect(m.Representative).To(BeTrue())
				Expect(m.Order).To(Equal(2))
				Expect(m.Color).To(Equal(lunch.Color))
			case p3.ID:
				Expect(m.Order).To(Equal(1))
				Expect(m.Color).To(Equal(bar.Color))
			default:
				Expect(m.Representative).To(BeFalse())
				Expect(m.Order).To(BeZero())
			}
		}

		Expect(ov.Bounds.SouthWest).To(Equal(application.LatLng{Lat: 37.50, Lng: 126.90}))
		Expect(ov.Bounds.NorthEast).To(Equal(application.LatLng{Lat: 37.60, Lng: 127.10}))
		Expect(ov.Center.Lat).To(BeNumerically("~", 37.55, 1e-9))
		Expect(ov.Center.Lng).To(BeNumerically("~", 127.00, 1e-9))
	})

	It("draws no path with a single representative place", func() {
		lunch, _ := cats.Add(ctx, ws.ID, "Lunch")
		p, _ := places.AttachToCategory(ctx, ws.ID, lunch.ID, ext("a", 37.5, 127))
		_, _ = cats.SetRepresentative(ctx, lunch.ID, &p.ID)

		ov, err := svc.Overview(ctx, ws.ID)
		Expect(err).NotTo(HaveOccurred())
		Expect(ov.Route).To(HaveLen(1))
		Expect(ov.Path).To(BeNil())
	})

	It("keeps one marker for a place shared by two categories", func() {
		lunch, _ := cats.Add(ctx, ws.ID, "Lunch")
		cafe, _ := cats.Add(ctx, ws.ID, "Cafe")
		p, _ := places.AttachToCategory(ctx, ws.ID, lunch.ID, ext("a", 37.5, 127))
		_, _ = places.AttachToCategory(ctx, ws.ID, cafe.ID, ext("a", 37.5, 127))
		_, _ = cats.SetRepresentative(ctx, cafe.ID, &p.ID)

		ov, err := svc.Overview(ctx, ws.ID)
		Expect(err).NotTo(HaveOccurred())
		Expect(ov.Markers).To(HaveLen(1))
		Expect(ov.Markers[0].CategoryID).To(Equal(cafe.ID))
		Expect(ov.Markers[0].Order).To(Equal(2))
	})

	Describe("Export", func() {
		It("uploads the overview as JSON", func() {
			url, err := svc.Export(ctx, ws.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(uploader.path).To(MatchRegexp(`^exports/%s/\d+\.json$`, ws.ID))
			Expect(uploader.contentType).To(Equal("application/json"))
			Expect(url).To(HaveSuffix(uploader.path))

			var decoded map[string]any
			Expect(json.Unmarshal([]byte(uploader.body), &decoded)).To(Succeed())
			Expect(decoded).To(HaveKey("workspace"))
			Expect(decoded).To(HaveKey("center"))
		})

		It("fails without an uploader", func() {
			svc.Uploader = nil
			_, err := svc.Export(ctx, ws.ID)
			Expect(err).To(HaveOccurred())
		})
	})
})
