package application_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/oksasatya/courseitda/internal/application"
	"github.com/oksasatya/courseitda/internal/domain/entity"
	"github.com/oksasatya/courseitda/internal/domain/repository"
	"github.com/oksasatya/courseitda/internal/infrastructure/memory"
)

var _ = Describe("WorkspaceService", func() {
	var (
		ctx    context.Context
		store  *memory.Store
		index  *fakeIndex
		svc    *application.WorkspaceService
		cats   *application.CategoryService
		places *application.PlaceService
	)

	BeforeEach(func() {
		ctx = context.Background()
		store = memory.New(nil)
		index = newFakeIndex()
		svc = application.NewWorkspaceService(store, index, nil)
		cats = application.NewCategoryService(store, index, nil)
		places = application.NewPlaceService(store, nil, index, nil, nil)
	})

	create := func(owner, title string) *entity.Workspace {
		w, err := svc.Create(ctx, application.WorkspaceInput{OwnerID: owner, Title: title, Headcount: 2, Date: "2025-06-01"})
		Expect(err).NotTo(HaveOccurred())
		return w
	}

	Describe("Create", func() {
		It("trims the title and stamps both timestamps", func() {
			w := create("u1", "  Hongdae Date ")
			Expect(w.Title).To(Equal("Hongdae Date"))
			Expect(w.CreatedAt).To(Equal(w.UpdatedAt))
			Expect(w.ID).NotTo(BeEmpty())
		})

		DescribeTable("rejects invalid input",
			func(title string, headcount int) {
				_, err := svc.Create(ctx, application.WorkspaceInput{OwnerID: "u1", Title: title, Headcount: headcount})
				Expect(err).To(MatchError(application.ErrValidation))
			},
			Entry("blank title", "   ", 2),
			Entry("zero headcount", "Trip", 0),
			Entry("negative headcount", "Trip", -3),
		)
	})

	Describe("Update", func() {
		It("changes only the given fields", func() {
			w := create("u1", "Trip")
			headcount := 4
			got, err := svc.Update(ctx, w.ID, application.WorkspacePatch{Headcount: &headcount})
			Expect(err).NotTo(HaveOccurred())
			Expect(got.Title).To(Equal("Trip"))
			Expect(got.Headcount).To(Equal(4))
			Expect(got.Date).To(Equal("2025-06-01"))
			Expect(got.UpdatedAt).NotTo(BeTemporally("<", w.UpdatedAt))
		})

		It("re-validates title and headcount", func() {
			w := create("u1", "Trip")
			blank := " "
			_, err := svc.Update(ctx, w.ID, application.WorkspacePatch{Title: &blank})
			Expect(err).To(MatchError(application.ErrValidation))
			zero := 0
			_, err = svc.Update(ctx, w.ID, application.WorkspacePatch{Headcount: &zero})
			Expect(err).To(MatchError(application.ErrValidation))
		})

		It("fails with NotFoundError for a missing workspace", func() {
			title := "x"
			_, err := svc.Update(ctx, "missing", application.WorkspacePatch{Title: &title})
			Expect(err).To(MatchError(application.ErrNotFound))
		})
	})

	Describe("ListByOwner", func() {
		It("returns only the owner's workspaces in creation order", func() {
			a := create("u1", "A")
			create("u2", "B")
			c := create("u1", "C")
			list, err := svc.ListByOwner(ctx, "u1")
			Expect(err).NotTo(HaveOccurred())
			Expect(list).To(HaveLen(2))
			Expect(list[0].ID).To(Equal(a.ID))
			Expect(list[1].ID).To(Equal(c.ID))
		})
	})

	Describe("Delete", func() {
		It("cascades through categories and links and collects orphaned places", func() {
			w := create("u1", "Hongdae Date")
			lunch, err := cats.Add(ctx, w.ID, "Lunch")
			Expect(err).NotTo(HaveOccurred())
			Expect(lunch.SortOrder).To(Equal(0))
			Expect(lunch.Color).To(Equal(entity.CategoryPalette[0]))

			p, err := places.AttachToCategory(ctx, w.ID, lunch.ID, entity.ExternalPlace{ID: "abc123", PlaceName: "Cafe X", Y: "37.5", X: "127.0"})
			Expect(err).NotTo(HaveOccurred())
			Expect(p.Lat).To(Equal(37.5))
			Expect(p.Lng).To(Equal(127.0))
			links, _ := store.CategoryPlaces().ListByCategory(ctx, lunch.ID)
			Expect(links).To(HaveLen(1))

			_, err = cats.SetRepresentative(ctx, lunch.ID, &p.ID)
			Expect(err).NotTo(HaveOccurred())

			Expect(svc.Delete(ctx, w.ID)).To(Succeed())

			n, _ := store.Categories().CountByWorkspace(ctx, w.ID)
			Expect(n).To(BeZero())
			links, _ = store.CategoryPlaces().ListByCategory(ctx, lunch.ID)
			Expect(links).To(BeEmpty())
			_, err = store.Workspaces().GetByID(ctx, w.ID)
			Expect(err).To(MatchError(repository.ErrNotFound))
			_, err = store.Places().GetByID(ctx, p.ID)
			Expect(err).To(MatchError(repository.ErrNotFound))
			Expect(index.has(p.ID)).To(BeFalse())
		})

		It("keeps places still linked from another workspace", func() {
			w1 := create("u1", "One")
			w2 := create("u1", "Two")
			c1, _ := cats.Add(ctx, w1.ID, "Lunch")
			c2, _ := cats.Add(ctx, w2.ID, "Lunch")
			ext := entity.ExternalPlace{ID: "shared", PlaceName: "Noodle", Y: "37.55", X: "126.92"}
			p, err := places.AttachToCategory(ctx, w1.ID, c1.ID, ext)
			Expect(err).NotTo(HaveOccurred())
			_, err = places.AttachToCategory(ctx, w2.ID, c2.ID, ext)
			Expect(err).NotTo(HaveOccurred())

			Expect(svc.Delete(ctx, w1.ID)).To(Succeed())
			_, err = store.Places().GetByID(ctx, p.ID)
			Expect(err).NotTo(HaveOccurred())
		})

		It("is a no-op for a missing workspace", func() {
			Expect(svc.Delete(ctx, "missing")).To(Succeed())
		})
	})
})
