package application_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/oksasatya/courseitda/internal/application"
	"github.com/oksasatya/courseitda/internal/domain/entity"
	"github.com/oksasatya/courseitda/internal/infrastructure/memory"
)

var _ = Describe("CategoryService", func() {
	var (
		ctx    context.Context
		store  *memory.Store
		svc    *application.CategoryService
		places *application.PlaceService
		ws     *entity.Workspace
	)

	BeforeEach(func() {
		ctx = context.Background()
		store = memory.New(nil)
		svc = application.NewCategoryService(store, nil, nil)
		places = application.NewPlaceService(store, nil, nil, nil, nil)
		var err error
		ws, err = application.NewWorkspaceService(store, nil, nil).Create(ctx, application.WorkspaceInput{OwnerID: "u1", Title: "Trip", Headcount: 2})
		Expect(err).NotTo(HaveOccurred())
	})

	add := func(name string) *entity.Category {
		c, err := svc.Add(ctx, ws.ID, name)
		Expect(err).NotTo(HaveOccurred())
		return c
	}

	Describe("Add", func() {
		It("appends with sort order and palette color from the current count", func() {
			for i := 0; i < 8; i++ {
				c := add("cat")
				Expect(c.SortOrder).To(Equal(i))
				Expect(c.Color).To(Equal(entity.CategoryPalette[i%len(entity.CategoryPalette)]))
				Expect(c.RepresentativePlaceID).To(BeNil())
			}
		})

		It("trims the name and rejects blank names", func() {
			Expect(add("  점심 ").Name).To(Equal("점심"))
			_, err := svc.Add(ctx, ws.ID, "   ")
			Expect(err).To(MatchError(application.ErrValidation))
		})

		It("fails with NotFoundError when the workspace does not exist", func() {
			_, err := svc.Add(ctx, "missing", "Lunch")
			Expect(err).To(MatchError(application.ErrNotFound))
		})

		It("reuses a color after a deletion since the count shrank", func() {
			add("a")
			b := add("b")
			Expect(svc.Delete(ctx, b.ID)).To(Succeed())
			c := add("c")
			Expect(c.SortOrder).To(Equal(1))
			Expect(c.Color).To(Equal(entity.CategoryPalette[1]))
		})
	})

	Describe("Update", func() {
		It("renames and recolors", func() {
			c := add("Lunch")
			name, color := " Dinner ", "#000000"
			got, err := svc.Update(ctx, c.ID, application.CategoryPatch{Name: &name, Color: &color})
			Expect(err).NotTo(HaveOccurred())
			Expect(got.Name).To(Equal("Dinner"))
			Expect(got.Color).To(Equal("#000000"))
			Expect(got.SortOrder).To(Equal(c.SortOrder))
		})

		It("rejects a blank name and unknown ids", func() {
			c := add("Lunch")
			blank := ""
			_, err := svc.Update(ctx, c.ID, application.CategoryPatch{Name: &blank})
			Expect(err).To(MatchError(application.ErrValidation))
			name := "x"
			_, err = svc.Update(ctx, "missing", application.CategoryPatch{Name: &name})
			Expect(err).To(MatchError(application.ErrNotFound))
		})
	})

	Describe("Delete", func() {
		It("removes links and leaves sort order gaps", func() {
			a, b, c := add("a"), add("b"), add("c")
			_, err := places.AttachToCategory(ctx, ws.ID, b.ID, entity.ExternalPlace{ID: "k1", Y: "37.5", X: "127"})
			Expect(err).NotTo(HaveOccurred())

			Expect(svc.Delete(ctx, b.ID)).To(Succeed())
			links, _ := store.CategoryPlaces().ListByCategory(ctx, b.ID)
			Expect(links).To(BeEmpty())
			_, err = store.Places().GetByKakaoID(ctx, "k1")
			Expect(err).To(HaveOccurred())

			list, err := svc.ListByWorkspace(ctx, ws.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(list).To(HaveLen(2))
			Expect(list[0].ID).To(Equal(a.ID))
			Expect(list[1].ID).To(Equal(c.ID))
			Expect(list[1].SortOrder).To(Equal(2))
		})
	})

	Describe("Reorder", func() {
		It("sets each sort order to its index", func() {
			a, b, c := add("a"), add("b"), add("c")
			Expect(svc.Reorder(ctx, ws.ID, []string{c.ID, a.ID, b.ID})).To(Succeed())
			list, err := svc.ListByWorkspace(ctx, ws.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect([]string{list[0].ID, list[1].ID, list[2].ID}).To(Equal([]string{c.ID, a.ID, b.ID}))
			Expect(list[2].SortOrder).To(Equal(2))
		})

		It("does not validate the id list and keeps updates that landed", func() {
			a, b := add("a"), add("b")
			err := svc.Reorder(ctx, ws.ID, []string{b.ID, "ghost", a.ID})
			Expect(err).To(MatchError(application.ErrNotFound))

			got, _ := store.Categories().GetByID(ctx, a.ID)
			Expect(got.SortOrder).To(Equal(2))
			got, _ = store.Categories().GetByID(ctx, b.ID)
			Expect(got.SortOrder).To(Equal(0))
		})

		It("rejects a category of another workspace without writing anything", func() {
			a, b := add("a"), add("b")
			other, err := application.NewWorkspaceService(store, nil, nil).Create(ctx, application.WorkspaceInput{OwnerID: "u2", Title: "Other", Headcount: 1})
			Expect(err).NotTo(HaveOccurred())
			x, err := svc.Add(ctx, other.ID, "x")
			Expect(err).NotTo(HaveOccurred())
			y, err := svc.Add(ctx, other.ID, "y")
			Expect(err).NotTo(HaveOccurred())

			err = svc.Reorder(ctx, ws.ID, []string{b.ID, a.ID, y.ID, x.ID})
			Expect(err).To(MatchError(application.ErrForbidden))

			for _, c := range []*entity.Category{a, b, x, y} {
				got, err := store.Categories().GetByID(ctx, c.ID)
				Expect(err).NotTo(HaveOccurred())
				Expect(got.SortOrder).To(Equal(c.SortOrder))
			}
		})

		It("accepts a partial list", func() {
			a, b := add("a"), add("b")
			Expect(svc.Reorder(ctx, ws.ID, []string{b.ID})).To(Succeed())
			got, _ := store.Categories().GetByID(ctx, a.ID)
			Expect(got.SortOrder).To(Equal(0))
		})
	})

	Describe("SetRepresentative", func() {
		var c *entity.Category

		BeforeEach(func() {
			c = add("Lunch")
		})

		It("requires the place to be linked to the category", func() {
			id := "not-linked"
			_, err := svc.SetRepresentative(ctx, c.ID, &id)
			Expect(err).To(MatchError(application.ErrValidation))
		})

		It("sets and clears the representative", func() {
			p, err := places.AttachToCategory(ctx, ws.ID, c.ID, entity.ExternalPlace{ID: "k1", Y: "37.5", X: "127"})
			Expect(err).NotTo(HaveOccurred())

			got, err := svc.SetRepresentative(ctx, c.ID, &p.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(got.HasRepresentative(p.ID)).To(BeTrue())

			got, err = svc.SetRepresentative(ctx, c.ID, nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(got.RepresentativePlaceID).To(BeNil())
			stored, _ := store.Categories().GetByID(ctx, c.ID)
			Expect(stored.RepresentativePlaceID).To(BeNil())
		})

		It("fails with NotFoundError for a missing category", func() {
			_, err := svc.SetRepresentative(ctx, "missing", nil)
			Expect(err).To(MatchError(application.ErrNotFound))
		})
	})
})
