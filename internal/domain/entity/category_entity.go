package entity

import "time"

// CategoryPalette is cycled by creation order when a category is added.
var CategoryPalette = [...]string{
	"#6E59A5", // purple
	"#2563EB", // blue
	"#10B981", // green
	"#F59E0B", // orange
	"#EF4444", // red
	"#06B6D4", // cyan
}

// CategoryColor returns the palette color for the i-th category of a workspace.
func CategoryColor(i int) string {
	n := len(CategoryPalette)
	return CategoryPalette[((i%n)+n)%n]
}

// Category groups candidate places inside a workspace.
// RepresentativePlaceID, when set, always references a place linked to this category.
type Category struct {
	ID                    string    `json:"id"`
	WorkspaceID           string    `json:"workspaceId"`
	Name                  string    `json:"name"`
	Color                 string    `json:"color"`
	SortOrder             int       `json:"sortOrder"`
	RepresentativePlaceID *string   `json:"representativePlaceId"`
	CreatedAt             time.Time `json:"createdAt"`
	UpdatedAt             time.Time `json:"updatedAt"`
}

// HasRepresentative reports whether placeID is the category's representative place.
func (c *Category) HasRepresentative(placeID string) bool {
	return c.RepresentativePlaceID != nil && *c.RepresentativePlaceID == placeID
}
