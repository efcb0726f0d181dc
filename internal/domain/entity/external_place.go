package entity

// ExternalPlace is one document of the keyword search API, kept in its wire shape.
// X is the longitude and Y the latitude, both string encoded.
type ExternalPlace struct {
	ID              string `json:"id"`
	PlaceName       string `json:"place_name"`
	AddressName     string `json:"address_name"`
	RoadAddressName string `json:"road_address_name"`
	Phone           string `json:"phone"`
	PlaceURL        string `json:"place_url"`
	CategoryName    string `json:"category_name,omitempty"`
	X               string `json:"x"`
	Y               string `json:"y"`
}

// SearchMeta is the pagination block of a keyword search response.
type SearchMeta struct {
	TotalCount    int  `json:"total_count"`
	PageableCount int  `json:"pageable_count"`
	IsEnd         bool `json:"is_end"`
}

// SearchResult is a keyword search response.
type SearchResult struct {
	Documents []ExternalPlace `json:"documents"`
	Meta      SearchMeta      `json:"meta"`
}
