package entity

import "time"

// Place is shared by every category that links it and is removed with its last link.
// KakaoPlaceID is the dedup key: at most one Place exists per external id.
type Place struct {
	ID           string    `json:"id"`
	KakaoPlaceID string    `json:"kakaoPlaceId"`
	Name         string    `json:"name"`
	Address      string    `json:"address"`
	RoadAddress  string    `json:"roadAddress"`
	Lat          float64   `json:"lat"`
	Lng          float64   `json:"lng"`
	Phone        string    `json:"phone,omitempty"`
	URL          string    `json:"url,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// CategoryPlace links a category to a place. (CategoryID, PlaceID) is unique.
type CategoryPlace struct {
	ID         string    `json:"id"`
	CategoryID string    `json:"categoryId"`
	PlaceID    string    `json:"placeId"`
	CreatedAt  time.Time `json:"createdAt"`
}
