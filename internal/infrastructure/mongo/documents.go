package mongo

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/oksasatya/courseitda/internal/domain/entity"
)

type userDoc struct {
	ID           string    `bson:"_id"`
	Nickname     string    `bson:"nickname"`
	Email        string    `bson:"email"`
	PasswordHash string    `bson:"password_hash"`
	CreatedAt    time.Time `bson:"created_at"`
}

func fromUser(u *entity.User) userDoc {
	return userDoc{ID: u.ID, Nickname: u.Nickname, Email: u.Email, PasswordHash: u.Password, CreatedAt: u.CreatedAt}
}

func (d userDoc) entity() *entity.User {
	return &entity.User{ID: d.ID, Nickname: d.Nickname, Email: d.Email, Password: d.PasswordHash, CreatedAt: d.CreatedAt.UTC()}
}

type workspaceDoc struct {
	ID        string             `bson:"_id"`
	Seq       primitive.ObjectID `bson:"seq"`
	OwnerID   string             `bson:"owner_id"`
	Title     string             `bson:"title"`
	Headcount int                `bson:"headcount"`
	Date      string             `bson:"date"`
	CreatedAt time.Time          `bson:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at"`
}

func fromWorkspace(w *entity.Workspace) workspaceDoc {
	return workspaceDoc{
		ID:        w.ID,
		Seq:       newSeq(),
		OwnerID:   w.OwnerID,
		Title:     w.Title,
		Headcount: w.Headcount,
		Date:      w.Date,
		CreatedAt: w.CreatedAt,
		UpdatedAt: w.UpdatedAt,
	}
}

func (d workspaceDoc) entity() *entity.Workspace {
	return &entity.Workspace{
		ID:        d.ID,
		OwnerID:   d.OwnerID,
		Title:     d.Title,
		Headcount: d.Headcount,
		Date:      d.Date,
		CreatedAt: d.CreatedAt.UTC(),
		UpdatedAt: d.UpdatedAt.UTC(),
	}
}

type categoryDoc struct {
	ID                    string             `bson:"_id"`
	Seq                   primitive.ObjectID `bson:"seq"`
	WorkspaceID           string             `bson:"workspace_id"`
	Name                  string             `bson:"name"`
	Color                 string             `bson:"color"`
	SortOrder             int                `bson:"sort_order"`
	RepresentativePlaceID *string            `bson:"representative_place_id"`
	CreatedAt             time.Time          `bson:"created_at"`
	UpdatedAt             time.Time          `bson:"updated_at"`
}

func fromCategory(c *entity.Category) categoryDoc {
	return categoryDoc{
		ID:                    c.ID,
		Seq:                   newSeq(),
		WorkspaceID:           c.WorkspaceID,
		Name:                  c.Name,
		Color:                 c.Color,
		SortOrder:             c.SortOrder,
		RepresentativePlaceID: c.RepresentativePlaceID,
		CreatedAt:             c.CreatedAt,
		UpdatedAt:             c.UpdatedAt,
	}
}

func (d categoryDoc) entity() *entity.Category {
	return &entity.Category{
		ID:                    d.ID,
		WorkspaceID:           d.WorkspaceID,
		Name:                  d.Name,
		Color:                 d.Color,
		SortOrder:             d.SortOrder,
		RepresentativePlaceID: d.RepresentativePlaceID,
		CreatedAt:             d.CreatedAt.UTC(),
		UpdatedAt:             d.UpdatedAt.UTC(),
	}
}

type placeDoc struct {
	ID           string    `bson:"_id"`
	KakaoPlaceID string    `bson:"kakao_place_id"`
	Name         string    `bson:"name"`
	Address      string    `bson:"address"`
	RoadAddress  string    `bson:"road_address"`
	Lat          float64   `bson:"lat"`
	Lng          float64   `bson:"lng"`
	Phone        string    `bson:"phone,omitempty"`
	URL          string    `bson:"url,omitempty"`
	CreatedAt    time.Time `bson:"created_at"`
}

func fromPlace(p *entity.Place) placeDoc {
	return placeDoc{
		ID:           p.ID,
		KakaoPlaceID: p.KakaoPlaceID,
		Name:         p.Name,
		Address:      p.Address,
		RoadAddress:  p.RoadAddress,
		Lat:          p.Lat,
		Lng:          p.Lng,
		Phone:        p.Phone,
		URL:          p.URL,
		CreatedAt:    p.CreatedAt,
	}
}

func (d placeDoc) entity() *entity.Place {
	return &entity.Place{
		ID:           d.ID,
		KakaoPlaceID: d.KakaoPlaceID,
		Name:         d.Name,
		Address:      d.Address,
		RoadAddress:  d.RoadAddress,
		Lat:          d.Lat,
		Lng:          d.Lng,
		Phone:        d.Phone,
		URL:          d.URL,
		CreatedAt:    d.CreatedAt.UTC(),
	}
}

type linkDoc struct {
	ID         string             `bson:"_id"`
	Seq        primitive.ObjectID `bson:"seq"`
	CategoryID string             `bson:"category_id"`
	PlaceID    string             `bson:"place_id"`
	CreatedAt  time.Time          `bson:"created_at"`
}

func fromLink(cp *entity.CategoryPlace) linkDoc {
	return linkDoc{ID: cp.ID, Seq: newSeq(), CategoryID: cp.CategoryID, PlaceID: cp.PlaceID, CreatedAt: cp.CreatedAt}
}

func (d linkDoc) entity() *entity.CategoryPlace {
	return &entity.CategoryPlace{ID: d.ID, CategoryID: d.CategoryID, PlaceID: d.PlaceID, CreatedAt: d.CreatedAt.UTC()}
}
