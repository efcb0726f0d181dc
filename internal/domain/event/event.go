// Package event carries per-collection change notifications from the store to subscribers
// that re-fetch what they display.
package event

import (
	"context"
	"time"
)

type Collection string

const (
	Users          Collection = "users"
	Workspaces     Collection = "workspaces"
	Categories     Collection = "categories"
	Places         Collection = "places"
	CategoryPlaces Collection = "categoryPlaces"
)

// AllCollections lists every collection in declaration order.
var AllCollections = []Collection{Users, Workspaces, Categories, Places, CategoryPlaces}

type Op string

const (
	OpCreate Op = "create"
	OpUpdate Op = "update"
	OpDelete Op = "delete"
)

// Change describes a single write. ID is empty for bulk deletes.
type Change struct {
	Collection Collection `json:"collection"`
	Op         Op         `json:"op"`
	ID         string     `json:"id,omitempty"`
	At         time.Time  `json:"at"`
}

type Publisher interface {
	Publish(ctx context.Context, c Change) error
}

// PublisherFunc adapts a function to Publisher.
type PublisherFunc func(ctx context.Context, c Change) error

func (f PublisherFunc) Publish(ctx context.Context, c Change) error { return f(ctx, c) }

// Emit publishes a change when pub is non-nil. Publish errors are dropped: a
// notification failure never fails the write that caused it.
func Emit(ctx context.Context, pub Publisher, coll Collection, op Op, id string) {
	if pub == nil {
		return
	}
	_ = pub.Publish(ctx, Change{Collection: coll, Op: op, ID: id, At: time.Now().UTC()})
}

// Multi fans a change out to every publisher and returns the first error.
type Multi []Publisher

func (m Multi) Publish(ctx context.Context, c Change) error {
	var first error
	for _, p := range m {
		if p == nil {
			continue
		}
		if err := p.Publish(ctx, c); err != nil && first == nil {
			first = err
		}
	}
	return first
}
