package mongo

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/oksasatya/courseitda/internal/domain/repository"
	"github.com/oksasatya/courseitda/internal/domain/repository/storetest"
)

// TestStoreContract runs against the server named by TEST_MONGO_URI, each sub-test
// in its own scratch database.
func TestStoreContract(t *testing.T) {
	uri := os.Getenv("TEST_MONGO_URI")
	if uri == "" {
		t.Skip("TEST_MONGO_URI not set")
	}
	ctx := context.Background()
	client, err := Connect(ctx, uri)
	if err != nil {
		t.Fatalf("Connect: %v", err)
	}
	defer client.Disconnect(ctx)

	storetest.Run(t, func(t *testing.T) repository.Store {
		db := client.Database("courseitda_test_" + uuid.NewString()[:8])
		t.Cleanup(func() { _ = db.Drop(context.Background()) })
		if err := EnsureIndexes(ctx, db, nil); err != nil {
			t.Fatalf("EnsureIndexes: %v", err)
		}
		return NewStore(db, nil)
	})
}

func TestKeySig(t *testing.T) {
	got := keySig(bson.D{{Key: "category_id", Value: 1}, {Key: "place_id", Value: 1}})
	if got != "category_id:1, place_id:1" {
		t.Fatalf("keySig = %q", got)
	}
}

func TestMapErr(t *testing.T) {
	other := errors.New("boom")
	dup := mongo.WriteException{WriteErrors: mongo.WriteErrors{{Code: 11000, Message: "E11000 duplicate key error"}}}
	cases := []struct {
		in   error
		want error
	}{
		{nil, nil},
		{mongo.ErrNoDocuments, repository.ErrNotFound},
		{fmt.Errorf("find: %w", mongo.ErrNoDocuments), repository.ErrNotFound},
		{dup, repository.ErrDuplicate},
		{other, other},
	}
	for _, tc := range cases {
		if got := mapErr(tc.in); !errors.Is(got, tc.want) && got != tc.want {
			t.Errorf("mapErr(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestIndexPlanCoversEveryCollection(t *testing.T) {
	for _, name := range indexOrder {
		if len(indexPlan[name]) == 0 {
			t.Errorf("no indexes planned for %s", name)
		}
	}
}
