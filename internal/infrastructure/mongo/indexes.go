package mongo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type indexSpec struct {
	name   string
	keys   bson.D
	unique bool
}

// indexPlan mirrors db/migrations for the document store.
var indexPlan = map[string][]indexSpec{
	collUsers: {
		{name: "uniq_users_email", keys: bson.D{{Key: "email", Value: 1}}, unique: true},
	},
	collWorkspaces: {
		{name: "idx_workspaces_owner", keys: bson.D{{Key: "owner_id", Value: 1}, {Key: "seq", Value: 1}}},
	},
	collCategories: {
		{name: "idx_categories_workspace_order", keys: bson.D{{Key: "workspace_id", Value: 1}, {Key: "sort_order", Value: 1}, {Key: "seq", Value: 1}}},
	},
	collPlaces: {
		{name: "uniq_places_kakao_id", keys: bson.D{{Key: "kakao_place_id", Value: 1}}, unique: true},
	},
	collCategoryPlaces: {
		{name: "uniq_category_places_pair", keys: bson.D{{Key: "category_id", Value: 1}, {Key: "place_id", Value: 1}}, unique: true},
		{name: "idx_category_places_place", keys: bson.D{{Key: "place_id", Value: 1}}},
	},
}

var indexOrder = []string{collUsers, collWorkspaces, collCategories, collPlaces, collCategoryPlaces}

// EnsureIndexes is idempotent and runs at startup. Problems are collected per collection
// so a single bad index does not hide the others.
func EnsureIndexes(ctx context.Context, db *mongo.Database, logger *logrus.Logger) error {
	var problems []string
	for _, name := range indexOrder {
		if err := ensureIndexSet(ctx, db.Collection(name), indexPlan[name], logger); err != nil {
			problems = append(problems, name+": "+err.Error())
		}
	}
	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

type existingIndex struct {
	Name   string `bson:"name"`
	Key    bson.D `bson:"key"`
	Unique *bool  `bson:"unique,omitempty"`
}

func keySig(keys bson.D) string {
	parts := make([]string, 0, len(keys))
	for _, kv := range keys {
		parts = append(parts, fmt.Sprintf("%s:%v", kv.Key, kv.Value))
	}
	return strings.Join(parts, ", ")
}

// ensureIndexSet creates missing indexes and rebuilds ones whose uniqueness drifted.
// Indexes are matched by key signature, not by name.
func ensureIndexSet(ctx context.Context, coll *mongo.Collection, specs []indexSpec, logger *logrus.Logger) error {
	cur, err := coll.Indexes().List(ctx)
	if err != nil {
		return fmt.Errorf("list indexes: %w", err)
	}
	var existing []existingIndex
	if err := cur.All(ctx, &existing); err != nil {
		return fmt.Errorf("decode indexes: %w", err)
	}
	bySig := make(map[string]existingIndex, len(existing))
	for _, ix := range existing {
		bySig[keySig(ix.Key)] = ix
	}

	var missing []mongo.IndexModel
	for _, spec := range specs {
		model := mongo.IndexModel{
			Keys:    spec.keys,
			Options: options.Index().SetName(spec.name).SetUnique(spec.unique),
		}
		ix, ok := bySig[keySig(spec.keys)]
		if !ok {
			missing = append(missing, model)
			continue
		}
		unique := ix.Unique != nil && *ix.Unique
		if unique == spec.unique {
			continue
		}
		if logger != nil {
			logger.WithFields(logrus.Fields{"collection": coll.Name(), "index": ix.Name}).
				Warn("rebuilding index with changed uniqueness")
		}
		if _, err := coll.Indexes().DropOne(ctx, ix.Name); err != nil {
			return fmt.Errorf("drop %s: %w", ix.Name, err)
		}
		missing = append(missing, model)
	}

	if len(missing) == 0 {
		return nil
	}
	if _, err := coll.Indexes().CreateMany(ctx, missing); err != nil {
		if isDuplicateKeyErr(err) {
			return fmt.Errorf("create indexes: existing documents violate a unique index: %w", err)
		}
		return fmt.Errorf("create indexes: %w", err)
	}
	if logger != nil {
		logger.WithFields(logrus.Fields{"collection": coll.Name(), "count": len(missing)}).Info("indexes created")
	}
	return nil
}
