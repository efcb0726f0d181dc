package redisbus

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/courseitda/internal/domain/event"
)

func setupRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return rdb, mr
}

func TestBridgeDeliversRemoteChanges(t *testing.T) {
	rdb, _ := setupRedis(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := event.NewHub(8)
	changes, unsubscribe := hub.Subscribe(event.Categories)
	defer unsubscribe()

	bridge := NewBridge(rdb, "", "instance-b", hub, nil)
	done := make(chan error, 1)
	go func() { done <- bridge.Run(ctx) }()

	select {
	case <-bridge.Ready():
	case err := <-done:
		t.Fatalf("bridge stopped: %v", err)
	case <-time.After(2 * time.Second):
		t.Fatal("bridge not ready")
	}

	remote := NewPublisher(rdb, "", "instance-a")
	local := NewPublisher(rdb, "", "instance-b")
	if err := local.Publish(ctx, event.Change{Collection: event.Categories, Op: event.OpCreate, ID: "own"}); err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if err := remote.Publish(ctx, event.Change{Collection: event.Categories, Op: event.OpUpdate, ID: "c1"}); err != nil {
		t.Fatalf("Publish: %v", err)
	}

	select {
	case c := <-changes:
		if c.ID != "c1" || c.Op != event.OpUpdate {
			t.Errorf("unexpected change %+v", c)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no change delivered")
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("bridge did not stop")
	}
}

func TestBridgeDropsMalformedMessages(t *testing.T) {
	rdb, _ := setupRedis(t)
	got := make(chan event.Change, 1)
	b := NewBridge(rdb, "", "me", event.PublisherFunc(func(_ context.Context, c event.Change) error {
		got <- c
		return nil
	}), nil)

	b.handle(context.Background(), "not json")
	select {
	case c := <-got:
		t.Fatalf("unexpected change %+v", c)
	default:
	}
}

func TestKV(t *testing.T) {
	rdb, mr := setupRedis(t)
	ctx := context.Background()
	kv := NewKV(rdb, "courseitda:", time.Hour)

	if _, ok, err := kv.Load(ctx, "k"); err != nil || ok {
		t.Fatalf("Load missing: ok=%v err=%v", ok, err)
	}
	if err := kv.Save(ctx, "k", "v"); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !mr.Exists("courseitda:k") {
		t.Fatal("expected prefixed key")
	}
	if ttl := mr.TTL("courseitda:k"); ttl != time.Hour {
		t.Errorf("ttl = %v", ttl)
	}
	v, ok, err := kv.Load(ctx, "k")
	if err != nil || !ok || v != "v" {
		t.Fatalf("Load = %q, %v, %v", v, ok, err)
	}
	if err := kv.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, ok, _ := kv.Load(ctx, "k"); ok {
		t.Error("expected key deleted")
	}
}
