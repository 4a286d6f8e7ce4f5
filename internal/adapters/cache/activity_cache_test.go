package cache

import (
	"context"
	"group-trip-planner/internal/domain"
	"group-trip-planner/internal/ports"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
)

var _ ports.ActivityCache = (*RedisActivityCache)(nil)
var _ ports.ActivityCache = (*MemoryActivityCache)(nil)

func sampleActivities() []domain.Activity {
	return []domain.Activity{
		{Name: "Louvre", Category: domain.CategoryMuseum, Rating: 4.8, PriceLevel: 2, Lat: 48.86, Lng: 2.33, DurationMinutes: 150, PriceConfidence: "verified"},
		{Name: "Le Marais", Category: domain.CategoryLandmark, Rating: 4.6, Lat: 48.85, Lng: 2.36, DurationMinutes: 120},
	}
}

func TestRedisActivityCacheRoundTripAndExpiry(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	c := NewRedisActivityCache(rdb, time.Hour)
	ctx := context.Background()

	if _, ok, err := c.Get(ctx, "paris:48.857:2.352"); err != nil || ok {
		t.Fatalf("expected miss, got ok=%v err=%v", ok, err)
	}

	if err := c.Set(ctx, "paris:48.857:2.352", sampleActivities()); err != nil {
		t.Fatalf("unexpected set error: %v", err)
	}

	got, ok, err := c.Get(ctx, "paris:48.857:2.352")
	if err != nil || !ok {
		t.Fatalf("expected hit, got ok=%v err=%v", ok, err)
	}
	if len(got) != 2 || got[0].Name != "Louvre" || got[0].PriceConfidence != "verified" {
		t.Fatalf("unexpected activities: %+v", got)
	}

	mr.FastForward(2 * time.Hour)
	if _, ok, _ := c.Get(ctx, "paris:48.857:2.352"); ok {
		t.Fatalf("expected entry to expire")
	}
}

func TestMemoryActivityCacheReturnsCopies(t *testing.T) {
	c := NewMemoryActivityCache(time.Hour, time.Minute)
	ctx := context.Background()

	_ = c.Set(ctx, "k", sampleActivities())
	got, ok, _ := c.Get(ctx, "k")
	if !ok || len(got) != 2 {
		t.Fatalf("expected 2 cached activities, got %v %d", ok, len(got))
	}

	got[0].Name = "changed"
	again, _, _ := c.Get(ctx, "k")
	if again[0].Name != "Louvre" {
		t.Fatalf("expected cache to be isolated from caller mutation, got %q", again[0].Name)
	}
}
