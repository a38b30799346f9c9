package cache

import (
	"context"
	"testing"
	"time"
)

type mapCache map[string][]byte

func (m mapCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	v, ok := m[key]
	return v, ok, nil
}

func (m mapCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	m[key] = value
	return nil
}

func (m mapCache) Delete(ctx context.Context, key string) error {
	delete(m, key)
	return nil
}

func TestJSONRoundTripThroughCache(t *testing.T) {
	ctx := context.Background()
	c := mapCache{}
	if err := SetJSON(ctx, c, KeyVideos, []string{"a", "b"}, time.Minute); err != nil {
		t.Fatalf("SetJSON error: %v", err)
	}
	var out []string
	if !GetJSON(ctx, c, KeyVideos, &out) {
		t.Fatalf("expected cache hit")
	}
	if len(out) != 2 || out[1] != "b" {
		t.Fatalf("unexpected value: %v", out)
	}
}

func TestGetJSONCorruptPayloadIsMiss(t *testing.T) {
	ctx := context.Background()
	c := mapCache{KeyClients: []byte("{not json")}
	var out []string
	if GetJSON(ctx, c, KeyClients, &out) {
		t.Fatalf("expected miss on corrupt payload")
	}
}

func TestNoopCacheNeverHits(t *testing.T) {
	ctx := context.Background()
	c := NewNoop()
	_ = SetJSON(ctx, c, KeyCertificates, []int{1}, time.Minute)
	var out []int
	if GetJSON(ctx, c, KeyCertificates, &out) {
		t.Fatalf("noop cache must never hit")
	}
	if GetJSON(ctx, nil, KeyCertificates, &out) {
		t.Fatalf("nil cache must never hit")
	}
}

func TestVersionsSkipWriteAfterInvalidate(t *testing.T) {
	ctx := context.Background()
	c := mapCache{}
	v := NewVersions()

	gen := v.Current(KeyVideos)
	if err := v.Invalidate(ctx, c, KeyVideos); err != nil {
		t.Fatalf("Invalidate error: %v", err)
	}
	stored, err := v.SetJSON(ctx, c, KeyVideos, gen, []string{"stale"}, time.Minute)
	if err != nil || stored {
		t.Fatalf("expected stale write to be skipped, stored=%v err=%v", stored, err)
	}
	if _, ok := c[KeyVideos]; ok {
		t.Fatalf("stale list must not be cached")
	}

	stored, err = v.SetJSON(ctx, c, KeyVideos, v.Current(KeyVideos), []string{"fresh"}, time.Minute)
	if err != nil || !stored {
		t.Fatalf("expected current write to be stored, stored=%v err=%v", stored, err)
	}
	if v.Current(KeyClients) != 0 {
		t.Fatalf("generations must be tracked per key")
	}
}
