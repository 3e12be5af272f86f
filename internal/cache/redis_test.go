package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/blindbox-next/internal/config"
)

func TestDisabledCacheIsNoop(t *testing.T) {
	if err := InitRedis(&config.RedisConfig{Enabled: false}); err != nil {
		t.Fatalf("init disabled redis failed: %v", err)
	}
	if Enabled() || Client() != nil {
		t.Fatalf("cache should be disabled")
	}

	ctx := context.Background()
	if err := SetJSON(ctx, "public:products", []int{1, 2}, time.Minute); err != nil {
		t.Fatalf("set on disabled cache should be noop: %v", err)
	}
	var dest []int
	hit, err := GetJSON(ctx, "public:products", &dest)
	if err != nil || hit {
		t.Fatalf("get on disabled cache want miss, got hit=%v err=%v", hit, err)
	}
	if err := Del(ctx, "public:products"); err != nil {
		t.Fatalf("del on disabled cache should be noop: %v", err)
	}
}

func TestBuildKey(t *testing.T) {
	Use(nil, "shop")
	defer Use(nil, "")

	if got := BuildKey("public:products"); got != "shop:public:products" {
		t.Fatalf("unexpected key: %s", got)
	}
	if got := BuildKey("  "); got != "shop" {
		t.Fatalf("empty key should be prefix only, got %s", got)
	}
	Use(nil, "")
	if got := BuildKey("x"); got != "bb:x" {
		t.Fatalf("default prefix want bb, got %s", got)
	}
}

func TestRememberWithoutRedisCallsLoader(t *testing.T) {
	Use(nil, "")
	calls := 0
	load := func() ([]string, error) {
		calls++
		return []string{"SKULLPANDA"}, nil
	}
	for i := 0; i < 2; i++ {
		got, err := Remember(context.Background(), "public:products", time.Minute, load)
		if err != nil || len(got) != 1 {
			t.Fatalf("remember failed: %v %v", got, err)
		}
	}
	if calls != 2 {
		t.Fatalf("loader should run on every call without redis, got %d", calls)
	}
}

func TestRememberPropagatesLoaderError(t *testing.T) {
	boom := errors.New("store down")
	_, err := Remember(context.Background(), "public:products", 0, func() (int, error) {
		return 0, boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected loader error, got %v", err)
	}
}
