package redis

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

type mockCmdable struct {
	values map[string]string
}

func newMockCmdable() *mockCmdable {
	return &mockCmdable{values: map[string]string{}}
}

func (m *mockCmdable) Ping(ctx context.Context) *redis.StatusCmd {
	cmd := redis.NewStatusCmd(ctx)
	cmd.SetVal("PONG")
	return cmd
}

func (m *mockCmdable) Set(ctx context.Context, key string, value any, _ time.Duration) *redis.StatusCmd {
	m.values[key] = toString(value)
	cmd := redis.NewStatusCmd(ctx)
	cmd.SetVal("OK")
	return cmd
}

func (m *mockCmdable) Get(ctx context.Context, key string) *redis.StringCmd {
	cmd := redis.NewStringCmd(ctx)
	if val, ok := m.values[key]; ok {
		cmd.SetVal(val)
	} else {
		cmd.SetErr(redis.Nil)
	}
	return cmd
}

func (m *mockCmdable) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	cmd := redis.NewIntCmd(ctx)
	var removed int64
	for _, key := range keys {
		if _, ok := m.values[key]; ok {
			delete(m.values, key)
			removed++
		}
	}
	cmd.SetVal(removed)
	return cmd
}

func toString(value any) string {
	if s, ok := value.(string); ok {
		return s
	}
	return ""
}

func TestSetGetDelLifecycle(t *testing.T) {
	ctx := context.Background()
	client := &Client{store: newMockCmdable()}

	key := client.AvailabilityKey("cat-1", "2025-06-01", "2025-06-04")
	if err := client.Set(ctx, key, "3", time.Minute); err != nil {
		t.Fatalf("set: %v", err)
	}

	val, err := client.Get(ctx, key)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if val != "3" {
		t.Fatalf("unexpected value %q", val)
	}

	if err := client.Del(ctx, key); err != nil {
		t.Fatalf("del: %v", err)
	}
	if _, err := client.Get(ctx, key); !IsMiss(err) {
		t.Fatalf("expected miss after delete, got %v", err)
	}
}

func TestAvailabilityKey(t *testing.T) {
	t.Parallel()

	client := &Client{}
	got := client.AvailabilityKey("cat-1", "2025-06-01", "2025-06-04")
	if got != "quarto:availability:cat-1:2025-06-01:2025-06-04" {
		t.Fatalf("unexpected key %s", got)
	}
}

func TestUninitializedClientErrors(t *testing.T) {
	t.Parallel()

	client := &Client{}
	if err := client.Set(context.Background(), "k", "v", 0); err == nil {
		t.Fatal("expected error")
	}
	if _, err := client.Get(context.Background(), "k"); err == nil {
		t.Fatal("expected error")
	}
}
