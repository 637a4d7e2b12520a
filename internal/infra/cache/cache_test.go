package cache_test

import (
	"testing"
	"time"

	"github.com/rmeucci/portfolio-bff-go/internal/infra/cache"
)

func TestCache_SetAndGet(t *testing.T) {
	c := cache.New[string](5 * time.Minute)

	c.Set("wallet:1", "Main Wallet")
	val, ok := c.Get("wallet:1")
	if !ok {
		t.Fatal("expected key to exist")
	}
	if val != "Main Wallet" {
		t.Errorf("expected 'Main Wallet', got '%s'", val)
	}
}

func TestCache_GetMiss(t *testing.T) {
	c := cache.New[string](5 * time.Minute)

	_, ok := c.Get("wallet:99")
	if ok {
		t.Fatal("expected cache miss for nonexistent key")
	}
}

func TestCache_Expiration(t *testing.T) {
	c := cache.New[string](50 * time.Millisecond)

	c.Set("wallet:1", "Main Wallet")
	time.Sleep(100 * time.Millisecond)

	_, ok := c.Get("wallet:1")
	if ok {
		t.Fatal("expected cache entry to be expired")
	}
}

func TestCache_Delete(t *testing.T) {
	c := cache.New[string](5 * time.Minute)

	c.Set("wallet:1", "Main Wallet")
	c.Delete("wallet:1")

	_, ok := c.Get("wallet:1")
	if ok {
		t.Fatal("expected key to be deleted")
	}
}
