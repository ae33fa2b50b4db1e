package vtile

import (
	"errors"
	"image"
	"testing"

	"github.com/beetlebugorg/vtrender/internal/label"
)

func testIcon(name string, w, h int) *label.Icon {
	return &label.Icon{Name: name, Image: image.NewNRGBA(image.Rect(0, 0, w, h)), PixelRatio: 1}
}

func TestCacheBasic(t *testing.T) {
	cache := NewIconCache(1024 * 1024) // 1MB

	stats := cache.Stats()
	if stats.IconCount != 0 {
		t.Errorf("Expected empty cache, got %d icons", stats.IconCount)
	}

	loadCount := 0
	icon, err := cache.Get("park", func() (*label.Icon, error) {
		loadCount++
		return testIcon("park", 10, 10), nil
	})
	if err != nil {
		t.Fatalf("Failed to load icon: %v", err)
	}
	if icon.Name != "park" {
		t.Errorf("Expected icon 'park', got '%s'", icon.Name)
	}

	icon2, err := cache.Get("park", func() (*label.Icon, error) {
		loadCount++
		return testIcon("other", 10, 10), nil
	})
	if err != nil {
		t.Fatalf("Failed to get cached icon: %v", err)
	}
	if icon2 != icon {
		t.Error("Expected cached icon to be returned")
	}
	if loadCount != 1 {
		t.Errorf("Expected loader called once, got %d times", loadCount)
	}
	if got := cache.Stats().TotalAccess; got != 2 {
		t.Errorf("Expected 2 accesses, got %d", got)
	}
}

func TestCacheEviction(t *testing.T) {
	// 10x10 icons are 656 bytes each.
	cache := NewIconCache(2000)

	for i := 0; i < 10; i++ {
		name := string(rune('A' + i))
		if _, err := cache.Get(name, func() (*label.Icon, error) {
			return testIcon(name, 10, 10), nil
		}); err != nil {
			t.Fatalf("Failed to add icon %s: %v", name, err)
		}
	}

	stats := cache.Stats()
	if stats.IconCount != 3 {
		t.Errorf("Expected 3 icons after eviction, got %d", stats.IconCount)
	}
	if stats.UsedMemory > cache.maxMemory {
		t.Errorf("Cache exceeded max memory: %d > %d", stats.UsedMemory, cache.maxMemory)
	}

	// The most recent icons survive.
	loaded := false
	cache.Get("J", func() (*label.Icon, error) {
		loaded = true
		return nil, nil
	})
	if loaded {
		t.Error("Expected most recent icon to still be cached")
	}
}

func TestCacheTooLarge(t *testing.T) {
	cache := NewIconCache(100)
	icon, err := cache.Get("big", func() (*label.Icon, error) {
		return testIcon("big", 100, 100), nil
	})
	if err != nil || icon == nil {
		t.Fatalf("Expected icon to be returned uncached, got %v %v", icon, err)
	}
	if cache.Stats().IconCount != 0 {
		t.Error("Expected oversized icon not to be cached")
	}
}

func TestCacheLoaderError(t *testing.T) {
	cache := NewIconCache(0)
	boom := errors.New("boom")
	if _, err := cache.Get("x", func() (*label.Icon, error) { return nil, boom }); !errors.Is(err, boom) {
		t.Errorf("Expected wrapped loader error, got %v", err)
	}
}

func TestCacheClearAndRemove(t *testing.T) {
	cache := NewIconCache(0)
	cache.Add("a", testIcon("a", 2, 2))
	cache.Add("b", testIcon("b", 2, 2))

	cache.Remove("a")
	if cache.Stats().IconCount != 1 {
		t.Errorf("Expected 1 icon after remove, got %d", cache.Stats().IconCount)
	}

	cache.Clear()
	stats := cache.Stats()
	if stats.IconCount != 0 || stats.UsedMemory != 0 {
		t.Errorf("Expected empty cache after clear, got %+v", stats)
	}
}
