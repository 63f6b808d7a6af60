package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCacheDirDefault(t *testing.T) {
	oldXdg := os.Getenv("XDG_CACHE_HOME")
	os.Unsetenv("XDG_CACHE_HOME")
	defer func() {
		if oldXdg != "" {
			os.Setenv("XDG_CACHE_HOME", oldXdg)
		}
	}()

	c := &CLI{}
	dir, err := c.cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}

	home, _ := os.UserHomeDir()
	expected := filepath.Join(home, ".cache", appName)
	if dir != expected {
		t.Errorf("cacheDir() = %q, want %q", dir, expected)
	}
}

func TestCacheDirXDG(t *testing.T) {
	customCache := "/tmp/custom-cache"
	oldXdg := os.Getenv("XDG_CACHE_HOME")
	os.Setenv("XDG_CACHE_HOME", customCache)
	defer func() {
		if oldXdg != "" {
			os.Setenv("XDG_CACHE_HOME", oldXdg)
		} else {
			os.Unsetenv("XDG_CACHE_HOME")
		}
	}()

	c := &CLI{}
	dir, err := c.cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}

	if !strings.HasPrefix(dir, customCache) {
		t.Errorf("cacheDir() = %q, should be under %q", dir, customCache)
	}
	if !strings.HasSuffix(dir, appName) {
		t.Errorf("cacheDir() = %q, should end with %q", dir, appName)
	}
}

func TestCacheDirConfigOverride(t *testing.T) {
	c := &CLI{Config: Config{CacheDir: "/tmp/ringforge-cache"}}
	dir, err := c.cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}
	if dir != "/tmp/ringforge-cache" {
		t.Errorf("cacheDir() = %q, config setting should win", dir)
	}
}
