package filestore

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func newTestFileStore(t *testing.T) (Local, string) {
	t.Helper()
	baseDir := t.TempDir()
	return NewLocal(baseDir, KeyPrefix, "http://localhost:8080"), baseDir
}

func TestNewLocal(t *testing.T) {
	baseDir := t.TempDir()

	store := NewLocal(baseDir, "media/", "http://localhost:8080/")

	if store.keyPrefix != "/media" {
		t.Errorf("keyPrefix = %q, want %q", store.keyPrefix, "/media")
	}
	if store.host != "http://localhost:8080" {
		t.Errorf("host = %q, want trailing slash trimmed", store.host)
	}
	if store.BaseDirectory() != baseDir {
		t.Errorf("BaseDirectory() = %q, want %q", store.BaseDirectory(), baseDir)
	}
}

func TestWriteRecipeImage(t *testing.T) {
	store, baseDir := newTestFileStore(t)
	data := []byte("test recipe image data")

	key, err := store.WriteRecipeImage(context.Background(), ".jpg", "image/jpeg", data)
	if err != nil {
		t.Fatalf("WriteRecipeImage() error = %v", err)
	}

	if !strings.HasPrefix(key, recipesDir+"/") {
		t.Errorf("WriteRecipeImage() key = %q, should start with %q", key, recipesDir+"/")
	}
	if !strings.HasSuffix(key, ".jpg") {
		t.Errorf("WriteRecipeImage() key = %q, should end with .jpg", key)
	}

	content, err := os.ReadFile(filepath.Join(baseDir, filepath.FromSlash(key)))
	if err != nil {
		t.Fatalf("failed to read written file: %v", err)
	}
	if string(content) != string(data) {
		t.Errorf("file content = %q, want %q", string(content), string(data))
	}
}

func TestWriteRecipeImage_UniqueKeys(t *testing.T) {
	store, _ := newTestFileStore(t)

	seen := make(map[string]bool)
	for range 20 {
		key, err := store.WriteRecipeImage(context.Background(), ".png", "image/png", []byte("x"))
		if err != nil {
			t.Fatalf("WriteRecipeImage() error = %v", err)
		}
		if seen[key] {
			t.Fatalf("duplicate key %q", key)
		}
		seen[key] = true
	}
}

func TestFileURL(t *testing.T) {
	tests := []struct {
		name     string
		host     string
		key      string
		expected string
	}{
		{
			name:     "simple key",
			host:     "http://localhost:8080",
			key:      "recipes/abc123.jpg",
			expected: "http://localhost:8080/media/recipes/abc123.jpg",
		},
		{
			name:     "production host",
			host:     "https://foodgram.example.com/",
			key:      "recipes/xyz789.png",
			expected: "https://foodgram.example.com/media/recipes/xyz789.png",
		},
		{
			name:     "empty key has no url",
			host:     "http://localhost:8080",
			key:      "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := NewLocal(t.TempDir(), KeyPrefix, tt.host)

			got := store.FileURL(tt.key)
			if got != tt.expected {
				t.Errorf("FileURL() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestDeleteKey(t *testing.T) {
	store, baseDir := newTestFileStore(t)

	key, err := store.WriteRecipeImage(context.Background(), ".jpg", "image/jpeg", []byte("test data"))
	if err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	filePath := filepath.Join(baseDir, filepath.FromSlash(key))
	if _, err := os.Stat(filePath); err != nil {
		t.Fatalf("file should exist before delete: %v", err)
	}

	if err := store.DeleteKey(context.Background(), key); err != nil {
		t.Fatalf("DeleteKey() error = %v", err)
	}

	if _, err := os.Stat(filePath); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected file to be deleted, got err = %v", err)
	}
}

func TestDeleteKey_NonExistent(t *testing.T) {
	store, _ := newTestFileStore(t)

	err := store.DeleteKey(context.Background(), "recipes/nonexistent.jpg")
	if !errors.Is(err, ErrNotExist) {
		t.Errorf("DeleteKey() error = %v, want ErrNotExist", err)
	}
}

func TestDeleteKey_VariousPrefixes(t *testing.T) {
	tests := []struct {
		name string
		key  string
	}{
		{name: "bare key", key: "recipes/abc123.jpg"},
		{name: "served path", key: "/media/recipes/abc123.jpg"},
		{name: "served path without leading slash", key: "media/recipes/abc123.jpg"},
		{name: "with trailing slash", key: "/media/recipes/abc123.jpg/"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, baseDir := newTestFileStore(t)

			filePath := filepath.Join(baseDir, "recipes", "abc123.jpg")
			if err := os.MkdirAll(filepath.Dir(filePath), 0o755); err != nil {
				t.Fatalf("failed to create directories: %v", err)
			}
			if err := os.WriteFile(filePath, []byte("test"), 0o644); err != nil {
				t.Fatalf("failed to write test file: %v", err)
			}

			if err := store.DeleteKey(context.Background(), tt.key); err != nil {
				t.Fatalf("DeleteKey() error = %v", err)
			}

			if _, err := os.Stat(filePath); !errors.Is(err, os.ErrNotExist) {
				t.Errorf("expected file to be deleted")
			}
		})
	}
}

func TestRecipeImageKey(t *testing.T) {
	tests := []struct {
		id       string
		suffix   string
		expected string
	}{
		{id: "abc123", suffix: ".jpg", expected: "recipes/abc123.jpg"},
		{id: "xyz789", suffix: ".png", expected: "recipes/xyz789.png"},
		{id: "test", suffix: "", expected: "recipes/test"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := recipeImageKey(tt.id, tt.suffix); got != tt.expected {
				t.Errorf("recipeImageKey() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestExtractKeyPrefix(t *testing.T) {
	tests := []struct {
		name     string
		key      string
		prefix   string
		expected string
	}{
		{
			name:     "trim leading prefix",
			key:      "/media/recipes/123.jpg",
			prefix:   "/media",
			expected: "recipes/123.jpg",
		},
		{
			name:     "key without leading slash",
			key:      "media/recipes/123.jpg",
			prefix:   "/media",
			expected: "recipes/123.jpg",
		},
		{
			name:     "prefix without slashes",
			key:      "/static/images/1.jpg",
			prefix:   "static",
			expected: "images/1.jpg",
		},
		{
			name:     "trailing slash in key",
			key:      "/media/recipes/123.jpg/",
			prefix:   "/media",
			expected: "recipes/123.jpg",
		},
		{
			name:     "prefix only matches whole segment",
			key:      "mediafiles/1.jpg",
			prefix:   "media",
			expected: "mediafiles/1.jpg",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := extractKeyPrefix(tt.key, tt.prefix)
			if got != tt.expected {
				t.Errorf("extractKeyPrefix() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestGenerateKeyID(t *testing.T) {
	a, b := generateKeyID(), generateKeyID()
	if a == b {
		t.Errorf("generateKeyID() returned %q twice", a)
	}
	if len(a) != 26 {
		t.Errorf("generateKeyID() length = %d, want 26", len(a))
	}
	if strings.ToLower(a) != a {
		t.Errorf("generateKeyID() = %q, want lowercase", a)
	}
}
