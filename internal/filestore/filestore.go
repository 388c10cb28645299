// Package filestore stores recipe images behind a key-based interface with a
// local-disk and an S3 backend.
package filestore

import (
	"context"
	"errors"
	"path"
	"strings"

	"github.com/oklog/ulid/v2"

	"github.com/matt-dz/foodgram/internal/fileserver"
)

const (
	recipesDir = "recipes"

	// KeyPrefix is the URL path under which local files are served.
	KeyPrefix = "/media"
)

var ErrNotExist = errors.New("object does not exist")

// Store is implemented by every image backend. Keys are slash-separated and
// relative, e.g. "recipes/01J9Z3.png".
type Store interface {
	// WriteRecipeImage stores data under a fresh key and returns it.
	WriteRecipeImage(ctx context.Context, suffix, contentType string, data []byte) (key string, err error)
	DeleteKey(ctx context.Context, key string) error
	// FileURL is the absolute URL clients fetch key from.
	FileURL(key string) string
}

// Local keeps images on disk and serves them from host + KeyPrefix.
type Local struct {
	keyPrefix string
	host      string
	fs        *fileserver.FileServer
}

var _ Store = Local{}

func NewLocal(baseDirectory, keyPrefix, host string) Local {
	return Local{
		keyPrefix: "/" + strings.Trim(keyPrefix, "/"),
		host:      strings.TrimRight(host, "/"),
		fs:        fileserver.New(baseDirectory),
	}
}

func (l Local) WriteRecipeImage(_ context.Context, suffix, _ string, data []byte) (string, error) {
	key := recipeImageKey(generateKeyID(), suffix)
	if _, err := l.fs.Write(key, data); err != nil {
		return "", err
	}
	return key, nil
}

func (l Local) DeleteKey(_ context.Context, key string) error {
	err := l.fs.Delete(extractKeyPrefix(key, l.keyPrefix))
	if errors.Is(err, fileserver.ErrNotExist) {
		return errors.Join(ErrNotExist, err)
	}
	return err
}

func (l Local) FileURL(key string) string {
	if key == "" {
		return ""
	}
	return l.host + path.Join(l.keyPrefix, key)
}

// BaseDirectory is the directory served under KeyPrefix.
func (l Local) BaseDirectory() string {
	return l.fs.BaseDirectory()
}

func (l Local) KeyPrefix() string {
	return l.keyPrefix
}

func recipeImageKey(id, suffix string) string {
	return path.Join(recipesDir, id+suffix)
}

// extractKeyPrefix strips prefix from key so callers may pass either a bare
// key or the URL path it is served at.
func extractKeyPrefix(key, prefix string) string {
	k := strings.Trim(key, "/")
	p := strings.Trim(prefix, "/")
	if p != "" && (k == p || strings.HasPrefix(k, p+"/")) {
		k = strings.TrimPrefix(k, p)
	}
	return strings.TrimLeft(k, "/")
}

func generateKeyID() string {
	return strings.ToLower(ulid.Make().String())
}
