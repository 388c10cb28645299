// Package image decodes recipe images sent as base64 data URIs.
package image

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

const (
	magicNumberSeek = 512
	// MaxSize bounds a decoded image.
	MaxSize = 10 << 20
)

// allowedImageTypes lists the simple MIME types we accept.
var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
	"image/gif":  true,
}

var mimeTypeSuffix = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

var (
	ErrUnsupportedMimeType = errors.New("unsupported mime type")
	ErrMalformedDataURI    = errors.New("malformed data uri")
	ErrEmptyImage          = errors.New("image is empty")
	ErrImageTooLarge       = errors.New("image too large")
)

type File struct {
	Size     int64
	Data     []byte
	Suffix   string
	MimeType string
}

func (f *File) Reader() *bytes.Reader {
	return bytes.NewReader(f.Data)
}

// Decode parses "data:<mime>;base64,<payload>". The declared MIME type is
// ignored; the content type is sniffed from the decoded bytes.
func Decode(uri string) (*File, error) {
	header, payload, ok := strings.Cut(uri, ",")
	if !ok || !strings.HasPrefix(header, "data:") || !strings.HasSuffix(header, ";base64") {
		return nil, ErrMalformedDataURI
	}

	if base64.StdEncoding.DecodedLen(len(payload)) > MaxSize+3 {
		return nil, ErrImageTooLarge
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, errors.Join(ErrMalformedDataURI, err)
	}
	if len(data) == 0 {
		return nil, ErrEmptyImage
	}
	if len(data) > MaxSize {
		return nil, ErrImageTooLarge
	}

	contentType := http.DetectContentType(data[:min(len(data), magicNumberSeek)])
	if !allowedImageTypes[contentType] {
		return nil, fmt.Errorf("mime type %q: %w", contentType, ErrUnsupportedMimeType)
	}

	return &File{
		Size:     int64(len(data)),
		MimeType: contentType,
		Suffix:   mimeTypeSuffix[contentType],
		Data:     data,
	}, nil
}

// SuffixOf returns the extension of key including the dot, or "" when key
// has none.
func SuffixOf(key string) string {
	slash := strings.LastIndex(key, "/")
	idx := strings.LastIndex(key, ".")
	if idx == -1 || idx < slash {
		return ""
	}
	return key[idx:]
}
