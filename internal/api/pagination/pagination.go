// Package pagination implements page-number pagination over list endpoints.
package pagination

import (
	"math"
	"net/http"
	"net/url"
	"strconv"

	"github.com/matt-dz/foodgram/internal/domain"
)

const (
	DefaultLimit = 6
	MaxLimit     = 100

	pageParam  = "page"
	limitParam = "limit"
)

// Page is a parsed page request. Page numbers start at 1.
type Page struct {
	Number int32
	Limit  int32
}

func (p Page) Offset() int32 {
	return int32(p.offset())
}

func (p Page) offset() int64 {
	return int64(p.Number-1) * int64(p.Limit)
}

// FromRequest reads ?page= and ?limit=. A limit above MaxLimit is clamped.
// Pages whose offset does not fit an int32 are rejected.
func FromRequest(r *http.Request) (Page, error) {
	q := r.URL.Query()
	page := Page{Number: 1, Limit: DefaultLimit}

	if v := q.Get(pageParam); v != "" {
		n, err := strconv.ParseInt(v, 10, 32)
		if err != nil || n < 1 {
			return Page{}, domain.Invalid(pageParam, "must be a positive integer")
		}
		page.Number = int32(n)
	}
	if v := q.Get(limitParam); v != "" {
		n, err := strconv.ParseInt(v, 10, 32)
		if err != nil || n < 1 {
			return Page{}, domain.Invalid(limitParam, "must be a positive integer")
		}
		page.Limit = int32(min(n, MaxLimit))
	}
	if page.offset() > math.MaxInt32 {
		return Page{}, domain.Invalid(pageParam, "is out of range")
	}
	return page, nil
}

// Response is the envelope of every paginated list.
type Response[T any] struct {
	Count    int64   `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  []T     `json:"results"`
}

// NewResponse builds the envelope. Next and Previous link to neighbouring
// pages of the same request, keeping every other query parameter.
func NewResponse[T any](r *http.Request, page Page, count int64, results []T) Response[T] {
	if results == nil {
		results = []T{}
	}
	resp := Response[T]{Count: count, Results: results}

	if int64(page.Number)*int64(page.Limit) < count {
		next := pageURL(r, page.Number+1)
		resp.Next = &next
	}
	if page.Number > 1 {
		prev := pageURL(r, page.Number-1)
		resp.Previous = &prev
	}
	return resp
}

func pageURL(r *http.Request, number int32) string {
	u := url.URL{
		Scheme: scheme(r),
		Host:   r.Host,
		Path:   r.URL.Path,
	}
	q := r.URL.Query()
	if number == 1 {
		q.Del(pageParam)
	} else {
		q.Set(pageParam, strconv.Itoa(int(number)))
	}
	u.RawQuery = q.Encode()
	return u.String()
}

func scheme(r *http.Request) string {
	if proto := r.Header.Get("X-Forwarded-Proto"); proto == "https" || proto == "http" {
		return proto
	}
	if r.TLS != nil {
		return "https"
	}
	return "http"
}
