// Package importer loads the ingredient and tag catalogs from CSV files.
package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/matt-dz/foodgram/internal/database"
	"github.com/matt-dz/foodgram/internal/metrics"
	"github.com/matt-dz/foodgram/internal/validate"
)

type Kind string

const (
	KindIngredients Kind = "ingredients"
	KindTags        Kind = "tags"
)

// Result label values of metrics.ImportedRows.
const (
	resultInserted = "inserted"
	resultSkipped  = "skipped"
	resultInvalid  = "invalid"
)

var ErrEmptySource = errors.New("source has no header row")

// Fetcher downloads remote sources.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (io.ReadCloser, error)
}

// Result counts rows by outcome. Skipped rows already existed.
type Result struct {
	Inserted int
	Skipped  int
	Invalid  int
}

type Importer struct {
	q       database.Querier
	fetcher Fetcher
	logger  *slog.Logger
}

func New(q database.Querier, fetcher Fetcher, logger *slog.Logger) *Importer {
	return &Importer{q: q, fetcher: fetcher, logger: logger}
}

// Open returns a reader for source, which is an http(s) URL or a file path.
func (im *Importer) Open(ctx context.Context, source string) (io.ReadCloser, error) {
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		return im.fetcher.Fetch(ctx, source)
	}
	f, err := os.Open(source)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", source, err)
	}
	return f, nil
}

// Import reads source and loads it as kind.
func (im *Importer) Import(ctx context.Context, kind Kind, source string) (Result, error) {
	rc, err := im.Open(ctx, source)
	if err != nil {
		return Result{}, err
	}
	defer func() { _ = rc.Close() }()

	switch kind {
	case KindIngredients:
		return im.Ingredients(ctx, rc)
	case KindTags:
		return im.Tags(ctx, rc)
	}
	return Result{}, fmt.Errorf("unknown import kind %q", kind)
}

// rowFunc inserts one record. It returns false when the row already existed.
type rowFunc func(ctx context.Context, record []string) (bool, error)

func (im *Importer) run(ctx context.Context, kind Kind, r io.Reader, columns int, insert rowFunc) (Result, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = columns
	reader.TrimLeadingSpace = true

	if _, err := reader.Read(); errors.Is(err, io.EOF) {
		return Result{}, ErrEmptySource
	} else if err != nil {
		return Result{}, fmt.Errorf("reading header: %w", err)
	}

	var res Result
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if errors.Is(err, csv.ErrFieldCount) {
			line, _ := reader.FieldPos(0)
			im.logger.WarnContext(ctx, "Skipping row with wrong column count",
				slog.String("kind", string(kind)), slog.Int("line", line))
			res.Invalid++
			metrics.ImportedRows.WithLabelValues(string(kind), resultInvalid).Inc()
			continue
		} else if err != nil {
			return res, fmt.Errorf("reading %s: %w", kind, err)
		}
		line, _ := reader.FieldPos(0)

		for i := range record {
			record[i] = strings.TrimSpace(record[i])
		}

		inserted, err := insert(ctx, record)
		var verr *validationError
		switch {
		case errors.As(err, &verr):
			im.logger.WarnContext(ctx, "Skipping invalid row",
				slog.String("kind", string(kind)), slog.Int("line", line), slog.String("reason", verr.reason))
			res.Invalid++
			metrics.ImportedRows.WithLabelValues(string(kind), resultInvalid).Inc()
		case err != nil:
			return res, fmt.Errorf("importing line %d: %w", line, err)
		case inserted:
			res.Inserted++
			metrics.ImportedRows.WithLabelValues(string(kind), resultInserted).Inc()
		default:
			res.Skipped++
			metrics.ImportedRows.WithLabelValues(string(kind), resultSkipped).Inc()
		}
	}

	im.logger.InfoContext(ctx, "Import finished",
		slog.String("kind", string(kind)),
		slog.Int("inserted", res.Inserted),
		slog.Int("skipped", res.Skipped),
		slog.Int("invalid", res.Invalid))
	return res, nil
}

type validationError struct {
	reason string
}

func (e *validationError) Error() string {
	return e.reason
}

func invalid(format string, args ...any) error {
	return &validationError{reason: fmt.Sprintf(format, args...)}
}

func checkLength(field, value string, limit int) error {
	if value == "" {
		return invalid("%s is empty", field)
	}
	if utf8.RuneCountInString(value) > limit {
		return invalid("%s is longer than %d characters", field, limit)
	}
	return nil
}

// Ingredients loads rows of (name, measurement_unit).
func (im *Importer) Ingredients(ctx context.Context, r io.Reader) (Result, error) {
	return im.run(ctx, KindIngredients, r, 2, func(ctx context.Context, record []string) (bool, error) {
		name, unit := record[0], record[1]
		if err := checkLength("name", name, validate.MaxNameLength); err != nil {
			return false, err
		}
		if err := checkLength("measurement_unit", unit, validate.MaxNameLength); err != nil {
			return false, err
		}
		return im.q.CreateIngredientIgnoreConflict(ctx, database.CreateIngredientParams{
			Name:            name,
			MeasurementUnit: unit,
		})
	})
}

// Tags loads rows of (name, color, slug). Colors are hex values that map to
// a CSS color name.
func (im *Importer) Tags(ctx context.Context, r io.Reader) (Result, error) {
	return im.run(ctx, KindTags, r, 3, func(ctx context.Context, record []string) (bool, error) {
		name, color, slug := record[0], strings.ToLower(record[1]), record[2]
		if err := checkLength("name", name, validate.MaxNameLength); err != nil {
			return false, err
		}
		if err := checkLength("slug", slug, validate.MaxNameLength); err != nil {
			return false, err
		}
		if !validate.IsSlug(slug) {
			return false, invalid("slug %q may contain only letters, digits and . @ + - _", slug)
		}
		if _, ok := validate.ColorName(color); !ok {
			return false, invalid("color %q is not a named color", color)
		}
		return im.q.CreateTagIgnoreConflict(ctx, database.CreateTagParams{
			Name:  name,
			Color: color,
			Slug:  slug,
		})
	})
}
