package importer

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/matt-dz/foodgram/internal/database"
	mHttp "github.com/matt-dz/foodgram/internal/http"
	"github.com/matt-dz/foodgram/internal/log"
	"github.com/matt-dz/foodgram/internal/validate"
)

func newImporter(t *testing.T) (*Importer, *database.MockQuerier) {
	t.Helper()
	q := database.NewMockQuerier(gomock.NewController(t))
	client := mHttp.DefaultConfig(log.NullLogger())
	client.RetryMax = 0
	return New(q, mHttp.New(client), log.NullLogger()), q
}

func TestIngredients(t *testing.T) {
	im, q := newImporter(t)
	q.EXPECT().
		CreateIngredientIgnoreConflict(gomock.Any(), database.CreateIngredientParams{Name: "sugar", MeasurementUnit: "g"}).
		Return(true, nil)
	q.EXPECT().
		CreateIngredientIgnoreConflict(gomock.Any(), database.CreateIngredientParams{Name: "milk", MeasurementUnit: "ml"}).
		Return(false, nil)

	src := "name,measurement_unit\nsugar, g\nmilk,ml\n,kg\nsalt\n"
	res, err := im.Ingredients(context.Background(), strings.NewReader(src))

	require.NoError(t, err)
	assert.Equal(t, Result{Inserted: 1, Skipped: 1, Invalid: 2}, res)
}

func TestIngredients_Empty(t *testing.T) {
	im, _ := newImporter(t)

	_, err := im.Ingredients(context.Background(), strings.NewReader(""))
	assert.ErrorIs(t, err, ErrEmptySource)
}

func TestIngredients_DatabaseError(t *testing.T) {
	im, q := newImporter(t)
	q.EXPECT().CreateIngredientIgnoreConflict(gomock.Any(), gomock.Any()).Return(false, errors.New("boom"))

	res, err := im.Ingredients(context.Background(), strings.NewReader("name,unit\nsugar,g\nsalt,g\n"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")
	assert.Zero(t, res.Inserted)
}

func TestTags(t *testing.T) {
	im, q := newImporter(t)
	q.EXPECT().
		CreateTagIgnoreConflict(gomock.Any(), database.CreateTagParams{Name: "Breakfast", Color: "#ffa500", Slug: "breakfast"}).
		Return(true, nil)

	src := "name,color,slug\n" +
		"Breakfast,#FFA500,breakfast\n" +
		"Lunch,#123456,lunch\n" +
		"Dinner,#000080,din ner\n"
	res, err := im.Tags(context.Background(), strings.NewReader(src))

	require.NoError(t, err)
	assert.Equal(t, Result{Inserted: 1, Invalid: 2}, res)
}

func TestIngredients_LengthLimit(t *testing.T) {
	im, q := newImporter(t)
	longest := strings.Repeat("a", validate.MaxNameLength)
	q.EXPECT().
		CreateIngredientIgnoreConflict(gomock.Any(), database.CreateIngredientParams{Name: longest, MeasurementUnit: longest}).
		Return(true, nil)

	tooLong := strings.Repeat("a", validate.MaxNameLength+1)
	src := "name,measurement_unit\n" +
		longest + "," + longest + "\n" +
		tooLong + ",g\n" +
		"flour," + tooLong + "\n"
	res, err := im.Ingredients(context.Background(), strings.NewReader(src))

	require.NoError(t, err)
	assert.Equal(t, Result{Inserted: 1, Invalid: 2}, res)
}

func TestTags_LengthLimit(t *testing.T) {
	im, q := newImporter(t)
	name := strings.Repeat("n", validate.MaxNameLength)
	slug := strings.Repeat("s", validate.MaxNameLength)
	q.EXPECT().
		CreateTagIgnoreConflict(gomock.Any(), database.CreateTagParams{Name: name, Color: "#008000", Slug: slug}).
		Return(true, nil)

	src := "name,color,slug\n" +
		name + ",#008000," + slug + "\n" +
		name + "x,#008000,lunch\n" +
		"Lunch,#008000," + slug + "x\n"
	res, err := im.Tags(context.Background(), strings.NewReader(src))

	require.NoError(t, err)
	assert.Equal(t, Result{Inserted: 1, Invalid: 2}, res)
}

func TestImport_File(t *testing.T) {
	im, q := newImporter(t)
	q.EXPECT().CreateIngredientIgnoreConflict(gomock.Any(), gomock.Any()).Return(true, nil)

	path := filepath.Join(t.TempDir(), "ingredients.csv")
	require.NoError(t, os.WriteFile(path, []byte("name,measurement_unit\nflour,g\n"), 0o600))

	res, err := im.Import(context.Background(), KindIngredients, path)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Inserted)
}

func TestImport_URL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("name,color,slug\nLunch,#008000,lunch\n"))
	}))
	defer server.Close()

	im, q := newImporter(t)
	q.EXPECT().CreateTagIgnoreConflict(gomock.Any(), gomock.Any()).Return(true, nil)

	res, err := im.Import(context.Background(), KindTags, server.URL+"/tags.csv")
	require.NoError(t, err)
	assert.Equal(t, 1, res.Inserted)
}

func TestImport_MissingFile(t *testing.T) {
	im, _ := newImporter(t)

	_, err := im.Import(context.Background(), KindIngredients, filepath.Join(t.TempDir(), "missing.csv"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
