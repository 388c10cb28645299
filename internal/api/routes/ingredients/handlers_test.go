package ingredients

import (
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/matt-dz/foodgram/internal/api/apitest"
	apiError "github.com/matt-dz/foodgram/internal/api/error"
	"github.com/matt-dz/foodgram/internal/api/schema"
	"github.com/matt-dz/foodgram/internal/database"
)

func TestHandleListIngredients(t *testing.T) {
	h := apitest.New(t)
	h.Store.EXPECT().ListIngredients(gomock.Any(), "Sug").Return([]database.Ingredient{
		{ID: 1, Name: "sugar", MeasurementUnit: "g"},
	}, nil)

	rec := h.Do(HandleListIngredients, apitest.Request{Method: http.MethodGet, Target: "/api/ingredients/?name=Sug"})

	require.Equal(t, http.StatusOK, rec.Code)
	var got []schema.Ingredient
	apitest.Decode(t, rec, &got)
	assert.Equal(t, []schema.Ingredient{{ID: 1, Name: "sugar", MeasurementUnit: "g"}}, got)
}

func TestHandleListIngredients_Empty(t *testing.T) {
	h := apitest.New(t)
	h.Store.EXPECT().ListIngredients(gomock.Any(), "").Return(nil, nil)

	rec := h.Do(HandleListIngredients, apitest.Request{Method: http.MethodGet, Target: "/api/ingredients/"})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestHandleGetIngredient(t *testing.T) {
	h := apitest.New(t)
	h.Store.EXPECT().GetIngredient(gomock.Any(), int64(3)).Return(database.Ingredient{}, pgx.ErrNoRows)

	rec := h.Do(HandleGetIngredient, apitest.Request{
		Method:  http.MethodGet,
		Pattern: "/api/ingredients/{id}/",
		Target:  "/api/ingredients/3/",
	})

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, apiError.NotFound, apitest.ErrorCode(t, rec))
}
