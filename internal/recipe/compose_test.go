package recipe

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/matt-dz/foodgram/internal/database"
	"github.com/matt-dz/foodgram/internal/domain"
)

func TestReplaceIngredients(t *testing.T) {
	items := []IngredientAmount{{ID: 1, Amount: 5}, {ID: 2, Amount: 500}}
	params := []database.RecipeIngredientParams{{IngredientID: 1, Amount: 5}, {IngredientID: 2, Amount: 500}}

	tests := []struct {
		name    string
		items   []IngredientAmount
		setup   func(*database.MockQuerier)
		wantErr error
	}{
		{
			name:  "replaces list",
			items: items,
			setup: func(m *database.MockQuerier) {
				gomock.InOrder(
					m.EXPECT().DeleteRecipeIngredients(gomock.Any(), int64(4)).Return(nil),
					m.EXPECT().InsertRecipeIngredients(gomock.Any(), int64(4), params).Return(int64(2), nil),
				)
			},
		},
		{
			name:    "empty list is rejected before mutation",
			items:   nil,
			setup:   func(m *database.MockQuerier) {},
			wantErr: domain.ErrValidationFailed,
		},
		{
			name:    "duplicate ingredient is rejected before mutation",
			items:   []IngredientAmount{{ID: 1, Amount: 5}, {ID: 1, Amount: 3}},
			setup:   func(m *database.MockQuerier) {},
			wantErr: domain.ErrValidationFailed,
		},
		{
			name:    "amount above range",
			items:   []IngredientAmount{{ID: 1, Amount: 10001}},
			setup:   func(m *database.MockQuerier) {},
			wantErr: domain.ErrValidationFailed,
		},
		{
			name:    "amount below range",
			items:   []IngredientAmount{{ID: 1, Amount: 0}},
			setup:   func(m *database.MockQuerier) {},
			wantErr: domain.ErrValidationFailed,
		},
		{
			name:  "unknown ingredient",
			items: items,
			setup: func(m *database.MockQuerier) {
				m.EXPECT().DeleteRecipeIngredients(gomock.Any(), int64(4)).Return(nil)
				m.EXPECT().InsertRecipeIngredients(gomock.Any(), int64(4), params).
					Return(int64(0), &pgconn.PgError{Code: "23503"})
			},
			wantErr: domain.ErrValidationFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			mockDB := database.NewMockQuerier(ctrl)
			tt.setup(mockDB)

			err := ReplaceIngredients(context.Background(), mockDB, 4, tt.items)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestReplaceTags(t *testing.T) {
	tests := []struct {
		name    string
		tags    []int64
		setup   func(*database.MockQuerier)
		wantErr error
	}{
		{
			name: "replaces set",
			tags: []int64{1, 3},
			setup: func(m *database.MockQuerier) {
				gomock.InOrder(
					m.EXPECT().DeleteRecipeTags(gomock.Any(), int64(4)).Return(nil),
					m.EXPECT().InsertRecipeTags(gomock.Any(), int64(4), []int64{1, 3}).Return(int64(2), nil),
				)
			},
		},
		{
			name:    "empty set",
			tags:    []int64{},
			setup:   func(m *database.MockQuerier) {},
			wantErr: domain.ErrValidationFailed,
		},
		{
			name:    "duplicate tag",
			tags:    []int64{2, 2},
			setup:   func(m *database.MockQuerier) {},
			wantErr: domain.ErrValidationFailed,
		},
		{
			name: "unknown tag",
			tags: []int64{99},
			setup: func(m *database.MockQuerier) {
				m.EXPECT().DeleteRecipeTags(gomock.Any(), int64(4)).Return(nil)
				m.EXPECT().InsertRecipeTags(gomock.Any(), int64(4), []int64{99}).
					Return(int64(0), &pgconn.PgError{Code: "23503"})
			},
			wantErr: domain.ErrValidationFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			mockDB := database.NewMockQuerier(ctrl)
			tt.setup(mockDB)

			err := ReplaceTags(context.Background(), mockDB, 4, tt.tags)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestReplaceTags_DatabaseFailureIsNotValidation(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockDB := database.NewMockQuerier(ctrl)
	mockDB.EXPECT().DeleteRecipeTags(gomock.Any(), int64(4)).Return(errors.New("connection reset"))

	err := ReplaceTags(context.Background(), mockDB, 4, []int64{1})
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrValidationFailed)
}
