// Package dbtest provides a database.Store backed by a gomock Querier.
package dbtest

import (
	"context"

	"github.com/jackc/pgx/v5"
	"go.uber.org/mock/gomock"

	"github.com/matt-dz/foodgram/internal/database"
)

// Store runs transactions directly against the mock. Rollback is not
// simulated; tests assert on which calls were made.
type Store struct {
	*database.MockQuerier

	TxCount int
}

var _ database.Store = (*Store)(nil)

func NewStore(ctrl *gomock.Controller) *Store {
	return &Store{MockQuerier: database.NewMockQuerier(ctrl)}
}

func (s *Store) InTx(_ context.Context, _ pgx.TxOptions, fn func(database.Querier) error) error {
	s.TxCount++
	return fn(s.MockQuerier)
}
