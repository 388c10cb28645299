// Package subscription manages which authors a user follows.
package subscription

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgtype"

	"github.com/matt-dz/foodgram/internal/database"
	"github.com/matt-dz/foodgram/internal/domain"
	"github.com/matt-dz/foodgram/internal/metrics"
	"github.com/matt-dz/foodgram/internal/principal"
)

// Author is a followed user with their recipe count and newest recipes.
type Author struct {
	User         database.User
	IsSubscribed bool
	RecipesCount int64
	Recipes      []database.Recipe
}

type Service struct {
	q database.Querier
}

func NewService(q database.Querier) *Service {
	return &Service{q: q}
}

// Follow subscribes the caller to authorID. recipesLimit caps the recipes
// returned with the author; zero or less returns all of them.
func (s *Service) Follow(ctx context.Context, p principal.Principal, authorID int64, recipesLimit int32) (Author, error) {
	author, err := s.follow(ctx, p, authorID, recipesLimit)
	metrics.SubscriptionOperations.WithLabelValues("follow", metrics.Outcome(err)).Inc()
	return author, err
}

func (s *Service) follow(ctx context.Context, p principal.Principal, authorID int64, recipesLimit int32) (Author, error) {
	if !p.IsAuthenticated() {
		return Author{}, domain.ErrUnauthenticated
	}
	if p.UserID == authorID {
		return Author{}, domain.ErrSelfSubscription
	}

	user, err := s.q.GetUserByID(ctx, authorID)
	if database.IsNoRows(err) {
		return Author{}, domain.NotFound("user", authorID)
	} else if err != nil {
		return Author{}, fmt.Errorf("getting author: %w", err)
	}

	err = s.q.InsertSubscription(ctx, database.SubscriptionParams{
		UserID:   p.UserID,
		AuthorID: authorID,
	})
	switch {
	case database.IsUniqueViolation(err):
		return Author{}, fmt.Errorf("subscription to user %d: %w", authorID, domain.ErrAlreadyExists)
	case database.IsCheckViolation(err):
		return Author{}, domain.ErrSelfSubscription
	case database.IsForeignKeyViolation(err):
		return Author{}, domain.NotFound("user", authorID)
	case err != nil:
		return Author{}, fmt.Errorf("inserting subscription: %w", err)
	}

	return s.describe(ctx, user, true, recipesLimit)
}

// Unfollow fails with domain.ErrNotFound when the author does not exist or
// the caller does not follow them.
func (s *Service) Unfollow(ctx context.Context, p principal.Principal, authorID int64) error {
	err := s.unfollow(ctx, p, authorID)
	metrics.SubscriptionOperations.WithLabelValues("unfollow", metrics.Outcome(err)).Inc()
	return err
}

func (s *Service) unfollow(ctx context.Context, p principal.Principal, authorID int64) error {
	if !p.IsAuthenticated() {
		return domain.ErrUnauthenticated
	}

	if _, err := s.q.GetUserByID(ctx, authorID); database.IsNoRows(err) {
		return domain.NotFound("user", authorID)
	} else if err != nil {
		return fmt.Errorf("getting author: %w", err)
	}

	n, err := s.q.DeleteSubscription(ctx, database.SubscriptionParams{
		UserID:   p.UserID,
		AuthorID: authorID,
	})
	if err != nil {
		return fmt.Errorf("deleting subscription: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("subscription to user %d: %w", authorID, domain.ErrNotFound)
	}
	return nil
}

// ListFollowing returns one page of followed authors, newest subscription
// first, and the total number of followed authors.
func (s *Service) ListFollowing(
	ctx context.Context, p principal.Principal, limit, offset, recipesLimit int32,
) ([]Author, int64, error) {
	if !p.IsAuthenticated() {
		return nil, 0, domain.ErrUnauthenticated
	}

	total, err := s.q.CountSubscribedAuthors(ctx, p.UserID)
	if err != nil {
		return nil, 0, fmt.Errorf("counting subscriptions: %w", err)
	}

	users, err := s.q.ListSubscribedAuthors(ctx, database.ListSubscribedAuthorsParams{
		UserID: p.UserID,
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("listing subscriptions: %w", err)
	}

	authors := make([]Author, 0, len(users))
	for _, u := range users {
		a, err := s.describe(ctx, u, true, recipesLimit)
		if err != nil {
			return nil, 0, err
		}
		authors = append(authors, a)
	}
	return authors, total, nil
}

// IsSubscribed is false for anonymous callers.
func (s *Service) IsSubscribed(ctx context.Context, p principal.Principal, authorID int64) (bool, error) {
	if !p.IsAuthenticated() {
		return false, nil
	}
	ok, err := s.q.SubscriptionExists(ctx, database.SubscriptionParams{
		UserID:   p.UserID,
		AuthorID: authorID,
	})
	if err != nil {
		return false, fmt.Errorf("checking subscription: %w", err)
	}
	return ok, nil
}

func (s *Service) describe(ctx context.Context, u database.User, subscribed bool, recipesLimit int32) (Author, error) {
	count, err := s.q.CountRecipesByAuthor(ctx, u.ID)
	if err != nil {
		return Author{}, fmt.Errorf("counting recipes of user %d: %w", u.ID, err)
	}

	limit := pgtype.Int4{Int32: recipesLimit, Valid: recipesLimit > 0}
	recipes, err := s.q.ListRecipesByAuthor(ctx, database.ListRecipesByAuthorParams{
		AuthorID: u.ID,
		Limit:    limit,
	})
	if err != nil {
		return Author{}, fmt.Errorf("listing recipes of user %d: %w", u.ID, err)
	}

	return Author{
		User:         u,
		IsSubscribed: subscribed,
		RecipesCount: count,
		Recipes:      recipes,
	}, nil
}
