// Package recipe creates, edits and reads recipes together with their
// ingredient and tag composition.
package recipe

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/matt-dz/foodgram/internal/database"
	"github.com/matt-dz/foodgram/internal/domain"
	"github.com/matt-dz/foodgram/internal/filestore"
	"github.com/matt-dz/foodgram/internal/image"
	"github.com/matt-dz/foodgram/internal/ledger"
	"github.com/matt-dz/foodgram/internal/metrics"
	"github.com/matt-dz/foodgram/internal/principal"
	"github.com/matt-dz/foodgram/internal/subscription"
	"github.com/matt-dz/foodgram/internal/validate"
)

var txOptions = pgx.TxOptions{IsoLevel: pgx.RepeatableRead}

// CreateInput describes a new recipe. Image is a base64 data URI.
type CreateInput struct {
	Name        string
	Text        string
	CookingTime int32
	Image       string
	Ingredients []IngredientAmount
	Tags        []int64
}

// UpdateInput changes only the fields that are non-nil. A non-nil
// Ingredients or Tags replaces the whole list.
type UpdateInput struct {
	Name        *string
	Text        *string
	CookingTime *int32
	Image       *string
	Ingredients *[]IngredientAmount
	Tags        *[]int64
}

type Service struct {
	db            database.Store
	files         filestore.Store
	favorites     *ledger.Ledger
	cart          *ledger.Ledger
	subscriptions *subscription.Service
	logger        *slog.Logger
}

func NewService(db database.Store, files filestore.Store, logger *slog.Logger) *Service {
	return &Service{
		db:            db,
		files:         files,
		favorites:     ledger.NewFavorites(db),
		cart:          ledger.NewShoppingCart(db),
		subscriptions: subscription.NewService(db),
		logger:        logger,
	}
}

func validateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return domain.Invalid("name", "must not be empty")
	}
	if utf8.RuneCountInString(name) > validate.MaxNameLength {
		return domain.Invalidf("name", "must be at most %d characters", validate.MaxNameLength)
	}
	return nil
}

func validateText(text string) error {
	if strings.TrimSpace(text) == "" {
		return domain.Invalid("text", "must not be empty")
	}
	return nil
}

func (in CreateInput) validate() error {
	if err := validateName(in.Name); err != nil {
		return err
	}
	if err := validateText(in.Text); err != nil {
		return err
	}
	if err := validate.CookingTime(in.CookingTime); err != nil {
		return err
	}
	if in.Image == "" {
		return domain.Invalid("image", "is required")
	}
	if err := validateIngredients(in.Ingredients); err != nil {
		return err
	}
	return validateTags(in.Tags)
}

func (in UpdateInput) validate() error {
	if in.Name != nil {
		if err := validateName(*in.Name); err != nil {
			return err
		}
	}
	if in.Text != nil {
		if err := validateText(*in.Text); err != nil {
			return err
		}
	}
	if in.CookingTime != nil {
		if err := validate.CookingTime(*in.CookingTime); err != nil {
			return err
		}
	}
	if in.Image != nil && *in.Image == "" {
		return domain.Invalid("image", "must not be empty")
	}
	if in.Ingredients != nil {
		if err := validateIngredients(*in.Ingredients); err != nil {
			return err
		}
	}
	if in.Tags != nil {
		if err := validateTags(*in.Tags); err != nil {
			return err
		}
	}
	return nil
}

// storeImage decodes a data URI and writes it to the file store.
func (s *Service) storeImage(ctx context.Context, uri string) (string, error) {
	img, err := image.Decode(uri)
	if err != nil {
		return "", domain.Invalid("image", err.Error())
	}
	key, err := s.files.WriteRecipeImage(ctx, img.Suffix, img.MimeType, img.Data)
	if err != nil {
		return "", fmt.Errorf("storing recipe image: %w", err)
	}
	return key, nil
}

func (s *Service) discardImage(ctx context.Context, key string) {
	if key == "" {
		return
	}
	if err := s.files.DeleteKey(ctx, key); err != nil && !errors.Is(err, filestore.ErrNotExist) {
		s.logger.WarnContext(ctx, "Failed to delete recipe image",
			slog.String("key", key), slog.Any("error", err))
	}
}

func observe(op string, start time.Time, err error) {
	metrics.CompositionDuration.
		WithLabelValues(op, metrics.Outcome(err)).
		Observe(time.Since(start).Seconds())
}

// Create stores a recipe authored by p. Ingredients and tags are written in
// the same transaction as the recipe row.
func (s *Service) Create(ctx context.Context, p principal.Principal, in CreateInput) (detail Detail, err error) {
	defer func(start time.Time) { observe("create", start, err) }(time.Now())

	if !p.IsAuthenticated() {
		return Detail{}, domain.ErrUnauthenticated
	}
	if err := in.validate(); err != nil {
		return Detail{}, err
	}

	imageKey, err := s.storeImage(ctx, in.Image)
	if err != nil {
		return Detail{}, err
	}

	var created database.Recipe
	err = s.db.InTx(ctx, txOptions, func(q database.Querier) error {
		var err error
		created, err = q.CreateRecipe(ctx, database.CreateRecipeParams{
			AuthorID:    p.UserID,
			Name:        in.Name,
			Text:        in.Text,
			ImageKey:    imageKey,
			CookingTime: in.CookingTime,
		})
		if database.IsCheckViolation(err) {
			return domain.Invalidf("cooking_time", "must be between %d and %d minutes",
				validate.MinCookingTime, validate.MaxCookingTime)
		} else if err != nil {
			return fmt.Errorf("creating recipe: %w", err)
		}
		if err := ReplaceIngredients(ctx, q, created.ID, in.Ingredients); err != nil {
			return err
		}
		return ReplaceTags(ctx, q, created.ID, in.Tags)
	})
	if err != nil {
		s.discardImage(ctx, imageKey)
		return Detail{}, err
	}

	return s.Get(ctx, p, created.ID)
}

// Update edits the recipe with the given id. Only the author or an admin may
// update it.
func (s *Service) Update(ctx context.Context, p principal.Principal, id int64, in UpdateInput) (detail Detail, err error) {
	defer func(start time.Time) { observe("update", start, err) }(time.Now())

	if !p.IsAuthenticated() {
		return Detail{}, domain.ErrUnauthenticated
	}
	if err := in.validate(); err != nil {
		return Detail{}, err
	}

	var newImageKey string
	if in.Image != nil {
		if newImageKey, err = s.storeImage(ctx, *in.Image); err != nil {
			return Detail{}, err
		}
	}

	var oldImageKey string
	err = s.db.InTx(ctx, txOptions, func(q database.Querier) error {
		current, err := q.LockRecipe(ctx, id)
		if database.IsNoRows(err) {
			return domain.NotFound("recipe", id)
		} else if err != nil {
			return fmt.Errorf("locking recipe: %w", err)
		}
		if !p.CanModify(current.AuthorID) {
			return domain.ErrForbidden
		}
		oldImageKey = current.ImageKey

		params := database.UpdateRecipeParams{ID: id}
		if in.Name != nil {
			params.Name = pgtype.Text{String: *in.Name, Valid: true}
		}
		if in.Text != nil {
			params.Text = pgtype.Text{String: *in.Text, Valid: true}
		}
		if in.CookingTime != nil {
			params.CookingTime = pgtype.Int4{Int32: *in.CookingTime, Valid: true}
		}
		if newImageKey != "" {
			params.ImageKey = pgtype.Text{String: newImageKey, Valid: true}
		}
		if _, err := q.UpdateRecipe(ctx, params); err != nil {
			return fmt.Errorf("updating recipe: %w", err)
		}

		if in.Ingredients != nil {
			if err := ReplaceIngredients(ctx, q, id, *in.Ingredients); err != nil {
				return err
			}
		}
		if in.Tags != nil {
			if err := ReplaceTags(ctx, q, id, *in.Tags); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		s.discardImage(ctx, newImageKey)
		return Detail{}, err
	}
	if newImageKey != "" && oldImageKey != newImageKey {
		s.discardImage(ctx, oldImageKey)
	}

	return s.Get(ctx, p, id)
}

// Delete removes the recipe and, through cascades, every favorite, cart
// entry and composition row that references it.
func (s *Service) Delete(ctx context.Context, p principal.Principal, id int64) error {
	if !p.IsAuthenticated() {
		return domain.ErrUnauthenticated
	}

	current, err := s.db.GetRecipe(ctx, id)
	if database.IsNoRows(err) {
		return domain.NotFound("recipe", id)
	} else if err != nil {
		return fmt.Errorf("getting recipe: %w", err)
	}
	if !p.CanModify(current.AuthorID) {
		return domain.ErrForbidden
	}

	deleted, err := s.db.DeleteRecipe(ctx, id)
	if database.IsNoRows(err) {
		return domain.NotFound("recipe", id)
	} else if err != nil {
		return fmt.Errorf("deleting recipe: %w", err)
	}

	s.discardImage(ctx, deleted.ImageKey)
	return nil
}
