// Package tags contains handlers for the tag resource.
package tags

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/matt-dz/foodgram/internal/api/respond"
	"github.com/matt-dz/foodgram/internal/api/schema"
	"github.com/matt-dz/foodgram/internal/database"
	"github.com/matt-dz/foodgram/internal/domain"
	"github.com/matt-dz/foodgram/internal/env"
)

type CreateTagRequest struct {
	Name  string `json:"name" validate:"required,max=200"`
	Color string `json:"color" validate:"required,namedcolor"`
	Slug  string `json:"slug" validate:"required,max=200,slug"`
}

// HandleListTags godoc
//
//	@Summary	List all tags.
//	@Tags		Tag
//
//	@Produce	json
//	@Success	200	{array}	schema.Tag
//	@Router		/api/tags/ [GET]
func HandleListTags(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	env := env.EnvFromCtx(ctx)

	env.Logger.DebugContext(ctx, "Listing tags")
	tags, err := env.Database.ListTags(ctx)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, r, http.StatusOK, schema.NewTags(tags))
}

// HandleGetTag godoc
//
//	@Summary	Get a tag.
//	@Tags		Tag
//
//	@Produce	json
//	@Param		id	path		int	true	"Tag ID"
//	@Success	200	{object}	schema.Tag
//	@Failure	404	{object}	apiError.Error	"Not found"
//	@Router		/api/tags/{id}/ [GET]
func HandleGetTag(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	env := env.EnvFromCtx(ctx)

	id, ok := respond.PathID(w, r, "id", "tag")
	if !ok {
		return
	}

	env.Logger.DebugContext(ctx, "Retrieving tag", slog.Int64("id", id))
	tag, err := env.Database.GetTag(ctx, id)
	if database.IsNoRows(err) {
		respond.Error(w, r, domain.NotFound("tag", id))
		return
	} else if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, r, http.StatusOK, schema.NewTag(tag))
}

// HandleCreateTag godoc
//
//	@Summary		Create a tag.
//	@Description	Admin only. The color must be a hex value that maps to a CSS color name.
//	@Tags			Tag
//
//	@Accept			json
//	@Produce		json
//	@Security		TokenAuth
//	@Param			request	body		CreateTagRequest	true	"Create Tag Request"
//	@Success		201		{object}	schema.Tag
//	@Failure		400		{object}	apiError.Error	"Invalid or duplicate fields"
//	@Failure		403		{object}	apiError.Error	"Not an admin"
//	@Router			/api/tags/ [POST]
func HandleCreateTag(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	env := env.EnvFromCtx(ctx)

	var request CreateTagRequest
	if !respond.Decode(w, r, &request) {
		return
	}

	env.Logger.DebugContext(ctx, "Creating tag", slog.String("slug", request.Slug))
	tag, err := env.Database.CreateTag(ctx, database.CreateTagParams{
		Name:  request.Name,
		Color: strings.ToLower(request.Color),
		Slug:  request.Slug,
	})
	switch {
	case database.IsUniqueViolation(err, "tags_name_key"):
		respond.Error(w, r, domain.Invalid("name", "a tag with this name already exists"))
		return
	case database.IsUniqueViolation(err, "tags_slug_key"):
		respond.Error(w, r, domain.Invalid("slug", "a tag with this slug already exists"))
		return
	case err != nil:
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, r, http.StatusCreated, schema.NewTag(tag))
}
