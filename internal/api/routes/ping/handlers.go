// Package ping contains handlers for pinging the server
package ping

import (
	"net/http"

	"github.com/matt-dz/foodgram/internal/api/respond"
)

type Response struct {
	Message string `json:"message"`
}

// HandlePing godoc
//
//	@Summary	Ping endpoint.
//	@Tags		Ping
//
//	@Produce	json
//	@Success	200	{object}	Response
//	@Router		/api/ping [GET]
func HandlePing(w http.ResponseWriter, r *http.Request) {
	respond.JSON(w, r, http.StatusOK, Response{Message: "pong"})
}
