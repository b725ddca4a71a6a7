package middleware

import (
	"context"
	"net/http"

	"github.com/angelmondragon/obsidian-storefront/api/responses"
	"github.com/angelmondragon/obsidian-storefront/pkg/logger"
)

// ErrorWriter renders err for the surface a middleware is mounted on: JSON
// envelopes for the API, HTML pages for the storefront.
type ErrorWriter func(ctx context.Context, w http.ResponseWriter, err error)

// JSONErrors writes errors as API envelopes.
func JSONErrors(logg *logger.Logger) ErrorWriter {
	return func(ctx context.Context, w http.ResponseWriter, err error) {
		responses.WriteError(ctx, logg, w, err)
	}
}

func orJSON(writeErr ErrorWriter, logg *logger.Logger) ErrorWriter {
	if writeErr == nil {
		return JSONErrors(logg)
	}
	return writeErr
}
