package middleware

import (
	"fmt"
	"net/http"

	pkgerrors "github.com/angelmondragon/obsidian-storefront/pkg/errors"
	"github.com/angelmondragon/obsidian-storefront/pkg/logger"
)

func Recoverer(logg *logger.Logger, writeErr ErrorWriter) func(http.Handler) http.Handler {
	writeErr = orJSON(writeErr, logg)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					if rec == http.ErrAbortHandler {
						panic(rec)
					}
					err := fmt.Errorf("panic: %v", rec)
					ctx := r.Context()
					if logg != nil {
						ctx = logg.WithFields(ctx, map[string]any{"panic": rec})
						logg.Error(ctx, "panic.recovered", err)
					}
					writeErr(ctx, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "panic"))
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
