package responses

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	pkgerrors "github.com/angelmondragon/obsidian-storefront/pkg/errors"
	"github.com/angelmondragon/obsidian-storefront/pkg/logger"
)

func WriteSuccess(w http.ResponseWriter, data any) {
	WriteSuccessStatus(w, http.StatusOK, data)
}

func WriteSuccessStatus(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, Envelope{Data: data})
}

// Normalize returns err as a typed error; untyped errors become internal errors.
func Normalize(err error) *pkgerrors.Error {
	if err == nil {
		err = errors.New("unknown error")
	}
	typed := pkgerrors.As(err)
	if typed == nil {
		typed = pkgerrors.Wrap(pkgerrors.CodeInternal, err, "unexpected error")
	}
	return typed
}

// PublicMessage is the text a client may see for typed.
func PublicMessage(typed *pkgerrors.Error) string {
	meta := pkgerrors.MetadataFor(typed.Code())
	msg := meta.PublicMessage
	switch typed.Code() {
	case pkgerrors.CodeValidation,
		pkgerrors.CodeNotFound,
		pkgerrors.CodeRateLimit,
		pkgerrors.CodeNotConfigured,
		pkgerrors.CodeCartOperation:
		if m := typed.Message(); m != "" {
			msg = m
		}
	}
	return msg
}

// LogError records err with its chain and any GraphQL messages. Client
// errors are logged at warn, everything else at error.
func LogError(ctx context.Context, logg *logger.Logger, err error) {
	if logg == nil {
		return
	}
	typed := Normalize(err)
	dump := pkgerrors.Dump(err)

	fields := map[string]any{
		"error":       dump.TopMessage,
		"error_code":  dump.Code,
		"error_chain": dump.Chain,
	}
	if len(dump.GraphQLMessages) > 0 {
		fields["graphql_messages"] = dump.GraphQLMessages
		fields["graphql_paths"] = dump.GraphQLPaths
	}
	ctx = logg.WithFields(ctx, fields)

	if pkgerrors.MetadataFor(typed.Code()).HTTPStatus < http.StatusInternalServerError {
		logg.Warn(ctx, "request.rejected")
		return
	}
	logg.Error(ctx, "request.error", err)
}

func WriteError(ctx context.Context, logg *logger.Logger, w http.ResponseWriter, err error) {
	typed := Normalize(err)
	meta := pkgerrors.MetadataFor(typed.Code())

	payload := ErrorEnvelope{
		Error: ErrorBody{
			Code:      string(typed.Code()),
			Message:   PublicMessage(typed),
			RequestID: w.Header().Get(requestIDHeader),
		},
	}

	if meta.DetailsAllowed {
		if details := typed.Details(); details != nil {
			payload.Error.Details = details
		}
	}

	if err == nil {
		err = typed
	}
	LogError(ctx, logg, err)
	writeJSON(w, meta.HTTPStatus, payload)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf(`{"level":"error","msg":"failed to encode response","err":"%v"}`, err)
	}
}
