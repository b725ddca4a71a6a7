package shopify

import (
	"fmt"

	pkgerrors "github.com/angelmondragon/obsidian-storefront/pkg/errors"
	"go.uber.org/multierr"
)

func notConfigured(cause error) error {
	reasons := make([]string, 0, 2)
	for _, err := range multierr.Errors(cause) {
		reasons = append(reasons, err.Error())
	}
	return pkgerrors.Wrap(pkgerrors.CodeNotConfigured, cause, "shopify storefront is not configured").
		WithDetails(map[string]any{"missing": reasons})
}

func upstream(op string, cause error) error {
	return pkgerrors.Wrap(pkgerrors.CodeUpstream, cause, fmt.Sprintf("%s request failed", op))
}

func malformed(op string, cause error) error {
	return pkgerrors.Wrap(pkgerrors.CodeUpstream, cause, fmt.Sprintf("%s returned an unexpected response", op))
}

// cartOperation keeps the remote message verbatim so it can be shown to the shopper.
func cartOperation(op string, userErr userErrorNode) error {
	return pkgerrors.New(pkgerrors.CodeCartOperation, userErr.Message).
		WithDetails(map[string]any{"operation": op, "field": userErr.Field})
}

func invalidInput(message string) error {
	return pkgerrors.New(pkgerrors.CodeValidation, message)
}

// IsNotConfigured reports whether err means the gateway is missing its settings.
func IsNotConfigured(err error) bool {
	return pkgerrors.HasCode(err, pkgerrors.CodeNotConfigured)
}

// IsUpstream reports whether err is a transport, protocol or shape failure.
func IsUpstream(err error) bool {
	return pkgerrors.HasCode(err, pkgerrors.CodeUpstream)
}

// IsCartOperation reports whether err is a user error returned by a cart mutation.
func IsCartOperation(err error) bool {
	return pkgerrors.HasCode(err, pkgerrors.CodeCartOperation)
}
