package controllers

import (
	pkgerrors "github.com/angelmondragon/obsidian-storefront/pkg/errors"
)

func badForm(err error) error {
	return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid form submission")
}

// notice extracts the message a shopper should see for a rejected cart update.
func notice(err error) string {
	if typed := pkgerrors.As(err); typed != nil {
		return typed.Message()
	}
	return err.Error()
}
