package errors

import (
	"errors"
	"fmt"

	"github.com/vektah/gqlparser/v2/gqlerror"
)

type ErrorDump struct {
	TopMessage string `json:"top_message"`
	Code       Code   `json:"code,omitempty"`

	Chain []string `json:"chain,omitempty"`

	GraphQLMessages []string `json:"graphql_messages,omitempty"`
	GraphQLPaths    []string `json:"graphql_paths,omitempty"`
}

func Dump(err error) ErrorDump {
	if err == nil {
		return ErrorDump{}
	}

	d := ErrorDump{
		TopMessage: err.Error(),
	}

	if te := As(err); te != nil {
		d.Code = te.Code()
	}

	for e := err; e != nil; e = errors.Unwrap(e) {
		d.Chain = append(d.Chain, fmt.Sprintf("%T: %v", e, e))
	}

	var list gqlerror.List
	if errors.As(err, &list) {
		for _, gqlErr := range list {
			if gqlErr == nil {
				continue
			}
			d.GraphQLMessages = append(d.GraphQLMessages, gqlErr.Message)
			if len(gqlErr.Path) > 0 {
				d.GraphQLPaths = append(d.GraphQLPaths, gqlErr.Path.String())
			}
		}
		return d
	}

	var single *gqlerror.Error
	if errors.As(err, &single) && single != nil {
		d.GraphQLMessages = append(d.GraphQLMessages, single.Message)
		if len(single.Path) > 0 {
			d.GraphQLPaths = append(d.GraphQLPaths, single.Path.String())
		}
	}

	return d
}
