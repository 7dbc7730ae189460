package graph

import (
	"context"
	"errors"

	"github.com/ccfreem/sickfits/internal/apperr"
	"github.com/google/uuid"
	"github.com/graph-gophers/graphql-go"
	"github.com/rs/zerolog"
)

// resolverError is what clients see: the public message plus extensions.code.
type resolverError struct {
	message string
	code    apperr.Kind
}

func (e *resolverError) Error() string {
	return e.message
}

func (e *resolverError) Extensions() map[string]interface{} {
	return map[string]interface{}{"code": string(e.code)}
}

// toResolverError hides causes from the client and logs the ones the client cannot act on.
func toResolverError(ctx context.Context, err error) error {
	if err == nil {
		return nil
	}
	var appErr *apperr.Error
	if !errors.As(err, &appErr) {
		appErr = apperr.Wrap(apperr.KindInternal, err, "unexpected error")
	}

	switch appErr.Kind {
	case apperr.KindInternal, apperr.KindUpstreamFailure:
		zerolog.Ctx(ctx).Error().Err(err).Str("code", string(appErr.Kind)).Msg("resolver failed")
	default:
		zerolog.Ctx(ctx).Debug().Err(err).Str("code", string(appErr.Kind)).Msg("resolver rejected request")
	}

	return &resolverError{message: appErr.PublicMessage(), code: appErr.Kind}
}

func parseID(id graphql.ID) (uuid.UUID, error) {
	parsed, err := uuid.Parse(string(id))
	if err != nil {
		return uuid.Nil, apperr.Newf(apperr.KindValidationFailed, "invalid id %q", string(id))
	}
	return parsed, nil
}
