package grpcserver

import (
	"context"
	"fmt"
	"strings"

	"github.com/ccfreem/sickfits/internal/constants"
	"github.com/ccfreem/sickfits/internal/model"
	"google.golang.org/grpc/metadata"
)

type SessionAuthenticator interface {
	Authenticate(ctx context.Context, rawToken string) (*model.Session, error)
}

type IAuthorizer interface {
	AuthorizUser(ctx context.Context) (*model.Session, error)
}

type Authorizer struct {
	authenticator SessionAuthenticator
}

func NewAuthorizor(authenticator SessionAuthenticator) IAuthorizer {
	if authenticator == nil {
		panic("authorizer initialization failed: authenticator cannot be nil")
	}
	return &Authorizer{
		authenticator: authenticator,
	}
}

/*
metadata from ctx => authorization header => "Bearer <token>" => same session check as the cookie
*/
func (auth *Authorizer) AuthorizUser(ctx context.Context) (*model.Session, error) {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return nil, fmt.Errorf("missing metadata")
	}

	values := md.Get(string(constants.AuthorizationHeaderKey))
	if len(values) == 0 {
		return nil, fmt.Errorf("missing authorization header")
	}
	authHeader := strings.Fields(values[0])
	if len(authHeader) != 2 {
		return nil, fmt.Errorf("invalid auth format")
	}
	authType := strings.ToLower(authHeader[0])
	if authType != string(constants.AuthorizationTypeBearer) {
		return nil, fmt.Errorf("unsupported authorization type: %s", authType)
	}

	session, err := auth.authenticator.Authenticate(ctx, authHeader[1])
	if err != nil {
		return nil, fmt.Errorf("invalid access token: %w", err)
	}
	return session, nil
}
