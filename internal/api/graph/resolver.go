package graph

import (
	"context"
	_ "embed"
	"net/http"
	"reflect"
	"time"

	"github.com/ccfreem/sickfits/internal/constants"
	"github.com/ccfreem/sickfits/internal/service"
	"github.com/ccfreem/sickfits/internal/util"
	"github.com/graph-gophers/graphql-go"
	"github.com/graph-gophers/graphql-go/relay"
)

//go:embed schema.graphql
var schemaString string

const (
	maxQueryDepth  = 8
	maxParallelism = 10
)

// Resolver is the root of the query and mutation types.
// Every operation reads the caller's session from the request context and hands it to the service.
type Resolver struct {
	authService     service.IAuthService
	userService     service.IUserService
	itemService     service.IItemService
	cartService     service.ICartService
	orderService    service.IOrderService
	checkoutService service.ICheckoutService
	secureCookie    bool
}

func NewResolver(
	authService service.IAuthService,
	userService service.IUserService,
	itemService service.IItemService,
	cartService service.ICartService,
	orderService service.IOrderService,
	checkoutService service.ICheckoutService,
	secureCookie bool,
) *Resolver {
	deps := map[string]any{
		"authService":     authService,
		"userService":     userService,
		"itemService":     itemService,
		"cartService":     cartService,
		"orderService":    orderService,
		"checkoutService": checkoutService,
	}
	for name, dep := range deps {
		if dep == nil || reflect.ValueOf(dep).IsNil() {
			panic("graph resolver initialization failed: " + name + " cannot be nil")
		}
	}

	return &Resolver{
		authService:     authService,
		userService:     userService,
		itemService:     itemService,
		cartService:     cartService,
		orderService:    orderService,
		checkoutService: checkoutService,
		secureCookie:    secureCookie,
	}
}

// NewSchema parses the embedded schema against resolver. It panics when they disagree.
func NewSchema(resolver *Resolver) *graphql.Schema {
	return graphql.MustParseSchema(schemaString, resolver,
		graphql.MaxDepth(maxQueryDepth),
		graphql.MaxParallelism(maxParallelism),
	)
}

func NewHandler(resolver *Resolver) http.Handler {
	return &relay.Handler{Schema: NewSchema(resolver)}
}

func (r *Resolver) setSessionCookie(ctx context.Context, token string, expiresAt time.Time) {
	w := util.GetResponseWriterFromContext(ctx)
	if w == nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     constants.SessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		MaxAge:   int(constants.SessionDuration / time.Second),
		HttpOnly: true,
		Secure:   r.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})
}

func (r *Resolver) clearSessionCookie(ctx context.Context) {
	w := util.GetResponseWriterFromContext(ctx)
	if w == nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     constants.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   r.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})
}
