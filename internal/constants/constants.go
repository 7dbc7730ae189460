package constants

import "time"

const (
	// items listing
	DefaultItemsPageSize int32 = 4
	MaxItemsPageSize     int32 = 100
)

// for api auth
type ContextKey string

const (
	AuthorizationHeaderKey  ContextKey = "authorization"
	AuthorizationTypeBearer ContextKey = "bearer"
	SessionKey              ContextKey = "session"
	ResponseWriterKey       ContextKey = "response_writer"
	LoggerKey               ContextKey = "logger"
)

const (
	SessionCookieName = "token"
	SessionDuration   = 365 * 24 * time.Hour

	ResetTokenBytes    = 20
	ResetTokenDuration = time.Hour

	// ChargeTimeout bounds one gateway call including its retries.
	// CheckoutLockTTL must outlast it, so an expired lock means no charge is in flight.
	ChargeTimeout   = 90 * time.Second
	CheckoutLockTTL = 3 * time.Minute
	Currency        = "usd"

	BcryptCost = 10
)

type ENV string

const (
	Debug ENV = "debug"
	Dev   ENV = "development"
	Stag  ENV = "staging"
	Prod  ENV = "production"
)

type RequestID string

const (
	RequestIDKey RequestID = "request_id"
)
