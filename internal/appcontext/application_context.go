package appcontext

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/ccfreem/sickfits/internal/api/graph"
	"github.com/ccfreem/sickfits/internal/api/grpcserver"
	"github.com/ccfreem/sickfits/internal/api/router"
	"github.com/ccfreem/sickfits/internal/config"
	"github.com/ccfreem/sickfits/internal/constants"
	"github.com/ccfreem/sickfits/internal/infra/cache"
	"github.com/ccfreem/sickfits/internal/infra/event"
	"github.com/ccfreem/sickfits/internal/infra/mail"
	"github.com/ccfreem/sickfits/internal/infra/payment"
	"github.com/ccfreem/sickfits/internal/infra/repository/db"
	"github.com/ccfreem/sickfits/internal/infra/repository/db/memstore"
	"github.com/ccfreem/sickfits/internal/infra/repository/db/sqlc"
	"github.com/ccfreem/sickfits/internal/model"
	"github.com/ccfreem/sickfits/internal/ratelimit"
	"github.com/ccfreem/sickfits/internal/service"
	"github.com/ccfreem/sickfits/internal/token"
	"github.com/ccfreem/sickfits/internal/worker"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

const (
	cachePrefix        = "sickfits"
	kafkaRetryAttempts = 3
	mailFromName       = "Sick Fits"
	httpReadTimeout    = 10 * time.Second
	httpWriteTimeout   = 30 * time.Second
	httpIdleTimeout    = 60 * time.Second
	dbConnectTimeout   = 10 * time.Second
)

type ApplicationContext struct {
	Cf               *config.Config
	Logger           zerolog.Logger
	PermissionConfig *config.PermissionConfig

	DbConn      *pgxpool.Pool
	DbDao       db.IStore
	RedisClient *redis.Client
	Cache       cache.Cache
	TokenMaker  token.Maker
	Publisher   event.Publisher
	Gateway     payment.Gateway
	EmailSender mail.EmailSender
	Limiter     ratelimit.ILimiter

	PermissionService service.IPermissionService
	SessionService    service.ISessionService
	UserService       service.IUserService
	MailService       service.IMailService
	AuthService       service.IAuthService
	ItemService       service.IItemService
	CartService       service.ICartService
	OrderService      service.IOrderService
	CheckoutService   service.ICheckoutService

	CheckoutResumer *worker.CheckoutResumer
	HttpServer      *http.Server
	GrpcServer      *grpcserver.Server
}

func NewApplicationContext(cf *config.Config) (*ApplicationContext, error) {
	if err := cf.Validate(); err != nil {
		return nil, err
	}
	app := ApplicationContext{
		Cf: cf,
	}

	err := app.Init()
	if err != nil {
		app.closeResources()
		return nil, err
	}

	return &app, nil
}

func (app *ApplicationContext) Init() error {
	app.setUpLogger()
	app.Logger.Info().
		Str("env", app.Cf.Env).
		Str("db_driver", app.Cf.DbDriver).
		Str("server_port", app.Cf.ServerPort).
		Str("grpc_port", app.Cf.GrpcPort).
		Bool("redis", app.Cf.RedisAddr != "").
		Bool("kafka", len(app.Cf.Brokers()) > 0).
		Bool("stripe", app.Cf.StripeSecretKey != "").
		Bool("smtp", app.Cf.SmtpHost != "").
		Msg("loaded config")

	steps := []struct {
		name string
		fn   func() error
	}{
		{"database connection", app.setUpDbConn},
		{"database DAO", app.setUpDbDao},
		{"db init", app.dbInit},
		{"cache", app.setUpCache},
		{"token maker", app.setUpTokenMaker},
		{"permission config", app.setUpPermissionConfig},
		{"event publisher", app.setUpPublisher},
		{"payment gateway", app.setUpGateway},
		{"email sender", app.setUpEmailSender},
		{"rate limiter", app.setUpLimiter},
		{"services", app.setUpServices},
		{"checkout resumer", app.setUpCheckoutResumer},
		{"HTTP server", app.setUpHttpServer},
		{"gRPC server", app.setUpGrpcServer},
	}
	for _, step := range steps {
		app.Logger.Info().Msgf("Start setup %s", step.name)
		if err := step.fn(); err != nil {
			return fmt.Errorf("setup %s: %w", step.name, err)
		}
		app.Logger.Info().Msgf("Finish setup %s", step.name)
	}
	return nil
}

func (app *ApplicationContext) setUpLogger() {
	level, err := zerolog.ParseLevel(strings.ToLower(app.Cf.LogLevel))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	var out io.Writer = os.Stdout
	if app.Cf.IsDev() {
		out = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	}
	app.Logger = zerolog.New(out).Level(level).With().Timestamp().Str("service", cachePrefix).Logger()

	// zerolog.Ctx falls back to this outside of requests, e.g. in the worker
	zerolog.DefaultContextLogger = &app.Logger
	log.Logger = app.Logger
}

func (app *ApplicationContext) setUpDbConn() error {
	if app.Cf.DbDriver == "memory" {
		app.Logger.Warn().Msg("DB_DRIVER=memory, data is lost on restart")
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), dbConnectTimeout)
	defer cancel()
	conn, err := pgxpool.New(ctx, app.Cf.PostgresURL())
	if err != nil {
		return err
	}
	if err := conn.Ping(ctx); err != nil {
		conn.Close()
		return err
	}
	app.DbConn = conn

	if app.Cf.DbMigrate {
		if err := db.RunDBMigration(app.Cf.PostgresURL()); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}

func (app *ApplicationContext) setUpDbDao() error {
	if app.DbConn == nil {
		app.DbDao = memstore.New()
		return nil
	}
	app.DbDao = db.NewStore(app.DbConn)
	return nil
}

func (app *ApplicationContext) setUpCache() error {
	if app.Cf.RedisAddr == "" {
		app.Cache = cache.NewMemoryCache()
		return nil
	}

	app.RedisClient = cache.GetRedisClient(app.Cf.RedisAddr,
		cache.WithPassword(app.Cf.RedisPassword),
		cache.WithDB(app.Cf.RedisDB),
	)
	redisCache := cache.NewRedisCache(app.RedisClient, cachePrefix)

	ctx, cancel := context.WithTimeout(context.Background(), dbConnectTimeout)
	defer cancel()
	if err := redisCache.Ping(ctx); err != nil {
		return err
	}
	app.Cache = redisCache
	return nil
}

func (app *ApplicationContext) setUpTokenMaker() error {
	tokenMaker, err := token.NewJWTMaker(app.Cf.AppSecret)
	if err != nil {
		return err
	}
	app.TokenMaker = tokenMaker
	return nil
}

func (app *ApplicationContext) setUpPermissionConfig() error {
	permissionConfig, err := config.LoadPermissionConfig(app.Cf.PermissionConfig)
	if err != nil {
		return err
	}
	app.PermissionConfig = permissionConfig
	return nil
}

func (app *ApplicationContext) setUpPublisher() error {
	brokers := app.Cf.Brokers()
	if len(brokers) == 0 {
		app.Publisher = event.NopPublisher{}
		return nil
	}
	writer := event.NewKafkaWriter(brokers, app.Cf.OrderEventsTopic)
	app.Publisher = event.NewKafkaPublisher(writer, app.Cf.OrderEventsTopic, kafkaRetryAttempts)
	return nil
}

func (app *ApplicationContext) setUpGateway() error {
	if app.Cf.StripeSecretKey == "" {
		if !app.Cf.IsDev() {
			return errors.New("STRIPE_SECRET_KEY is required outside development")
		}
		app.Logger.Warn().Msg("no STRIPE_SECRET_KEY, using the sandbox payment gateway")
		app.Gateway = payment.NewSandboxGateway()
		return nil
	}
	app.Gateway = payment.NewStripeGateway(app.Cf.StripeSecretKey)
	return nil
}

func (app *ApplicationContext) setUpEmailSender() error {
	if app.Cf.SmtpHost == "" {
		app.EmailSender = mail.NewLogSender(app.Logger)
		return nil
	}
	app.EmailSender = mail.NewSMTPSender(mail.SMTPConfig{
		Host:     app.Cf.SmtpHost,
		Port:     app.Cf.SmtpPort,
		User:     app.Cf.SmtpUser,
		Password: app.Cf.SmtpPassword,
		From:     app.Cf.MailFrom,
		FromName: mailFromName,
	})
	return nil
}

func (app *ApplicationContext) setUpLimiter() error {
	limiterConfig := ratelimit.GetDefaultLimiterConfig()
	limiterConfig.Prefix = cachePrefix + ":ratelimit"
	if app.Cf.RateLimitCapacity > 0 {
		limiterConfig.Capacity = app.Cf.RateLimitCapacity
	}
	if app.Cf.RateLimitRatePS > 0 {
		limiterConfig.RatePS = app.Cf.RateLimitRatePS
	}

	if app.RedisClient != nil {
		app.Limiter = ratelimit.NewRedisLimiter(app.RedisClient, &limiterConfig)
		return nil
	}
	app.Limiter = ratelimit.NewMemoryLimiter(&limiterConfig)
	return nil
}

func (app *ApplicationContext) setUpServices() error {
	app.PermissionService = service.NewPermissionService(app.PermissionConfig)
	app.SessionService = service.NewSessionService(app.TokenMaker, app.Cache)
	app.UserService = service.NewUserService(app.DbDao, app.PermissionService)
	app.MailService = service.NewMailService(app.EmailSender)
	app.AuthService = service.NewAuthService(app.DbDao, app.UserService, app.SessionService, app.MailService, app.PermissionService, app.Cf.FrontendURL)
	app.ItemService = service.NewItemService(app.DbDao, app.UserService, app.PermissionService)
	app.CartService = service.NewCartService(app.DbDao, app.UserService)
	app.OrderService = service.NewOrderService(app.DbDao, app.UserService, app.PermissionService)
	app.CheckoutService = service.NewCheckoutService(app.DbDao, app.UserService, app.Cache, app.Gateway, app.Publisher, app.MailService)
	return nil
}

func (app *ApplicationContext) setUpCheckoutResumer() error {
	app.CheckoutResumer = worker.NewCheckoutResumer(app.CheckoutService, app.Cf.CheckoutResumeInterval, app.Logger)
	return nil
}

func (app *ApplicationContext) setUpHttpServer() error {
	resolver := graph.NewResolver(
		app.AuthService,
		app.UserService,
		app.ItemService,
		app.CartService,
		app.OrderService,
		app.CheckoutService,
		!app.Cf.IsDev(),
	)
	r := router.SetupRouter(&router.Server{
		GraphHandler:  graph.NewHandler(resolver),
		Authenticator: app.AuthService,
		Limiter:       app.Limiter,
		FrontendURL:   app.Cf.FrontendURL,
	}, app.Logger)

	app.HttpServer = &http.Server{
		Addr:         fmt.Sprintf(":%s", app.Cf.ServerPort),
		Handler:      r,
		ReadTimeout:  httpReadTimeout,
		WriteTimeout: httpWriteTimeout,
		IdleTimeout:  httpIdleTimeout,
	}
	return nil
}

func (app *ApplicationContext) setUpGrpcServer() error {
	app.GrpcServer = grpcserver.NewServer(app.AuthService, app.Logger)
	return nil
}

// db seed data: the first admin account, when ADMIN_EMAIL is set
func (app *ApplicationContext) dbInit() error {
	email := strings.ToLower(strings.TrimSpace(app.Cf.AdminEmail))
	if email == "" {
		return nil
	}
	if app.Cf.AdminPassword == "" {
		return errors.New("ADMIN_PASSWORD is required with ADMIN_EMAIL")
	}

	ctx := context.Background()
	var seeded bool
	var setAdmin = func(q sqlc.Querier) error {
		_, err := q.GetUserByEmail(ctx, email)
		if err == nil {
			return nil
		}
		if !db.IsNoRows(err) {
			return err
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(app.Cf.AdminPassword), constants.BcryptCost)
		if err != nil {
			return err
		}
		now := time.Now().UTC()
		_, err = q.CreateUser(ctx, sqlc.CreateUserParams{
			ID:          db.PgUUID(uuid.New()),
			Name:        app.Cf.AdminName,
			Email:       email,
			Password:    string(hash),
			Permissions: model.Permissions(model.AllPermissions).Strings(),
			CreatedAt:   now,
			UpdatedAt:   now,
		})
		seeded = err == nil
		return err
	}

	if err := app.DbDao.ExecMultiTx(ctx, []func(sqlc.Querier) error{setAdmin}); err != nil {
		return err
	}
	if seeded {
		app.Logger.Info().Str("email", email).Msg("seeded admin user")
	}
	return nil
}

// Shutdown stops the servers, then releases every connection.
// The checkout resumer stops with the context passed to its Run.
func (app *ApplicationContext) Shutdown(ctx context.Context) error {
	app.Logger.Info().Msg("Start application shutdown")

	done := make(chan error, 1)
	go func() {
		var errs []error
		if app.GrpcServer != nil {
			app.GrpcServer.GracefulStop()
		}
		if app.HttpServer != nil {
			if err := app.HttpServer.Shutdown(ctx); err != nil {
				errs = append(errs, fmt.Errorf("http server: %w", err))
			}
		}
		errs = append(errs, app.closeResources())

		app.Logger.Info().Msg("Application shutdown complete")
		done <- errors.Join(errs...)
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return fmt.Errorf("shutdown timeout: %w", ctx.Err())
	}
}

func (app *ApplicationContext) closeResources() error {
	var errs []error
	if app.Limiter != nil {
		app.Limiter.Stop()
	}
	if app.Publisher != nil {
		if err := app.Publisher.Close(); err != nil {
			errs = append(errs, fmt.Errorf("event publisher: %w", err))
		}
	}
	if app.Cache != nil {
		if err := app.Cache.Close(); err != nil {
			errs = append(errs, fmt.Errorf("cache: %w", err))
		}
	}
	if app.DbConn != nil {
		app.DbConn.Close()
	}
	return errors.Join(errs...)
}
