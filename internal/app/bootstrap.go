package app

import (
	"context"
	"fmt"
	"strings"

	"skill-exchange/internal/config"
	"skill-exchange/internal/delivery/http/handler"
	"skill-exchange/internal/delivery/http/middleware"
	"skill-exchange/internal/delivery/http/routes"
	v1 "skill-exchange/internal/delivery/http/routes/v1"
	"skill-exchange/internal/domain/chat"
	"skill-exchange/internal/domain/matching"
	"skill-exchange/internal/domain/rating"
	"skill-exchange/internal/domain/user"
	"skill-exchange/internal/pkg/jwt"
	"skill-exchange/internal/repository"
	ucauth "skill-exchange/internal/usecase/auth"
	ucchat "skill-exchange/internal/usecase/chat"
	ucmatch "skill-exchange/internal/usecase/match"
	ucprofile "skill-exchange/internal/usecase/profile"
	ucrating "skill-exchange/internal/usecase/rating"
	"skill-exchange/internal/ws"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"
)

type App struct {
	Fiber *fiber.App
}

// Deps are the stores and services the HTTP surface is built from.
type Deps struct {
	Users    user.Repository
	Chats    chat.Repository
	Messages chat.MessageRepository
	Ratings  rating.Repository
	Oracle   *matching.Oracle
	Hub      *ws.Hub
	DB       handler.Pinger
	Cache    handler.Pinger
}

func New(cfg config.Config, deps Deps, logger *zap.Logger) *App {
	if logger == nil {
		logger = zap.NewNop()
	}
	if deps.Oracle == nil {
		deps.Oracle = matching.NewExactOracle()
	}

	f := fiber.New(fiber.Config{
		AppName:      cfg.App.AppName,
		ErrorHandler: middleware.ErrorHandler,
	})

	registerGlobalMiddleware(f, logger)
	routes.NewRegistry(
		handler.NewHealthHandler(deps.DB, deps.Cache, deps.Oracle.SemanticEnabled()),
		buildV1(cfg, deps, logger),
		ws.NewHandler(deps.Hub, logger),
	).Register(f)

	return &App{Fiber: f}
}

func buildV1(cfg config.Config, deps Deps, logger *zap.Logger) v1.Handlers {
	jwtSvc := jwt.NewHMACService(cfg.JWT.AccessSecret, cfg.JWT.AccessExpiresIn)
	authMw := middleware.NewAuthMiddleware(jwtSvc).Middleware()

	engine := matching.NewEngine(
		repository.NewUserDirectory(deps.Users),
		matching.NewMatcher(deps.Oracle),
		cfg.Matching.Workers,
		logger,
	)

	var notifier ucchat.Notifier
	if deps.Hub != nil {
		notifier = deps.Hub
	}

	return v1.Handlers{
		Auth:    handler.NewAuthHandler(ucauth.NewService(deps.Users, jwtSvc)),
		Profile: handler.NewProfileHandler(ucprofile.NewService(deps.Users), authMw),
		Match:   handler.NewMatchHandler(ucmatch.NewService(engine)),
		Chat:    handler.NewChatHandler(ucchat.NewService(deps.Users, deps.Chats, deps.Messages, notifier, logger), authMw),
		Rating:  handler.NewRatingHandler(ucrating.NewService(deps.Users, deps.Chats, deps.Ratings), authMw),
	}
}

// Bootstrap connects the infrastructure and wires the HTTP app on top of it.
// The returned cleanup releases everything Bootstrap opened.
func Bootstrap(ctx context.Context, cfg config.Config, logger *zap.Logger) (*App, func() error, error) {
	c, err := NewContainer(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	deps := Deps{
		Users:    repository.NewPostgresUserRepository(c.DB),
		Chats:    repository.NewPostgresChatRepository(c.DB),
		Messages: repository.NewPostgresMessageRepository(c.DB),
		Ratings:  repository.NewPostgresRatingRepository(c.DB),
		Oracle:   c.Oracle,
		Hub:      c.Hub,
		DB:       c.DB,
	}
	if cfg.Redis.Enabled {
		deps.Cache = c.Redis
	}

	return New(cfg, deps, c.Logger), c.Close, nil
}

func registerGlobalMiddleware(app *fiber.App, logger *zap.Logger) {
	if app == nil {
		return
	}

	app.Use(middleware.NewAccessLogMiddleware(logger).Middleware())
	app.Use(middleware.NewErrorMiddleware(logger).Middleware())
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
