// Package httpserver manages server creation and api routing.
package httpserver

import (
	"database/sql"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/maktab-app/maktab-wallet/internal/accountdelivery"
	"github.com/maktab-app/maktab-wallet/internal/accountrepo"
	"github.com/maktab-app/maktab-wallet/internal/accountservice"
	"github.com/maktab-app/maktab-wallet/internal/classdelivery"
	"github.com/maktab-app/maktab-wallet/internal/classrepo"
	"github.com/maktab-app/maktab-wallet/internal/classservice"
	"github.com/maktab-app/maktab-wallet/internal/entrydelivery"
	"github.com/maktab-app/maktab-wallet/internal/entryrepo"
	"github.com/maktab-app/maktab-wallet/internal/entryservice"
	"github.com/maktab-app/maktab-wallet/internal/events"
	"github.com/maktab-app/maktab-wallet/internal/events/kafka"
	"github.com/maktab-app/maktab-wallet/internal/middleware"
	"github.com/maktab-app/maktab-wallet/internal/postdelivery"
	"github.com/maktab-app/maktab-wallet/internal/postrepo"
	"github.com/maktab-app/maktab-wallet/internal/postservice"
	"github.com/maktab-app/maktab-wallet/internal/sessiondelivery"
	"github.com/maktab-app/maktab-wallet/internal/sessionrepo"
	"github.com/maktab-app/maktab-wallet/internal/sessionservice"
	"github.com/maktab-app/maktab-wallet/internal/transferdelivery"
	"github.com/maktab-app/maktab-wallet/internal/transferrepo"
	"github.com/maktab-app/maktab-wallet/internal/transferservice"
	"github.com/maktab-app/maktab-wallet/internal/userdelivery"
	"github.com/maktab-app/maktab-wallet/internal/userrepo"
	"github.com/maktab-app/maktab-wallet/internal/userservice"
	"github.com/maktab-app/maktab-wallet/pkg/configpkg"
	"github.com/maktab-app/maktab-wallet/pkg/moneypkg"
	"github.com/maktab-app/maktab-wallet/pkg/tokenpkg"
)

// Server holds db connection, handlers router and configuration.
type Server struct {
	DB     *sql.DB
	Engine *gin.Engine
	Config configpkg.Config
}

// ServeHTTP implements the http.Handler interface for the Server type.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Engine.ServeHTTP(w, r)
}

// New creates Server type with instantiated domains and routes. The conn
// argument is ignored when the memory driver is configured.
func New(conn *sql.DB, logger zerolog.Logger, config configpkg.Config) (*Server, error) {
	var (
		userRepo     userservice.Repo
		accountRepo  accountservice.Repo
		entryRepo    entryservice.Repo
		transferRepo transferservice.Repo
		sessionRepo  sessionservice.Repo
		classRepo    classservice.Repo
		postRepo     postservice.Repo
	)

	if config.DBDriver == "memory" {
		lockWait := config.AccountLockWait
		if lockWait == 0 {
			lockWait = accountrepo.DefaultLockWait
		}

		accounts := accountrepo.NewRepoMem(lockWait)
		entries := entryrepo.NewRepoMem()

		userRepo = userrepo.NewRepoMem()
		accountRepo = accounts
		entryRepo = entries
		transferRepo = transferrepo.NewRepoMem(accounts, entries)
		sessionRepo = sessionrepo.NewRepoMem()
		classRepo = classrepo.NewRepoMem()
		postRepo = postrepo.NewRepoMem()
	} else {
		userRepo = userrepo.NewRepoPGS(conn)
		accountRepo = accountrepo.NewRepoPGS(conn)
		entryRepo = entryrepo.NewRepoPGS(conn)
		transferRepo = transferrepo.NewRepoPGS(conn)
		sessionRepo = sessionrepo.NewRepoPGS(conn)
		classRepo = classrepo.NewRepoPGS(conn)
		postRepo = postrepo.NewRepoPGS(conn)
	}

	var publisher transferservice.EventPublisher = events.NopPublisher{}
	if config.KafkaBrokers != "" {
		publisher = kafka.NewPublisher(strings.Split(config.KafkaBrokers, ","), events.TopicEntries)
	}

	tokenMaker, err := tokenpkg.NewPasetoMaker(config.TokenSymmetricKey)
	if err != nil {
		return nil, errors.New("cannot create token maker")
	}

	accountService := accountservice.New(accountRepo)
	userService := userservice.New(userRepo, accountService)
	entryService := entryservice.New(entryRepo, accountService)
	transferService := transferservice.New(transferRepo, accountService, publisher)
	classService := classservice.New(classRepo, accountService, transferService)
	postService := postservice.New(postRepo)

	sessionService, err := sessionservice.New(sessionRepo, config, tokenMaker)
	if err != nil {
		return nil, errors.New("cannot initialize session service")
	}

	userHandler := userdelivery.NewHandler(userService, sessionService)
	sessionHandler := sessiondelivery.NewHandler(sessionService)
	accountHandler := accountdelivery.NewHandler(accountService)
	transferHandler := transferdelivery.NewHandler(transferService)
	entryHandler := entrydelivery.NewHandler(entryService, userService)
	classHandler := classdelivery.NewHandler(classService, userService)
	postHandler := postdelivery.NewHandler(postService, userService)

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(middleware.RequestLogger(logger))
	engine.Use(gin.Recovery())

	engine.POST("/users", userHandler.Create)
	engine.POST("/users/login", userHandler.Login)
	engine.POST("/sessions", sessionHandler.RenewAccessToken)

	authRoutes := engine.Group("/").Use(middleware.AuthMiddleware(sessionService.TokenMaker))

	authRoutes.GET("/wallet", accountHandler.Get)
	authRoutes.POST("/wallet/close", accountHandler.Close)
	authRoutes.POST("/wallet/topup", transferHandler.TopUp)
	authRoutes.GET("/wallet/entries", entryHandler.List)

	authRoutes.POST("/transfers", transferHandler.Create)
	authRoutes.GET("/entries", entryHandler.ListByDateRange)

	authRoutes.GET("/classes", classHandler.List)
	authRoutes.GET("/classes/:id", classHandler.Get)
	authRoutes.POST("/classes", classHandler.Create)
	authRoutes.POST("/classes/:id/join", classHandler.Join)

	authRoutes.GET("/posts", postHandler.List)
	authRoutes.GET("/posts/:id", postHandler.Get)
	authRoutes.POST("/posts", postHandler.Create)
	authRoutes.PUT("/posts/:id", postHandler.Update)
	authRoutes.DELETE("/posts/:id", postHandler.Delete)
	authRoutes.POST("/posts/:id/like", postHandler.Like)
	authRoutes.POST("/posts/:id/feature", postHandler.Feature)

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		err := v.RegisterValidation("topupamount", moneypkg.ValidTopUpAmount)
		if err != nil {
			return nil, errors.New("cannot register top-up amount validator")
		}
	}

	server := &Server{
		DB:     conn,
		Engine: engine,
		Config: config,
	}

	return server, nil
}
