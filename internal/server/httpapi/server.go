// Package httpapi exposes the REST surface of the task manager: account
// sign-up/login/profile, avatar handling and owned-task CRUD.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tzetzo/task-manager-api/internal/logging"
	"github.com/tzetzo/task-manager-api/internal/server/config"
	"github.com/tzetzo/task-manager-api/internal/server/models"
	"github.com/tzetzo/task-manager-api/internal/server/services"
)

// AccountService is the account surface consumed by the handlers.
type AccountService interface {
	Register(ctx context.Context, in services.RegisterInput) (*models.Account, error)
	FindByCredentials(ctx context.Context, email, password string) (*models.Account, error)
	IssueToken(ctx context.Context, account *models.Account) (string, error)
	Get(ctx context.Context, id string) (*models.Account, error)
	HasToken(ctx context.Context, accountID, token string) (bool, error)
	Update(ctx context.Context, account *models.Account, in services.UpdateInput) (*models.Account, error)
	Delete(ctx context.Context, account *models.Account) error
	RevokeToken(ctx context.Context, accountID, token string) error
	RevokeAllTokens(ctx context.Context, accountID string) error
	UpdateAvatar(ctx context.Context, account *models.Account, avatar []byte) error
	RemoveAvatar(ctx context.Context, account *models.Account) error
}

// TaskService is the owned-task surface consumed by the handlers.
type TaskService interface {
	Create(ctx context.Context, ownerID string, in services.CreateTaskInput) (*models.Task, error)
	ListOwned(ctx context.Context, ownerID string) ([]models.Task, error)
	Get(ctx context.Context, ownerID, id string) (*models.Task, error)
	Update(ctx context.Context, ownerID, id string, in services.UpdateTaskInput) (*models.Task, error)
	Delete(ctx context.Context, ownerID, id string) error
}

type Server struct {
	addr            string
	shutdownTimeout time.Duration
	logger          logging.Logger
	jwtSecret       []byte
	accounts        AccountService
	tasks           TaskService
	router          *gin.Engine
}

func NewServer(cfg *config.Config, logger logging.Logger, accounts AccountService, tasks TaskService) *Server {
	s := &Server{
		addr:            cfg.EndpointAddrHTTP,
		shutdownTimeout: cfg.ShutdownTimeout,
		logger:          logger,
		jwtSecret:       []byte(cfg.SecretKey),
		accounts:        accounts,
		tasks:           tasks,
	}
	s.router = s.buildRouter()
	return s
}

func (s *Server) buildRouter() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(s.requestLog())

	r.POST("/users", s.signUp)
	r.POST("/users/login", s.login)
	r.GET("/users/:id/avatar", s.getAvatar)

	authed := r.Group("/", s.requireAuth())
	authed.POST("/users/logout", s.logout)
	authed.POST("/users/logoutAll", s.logoutAll)
	authed.GET("/users/me", s.me)
	authed.PATCH("/users/me", s.updateMe)
	authed.DELETE("/users/me", s.deleteMe)
	authed.POST("/users/me/avatar", s.uploadAvatar)
	authed.DELETE("/users/me/avatar", s.deleteAvatar)

	authed.POST("/tasks", s.createTask)
	authed.GET("/tasks", s.listTasks)
	authed.GET("/tasks/:id", s.getTask)
	authed.PATCH("/tasks/:id", s.updateTask)
	authed.DELETE("/tasks/:id", s.deleteTask)

	return r
}

// Handler returns the router; used by tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) requestLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Info(c.Request.Context(), "request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start).String(),
		)
	}
}

// Run serves until ctx is cancelled, then drains in-flight requests within
// the shutdown timeout.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.addr,
		Handler: s.router,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	s.logger.Info(ctx, "http server listening", "addr", s.addr)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}
