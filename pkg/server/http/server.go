package http_server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/duccv/bank-web/config"
	"github.com/duccv/bank-web/internal/constant"
	"github.com/duccv/bank-web/pkg/metrics"
	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/timeout"
	"github.com/gin-gonic/gin"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/duccv/bank-web/docs"
)

type Server struct {
	App    *gin.Engine
	API    *gin.RouterGroup
	server *http.Server
	notify chan error

	address         string
	timeout         time.Duration
	shutdownTimeout time.Duration
	middleware      []gin.HandlerFunc
}

// New -.
func New(env *config.Env, opts ...Option) *Server {
	s := &Server{
		notify:          make(chan error, 1),
		address:         _defaultAddr,
		timeout:         _defaultTimeout,
		shutdownTimeout: _defaultShutdownTimeout,
	}

	for _, opt := range opts {
		opt(s)
	}

	s.App = s.initGinServer(env)
	s.server = &http.Server{
		Addr:              s.address,
		Handler:           s.App,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return s
}

func timeoutResponse(c *gin.Context) {
	res := constant.SERVICE_UNAVAILABLE
	res.Ec = http.StatusRequestTimeout
	res.Msg = "Request timed out"
	c.JSON(http.StatusRequestTimeout, res)
}

func timeoutMiddleware(to time.Duration) gin.HandlerFunc {
	return timeout.New(
		timeout.WithTimeout(to),
		timeout.WithResponse(timeoutResponse),
	)
}

// HealthCheck godoc
//
//	@Summary		Health Check
//	@Description	Returns status 200 if the service is running
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	map[string]string
//	@Router			/health [get]
func healthCheck(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) initGinServer(env *config.Env) *gin.Engine {
	pathPrefix := env.AppConfig.PathPrefix
	if pathPrefix == "" {
		pathPrefix = "/api"
	}
	if env.AppConfig.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else if gin.Mode() != gin.TestMode {
		gin.SetMode(gin.DebugMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())

	if env.MetricsConfig.Enabled {
		path := env.MetricsConfig.Path
		if path == "" {
			path = "/metrics"
		}
		metrics.GetMonitor(path, 5).Use(r)
	}

	if env.CORSConfig.Enabled {
		corsConfig := cors.Config{
			AllowOrigins:     env.CORSConfig.AllowedOrigins,
			AllowMethods:     env.CORSConfig.AllowedMethods,
			AllowHeaders:     env.CORSConfig.AllowedHeaders,
			ExposeHeaders:    env.CORSConfig.ExposedHeaders,
			AllowCredentials: env.CORSConfig.AllowCredentials,
			MaxAge:           time.Duration(env.CORSConfig.MaxAge) * time.Second,
		}

		r.Use(cors.New(corsConfig))
	}

	r.Use(s.middleware...)

	// Health check endpoint
	r.GET("/health", healthCheck)

	// Swagger documentation
	r.GET(pathPrefix+"/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))

	s.API = r.Group(pathPrefix, timeoutMiddleware(s.timeout))
	return r
}

// Start -.
func (s *Server) Start() {
	go func() {
		zap.L().Info("HTTP server listening", zap.String("address", s.address))
		err := s.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			err = nil
		}
		s.notify <- err
		close(s.notify)
	}()
}

// Notify -.
func (s *Server) Notify() <-chan error {
	return s.notify
}

// Shutdown drains in-flight requests for at most the shutdown timeout.
func (s *Server) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()
	return s.server.Shutdown(ctx)
}
