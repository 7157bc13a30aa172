package http_server

import (
	"net"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

const (
	_defaultAddr            = ":80"
	_defaultTimeout         = 15 * time.Second
	_defaultShutdownTimeout = 10 * time.Second
)

// Option -.
type Option func(*Server)

// Port -.
func Port(port int) Option {
	return func(s *Server) {
		s.address = net.JoinHostPort("", strconv.Itoa(port))
	}
}

// Timeout bounds every request handled by the engine.
func Timeout(timeout time.Duration) Option {
	return func(s *Server) {
		s.timeout = timeout
	}
}

// ShutdownTimeout -.
func ShutdownTimeout(timeout time.Duration) Option {
	return func(s *Server) {
		s.shutdownTimeout = timeout
	}
}

// Middleware appends handlers that run before every route.
func Middleware(handlers ...gin.HandlerFunc) Option {
	return func(s *Server) {
		s.middleware = append(s.middleware, handlers...)
	}
}
