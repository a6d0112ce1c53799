package httpserver

import (
	"errors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	pkgLog "carewatch/pkg/log"
)

// HTTPServer is the ops-only HTTP surface of the worker: health, readiness
// and liveness probes. The detection pipeline itself has no request path.
type HTTPServer struct {
	gin    *gin.Engine
	logger pkgLog.Logger
	host   string
	port   int
	db     *gorm.DB
}

// Config is the constructor input for HTTPServer.
type Config struct {
	Host string
	Port int
	Mode string
	DB   *gorm.DB
}

// New wires the ops server. It does not start any goroutines; call Run.
func New(logger pkgLog.Logger, cfg Config) (*HTTPServer, error) {
	if logger == nil {
		return nil, errors.New("logger is required")
	}
	if cfg.Port == 0 {
		return nil, errors.New("port is required")
	}
	if cfg.DB == nil {
		return nil, errors.New("database handle is required")
	}

	if cfg.Mode != "" {
		gin.SetMode(cfg.Mode)
	}

	srv := &HTTPServer{
		gin:    gin.New(),
		logger: logger,
		host:   cfg.Host,
		port:   cfg.Port,
		db:     cfg.DB,
	}
	srv.gin.Use(gin.Recovery())
	srv.mapHandlers()

	return srv, nil
}

func (srv *HTTPServer) mapHandlers() {
	srv.gin.GET("/health", srv.healthCheck)
	srv.gin.GET("/ready", srv.readyCheck)
	srv.gin.GET("/live", srv.liveCheck)
}
