package http

import (
	stdhttp "net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/akarev/roomchat-server/internal/config"
	"github.com/akarev/roomchat-server/internal/core"
)

// NewServer builds the HTTP server: websocket endpoint, a small REST
// surface for pre-join room lookups, and static hosting for the client.
func NewServer(hub *core.Hub, store *core.Store, cfg config.Config, logger *zerolog.Logger) *stdhttp.Server {
	gin.SetMode(gin.ReleaseMode)

	engine := gin.New()
	engine.Use(gin.Recovery(), LoggerMiddleware(logger))

	engine.GET("/healthz", healthHandler)
	engine.GET("/ws", gin.WrapH(NewWSHandler(hub, cfg.MessageRateLimit, logger)))

	rooms := NewRoomHandlers(store, logger)
	api := engine.Group("/api")
	api.POST("/rooms", rooms.CreateRoom)
	api.GET("/rooms/:id", rooms.DescribeRoom)

	if cfg.StaticDir != "" {
		engine.NoRoute(gin.WrapH(stdhttp.FileServer(stdhttp.Dir(cfg.StaticDir))))
	}

	return &stdhttp.Server{
		Addr:              cfg.Addr,
		Handler:           engine,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
	}
}

func healthHandler(c *gin.Context) {
	c.String(stdhttp.StatusOK, "ok")
}
