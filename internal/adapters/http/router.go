package http

import (
	"context"
	"net/http"

	"github.com/dkeye/Meet/internal/adapters/signal"
	"github.com/dkeye/Meet/internal/app"
	"github.com/dkeye/Meet/internal/config"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

const sessionName = "MeetSessions"

type Deps struct {
	Coord *app.Coordinator
	Rooms *app.RoomManager
	// Gatherer backs /metrics; nil disables the route.
	Gatherer prometheus.Gatherer
	Create   *signal.RateLimiter
	Chat     *signal.RateLimiter
}

// ClientTokenMiddleware keeps a per-browser token in the signed session
// cookie. It identifies the client for rate limiting, never a connection.
func ClientTokenMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		token, _ := session.Get(signal.ClientTokenKey).(string)
		if token == "" {
			token = uuid.NewString()
			session.Set(signal.ClientTokenKey, token)
			if err := session.Save(); err != nil {
				log.Warn().Err(err).Str("module", "adapters.http").Msg("save session")
			}
		}
		c.Set(signal.ClientTokenKey, token)
		c.Next()
	}
}

func SetupRouter(ctx context.Context, cfg *config.Config, d Deps) *gin.Engine {
	if cfg.Mode == gin.ReleaseMode || cfg.Mode == gin.TestMode {
		gin.SetMode(cfg.Mode)
	}

	r := gin.New()
	if cfg.Mode == gin.DebugMode {
		r.Use(gin.Logger())
	}
	r.Use(gin.Recovery())
	if err := r.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		log.Error().Err(err).Str("module", "adapters.http").Msg("bad trusted_proxies, trusting none")
		_ = r.SetTrustedProxies(nil)
	}

	store := cookie.NewStore([]byte(cfg.Secret))
	store.Options(sessions.Options{Path: "/", MaxAge: 3600 * 24 * 7, HttpOnly: true, SameSite: http.SameSiteLaxMode})
	r.Use(sessions.Sessions(sessionName, store))
	r.Use(ClientTokenMiddleware())

	r.Static("/static", cfg.StaticPath)
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":      "ok",
			"rooms":       d.Rooms.Len(),
			"connections": d.Coord.Registry.Len(),
		})
	})
	if cfg.Metrics.Enabled && d.Gatherer != nil {
		r.GET(cfg.Metrics.Path, gin.WrapH(promhttp.HandlerFor(d.Gatherer, promhttp.HandlerOpts{})))
	}

	log.Info().Str("module", "adapters.http").Str("static", cfg.StaticPath).Msg("router setup")

	rooms := &roomsHandler{rooms: d.Rooms, cfg: cfg.Room, limiter: d.Create}
	api := r.Group("/api")
	if cfg.Mode == gin.DebugMode {
		// room ids double as invite codes; listing them is for local debugging only
		api.GET("/rooms", rooms.list)
	}
	api.POST("/rooms", rooms.create)
	api.GET("/rooms/:id", rooms.get)
	api.GET("/ice-servers", iceServers(cfg.ICEServers))

	ctrl := signal.NewSignalWSController(d.Coord, d.Chat, signal.Options{
		ReadLimit:  cfg.ReadLimit,
		PingPeriod: cfg.PingPeriod,
		PongWait:   cfg.PongWait,
		WriteWait:  cfg.WriteWait,
		SendBuffer: cfg.SendBuffer,
	})
	api.GET("/ws/signal", func(c *gin.Context) {
		log.Debug().Str("module", "adapters.http").Str("client", c.GetString(signal.ClientTokenKey)).
			Msg("ws signal endpoint hit")
		ctrl.HandleSignal(ctx, c)
	})

	return r
}
