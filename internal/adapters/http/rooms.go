package http

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/dkeye/Meet/internal/adapters/signal"
	"github.com/dkeye/Meet/internal/app"
	"github.com/dkeye/Meet/internal/config"
	"github.com/dkeye/Meet/internal/domain"
	"github.com/gin-gonic/gin"
	"github.com/pion/webrtc/v4"
	"github.com/rs/zerolog/log"
)

type CreateRoomRequest struct {
	OwnerName   string `json:"ownerName"`
	MaxCapacity int    `json:"maxCapacity"`
	Password    string `json:"password"`
}

type CreateRoomResponse struct {
	Success     bool          `json:"success"`
	RoomID      domain.RoomID `json:"roomId"`
	InviteLink  string        `json:"inviteLink"`
	MaxCapacity int           `json:"maxCapacity"`
}

type roomsHandler struct {
	rooms   *app.RoomManager
	cfg     config.RoomConfig
	limiter *signal.RateLimiter
}

// capacity applies the default for a missing value and clamps to the maximum.
func (h *roomsHandler) capacity(requested int) int {
	switch {
	case requested <= 0:
		return h.cfg.DefaultCapacity
	case requested > h.cfg.MaxCapacity:
		return h.cfg.MaxCapacity
	}
	return requested
}

func (h *roomsHandler) create(c *gin.Context) {
	if !h.limiter.Allow(c.ClientIP()) {
		log.Info().Str("module", "adapters.http").Str("ip", c.ClientIP()).
			Str("client", c.GetString(signal.ClientTokenKey)).Msg("create room rate limited")
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "too many rooms created, slow down"})
		return
	}
	var req CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	owner, err := domain.NormalizeDisplayName(req.OwnerName)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing or invalid ownerName"})
		return
	}

	room, err := h.rooms.Open(owner, h.capacity(req.MaxCapacity), req.Password)
	if err != nil {
		log.Error().Err(err).Str("module", "adapters.http").Msg("create room")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create room"})
		return
	}
	info := room.Info()
	c.JSON(http.StatusOK, CreateRoomResponse{
		Success:     true,
		RoomID:      info.ID,
		InviteLink:  inviteLink(c.Request, info.ID),
		MaxCapacity: info.MaxCapacity,
	})
}

func (h *roomsHandler) get(c *gin.Context) {
	room, ok := h.rooms.Get(domain.RoomID(c.Param("id")))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": domain.ErrRoomNotFound.Error()})
		return
	}
	c.JSON(http.StatusOK, room.Info())
}

func (h *roomsHandler) list(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"rooms": h.rooms.List()})
}

// inviteLink forces https for public hosts, like a reverse proxy would.
func inviteLink(r *http.Request, id domain.RoomID) string {
	scheme := "https"
	if strings.Contains(r.Host, "localhost") || strings.HasPrefix(r.Host, "127.0.0.1") {
		if r.TLS == nil {
			scheme = "http"
		}
	}
	return fmt.Sprintf("%s://%s/room/%s", scheme, r.Host, id)
}

func iceServers(servers []config.ICEServer) gin.HandlerFunc {
	out := make([]webrtc.ICEServer, 0, len(servers))
	for _, s := range servers {
		ice := webrtc.ICEServer{URLs: s.URLs, Username: s.Username}
		if s.Credential != "" {
			ice.Credential = s.Credential
			ice.CredentialType = webrtc.ICECredentialTypePassword
		}
		out = append(out, ice)
	}
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"iceServers": out})
	}
}
