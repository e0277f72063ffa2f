package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/akarev/roomchat-server/internal/core"
)

// RoomHandlers provides the REST mirror of room creation and the
// pre-join room check, for clients that look up a room before opening
// the websocket.
type RoomHandlers struct {
	store *core.Store
	log   *zerolog.Logger
}

// NewRoomHandlers creates a new room handlers instance.
func NewRoomHandlers(store *core.Store, logger *zerolog.Logger) *RoomHandlers {
	return &RoomHandlers{
		store: store,
		log:   logger,
	}
}

// CreateRoomRequest represents the create room request body.
type CreateRoomRequest struct {
	Name     string `json:"name" binding:"required,min=1,max=64"`
	Password string `json:"password"`
}

// RoomResponse represents a room in API responses. It never carries the
// password or the member list.
type RoomResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	HasPassword bool   `json:"has_password"`
}

// ErrorResponse represents an error response body.
type ErrorResponse struct {
	Error string `json:"error"`
}

// CreateRoom handles room creation.
// POST /api/rooms
func (h *RoomHandlers) CreateRoom(c *gin.Context) {
	var req CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Debug().Err(err).Msg("invalid create room request")
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	room := h.store.CreateRoom(req.Name, req.Password)

	h.log.Info().Str("room_id", room.ID).Str("room_name", room.Name).Msg("room created via api")
	c.JSON(http.StatusCreated, RoomResponse{
		ID:          room.ID,
		Name:        room.Name,
		HasPassword: room.HasPassword(),
	})
}

// DescribeRoom handles the pre-join lookup.
// GET /api/rooms/:id
func (h *RoomHandlers) DescribeRoom(c *gin.Context) {
	id := c.Param("id")

	name, hasPassword, ok := h.store.Describe(id)
	if !ok {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "room not found"})
		return
	}

	c.JSON(http.StatusOK, RoomResponse{
		ID:          id,
		Name:        name,
		HasPassword: hasPassword,
	})
}
