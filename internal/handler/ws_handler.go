package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/placeprep/placeprep-backend/internal/config"
	"github.com/placeprep/placeprep-backend/internal/middleware"
	"github.com/placeprep/placeprep-backend/internal/repository"
	ws "github.com/placeprep/placeprep-backend/internal/websocket"
	"github.com/placeprep/placeprep-backend/internal/worker"
)

// buildUpgrader creates a WebSocket upgrader with origin validation.
// An empty allow list permits all origins (development mode).
func buildUpgrader(allowedOrigins []string) websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			if len(allowedOrigins) == 0 {
				return true
			}
			origin := r.Header.Get("Origin")
			for _, allowed := range allowedOrigins {
				if strings.EqualFold(allowed, origin) {
					return true
				}
			}
			return false
		},
	}
}

// WSHandler handles the proctoring event stream. Reported events are
// queued to Redis and persisted by the proctor worker; the stream itself
// never blocks on the database.
type WSHandler struct {
	rdb         *redis.Client
	sessionRepo *repository.SessionRepository
	resultRepo  *repository.ResultRepository
	log         zerolog.Logger
	upgrader    websocket.Upgrader
}

// NewWSHandler creates a new WSHandler.
func NewWSHandler(
	rdb *redis.Client,
	sessionRepo *repository.SessionRepository,
	resultRepo *repository.ResultRepository,
	log zerolog.Logger,
	allowedOrigins []string,
) *WSHandler {
	return &WSHandler{
		rdb:         rdb,
		sessionRepo: sessionRepo,
		resultRepo:  resultRepo,
		log:         log.With().Str("component", "ws_handler").Logger(),
		upgrader:    buildUpgrader(allowedOrigins),
	}
}

// ProctorStream godoc
// WS /ws/v1/student/sessions/:sessionId/proctor
// Upgrades to WebSocket for streaming proctoring events during an exam.
func (h *WSHandler) ProctorStream(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	sessionID, err := uuid.Parse(c.Param("sessionId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid session ID"})
		return
	}

	// Only the session's owner may stream, and only while the session
	// has no terminal result.
	session, err := h.sessionRepo.GetByID(c.Request.Context(), sessionID)
	if err != nil || session.StudentID != claims.UserID {
		c.JSON(http.StatusForbidden, gin.H{"error": "not your session"})
		return
	}
	if _, err := h.resultRepo.GetBySession(c.Request.Context(), sessionID); err == nil {
		c.JSON(http.StatusForbidden, gin.H{"error": "session already terminated"})
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Error().Err(err).Msg("WebSocket upgrade failed")
		return
	}
	defer conn.Close()

	wsLog := h.log.With().
		Str("student_id", claims.UserID.String()).
		Str("session_id", sessionID.String()).
		Logger()

	wsLog.Info().Msg("Proctor stream connected")

	for {
		var msg ws.ReportRequest
		if err := ws.ReadJSON(conn, &msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				wsLog.Warn().Err(err).Msg("Unexpected close")
			} else {
				wsLog.Debug().Msg("Connection closed")
			}
			break
		}

		switch msg.Action {
		case ws.ActionPing:
			ws.WriteTyped(conn, ws.PongResponse{Event: ws.EventPong})
		case ws.ActionReport:
			h.handleReport(conn, wsLog, sessionID, claims.UserID, &msg)
		default:
			wsLog.Warn().Str("action", string(msg.Action)).Msg("Unknown action")
			ws.WriteError(conn, "unknown action: "+string(msg.Action))
		}
	}
}

// handleReport queues one proctoring event for batch persistence.
func (h *WSHandler) handleReport(conn *websocket.Conn, wsLog zerolog.Logger, sessionID, studentID uuid.UUID, msg *ws.ReportRequest) {
	ctx := context.Background()

	if msg.Kind == "" {
		ws.WriteError(conn, "kind is required")
		return
	}

	payload, _ := json.Marshal(worker.ProctorEvent{
		SessionID: sessionID.String(),
		StudentID: studentID.String(),
		Kind:      msg.Kind,
		Detail:    msg.Detail,
		Timestamp: time.Now().Unix(),
	})
	if err := h.rdb.RPush(ctx, config.WorkerKey.PersistProctorEventsQueue, payload).Err(); err != nil {
		wsLog.Error().Err(err).Msg("Failed to queue proctor event")
		ws.WriteError(conn, "report failed")
		return
	}

	ws.WriteTyped(conn, ws.AckResponse{Event: ws.EventAck})
}
