package controllers

import (
	redis_models "SmashSessions/models/redis"
	"SmashSessions/services/presentation"
	"SmashSessions/services/redis"
	"SmashSessions/services/sessions"
	socketio_types "SmashSessions/services/socket_io/types"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

type componentCallbackRequest struct {
	CustomID  string   `json:"custom_id" binding:"required"`
	MessageID string   `json:"message_id"`
	Title     string   `json:"title"`
	Values    []string `json:"values"`
}

// resolveComponentTarget finds the session a component interaction refers
// to: the stored interaction context of the message first, the "#<n>" rank
// in the rendered title as fallback.
func resolveComponentTarget(c *gin.Context, svc *sessions.Service, rc *redis.RedisClient, req componentCallbackRequest) (*sessions.Session, error) {
	if rc != nil && req.MessageID != "" {
		if ic, err := rc.GetInteractionContext(req.MessageID); err == nil {
			s, err := svc.SessionByID(c.Request.Context(), ic.SessionID)
			if err == nil {
				s.Index = ic.Rank
				return s, nil
			}
			if !errors.Is(err, sessions.ErrSessionNotFound) {
				return nil, err
			}
			// The displayed session is gone, fall through to the title.
		} else if !errors.Is(err, redis.ErrNoInteractionContext) {
			log.Printf("could not read interaction context: %v", err)
		}
	}

	n, err := sessions.IndexFromTitle(req.Title)
	if err != nil {
		return nil, sessions.ErrSessionNotFound
	}
	return svc.NthSession(c.Request.Context(), n)
}

// @Summary Component callback
// @Description Entry point for button and dropdown interactions: resolves the session the pressed component belongs to and performs the action.
// @Tags interactions
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Param request body controllers.componentCallbackRequest true "Component interaction"
// @Success 200 {object} presentation.DetailView
// @Failure 400 {object} object{error=string}
// @Failure 404 {object} object{error=string}
// @Failure 422 {object} object{error=string}
// @Router /auth/interactions [post]
// @Security ApiKeyAuth
func ComponentCallback(svc *sessions.Service, rc *redis.RedisClient, sio *socketio_types.SocketServer) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req componentCallbackRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}

		// The dropdown carries the selected rank in its values, no target
		// resolution needed.
		if req.CustomID == presentation.DropdownSelectSession {
			if len(req.Values) == 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "no session selected"})
				return
			}
			n, err := strconv.Atoi(req.Values[0])
			if err != nil {
				abortWithDomainError(c, sessions.ErrInvalidIndex)
				return
			}
			s, err := svc.NthSession(c.Request.Context(), n)
			if err != nil {
				abortWithDomainError(c, err)
				return
			}
			rememberRendered(c, rc, s, req.MessageID)
			c.JSON(http.StatusOK, presentation.BuildDetailView(s, actorFromContext(c)))
			return
		}

		s, err := resolveComponentTarget(c, svc, rc, req)
		if err != nil {
			abortWithDomainError(c, err)
			return
		}

		switch req.CustomID {
		case presentation.ActionJoin:
			doJoin(c, svc, sio, s, joinSessionRequest{})
		case presentation.ActionLeave:
			doLeave(c, svc, sio, s)
		case presentation.ActionBringConsole:
			doBringEquipment(c, svc, sio, s, sessions.EquipmentConsole)
		case presentation.ActionBringScreen:
			doBringEquipment(c, svc, sio, s, sessions.EquipmentScreen)
		case presentation.ActionBringAdapter:
			doBringEquipment(c, svc, sio, s, sessions.EquipmentAdapter)
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown component"})
		}
	}
}

type registerContextRequest struct {
	MessageID string `json:"message_id" binding:"required"`
	SessionID uint   `json:"session_id" binding:"required"`
	Rank      int    `json:"rank"`
}

// @Summary Register interaction context
// @Description Called by the gateway after posting a detail view, binding the posted message id to the displayed session.
// @Tags interactions
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Param request body controllers.registerContextRequest true "Message to session binding"
// @Success 200 {object} object{message=string}
// @Failure 400 {object} object{error=string}
// @Router /auth/interactions/context [post]
// @Security ApiKeyAuth
func RegisterInteractionContext(rc *redis.RedisClient) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req registerContextRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		if rc == nil {
			c.JSON(http.StatusOK, gin.H{"message": "context not stored"})
			return
		}
		ic := &redis_models.InteractionContext{
			MessageID:  req.MessageID,
			SessionID:  req.SessionID,
			Rank:       req.Rank,
			RenderedAt: time.Now(),
		}
		if err := rc.SetInteractionContext(ic); err != nil {
			log.Printf("could not store interaction context: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not store context"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "context stored"})
	}
}
