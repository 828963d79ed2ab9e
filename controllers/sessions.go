package controllers

import (
	"SmashSessions/middleware"
	redis_models "SmashSessions/models/redis"
	"SmashSessions/services/presentation"
	"SmashSessions/services/redis"
	"SmashSessions/services/sessions"
	socketio_types "SmashSessions/services/socket_io/types"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// actorFromContext rebuilds the invoking member from the identity the auth
// middleware resolved. Equipment counters start at zero; joins with
// starting equipment go through sessions.NewUser instead.
func actorFromContext(c *gin.Context) sessions.User {
	return sessions.User{
		ID:            c.GetString(middleware.CtxUserID),
		Name:          c.GetString(middleware.CtxUsername),
		Discriminator: c.GetString(middleware.CtxDiscriminator),
	}
}

// rankOf finds the 1-based rank of a session among the future ones, so a
// freshly created or mutated session can be rendered with its "#<n>" title.
func rankOf(c *gin.Context, svc *sessions.Service, id uint) int {
	future, err := svc.AllFutureSessions(c.Request.Context())
	if err != nil {
		return 0
	}
	for _, s := range future {
		if s.ID == id {
			return s.Index
		}
	}
	return 0
}

// resolveByRank parses the :n path parameter and resolves the session.
func resolveByRank(c *gin.Context, svc *sessions.Service) (*sessions.Session, bool) {
	n, err := strconv.Atoi(c.Param("n"))
	if err != nil {
		abortWithDomainError(c, sessions.ErrInvalidIndex)
		return nil, false
	}
	s, err := svc.NthSession(c.Request.Context(), n)
	if err != nil {
		abortWithDomainError(c, err)
		return nil, false
	}
	return s, true
}

// rememberRendered stores the interaction context for the message the
// gateway attaches a detail view to, so component callbacks on that message
// resolve the session without parsing the title.
func rememberRendered(c *gin.Context, rc *redis.RedisClient, s *sessions.Session, messageID string) {
	if messageID == "" || rc == nil {
		return
	}
	ic := &redis_models.InteractionContext{
		MessageID:  messageID,
		SessionID:  s.ID,
		Rank:       s.Index,
		RenderedAt: time.Now(),
	}
	if err := rc.SetInteractionContext(ic); err != nil {
		log.Printf("could not store interaction context: %v", err)
	}
}

type createSessionRequest struct {
	Day       int     `json:"day" binding:"required"`
	StartHour string  `json:"start_hour" binding:"required"`
	EndHour   string  `json:"end_hour" binding:"required"`
	Places    *int    `json:"places"`
	Address   *string `json:"address"`
	Comment   *string `json:"comment"`
}

// @Summary Create a session
// @Description Schedules a new gaming session hosted by the caller. Hours use two fractional digits as minutes, e.g. 18.30 is half past six.
// @Tags sessions
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Param request body controllers.createSessionRequest true "Session details"
// @Success 201 {object} presentation.DetailView
// @Failure 400 {object} object{error=string}
// @Router /auth/sessions [post]
// @Security ApiKeyAuth
func CreateSession(svc *sessions.Service, sio *socketio_types.SocketServer) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req createSessionRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		doCreate(c, svc, sio, req)
	}
}

func doCreate(c *gin.Context, svc *sessions.Service, sio *socketio_types.SocketServer, req createSessionRequest) {
	start, end, err := sessions.SessionDates(svc.Now(), req.Day, req.StartHour, req.EndHour)
	if err != nil {
		abortWithDomainError(c, err)
		return
	}

	host := actorFromContext(c)
	s, err := svc.Create(c.Request.Context(), host, start, end, req.Places, req.Address, req.Comment)
	if err != nil {
		abortWithDomainError(c, err)
		return
	}
	s.Index = rankOf(c, svc, s.ID)

	sio.BroadcastToSessions("session_created", gin.H{"session_id": s.ID, "title": s.Title()})
	c.JSON(http.StatusCreated, presentation.BuildDetailView(s, host))
}

// @Summary List upcoming sessions
// @Description Returns every future session in rank order with the dropdown options to pick one.
// @Tags sessions
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Success 200 {object} presentation.ListView
// @Failure 404 {object} object{error=string}
// @Router /auth/sessions [get]
// @Security ApiKeyAuth
func ListSessions(svc *sessions.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		doList(c, svc)
	}
}

func doList(c *gin.Context, svc *sessions.Service) {
	future, err := svc.AllFutureSessions(c.Request.Context())
	if err != nil {
		abortWithDomainError(c, err)
		return
	}
	if len(future) == 0 {
		abortWithDomainError(c, sessions.ErrNoSessionAvailable)
		return
	}
	c.JSON(http.StatusOK, presentation.BuildListView(future))
}

// @Summary Show the nth upcoming session
// @Description Returns the detail view of the session at rank n (1 = soonest).
// @Tags sessions
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Param n path int true "Rank among future sessions"
// @Param message_id query string false "Message id the gateway will attach this view to"
// @Success 200 {object} presentation.DetailView
// @Failure 400 {object} object{error=string}
// @Failure 404 {object} object{error=string}
// @Router /auth/sessions/{n} [get]
// @Security ApiKeyAuth
func ShowSession(svc *sessions.Service, rc *redis.RedisClient) gin.HandlerFunc {
	return func(c *gin.Context) {
		s, ok := resolveByRank(c, svc)
		if !ok {
			return
		}
		doShow(c, svc, rc, s)
	}
}

func doShow(c *gin.Context, svc *sessions.Service, rc *redis.RedisClient, s *sessions.Session) {
	rememberRendered(c, rc, s, c.Query("message_id"))
	c.JSON(http.StatusOK, presentation.BuildDetailView(s, actorFromContext(c)))
}

// @Summary Show the next session
// @Description Equivalent to showing rank 1.
// @Tags sessions
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Success 200 {object} presentation.DetailView
// @Failure 404 {object} object{error=string}
// @Router /auth/sessions/next [get]
// @Security ApiKeyAuth
func NextSession(svc *sessions.Service, rc *redis.RedisClient) gin.HandlerFunc {
	return func(c *gin.Context) {
		s, err := svc.NthSession(c.Request.Context(), 1)
		if err != nil {
			abortWithDomainError(c, err)
			return
		}
		doShow(c, svc, rc, s)
	}
}

type updateSessionRequest struct {
	Places  *int    `json:"places"`
	Address *string `json:"address"`
	Comment *string `json:"comment"`
}

// @Summary Update a session
// @Description Host-only partial update: omitted fields keep their value.
// @Tags sessions
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Param n path int true "Rank among future sessions"
// @Param request body controllers.updateSessionRequest true "Fields to update"
// @Success 200 {object} presentation.DetailView
// @Failure 400 {object} object{error=string}
// @Failure 403 {object} object{error=string}
// @Router /auth/sessions/{n} [patch]
// @Security ApiKeyAuth
func UpdateSession(svc *sessions.Service, sio *socketio_types.SocketServer) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req updateSessionRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		s, ok := resolveByRank(c, svc)
		if !ok {
			return
		}
		doUpdate(c, svc, sio, s, req)
	}
}

func doUpdate(c *gin.Context, svc *sessions.Service, sio *socketio_types.SocketServer, s *sessions.Session, req updateSessionRequest) {
	updated, err := svc.Update(c.Request.Context(), s, actorFromContext(c), req.Places, req.Address, req.Comment)
	if err != nil {
		abortWithDomainError(c, err)
		return
	}
	sio.BroadcastToSessions("session_updated", gin.H{"session_id": updated.ID, "title": updated.Title()})
	c.JSON(http.StatusOK, presentation.BuildDetailView(updated, actorFromContext(c)))
}

type joinSessionRequest struct {
	Consoles int `json:"consoles"`
	Screens  int `json:"screens"`
	Adapters int `json:"adapters"`
}

// @Summary Join a session
// @Description Adds the caller to the participants, optionally with starting equipment.
// @Tags sessions
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Param n path int true "Rank among future sessions"
// @Param request body controllers.joinSessionRequest false "Starting equipment"
// @Success 200 {object} presentation.DetailView
// @Failure 404 {object} object{error=string}
// @Failure 422 {object} object{error=string}
// @Router /auth/sessions/{n}/join [post]
// @Security ApiKeyAuth
func JoinSession(svc *sessions.Service, sio *socketio_types.SocketServer) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req joinSessionRequest
		if c.Request.ContentLength > 0 {
			if err := c.ShouldBindJSON(&req); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
				return
			}
		}
		s, ok := resolveByRank(c, svc)
		if !ok {
			return
		}
		doJoin(c, svc, sio, s, req)
	}
}

func doJoin(c *gin.Context, svc *sessions.Service, sio *socketio_types.SocketServer, s *sessions.Session, req joinSessionRequest) {
	actor := actorFromContext(c)
	joining, err := sessions.NewUser(actor.ID, actor.Name, actor.Discriminator, req.Consoles, req.Screens, req.Adapters)
	if err != nil {
		abortWithDomainError(c, err)
		return
	}

	updated, err := svc.Join(c.Request.Context(), s, joining)
	if err != nil {
		abortWithDomainError(c, err)
		return
	}
	sio.BroadcastToSessions("session_updated", gin.H{"session_id": updated.ID, "title": updated.Title()})
	c.JSON(http.StatusOK, presentation.BuildDetailView(updated, joining))
}

// @Summary Leave a session
// @Description Removes the caller from the participants. Hosts must delete instead.
// @Tags sessions
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Param n path int true "Rank among future sessions"
// @Success 200 {object} presentation.DetailView
// @Failure 404 {object} object{error=string}
// @Failure 422 {object} object{error=string}
// @Router /auth/sessions/{n}/leave [post]
// @Security ApiKeyAuth
func LeaveSession(svc *sessions.Service, sio *socketio_types.SocketServer) gin.HandlerFunc {
	return func(c *gin.Context) {
		s, ok := resolveByRank(c, svc)
		if !ok {
			return
		}
		doLeave(c, svc, sio, s)
	}
}

func doLeave(c *gin.Context, svc *sessions.Service, sio *socketio_types.SocketServer, s *sessions.Session) {
	actor := actorFromContext(c)
	updated, err := svc.Leave(c.Request.Context(), s, actor)
	if err != nil {
		abortWithDomainError(c, err)
		return
	}
	sio.BroadcastToSessions("session_updated", gin.H{"session_id": updated.ID, "title": updated.Title()})
	c.JSON(http.StatusOK, presentation.BuildDetailView(updated, actor))
}

// @Summary Delete a session
// @Description Host-only: removes the session permanently.
// @Tags sessions
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Param n path int true "Rank among future sessions"
// @Success 200 {object} object{message=string}
// @Failure 403 {object} object{error=string}
// @Failure 404 {object} object{error=string}
// @Router /auth/sessions/{n} [delete]
// @Security ApiKeyAuth
func DeleteSession(svc *sessions.Service, sio *socketio_types.SocketServer) gin.HandlerFunc {
	return func(c *gin.Context) {
		s, ok := resolveByRank(c, svc)
		if !ok {
			return
		}
		doDelete(c, svc, sio, s)
	}
}

func doDelete(c *gin.Context, svc *sessions.Service, sio *socketio_types.SocketServer, s *sessions.Session) {
	if err := svc.Delete(c.Request.Context(), s, actorFromContext(c)); err != nil {
		abortWithDomainError(c, err)
		return
	}
	sio.BroadcastToSessions("session_deleted", gin.H{"session_id": s.ID})
	c.JSON(http.StatusOK, gin.H{"message": "session deleted"})
}

// @Summary Bring equipment
// @Description Increments the caller's counter for the given equipment kind (console, screen or adapter).
// @Tags sessions
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Param n path int true "Rank among future sessions"
// @Param kind path string true "Equipment kind" Enums(console, screen, adapter)
// @Success 200 {object} presentation.DetailView
// @Failure 400 {object} object{error=string}
// @Failure 422 {object} object{error=string}
// @Router /auth/sessions/{n}/equipment/{kind} [post]
// @Security ApiKeyAuth
func BringEquipment(svc *sessions.Service, sio *socketio_types.SocketServer) gin.HandlerFunc {
	return func(c *gin.Context) {
		kind, ok := sessions.ParseEquipment(c.Param("kind"))
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown equipment kind"})
			return
		}
		s, resolved := resolveByRank(c, svc)
		if !resolved {
			return
		}
		doBringEquipment(c, svc, sio, s, kind)
	}
}

func doBringEquipment(c *gin.Context, svc *sessions.Service, sio *socketio_types.SocketServer, s *sessions.Session, kind sessions.Equipment) {
	actor := actorFromContext(c)
	updated, err := svc.BringEquipment(c.Request.Context(), s, actor, kind)
	if err != nil {
		abortWithDomainError(c, err)
		return
	}
	sio.BroadcastToSessions("session_updated", gin.H{"session_id": updated.ID, "title": updated.Title()})
	c.JSON(http.StatusOK, presentation.BuildDetailView(updated, actor))
}
