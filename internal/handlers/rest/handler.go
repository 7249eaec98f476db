package rest

import (
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/maxsrimongkol-lgtm/study-buddy/internal/common/uuid"
	"github.com/maxsrimongkol-lgtm/study-buddy/internal/services/board"
	"github.com/maxsrimongkol-lgtm/study-buddy/internal/services/messaging"
	"go.uber.org/zap"
)

// secretKeyHeader carries the key for DELETE when there is no body
const secretKeyHeader = "X-Secret-Key"

// Config holds the dependencies of the HTTP handlers
type Config struct {
	Board     board.Service
	Messaging messaging.Service

	// TimeLocation is the zone form dates and times are read in; time.Local when nil
	TimeLocation *time.Location

	Logger *zap.Logger
}

// Handler serves the session board over HTTP
type Handler struct {
	board     board.Service
	messaging messaging.Service
	loc       *time.Location
	logger    *zap.Logger
}

// New creates the HTTP handlers
func New(cfg *Config) (*Handler, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}
	if cfg.Board == nil {
		return nil, errors.New("board service cannot be nil")
	}
	if cfg.Messaging == nil {
		return nil, errors.New("messaging service cannot be nil")
	}

	loc := cfg.TimeLocation
	if loc == nil {
		loc = time.Local
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Handler{
		board:     cfg.Board,
		messaging: cfg.Messaging,
		loc:       loc,
		logger:    logger.Named("rest"),
	}, nil
}

// ListSessions returns the active sessions in posting order
// GET /api/v1/sessions
func (h *Handler) ListSessions(c *gin.Context) {
	out, err := h.board.ListActive(c.Request.Context(), &board.ListActiveInput{})
	if err != nil {
		h.handleBoardError(c, err)
		return
	}

	OK(c, ListResponse{
		Sessions: toSessionResponses(out.Sessions),
		Now:      out.Now,
	})
}

// MapSessions returns one pin per active session
// GET /api/v1/sessions/map
func (h *Handler) MapSessions(c *gin.Context) {
	out, err := h.board.ListActive(c.Request.Context(), &board.ListActiveInput{})
	if err != nil {
		h.handleBoardError(c, err)
		return
	}

	OK(c, toMapPoints(out.Sessions))
}

// CreateSession posts a new session
// POST /api/v1/sessions
func (h *Handler) CreateSession(c *gin.Context) {
	var req CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, CodeBadRequest, "malformed request body")
		return
	}

	if err := board.CheckRequired(req.Course, req.Location, req.Vibe, req.SecretKey); err != nil {
		h.handleBoardError(c, err)
		return
	}

	start, end, err := h.window(&req)
	if err != nil {
		h.handleBoardError(c, err)
		return
	}

	out, err := h.board.Create(c.Request.Context(), &board.CreateSessionInput{
		Course:      req.Course,
		Location:    req.Location,
		Vibe:        req.Vibe,
		Description: req.Description,
		SecretKey:   req.SecretKey,
		StartTime:   start,
		EndTime:     end,
	})
	if err != nil {
		h.handleBoardError(c, err)
		return
	}

	Created(c, toSessionResponse(out.Session))
}

// window picks the session window from the request: explicit timestamps win,
// then the form fields. With neither, zero times go through so the board reports
// the missing fields in its usual order.
func (h *Handler) window(req *CreateSessionRequest) (time.Time, time.Time, error) {
	if req.StartTime != nil || req.EndTime != nil {
		var start, end time.Time
		if req.StartTime != nil {
			start = *req.StartTime
		}
		if req.EndTime != nil {
			end = *req.EndTime
		}
		return start, end, nil
	}

	if strings.TrimSpace(req.Date+req.Start+req.End) == "" {
		return time.Time{}, time.Time{}, nil
	}

	return board.ParseWindow(req.Date, req.Start, req.End, h.loc)
}

// GetSession returns one session
// GET /api/v1/sessions/:id
func (h *Handler) GetSession(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}

	out, err := h.board.Get(c.Request.Context(), &board.GetSessionInput{SessionID: id})
	if err != nil {
		h.handleBoardError(c, err)
		return
	}

	OK(c, toSessionResponse(out.Session))
}

// JoinSession bumps the join counter
// POST /api/v1/sessions/:id/join
func (h *Handler) JoinSession(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}

	out, err := h.board.Join(c.Request.Context(), &board.JoinSessionInput{SessionID: id})
	if err != nil {
		h.handleBoardError(c, err)
		return
	}

	resp := JoinResponse{Session: toSessionResponse(out.Session)}

	msg, err := h.messaging.GetJoinMessage(c.Request.Context(), &messaging.GetJoinMessageInput{
		Course: out.Session.Course,
		Joins:  out.Session.Joins,
	})
	if err != nil {
		// the join itself went through
		h.logger.Warn("failed to pick join message", zap.Error(err))
	} else {
		resp.Message = msg.Message
	}

	OK(c, resp)
}

// EditLocation moves a session
// PATCH /api/v1/sessions/:id/location
func (h *Handler) EditLocation(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}

	var req EditLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, CodeBadRequest, "malformed request body")
		return
	}

	out, err := h.board.EditLocation(c.Request.Context(), &board.EditLocationInput{
		SessionID: id,
		SecretKey: req.SecretKey,
		Location:  req.Location,
	})
	if err != nil {
		h.handleBoardError(c, err)
		return
	}

	OK(c, toSessionResponse(out.Session))
}

// DeleteSession removes a session. The key comes from the X-Secret-Key header or the body.
// DELETE /api/v1/sessions/:id
func (h *Handler) DeleteSession(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}

	key := c.GetHeader(secretKeyHeader)
	if key == "" && c.Request.ContentLength != 0 {
		var req DeleteSessionRequest
		// a chunked request with nothing in it reads as no key
		if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
			BadRequest(c, CodeBadRequest, "malformed request body")
			return
		}
		key = req.SecretKey
	}

	if _, err := h.board.Delete(c.Request.Context(), &board.DeleteSessionInput{
		SessionID: id,
		SecretKey: key,
	}); err != nil {
		h.handleBoardError(c, err)
		return
	}

	OK(c, gin.H{"deleted": id})
}

// sessionID rejects ids that cannot name a session before they reach the store
func sessionID(c *gin.Context) (string, bool) {
	id := c.Param("id")
	if !uuid.IsValid(id) {
		NotFound(c, board.ErrSessionNotFound.Error())
		return "", false
	}
	return id, true
}

// handleBoardError maps board failures onto HTTP statuses
func (h *Handler) handleBoardError(c *gin.Context, err error) {
	var fe *board.FieldError
	field := ""
	if errors.As(err, &fe) {
		field = fe.Field
	}

	switch {
	case errors.Is(err, board.ErrMissingField),
		errors.Is(err, board.ErrFieldTooLong),
		errors.Is(err, board.ErrInvalidVibe),
		errors.Is(err, board.ErrInvalidInterval),
		errors.Is(err, board.ErrDurationExceeded),
		errors.Is(err, board.ErrInvalidTimeFormat),
		errors.Is(err, board.ErrInvalidDate):
		msg := err.Error()
		if fe != nil {
			msg = fe.Err.Error()
		}
		ErrorWithDetails(c, http.StatusBadRequest, CodeInvalidInput, msg, field)
	case errors.Is(err, board.ErrUnauthorized):
		Forbidden(c, board.ErrUnauthorized.Error())
	case errors.Is(err, board.ErrSessionNotFound):
		NotFound(c, board.ErrSessionNotFound.Error())
	default:
		_ = c.Error(err)
		InternalError(c)
	}
}
