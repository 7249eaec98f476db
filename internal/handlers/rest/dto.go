package rest

import (
	"time"

	"github.com/maxsrimongkol-lgtm/study-buddy/internal/models"
)

// CreateSessionRequest is the body of POST /sessions. The window is either
// date + start + end as typed into a form, or start_time/end_time in RFC 3339.
type CreateSessionRequest struct {
	Course      string `json:"course"`
	Location    string `json:"location"`
	Vibe        string `json:"vibe"`
	Description string `json:"description"`
	SecretKey   string `json:"secret_key"`

	Date  string `json:"date"`
	Start string `json:"start"`
	End   string `json:"end"`

	StartTime *time.Time `json:"start_time"`
	EndTime   *time.Time `json:"end_time"`
}

// EditLocationRequest is the body of PATCH /sessions/:id/location
type EditLocationRequest struct {
	SecretKey string `json:"secret_key"`
	Location  string `json:"location"`
}

// DeleteSessionRequest is the optional body of DELETE /sessions/:id
type DeleteSessionRequest struct {
	SecretKey string `json:"secret_key"`
}

// SessionResponse is a session as shown to anyone. The secret key never leaves the server.
type SessionResponse struct {
	ID          string    `json:"id"`
	Course      string    `json:"course"`
	Location    string    `json:"location"`
	Vibe        string    `json:"vibe"`
	Description string    `json:"description,omitempty"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	Joins       int       `json:"joins"`
	Lat         float64   `json:"lat"`
	Lon         float64   `json:"lon"`
	CreatedAt   time.Time `json:"created_at"`
}

// MapPoint is one pin on the map view
type MapPoint struct {
	ID     string  `json:"id"`
	Course string  `json:"course"`
	Lat    float64 `json:"lat"`
	Lon    float64 `json:"lon"`
}

// JoinResponse pairs the updated session with a cheer
type JoinResponse struct {
	Session SessionResponse `json:"session"`
	Message string          `json:"message"`
}

// ListResponse is the board as of Now
type ListResponse struct {
	Sessions []SessionResponse `json:"sessions"`
	Now      time.Time         `json:"now"`
}

func toSessionResponse(s *models.Session) SessionResponse {
	return SessionResponse{
		ID:          s.ID,
		Course:      s.Course,
		Location:    s.Location,
		Vibe:        string(s.Vibe),
		Description: s.Description,
		StartTime:   s.StartTime,
		EndTime:     s.EndTime,
		Joins:       s.Joins,
		Lat:         s.Lat,
		Lon:         s.Lon,
		CreatedAt:   s.CreatedAt,
	}
}

func toSessionResponses(sessions []*models.Session) []SessionResponse {
	out := make([]SessionResponse, 0, len(sessions))
	for _, s := range sessions {
		out = append(out, toSessionResponse(s))
	}
	return out
}

func toMapPoints(sessions []*models.Session) []MapPoint {
	out := make([]MapPoint, 0, len(sessions))
	for _, s := range sessions {
		out = append(out, MapPoint{
			ID:     s.ID,
			Course: s.Course,
			Lat:    s.Lat,
			Lon:    s.Lon,
		})
	}
	return out
}
