package models

import (
	"time"
)

// Vibe describes the intended study mode of a session
type Vibe string

const (
	// VibeChill is a relaxed session
	VibeChill Vibe = "Chill"

	// VibeCramming is a last-minute exam push
	VibeCramming Vibe = "Cramming"

	// VibeGroupProject is a working session for a group assignment
	VibeGroupProject Vibe = "Group Project"
)

// DefaultVibes lists the vibes offered when the board restricts the choice
var DefaultVibes = []Vibe{VibeChill, VibeCramming, VibeGroupProject}

// Session represents a posted study session
type Session struct {
	// ID is the unique identifier for this session
	ID string `json:"id"`

	// Course is the course code, stored upper-cased
	Course string `json:"course"`

	// Location is the free-text place where the session happens
	Location string `json:"location"`

	// Vibe is the free-text or enumerated study mode
	Vibe Vibe `json:"vibe"`

	// Description is optional detail from the creator
	Description string `json:"description,omitempty"`

	// StartTime is when the session begins
	StartTime time.Time `json:"start_time"`

	// EndTime is when the session ends; the session is dropped from the board after it
	EndTime time.Time `json:"end_time"`

	// SecretKey is the stored form of the creator's key, as produced by the configured key scheme
	SecretKey string `json:"secret_key"`

	// Joins counts join actions; there is no identity behind it
	Joins int `json:"joins"`

	// Lat and Lon are resolved from Location once, at creation
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`

	// CreatedAt is when the session was posted
	CreatedAt time.Time `json:"created_at"`
}

// IsActive reports whether the session has not yet ended at now
func (s *Session) IsActive(now time.Time) bool {
	return s.EndTime.After(now)
}

// Duration returns the length of the study window
func (s *Session) Duration() time.Duration {
	return s.EndTime.Sub(s.StartTime)
}

// Clone returns a copy that can be handed out without sharing the stored record
func (s *Session) Clone() *Session {
	if s == nil {
		return nil
	}
	c := *s
	return &c
}
