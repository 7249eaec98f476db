package messaging

import "math/rand"

// MessageTone represents the tone of a message
type MessageTone string

const (
	// ToneNeutral is a neutral tone
	ToneNeutral MessageTone = "neutral"

	// ToneFunny is a humorous tone
	ToneFunny MessageTone = "funny"

	// ToneEncouraging is an encouraging tone
	ToneEncouraging MessageTone = "encouraging"
)

// ErrorType names a class of failure the user can act on
type ErrorType string

const (
	ErrorTypeMissingField     ErrorType = "missing_field"
	ErrorTypeFieldTooLong     ErrorType = "field_too_long"
	ErrorTypeInvalidVibe      ErrorType = "invalid_vibe"
	ErrorTypeInvalidInterval  ErrorType = "invalid_interval"
	ErrorTypeDurationExceeded ErrorType = "duration_exceeded"
	ErrorTypeInvalidTime      ErrorType = "invalid_time"
	ErrorTypeUnauthorized     ErrorType = "unauthorized"
	ErrorTypeNotFound         ErrorType = "not_found"
	ErrorTypeUnknown          ErrorType = "unknown"
)

// ServiceConfig holds configuration for the messaging service
type ServiceConfig struct {
	// Rand picks among message variants; seeded from the clock when nil
	Rand *rand.Rand
}

// GetJoinMessageInput contains parameters for getting a join message
type GetJoinMessageInput struct {
	// Course is the course code of the joined session
	Course string

	// Joins is the join count after this join
	Joins int

	// PreferredTone is the preferred tone for the message (optional)
	PreferredTone MessageTone
}

// GetJoinMessageOutput contains the result of getting a join message
type GetJoinMessageOutput struct {
	Message string
	Tone    MessageTone
}

// GetPostedMessageInput is the input for GetPostedMessage
type GetPostedMessageInput struct {
	Course   string
	Location string
}

// GetPostedMessageOutput is the output for GetPostedMessage
type GetPostedMessageOutput struct {
	Title   string
	Message string
}

// GetBoardMessageInput is the input for GetBoardMessage
type GetBoardMessageInput struct {
	// ActiveCount is the number of sessions on the board
	ActiveCount int
}

// GetBoardMessageOutput is the output for GetBoardMessage
type GetBoardMessageOutput struct {
	Message string
}

// GetErrorMessageInput contains parameters for getting an error message
type GetErrorMessageInput struct {
	// ErrorType is the type of error
	ErrorType ErrorType

	// Detail is appended when the failure names something specific, like a field
	Detail string

	// PreferredTone is the preferred tone for the message (optional)
	PreferredTone MessageTone
}

// GetErrorMessageOutput contains the result of getting an error message
type GetErrorMessageOutput struct {
	Title   string
	Message string
	Tone    MessageTone
}
