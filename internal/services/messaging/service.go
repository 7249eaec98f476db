package messaging

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"
)

// service implements the Service interface
type service struct {
	// Random number generator for selecting random messages
	rand *rand.Rand
}

// NewService creates a new messaging service
func NewService(config *ServiceConfig) (Service, error) {
	if config == nil {
		return nil, errors.New("config cannot be nil")
	}

	r := config.Rand
	if r == nil {
		r = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	return &service{
		rand: r,
	}, nil
}

func (s *service) pick(messages []string) string {
	return messages[s.rand.Intn(len(messages))]
}

// GetJoinMessage returns a cheer for someone joining a session
func (s *service) GetJoinMessage(ctx context.Context, input *GetJoinMessageInput) (*GetJoinMessageOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	tone := input.PreferredTone
	if tone == "" {
		tone = ToneEncouraging
	}

	var messages []string
	switch {
	case input.Joins <= 1:
		messages = []string{
			fmt.Sprintf("You're the first one in for %s. Save a seat!", input.Course),
			fmt.Sprintf("First join on %s! The grind starts with you.", input.Course),
			fmt.Sprintf("%s has its first buddy. Bring snacks.", input.Course),
		}
	case input.Joins < 5:
		messages = []string{
			fmt.Sprintf("You're in! %d people are heading to %s.", input.Joins, input.Course),
			fmt.Sprintf("%s is picking up steam: %d joins so far.", input.Course, input.Joins),
			fmt.Sprintf("Joined. That makes %d for %s.", input.Joins, input.Course),
		}
	default:
		messages = []string{
			fmt.Sprintf("%s is packed with %d joins. Get there early!", input.Course, input.Joins),
			fmt.Sprintf("Study party! %d people joined %s.", input.Joins, input.Course),
			fmt.Sprintf("%d joins on %s. Somebody book a bigger room.", input.Joins, input.Course),
		}
	}

	return &GetJoinMessageOutput{
		Message: s.pick(messages),
		Tone:    tone,
	}, nil
}

// GetPostedMessage returns the announcement for a freshly posted session
func (s *service) GetPostedMessage(ctx context.Context, input *GetPostedMessageInput) (*GetPostedMessageOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	messages := []string{
		fmt.Sprintf("%s is on the board at %s. Who's in?", input.Course, input.Location),
		fmt.Sprintf("New session: %s at %s. Grab your notes.", input.Course, input.Location),
		fmt.Sprintf("Study buddies wanted for %s at %s!", input.Course, input.Location),
	}

	return &GetPostedMessageOutput{
		Title:   "Session Posted",
		Message: s.pick(messages),
	}, nil
}

// GetBoardMessage returns the header line above the board listing
func (s *service) GetBoardMessage(ctx context.Context, input *GetBoardMessageInput) (*GetBoardMessageOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	var messages []string
	switch {
	case input.ActiveCount == 0:
		messages = []string{
			"No sessions yet. Be the first to post one!",
			"The board is empty. Quiet library energy.",
			"Nobody's studying right now. Post a session and change that.",
		}
	case input.ActiveCount == 1:
		messages = []string{
			"One session is live. Go keep them company.",
			"A lone study session awaits.",
		}
	default:
		messages = []string{
			fmt.Sprintf("%d sessions are live. Pick your vibe.", input.ActiveCount),
			fmt.Sprintf("%d study sessions on the board right now.", input.ActiveCount),
		}
	}

	return &GetBoardMessageOutput{
		Message: s.pick(messages),
	}, nil
}

// GetErrorMessage returns a user-friendly error message
func (s *service) GetErrorMessage(ctx context.Context, input *GetErrorMessageInput) (*GetErrorMessageOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	tone := input.PreferredTone
	if tone == "" {
		tone = ToneFunny
	}

	title := "Something Went Wrong"
	var messages []string

	// Select messages based on error type
	switch input.ErrorType {
	case ErrorTypeMissingField:
		title = "Missing Info"
		messages = []string{
			"Looks like you left something blank.",
			"We need a little more before this goes on the board.",
		}
	case ErrorTypeFieldTooLong:
		title = "Too Long"
		messages = []string{
			"That's a bit long. Trim it down and try again.",
			"Short and sweet, please. That one's over the limit.",
		}
	case ErrorTypeInvalidVibe:
		title = "Unknown Vibe"
		messages = []string{
			"Pick one of the listed vibes.",
			"That vibe isn't on the menu.",
		}
	case ErrorTypeInvalidInterval:
		title = "Check Your Times"
		messages = []string{
			"End time must be after start time.",
			"Sessions can't end before they start. Time travel is not supported.",
		}
	case ErrorTypeDurationExceeded:
		title = "Too Long a Session"
		messages = []string{
			"Sessions can be at most 5 hours long. Take a break!",
			"That's over 5 hours. Even the library needs a breather.",
		}
	case ErrorTypeInvalidTime:
		title = "Invalid Time"
		messages = []string{
			"Invalid time, use the format: 02:30 PM",
		}
	case ErrorTypeUnauthorized:
		title = "Wrong Key"
		messages = []string{
			"Incorrect secret key.",
			"That key doesn't unlock this session.",
		}
	case ErrorTypeNotFound:
		title = "Session Not Found"
		messages = []string{
			"That session is gone. It may have ended or been deleted.",
			"Couldn't find that session. Check the board for what's live.",
		}
	default:
		messages = []string{
			"Something went wrong. Try again in a moment.",
			"The board tripped over its own notes. Try again.",
		}
	}

	message := s.pick(messages)
	if input.Detail != "" {
		message = fmt.Sprintf("%s (%s)", message, input.Detail)
	}

	return &GetErrorMessageOutput{
		Title:   title,
		Message: message,
		Tone:    tone,
	}, nil
}
