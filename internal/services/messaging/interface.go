package messaging

import "context"

// Service picks the user-facing copy shown next to board actions
type Service interface {
	// GetJoinMessage returns a cheer for someone joining a session
	GetJoinMessage(ctx context.Context, input *GetJoinMessageInput) (*GetJoinMessageOutput, error)

	// GetPostedMessage returns the announcement for a freshly posted session
	GetPostedMessage(ctx context.Context, input *GetPostedMessageInput) (*GetPostedMessageOutput, error)

	// GetBoardMessage returns the header line above the board listing
	GetBoardMessage(ctx context.Context, input *GetBoardMessageInput) (*GetBoardMessageOutput, error)

	// GetErrorMessage returns a user-friendly error message
	GetErrorMessage(ctx context.Context, input *GetErrorMessageInput) (*GetErrorMessageOutput, error)
}
