package discord

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/maxsrimongkol-lgtm/study-buddy/internal/models"
	"github.com/maxsrimongkol-lgtm/study-buddy/internal/services/board"
	"github.com/maxsrimongkol-lgtm/study-buddy/internal/services/messaging"
)

// joinButtonPrefix marks join buttons; the session ID follows it
const joinButtonPrefix = "join_session:"

// Discord caps an embed at 25 fields, a row at 5 buttons and a message at 5 rows
const (
	maxEmbedFields   = 25
	maxButtonsPerRow = 5
	maxRows          = 5
)

const timeLayout = "Mon Jan 2, 3:04 PM"

// JoinButtonID is the custom ID of the join button for a session
func JoinButtonID(sessionID string) string {
	return joinButtonPrefix + sessionID
}

// ParseJoinButtonID extracts the session ID from a join button custom ID
func ParseJoinButtonID(customID string) (string, bool) {
	if !strings.HasPrefix(customID, joinButtonPrefix) {
		return "", false
	}
	id := strings.TrimPrefix(customID, joinButtonPrefix)
	if id == "" {
		return "", false
	}
	return id, true
}

func formatWindow(s *models.Session, loc *time.Location) string {
	start := s.StartTime.In(loc)
	end := s.EndTime.In(loc)
	if start.YearDay() == end.YearDay() && start.Year() == end.Year() {
		return fmt.Sprintf("%s - %s", start.Format(timeLayout), end.Format("3:04 PM"))
	}
	return fmt.Sprintf("%s - %s", start.Format(timeLayout), end.Format(timeLayout))
}

// sessionField is the one-field summary of a session used on the board
func sessionField(s *models.Session, loc *time.Location) *discordgo.MessageEmbedField {
	lines := []string{
		fmt.Sprintf("📍 %s", s.Location),
		fmt.Sprintf("🕒 %s", formatWindow(s, loc)),
		fmt.Sprintf("✨ %s · 👥 %d joined", s.Vibe, s.Joins),
	}
	if s.Description != "" {
		lines = append(lines, s.Description)
	}
	lines = append(lines, fmt.Sprintf("`%s`", s.ID))

	return &discordgo.MessageEmbedField{
		Name:  s.Course,
		Value: strings.Join(lines, "\n"),
	}
}

// renderBoard builds the board embed plus one join button per listed session
func renderBoard(sessions []*models.Session, header string, loc *time.Location) (*discordgo.MessageEmbed, []discordgo.MessageComponent) {
	embed := &discordgo.MessageEmbed{
		Title:       "Study Buddy Board",
		Description: header,
		Color:       colorOK,
	}

	shown := sessions
	if len(shown) > maxEmbedFields {
		shown = shown[:maxEmbedFields]
		embed.Footer = &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("Showing %d of %d sessions", maxEmbedFields, len(sessions)),
		}
	}
	for _, s := range shown {
		embed.Fields = append(embed.Fields, sessionField(s, loc))
	}

	return embed, joinButtons(shown)
}

// joinButtons lays out join buttons in rows, up to what one message can carry
func joinButtons(sessions []*models.Session) []discordgo.MessageComponent {
	var rows []discordgo.MessageComponent
	var row []discordgo.MessageComponent

	for _, s := range sessions {
		if len(rows) == maxRows {
			break
		}
		row = append(row, discordgo.Button{
			Label:    truncate("Join "+s.Course, 80),
			Style:    discordgo.PrimaryButton,
			CustomID: JoinButtonID(s.ID),
		})
		if len(row) == maxButtonsPerRow {
			rows = append(rows, discordgo.ActionsRow{Components: row})
			row = nil
		}
	}
	if len(row) > 0 && len(rows) < maxRows {
		rows = append(rows, discordgo.ActionsRow{Components: row})
	}

	return rows
}

// renderPosted is the public announcement of a new session
func renderPosted(s *models.Session, title, message string, loc *time.Location) (*discordgo.MessageEmbed, []discordgo.MessageComponent) {
	embed := &discordgo.MessageEmbed{
		Title:       title,
		Description: message,
		Color:       colorOK,
		Fields:      []*discordgo.MessageEmbedField{sessionField(s, loc)},
	}
	return embed, joinButtons([]*models.Session{s})
}

func renderJoined(s *models.Session, message string) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       "🎈 You're in!",
		Description: message,
		Color:       colorOK,
		Footer: &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("%s · %d joined", s.Course, s.Joins),
		},
	}
}

func renderMoved(s *models.Session) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       "Session Moved",
		Description: fmt.Sprintf("%s is now at %s.", s.Course, s.Location),
		Color:       colorOK,
	}
}

func renderDeleted(sessionID string) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       "Session Deleted",
		Description: fmt.Sprintf("Session `%s` is off the board.", sessionID),
		Color:       colorOK,
	}
}

// errorType classifies a board failure for the messaging service, with the field it concerns if any
func errorType(err error) (messaging.ErrorType, string) {
	var detail string
	var fe *board.FieldError
	if errors.As(err, &fe) {
		detail = fe.Field
	}

	switch {
	case errors.Is(err, board.ErrMissingField):
		return messaging.ErrorTypeMissingField, detail
	case errors.Is(err, board.ErrFieldTooLong):
		return messaging.ErrorTypeFieldTooLong, detail
	case errors.Is(err, board.ErrInvalidVibe):
		return messaging.ErrorTypeInvalidVibe, detail
	case errors.Is(err, board.ErrInvalidInterval):
		return messaging.ErrorTypeInvalidInterval, ""
	case errors.Is(err, board.ErrDurationExceeded):
		return messaging.ErrorTypeDurationExceeded, ""
	case errors.Is(err, board.ErrInvalidTimeFormat), errors.Is(err, board.ErrInvalidDate):
		return messaging.ErrorTypeInvalidTime, detail
	case errors.Is(err, board.ErrUnauthorized):
		return messaging.ErrorTypeUnauthorized, ""
	case errors.Is(err, board.ErrSessionNotFound):
		return messaging.ErrorTypeNotFound, ""
	default:
		return messaging.ErrorTypeUnknown, ""
	}
}

// respondWithBoardError turns a board failure into an ephemeral error for the caller.
// Unexpected failures are also returned so the bot logs them.
func respondWithBoardError(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, msgs messaging.Service, err error) error {
	kind, detail := errorType(err)

	out, msgErr := msgs.GetErrorMessage(ctx, &messaging.GetErrorMessageInput{
		ErrorType: kind,
		Detail:    detail,
	})
	if msgErr != nil {
		return errors.Join(err, msgErr)
	}

	if respErr := RespondWithError(s, i, out.Title, out.Message); respErr != nil {
		return errors.Join(err, respErr)
	}

	if kind == messaging.ErrorTypeUnknown {
		return err
	}
	return nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
