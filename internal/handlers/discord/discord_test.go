package discord

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/maxsrimongkol-lgtm/study-buddy/internal/models"
	"github.com/maxsrimongkol-lgtm/study-buddy/internal/services/board"
	boardMocks "github.com/maxsrimongkol-lgtm/study-buddy/internal/services/board/mocks"
	"github.com/maxsrimongkol-lgtm/study-buddy/internal/services/messaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

func stringOpt(name, value string) *discordgo.ApplicationCommandInteractionDataOption {
	return &discordgo.ApplicationCommandInteractionDataOption{
		Name:  name,
		Type:  discordgo.ApplicationCommandOptionString,
		Value: value,
	}
}

func testSession(i int) *models.Session {
	start := time.Date(2025, 4, 19, 21, 30, 0, 0, time.UTC)
	return &models.Session{
		ID:        fmt.Sprintf("id-%d", i),
		Course:    fmt.Sprintf("CSCI %d", 100+i),
		Location:  "Leavey 2nd floor",
		Vibe:      models.VibeChill,
		StartTime: start,
		EndTime:   start.Add(2 * time.Hour),
		Joins:     i,
	}
}

func TestJoinButtonID(t *testing.T) {
	id, ok := ParseJoinButtonID(JoinButtonID("abc-123"))
	assert.True(t, ok)
	assert.Equal(t, "abc-123", id)

	_, ok = ParseJoinButtonID("join_session:")
	assert.False(t, ok)

	_, ok = ParseJoinButtonID("roll_dice")
	assert.False(t, ok)
}

func TestPostInput(t *testing.T) {
	la, err := time.LoadLocation("America/Los_Angeles")
	require.NoError(t, err)

	opts := optionMap([]*discordgo.ApplicationCommandInteractionDataOption{
		stringOpt(optionCourse, "csci 104"),
		stringOpt(optionLocation, "Leavey 2nd floor"),
		stringOpt(optionVibe, "Chill"),
		stringOpt(optionDate, "2025-04-19"),
		stringOpt(optionStart, "02:30 PM"),
		stringOpt(optionEnd, "4:30pm"),
		stringOpt(optionSecretKey, "abc"),
	})

	input, err := postInput(opts, la)
	require.NoError(t, err)
	assert.Equal(t, "csci 104", input.Course)
	assert.Equal(t, "abc", input.SecretKey)
	assert.Empty(t, input.Description)
	assert.True(t, time.Date(2025, 4, 19, 14, 30, 0, 0, la).Equal(input.StartTime))
	assert.True(t, time.Date(2025, 4, 19, 16, 30, 0, 0, la).Equal(input.EndTime))
}

func TestPostInputBadTime(t *testing.T) {
	opts := optionMap([]*discordgo.ApplicationCommandInteractionDataOption{
		stringOpt(optionCourse, "csci 104"),
		stringOpt(optionLocation, "Leavey"),
		stringOpt(optionVibe, "Chill"),
		stringOpt(optionSecretKey, "abc"),
		stringOpt(optionDate, "2025-04-19"),
		stringOpt(optionStart, "half past two"),
		stringOpt(optionEnd, "4:30 PM"),
	})

	_, err := postInput(opts, time.UTC)
	assert.ErrorIs(t, err, board.ErrInvalidTimeFormat)

	kind, detail := errorType(err)
	assert.Equal(t, messaging.ErrorTypeInvalidTime, kind)
	assert.Equal(t, "start_time", detail)
}

func TestPostInputMissingFieldBeforeBadTime(t *testing.T) {
	opts := optionMap([]*discordgo.ApplicationCommandInteractionDataOption{
		stringOpt(optionLocation, "Leavey"),
		stringOpt(optionVibe, "Chill"),
		stringOpt(optionSecretKey, "abc"),
		stringOpt(optionDate, "2025-04-19"),
		stringOpt(optionStart, "2:30pm-ish"),
		stringOpt(optionEnd, "4:30 PM"),
	})

	_, err := postInput(opts, time.UTC)
	assert.ErrorIs(t, err, board.ErrMissingField)

	kind, detail := errorType(err)
	assert.Equal(t, messaging.ErrorTypeMissingField, kind)
	assert.Equal(t, "course", detail)
}

func TestStringOption(t *testing.T) {
	opts := optionMap([]*discordgo.ApplicationCommandInteractionDataOption{
		stringOpt(optionCourse, "MATH 225"),
		{Name: "count", Type: discordgo.ApplicationCommandOptionInteger, Value: float64(3)},
	})

	assert.Equal(t, "MATH 225", stringOption(opts, optionCourse))
	assert.Equal(t, "", stringOption(opts, optionDescription))
	assert.Equal(t, "", stringOption(opts, "count"))
}

func TestErrorType(t *testing.T) {
	testCases := []struct {
		err    error
		kind   messaging.ErrorType
		detail string
	}{
		{&board.FieldError{Field: "course", Err: board.ErrMissingField}, messaging.ErrorTypeMissingField, "course"},
		{&board.FieldError{Field: "location", Err: board.ErrFieldTooLong}, messaging.ErrorTypeFieldTooLong, "location"},
		{&board.FieldError{Field: "vibe", Err: board.ErrInvalidVibe}, messaging.ErrorTypeInvalidVibe, "vibe"},
		{board.ErrInvalidInterval, messaging.ErrorTypeInvalidInterval, ""},
		{board.ErrDurationExceeded, messaging.ErrorTypeDurationExceeded, ""},
		{&board.FieldError{Field: "date", Err: board.ErrInvalidDate}, messaging.ErrorTypeInvalidTime, "date"},
		{board.ErrUnauthorized, messaging.ErrorTypeUnauthorized, ""},
		{board.ErrSessionNotFound, messaging.ErrorTypeNotFound, ""},
		{errors.New("redis down"), messaging.ErrorTypeUnknown, ""},
	}

	for _, tc := range testCases {
		t.Run(tc.err.Error(), func(t *testing.T) {
			kind, detail := errorType(tc.err)
			assert.Equal(t, tc.kind, kind)
			assert.Equal(t, tc.detail, detail)
		})
	}
}

func TestRenderBoard(t *testing.T) {
	sessions := []*models.Session{testSession(1), testSession(2)}
	sessions[1].Description = "bring snacks"

	embed, components := renderBoard(sessions, "2 sessions are live.", time.UTC)

	assert.Equal(t, "2 sessions are live.", embed.Description)
	require.Len(t, embed.Fields, 2)
	assert.Equal(t, "CSCI 101", embed.Fields[0].Name)
	assert.Contains(t, embed.Fields[0].Value, "Leavey 2nd floor")
	assert.Contains(t, embed.Fields[0].Value, "Sat Apr 19, 9:30 PM - 11:30 PM")
	assert.Contains(t, embed.Fields[0].Value, "1 joined")
	assert.NotContains(t, embed.Fields[0].Value, "bring snacks")
	assert.Contains(t, embed.Fields[1].Value, "bring snacks")
	assert.Nil(t, embed.Footer)

	require.Len(t, components, 1)
	row := components[0].(discordgo.ActionsRow)
	require.Len(t, row.Components, 2)
	assert.Equal(t, JoinButtonID("id-1"), row.Components[0].(discordgo.Button).CustomID)
}

func TestRenderBoardEmpty(t *testing.T) {
	embed, components := renderBoard(nil, "No sessions yet.", time.UTC)
	assert.Empty(t, embed.Fields)
	assert.Empty(t, components)
}

func TestRenderBoardLimits(t *testing.T) {
	var sessions []*models.Session
	for i := 0; i < 30; i++ {
		sessions = append(sessions, testSession(i))
	}

	embed, components := renderBoard(sessions, "", time.UTC)
	assert.Len(t, embed.Fields, maxEmbedFields)
	require.NotNil(t, embed.Footer)
	assert.Equal(t, "Showing 25 of 30 sessions", embed.Footer.Text)

	require.Len(t, components, maxRows)
	for _, c := range components {
		assert.Len(t, c.(discordgo.ActionsRow).Components, maxButtonsPerRow)
	}
}

func TestRenderWindowAcrossMidnight(t *testing.T) {
	s := testSession(1)
	s.StartTime = time.Date(2025, 4, 19, 22, 0, 0, 0, time.UTC)
	s.EndTime = time.Date(2025, 4, 20, 1, 0, 0, 0, time.UTC)

	assert.Equal(t, "Sat Apr 19, 10:00 PM - Sun Apr 20, 1:00 AM", formatWindow(s, time.UTC))
}

func TestCommandDefinition(t *testing.T) {
	cmd := NewStudyBuddyCommand(nil, nil, models.DefaultVibes, time.UTC, nil)
	def := cmd.GetCommand()

	assert.Equal(t, "studybuddy", def.Name)
	names := make([]string, 0, len(def.Options))
	for _, sub := range def.Options {
		names = append(names, sub.Name)

		// Discord rejects required options after optional ones
		seenOptional := false
		for _, opt := range sub.Options {
			if !opt.Required {
				seenOptional = true
				continue
			}
			assert.False(t, seenOptional, "required option %s after optional in %s", opt.Name, sub.Name)
		}
	}
	assert.Equal(t, []string{subcommandPost, subcommandList, subcommandDelete, subcommandMove}, names)

	var vibe *discordgo.ApplicationCommandOption
	for _, opt := range def.Options[0].Options {
		if opt.Name == optionVibe {
			vibe = opt
		}
	}
	require.NotNil(t, vibe)
	assert.Len(t, vibe.Choices, len(models.DefaultVibes))

	free := NewStudyBuddyCommand(nil, nil, nil, nil, nil).GetCommand()
	for _, opt := range free.Options[0].Options {
		if opt.Name == optionVibe {
			assert.Empty(t, opt.Choices)
		}
	}
}

func TestInteractionUser(t *testing.T) {
	assert.Equal(t, "nick", interactionUser(&discordgo.InteractionCreate{Interaction: &discordgo.Interaction{
		Member: &discordgo.Member{Nick: "nick", User: &discordgo.User{Username: "user"}},
	}}))
	assert.Equal(t, "user", interactionUser(&discordgo.InteractionCreate{Interaction: &discordgo.Interaction{
		Member: &discordgo.Member{User: &discordgo.User{Username: "user"}},
	}}))
	assert.Equal(t, "dm", interactionUser(&discordgo.InteractionCreate{Interaction: &discordgo.Interaction{
		User: &discordgo.User{Username: "dm"},
	}}))
}

func TestNewBot(t *testing.T) {
	ctrl := gomock.NewController(t)
	boardSvc := boardMocks.NewMockService(ctrl)
	msgs, err := messaging.NewService(&messaging.ServiceConfig{})
	require.NoError(t, err)

	_, err = New(nil)
	assert.Error(t, err)

	_, err = New(&Config{BoardService: boardSvc, MessagingService: msgs})
	assert.Error(t, err)

	_, err = New(&Config{Token: "token", MessagingService: msgs})
	assert.Error(t, err)

	_, err = New(&Config{Token: "token", BoardService: boardSvc})
	assert.Error(t, err)

	bot, err := New(&Config{Token: "token", BoardService: boardSvc, MessagingService: msgs})
	require.NoError(t, err)
	assert.Equal(t, time.Local, bot.loc)
}

// brokenMessaging fails every join message
type brokenMessaging struct {
	messaging.Service
}

func (brokenMessaging) GetJoinMessage(context.Context, *messaging.GetJoinMessageInput) (*messaging.GetJoinMessageOutput, error) {
	return nil, errors.New("no copy")
}

func TestJoinMessageFallsBack(t *testing.T) {
	s := testSession(3)

	msg := joinMessage(context.Background(), brokenMessaging{}, s, zap.NewNop())
	assert.Equal(t, "You joined CSCI 103.", msg)

	embed := renderJoined(s, msg)
	assert.Equal(t, msg, embed.Description)
	assert.Contains(t, embed.Footer.Text, "3 joined")
}

func TestJoinMessage(t *testing.T) {
	msgs, err := messaging.NewService(&messaging.ServiceConfig{})
	require.NoError(t, err)

	msg := joinMessage(context.Background(), msgs, testSession(1), zap.NewNop())
	assert.NotEmpty(t, msg)
}
