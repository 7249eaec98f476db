package discord

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/maxsrimongkol-lgtm/study-buddy/internal/models"
	"github.com/maxsrimongkol-lgtm/study-buddy/internal/services/board"
	"github.com/maxsrimongkol-lgtm/study-buddy/internal/services/messaging"
	"go.uber.org/zap"
)

// Subcommand and option names of /studybuddy
const (
	subcommandPost   = "post"
	subcommandList   = "list"
	subcommandDelete = "delete"
	subcommandMove   = "move"

	optionCourse      = "course"
	optionLocation    = "location"
	optionVibe        = "vibe"
	optionDate        = "date"
	optionStart       = "start"
	optionEnd         = "end"
	optionSecretKey   = "secret_key"
	optionDescription = "description"
	optionSessionID   = "session_id"
)

// StudyBuddyCommand handles the /studybuddy command
type StudyBuddyCommand struct {
	BaseCommand
	board     board.Service
	messaging messaging.Service
	loc       *time.Location
	logger    *zap.Logger
}

// NewStudyBuddyCommand creates the /studybuddy command handler. When vibes is
// non-empty the vibe option offers them as choices; otherwise it is free text.
func NewStudyBuddyCommand(boardService board.Service, messagingService messaging.Service, vibes []models.Vibe, loc *time.Location, logger *zap.Logger) *StudyBuddyCommand {
	if loc == nil {
		loc = time.Local
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	vibeOption := &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionString,
		Name:        optionVibe,
		Description: "How the session will feel",
		Required:    true,
	}
	for _, v := range vibes {
		vibeOption.Choices = append(vibeOption.Choices, &discordgo.ApplicationCommandOptionChoice{
			Name:  string(v),
			Value: string(v),
		})
	}

	secretKeyOption := &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionString,
		Name:        optionSecretKey,
		Description: "Key that lets you edit or delete the session later",
		Required:    true,
	}
	sessionIDOption := &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionString,
		Name:        optionSessionID,
		Description: "ID shown under the session on the board",
		Required:    true,
	}

	return &StudyBuddyCommand{
		BaseCommand: BaseCommand{
			Name:        "studybuddy",
			Description: "Find and post study sessions",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        subcommandPost,
					Description: "Post a new study session",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        optionCourse,
							Description: "Course code, e.g. CSCI 104",
							Required:    true,
						},
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        optionLocation,
							Description: "Where you'll be, e.g. Leavey 2nd floor",
							Required:    true,
						},
						vibeOption,
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        optionDate,
							Description: "Date as YYYY-MM-DD",
							Required:    true,
						},
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        optionStart,
							Description: "Start time, e.g. 02:30 PM",
							Required:    true,
						},
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        optionEnd,
							Description: "End time, e.g. 04:30 PM",
							Required:    true,
						},
						secretKeyOption,
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        optionDescription,
							Description: "Anything else people should know",
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        subcommandList,
					Description: "Show the sessions happening now or later",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        subcommandDelete,
					Description: "Delete a session you posted",
					Options:     []*discordgo.ApplicationCommandOption{sessionIDOption, secretKeyOption},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        subcommandMove,
					Description: "Change where a session you posted happens",
					Options: []*discordgo.ApplicationCommandOption{
						sessionIDOption,
						secretKeyOption,
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        optionLocation,
							Description: "New location",
							Required:    true,
						},
					},
				},
			},
		},
		board:     boardService,
		messaging: messagingService,
		loc:       loc,
		logger:    logger,
	}
}

// Handle processes a Discord interaction for the studybuddy command
func (c *StudyBuddyCommand) Handle(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	if i.Type != discordgo.InteractionApplicationCommand {
		return nil
	}

	data := i.ApplicationCommandData()
	if data.Name != c.Name || len(data.Options) == 0 {
		return nil
	}

	ctx := context.Background()
	sub := data.Options[0]
	opts := optionMap(sub.Options)

	switch sub.Name {
	case subcommandPost:
		return c.handlePost(ctx, s, i, opts)
	case subcommandList:
		return c.handleList(ctx, s, i)
	case subcommandDelete:
		return c.handleDelete(ctx, s, i, opts)
	case subcommandMove:
		return c.handleMove(ctx, s, i, opts)
	default:
		return errors.New("unknown subcommand")
	}
}

func (c *StudyBuddyCommand) handlePost(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, opts map[string]*discordgo.ApplicationCommandInteractionDataOption) error {
	input, err := postInput(opts, c.loc)
	if err != nil {
		return respondWithBoardError(ctx, s, i, c.messaging, err)
	}

	out, err := c.board.Create(ctx, input)
	if err != nil {
		return respondWithBoardError(ctx, s, i, c.messaging, err)
	}

	msg, err := c.messaging.GetPostedMessage(ctx, &messaging.GetPostedMessageInput{
		Course:   out.Session.Course,
		Location: out.Session.Location,
	})
	if err != nil {
		return err
	}

	c.logger.Info("session posted from discord",
		zap.String("session_id", out.Session.ID),
		zap.String("user", interactionUser(i)),
	)

	embed, components := renderPosted(out.Session, msg.Title, msg.Message, c.loc)
	return RespondWithEmbed(s, i, embed, components)
}

func (c *StudyBuddyCommand) handleList(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) error {
	out, err := c.board.ListActive(ctx, &board.ListActiveInput{})
	if err != nil {
		return respondWithBoardError(ctx, s, i, c.messaging, err)
	}

	header, err := c.messaging.GetBoardMessage(ctx, &messaging.GetBoardMessageInput{
		ActiveCount: len(out.Sessions),
	})
	if err != nil {
		return err
	}

	embed, components := renderBoard(out.Sessions, header.Message, c.loc)
	return RespondWithEmbed(s, i, embed, components)
}

func (c *StudyBuddyCommand) handleDelete(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, opts map[string]*discordgo.ApplicationCommandInteractionDataOption) error {
	sessionID := stringOption(opts, optionSessionID)

	_, err := c.board.Delete(ctx, &board.DeleteSessionInput{
		SessionID: sessionID,
		SecretKey: stringOption(opts, optionSecretKey),
	})
	if err != nil {
		return respondWithBoardError(ctx, s, i, c.messaging, err)
	}

	return RespondWithEphemeralEmbed(s, i, renderDeleted(sessionID))
}

func (c *StudyBuddyCommand) handleMove(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, opts map[string]*discordgo.ApplicationCommandInteractionDataOption) error {
	out, err := c.board.EditLocation(ctx, &board.EditLocationInput{
		SessionID: stringOption(opts, optionSessionID),
		SecretKey: stringOption(opts, optionSecretKey),
		Location:  stringOption(opts, optionLocation),
	})
	if err != nil {
		return respondWithBoardError(ctx, s, i, c.messaging, err)
	}

	return RespondWithEphemeralEmbed(s, i, renderMoved(out.Session))
}

// postInput builds the create input from the post subcommand options
func postInput(opts map[string]*discordgo.ApplicationCommandInteractionDataOption, loc *time.Location) (*board.CreateSessionInput, error) {
	if err := board.CheckRequired(
		stringOption(opts, optionCourse),
		stringOption(opts, optionLocation),
		stringOption(opts, optionVibe),
		stringOption(opts, optionSecretKey),
	); err != nil {
		return nil, err
	}

	start, end, err := board.ParseWindow(
		stringOption(opts, optionDate),
		stringOption(opts, optionStart),
		stringOption(opts, optionEnd),
		loc,
	)
	if err != nil {
		return nil, err
	}

	return &board.CreateSessionInput{
		Course:      stringOption(opts, optionCourse),
		Location:    stringOption(opts, optionLocation),
		Vibe:        stringOption(opts, optionVibe),
		Description: stringOption(opts, optionDescription),
		SecretKey:   stringOption(opts, optionSecretKey),
		StartTime:   start,
		EndTime:     end,
	}, nil
}

func optionMap(options []*discordgo.ApplicationCommandInteractionDataOption) map[string]*discordgo.ApplicationCommandInteractionDataOption {
	m := make(map[string]*discordgo.ApplicationCommandInteractionDataOption, len(options))
	for _, opt := range options {
		m[opt.Name] = opt
	}
	return m
}

// stringOption returns the value of a string option, or "" when it was not given
func stringOption(opts map[string]*discordgo.ApplicationCommandInteractionDataOption, name string) string {
	opt, ok := opts[name]
	if !ok || opt.Type != discordgo.ApplicationCommandOptionString {
		return ""
	}
	return opt.StringValue()
}
