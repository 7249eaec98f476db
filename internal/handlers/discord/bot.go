package discord

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/maxsrimongkol-lgtm/study-buddy/internal/models"
	"github.com/maxsrimongkol-lgtm/study-buddy/internal/services/board"
	"github.com/maxsrimongkol-lgtm/study-buddy/internal/services/messaging"
	"go.uber.org/zap"
)

// Bot represents the Discord bot instance
type Bot struct {
	session    *discordgo.Session
	commands   map[string]CommandHandler
	commandIDs map[string]string // Maps command name to command ID
	board      board.Service
	messaging  messaging.Service
	loc        *time.Location
	logger     *zap.Logger
	config     *Config
}

// Config holds the configuration for the bot
type Config struct {
	// Discord bot token
	Token string

	// Application ID for the bot
	ApplicationID string

	// Optional guild ID for development (server-specific commands)
	GuildID string

	BoardService     board.Service
	MessagingService messaging.Service

	// Vibes are offered as choices on /studybuddy post; free text when empty
	Vibes []models.Vibe

	// TimeLocation is the zone dates and times are read and shown in; time.Local when nil
	TimeLocation *time.Location

	Logger *zap.Logger
}

// New creates a new Discord bot
func New(cfg *Config) (*Bot, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.Token == "" {
		return nil, errors.New("token cannot be empty")
	}

	if cfg.BoardService == nil {
		return nil, errors.New("board service cannot be nil")
	}

	if cfg.MessagingService == nil {
		return nil, errors.New("messaging service cannot be nil")
	}

	session, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("failed to create Discord session: %w", err)
	}

	loc := cfg.TimeLocation
	if loc == nil {
		loc = time.Local
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	bot := &Bot{
		session:    session,
		commands:   make(map[string]CommandHandler),
		commandIDs: make(map[string]string),
		board:      cfg.BoardService,
		messaging:  cfg.MessagingService,
		loc:        loc,
		logger:     logger.Named("discord"),
		config:     cfg,
	}

	session.AddHandler(bot.handleInteraction)

	return bot, nil
}

// Start opens the Discord connection and registers commands
func (b *Bot) Start() error {
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("failed to open Discord connection: %w", err)
	}

	cmd := NewStudyBuddyCommand(b.board, b.messaging, b.config.Vibes, b.loc, b.logger)
	if err := b.RegisterCommand(cmd); err != nil {
		return fmt.Errorf("failed to register %s command: %w", cmd.GetName(), err)
	}

	b.logger.Info("bot is running")
	return nil
}

// Stop removes the registered commands and closes the connection
func (b *Bot) Stop() error {
	appID := b.appID()

	for cmdName, cmdID := range b.commandIDs {
		if err := b.session.ApplicationCommandDelete(appID, b.config.GuildID, cmdID); err != nil {
			b.logger.Warn("failed to delete command",
				zap.String("command", cmdName),
				zap.String("command_id", cmdID),
				zap.Error(err),
			)
		}
	}

	return b.session.Close()
}

func (b *Bot) appID() string {
	if b.config.ApplicationID != "" {
		return b.config.ApplicationID
	}
	// Fall back to session user ID if application ID is not provided
	return b.session.State.User.ID
}

// RegisterCommand registers a command with Discord, per guild when GuildID is set and globally otherwise
func (b *Bot) RegisterCommand(cmd CommandHandler) error {
	createdCmd, err := b.session.ApplicationCommandCreate(b.appID(), b.config.GuildID, cmd.GetCommand())
	if err != nil {
		return fmt.Errorf("failed to create command %s: %w", cmd.GetName(), err)
	}

	b.commands[cmd.GetName()] = cmd
	b.commandIDs[cmd.GetName()] = createdCmd.ID
	b.logger.Info("registered command",
		zap.String("command", cmd.GetName()),
		zap.String("command_id", createdCmd.ID),
		zap.String("guild_id", b.config.GuildID),
	)

	return nil
}

// handleInteraction routes slash commands and button clicks
func (b *Bot) handleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		name := i.ApplicationCommandData().Name
		if h, ok := b.commands[name]; ok {
			if err := h.Handle(s, i); err != nil {
				b.logger.Error("error handling command", zap.String("command", name), zap.Error(err))
			}
		}
	case discordgo.InteractionMessageComponent:
		if err := b.handleComponentInteraction(s, i); err != nil {
			b.logger.Error("error handling component interaction", zap.Error(err))
		}
	}
}

// handleComponentInteraction handles button clicks
func (b *Bot) handleComponentInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	customID := i.MessageComponentData().CustomID

	if sessionID, ok := ParseJoinButtonID(customID); ok {
		return b.handleJoinButton(s, i, sessionID)
	}

	b.logger.Debug("unknown component", zap.String("custom_id", customID))
	return nil
}

// handleJoinButton bumps the join count and cheers the clicker privately
func (b *Bot) handleJoinButton(s *discordgo.Session, i *discordgo.InteractionCreate, sessionID string) error {
	ctx := context.Background()

	out, err := b.board.Join(ctx, &board.JoinSessionInput{SessionID: sessionID})
	if err != nil {
		return respondWithBoardError(ctx, s, i, b.messaging, err)
	}

	b.logger.Debug("joined from button",
		zap.String("session_id", sessionID),
		zap.String("user", interactionUser(i)),
	)

	return RespondWithEphemeralEmbed(s, i, renderJoined(out.Session, joinMessage(ctx, b.messaging, out.Session, b.logger)))
}

// joinMessage picks the cheer for a join. The join has already counted, so a
// messaging failure falls back to plain copy instead of failing the interaction.
func joinMessage(ctx context.Context, msgs messaging.Service, session *models.Session, logger *zap.Logger) string {
	msg, err := msgs.GetJoinMessage(ctx, &messaging.GetJoinMessageInput{
		Course: session.Course,
		Joins:  session.Joins,
	})
	if err != nil {
		logger.Warn("failed to pick join message", zap.Error(err))
		return fmt.Sprintf("You joined %s.", session.Course)
	}
	return msg.Message
}

// interactionUser names whoever triggered the interaction, in guilds or DMs
func interactionUser(i *discordgo.InteractionCreate) string {
	switch {
	case i.Member != nil && i.Member.Nick != "":
		return i.Member.Nick
	case i.Member != nil && i.Member.User != nil:
		return i.Member.User.Username
	case i.User != nil:
		return i.User.Username
	default:
		return ""
	}
}
