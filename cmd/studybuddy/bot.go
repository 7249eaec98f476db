package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/maxsrimongkol-lgtm/study-buddy/internal/handlers/discord"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newBotCmd(configFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "bot",
		Short: "Run the Discord bot",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(*configFile)
			if err != nil {
				return err
			}
			defer a.close()

			if err := a.cfg.ValidateDiscord(); err != nil {
				return err
			}

			return runBot(a)
		},
	}
}

func runBot(a *app) error {
	bot, err := discord.New(&discord.Config{
		Token:            a.cfg.Discord.Token,
		ApplicationID:    a.cfg.Discord.ApplicationID,
		GuildID:          a.cfg.Discord.GuildID,
		BoardService:     a.board,
		MessagingService: a.messaging,
		Vibes:            boardVibes(&a.cfg.Board),
		TimeLocation:     a.loc,
		Logger:           a.logger,
	})
	if err != nil {
		return fmt.Errorf("failed to create Discord bot: %w", err)
	}

	if err := bot.Start(); err != nil {
		return fmt.Errorf("failed to start Discord bot: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	if err := bot.Stop(); err != nil {
		a.logger.Warn("error stopping bot", zap.Error(err))
	}

	a.logger.Info("bot has been shut down")
	return nil
}
