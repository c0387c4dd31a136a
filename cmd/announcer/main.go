// Command announcer posts community milestones from the activity stream to
// a Discord channel.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/bwmarrin/discordgo"
	"github.com/joho/godotenv"

	"github.com/osse101/TheDigger_Go/internal/announce"
	"github.com/osse101/TheDigger_Go/internal/client"
	"github.com/osse101/TheDigger_Go/internal/identity"
	"github.com/osse101/TheDigger_Go/internal/logger"
)

// DefaultAPIURL is used when API_URL is unset
const DefaultAPIURL = "http://localhost:8080"

type announcerConfig struct {
	Token     string
	ChannelID string
	APIURL    string
	APIKey    string
}

func main() {
	_ = godotenv.Load()
	logger.InitLoggerWithWriter(logger.DefaultConfig(), os.Stdout)

	cfg, err := loadConfig()
	if err != nil {
		slog.Error("Configuration failed", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		slog.Error("Announcer failed", "error", err)
		os.Exit(1)
	}
}

// loadConfig loads and validates the announcer configuration from
// environment variables.
func loadConfig() (announcerConfig, error) {
	token := os.Getenv("DISCORD_TOKEN")
	if token == "" {
		return announcerConfig{}, errors.New("DISCORD_TOKEN is required")
	}
	channelID := os.Getenv("DISCORD_NOTIFICATION_CHANNEL_ID")
	if channelID == "" {
		return announcerConfig{}, errors.New("DISCORD_NOTIFICATION_CHANNEL_ID is required")
	}

	apiURL := os.Getenv("API_URL")
	if apiURL == "" {
		apiURL = DefaultAPIURL
	}
	slog.Info("Configured API URL", "url", apiURL)

	return announcerConfig{
		Token:     token,
		ChannelID: channelID,
		APIURL:    strings.TrimRight(apiURL, "/"),
		APIKey:    os.Getenv("API_KEY"),
	}, nil
}

func run(ctx context.Context, cfg announcerConfig) error {
	dg, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		return err
	}
	dg.AddHandler(func(s *discordgo.Session, r *discordgo.Ready) {
		slog.Info("Bot is ready", "user", r.User.Username)
	})
	if err := dg.Open(); err != nil {
		return err
	}
	defer dg.Close()

	header := http.Header{}
	if cfg.APIKey != "" {
		header.Set(identity.HeaderAPIKey, cfg.APIKey)
	}

	notifier := announce.NewNotifier(dg, cfg.ChannelID)
	stream := announce.NewStream(announce.StreamConfig{
		URL:    cfg.APIURL + client.PathStream,
		Header: header,
		Types:  notifier.EventTypes(),
	})
	notifier.RegisterHandlers(stream)

	slog.Info("SSE notifications enabled", "channel_id", cfg.ChannelID)
	return stream.Run(ctx)
}
