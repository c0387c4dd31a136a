// Command autodig plays the game headlessly through the HTTP API. It is
// handy for load testing and for seeding the leaderboard in development.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/osse101/TheDigger_Go/internal/achievement"
	"github.com/osse101/TheDigger_Go/internal/bootstrap"
	"github.com/osse101/TheDigger_Go/internal/catalog"
	"github.com/osse101/TheDigger_Go/internal/client"
	"github.com/osse101/TheDigger_Go/internal/clock"
	"github.com/osse101/TheDigger_Go/internal/config"
	"github.com/osse101/TheDigger_Go/internal/domain"
	"github.com/osse101/TheDigger_Go/internal/logger"
	"github.com/osse101/TheDigger_Go/internal/session"
)

// Default values for optional configuration
const (
	DefaultAPIURL        = "http://localhost:8080"
	DefaultClickInterval = 250 * time.Millisecond
	DefaultBuyInterval   = 5 * time.Second
)

type autodigConfig struct {
	Client        client.Config
	Name          string
	ClickInterval time.Duration
	TuningPath    string
	CatalogPath   string
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
		slog.Error("Autodig failed", "error", err)
		os.Exit(1)
	}
}

// loadConfig reads the bot settings from the environment.
func loadConfig() (autodigConfig, error) {
	apiURL := os.Getenv("API_URL")
	if apiURL == "" {
		apiURL = DefaultAPIURL
	}

	playerID := os.Getenv("AUTODIG_PLAYER_ID")
	if playerID == "" {
		playerID = "autodig-" + uuid.NewString()[:8]
	}

	token := os.Getenv("AUTODIG_TOKEN")
	apiKey := os.Getenv("API_KEY")
	if token == "" && apiKey == "" {
		return autodigConfig{}, errors.New("AUTODIG_TOKEN or API_KEY is required")
	}

	interval := DefaultClickInterval
	if raw := os.Getenv("AUTODIG_CLICK_INTERVAL"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil || d <= 0 {
			return autodigConfig{}, fmt.Errorf("invalid AUTODIG_CLICK_INTERVAL %q", raw)
		}
		interval = d
	}

	tuningPath := os.Getenv("TUNING_PATH")
	if tuningPath == "" {
		tuningPath = config.ConfigPathTuning
	}

	return autodigConfig{
		Client: client.Config{
			BaseURL:    apiURL,
			APIKey:     apiKey,
			Token:      token,
			PlayerID:   playerID,
			PlayerName: os.Getenv("AUTODIG_NAME"),
		},
		Name:          os.Getenv("AUTODIG_NAME"),
		ClickInterval: interval,
		TuningPath:    tuningPath,
		CatalogPath:   os.Getenv("CATALOG_PATH"),
	}, nil
}

func run(ctx context.Context, cfg autodigConfig) error {
	tuning, err := config.LoadTuning(cfg.TuningPath)
	if err != nil {
		return err
	}
	engine, err := bootstrap.LoadEngine(cfg.CatalogPath)
	if err != nil {
		return err
	}

	api, err := client.New(cfg.Client)
	if err != nil {
		return err
	}
	if err := api.Health(ctx); err != nil {
		return fmt.Errorf("server not reachable: %w", err)
	}

	loaded, err := api.Init(ctx)
	if err != nil {
		return fmt.Errorf("failed to load game: %w", err)
	}
	snap := loaded.Snapshot
	if snap.PlayerName == "" && cfg.Name != "" {
		name, err := api.Register(ctx, cfg.Name)
		if err != nil {
			slog.Warn("Name registration refused", "name", cfg.Name, "error", err)
		} else {
			snap.PlayerName = name
		}
	}
	log := slog.With(logger.AttrKeyPlayerID, loaded.PlayerID, "name", snap.PlayerName)
	log.Info("Autodig started", "money", snap.Money, "depth", snap.Depth)

	rng := rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), rand.Uint64()))
	sess := session.New(engine, snap, clock.NewReal(), rng, api, session.Events{
		OnAchievement: func(a achievement.Achievement) {
			log.Info("Achievement unlocked", "achievement", a.Name)
		},
		OnBiome: func(b catalog.Biome) {
			log.Info("Biome discovered", "biome", b.Name)
		},
		OnSaved: func(r *domain.SaveResult) {
			if r != nil && r.PlayerStanding != nil {
				log.Info("Progress saved", "rank", r.PlayerStanding.Rank, "of", r.PlayerStanding.Total)
			}
		},
	}, session.Config{
		TickInterval:     tuning.Session.Tick,
		AutosaveInterval: tuning.Session.Autosave,
	})

	done := make(chan struct{})
	go func() {
		defer close(done)
		sess.Run(ctx)
	}()

	dig(ctx, log, sess, engine, cfg.ClickInterval)
	<-done

	final := sess.Snapshot()
	log.Info("Autodig stopped",
		"money", strconv.FormatFloat(final.Money, 'f', 0, 64),
		"depth", strconv.FormatFloat(final.Depth, 'f', 1, 64),
		"clicks", final.TotalClicks)
	return nil
}
