package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/osse101/TheDigger_Go/internal/domain"
)

const slowResponse = 1 * time.Second

// HealthCommand probes the server and reports its build.
type HealthCommand struct{}

func (c *HealthCommand) Name() string { return "health" }

func (c *HealthCommand) Description() string {
	return "Check server health and version"
}

func (c *HealthCommand) Run(ctx context.Context, args []string) error {
	api, err := newAPIClient(devtoolPlayerID)
	if err != nil {
		return err
	}
	PrintHeader(fmt.Sprintf("Health Check (%s)", api.BaseURL()))

	start := time.Now()
	if err := api.Health(ctx); err != nil {
		return err
	}
	duration := time.Since(start)

	if duration > slowResponse {
		PrintWarning("Slow response time (%v)", duration)
	} else {
		PrintSuccess("Health check passed (response time: %v)", duration)
	}

	info, err := api.Version(ctx)
	if err != nil {
		return err
	}
	PrintInfo("Version %s (%s), store %s", info.Version, info.GoVersion, info.Store)
	return nil
}

// SeedCommand loads leaderboard standings from a YAML file.
type SeedCommand struct{}

func (c *SeedCommand) Name() string { return "seed" }

func (c *SeedCommand) Description() string {
	return "Seed leaderboard standings from a YAML file"
}

type seedFile struct {
	Players []seedPlayer `yaml:"players"`
}

type seedPlayer struct {
	Name  string   `yaml:"name"`
	Money *float64 `yaml:"money"`
	Depth *float64 `yaml:"depth"`
}

func (c *SeedCommand) Run(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return errors.New("usage: seed <file.yaml>")
	}
	players, err := readSeedFile(args[0])
	if err != nil {
		return err
	}

	api, err := newAPIClient(devtoolPlayerID)
	if err != nil {
		return err
	}

	PrintHeader("Seeding leaderboard")
	updated, err := api.AdminUpsertLeaderboard(ctx, players)
	if err != nil {
		return err
	}
	PrintSuccess("Updated %d of %d players", updated, len(players))
	return nil
}

func readSeedFile(path string) ([]domain.PlayerScore, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}
	return parseSeed(raw)
}

func parseSeed(raw []byte) ([]domain.PlayerScore, error) {
	var file seedFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("failed to parse seed file: %w", err)
	}
	if len(file.Players) == 0 {
		return nil, errors.New("seed file has no players")
	}

	players := make([]domain.PlayerScore, 0, len(file.Players))
	for i, p := range file.Players {
		name := strings.TrimSpace(p.Name)
		if name == "" {
			return nil, fmt.Errorf("player %d has no name", i)
		}
		players = append(players, domain.PlayerScore{Name: name, Money: p.Money, Depth: p.Depth})
	}
	return players, nil
}

// MintTokenCommand signs a player token through the admin API.
type MintTokenCommand struct{}

func (c *MintTokenCommand) Name() string { return "mint-token" }

func (c *MintTokenCommand) Description() string {
	return "Mint a player token: mint-token <player-id> [name] [ttl]"
}

func (c *MintTokenCommand) Run(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return errors.New("usage: mint-token <player-id> [name] [ttl]")
	}
	playerID := args[0]
	var name string
	if len(args) > 1 {
		name = args[1]
	}
	var ttl time.Duration
	if len(args) > 2 {
		d, err := time.ParseDuration(args[2])
		if err != nil {
			return fmt.Errorf("invalid ttl %q: %w", args[2], err)
		}
		ttl = d
	}

	api, err := newAPIClient(devtoolPlayerID)
	if err != nil {
		return err
	}
	resp, err := api.MintToken(ctx, playerID, name, ttl)
	if err != nil {
		return err
	}

	PrintSuccess("Token for %s", playerID)
	if resp.ExpiresAt != nil {
		PrintInfo("Expires %s", resp.ExpiresAt.Format(time.RFC3339))
	}
	fmt.Fprintln(out, resp.Token)
	return nil
}

// PostActivityCommand posts a custom activity so stream consumers can be
// checked end to end.
type PostActivityCommand struct{}

func (c *PostActivityCommand) Name() string { return "post-activity" }

func (c *PostActivityCommand) Description() string {
	return "Post a test activity to the community feed"
}

func (c *PostActivityCommand) Run(ctx context.Context, args []string) error {
	details := "devtool test activity"
	if len(args) > 0 {
		details = strings.Join(args, " ")
	}

	api, err := newAPIClient(getEnv("DEVTOOL_PLAYER_ID", devtoolPlayerID))
	if err != nil {
		return err
	}

	PrintHeader("Posting activity")
	if err := api.PostActivity(ctx, domain.ActivityCustom, details); err != nil {
		return err
	}

	recent, err := api.Activities(ctx, 1)
	if err != nil {
		return err
	}
	if len(recent) == 0 {
		PrintWarning("Activity posted but the feed is empty")
		return nil
	}
	PrintSuccess("Latest activity: %s", recent[0].Details)
	return nil
}
