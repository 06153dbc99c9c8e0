// Command paladins-cli is a small console frontend for the Paladins API
// client: server status, player lookups, player search and the champion
// catalog.
//
// Configuration comes from the environment (optionally a .env file):
//
//	HIREZ_DEV_ID    developer ID (required)
//	HIREZ_AUTH_KEY  developer auth key (required)
//	HIREZ_API_URL   API base URL override (optional)
//	REDIS_ADDR      Redis address for shared quota accounting (optional)
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/DevilXD/HiRezAPI/pkg/client"
	"github.com/DevilXD/HiRezAPI/pkg/logging"
	"github.com/DevilXD/HiRezAPI/pkg/usage"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout))
}

func run(args []string, out io.Writer) int {
	flags := flag.NewFlagSet("paladins-cli", flag.ContinueOnError)
	var (
		status    = flags.Bool("status", false, "show the server status")
		player    = flags.String("player", "", "look up a player by ID or name")
		search    = flags.String("search", "", "search players by name")
		champions = flags.Bool("champions", false, "list the champion catalog")
		showUsage = flags.Bool("usage", false, "show today's API quota usage")
		platform  = flags.String("platform", "", "platform for -search (pc, steam, ps4, xbox, switch, discord)")
		language  = flags.Int("lang", int(client.LanguageEnglish), "reference data language ID")
		logLevel  = flags.String("log-level", "warn", "log level (debug, info, warn, error)")
		pretty    = flags.Bool("pretty", true, "human-readable log output")
	)
	if err := flags.Parse(args); err != nil {
		return 2
	}

	// A missing .env file is fine; the variables may come from the
	// real environment.
	_ = godotenv.Load()

	logger := logging.Setup(logging.Config{
		Level:  logging.LogLevel(*logLevel),
		Pretty: *pretty,
		Output: os.Stderr,
	})

	devID := os.Getenv("HIREZ_DEV_ID")
	authKey := os.Getenv("HIREZ_AUTH_KEY")
	if devID == "" || authKey == "" {
		logger.Error().Msg("HIREZ_DEV_ID and HIREZ_AUTH_KEY must be set")
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := client.DefaultConfig(devID, authKey)
	if url := os.Getenv("HIREZ_API_URL"); url != "" {
		cfg.URL = url
	}

	tracker, err := newTracker(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to set up usage tracking")
		return 1
	}
	cfg.Usage = tracker

	api, err := client.New(cfg)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to create client")
		return 1
	}
	defer api.Close()

	lang := client.Language(*language)

	switch {
	case *status:
		err = showStatus(ctx, api, out)
	case *player != "":
		err = showPlayer(ctx, api, out, *player)
	case *search != "":
		err = searchPlayers(ctx, api, out, *search, client.ParsePlatform(*platform))
	case *champions:
		err = listChampions(ctx, api, out, lang)
	case *showUsage:
		err = showQuota(ctx, tracker, out)
	default:
		flags.Usage()
		return 2
	}

	if err != nil {
		logger.Error().Err(err).Msg("Operation failed")
		return 1
	}
	return 0
}

// newTracker returns a Redis-backed usage tracker when REDIS_ADDR is
// set, so several processes can share one daily quota, and an in-memory
// one otherwise.
func newTracker(ctx context.Context) (usage.Tracker, error) {
	addr := getEnv("REDIS_ADDR", "")
	if addr == "" {
		return usage.NewMemoryTracker(nil), nil
	}

	redisClient := redis.NewClient(&redis.Options{Addr: addr})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connect to redis at %s: %w", addr, err)
	}
	return usage.NewRedisTracker(redisClient, logging.NewLogger("usage")), nil
}

func showStatus(ctx context.Context, api *client.Client, out io.Writer) error {
	status, ok := api.GetServerStatus(ctx, false)
	if !ok {
		return fmt.Errorf("server status is unavailable")
	}

	if status.AllUp {
		fmt.Fprintln(out, "All live platforms are up.")
	} else {
		fmt.Fprintln(out, "Some live platforms are down.")
	}
	if status.LimitedAccess {
		fmt.Fprintln(out, "Limited access is in effect.")
	}
	for _, p := range status.Statuses {
		state := "DOWN"
		if p.Up {
			state = "UP"
		}
		fmt.Fprintf(out, "  %-8s %-5s %-5s version %s\n", p.Platform, p.Environment, state, p.Version)
	}
	return nil
}

func showPlayer(ctx context.Context, api *client.Client, out io.Writer, arg string) error {
	var (
		player *client.Player
		err    error
	)
	if id, convErr := strconv.Atoi(arg); convErr == nil {
		player, err = api.GetPlayer(ctx, id)
	} else {
		player, err = api.GetPlayerByName(ctx, arg)
	}
	switch {
	case errors.Is(err, client.ErrPrivate):
		fmt.Fprintf(out, "Player %q has a private profile.\n", arg)
		return nil
	case errors.Is(err, client.ErrNotFound):
		fmt.Fprintf(out, "Player %q was not found.\n", arg)
		return nil
	case err != nil:
		return err
	}

	fmt.Fprintf(out, "%s [%s]\n", player.Name, player.Platform)
	fmt.Fprintf(out, "  Level:      %d\n", player.Level)
	fmt.Fprintf(out, "  Region:     %s\n", player.Region)
	fmt.Fprintf(out, "  Playtime:   %s\n", player.Playtime)
	fmt.Fprintf(out, "  Created:    %s\n", player.CreatedAt.Format("2006-01-02"))
	fmt.Fprintf(out, "  Casual:     %d-%d (%s)\n", player.Casual.Wins, player.Casual.Losses, player.Casual.WinrateText())
	if best := player.RankedBest(); best.MatchesPlayed() > 0 {
		fmt.Fprintf(out, "  Ranked:     %s, %d-%d (%s) on %s\n",
			best.Rank, best.Wins, best.Losses, best.WinrateText(), best.Input)
	}
	return nil
}

func searchPlayers(ctx context.Context, api *client.Client, out io.Writer, name string, platform client.Platform) error {
	players, err := api.SearchPlayers(ctx, name, platform)
	if err != nil {
		return err
	}
	if len(players) == 0 {
		fmt.Fprintf(out, "No players named %q found.\n", name)
		return nil
	}

	for _, p := range players {
		fmt.Fprintf(out, "%10d  %-20s %s\n", p.ID, p.Name, p.Platform)
	}
	return nil
}

func listChampions(ctx context.Context, api *client.Client, out io.Writer, language client.Language) error {
	info, ok := api.GetChampionInfo(ctx, language, false)
	if !ok {
		return fmt.Errorf("champion reference data is unavailable for %s", language)
	}

	for _, c := range info.Champions {
		complete := ""
		if !c.IsComplete() {
			complete = "  (partial data)"
		}
		fmt.Fprintf(out, "%6d  %-16s %-10s %5d HP%s\n", c.ID, c.Name, c.Role, c.Health, complete)
	}
	fmt.Fprintf(out, "%d champions, %d cards, %d talents, %d items\n",
		len(info.Champions), len(info.Cards()), len(info.Talents()), len(info.Items()))
	return nil
}

func showQuota(ctx context.Context, tracker usage.Tracker, out io.Writer) error {
	state, err := tracker.State(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Usage for %s:\n", state.Day)
	fmt.Fprintf(out, "  Requests: %d/%d (%d remaining)\n", state.Requests, state.RequestLimit, state.RequestsRemaining())
	fmt.Fprintf(out, "  Sessions: %d/%d (%d remaining)\n", state.Sessions, state.SessionLimit, state.SessionsRemaining())
	if state.NearLimit() {
		fmt.Fprintln(out, "  Warning: over 80% of the daily request quota is used.")
	}
	return nil
}

// getEnv returns the environment value or a fallback.
func getEnv(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}
