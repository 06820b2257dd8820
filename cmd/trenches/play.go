package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/LandoCrissian/LAMMB-Runner/internal/core"
	"github.com/LandoCrissian/LAMMB-Runner/internal/games/runner"
	"github.com/LandoCrissian/LAMMB-Runner/internal/leaderboard"
	"github.com/LandoCrissian/LAMMB-Runner/internal/platform/tui"
	"github.com/LandoCrissian/LAMMB-Runner/internal/registry"
	"github.com/LandoCrissian/LAMMB-Runner/internal/storage"
)

var (
	flagConfig     string
	flagDifficulty string
	flagPractice   bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Run the game",
	Long: `Start the runner with its start menu.

Controls:
  Left/Right, A/D  - Change lane
  Up/W/Space       - Jump
  Down/S           - Slide
  P/Esc            - Pause
  R                - Restart (after game over)
  B                - Back to menu (paused or game over)
  Q/Ctrl+C         - Quit

Difficulty options:
  easy   - Start slow, progresses to max speed
  normal - Start at 30% difficulty, progresses to max
  hard   - Start at 70% difficulty, progresses to max
  fixed  - No progression, stays at config's initial level

When --api is set and a wallet key exists, finished runs are signed and
submitted to the weekly leaderboard. Practice runs are never submitted.

Examples:
  trenches play
  trenches play --difficulty hard
  trenches play --practice
  trenches play --config ./my-runner.yaml
  trenches play --api http://localhost:8787`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom runner config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	playCmd.Flags().BoolVar(&flagPractice, "practice", false, "Skip the menu and start an invulnerable practice run")
}

// terminalConfig builds the runtime config from the current terminal.
func terminalConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	return cfg
}

// openStore opens the local database, or returns nil so the game still runs.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open database: %v\n", err)
		return nil
	}
	return store
}

// leaderboardSubmitter signs runs with the wallet at path and posts them
// to api. It returns nil when either is unavailable.
func leaderboardSubmitter(api, path string) (tui.Submitter, string) {
	if api == "" {
		return nil, ""
	}
	signer, err := loadSigner(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: runs will stay local: %v\n", err)
		return nil, ""
	}
	client := leaderboard.NewClient(api, nil)
	submit := func(ctx context.Context, score int64) (leaderboard.Outcome, error) {
		return client.Submit(ctx, signer, score)
	}
	return submit, signer.Address()
}

func runPlay(_ *cobra.Command, _ []string) {
	runner.SetConfigPath(flagConfig)
	runner.SetDifficultyPreset(flagDifficulty)

	cfg := terminalConfig()
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	store := openStore()
	submit, wallet := leaderboardSubmitter(flagAPI, flagWallet)

	var runErr error
	if flagPractice {
		game, err := registry.Create("runner")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
			os.Exit(1)
		}
		opts := tui.GameOptions{Practice: true}
		if store != nil {
			opts.Profile = store.KV("local")
		}
		runErr = tui.Run(game, store, cfg, opts)
	} else {
		runErr = tui.RunSession(store, cfg, tui.SessionOptions{
			Wallet: wallet,
			Submit: submit,
		})
	}

	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
