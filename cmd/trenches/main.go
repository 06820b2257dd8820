// trenches is the LAMMB trenches endless runner for the terminal, plus the
// weekly leaderboard service it submits to.
//
// Usage:
//
//	trenches play              - Run the game locally
//	trenches serve             - Offer the game over SSH
//	trenches api               - Run the weekly leaderboard HTTP API
//	trenches leaderboard       - Show the weekly leaderboard
//	trenches scores            - Show local run history
//	trenches wallet new        - Create a signing wallet
//	trenches submit <score>    - Submit a score by hand
//
// Global flags:
//
//	--fps <rate>     - Set tick rate (default: 60)
//	--seed <value>   - Set RNG seed for reproducible runs
//	--db <path>      - Set database path (default: ~/.trenches/trenches.db)
//	--wallet <path>  - Wallet key file (default: ~/.trenches/wallet.key)
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/LandoCrissian/LAMMB-Runner/internal/config"

	// Register the runner with the game registry.
	_ "github.com/LandoCrissian/LAMMB-Runner/internal/games/runner"
)

var (
	// Global flags
	flagFPS    int
	flagSeed   int64
	flagDBPath string
	flagWallet string
	flagAPI    string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "trenches",
	Short: "LAMMB Trenches - an endless runner in your terminal",
	Long: `LAMMB Trenches is a lane-based endless runner played in the terminal,
with a weekly leaderboard guarded by signed, plausibility-checked claims.

Examples:
  trenches play
  trenches play --difficulty hard --api http://localhost:8787
  trenches serve --ssh :2222
  trenches api --addr :8787
  trenches leaderboard --api http://localhost:8787
  trenches wallet new`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.trenches/trenches.db", "Path to the local database")
	rootCmd.PersistentFlags().StringVar(&flagWallet, "wallet", "~/.trenches/wallet.key", "Path to the wallet key file")
	rootCmd.PersistentFlags().StringVar(&flagAPI, "api", config.GetEnv("TRENCHES_API", ""), "Leaderboard API base URL (env TRENCHES_API)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(apiCmd)
	rootCmd.AddCommand(leaderboardCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(walletCmd)
	rootCmd.AddCommand(submitCmd)
	rootCmd.AddCommand(shopCmd)
	rootCmd.AddCommand(auditCmd)
}

func newLogger(prefix string) *log.Logger {
	return log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
}
