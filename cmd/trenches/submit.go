package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/LandoCrissian/LAMMB-Runner/internal/leaderboard"
)

var submitCmd = &cobra.Command{
	Use:   "submit <score>",
	Short: "Sign and submit a score for the current week",
	Long: `Sign a score claim with the wallet and post it to --api. Useful for
checking a deployment; the server still applies every plausibility check.

Examples:
  trenches submit 1200 --api http://localhost:8787`,
	Args: cobra.ExactArgs(1),
	RunE: runSubmit,
}

func runSubmit(cmd *cobra.Command, args []string) error {
	score, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || score < 0 {
		return fmt.Errorf("score must be a non-negative integer, got %q", args[0])
	}
	if flagAPI == "" {
		return errors.New("no leaderboard API configured (set --api or TRENCHES_API)")
	}
	signer, err := loadSigner(flagWallet)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), 15*time.Second)
	defer cancel()

	out, err := leaderboard.NewClient(flagAPI, nil).Submit(ctx, signer, score)
	if err != nil {
		return err
	}

	fmt.Println(out.Message)
	switch {
	case out.PreviousBest != nil:
		fmt.Printf("Previous best: %d\n", *out.PreviousBest)
	case out.CurrentBest != nil:
		fmt.Printf("Current best: %d\n", *out.CurrentBest)
	}
	fmt.Printf("Submissions left in this window: %d\n", out.Remaining)
	return nil
}
