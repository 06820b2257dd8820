package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/LandoCrissian/LAMMB-Runner/internal/leaderboard"
	"github.com/LandoCrissian/LAMMB-Runner/internal/platform/tui"
)

var flagWeek string

var leaderboardCmd = &cobra.Command{
	Use:   "leaderboard",
	Short: "Show the weekly leaderboard",
	Long: `Browse the weekly leaderboard.

Without --api, opens an interactive view of the leaderboard stored in the
local database (the one "trenches api" writes when sharing --db). With
--api, prints the remote top scores and your rank for --week.

Examples:
  trenches leaderboard
  trenches leaderboard --api http://localhost:8787
  trenches leaderboard --api http://localhost:8787 --week 2026-W42`,
	Args: cobra.NoArgs,
	RunE: runLeaderboard,
}

func init() {
	leaderboardCmd.Flags().StringVar(&flagWeek, "week", "", "Week id such as 2026-W42 (default: current week)")
}

func runLeaderboard(cmd *cobra.Command, _ []string) error {
	var wallet string
	if signer, err := loadSigner(flagWallet); err == nil {
		wallet = signer.Address()
	}

	if flagAPI == "" {
		cfg := terminalConfig()
		store := openStore()
		if store != nil {
			defer store.Close()
		}
		return tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH, wallet)
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
	defer cancel()

	board, err := leaderboard.NewClient(flagAPI, nil).Query(ctx, flagWeek, wallet)
	if err != nil {
		return err
	}
	printBoard(board, wallet)
	return nil
}

func printBoard(board leaderboard.Board, wallet string) {
	title := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	fmt.Println(title.Render("Weekly leaderboard - " + board.WeekID))
	fmt.Println()

	if len(board.Leaderboard) == 0 {
		fmt.Println("Nobody has posted a score this week.")
		return
	}

	rows := make([][]string, 0, len(board.Leaderboard))
	rank := 0
	for i, e := range board.Leaderboard {
		if i == 0 || e.Score != board.Leaderboard[i-1].Score {
			rank = i + 1
		}
		name := e.Wallet
		if e.Wallet == wallet {
			name = "★ " + name
		}
		rows = append(rows, []string{"#" + strconv.Itoa(rank), name, strconv.FormatInt(e.Score, 10)})
	}

	highlight := lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Bold(true)
	cell := lipgloss.NewStyle().Padding(0, 1)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("240"))).
		Headers("Rank", "Runner", "Score").
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row >= 0 && row < len(board.Leaderboard) && board.Leaderboard[row].Wallet == wallet {
				return highlight.Inherit(cell)
			}
			return cell
		})
	fmt.Fprintln(os.Stdout, t.Render())

	if board.UserRank != nil {
		fmt.Printf("\nYour rank: #%d with %d\n", board.UserRank.Rank, board.UserRank.Score)
	}
}
