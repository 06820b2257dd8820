package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/LandoCrissian/LAMMB-Runner/internal/leaderboard"
)

var flagAuditRejected bool

var auditCmd = &cobra.Command{
	Use:   "audit <file>...",
	Short: "Print leaderboard audit files",
	Long: `Decode the hourly audit files written by "trenches api --audit-dir"
and print every judged claim.

Examples:
  trenches audit ~/.trenches/audit/audit-2026-10-19-12.jsonl.zst
  trenches audit --rejected ~/.trenches/audit/*.jsonl.zst`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAudit,
}

func init() {
	auditCmd.Flags().BoolVar(&flagAuditRejected, "rejected", false, "Only show rejected claims")
}

// auditSummary is the decoded content of a set of audit files.
type auditSummary struct {
	Rows     [][]string
	Accepted int
	Rejected int
}

// readAudit decodes paths in order. Counts cover every record; rows skip
// accepted claims when rejectedOnly is set.
func readAudit(paths []string, rejectedOnly bool) (auditSummary, error) {
	var sum auditSummary
	for _, path := range paths {
		recs, err := leaderboard.ReadAuditFile(path)
		if err != nil {
			return sum, err
		}
		for _, r := range recs {
			result := r.Result
			if r.Accepted {
				sum.Accepted++
				if rejectedOnly {
					continue
				}
			} else {
				sum.Rejected++
				result = r.Class + ": " + r.Reason
			}
			sum.Rows = append(sum.Rows, []string{
				r.At.Format("2006-01-02 15:04:05"),
				r.Wallet,
				r.WeekID,
				strconv.FormatInt(r.Score, 10),
				result,
			})
		}
	}
	return sum, nil
}

func runAudit(_ *cobra.Command, args []string) error {
	sum, err := readAudit(args, flagAuditRejected)
	if err != nil {
		return err
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("240"))).
		Headers("Time", "Wallet", "Week", "Score", "Result").
		Rows(sum.Rows...)
	fmt.Fprintln(os.Stdout, t.Render())
	fmt.Printf("\n%d accepted, %d rejected\n", sum.Accepted, sum.Rejected)
	return nil
}
