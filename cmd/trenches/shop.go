package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/LandoCrissian/LAMMB-Runner/internal/games/runner"
	"github.com/LandoCrissian/LAMMB-Runner/internal/storage"
)

var shopCmd = &cobra.Command{
	Use:   "shop [item]",
	Short: "Spend shards on cosmetics",
	Long: `List the cosmetics shop with your shard balance, or pick an item.

Picking an item you own equips it. Picking one you don't own buys it with
shards from your local profile and equips it.

Examples:
  trenches shop
  trenches shop golden`,
	Args: cobra.MaximumNArgs(1),
	RunE: runShop,
}

func runShop(_ *cobra.Command, args []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer store.Close()

	profile := runner.NewProfile(store.KV("local"))
	if len(args) == 1 {
		bought, err := profile.BuyOrEquip(args[0])
		switch {
		case errors.Is(err, runner.ErrInsufficientShards):
			return fmt.Errorf("not enough shards for %s", args[0])
		case errors.Is(err, runner.ErrUnknownCosmetic):
			return fmt.Errorf("no item called %q, run 'trenches shop' to list them", args[0])
		case err != nil:
			return err
		}
		if bought {
			fmt.Printf("Bought and equipped %s.\n\n", args[0])
		} else {
			fmt.Printf("Equipped %s.\n\n", args[0])
		}
	}
	return printShop(profile)
}

func printShop(profile *runner.Profile) error {
	items, err := profile.Shop()
	if err != nil {
		return err
	}
	shards, err := profile.TotalShards()
	if err != nil {
		return err
	}

	title := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	fmt.Println(title.Render(fmt.Sprintf("Shop - %d shards", shards)))

	rows := make([][]string, 0, len(items))
	for _, it := range items {
		state := strconv.Itoa(it.Price)
		switch {
		case it.Equipped:
			state = "equipped"
		case it.Owned:
			state = "owned"
		}
		rows = append(rows, []string{it.ID, it.Name, it.Slot, state})
	}

	equipped := lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Bold(true)
	cell := lipgloss.NewStyle().Padding(0, 1)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("240"))).
		Headers("Item", "Name", "Slot", "Price").
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row >= 0 && row < len(items) && items[row].Equipped {
				return equipped.Inherit(cell)
			}
			return cell
		})
	fmt.Fprintln(os.Stdout, t.Render())
	return nil
}
