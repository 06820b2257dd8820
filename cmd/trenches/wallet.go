package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/LandoCrissian/LAMMB-Runner/internal/leaderboard"
	"github.com/LandoCrissian/LAMMB-Runner/internal/storage"
)

var flagForce bool

var walletCmd = &cobra.Command{
	Use:   "wallet",
	Short: "Manage the signing wallet",
	Long: `The wallet is an ed25519 key. Its base58 public key is the address
shown on the leaderboard; score claims are signed with it.`,
}

var walletNewCmd = &cobra.Command{
	Use:   "new",
	Short: "Create a wallet key file",
	Long: `Generate a new key and write it to --wallet.

Examples:
  trenches wallet new
  trenches wallet new --wallet ./alt.key --force`,
	Args: cobra.NoArgs,
	RunE: runWalletNew,
}

var walletShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the wallet address",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		signer, err := loadSigner(flagWallet)
		if err != nil {
			return err
		}
		fmt.Println(signer.Address())
		return nil
	},
}

func init() {
	walletNewCmd.Flags().BoolVar(&flagForce, "force", false, "Overwrite an existing key file")
	walletCmd.AddCommand(walletNewCmd)
	walletCmd.AddCommand(walletShowCmd)
}

func runWalletNew(_ *cobra.Command, _ []string) error {
	path, err := storage.ExpandPath(flagWallet)
	if err != nil {
		return err
	}
	if _, err := os.Stat(path); err == nil && !flagForce {
		return fmt.Errorf("wallet %s already exists (use --force to replace it)", path)
	}

	signer, err := leaderboard.GenerateKeySigner(nil)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("create wallet directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(signer.Secret()+"\n"), 0o600); err != nil {
		return fmt.Errorf("write wallet: %w", err)
	}

	fmt.Printf("Wallet written to %s\n", path)
	fmt.Printf("Address: %s\n", signer.Address())
	return nil
}

// loadSigner reads a base58 key file written by "wallet new".
func loadSigner(path string) (*leaderboard.KeySigner, error) {
	path, err := storage.ExpandPath(path)
	if err != nil {
		return nil, err
	}
	raw, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("no wallet at %s (run 'trenches wallet new')", path)
	}
	if err != nil {
		return nil, fmt.Errorf("read wallet: %w", err)
	}
	return leaderboard.ParseKeySigner(strings.TrimSpace(string(raw)))
}
