// Package list prints stored transactions
package list

import (
	"context"
	"fmt"
	"io"

	"cardsense/cardsense-india/cmd/root"
	"cardsense/cardsense-india/internal/store"

	"github.com/gocarina/gocsv"
	"github.com/spf13/cobra"
)

var (
	userID string
	limit  int
)

// Cmd represents the list command
var Cmd = &cobra.Command{
	Use:   "list",
	Short: "List stored transactions for a user as CSV",
	Long:  `List stored transactions for a user, newest first, as CSV on stdout.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := root.GetContainer(cmd.Context())
		if err != nil {
			return err
		}
		return Run(cmd.Context(), c.GetStore(), userID, limit, cmd.OutOrStdout())
	},
}

func init() {
	Cmd.Flags().StringVarP(&userID, "user", "u", "", "User ID")
	Cmd.Flags().IntVarP(&limit, "limit", "n", 50, "Maximum rows (0 for all)")
	_ = Cmd.MarkFlagRequired("user")
}

// Run writes up to limit rows for userID to w.
func Run(ctx context.Context, s store.TransactionStore, userID string, limit int, w io.Writer) error {
	rows, err := s.ListTransactions(ctx, userID, limit)
	if err != nil {
		return fmt.Errorf("failed to list transactions: %w", err)
	}
	if len(rows) == 0 {
		fmt.Fprintf(w, "No transactions stored for %s\n", userID)
		return nil
	}
	return gocsv.Marshal(&rows, w)
}
