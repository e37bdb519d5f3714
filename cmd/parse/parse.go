// Package parse handles local statement parsing commands
package parse

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"cardsense/cardsense-india/cmd/root"
	"cardsense/cardsense-india/internal/container"
	"cardsense/cardsense-india/internal/models"
	"cardsense/cardsense-india/internal/report"
	"cardsense/cardsense-india/internal/store"
	"cardsense/cardsense-india/internal/upload"
	"cardsense/cardsense-india/internal/validation"

	"github.com/gocarina/gocsv"
	"github.com/spf13/cobra"
)

// Options holds the parse command flags.
type Options struct {
	Input   string
	Output  string
	UserID  string
	Persist bool
	Format  string
}

var opts = Options{}

// Cmd represents the parse command
var Cmd = &cobra.Command{
	Use:   "parse",
	Short: "Parse a PDF or CSV statement",
	Long: `Parse a PDF or CSV statement from disk, print its spending summary and
optionally write the categorized transactions to CSV. With --persist the
transactions are stored for --user like an HTTP upload.`,
	RunE: parseFunc,
}

func init() {
	Cmd.Flags().StringVarP(&opts.Input, "input", "i", "", "Statement file (.pdf or .csv)")
	Cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "Write transactions to this CSV file")
	Cmd.Flags().StringVarP(&opts.UserID, "user", "u", "cli", "User ID the transactions belong to")
	Cmd.Flags().BoolVar(&opts.Persist, "persist", false, "Store transactions in the database")
	Cmd.Flags().StringVarP(&opts.Format, "format", "f", "text", "Summary format (text, json)")
	_ = Cmd.MarkFlagRequired("input")
}

func parseFunc(cmd *cobra.Command, args []string) error {
	var containerOpts []container.Option
	if !opts.Persist {
		containerOpts = append(containerOpts, container.WithStore(store.NewMemoryStore()))
	}
	c, err := root.GetContainer(cmd.Context(), containerOpts...)
	if err != nil {
		return err
	}
	return Run(cmd.Context(), c.GetUploadService(), c.GetReportGenerator(), opts, cmd.OutOrStdout(), cmd.ErrOrStderr())
}

// Run parses opts.Input, writes the summary to out and row errors to errOut.
// Flags are validated before anything is parsed or stored.
func Run(ctx context.Context, svc *upload.Service, gen *report.Generator, opts Options, out, errOut io.Writer) error {
	if err := validation.IsValidStatementFile(opts.Input); err != nil {
		return err
	}
	if err := validation.IsValidReportFormat(opts.Format); err != nil {
		return err
	}
	if err := validation.IsValidOutputPath(opts.Output, opts.Input); err != nil {
		return err
	}

	data, err := os.ReadFile(opts.Input)
	if err != nil {
		return fmt.Errorf("failed to read statement: %w", err)
	}
	u := upload.Upload{UserID: opts.UserID, Filename: filepath.Base(opts.Input), Data: data}

	var (
		txs       []models.ParsedTransaction
		summary   report.Summary
		rowErrors []string
	)
	if opts.Persist {
		result, err := svc.Process(ctx, u)
		if err != nil {
			return err
		}
		txs, summary, rowErrors = result.Transactions, result.Summary, result.RowErrors
		fmt.Fprintf(out, "Stored %d transactions for %s\n", result.Inserted, opts.UserID)
	} else {
		ex, err := svc.Extract(u)
		if err != nil {
			return err
		}
		txs, summary, rowErrors = ex.Transactions, report.Summarize(ex.Transactions), ex.RowErrors
	}

	for _, msg := range rowErrors {
		fmt.Fprintln(errOut, msg)
	}

	rendered, err := gen.Generate(summary, opts.Format)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, string(rendered))

	if opts.Output != "" {
		if err := writeCSV(opts.Output, txs); err != nil {
			return err
		}
		fmt.Fprintf(out, "Wrote %d transactions to %s\n", len(txs), opts.Output)
	}
	return nil
}

func writeCSV(path string, txs []models.ParsedTransaction) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	f, err := os.Create(path) // #nosec G304 -- path comes from the CLI user
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer f.Close()

	if err := gocsv.MarshalFile(&txs, f); err != nil {
		return fmt.Errorf("failed to write CSV: %w", err)
	}
	return nil
}
