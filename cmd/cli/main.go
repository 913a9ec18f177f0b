package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/iho/finledger/internal/adapter/http/dto"
	"github.com/iho/finledger/internal/infrastructure/auth"
	"github.com/iho/finledger/internal/infrastructure/config"
	"github.com/iho/finledger/internal/infrastructure/logger"
	"github.com/iho/finledger/internal/infrastructure/postgres"
	"github.com/iho/finledger/internal/usecase"
)

type options struct {
	baseURL  string
	token    string
	currency string
	timeout  time.Duration
	now      func() time.Time
}

func (o *options) client() *apiClient {
	return newAPIClient(o.baseURL, o.token, o.timeout)
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{now: time.Now}

	rootCmd := &cobra.Command{
		Use:           "finledger",
		Short:         "finledger CLI tool",
		Long:          `A command line interface for the finledger API: entries, cards, summaries and maintenance.`,
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	rootCmd.PersistentFlags().StringVar(&opts.baseURL, "url", envOr("FINLEDGER_URL", "http://localhost:8080"), "Base URL of the finledger API")
	rootCmd.PersistentFlags().StringVar(&opts.token, "token", os.Getenv("FINLEDGER_TOKEN"), "Bearer token")
	rootCmd.PersistentFlags().StringVar(&opts.currency, "currency", envOr("CURRENCY", "BRL"), "Currency used to display amounts (summary defaults to the server's)")
	rootCmd.PersistentFlags().DurationVar(&opts.timeout, "timeout", 10*time.Second, "Request timeout")

	rootCmd.AddCommand(
		entriesCmd(opts),
		summaryCmd(opts),
		syncCmd(opts),
		cardsCmd(opts),
		migrateCmd(),
		tokenCmd(),
	)

	return rootCmd
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// monthFlags registers --year and --month (1-12) and resolves them to a
// zero-based month, defaulting to the current one.
func monthFlags(cmd *cobra.Command, opts *options) func() (int, int, error) {
	var year, month int
	cmd.Flags().IntVar(&year, "year", 0, "Year (default current)")
	cmd.Flags().IntVar(&month, "month", 0, "Month 1-12 (default current)")

	return func() (int, int, error) {
		now := opts.now()
		if year == 0 {
			year = now.Year()
		}
		if month == 0 {
			month = int(now.Month())
		}
		if month < 1 || month > 12 {
			return 0, 0, fmt.Errorf("month must be between 1 and 12, got %d", month)
		}
		return year, month - 1, nil
	}
}

func entriesCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "entries",
		Short: "Ledger entry operations",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List the entries of a month",
		Args:  cobra.NoArgs,
	}
	resolveMonth := monthFlags(listCmd, opts)
	listCmd.RunE = func(cmd *cobra.Command, args []string) error {
		year, month, err := resolveMonth()
		if err != nil {
			return err
		}

		var resp dto.ListEntriesResponse
		path := fmt.Sprintf("/api/v1/entries?year=%d&month=%d", year, month)
		if err := opts.client().do(cmd.Context(), http.MethodGet, path, nil, &resp); err != nil {
			return err
		}
		return printMarkdown(cmd.OutOrStdout(), entriesMarkdown(resp, opts.currency))
	}

	toggleCmd := &cobra.Command{
		Use:   "toggle <entry-id>",
		Short: "Mark an entry as done or not done",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var resp dto.ToggleResponse
			if err := opts.client().do(cmd.Context(), http.MethodPost, "/api/v1/entries/"+args[0]+"/toggle", nil, &resp); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			switch {
			case !resp.Changed:
				fmt.Fprintln(out, "Entry not found, nothing changed")
			case resp.Completed:
				fmt.Fprintln(out, "Entry marked as done")
			default:
				fmt.Fprintln(out, "Entry marked as pending")
			}
			if resp.Changed && resp.DebtID != "" {
				fmt.Fprintf(out, "Debt %s updated\n", resp.DebtID)
			}
			return nil
		},
	}

	cmd.AddCommand(listCmd, toggleCmd)
	return cmd
}

func summaryCmd(opts *options) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Show the income, expense and balance of a month",
		Args:  cobra.NoArgs,
	}
	resolveMonth := monthFlags(cmd, opts)
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		year, month, err := resolveMonth()
		if err != nil {
			return err
		}

		var summary usecase.MonthSummary
		path := fmt.Sprintf("/api/v1/summary?year=%d&month=%d", year, month)
		if err := opts.client().do(cmd.Context(), http.MethodGet, path, nil, &summary); err != nil {
			return err
		}
		if asJSON {
			return printJSON(cmd.OutOrStdout(), summary)
		}
		currency := opts.currency
		if f := cmd.Flag("currency"); (f == nil || !f.Changed) && summary.Currency != "" {
			currency = summary.Currency
		}
		return printMarkdown(cmd.OutOrStdout(), summaryMarkdown(summary, currency))
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the raw summary as JSON")
	return cmd
}

func syncCmd(opts *options) *cobra.Command {
	var check bool

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Reconcile invoices and subscription forecasts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client := opts.client()
			out := cmd.OutOrStdout()

			if check {
				var resp dto.CheckResponse
				if err := client.do(cmd.Context(), http.MethodGet, "/api/v1/sync/status", nil, &resp); err != nil {
					return err
				}
				if resp.InSync {
					fmt.Fprintln(out, "Ledger is in sync")
					return nil
				}
				fmt.Fprintln(out, "Ledger is out of sync")
				printReport(out, resp.Pending)
				return nil
			}

			var resp dto.MutationResponse
			if err := client.do(cmd.Context(), http.MethodPost, "/api/v1/sync", nil, &resp); err != nil {
				return err
			}
			if !resp.Changed {
				fmt.Fprintln(out, "Nothing to do")
				return nil
			}
			printReport(out, resp.Report)
			return nil
		},
	}

	cmd.Flags().BoolVar(&check, "check", false, "Only report what a sync would change")
	return cmd
}

func printReport(out io.Writer, r dto.ReportResponse) {
	fmt.Fprintf(out, "Invoices:  %d created, %d updated, %d deleted\n",
		len(r.Invoices.Created), len(r.Invoices.Updated), len(r.Invoices.Deleted))
	fmt.Fprintf(out, "Forecasts: %d created, %d updated, %d deleted\n",
		len(r.Forecasts.Created), len(r.Forecasts.Updated), len(r.Forecasts.Deleted))
}

func cardsCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cards",
		Short: "Credit card operations",
	}

	var (
		req    dto.CardPurchaseRequest
		amount string
		date   string
	)
	purchaseCmd := &cobra.Command{
		Use:   "purchase <card-id>",
		Short: "Record a purchase split into installments",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if req.Amount, err = decimal.NewFromString(amount); err != nil {
				return fmt.Errorf("invalid amount %q: %w", amount, err)
			}
			req.Date = opts.now()
			if date != "" {
				if req.Date, err = time.Parse(time.DateOnly, date); err != nil {
					return fmt.Errorf("invalid date %q: %w", date, err)
				}
			}

			var resp dto.PurchaseResponse
			if err := opts.client().do(cmd.Context(), http.MethodPost, "/api/v1/cards/"+args[0]+"/purchases", req, &resp); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, inst := range resp.Installments {
				fmt.Fprintf(out, "%d/%d  %s  %s\n",
					inst.InstallmentNumber, inst.TotalInstallments,
					monthTitle(inst.Year, inst.Month),
					formatMoney(inst.Amount, opts.currency))
			}
			return nil
		},
	}
	purchaseCmd.Flags().StringVar(&req.Description, "description", "", "Purchase description")
	purchaseCmd.Flags().StringVar(&req.Category, "category", "", "Category")
	purchaseCmd.Flags().StringVar(&amount, "amount", "", "Total amount")
	purchaseCmd.Flags().IntVar(&req.Installments, "installments", 1, "Number of installments")
	purchaseCmd.Flags().StringVar(&date, "date", "", "Purchase date (YYYY-MM-DD, default today)")
	_ = purchaseCmd.MarkFlagRequired("description")
	_ = purchaseCmd.MarkFlagRequired("amount")

	cmd.AddCommand(purchaseCmd)
	return cmd
}

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database migrations",
	}

	run := func(up bool) func(cmd *cobra.Command, args []string) error {
		return func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			log := logger.New(logger.Config{Level: cfg.LogLevel, Format: "console", Output: cmd.ErrOrStderr()})
			m := postgres.NewMigrator(cfg.DatabaseURL, cfg.MigrationsPath, log)
			if up {
				return m.Up()
			}
			return m.Down()
		}
	}

	cmd.AddCommand(
		&cobra.Command{Use: "up", Short: "Apply all pending migrations", Args: cobra.NoArgs, RunE: run(true)},
		&cobra.Command{Use: "down", Short: "Roll back all migrations", Args: cobra.NoArgs, RunE: run(false)},
		&cobra.Command{
			Use:   "version",
			Short: "Print the current schema version",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				cfg, err := config.Load()
				if err != nil {
					return err
				}
				version, dirty, err := postgres.NewMigrator(cfg.DatabaseURL, cfg.MigrationsPath, zerolog.Nop()).Version()
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "version %d (dirty: %v)\n", version, dirty)
				return nil
			},
		},
	)
	return cmd
}

func tokenCmd() *cobra.Command {
	var (
		subject string
		scope   string
		ttl     time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a development bearer token signed with JWT_SECRET",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if cfg.JWTSecret == "" {
				return fmt.Errorf("JWT_SECRET is not set")
			}
			if ttl == 0 {
				ttl = cfg.JWTExpiration
			}

			s := auth.Scope(scope)
			if s != auth.ScopeRead && s != auth.ScopeWrite {
				return fmt.Errorf("scope must be read or write, got %q", scope)
			}

			token, err := auth.NewJWTManager(cfg.JWTSecret, ttl).Generate(subject, s)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().StringVar(&subject, "subject", "cli", "Token subject")
	cmd.Flags().StringVar(&scope, "scope", string(auth.ScopeWrite), "Token scope (read or write)")
	cmd.Flags().DurationVar(&ttl, "ttl", 0, "Token lifetime (default JWT_EXPIRATION)")
	return cmd
}

func printMarkdown(out io.Writer, md string) error {
	rendered, err := renderMarkdown(md)
	if err != nil {
		return err
	}
	_, err = io.WriteString(out, rendered)
	return err
}

func printJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
