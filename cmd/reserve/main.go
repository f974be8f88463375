// Command reserve checks a reservation draft, prints its quote and can post
// it to the intake endpoint.
package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"snowrent/internal/config"
	"snowrent/internal/infrastructure/logger"
	"snowrent/internal/pricing"
	"snowrent/internal/wizard"
)

func main() {
	var (
		draftPath = pflag.StringP("draft", "d", "reservation.yaml", "reservation draft in YAML")
		tablePath = pflag.String("price-table", "", "price table override in YAML")
		submitURL = pflag.String("submit", "", "intake endpoint; when empty the draft is only priced")
		timeout   = pflag.Duration("timeout", 10*time.Second, "submission timeout")
		logLevel  = pflag.String("log-level", "warn", "log level")
	)
	pflag.Parse()

	zapLogger, err := logger.New(config.LogConfig{Level: *logLevel, Format: logger.FormatConsole})
	if err != nil {
		fmt.Fprintf(os.Stderr, "creating logger: %v\n", err)
		os.Exit(1)
	}
	defer zapLogger.Sync()

	if err := run(os.Stdout, *draftPath, *tablePath, *submitURL, *timeout, zapLogger); err != nil {
		fmt.Fprintf(os.Stderr, "reserve: %v\n", err)
		os.Exit(1)
	}
}

func run(out io.Writer, draftPath, tablePath, submitURL string, timeout time.Duration, logger *zap.Logger) error {
	table, err := pricing.Load(tablePath)
	if err != nil {
		return err
	}

	draft, err := loadDraft(draftPath)
	if err != nil {
		return err
	}

	form, err := walk(table, draft)
	if err != nil {
		return err
	}
	printQuote(out, form)

	if submitURL == "" {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	submitter := wizard.NewHTTPSubmitter(submitURL, &http.Client{Timeout: timeout})
	form, err = form.Submit(ctx, submitter)
	if err != nil {
		logger.Error("submission failed", zap.String("url", submitURL), zap.Error(err))
		return err
	}

	logger.Info("reservation submitted", zap.String("url", submitURL), zap.Int("total", form.Quote.Total))
	fmt.Fprintln(out, "Reservation submitted. The shop will contact you to confirm.")
	return nil
}

func printQuote(out io.Writer, f wizard.Form) {
	q := f.Quote
	fmt.Fprintf(out, "%s to %s, %d day(s)\n\n", f.StartDate, f.EndDate, q.Days)

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', tabwriter.AlignRight)
	for i, d := range q.Detail {
		p := f.Persons[i]
		fmt.Fprintf(tw, "#%d %s (%s)\t\t\n", d.Index, p.Name, d.Class)
		for _, line := range pricing.Lines(d, p, q.Days) {
			fmt.Fprintf(tw, "  %s\t%d\t\n", line.Label, line.Amount)
		}
		fmt.Fprintf(tw, "  subtotal\t%d\t\n", d.Subtotal)
	}
	fmt.Fprintf(tw, "Total\t%d\t\n", q.Total)
	_ = tw.Flush()
}
