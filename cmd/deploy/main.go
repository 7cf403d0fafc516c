// Command deploy prints the salon connection summary after a release. It
// can sweep stale QR sessions and issue codes for salons still waiting to
// connect.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/mdp/qrterminal/v3"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/salon-sync/internal/audit"
	"github.com/BruksfildServices01/salon-sync/internal/bootstrap"
	"github.com/BruksfildServices01/salon-sync/internal/config"
	"github.com/BruksfildServices01/salon-sync/internal/logger"
	"github.com/BruksfildServices01/salon-sync/internal/models"
	"github.com/BruksfildServices01/salon-sync/internal/report"
	"github.com/BruksfildServices01/salon-sync/internal/timezone"
	ucSalon "github.com/BruksfildServices01/salon-sync/internal/usecase/salon"
)

func main() {
	apply := flag.Bool("apply", false, "mark expired QR sessions instead of only counting them")
	issue := flag.Bool("issue", false, "issue QR codes for disconnected salons and print them")
	timeout := flag.Duration("timeout", 2*time.Minute, "overall deadline")
	flag.Parse()

	cfg := config.Load()

	log, err := logger.Init(cfg.Logger)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	if err := cfg.Validate(); err != nil {
		log.Fatal("invalid configuration", zap.Error(err))
	}
	timezone.SetDefault(cfg.Timezone)

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	if err := run(ctx, cfg, log, *apply, *issue); err != nil {
		log.Error("deployment failed", zap.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, log *zap.Logger, apply, issue bool) error {
	broker, err := bootstrap.OpenBroker(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer broker.Close()

	st, err := bootstrap.OpenStores(cfg, broker)
	if err != nil {
		return err
	}
	defer st.Close()

	dispatcher := audit.NewDispatcher(audit.New(st.Audit), log)
	defer dispatcher.Close()

	// --------------------------------------------------
	// Status
	// --------------------------------------------------

	summary, err := report.Collect(ctx, st.Salons)
	if err != nil {
		return err
	}

	out := &report.Outcome{Summary: summary, Applied: apply}

	// --------------------------------------------------
	// Stale sessions
	// --------------------------------------------------

	cleanup := ucSalon.NewCleanupExpiredSessions(st.Salons, dispatcher)
	if apply {
		out.ExpiredSessions, err = cleanup.Execute(ctx)
	} else {
		var pending []models.QRSession
		pending, err = cleanup.Pending(ctx)
		out.ExpiredSessions = len(pending)
	}
	if err != nil {
		return err
	}

	// --------------------------------------------------
	// QR codes for disconnected salons
	// --------------------------------------------------

	if issue {
		generate := ucSalon.NewGenerateQRCode(st.Salons, bootstrap.Renderer(cfg), dispatcher)
		for _, salon := range summary.Disconnected {
			qr, err := generate.Execute(ctx, salon.ID)
			if err != nil {
				return err
			}
			if qr == nil {
				continue
			}
			out.Issued = append(out.Issued, report.Issued{
				SalonID:   salon.ID,
				SalonName: salon.Name,
				Content:   qr.Content,
				Reused:    qr.Reused,
			})
		}
	}

	// --------------------------------------------------
	// Output
	// --------------------------------------------------

	report.WriteSummary(os.Stdout, summary, timezone.Default())

	for _, is := range out.Issued {
		fmt.Fprintf(os.Stdout, "\n%s (%s)\n%s\n", is.SalonName, is.SalonID, is.Content)
		qrterminal.GenerateHalfBlock(is.Content, qrterminal.L, os.Stdout)
	}

	report.WriteOutcome(os.Stdout, out)
	return nil
}
