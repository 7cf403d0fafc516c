// Package report summarises salon connection state for operators.
package report

import (
	"context"
	"fmt"
	"io"
	"time"

	domain "github.com/BruksfildServices01/salon-sync/internal/domain/salon"
	"github.com/BruksfildServices01/salon-sync/internal/models"
)

type Summary struct {
	TotalSalons       int
	Connected         []models.Salon
	Disconnected      []models.Salon
	ActiveConnections int
}

// Collect reads salons and connected connection records.
func Collect(ctx context.Context, repo domain.Repository) (*Summary, error) {
	salons, err := repo.ListSalons(ctx, domain.SalonFilter{})
	if err != nil {
		return nil, err
	}

	conns, err := repo.ListConnections(ctx, domain.ConnectionFilter{
		Status: domain.ConnectionConnected,
	})
	if err != nil {
		return nil, err
	}

	s := &Summary{
		TotalSalons:       len(salons),
		ActiveConnections: len(conns),
	}
	for _, salon := range salons {
		if salon.WhatsAppConnected {
			s.Connected = append(s.Connected, salon)
		} else {
			s.Disconnected = append(s.Disconnected, salon)
		}
	}
	return s, nil
}

// Issued is a QR code handed out to a disconnected salon.
type Issued struct {
	SalonID   string
	SalonName string
	Content   string
	Reused    bool
}

// Outcome is the result of one deploy run.
type Outcome struct {
	Summary         *Summary
	ExpiredSessions int
	Applied         bool
	Issued          []Issued
}

func WriteSummary(w io.Writer, s *Summary, loc *time.Location) {
	fmt.Fprintln(w, "SALON CONNECTION SUMMARY")
	fmt.Fprintln(w, "================================")
	fmt.Fprintf(w, "Total Salons: %d\n", s.TotalSalons)
	fmt.Fprintf(w, "Connected: %d\n", len(s.Connected))
	fmt.Fprintf(w, "Disconnected: %d\n", len(s.Disconnected))
	fmt.Fprintf(w, "Active Connections: %d\n", s.ActiveConnections)

	if len(s.Connected) > 0 {
		fmt.Fprintln(w, "\nCONNECTED SALONS:")
		for _, salon := range s.Connected {
			since := "Unknown"
			if salon.ConnectionDate != nil {
				since = salon.ConnectionDate.In(loc).Format("2006-01-02")
			}
			fmt.Fprintf(w, "  - %s (Connected: %s)\n", salon.Name, since)
		}
	}

	if len(s.Disconnected) > 0 {
		fmt.Fprintln(w, "\nSALONS NEEDING CONNECTION:")
		for _, salon := range s.Disconnected {
			fmt.Fprintf(w, "  - %s - Owner: %s\n", salon.Name, salon.OwnerName)
		}
	}
}

func WriteOutcome(w io.Writer, o *Outcome) {
	verb := "found (dry run)"
	if o.Applied {
		verb = "expired"
	}

	fmt.Fprintln(w, "\nDEPLOYMENT SUMMARY:")
	fmt.Fprintf(w, "  Total Salons: %d\n", o.Summary.TotalSalons)
	fmt.Fprintf(w, "  Already Connected: %d\n", len(o.Summary.Connected))
	fmt.Fprintf(w, "  QR Codes Issued: %d\n", len(o.Issued))
	fmt.Fprintf(w, "  Stale Sessions %s: %d\n", verb, o.ExpiredSessions)
}
