package report

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/salon-sync/internal/changefeed"
	domain "github.com/BruksfildServices01/salon-sync/internal/domain/salon"
	infraRepo "github.com/BruksfildServices01/salon-sync/internal/infra/repository"
	"github.com/BruksfildServices01/salon-sync/internal/models"
)

func newRepo(t *testing.T) domain.Repository {
	t.Helper()
	bdb, err := infraRepo.OpenBolt(filepath.Join(t.TempDir(), "report.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = bdb.Close() })
	return infraRepo.NewSalonBoltRepository(bdb, changefeed.NewMemoryBroker())
}

func TestCollectAndWrite(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)

	connectedAt := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	created := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

	require.NoError(t, repo.CreateSalon(ctx, &models.Salon{
		ID: "s1", Name: "Corte Fino", OwnerName: "Rita",
		WhatsAppConnected: true, ConnectionDate: &connectedAt, CreatedAt: created,
	}))
	require.NoError(t, repo.CreateSalon(ctx, &models.Salon{
		ID: "s2", Name: "Navalha", OwnerName: "Joao", CreatedAt: created.Add(time.Hour),
	}))
	require.NoError(t, repo.CreateConnection(ctx, &models.SalonConnection{
		ID: "c1", SalonID: "s1", Status: string(domain.ConnectionConnected), ConnectedAt: &connectedAt,
	}))
	require.NoError(t, repo.CreateConnection(ctx, &models.SalonConnection{
		ID: "c0", SalonID: "s2", Status: string(domain.ConnectionDisconnected),
	}))

	s, err := Collect(ctx, repo)
	require.NoError(t, err)

	assert.Equal(t, 2, s.TotalSalons)
	assert.Equal(t, 1, s.ActiveConnections)
	require.Len(t, s.Connected, 1)
	require.Len(t, s.Disconnected, 1)
	assert.Equal(t, "Navalha", s.Disconnected[0].Name)

	var buf bytes.Buffer
	WriteSummary(&buf, s, time.UTC)
	out := buf.String()

	assert.Contains(t, out, "Total Salons: 2")
	assert.Contains(t, out, "Corte Fino (Connected: 2025-03-10)")
	assert.Contains(t, out, "Navalha - Owner: Joao")

	buf.Reset()
	WriteOutcome(&buf, &Outcome{Summary: s, ExpiredSessions: 3})
	assert.Contains(t, buf.String(), "Stale Sessions found (dry run): 3")
}
