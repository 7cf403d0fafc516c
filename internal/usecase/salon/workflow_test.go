package salon

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/BruksfildServices01/salon-sync/internal/domain/salon"
	"github.com/BruksfildServices01/salon-sync/internal/infra/repository"
	"github.com/BruksfildServices01/salon-sync/internal/storeerr"
)

type fakeRenderer struct {
	calls int
}

func (r *fakeRenderer) Render(_ context.Context, content, caption, _ string) (string, error) {
	r.calls++
	return fmt.Sprintf("img(%s|%s)", caption, content), nil
}

type clock struct {
	t time.Time
}

func (c *clock) now() time.Time { return c.t }

func (c *clock) advance(d time.Duration) { c.t = c.t.Add(d) }

type fixture struct {
	repo     domain.Repository
	clock    *clock
	renderer *fakeRenderer

	register   *RegisterSalon
	generate   *GenerateQRCode
	connect    *MarkSalonConnected
	disconnect *DisconnectSalon
	heartbeat  *UpdateHeartbeat
	cleanup    *CleanupExpiredSessions
	connected  *IsSalonConnected
	list       *ListSalons
	get        *GetSalon
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db, err := repository.OpenBolt(filepath.Join(t.TempDir(), "salons.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	repo := repository.NewSalonBoltRepository(db, nil)
	clk := &clock{t: time.Date(2025, 3, 12, 10, 0, 0, 0, time.UTC)}
	renderer := &fakeRenderer{}

	seq := 0
	newID := func() string {
		seq++
		return fmt.Sprintf("id-%d", seq)
	}

	f := &fixture{
		repo:       repo,
		clock:      clk,
		renderer:   renderer,
		register:   NewRegisterSalon(repo, nil),
		generate:   NewGenerateQRCode(repo, renderer, nil),
		connect:    NewMarkSalonConnected(repo, nil),
		disconnect: NewDisconnectSalon(repo, nil),
		heartbeat:  NewUpdateHeartbeat(repo),
		cleanup:    NewCleanupExpiredSessions(repo, nil),
		connected:  NewIsSalonConnected(repo),
		list:       NewListSalons(repo),
		get:        NewGetSalon(repo),
	}

	f.register.now, f.register.newID = clk.now, newID
	f.generate.now, f.generate.newID = clk.now, newID
	f.connect.now, f.connect.newID = clk.now, newID
	f.disconnect.now = clk.now
	f.heartbeat.now = clk.now
	f.cleanup.now = clk.now

	return f
}

func (f *fixture) registerSalon(t *testing.T, name string) string {
	t.Helper()
	s, err := f.register.Execute(context.Background(), RegisterSalonInput{
		Name:      name,
		OwnerName: "Owner",
		Phone:     "+5511999990000",
	})
	require.NoError(t, err)
	return s.ID
}

func TestRegisterSalonStartsDisconnected(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	id := f.registerSalon(t, "Studio")

	s, err := f.get.Execute(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Studio", s.Name)
	assert.False(t, s.WhatsAppConnected)
	assert.True(t, s.CreatedAt.Equal(f.clock.t))

	ok, err := f.connected.Execute(ctx, id)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestGenerateQRCodeIsIdempotentWhileLive(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := f.registerSalon(t, "Studio")

	first, err := f.generate.Execute(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, first)
	assert.False(t, first.Reused)
	assert.Contains(t, first.Payload, "QR Code for Salon Studio")
	assert.Contains(t, first.Content, "whatsapp://connect?")
	assert.True(t, first.ExpiresAt.Equal(f.clock.t.Add(domain.QRSessionTTL)))

	f.clock.advance(time.Minute)
	second, err := f.generate.Execute(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, second)
	assert.True(t, second.Reused)
	assert.Equal(t, first.Payload, second.Payload)
	assert.Equal(t, first.SessionID, second.SessionID)
	assert.Equal(t, 1, f.renderer.calls)

	sessions, err := f.repo.ListSessions(ctx, domain.SessionFilter{SalonID: id})
	require.NoError(t, err)
	assert.Len(t, sessions, 1)

	s, err := f.get.Execute(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, first.Payload, s.QRCodeURL)
}

func TestGenerateQRCodeAfterConnectReturnsNil(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := f.registerSalon(t, "Studio")

	_, err := f.generate.Execute(ctx, id)
	require.NoError(t, err)

	conn, err := f.connect.Execute(ctx, id, "wa_instance_1")
	require.NoError(t, err)
	assert.Equal(t, string(domain.ConnectionConnected), conn.Status)

	qr, err := f.generate.Execute(ctx, id)
	require.NoError(t, err)
	assert.Nil(t, qr)

	s, err := f.get.Execute(ctx, id)
	require.NoError(t, err)
	assert.True(t, s.WhatsAppConnected)
	require.NotNil(t, s.ConnectionDate)

	sessions, err := f.repo.ListSessions(ctx, domain.SessionFilter{SalonID: id})
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, string(domain.SessionConnected), sessions[0].Status)

	ok, err := f.connected.Execute(ctx, id)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestDisconnectSalonAllowsNewQRCode(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := f.registerSalon(t, "Studio")

	_, err := f.connect.Execute(ctx, id, "wa_instance_1")
	require.NoError(t, err)

	n, err := f.disconnect.Execute(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	s, err := f.get.Execute(ctx, id)
	require.NoError(t, err)
	assert.False(t, s.WhatsAppConnected)

	conns, err := f.repo.ListConnections(ctx, domain.ConnectionFilter{SalonID: id})
	require.NoError(t, err)
	require.Len(t, conns, 1)
	assert.Equal(t, string(domain.ConnectionDisconnected), conns[0].Status)

	qr, err := f.generate.Execute(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, qr)
	assert.False(t, qr.Reused)
}

func TestCleanupExpiresOnlyPastSessions(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	stale := f.registerSalon(t, "Stale")

	_, err := f.generate.Execute(ctx, stale)
	require.NoError(t, err)

	f.clock.advance(4 * time.Minute)
	fresh := f.registerSalon(t, "Fresh")
	_, err = f.generate.Execute(ctx, fresh)
	require.NoError(t, err)

	f.clock.advance(2 * time.Minute)

	n, err := f.cleanup.Execute(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	staleSessions, err := f.repo.ListSessions(ctx, domain.SessionFilter{SalonID: stale})
	require.NoError(t, err)
	assert.Equal(t, string(domain.SessionExpired), staleSessions[0].Status)

	freshSessions, err := f.repo.ListSessions(ctx, domain.SessionFilter{SalonID: fresh})
	require.NoError(t, err)
	assert.Equal(t, string(domain.SessionActive), freshSessions[0].Status)

	n, err = f.cleanup.Execute(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	// An expired session no longer blocks a new code.
	qr, err := f.generate.Execute(ctx, stale)
	require.NoError(t, err)
	require.NotNil(t, qr)
	assert.False(t, qr.Reused)
}

func TestUpdateHeartbeat(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := f.registerSalon(t, "Studio")

	_, err := f.connect.Execute(ctx, id, "wa_instance_1")
	require.NoError(t, err)

	f.clock.advance(30 * time.Second)
	require.NoError(t, f.heartbeat.Execute(ctx, id))

	conns, err := f.repo.ListConnections(ctx, domain.ConnectionFilter{SalonID: id})
	require.NoError(t, err)
	require.Len(t, conns, 1)
	require.NotNil(t, conns[0].LastHeartbeat)
	assert.True(t, conns[0].LastHeartbeat.Equal(f.clock.t))

	s, err := f.get.Execute(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, s.LastActive)
	assert.True(t, s.LastActive.Equal(f.clock.t))
}

func TestListSalonsByConnection(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.registerSalon(t, "A")
	f.clock.advance(time.Second)
	b := f.registerSalon(t, "B")

	_, err := f.connect.Execute(ctx, b, "wa")
	require.NoError(t, err)

	yes, no := true, false
	connected, err := f.list.Execute(ctx, &yes)
	require.NoError(t, err)
	require.Len(t, connected, 1)
	assert.Equal(t, b, connected[0].ID)

	disconnected, err := f.list.Execute(ctx, &no)
	require.NoError(t, err)
	require.Len(t, disconnected, 1)
	assert.Equal(t, a, disconnected[0].ID)

	all, err := f.list.Execute(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestWorkflowOnUnknownSalon(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.generate.Execute(ctx, "missing")
	assert.True(t, storeerr.IsNotFound(err))

	_, err = f.connect.Execute(ctx, "missing", "wa")
	assert.True(t, storeerr.IsNotFound(err))

	ok, err := f.connected.Execute(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)
}
