package view

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/salon-sync/internal/domain/booking"
	"github.com/BruksfildServices01/salon-sync/internal/httperr"
)

var loc = time.FixedZone("BRT", -3*60*60)

// Wednesday 2025-03-12 15:30 local.
var now = time.Date(2025, 3, 12, 15, 30, 0, 0, loc)

func bk(id, barber, date string) booking.Booking {
	return booking.Booking{ID: id, BarberName: barber, Date: date, CreatedAt: now}
}

func ids(bs []booking.Booking) []string {
	out := make([]string, len(bs))
	for i, b := range bs {
		out[i] = b.ID
	}
	return out
}

func TestBarberCountsOrdersByCountThenEncounter(t *testing.T) {
	bs := []booking.Booking{
		bk("1", "Carlos", ""),
		bk("2", "Ana", ""),
		bk("3", "Bruno", ""),
		bk("4", "Ana", ""),
		bk("5", "Bruno", ""),
		bk("6", "Dani", ""),
	}

	got := BarberCounts(bs)
	assert.Equal(t, []BarberCount{
		{Name: "Ana", Count: 2},
		{Name: "Bruno", Count: 2},
		{Name: "Carlos", Count: 1},
		{Name: "Dani", Count: 1},
	}, got)

	assert.Empty(t, BarberCounts(nil))
}

func TestFilterByBarber(t *testing.T) {
	bs := []booking.Booking{bk("1", "Ana", ""), bk("2", "Bruno", ""), bk("3", "Ana", "")}

	assert.Equal(t, []string{"1", "3"}, ids(FilterByBarber(bs, "Ana")))
	assert.Empty(t, FilterByBarber(bs, "ana"))
	assert.Len(t, FilterByBarber(bs, ""), len(bs))
}

func TestFilterByDateAllIsIdentity(t *testing.T) {
	bs := []booking.Booking{bk("1", "A", "garbage"), bk("2", "A", "2025-03-12"), bk("3", "A", "2020-01-01")}
	assert.Equal(t, bs, FilterByDate(bs, DateAll, now))
}

func TestFilterByDateWindows(t *testing.T) {
	bs := []booking.Booking{
		bk("yesterday", "A", "2025-03-11"),
		bk("today", "A", "2025-03-12"),
		bk("tomorrow", "A", "2025-03-13"),
		bk("saturday", "A", "2025-03-15"),
		bk("sunday", "A", "2025-03-16"),
		bk("monday", "A", "2025-03-17"),
		bk("bad", "A", "soon"),
	}

	assert.Equal(t, []string{"today"}, ids(FilterByDate(bs, DateToday, now)))
	assert.Equal(t, []string{"tomorrow"}, ids(FilterByDate(bs, DateTomorrow, now)))
	assert.Equal(t, []string{"today", "tomorrow", "saturday", "sunday"}, ids(FilterByDate(bs, DateThisWeek, now)))
}

func TestFilterByDateThisWeekOnSunday(t *testing.T) {
	sunday := time.Date(2025, 3, 16, 9, 0, 0, 0, loc)
	bs := []booking.Booking{
		bk("sunday", "A", "2025-03-16"),
		bk("next-sunday", "A", "2025-03-23"),
		bk("after", "A", "2025-03-24"),
	}

	assert.Equal(t, []string{"sunday", "next-sunday"}, ids(FilterByDate(bs, DateThisWeek, sunday)))
}

func TestFilterByDateUsesLocalDay(t *testing.T) {
	// 01:00 UTC on the 13th is still the 12th in BRT.
	late := time.Date(2025, 3, 13, 1, 0, 0, 0, time.UTC).In(loc)
	bs := []booking.Booking{bk("12", "A", "2025-03-12"), bk("13", "A", "2025-03-13")}

	assert.Equal(t, []string{"12"}, ids(FilterByDate(bs, DateToday, late)))
}

func TestComputeStats(t *testing.T) {
	yesterday := now.Add(-24 * time.Hour)
	bs := []booking.Booking{
		{ID: "1", Phone: "111", ContactName: "Ana", CreatedAt: now},
		{ID: "2", Phone: "111", ContactName: "Ana B", CreatedAt: yesterday},
		{ID: "3", Phone: "", ContactName: "Bruno", CreatedAt: now},
		{ID: "4", Phone: "", ContactName: "Bruno", CreatedAt: yesterday},
		{ID: "5", Phone: "222", CreatedAt: now},
		{ID: "6", CreatedAt: now},
	}

	st := ComputeStats(bs, now)
	assert.Equal(t, 6, st.Total)
	assert.Equal(t, 4, st.Today)
	assert.Equal(t, 3, st.UniqueCustomers)
}

func TestComputeStatsNameDoesNotCollideWithPhone(t *testing.T) {
	bs := []booking.Booking{
		{ID: "1", Phone: "111", CreatedAt: now},
		{ID: "2", ContactName: "111", CreatedAt: now},
	}
	assert.Equal(t, 2, ComputeStats(bs, now).UniqueCustomers)
}

func TestDateFilterLabel(t *testing.T) {
	assert.Equal(t, "All Dates (3)", DateFilterLabel(DateAll, 3))
	assert.Equal(t, "Today (1)", DateFilterLabel(DateToday, 1))
	assert.Equal(t, "Tomorrow (0)", DateFilterLabel(DateTomorrow, 0))
	assert.Equal(t, "This Week (7)", DateFilterLabel(DateThisWeek, 7))
}

func TestParseDateFilter(t *testing.T) {
	f, err := ParseDateFilter("")
	require.NoError(t, err)
	assert.Equal(t, DateAll, f)

	f, err = ParseDateFilter("This-Week")
	require.NoError(t, err)
	assert.Equal(t, DateThisWeek, f)

	_, err = ParseDateFilter("yesterday")
	assert.True(t, httperr.IsBusiness(err, "invalid_date_filter"))
}

func TestBuildAppliesBothFilters(t *testing.T) {
	all := []booking.Booking{
		bk("1", "Ana", "2025-03-12"),
		bk("2", "Ana", "2025-03-13"),
		bk("3", "Bruno", "2025-03-12"),
	}

	d := Build(all, Filters{Barber: "Ana", Date: DateToday}, now)
	assert.Equal(t, []string{"1"}, ids(d.Bookings))
	assert.Equal(t, 1, d.Stats.Total)
	assert.Equal(t, "Today (1)", d.DateLabel)
	assert.Equal(t, 3, d.AllCount)
	require.Len(t, d.Barbers, 2)
	assert.Equal(t, BarberCount{Name: "Ana", Count: 2}, d.Barbers[0])

	cleared := Build(all, Filters{}, now)
	assert.Len(t, cleared.Bookings, 3)
	assert.Equal(t, DateAll, cleared.Filters.Date)
}

func TestMemoReusesResultForSameInputs(t *testing.T) {
	var m Memo
	all := []booking.Booking{bk("1", "Ana", "2025-03-12")}

	first := m.Build(1, all, Filters{}, now)
	// Same version: the cached result wins even if the slice changed.
	second := m.Build(1, append(all, bk("2", "Ana", "2025-03-12")), Filters{}, now)
	assert.Equal(t, first.AllCount, second.AllCount)

	third := m.Build(2, append(all, bk("2", "Ana", "2025-03-12")), Filters{}, now)
	assert.Equal(t, 2, third.AllCount)
}
