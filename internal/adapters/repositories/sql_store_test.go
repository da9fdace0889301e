package repositories

import (
	"context"
	"database/sql"
	"delivery-schedule-service/internal/domain"
	"delivery-schedule-service/internal/platform/db"
	"delivery-schedule-service/internal/ports"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *SQLStore {
	t.Helper()

	conn, err := db.OpenSQLite(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	ctx := context.Background()
	require.NoError(t, InitSchema(ctx, conn, SQLite))
	require.NoError(t, SeedUsers(ctx, conn, SQLite, []UserSeed{
		{UserID: 1, Name: "Admin", Email: "admin@example.com", Role: "admin"},
		{UserID: 7, Name: "Driver A", Email: "a@example.com", Role: "driver"},
		{UserID: 42, Name: "Driver D", Email: "d@example.com", Role: "driver"},
	}))

	return NewSQLStore(conn, SQLite)
}

func count(t *testing.T, conn *sql.DB, table string) int {
	t.Helper()
	var n int
	require.NoError(t, conn.QueryRow("SELECT COUNT(*) FROM "+table).Scan(&n))
	return n
}

func book(t *testing.T, s *SQLStore, driverID int64, start time.Time, minutes int) (int64, int64) {
	t.Helper()

	var custID, delivID int64
	err := s.WithinTx(context.Background(), func(ctx context.Context, tx ports.BookingTx) error {
		var err error
		custID, err = tx.InsertCustomer(ctx, &domain.Customer{
			FirstName: "John", LastName: "Carson", Email: "john@example.com",
			Address: "1 Main St", City: "Phoenix", Zip: "85001",
		})
		if err != nil {
			return err
		}
		delivID, err = tx.InsertDelivery(ctx, &domain.Delivery{
			UserID: driverID, CustID: custID, Address: "1 Main St", City: "Phoenix", Zip: "85001",
			ScheduledTime: start, DurationMin: minutes, Status: domain.StatusPending,
		})
		return err
	})
	require.NoError(t, err)
	return custID, delivID
}

func TestRebind(t *testing.T) {
	q := "SELECT * FROM t WHERE a = ? AND b < ? AND c > ?"
	assert.Equal(t, "SELECT * FROM t WHERE a = $1 AND b < $2 AND c > $3", Postgres.rebind(q))
	assert.Equal(t, q, SQLite.rebind(q))
}

func TestStoreRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	nine := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)

	custID, delivID := book(t, s, 42, nine, 30)
	book(t, s, 7, nine.Add(2*time.Hour), 60)
	book(t, s, 42, nine.AddDate(0, 0, 8), 60) // next week

	week := domain.WeekWindow(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))
	all, err := s.ListDeliveries(ctx, week.Start, week.End, nil)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, delivID, all[0].DelivID)
	assert.True(t, all[0].ScheduledTime.Equal(nine))
	assert.Equal(t, 30, all[0].DurationMin)
	assert.Equal(t, domain.StatusPending, all[0].Status)
	assert.Nil(t, all[0].CompletedAt)

	driver := int64(7)
	views, err := s.ListDeliveryViews(ctx, week.Start, week.End, &driver)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, int64(7), views[0].UserID)
	assert.Equal(t, "Carson", views[0].Customer.LastName)

	got, err := s.GetDelivery(ctx, delivID)
	require.NoError(t, err)
	assert.Equal(t, custID, got.CustID)

	doneAt := nine.Add(40 * time.Minute)
	require.NoError(t, s.MarkCompleted(ctx, delivID, doneAt))
	got, err = s.GetDelivery(ctx, delivID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, got.Status)
	require.NotNil(t, got.CompletedAt)
	assert.True(t, got.CompletedAt.Equal(doneAt))

	require.NoError(t, s.DeleteDelivery(ctx, delivID))
	_, err = s.GetDelivery(ctx, delivID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, s.DeleteDelivery(ctx, delivID), domain.ErrNotFound)
	assert.ErrorIs(t, s.MarkCompleted(ctx, delivID, doneAt), domain.ErrNotFound)

	customers, err := s.ListCustomers(ctx)
	require.NoError(t, err)
	assert.Len(t, customers, 3)

	users, err := s.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 3)
	assert.Equal(t, domain.RoleAdmin, users[0].Role)
}

func TestFindOverlappingHalfOpen(t *testing.T) {
	s := newTestStore(t)
	nine := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)
	book(t, s, 42, nine, 60)

	find := func(driverID int64, iv domain.Interval) []*domain.Delivery {
		var out []*domain.Delivery
		err := s.WithinTx(context.Background(), func(ctx context.Context, tx ports.BookingTx) error {
			var err error
			out, err = tx.FindOverlapping(ctx, driverID, iv)
			return err
		})
		require.NoError(t, err)
		return out
	}

	assert.Empty(t, find(42, domain.NewInterval(nine.Add(time.Hour), 30)), "starting at 10:00 touches only")
	assert.Empty(t, find(42, domain.NewInterval(nine.Add(-time.Hour), 60)), "ending at 09:00 touches only")
	assert.Len(t, find(42, domain.NewInterval(nine.Add(59*time.Minute), 1)), 1)
	assert.Len(t, find(42, domain.NewInterval(nine.Add(-time.Hour), 61)), 1)
	assert.Empty(t, find(7, domain.NewInterval(nine, 60)), "other drivers are independent")
}

func TestWithinTxRollsBack(t *testing.T) {
	s := newTestStore(t)
	boom := errors.New("boom")

	err := s.WithinTx(context.Background(), func(ctx context.Context, tx ports.BookingTx) error {
		if _, err := tx.InsertCustomer(ctx, &domain.Customer{
			FirstName: "A", LastName: "B", Email: "c@example.com", Address: "d", City: "e", Zip: "f",
		}); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 0, count(t, s.DB, "customer_info"))
}

func TestStorageErrorsAreClassified(t *testing.T) {
	s := newTestStore(t)

	err := s.WithinTx(context.Background(), func(ctx context.Context, tx ports.BookingTx) error {
		custID, err := tx.InsertCustomer(ctx, &domain.Customer{
			FirstName: "A", LastName: "B", Email: "c@example.com", Address: "d", City: "e", Zip: "f",
		})
		if err != nil {
			return err
		}
		_, err = tx.InsertDelivery(ctx, &domain.Delivery{
			UserID: 999, CustID: custID, Address: "d", City: "e", Zip: "f",
			ScheduledTime: time.Now(), DurationMin: 30, Status: domain.StatusPending,
		})
		return err
	})
	require.ErrorIs(t, err, domain.ErrStorage)
	assert.Contains(t, err.Error(), "foreign key violation")
	assert.Equal(t, 0, count(t, s.DB, "customer_info"))
	assert.Equal(t, 0, count(t, s.DB, "deliveries_table"))
}

func TestSeedUsersRejectsBadRows(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	assert.Error(t, SeedUsers(ctx, s.DB, SQLite, []UserSeed{{UserID: 0, Name: "x", Email: "x@example.com", Role: "driver"}}))
	assert.Error(t, SeedUsers(ctx, s.DB, SQLite, []UserSeed{{UserID: 3, Name: "x", Email: "x@example.com", Role: "pilot"}}))

	// Re-seeding an id updates in place.
	require.NoError(t, SeedUsers(ctx, s.DB, SQLite, []UserSeed{{UserID: 7, Name: "Driver Z", Email: "z@example.com", Role: "driver"}}))
	assert.Equal(t, 3, count(t, s.DB, "user_table"))
}

func TestListWindowsAreHalfOpen(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for _, tc := range []struct {
		name   string
		window domain.Interval
	}{
		{"week", domain.WeekWindow(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))},
		{"day", domain.DayWindow(time.Date(2025, 6, 20, 0, 0, 0, 0, time.UTC))},
	} {
		_, atStart := book(t, s, 42, tc.window.Start, 30)
		book(t, s, 42, tc.window.End, 30)
		book(t, s, 42, tc.window.Start.Add(-30*time.Minute), 30)

		driver := int64(42)
		rows, err := s.ListDeliveries(ctx, tc.window.Start, tc.window.End, &driver)
		require.NoError(t, err, tc.name)
		require.Len(t, rows, 1, tc.name)
		assert.Equal(t, atStart, rows[0].DelivID, tc.name)

		views, err := s.ListDeliveryViews(ctx, tc.window.Start, tc.window.End, nil)
		require.NoError(t, err, tc.name)
		require.Len(t, views, 1, tc.name)
		assert.Equal(t, atStart, views[0].DelivID, tc.name)
	}
}
