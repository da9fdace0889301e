package services

import (
	"context"
	"delivery-schedule-service/internal/domain"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompleteDelivery(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	res, err := f.svc.CreateBooking(ctx, scheduler, request("42", "2025-06-02T09:00:00", "30"))
	require.NoError(t, err)

	_, err = f.svc.CompleteDelivery(ctx, domain.Caller{UserID: 7, Role: domain.RoleDriver}, res.DelivID)
	require.ErrorIs(t, err, domain.ErrForbidden)

	d, err := f.svc.CompleteDelivery(ctx, domain.Caller{UserID: 42, Role: domain.RoleDriver}, res.DelivID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, d.Status)
	require.NotNil(t, d.CompletedAt)
	assert.True(t, d.CompletedAt.Equal(f.svc.now()))

	stored, err := f.store.GetDelivery(ctx, res.DelivID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, stored.Status)

	// Completing again is accepted.
	_, err = f.svc.CompleteDelivery(ctx, scheduler, res.DelivID)
	require.NoError(t, err)

	_, err = f.svc.CompleteDelivery(ctx, scheduler, res.DelivID+100)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = f.svc.CompleteDelivery(ctx, scheduler, 0)
	assert.ErrorIs(t, err, domain.ErrValidation)

	assert.Equal(t, []domain.EventType{
		domain.EventDeliveryBooked,
		domain.EventDeliveryCompleted,
		domain.EventDeliveryCompleted,
	}, f.events.types())
}

func TestDeleteDelivery(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	res, err := f.svc.CreateBooking(ctx, scheduler, request("42", "2025-06-02T09:00:00", "30"))
	require.NoError(t, err)

	err = f.svc.DeleteDelivery(ctx, domain.Caller{UserID: 42, Role: domain.RoleDriver}, res.DelivID)
	require.ErrorIs(t, err, domain.ErrForbidden)

	require.NoError(t, f.svc.DeleteDelivery(ctx, admin, res.DelivID))
	assert.ErrorIs(t, f.svc.DeleteDelivery(ctx, admin, res.DelivID), domain.ErrNotFound)

	customers, deliveries := f.counts(t)
	assert.Equal(t, 1, customers, "customer rows outlive their deliveries")
	assert.Zero(t, deliveries)

	// The slot is free again.
	_, err = f.svc.CreateBooking(ctx, scheduler, request("42", "2025-06-02T09:00:00", "30"))
	require.NoError(t, err)
}

func TestDirectory(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.CreateBooking(ctx, scheduler, request("42", "2025-06-02T09:00:00", "30"))
	require.NoError(t, err)

	customers, err := f.svc.ListCustomers(ctx, domain.Caller{UserID: 7, Role: domain.RoleDriver})
	require.NoError(t, err)
	assert.Len(t, customers, 1)

	_, err = f.svc.ListUsers(ctx, scheduler)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	users, err := f.svc.ListUsers(ctx, admin)
	require.NoError(t, err)
	assert.Len(t, users, 4)
}
