package subscription

import (
	"context"
	"testing"
	"time"

	domain "github.com/Zhima-Mochi/ims/internal/domain/subscription"
	"github.com/Zhima-Mochi/ims/internal/infrastructure/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(now *time.Time) *Service {
	svc := NewService(memory.NewSubscriptionRepository(), nil, nil)
	return svc.WithClock(func() time.Time { return *now })
}

func TestRenewAndStatus(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	svc := newTestService(&now)

	sub, err := svc.Renew(ctx, 1, domain.PlanMonthly)
	require.NoError(t, err)
	assert.Equal(t, now.Add(30*24*time.Hour), sub.EndAt)

	status, err := svc.Status(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusActive, status)
}

func TestStatusNoSubscription(t *testing.T) {
	now := time.Now()
	status, err := newTestService(&now).Status(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusNoSubscription, status)
}

func TestStatusExpiresAndIsWrittenBack(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	svc := newTestService(&now)

	_, err := svc.Renew(ctx, 1, domain.PlanMonthly)
	require.NoError(t, err)

	now = now.Add(31 * 24 * time.Hour)
	status, err := svc.Status(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusExpired, status)

	// the lazy check persists the observation
	stored, err := svc.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusExpired, stored.Status)
}

func TestRenewBeforeExpiryKeepsRemainingTime(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	svc := newTestService(&now)

	first, err := svc.Renew(ctx, 1, domain.PlanMonthly)
	require.NoError(t, err)

	now = now.Add(10 * 24 * time.Hour)
	second, err := svc.Renew(ctx, 1, domain.PlanMonthly)
	require.NoError(t, err)
	assert.Equal(t, first.EndAt.Add(30*24*time.Hour), second.EndAt)
}

func TestRenewExpiredStartsFresh(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	svc := newTestService(&now)

	_, err := svc.Renew(ctx, 1, domain.PlanMonthly)
	require.NoError(t, err)

	now = now.Add(60 * 24 * time.Hour)
	sub, err := svc.Renew(ctx, 1, domain.PlanYearly)
	require.NoError(t, err)
	assert.Equal(t, now, sub.StartAt)
	assert.Equal(t, now.Add(365*24*time.Hour), sub.EndAt)

	status, err := svc.Status(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusActive, status)
}

func TestRenewInvalidPlan(t *testing.T) {
	now := time.Now()
	_, err := newTestService(&now).Renew(context.Background(), 1, domain.Plan("weekly"))
	assert.ErrorIs(t, err, domain.ErrInvalidPlan)
}
