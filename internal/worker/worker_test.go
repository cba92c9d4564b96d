package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ParkingDesk/internal/service/pricing/models"
	"github.com/m04kA/SMC-ParkingDesk/pkg/logger"
)

type stubChecker struct {
	status *models.HealthStatus
	err    error
}

func (s stubChecker) Health(ctx context.Context) (*models.HealthStatus, error) {
	if _, ok := ctx.Deadline(); !ok {
		return nil, errors.New("probe must run with a deadline")
	}
	return s.status, s.err
}

type stubStore struct {
	expired int
	left    int
}

func (s *stubStore) Sweep() int {
	n := s.expired
	s.expired = 0
	return n
}

func (s *stubStore) Len() int { return s.left }

type gaugeRecorder struct {
	value int
}

func (g *gaugeRecorder) SetActiveTransactions(n int) { g.value = n }

func TestPricingHealthProbe(t *testing.T) {
	probe := NewPricingHealthProbe(stubChecker{status: &models.HealthStatus{Healthy: true, ModelLoaded: true}}, time.Second, logger.Nop())
	assert.Nil(t, probe.Status())

	probe.Run(context.Background())
	status := probe.Status()
	require.NotNil(t, status)
	assert.True(t, status.Healthy)

	// копия не влияет на кэш
	status.Healthy = false
	assert.True(t, probe.Status().Healthy)
}

func TestPricingHealthProbe_Unreachable(t *testing.T) {
	probe := NewPricingHealthProbe(stubChecker{err: errors.New("dial tcp: connection refused")}, time.Second, logger.Nop())
	probe.Run(context.Background())

	status := probe.Status()
	require.NotNil(t, status)
	assert.False(t, status.Healthy)
	assert.Contains(t, status.Error, "connection refused")
}

func TestTransactionSweeper(t *testing.T) {
	store := &stubStore{expired: 3, left: 2}
	gauge := &gaugeRecorder{}

	NewTransactionSweeper(store, gauge, logger.Nop()).Run(context.Background())
	assert.Equal(t, 0, store.expired)
	assert.Equal(t, 2, gauge.value)
}

type countingJob struct {
	runs atomic.Int32
}

func (j *countingJob) Name() string { return "counting" }

func (j *countingJob) Run(context.Context) { j.runs.Add(1) }

func TestScheduler(t *testing.T) {
	s := NewScheduler(logger.Nop())
	assert.Error(t, s.Add("not a spec", &countingJob{}))

	job := &countingJob{}
	require.NoError(t, s.Add("@every 1s", job))
	s.Start()

	assert.Eventually(t, func() bool { return job.runs.Load() > 0 }, 3*time.Second, 50*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	s.Stop(ctx)
}
