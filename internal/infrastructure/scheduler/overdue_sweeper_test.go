package scheduler

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/fletes-api/internal/application/dto"
)

type fakeMarker struct {
	calls atomic.Int32
	err   error
}

func (m *fakeMarker) MarkOverdueBatch(context.Context) (*dto.MarcarVencidasResponse, error) {
	m.calls.Add(1)
	if m.err != nil {
		return nil, m.err
	}
	return &dto.MarcarVencidasResponse{Actualizadas: 2}, nil
}

// fakeLocker un solo dueño a la vez, como SET NX.
type fakeLocker struct {
	mu       sync.Mutex
	held     bool
	released int
	lastTTL  time.Duration
	err      error
}

type fakeLock struct{ l *fakeLocker }

func (f fakeLock) Release(context.Context) error {
	f.l.mu.Lock()
	defer f.l.mu.Unlock()
	f.l.held = false
	f.l.released++
	return nil
}

func (l *fakeLocker) Obtain(_ context.Context, key string, ttl time.Duration) (Lock, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.err != nil {
		return nil, l.err
	}
	if key != LockKey {
		return nil, errors.New("clave inesperada")
	}
	if l.held {
		return nil, ErrLockNotObtained
	}
	l.held = true
	l.lastTTL = ttl
	return fakeLock{l}, nil
}

func TestRunOnce_SinLocker(t *testing.T) {
	m := &fakeMarker{}
	ran, err := NewOverdueSweeper(m, nil, time.Minute).RunOnce(context.Background())
	require.NoError(t, err)
	assert.True(t, ran)
	assert.Equal(t, int32(1), m.calls.Load())
}

func TestRunOnce_ConLock(t *testing.T) {
	m := &fakeMarker{}
	l := &fakeLocker{}
	s := NewOverdueSweeper(m, l, 10*time.Minute)

	ran, err := s.RunOnce(context.Background())
	require.NoError(t, err)
	assert.True(t, ran)
	assert.Equal(t, 10*time.Minute, l.lastTTL, "TTL = intervalo")
	assert.Equal(t, 1, l.released)
	assert.False(t, l.held)
}

func TestRunOnce_LockTomadoPorOtraReplica(t *testing.T) {
	m := &fakeMarker{}
	l := &fakeLocker{held: true}

	ran, err := NewOverdueSweeper(m, l, time.Minute).RunOnce(context.Background())
	require.NoError(t, err)
	assert.False(t, ran)
	assert.Zero(t, m.calls.Load())
}

func TestRunOnce_Errores(t *testing.T) {
	m := &fakeMarker{}
	_, err := NewOverdueSweeper(m, &fakeLocker{err: errors.New("redis caído")}, time.Minute).RunOnce(context.Background())
	assert.Error(t, err)
	assert.Zero(t, m.calls.Load())

	l := &fakeLocker{}
	_, err = NewOverdueSweeper(&fakeMarker{err: errors.New("mongo")}, l, time.Minute).RunOnce(context.Background())
	assert.Error(t, err)
	assert.Equal(t, 1, l.released, "el lock se libera aunque falle el barrido")
}

func TestRun_SeDetieneConElContexto(t *testing.T) {
	m := &fakeMarker{}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		NewOverdueSweeper(m, nil, 5*time.Millisecond).Run(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool { return m.calls.Load() >= 2 }, time.Second, time.Millisecond)
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run no terminó tras cancelar")
	}
}

func TestRun_IntervaloCeroNoCorre(t *testing.T) {
	m := &fakeMarker{}
	NewOverdueSweeper(m, nil, 0).Run(context.Background())
	assert.Zero(t, m.calls.Load())
}
