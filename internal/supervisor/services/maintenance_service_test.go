// ToyVerse - Toy Store Recommendation Service
// Copyright 2026 Armaghan195
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Armaghan195/ToyVerse

package services

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/thejerf/suture/v4"

	"github.com/Armaghan195/ToyVerse/internal/recommend"
)

type fakeCheckpointer struct {
	calls atomic.Int32
	err   error
}

func (f *fakeCheckpointer) Checkpoint(ctx context.Context) error {
	f.calls.Add(1)
	return f.err
}

type fakeStats struct{}

func (fakeStats) GetMetrics() recommend.Metrics {
	return recommend.Metrics{RequestCount: 12, FallbackCount: 3, TrackCount: 7}
}

// syncBuffer guards a bytes.Buffer shared with the service goroutine.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestMaintenanceService_Interface(t *testing.T) {
	var _ suture.Service = (*MaintenanceService)(nil)
}

func TestMaintenanceService_CheckpointsOnSchedule(t *testing.T) {
	db := &fakeCheckpointer{}
	out := &syncBuffer{}
	svc := NewMaintenanceService(db, fakeStats{}, MaintenanceConfig{CheckpointInterval: 10 * time.Millisecond}, zerolog.New(out))

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- svc.Serve(ctx) }()

	deadline := time.Now().Add(2 * time.Second)
	for db.calls.Load() < 2 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	cancel()

	if err := <-errCh; !errors.Is(err, context.Canceled) {
		t.Errorf("Serve() = %v, want context.Canceled", err)
	}
	if db.calls.Load() < 2 {
		t.Errorf("checkpoints = %d, want >= 2", db.calls.Load())
	}
	if !strings.Contains(out.String(), `"requests":12`) {
		t.Errorf("engine counters not logged: %s", out.String())
	}
}

func TestMaintenanceService_CheckpointErrorIsNotFatal(t *testing.T) {
	db := &fakeCheckpointer{err: errors.New("disk full")}
	svc := NewMaintenanceService(db, nil, MaintenanceConfig{CheckpointInterval: 5 * time.Millisecond}, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- svc.Serve(ctx) }()

	deadline := time.Now().Add(2 * time.Second)
	for db.calls.Load() < 3 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	cancel()

	if err := <-errCh; !errors.Is(err, context.Canceled) {
		t.Errorf("Serve() = %v, want context.Canceled", err)
	}
}

func TestMaintenanceService_Disabled(t *testing.T) {
	db := &fakeCheckpointer{}
	svc := NewMaintenanceService(db, nil, MaintenanceConfig{}, zerolog.Nop())

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	if err := svc.Serve(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Serve() = %v, want DeadlineExceeded", err)
	}
	if db.calls.Load() != 0 {
		t.Errorf("disabled service checkpointed %d times", db.calls.Load())
	}
	if svc.config.CheckpointTimeout != time.Minute {
		t.Errorf("default CheckpointTimeout = %v", svc.config.CheckpointTimeout)
	}
}
