// Package dataset builds the cleaned observation snapshot once and publishes
// it atomically. Readers see either no snapshot or a complete one.
package dataset

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/02loveslollipop/Shizuku-water-quality/services/api/db"
	"github.com/02loveslollipop/Shizuku-water-quality/services/api/ingest"
)

// Snapshot is the immutable result of one build.
type Snapshot struct {
	Store   *db.Store
	Report  ingest.Report
	BuiltAt time.Time
}

// Ready reports whether the snapshot holds any observations.
func (s *Snapshot) Ready() bool {
	return s != nil && s.Store != nil && s.Store.Len() > 0
}

// Pipeline describes how a snapshot is derived from its sources.
type Pipeline struct {
	Loader     *ingest.Loader
	Sources    []ingest.Source
	ZThreshold float64
}

// Build runs load, required-field drop and z-score cleaning from scratch.
func (p Pipeline) Build(ctx context.Context) (*Snapshot, error) {
	if p.Loader == nil {
		return nil, errors.New("dataset: pipeline has no loader")
	}
	threshold := p.ZThreshold
	if threshold <= 0 {
		threshold = ingest.DefaultZThreshold
	}

	loaded, err := p.Loader.Load(ctx, p.Sources)
	if err != nil {
		return nil, err
	}
	cleaned := ingest.Clean(loaded.Observations, threshold)
	return &Snapshot{
		Store:   db.New(cleaned.Observations),
		Report:  ingest.NewReport(loaded, cleaned, threshold),
		BuiltAt: time.Now().UTC(),
	}, nil
}

// BuildHook is notified after every successful build.
type BuildHook func(snap *Snapshot, elapsed time.Duration)

// Provider owns the published snapshot.
type Provider struct {
	pipeline Pipeline
	logger   *slog.Logger
	onBuild  BuildHook

	mu      sync.Mutex
	current atomic.Pointer[Snapshot]
}

// NewProvider returns a Provider that has not built anything yet.
func NewProvider(p Pipeline, logger *slog.Logger, onBuild BuildHook) *Provider {
	if logger == nil {
		logger = slog.Default()
	}
	return &Provider{pipeline: p, logger: logger, onBuild: onBuild}
}

// NewStatic returns a Provider already serving snap.
func NewStatic(snap *Snapshot) *Provider {
	p := &Provider{logger: slog.Default()}
	p.current.Store(snap)
	return p
}

// Snapshot returns the published snapshot, or false before the first build.
func (p *Provider) Snapshot() (*Snapshot, bool) {
	s := p.current.Load()
	return s, s != nil
}

// Build derives a fresh snapshot and publishes it only once it is complete.
// Concurrent calls are serialised.
func (p *Provider) Build(ctx context.Context) (*Snapshot, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.buildLocked(ctx)
}

func (p *Provider) buildLocked(ctx context.Context) (*Snapshot, error) {
	start := time.Now()
	snap, err := p.pipeline.Build(ctx)
	if err != nil {
		return nil, err
	}
	elapsed := time.Since(start)
	p.current.Store(snap)

	p.logger.Info("dataset built",
		slog.Any("report", snap.Report),
		slog.Duration("elapsed", elapsed),
	)
	if !snap.Ready() {
		p.logger.Warn("dataset is empty after cleaning")
	}
	if p.onBuild != nil {
		p.onBuild(snap, elapsed)
	}
	return snap, nil
}
