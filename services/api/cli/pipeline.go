package cli

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/02loveslollipop/Shizuku-water-quality/services/api/config"
	"github.com/02loveslollipop/Shizuku-water-quality/services/api/dataset"
	"github.com/02loveslollipop/Shizuku-water-quality/services/api/db"
	"github.com/02loveslollipop/Shizuku-water-quality/services/api/ingest"
	"github.com/02loveslollipop/Shizuku-water-quality/services/api/metrics"
)

// newProvider resolves the configured sources into an unbuilt provider. The
// returned close func releases the optional database pool.
func newProvider(ctx context.Context, cfg config.Config, logger *slog.Logger) (*dataset.Provider, func(), error) {
	manifest, err := config.LoadManifest(cfg.ManifestPath, cfg.DataDir)
	if err != nil {
		return nil, nil, err
	}
	aliases, err := ingest.NewAliasTable(manifest.Aliases)
	if err != nil {
		return nil, nil, fmt.Errorf("manifest aliases: %w", err)
	}

	sources := make([]ingest.Source, 0, len(manifest.Sources)+1)
	for _, s := range manifest.Sources {
		sources = append(sources, ingest.OpenSource(s.Path, s.Sheet))
	}

	closeFn := func() {}
	if cfg.SourceDBURL != "" {
		pg, err := db.NewPGSource(ctx, cfg.SourceDBURL, cfg.SourceQuery)
		if err != nil {
			return nil, nil, fmt.Errorf("db connection error: %w", err)
		}
		sources = append(sources, pg)
		closeFn = pg.Close
	}

	pipeline := dataset.Pipeline{
		Loader:     ingest.NewLoader(aliases, logger, cfg.LoadConcurrency),
		Sources:    sources,
		ZThreshold: cfg.ZThreshold,
	}
	onBuild := func(snap *dataset.Snapshot, elapsed time.Duration) {
		metrics.RecordBuild(snap.Report, elapsed)
	}
	return dataset.NewProvider(pipeline, logger, onBuild), closeFn, nil
}
