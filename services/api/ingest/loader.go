package ingest

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/02loveslollipop/Shizuku-water-quality/services/api/models"
)

const defaultConcurrency = 4

// LoadResult is the unified, schema-complete dataset in timestamp order.
type LoadResult struct {
	Observations      []models.Observation
	FilesLoaded       int
	FilesSkipped      int
	RowsLoaded        int
	IncompleteDropped int
}

// Loader reads sources, normalizes each one and concatenates the results.
type Loader struct {
	normalizer  *Normalizer
	logger      *slog.Logger
	concurrency int
}

// NewLoader builds a Loader reading at most concurrency sources at once.
func NewLoader(aliases *AliasTable, logger *slog.Logger, concurrency int) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}
	return &Loader{
		normalizer:  NewNormalizer(aliases, logger),
		logger:      logger,
		concurrency: concurrency,
	}
}

// Load reads every source. A missing or unreadable source is logged and
// skipped. Rows keep their source order, sources keep manifest order, and
// the final stable sort by timestamp is the only reordering. The returned
// error is non-nil only when ctx is cancelled.
func (l *Loader) Load(ctx context.Context, sources []Source) (LoadResult, error) {
	slots := make([][]Row, len(sources))
	loaded := make([]bool, len(sources))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(l.concurrency)
	for i, src := range sources {
		g.Go(func() error {
			rows, err := l.readSource(gctx, src)
			if err != nil {
				if errors.Is(err, fs.ErrNotExist) {
					l.logger.Warn("source file not found", slog.String("source", src.Name()))
				} else {
					l.logger.Warn("skipping source", slog.String("source", src.Name()), slog.Any("error", err))
				}
				return nil
			}
			slots[i] = rows
			loaded[i] = true
			return nil
		})
	}
	_ = g.Wait()
	if err := ctx.Err(); err != nil {
		return LoadResult{}, err
	}

	var res LoadResult
	for i := range sources {
		if !loaded[i] {
			res.FilesSkipped++
			continue
		}
		res.FilesLoaded++
		res.RowsLoaded += len(slots[i])
	}

	res.Observations = make([]models.Observation, 0, res.RowsLoaded)
	for _, rows := range slots {
		for _, row := range rows {
			obs, ok := row.Observation()
			if !ok {
				res.IncompleteDropped++
				continue
			}
			res.Observations = append(res.Observations, obs)
		}
	}

	sort.SliceStable(res.Observations, func(i, j int) bool {
		return res.Observations[i].Timestamp.Before(res.Observations[j].Timestamp.Time)
	})

	if res.IncompleteDropped > 0 {
		l.logger.Warn("dropped rows missing required fields", slog.Int("rows", res.IncompleteDropped))
	}
	return res, nil
}

func (l *Loader) readSource(ctx context.Context, src Source) (rows []Row, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("process %s: %v", src.Name(), r)
		}
	}()

	t, err := src.ReadTable(ctx)
	if err != nil {
		return nil, err
	}
	rows = l.normalizer.Normalize(t)
	l.logger.Debug("source normalized", slog.String("source", src.Name()), slog.Int("rows", len(rows)))
	return rows, nil
}
