package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"AIUpdatesMonitor/internal/domain"
	"AIUpdatesMonitor/internal/fingerprint"
	"AIUpdatesMonitor/internal/ports"
	"AIUpdatesMonitor/internal/watch"
)

// PassDeps wires the discovery pass collaborators.
type PassDeps struct {
	Registry   *watch.Registry
	Sources    []watch.Source
	Repository ports.ItemRepository
	Notifier   ports.Notifier
	Retention  time.Duration
	Logger     *slog.Logger
	Now        func() time.Time
}

// Pass runs one fetch→dedup→persist→notify cycle over the configured
// sources. It is stateless across invocations: everything it remembers
// between passes lives in the item repository.
type Pass struct {
	registry  *watch.Registry
	sources   []watch.Source
	repo      ports.ItemRepository
	notifier  ports.Notifier
	retention time.Duration
	logger    *slog.Logger
	now       func() time.Time
}

// NewPass constructs the orchestration component.
func NewPass(deps PassDeps) *Pass {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	return &Pass{
		registry:  deps.Registry,
		sources:   deps.Sources,
		repo:      deps.Repository,
		notifier:  deps.Notifier,
		retention: deps.Retention,
		logger:    logger,
		now:       now,
	}
}

// Run executes one discovery pass. filter restricts the pass to one source
// category; the zero value covers every configured source. A source's fetch
// failure is logged and skipped; a storage failure aborts the whole pass
// before any notification is sent.
func (p *Pass) Run(ctx context.Context, filter domain.SourceType) (domain.PassSummary, error) {
	summary := domain.NewPassSummary(p.now().UTC())

	// Fingerprints staged this pass, so one item fetched twice (within a
	// feed or across sources) is inserted once.
	staged := map[string]struct{}{}
	var batch []domain.SeenItem

	for _, src := range p.sources {
		if filter != "" && src.Type != filter {
			continue
		}

		adapter, err := p.registry.Resolve(src.Type)
		if err != nil {
			p.logger.Error("source misconfigured", "source", src.Name, "error", err)
			summary.MarkErrored(src.Name)
			continue
		}

		candidates, err := adapter.Fetch(ctx, src)
		if err != nil {
			p.logger.Warn("source check failed", "source", src.Name, "error", err)
			summary.MarkErrored(src.Name)
			continue
		}
		summary.AddFetched(src.Name, len(candidates))

		for _, cand := range candidates {
			fp := fingerprint.Compute(cand.SourceName, cand.RawKey)

			if _, ok := staged[fp]; ok {
				continue
			}

			exists, err := p.repo.Exists(ctx, fp)
			if err != nil {
				return summary, err
			}
			if exists {
				continue
			}

			staged[fp] = struct{}{}
			batch = append(batch, domain.SeenItem{
				Fingerprint: fp,
				SourceType:  cand.SourceType,
				SourceName:  cand.SourceName,
				Title:       cand.Title,
				URL:         cand.URL,
				Snippet:     cand.Snippet,
				PublishedAt: cand.PublishedAt,
				FirstSeenAt: p.now().UTC(),
			})
			summary.AddNew(src.Name, 1)
			p.logger.Info("new item found", "source", src.Name, "title", cand.Title)
		}
	}

	// Persist before notifying: presence in the store is the notification
	// record, so a crash between insert and dispatch loses a delivery but
	// never duplicates one.
	inserted := make([]domain.SeenItem, 0, len(batch))
	for _, item := range batch {
		if err := p.repo.Insert(ctx, item); err != nil {
			if errors.Is(err, domain.ErrDuplicateItem) {
				p.logger.Warn("staged item already recorded", "fingerprint", item.Fingerprint, "title", item.Title)
				continue
			}
			return summary, err
		}
		inserted = append(inserted, item)
	}

	if len(inserted) > 0 && p.notifier != nil {
		p.notifier.Dispatch(ctx, inserted)
	}

	if p.retention > 0 && filter == "" {
		purged, err := p.repo.Purge(ctx, p.now().UTC().Add(-p.retention))
		if err != nil {
			p.logger.Error("retention sweep failed", "error", err)
		} else if purged > 0 {
			p.logger.Info("retention sweep", "purged", purged)
		}
	}

	summary.FinishedAt = p.now().UTC()
	p.logger.Info("pass complete",
		"fetched", summary.TotalFetched(),
		"new", summary.TotalNew(),
		"errored", summary.TotalErrored(),
	)
	return summary, nil
}
