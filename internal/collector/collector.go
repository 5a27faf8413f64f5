package collector

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Arrostyle/milano-zone-news/internal/model"
	"github.com/Arrostyle/milano-zone-news/pkg/news"
	"github.com/Arrostyle/milano-zone-news/pkg/zones"
)

type Store interface {
	SaveArticle(article *model.Article) (bool, error)
	PruneOlderThan(cutoff time.Time) (int64, error)
}

// Collector runs the fetch -> classify -> save -> prune cycle. It is
// shared by the periodic loop and the manual update endpoint; overlap
// between the two is safe because deduplication lives in the store's
// unique url constraint, not here.
type Collector struct {
	client    news.Client
	store     Store
	pageSize  int
	retention time.Duration
}

func New(client news.Client, store Store, pageSize int, retention time.Duration) *Collector {
	return &Collector{
		client:    client,
		store:     store,
		pageSize:  pageSize,
		retention: retention,
	}
}

// RunUpdateCycle performs one update cycle and returns the number of
// newly stored articles. Failures never escape: they are logged and
// reported as zero new articles.
func (c *Collector) RunUpdateCycle(ctx context.Context) int {
	saved, err := c.runOnce(ctx)
	if err != nil {
		slog.Error("update cycle failed", "source", c.client.Name(), "error", err)
		return 0
	}
	return saved
}

func (c *Collector) runOnce(ctx context.Context) (int, error) {
	fetched, err := c.client.Fetch(ctx, c.pageSize)
	if err != nil {
		return 0, fmt.Errorf("fetch: %w", err)
	}

	var saved, duplicated, unclassified, errored int

	for _, raw := range fetched {
		zone, ok := zones.Classify(raw.Title, raw.Description)
		if !ok {
			unclassified++
			continue
		}

		article := model.Article{
			Title:       raw.Title,
			Description: raw.Description,
			URL:         raw.URL,
			PublishedAt: raw.PublishedAt,
			Zone:        zone,
		}

		inserted, err := c.store.SaveArticle(&article)
		if err != nil {
			slog.Error("error saving article", "url", raw.URL, "error", err)
			errored++
			continue
		}

		if !inserted {
			duplicated++
			continue
		}

		saved++
	}

	removed, err := c.store.PruneOlderThan(time.Now().Add(-c.retention))
	if err != nil {
		slog.Error("error pruning old articles", "error", err)
	} else if removed > 0 {
		slog.Info("pruned old articles", "removed", removed)
	}

	slog.Info("update cycle complete",
		"source", c.client.Name(),
		"fetched", len(fetched),
		"saved", saved,
		"duplicated", duplicated,
		"unclassified", unclassified,
		"errors", errored)

	return saved, nil
}

// Run executes an update cycle immediately and then on every interval
// tick until ctx is cancelled. A failed cycle schedules the next
// attempt after retryDelay instead of the full interval. Note the
// caller currently never cancels: the loop is process-lifetime.
func (c *Collector) Run(ctx context.Context, interval, retryDelay time.Duration) {
	for {
		delay := interval

		if _, err := c.runOnce(ctx); err != nil {
			slog.Error("update cycle failed, retrying sooner", "error", err, "retry_in", retryDelay.String())
			delay = retryDelay
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(delay):
		}
	}
}
