package collector

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/go-playground/assert/v2"

	"github.com/Arrostyle/milano-zone-news/db"
	"github.com/Arrostyle/milano-zone-news/internal/model"
	"github.com/Arrostyle/milano-zone-news/internal/repository"
	"github.com/Arrostyle/milano-zone-news/pkg/news"
)

type fakeClient struct {
	articles []news.RawArticle
	err      error
}

func (f *fakeClient) Fetch(ctx context.Context, size int) ([]news.RawArticle, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.articles, nil
}

func (f *fakeClient) Name() string {
	return "fake"
}

type failingStore struct {
	failURL string
	saved   []string
}

func (s *failingStore) SaveArticle(article *model.Article) (bool, error) {
	if article.URL == s.failURL {
		return false, errors.New("disk full")
	}
	s.saved = append(s.saved, article.URL)
	return true, nil
}

func (s *failingStore) PruneOlderThan(cutoff time.Time) (int64, error) {
	return 0, nil
}

func newTestRepo(t *testing.T) *repository.NewsRepository {
	t.Helper()

	conn, err := db.Connect(filepath.Join(t.TempDir(), "news.db"))
	if err != nil {
		t.Fatalf("error opening test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	return repository.NewNewsRepository(conn)
}

func recentDate() string {
	return time.Now().UTC().AddDate(0, 0, -1).Format("2006-01-02 15:04:05")
}

func TestRunUpdateCycle_SavesOnlyClassified(t *testing.T) {
	repo := newTestRepo(t)

	client := &fakeClient{articles: []news.RawArticle{
		{Title: "Aperitivo sui Navigli stasera", URL: "https://example.com/navigli", PublishedAt: recentDate()},
		{Title: "Juventus batte Milan 2-1", URL: "https://example.com/calcio", PublishedAt: recentDate()},
		{Title: "Design week in via Tortona", URL: "https://example.com/tortona", PublishedAt: recentDate()},
	}}

	col := New(client, repo, 50, 30*24*time.Hour)

	saved := col.RunUpdateCycle(context.Background())

	assert.Equal(t, 2, saved)

	articles, err := repo.Query(model.Filters{})
	assert.Equal(t, nil, err)
	assert.Equal(t, 2, len(articles))
	for _, a := range articles {
		assert.NotEqual(t, "https://example.com/calcio", a.URL)
	}
}

func TestRunUpdateCycle_Idempotent(t *testing.T) {
	repo := newTestRepo(t)

	client := &fakeClient{articles: []news.RawArticle{
		{Title: "Mercatino in darsena", URL: "https://example.com/darsena", PublishedAt: recentDate()},
		{Title: "Lavori sul naviglio grande", URL: "https://example.com/naviglio", PublishedAt: recentDate()},
	}}

	col := New(client, repo, 50, 30*24*time.Hour)

	assert.Equal(t, 2, col.RunUpdateCycle(context.Background()))
	assert.Equal(t, 0, col.RunUpdateCycle(context.Background()))

	articles, err := repo.Query(model.Filters{})
	assert.Equal(t, nil, err)
	assert.Equal(t, 2, len(articles))
}

func TestRunUpdateCycle_FetchFailureIsSoft(t *testing.T) {
	repo := newTestRepo(t)
	client := &fakeClient{err: news.ErrMissingAPIKey}

	col := New(client, repo, 50, 30*24*time.Hour)

	assert.Equal(t, 0, col.RunUpdateCycle(context.Background()))

	articles, err := repo.Query(model.Filters{})
	assert.Equal(t, nil, err)
	assert.Equal(t, 0, len(articles))
}

func TestRunUpdateCycle_OneBadArticleDoesNotAbortBatch(t *testing.T) {
	store := &failingStore{failURL: "https://example.com/broken"}

	client := &fakeClient{articles: []news.RawArticle{
		{Title: "Festa sui navigli", URL: "https://example.com/ok", PublishedAt: recentDate()},
		{Title: "Cantiere sul naviglio", URL: "https://example.com/broken", PublishedAt: recentDate()},
		{Title: "Eventi in darsena", URL: "https://example.com/ok2", PublishedAt: recentDate()},
	}}

	col := New(client, store, 50, 30*24*time.Hour)

	saved := col.RunUpdateCycle(context.Background())

	assert.Equal(t, 2, saved)
	assert.Equal(t, []string{"https://example.com/ok", "https://example.com/ok2"}, store.saved)
}

func TestRunUpdateCycle_PrunesOldArticles(t *testing.T) {
	repo := newTestRepo(t)

	old := &model.Article{
		Title:       "Vecchia notizia sui navigli",
		URL:         "https://example.com/vecchia",
		PublishedAt: time.Now().UTC().AddDate(0, 0, -40).Format("2006-01-02 15:04:05"),
		Zone:        "navigli",
	}
	inserted, err := repo.SaveArticle(old)
	assert.Equal(t, nil, err)
	assert.Equal(t, true, inserted)

	client := &fakeClient{articles: []news.RawArticle{
		{Title: "Nuova notizia sui navigli", URL: "https://example.com/nuova", PublishedAt: recentDate()},
	}}

	col := New(client, repo, 50, 30*24*time.Hour)

	assert.Equal(t, 1, col.RunUpdateCycle(context.Background()))

	articles, err := repo.Query(model.Filters{})
	assert.Equal(t, nil, err)
	assert.Equal(t, 1, len(articles))
	assert.Equal(t, "https://example.com/nuova", articles[0].URL)
}

func TestRunUpdateCycle_ConcurrentCycles(t *testing.T) {
	repo := newTestRepo(t)

	client := &fakeClient{articles: []news.RawArticle{
		{Title: "Aperitivo sui Navigli", URL: "https://example.com/1", PublishedAt: recentDate()},
		{Title: "Mercatino in darsena", URL: "https://example.com/2", PublishedAt: recentDate()},
		{Title: "Mostra in via Tortona", URL: "https://example.com/3", PublishedAt: recentDate()},
	}}

	col := New(client, repo, 50, 30*24*time.Hour)

	var wg sync.WaitGroup
	counts := make([]int, 2)

	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			counts[worker] = col.RunUpdateCycle(context.Background())
		}(i)
	}
	wg.Wait()

	// Each unique URL is stored exactly once no matter how the two
	// cycles interleave.
	articles, err := repo.Query(model.Filters{})
	assert.Equal(t, nil, err)
	assert.Equal(t, 3, len(articles))
	assert.Equal(t, 3, counts[0]+counts[1])
}
