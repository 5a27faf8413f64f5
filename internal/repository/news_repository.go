package repository

import (
	"database/sql"
	"strings"
	"time"

	"github.com/Arrostyle/milano-zone-news/internal/model"
)

// datePrefix matches the YYYY-MM-DD shape NewsData timestamps start
// with. Rows whose published_at does not look like a date are excluded
// from pruning and date listing rather than compared as garbage.
const datePrefix = `'[0-9][0-9][0-9][0-9]-[0-9][0-9]-[0-9][0-9]*'`

type NewsRepository struct {
	db *sql.DB
}

func NewNewsRepository(db *sql.DB) *NewsRepository {
	return &NewsRepository{db: db}
}

// SaveArticle inserts the article unless its URL is already stored. The
// unique index on url makes this safe under concurrent update cycles:
// exactly one caller wins, the rest see false. On success the assigned
// id and ingestion timestamp are written back into the article.
func (r *NewsRepository) SaveArticle(article *model.Article) (bool, error) {
	createdAt := time.Now().UTC().Format(time.RFC3339)

	var id int64
	err := r.db.QueryRow(`
		INSERT INTO news(title, description, url, published_at, zone, created_at)
		VALUES(?, ?, ?, ?, ?, ?)
		ON CONFLICT(url) DO NOTHING
		RETURNING id
	`, article.Title, article.Description, article.URL, article.PublishedAt, article.Zone, createdAt).Scan(&id)

	if err == sql.ErrNoRows {
		return false, nil
	}

	if err != nil {
		return false, err
	}

	article.ID = id
	article.CreatedAt = createdAt
	return true, nil
}

// PruneOlderThan deletes articles whose published_at is chronologically
// before cutoff. The comparison is lexicographic against the feed's
// "2006-01-02 15:04:05" layout; non-date-shaped values never qualify.
func (r *NewsRepository) PruneOlderThan(cutoff time.Time) (int64, error) {
	res, err := r.db.Exec(`
		DELETE FROM news
		WHERE published_at GLOB `+datePrefix+`
		AND published_at < ?
	`, cutoff.UTC().Format("2006-01-02 15:04:05"))

	if err != nil {
		return 0, err
	}

	return res.RowsAffected()
}

// Query returns articles matching all given filters, newest first. An
// unknown zone value is not an error, it simply matches nothing.
func (r *NewsRepository) Query(f model.Filters) ([]model.Article, error) {
	q := `
		SELECT id, title, description, url, published_at, zone, is_favorite, created_at
		FROM news
	`

	var conds []string
	var args []any

	if f.Zone != "" && f.Zone != model.AllZones {
		conds = append(conds, "zone = ?")
		args = append(args, f.Zone)
	}
	if f.Date != "" {
		conds = append(conds, "substr(published_at, 1, 10) = ?")
		args = append(args, f.Date)
	}
	if f.FavoritesOnly {
		conds = append(conds, "is_favorite = 1")
	}

	if len(conds) > 0 {
		q += " WHERE " + strings.Join(conds, " AND ")
	}

	q += " ORDER BY published_at DESC"

	limit := f.Limit
	if limit <= 0 {
		limit = 100
	}
	q += " LIMIT ?"
	args = append(args, limit)

	rows, err := r.db.Query(q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var articles []model.Article
	for rows.Next() {
		var a model.Article
		err := rows.Scan(&a.ID, &a.Title, &a.Description, &a.URL, &a.PublishedAt, &a.Zone, &a.IsFavorite, &a.CreatedAt)
		if err != nil {
			return nil, err
		}
		articles = append(articles, a)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return articles, nil
}

func (r *NewsRepository) DistinctDates() ([]string, error) {
	rows, err := r.db.Query(`
		SELECT DISTINCT substr(published_at, 1, 10) AS day
		FROM news
		WHERE published_at GLOB ` + datePrefix + `
		ORDER BY day DESC
	`)

	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var dates []string
	for rows.Next() {
		var day string
		if err := rows.Scan(&day); err != nil {
			return nil, err
		}
		dates = append(dates, day)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return dates, nil
}

// CountsByZone returns article counts per zone; zones with no articles
// have no entry.
func (r *NewsRepository) CountsByZone() (map[string]int, error) {
	rows, err := r.db.Query(`
		SELECT zone, COUNT(*)
		FROM news
		GROUP BY zone
	`)

	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var zone string
		var count int
		if err := rows.Scan(&zone, &count); err != nil {
			return nil, err
		}
		counts[zone] = count
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return counts, nil
}

// ToggleFavorite flips the favorite flag in a single statement, so
// concurrent toggles of the same id cannot interleave a stale read.
// Returns the new state, or model.ErrNotFound for an unknown id.
func (r *NewsRepository) ToggleFavorite(id int64) (bool, error) {
	var favorite bool
	err := r.db.QueryRow(`
		UPDATE news SET is_favorite = 1 - is_favorite
		WHERE id = ?
		RETURNING is_favorite
	`, id).Scan(&favorite)

	if err == sql.ErrNoRows {
		return false, model.ErrNotFound
	}

	if err != nil {
		return false, err
	}

	return favorite, nil
}

func (r *NewsRepository) Stats() (*model.Stats, error) {
	stats := &model.Stats{}

	err := r.db.QueryRow(`
		SELECT COUNT(*), COALESCE(SUM(is_favorite), 0), COALESCE(MAX(created_at), '')
		FROM news
	`).Scan(&stats.TotalNews, &stats.Favorites, &stats.LatestUpdate)

	if err != nil {
		return nil, err
	}

	stats.Zones, err = r.CountsByZone()
	if err != nil {
		return nil, err
	}

	return stats, nil
}
