package model

import "errors"

// ErrNotFound is returned when an operation targets an article id that
// does not exist.
var ErrNotFound = errors.New("article not found")

// AllZones is the filter value meaning "no zone filter".
const AllZones = "all"

// Article is the persisted entity. PublishedAt is the source feed's own
// timestamp string, kept verbatim; CreatedAt is the ingestion time in
// RFC 3339, set once by the store.
type Article struct {
	ID          int64
	Title       string
	Description string
	URL         string
	PublishedAt string
	Zone        string
	IsFavorite  bool
	CreatedAt   string
}

// Filters compose conjunctively. Zone empty or "all" means no zone
// filter; Date matches the calendar-date prefix of PublishedAt.
type Filters struct {
	Zone          string
	Date          string
	FavoritesOnly bool
	Limit         int
}

type Stats struct {
	TotalNews    int
	Favorites    int
	Zones        map[string]int
	LatestUpdate string
}
