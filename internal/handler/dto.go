package handler

type NewsItemResponse struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Link        string `json:"link"`
	PublishedAt string `json:"published_at"`
	Zone        string `json:"zone"`
	IsFavorite  bool   `json:"is_favorite"`
	CreatedAt   string `json:"created_at"`
}

type NewsResponse struct {
	Status string             `json:"status"`
	News   []NewsItemResponse `json:"news"`
	Count  int                `json:"count"`
}

type ZonesResponse struct {
	Status string         `json:"status"`
	Zones  map[string]int `json:"zones"`
}

type DatesResponse struct {
	Status string   `json:"status"`
	Dates  []string `json:"dates"`
}

type FavoriteRequest struct {
	ID int64 `json:"id"`
}

type FavoriteResponse struct {
	Status     string `json:"status"`
	IsFavorite bool   `json:"is_favorite"`
}

type StatsResponse struct {
	Status string       `json:"status"`
	Stats  StatsPayload `json:"stats"`
}

type StatsPayload struct {
	TotalNews    int            `json:"total_news"`
	Favorites    int            `json:"favorites"`
	Zones        map[string]int `json:"zones"`
	LatestUpdate string         `json:"latest_update"`
}

type UpdateResponse struct {
	Status      string `json:"status"`
	Message     string `json:"message"`
	NewArticles int    `json:"new_articles"`
}
