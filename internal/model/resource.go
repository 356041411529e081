package model

// VideoRec is a video resource from the catalog. MapsTo lists the flags the
// video is relevant for and is the sole matching key during ranking.
type VideoRec struct {
	ID              string   `json:"id"`
	Reason          string   `json:"reason,omitempty"`
	Title           string   `json:"title"`
	URL             string   `json:"url"`
	MapsTo          []string `json:"maps_to"`
	TLDR            string   `json:"tldr"`
	DurationMinutes float64  `json:"duration_minutes"`
}

// ArticleRec is an article resource from the catalog.
type ArticleRec struct {
	ID          string   `json:"id"`
	Reason      string   `json:"reason,omitempty"`
	Title       string   `json:"title"`
	Authors     string   `json:"authors"`
	Year        int      `json:"year"`
	Source      string   `json:"source"`
	URL         string   `json:"url"`
	MapsTo      []string `json:"maps_to"`
	EstMinutes  float64  `json:"est_minutes"`
	TLDR        []string `json:"tldr"`
	TryTomorrow []string `json:"try_tomorrow"`
}
