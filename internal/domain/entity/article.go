package entity

// NewsArticle is a curated news item extracted from raw search results.
// Articles are transient: they are regenerated per request and never stored.
//
// Date carries one of three shapes: a full "YYYY-MM-DD HH:MM:SS <tz>"
// timestamp, a bare "YYYY-MM-DD" date, or the literal "Recent" when the
// publication time is unknown.
type NewsArticle struct {
	Title   string `json:"title"`
	Summary string `json:"summary"`
	URL     string `json:"url"`
	Source  string `json:"source"`
	Date    string `json:"date"`
}

// DateRecent is the sentinel date value meaning "published just now" /
// publication time unknown.
const DateRecent = "Recent"
