package models

// VideoSummary represents one of a channel's videos with the snippet and
// statistics fields the prompt is built from. Counts follow the same
// string-encoded-integer convention as Channel; "0" when the upstream
// omits them (comments disabled, hidden likes).
type VideoSummary struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	ThumbnailURL string `json:"thumbnailUrl"`
	PublishedAt  string `json:"publishedAt"`
	ViewCount    string `json:"viewCount"`
	LikeCount    string `json:"likeCount"`
	CommentCount string `json:"commentCount"`
}
