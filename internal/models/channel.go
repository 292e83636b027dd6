package models

// Channel represents a resolved YouTube channel. Counts keep the
// decimal-string encoding the Data API transmits them in; absent
// statistics are backfilled with "0" so every field is always set.
type Channel struct {
	ID              string `json:"id"`
	Title           string `json:"title"`
	Description     string `json:"description"`
	ThumbnailURL    string `json:"thumbnailUrl"`
	SubscriberCount string `json:"subscriberCount"`
	VideoCount      string `json:"videoCount"`
}
