package youtube

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"google.golang.org/api/option"
	ytapi "google.golang.org/api/youtube/v3"

	"github.com/yt-scriptsmith/internal/models"
)

// searchPageSize is the Data API maximum for one search call.
const searchPageSize = 50

var (
	ErrInvalidURL      = errors.New("invalid channel URL")
	ErrChannelNotFound = errors.New("channel not found")
	ErrNoVideos        = errors.New("no videos found for channel")
)

// Client resolves channel URLs and fetches video data through the
// YouTube Data API.
type Client struct {
	service *ytapi.Service
}

// NewClient creates a YouTube client. Extra options come after the API
// key so tests can point the service at a fake endpoint.
func NewClient(ctx context.Context, apiKey string, opts ...option.ClientOption) (*Client, error) {
	if apiKey != "" {
		opts = append([]option.ClientOption{option.WithAPIKey(apiKey)}, opts...)
	} else {
		// Construction must not fail on a missing key; handlers report
		// the configuration error per request.
		opts = append([]option.ClientOption{option.WithoutAuthentication()}, opts...)
	}

	service, err := ytapi.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create YouTube service: %w", err)
	}

	return &Client{service: service}, nil
}

// ResolveChannel turns a channel URL into the channel's metadata. A
// direct-ID URL costs one lookup; name, username and handle URLs first
// resolve to a channel ID and then fetch metadata, two lookups total.
func (c *Client) ResolveChannel(ctx context.Context, rawURL string) (*models.Channel, error) {
	kind, ref, err := extractChannelRef(rawURL)
	if err != nil {
		return nil, err
	}

	channelID := ref
	switch kind {
	case refChannelID:
		// Already canonical.
	case refUsername:
		channelID, err = c.channelIDForUsername(ctx, ref)
	case refHandle:
		channelID, err = c.searchChannelID(ctx, "@"+ref)
	case refShortName:
		// Short names resolve through search as well; the direct
		// forHandle lookup misses too many vanity URLs.
		channelID, err = c.searchChannelID(ctx, ref)
	}
	if err != nil {
		return nil, err
	}

	return c.channelByID(ctx, channelID)
}

// TopVideos returns up to limit of the channel's most-viewed videos,
// ordered by descending view count.
func (c *Client) TopVideos(ctx context.Context, channelID string, limit int) ([]models.VideoSummary, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("limit must be positive, got %d", limit)
	}

	search, err := c.service.Search.List([]string{"id"}).
		ChannelId(channelID).
		Order("viewCount").
		Type("video").
		MaxResults(searchPageSize).
		Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to search videos for channel %s: %w", channelID, err)
	}

	ids := make([]string, 0, limit)
	for _, item := range search.Items {
		if item.Id == nil || item.Id.VideoId == "" {
			continue
		}
		ids = append(ids, item.Id.VideoId)
		if len(ids) == limit {
			break
		}
	}
	if len(ids) == 0 {
		return nil, fmt.Errorf("%w %s", ErrNoVideos, channelID)
	}

	details, err := c.service.Videos.List([]string{"snippet", "statistics"}).
		Id(ids...).
		Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch video details: %w", err)
	}
	if len(details.Items) == 0 {
		return nil, fmt.Errorf("%w %s", ErrNoVideos, channelID)
	}

	// The batch call does not guarantee request order; reindex by ID so
	// the view-count ordering from the search survives.
	byID := make(map[string]*ytapi.Video, len(details.Items))
	for _, v := range details.Items {
		byID[v.Id] = v
	}

	videos := make([]models.VideoSummary, 0, len(ids))
	for _, id := range ids {
		if v, ok := byID[id]; ok {
			videos = append(videos, videoSummary(v))
		}
	}
	return videos, nil
}

// channelIDForUsername resolves a legacy username with the direct
// forUsername lookup.
func (c *Client) channelIDForUsername(ctx context.Context, username string) (string, error) {
	resp, err := c.service.Channels.List([]string{"id"}).
		ForUsername(username).
		Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("failed to look up username %q: %w", username, err)
	}
	if len(resp.Items) == 0 {
		return "", fmt.Errorf("%w: username %q", ErrChannelNotFound, username)
	}
	return resp.Items[0].Id, nil
}

// searchChannelID resolves a handle or short name through channel
// search, taking the top result.
func (c *Client) searchChannelID(ctx context.Context, query string) (string, error) {
	resp, err := c.service.Search.List([]string{"snippet"}).
		Q(query).
		Type("channel").
		MaxResults(1).
		Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("failed to search for channel %q: %w", query, err)
	}
	if len(resp.Items) == 0 || resp.Items[0].Id == nil || resp.Items[0].Id.ChannelId == "" {
		return "", fmt.Errorf("%w: %q", ErrChannelNotFound, query)
	}
	return resp.Items[0].Id.ChannelId, nil
}

func (c *Client) channelByID(ctx context.Context, channelID string) (*models.Channel, error) {
	resp, err := c.service.Channels.List([]string{"snippet", "statistics"}).
		Id(channelID).
		MaxResults(1).
		Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch channel %s: %w", channelID, err)
	}
	if len(resp.Items) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrChannelNotFound, channelID)
	}

	item := resp.Items[0]
	channel := &models.Channel{
		ID:              item.Id,
		SubscriberCount: "0",
		VideoCount:      "0",
	}
	if item.Snippet != nil {
		channel.Title = item.Snippet.Title
		channel.Description = item.Snippet.Description
		channel.ThumbnailURL = thumbnailURL(item.Snippet.Thumbnails, "")
	}
	if item.Statistics != nil {
		channel.SubscriberCount = strconv.FormatUint(item.Statistics.SubscriberCount, 10)
		channel.VideoCount = strconv.FormatUint(item.Statistics.VideoCount, 10)
	}
	return channel, nil
}

func videoSummary(v *ytapi.Video) models.VideoSummary {
	summary := models.VideoSummary{
		ID:           v.Id,
		ThumbnailURL: placeholderThumbnail(v.Id),
		ViewCount:    "0",
		LikeCount:    "0",
		CommentCount: "0",
	}
	if v.Snippet != nil {
		summary.Title = v.Snippet.Title
		summary.Description = v.Snippet.Description
		summary.PublishedAt = v.Snippet.PublishedAt
		summary.ThumbnailURL = thumbnailURL(v.Snippet.Thumbnails, summary.ThumbnailURL)
	}
	if v.Statistics != nil {
		summary.ViewCount = strconv.FormatUint(v.Statistics.ViewCount, 10)
		summary.LikeCount = strconv.FormatUint(v.Statistics.LikeCount, 10)
		summary.CommentCount = strconv.FormatUint(v.Statistics.CommentCount, 10)
	}
	return summary
}

// thumbnailURL picks a thumbnail in a fixed preference order, falling
// back when a size is missing.
func thumbnailURL(t *ytapi.ThumbnailDetails, fallback string) string {
	if t == nil {
		return fallback
	}
	for _, thumb := range []*ytapi.Thumbnail{t.Default, t.Medium, t.High} {
		if thumb != nil && thumb.Url != "" {
			return thumb.Url
		}
	}
	return fallback
}

func placeholderThumbnail(videoID string) string {
	return fmt.Sprintf("https://i.ytimg.com/vi/%s/default.jpg", videoID)
}
