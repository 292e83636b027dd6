package claude

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/yt-scriptsmith/internal/models"
)

// maxDescriptionLen bounds each video description in the prompt so a
// handful of long-form descriptions cannot blow up the request size.
const maxDescriptionLen = 500

const promptTemplate = `You are an expert YouTube content creator. Analyze the following data from the most popular videos of the channel %q and generate an optimized script for a new video in a similar style.

CHANNEL INFORMATION:
Name: %s
Description: %s
Subscribers: %s

POPULAR VIDEOS:
%s

Based on this data, generate a complete script for a new YouTube video that:
1. Follows the style and tone of this channel
2. Covers a similar but original topic
3. Uses a structure proven by the popular videos
4. Includes a hooking introduction, a well-structured body, and a conclusion with a call to action

RESPONSE FORMAT:
Reply only with JSON in the following format:
{
  "title": "Catchy video title",
  "introduction": "Introduction script (1-2 paragraphs)",
  "sections": [
    {
      "title": "Section 1 title",
      "content": "Detailed content of section 1"
    },
    {
      "title": "Section 2 title",
      "content": "Detailed content of section 2"
    }
  ],
  "conclusion": "Conclusion script",
  "callToAction": "Final call to action"
}`

// BuildPrompt renders channel metadata and its top videos into the
// instruction block sent to the model. Pure: identical input always
// produces identical text. The input is re-sorted by view count even
// though the aggregator already orders it that way.
func BuildPrompt(channel *models.Channel, videos []models.VideoSummary) string {
	sorted := make([]models.VideoSummary, len(videos))
	copy(sorted, videos)
	sort.SliceStable(sorted, func(i, j int) bool {
		return parseCount(sorted[i].ViewCount) > parseCount(sorted[j].ViewCount)
	})

	summaries := make([]string, 0, len(sorted))
	for _, v := range sorted {
		summaries = append(summaries, fmt.Sprintf(
			"Title: %s\nDescription: %s\nViews: %s\nLikes: %s",
			v.Title, truncateDescription(v.Description), v.ViewCount, v.LikeCount))
	}

	return fmt.Sprintf(promptTemplate,
		channel.Title,
		channel.Title,
		channel.Description,
		channel.SubscriberCount,
		strings.Join(summaries, "\n\n"))
}

func truncateDescription(description string) string {
	if len(description) <= maxDescriptionLen {
		return description
	}
	return description[:maxDescriptionLen] + "..."
}

func parseCount(count string) int64 {
	n, err := strconv.ParseInt(count, 10, 64)
	if err != nil {
		return 0
	}
	return n
}
