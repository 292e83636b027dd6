package models

// ScriptSection is one titled block of the generated script body.
type ScriptSection struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// GeneratedScript is the structured video script parsed out of the
// model's response.
type GeneratedScript struct {
	Title        string          `json:"title"`
	Introduction string          `json:"introduction"`
	Sections     []ScriptSection `json:"sections"`
	Conclusion   string          `json:"conclusion"`
	CallToAction string          `json:"callToAction"`
}

// AnalyzeResponse is the success envelope returned by the analyze
// endpoint: the resolved channel, how many videos fed the prompt, and
// the generated script.
type AnalyzeResponse struct {
	Channel    Channel         `json:"channel"`
	VideoCount int             `json:"videoCount"`
	Script     GeneratedScript `json:"script"`
}

// ChannelPreview pairs a resolved channel with its top videos, without
// running script generation.
type ChannelPreview struct {
	Channel Channel        `json:"channel"`
	Videos  []VideoSummary `json:"videos"`
}
