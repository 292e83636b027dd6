package youtube

import (
	"fmt"
	"net/url"
	"strings"
)

// refKind says which URL convention a channel reference was extracted
// from, which decides how it gets resolved to a channel ID.
type refKind int

const (
	refChannelID refKind = iota
	refShortName
	refUsername
	refHandle
)

// extractChannelRef pulls the channel reference out of a YouTube channel
// URL. Four path conventions are recognized, checked in a fixed priority
// order:
//
//	/channel/UC...  direct channel ID
//	/c/Name         short (vanity) name
//	/user/Name      legacy username
//	/@Handle        handle
func extractChannelRef(rawURL string) (refKind, string, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" {
		return 0, "", fmt.Errorf("%w: %q", ErrInvalidURL, rawURL)
	}

	path := parsed.Path
	switch {
	case strings.HasPrefix(path, "/channel/"):
		if id := firstSegment(path, "/channel/"); id != "" {
			return refChannelID, id, nil
		}
	case strings.HasPrefix(path, "/c/"):
		if name := firstSegment(path, "/c/"); name != "" {
			return refShortName, name, nil
		}
	case strings.HasPrefix(path, "/user/"):
		if name := firstSegment(path, "/user/"); name != "" {
			return refUsername, name, nil
		}
	case strings.HasPrefix(path, "/@"):
		if handle := firstSegment(path, "/@"); handle != "" {
			return refHandle, handle, nil
		}
	}

	return 0, "", fmt.Errorf("%w: unsupported path %q", ErrInvalidURL, path)
}

// firstSegment returns the path segment right after prefix, without any
// trailing segments such as /videos or /about.
func firstSegment(path, prefix string) string {
	rest := strings.TrimPrefix(path, prefix)
	if i := strings.IndexByte(rest, '/'); i >= 0 {
		rest = rest[:i]
	}
	return rest
}
