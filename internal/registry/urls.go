package registry

import (
	"regexp"
	"strings"
)

// Channel URL forms, tried in order. The first capture group is the
// handle or channel id.
var urlRules = []*regexp.Regexp{
	regexp.MustCompile(`youtube\.com/@([^/?]+)`),
	regexp.MustCompile(`youtube\.com/channel/([^/?]+)`),
	regexp.MustCompile(`youtube\.com/c/([^/?]+)`),
	regexp.MustCompile(`youtube\.com/user/([^/?]+)`),
}

// ParseChannelURL extracts a canonical @handle from the URL forms
// YouTube uses, or from a bare handle pasted without a URL. The second
// return is false when nothing matched.
func ParseChannelURL(url string) (string, bool) {
	for _, rule := range urlRules {
		if m := rule.FindStringSubmatch(url); m != nil {
			handle := m[1]
			if !strings.HasPrefix(handle, "@") {
				handle = "@" + handle
			}
			return handle, true
		}
	}

	if strings.HasPrefix(url, "@") {
		return url, true
	}
	// A bare token without path or domain separators is taken as a
	// handle.
	if !strings.Contains(url, "/") && !strings.Contains(url, ".") {
		return "@" + url, true
	}

	return "", false
}
