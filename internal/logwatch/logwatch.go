// Package logwatch filters a simulator log stream down to the lines that
// matter during an OAuth debugging session and classifies the interesting
// events (callbacks, errors, token activity, browser hops).
package logwatch

import (
	"bufio"
	"context"
	"io"
	"strings"
	"time"
)

// DefaultKeywords is the substring set an OAuth flow leaves behind in the
// simulator log: protocol terms, the scene-activation noise around the
// Safari round-trip, and the app's own debug markers.
var DefaultKeywords = []string{
	"OAuth", "NetSuite", "token", "authorization", "callback",
	"URL", "Safari", "redirect", "code", "access_token",
	"refresh_token", "error", "Debug", "FRESH",
	"UIOpenURLAction", "SceneClient", "FrontBoard",
}

// Matcher matches log lines against a keyword set, case-insensitively.
type Matcher struct {
	keywords []string
}

// NewMatcher creates a Matcher for the given keywords.
func NewMatcher(keywords ...string) *Matcher {
	m := &Matcher{keywords: make([]string, 0, len(keywords))}
	for _, kw := range keywords {
		if kw = strings.ToLower(strings.TrimSpace(kw)); kw != "" {
			m.keywords = append(m.keywords, kw)
		}
	}
	return m
}

// Match reports whether the line contains any keyword.
func (m *Matcher) Match(line string) bool {
	lower := strings.ToLower(line)
	for _, kw := range m.keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// Event classifies a matched log line.
type Event int

const (
	EventNone Event = iota
	EventCallback
	EventError
	EventToken
	EventBrowser
)

// Annotation returns the human-readable marker printed under a classified
// line, or "" for EventNone.
func (e Event) Annotation() string {
	switch e {
	case EventCallback:
		return ">> OAuth callback detected"
	case EventError:
		return ">> error detected"
	case EventToken:
		return ">> token activity detected"
	case EventBrowser:
		return ">> Safari activity detected"
	default:
		return ""
	}
}

// Classify maps a log line to its event. Callback detection wins over the
// error and token heuristics because the callback URL itself contains "code".
func Classify(line string) Event {
	switch {
	case strings.Contains(line, "UIOpenURLAction"):
		return EventCallback
	case strings.Contains(line, "ERROR") || strings.Contains(line, "error"):
		return EventError
	case strings.Contains(strings.ToLower(line), "token"):
		return EventToken
	case strings.Contains(line, "Safari"):
		return EventBrowser
	default:
		return EventNone
	}
}

// Entry is one matched log line with the wall-clock time it was observed.
type Entry struct {
	Time  time.Time
	Line  string
	Event Event
}

// Watch scans r line by line, forwarding matched lines to fn until the
// stream ends or ctx is canceled. The caller owns r's lifetime; canceling
// ctx does not close it.
func Watch(ctx context.Context, r io.Reader, m *Matcher, fn func(Entry)) error {
	scanner := bufio.NewScanner(r)
	// Unified log lines can run long; the default 64KB token limit is kept,
	// buffer growth starts small.
	scanner.Buffer(make([]byte, 4096), bufio.MaxScanTokenSize)

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}

		line := strings.TrimRight(scanner.Text(), "\r\n")
		if line == "" || !m.Match(line) {
			continue
		}

		fn(Entry{
			Time:  time.Now(),
			Line:  line,
			Event: Classify(line),
		})
	}

	if err := scanner.Err(); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}
