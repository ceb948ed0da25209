// Package featureflags evaluates the FEATURE_FLAGS setting.
package featureflags

import (
	"fmt"
	"hash/fnv"
	"sort"
	"strconv"
	"strings"
)

// Flags understood by the server.
const (
	Chatbot           = "chatbot"
	AIRecommendations = "ai_recommendations"
	TargetedChat      = "targeted_chat"
	MatchVerification = "match_verification"
)

// Known describes every flag the server reads.
var Known = map[string]string{
	Chatbot:           "AI chat assistant and match advice",
	AIRecommendations: "AI skill recommendations",
	TargetedChat:      "relay frames with a receiverId go only to that user",
	MatchVerification: "matches are marked verified only when the viewer holds the offered teach record",
}

// rule is one parsed flag value: a rollout percentage in [0, 100].
type rule struct {
	raw     string
	percent int
}

// Manager evaluates feature flags defined in a simple key=value list.
// Example: "chatbot=on,ai_recommendations=25%,targeted_chat=off"
type Manager struct {
	rules   map[string]rule
	unknown []string
}

// NewManager parses a comma-separated config string. Malformed pairs are
// skipped; a value that is neither a boolean nor a percentage evaluates off.
func NewManager(raw string) *Manager {
	m := &Manager{rules: make(map[string]rule)}

	for _, pair := range strings.Split(raw, ",") {
		key, value, ok := strings.Cut(pair, "=")
		if !ok {
			continue
		}
		key, value = normalize(key), normalize(value)
		if key == "" || value == "" {
			continue
		}
		m.rules[key] = rule{raw: value, percent: parsePercent(value)}
		if _, known := Known[key]; !known {
			m.unknown = append(m.unknown, key)
		}
	}
	sort.Strings(m.unknown)

	return m
}

func parsePercent(value string) int {
	switch value {
	case "on", "true", "1":
		return 100
	case "off", "false", "0":
		return 0
	}
	pct, err := strconv.Atoi(strings.TrimSuffix(value, "%"))
	if !strings.HasSuffix(value, "%") || err != nil || pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}

// Enabled reports whether name is on for userID. Percentage rollouts bucket
// users deterministically; userID 0 (a guest or a process-wide check) only
// passes a full rollout. Missing flags are off.
func (m *Manager) Enabled(name string, userID uint) bool {
	if m == nil {
		return false
	}
	r, ok := m.rules[normalize(name)]
	if !ok {
		return false
	}
	switch {
	case r.percent >= 100:
		return true
	case r.percent <= 0, userID == 0:
		return false
	}
	return rolloutBucket(name, userID) < r.percent
}

// Unknown lists configured flags the server never reads, usually typos.
func (m *Manager) Unknown() []string {
	if m == nil {
		return nil
	}
	return append([]string(nil), m.unknown...)
}

// Raw returns a copy of configured flags.
func (m *Manager) Raw() map[string]string {
	if m == nil {
		return map[string]string{}
	}
	out := make(map[string]string, len(m.rules))
	for k, r := range m.rules {
		out[k] = r.raw
	}
	return out
}

// Snapshot evaluates every known flag plus any configured extras for one user.
func (m *Manager) Snapshot(userID uint) map[string]bool {
	out := make(map[string]bool, len(Known))
	for name := range Known {
		out[name] = m.Enabled(name, userID)
	}
	if m != nil {
		for name := range m.rules {
			out[name] = m.Enabled(name, userID)
		}
	}
	return out
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func rolloutBucket(name string, userID uint) int {
	h := fnv.New32a()
	_, _ = fmt.Fprintf(h, "%s:%d", normalize(name), userID)
	return int(h.Sum32() % 100)
}
