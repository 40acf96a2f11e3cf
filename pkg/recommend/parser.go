package recommend

import (
	"encoding/json"
	"errors"
	"regexp"
	"strings"
)

var ErrInvalidFormat = errors.New("invalid AI response format")

// bracketed matches the first "[" through the last "]", across newlines.
var bracketed = regexp.MustCompile(`(?s)\[.*\]`)

// Ranking is the model's answer once validated: at most MaxRecommendations
// distinct, non-empty ids, best first. It may hold fewer when the model
// under-delivers.
type Ranking struct {
	IDs []string
}

func (r Ranking) Len() int { return len(r.IDs) }

// ParseRanking reads the model output as a JSON array of ids. Output wrapped
// in prose or a code fence is handled by falling back to the bracketed part.
func ParseRanking(content string) (Ranking, error) {
	content = strings.TrimSpace(content)

	if ids, ok := decodeIDs(content); ok {
		return newRanking(ids), nil
	}

	match := bracketed.FindString(content)
	if match == "" {
		return Ranking{}, ErrInvalidFormat
	}
	if ids, ok := decodeIDs(match); ok {
		return newRanking(ids), nil
	}
	return Ranking{}, ErrInvalidFormat
}

func decodeIDs(raw string) ([]string, bool) {
	var items []interface{}
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, false
	}

	ids := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			ids = append(ids, s)
		}
	}
	return ids, true
}

func newRanking(raw []string) Ranking {
	seen := make(map[string]struct{}, len(raw))
	ids := make([]string, 0, MaxRecommendations)
	for _, id := range raw {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
		if len(ids) == MaxRecommendations {
			break
		}
	}
	return Ranking{IDs: ids}
}

// Restrict drops ids the model made up, keeping the ranking order.
func (r Ranking) Restrict(allowed map[string]struct{}) Ranking {
	ids := make([]string, 0, len(r.IDs))
	for _, id := range r.IDs {
		if _, ok := allowed[id]; ok {
			ids = append(ids, id)
		}
	}
	return Ranking{IDs: ids}
}
