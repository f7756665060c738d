package experiment

import (
	"encoding/json"
	"fmt"
	"strings"
)

const (
	jsonFence = "```json"
	bareFence = "```"
)

// ParseError reports a model response that did not yield a well-formed score
// payload. It is always recovered into a failed outcome, never propagated.
type ParseError struct {
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse scores: %s", e.Reason)
}

// ExtractScores parses the raw model response into a score record.
//
// The candidate payload is located with a fixed fallback order: the first
// ```json fenced block, then the first bare ``` fenced block, then the whole
// trimmed text. An opening fence without a matching closing fence is a
// ParseError, not a truncated slice.
func ExtractScores(raw string) (Record, error) {
	payload, err := fencedPayload(strings.TrimSpace(raw))
	if err != nil {
		return nil, err
	}

	if payload == "" {
		return nil, &ParseError{Reason: "empty payload"}
	}

	var record Record
	if err := json.Unmarshal([]byte(payload), &record); err != nil {
		return nil, &ParseError{Reason: fmt.Sprintf("payload is not a JSON object: %v", err)}
	}

	if record == nil {
		return nil, &ParseError{Reason: "payload is null"}
	}

	return record, nil
}

// fencedPayload scans for a fenced region. For each accepted opening marker,
// in priority order, the scan is a three-state walk: no fence seen, fence
// opened, fence closed. Reaching the end of the text with a fence still open
// is an error for that marker, and higher-priority markers never fall back to
// lower-priority ones.
func fencedPayload(text string) (string, error) {
	for _, opening := range []string{jsonFence, bareFence} {
		start := strings.Index(text, opening)
		if start == -1 {
			// no fence seen, try the next marker
			continue
		}

		// fence opened
		inner := text[start+len(opening):]
		end := strings.Index(inner, bareFence)
		if end == -1 {
			return "", &ParseError{Reason: fmt.Sprintf("unbalanced fence: %s opened but never closed", opening)}
		}

		// fence closed
		return strings.TrimSpace(inner[:end]), nil
	}

	// No fences at all: the whole text is the candidate payload.
	return text, nil
}
