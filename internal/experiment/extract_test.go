package experiment

import (
	"errors"
	"reflect"
	"testing"
)

func TestExtractScoresFromCleanPayload(t *testing.T) {
	record, err := ExtractScores(`{"total_score": 80, "completeness_score": 18}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	total, ok := record.TotalScore()
	if !ok || total != 80 {
		t.Fatalf("expected total_score 80, got %v (usable=%v)", total, ok)
	}
}

func TestExtractScoresIdempotentAcrossFramings(t *testing.T) {
	payload := `{"total_score": 80}`

	framings := []string{
		payload,
		"```json\n" + payload + "\n```",
		"```\n" + payload + "\n```",
		"The evaluation is below.\n```json\n" + payload + "\n```\nThanks!",
	}

	var first Record
	for i, framing := range framings {
		record, err := ExtractScores(framing)
		if err != nil {
			t.Fatalf("framing %d: unexpected error: %v", i, err)
		}

		if first == nil {
			first = record
			continue
		}

		if !reflect.DeepEqual(record, first) {
			t.Fatalf("framing %d: expected %v, got %v", i, first, record)
		}
	}
}

func TestExtractScoresPrefersJSONFence(t *testing.T) {
	raw := "```\n{\"total_score\": 10}\n```\n```json\n{\"total_score\": 80}\n```"

	record, err := ExtractScores(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if total, _ := record.TotalScore(); total != 80 {
		t.Fatalf("expected the json-tagged fence to win, got total %v", total)
	}
}

func TestExtractScoresParseErrors(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{name: "empty string", raw: ""},
		{name: "whitespace only", raw: "   \n  "},
		{name: "unbalanced json fence", raw: "```json\n{\"total_score\": 80}"},
		{name: "unbalanced bare fence", raw: "```\n{\"total_score\": 80}"},
		{name: "free text", raw: "The candidate looks strong overall."},
		{name: "non-object payload", raw: "[1, 2, 3]"},
		{name: "null payload", raw: "null"},
		{name: "empty fenced block", raw: "```json\n\n```"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ExtractScores(tt.raw)
			if err == nil {
				t.Fatal("expected error")
			}

			var parseErr *ParseError
			if !errors.As(err, &parseErr) {
				t.Fatalf("expected ParseError, got %T: %v", err, err)
			}
		})
	}
}

func TestExtractScoresKeepsUnknownFields(t *testing.T) {
	record, err := ExtractScores(`{"total_score": 75, "culture_fit": 9, "match_percentage": null}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if fit, ok := record.Numeric("culture_fit"); !ok || fit != 9 {
		t.Fatalf("expected caller-defined field to pass through, got %v (ok=%v)", fit, ok)
	}

	if _, ok := record.Numeric("match_percentage"); ok {
		t.Fatal("null field must not be numeric")
	}
}
