package critiques

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func validResultJSON(t *testing.T, mutate func(m map[string]any)) json.RawMessage {
	t.Helper()
	m := map[string]any{
		"overallScore": 8,
		"strengths":    []string{"clear impact statements", "good structure", "strong skills section"},
		"weaknesses":   []string{"no metrics", "long summary", "dense layout"},
		"suggestions":  []string{"quantify results", "tighten summary", "add keywords", "shorten bullets", "use active verbs"},
		"atsScore":     7,
		"formatting":   map[string]any{"score": 8, "feedback": "clean single-column layout"},
		"content":      map[string]any{"score": 7, "feedback": "solid but light on numbers"},
		"summary":      "A solid resume. A few fixes would raise its impact.",
	}
	if mutate != nil {
		mutate(m)
	}
	raw, err := json.Marshal(m)
	if err != nil {
		t.Fatalf("marshal fixture: %v", err)
	}
	return raw
}

func TestParseResultValid(t *testing.T) {
	result, err := ParseResult(validResultJSON(t, nil), false)
	if err != nil {
		t.Fatalf("ParseResult: %v", err)
	}
	if result.OverallScore != 8 || result.ATSScore != 7 {
		t.Fatalf("unexpected scores: %d, %d", result.OverallScore, result.ATSScore)
	}
	if result.JobMatch != nil {
		t.Fatal("jobMatch must be absent without a job description")
	}
	if len(result.Suggestions) != 5 {
		t.Fatalf("suggestions = %d, want 5", len(result.Suggestions))
	}
}

func TestParseResultWithJobMatch(t *testing.T) {
	raw := validResultJSON(t, func(m map[string]any) {
		m["jobMatch"] = map[string]any{"score": 6, "feedback": "some required skills missing"}
	})
	result, err := ParseResult(raw, true)
	if err != nil {
		t.Fatalf("ParseResult: %v", err)
	}
	if result.JobMatch == nil || result.JobMatch.Score != 6 {
		t.Fatalf("jobMatch = %+v", result.JobMatch)
	}
}

func TestParseResultJobMatchMissing(t *testing.T) {
	_, err := ParseResult(validResultJSON(t, nil), true)
	if !errors.Is(err, ErrSchemaViolation) {
		t.Fatalf("expected ErrSchemaViolation, got %v", err)
	}
}

func TestParseResultUnexpectedJobMatch(t *testing.T) {
	raw := validResultJSON(t, func(m map[string]any) {
		m["jobMatch"] = map[string]any{"score": 6, "feedback": "x"}
	})
	_, err := ParseResult(raw, false)
	if !errors.Is(err, ErrSchemaViolation) {
		t.Fatalf("expected ErrSchemaViolation, got %v", err)
	}
}

func TestParseResultScoreOutOfRange(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(m map[string]any)
	}{
		{name: "overall too high", mutate: func(m map[string]any) { m["overallScore"] = 11 }},
		{name: "overall zero", mutate: func(m map[string]any) { m["overallScore"] = 0 }},
		{name: "ats negative", mutate: func(m map[string]any) { m["atsScore"] = -2 }},
		{name: "formatting too high", mutate: func(m map[string]any) { m["formatting"] = map[string]any{"score": 15, "feedback": "x"} }},
		{name: "content zero", mutate: func(m map[string]any) { m["content"] = map[string]any{"score": 0, "feedback": "x"} }},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseResult(validResultJSON(t, tt.mutate), false)
			if !errors.Is(err, ErrSchemaViolation) {
				t.Fatalf("expected ErrSchemaViolation, got %v", err)
			}
		})
	}
}

func TestParseResultNonIntegerScore(t *testing.T) {
	raw := validResultJSON(t, func(m map[string]any) { m["overallScore"] = 7.5 })
	_, err := ParseResult(raw, false)
	if !errors.Is(err, ErrSchemaViolation) {
		t.Fatalf("expected ErrSchemaViolation for fractional score, got %v", err)
	}
}

func TestParseResultMissingSections(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(m map[string]any)
		want   string
	}{
		{name: "no strengths", mutate: func(m map[string]any) { delete(m, "strengths") }, want: "strengths"},
		{name: "no suggestions", mutate: func(m map[string]any) { m["suggestions"] = []string{} }, want: "suggestions"},
		{name: "no summary", mutate: func(m map[string]any) { m["summary"] = "" }, want: "summary"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseResult(validResultJSON(t, tt.mutate), false)
			if !errors.Is(err, ErrSchemaViolation) {
				t.Fatalf("expected ErrSchemaViolation, got %v", err)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestParseResultNotJSONObject(t *testing.T) {
	_, err := ParseResult(json.RawMessage(`"just a string"`), false)
	if !errors.Is(err, ErrSchemaViolation) {
		t.Fatalf("expected ErrSchemaViolation, got %v", err)
	}
}
