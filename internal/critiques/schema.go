package critiques

import (
	"encoding/json"
	"fmt"
)

// ParseResult converts raw LLM output into a typed CritiqueResult or an
// ErrSchemaViolation. Scores outside [1,10] are contract violations from the
// service and are never clamped.
func ParseResult(raw json.RawMessage, jobMatchExpected bool) (CritiqueResult, error) {
	var result CritiqueResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return CritiqueResult{}, fmt.Errorf("%w: %v", ErrSchemaViolation, err)
	}
	if err := validateResult(result, jobMatchExpected); err != nil {
		return CritiqueResult{}, err
	}
	return result, nil
}

func validateResult(r CritiqueResult, jobMatchExpected bool) error {
	if err := checkScore("overallScore", r.OverallScore); err != nil {
		return err
	}
	if err := checkScore("atsScore", r.ATSScore); err != nil {
		return err
	}
	if err := checkScore("formatting.score", r.Formatting.Score); err != nil {
		return err
	}
	if err := checkScore("content.score", r.Content.Score); err != nil {
		return err
	}
	if len(r.Strengths) == 0 {
		return fmt.Errorf("%w: strengths is empty", ErrSchemaViolation)
	}
	if len(r.Weaknesses) == 0 {
		return fmt.Errorf("%w: weaknesses is empty", ErrSchemaViolation)
	}
	if len(r.Suggestions) == 0 {
		return fmt.Errorf("%w: suggestions is empty", ErrSchemaViolation)
	}
	if r.Summary == "" {
		return fmt.Errorf("%w: summary is empty", ErrSchemaViolation)
	}

	if jobMatchExpected {
		if r.JobMatch == nil {
			return fmt.Errorf("%w: jobMatch missing", ErrSchemaViolation)
		}
		if err := checkScore("jobMatch.score", r.JobMatch.Score); err != nil {
			return err
		}
	} else if r.JobMatch != nil {
		return fmt.Errorf("%w: unexpected jobMatch without a job description", ErrSchemaViolation)
	}
	return nil
}

func checkScore(field string, score int) error {
	if score < 1 || score > 10 {
		return fmt.Errorf("%w: %s out of range: %d", ErrSchemaViolation, field, score)
	}
	return nil
}
