package critiques

import (
	"fmt"
	"time"
)

// PreviewMaxChars bounds how much of the resume text is kept on a record.
const PreviewMaxChars = 500

// DimensionScore is one scored critique dimension with free-form feedback.
type DimensionScore struct {
	Score    int    `json:"score"`
	Feedback string `json:"feedback"`
}

// CritiqueResult is the structured output of one resume analysis. JobMatch is
// present only when a job description was supplied; its absence is meaningful,
// not an error.
type CritiqueResult struct {
	OverallScore int             `json:"overallScore"`
	Strengths    []string        `json:"strengths"`
	Weaknesses   []string        `json:"weaknesses"`
	Suggestions  []string        `json:"suggestions"`
	ATSScore     int             `json:"atsScore"`
	Formatting   DimensionScore  `json:"formatting"`
	Content      DimensionScore  `json:"content"`
	Summary      string          `json:"summary"`
	JobMatch     *DimensionScore `json:"jobMatch,omitempty"`
}

// CritiqueRecord is the persisted envelope for a completed critique. Records
// are immutable after creation and owned exclusively by their user.
type CritiqueRecord struct {
	ID                string         `json:"id"`
	UserID            string         `json:"userId"`
	UserEmail         string         `json:"userEmail,omitempty"`
	ResumeTextPreview string         `json:"resumeTextPreview"`
	JobDescription    string         `json:"jobDescription,omitempty"`
	Critique          CritiqueResult `json:"critique"`
	CreatedAt         time.Time      `json:"createdAt"`
}

// NewRecord builds a record for a completed critique. The id is the composite
// {userId}_{epochMillis} the store contract expects; the resume text is
// truncated to PreviewMaxChars while the critique itself is kept in full.
func NewRecord(userID, userEmail, resumeText, jobDescription string, critique CritiqueResult, now time.Time) CritiqueRecord {
	return CritiqueRecord{
		ID:                fmt.Sprintf("%s_%d", userID, now.UnixMilli()),
		UserID:            userID,
		UserEmail:         userEmail,
		ResumeTextPreview: truncateChars(resumeText, PreviewMaxChars),
		JobDescription:    jobDescription,
		Critique:          critique,
		CreatedAt:         now.UTC(),
	}
}

func truncateChars(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
