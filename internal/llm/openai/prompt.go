package openai

import (
	"fmt"
	"strings"
)

// Message represents an OpenAI chat message.
type Message struct {
	Role    string
	Content string
}

const (
	// Temperature balances varied phrasing against structural consistency.
	Temperature float32 = 0.7

	maxTokensResumeOnly = 2000
	maxTokensWithJob    = 2500
)

const systemPromptResumeOnly = `You are an expert resume reviewer and career coach. Analyze the resume and return a JSON object with this structure:
{
  "overallScore": number (1-10),
  "strengths": [array of 3-5 strings],
  "weaknesses": [array of 3-5 strings],
  "suggestions": [array of 5-7 actionable strings],
  "atsScore": number (1-10),
  "formatting": {
    "score": number (1-10),
    "feedback": string
  },
  "content": {
    "score": number (1-10),
    "feedback": string
  },
  "summary": string (2-3 sentences)
}
All scores must be whole numbers between 1 and 10. Respond with JSON only.`

const systemPromptWithJob = `You are an expert resume reviewer and career coach. Analyze the resume against the provided job description and return a JSON object with this structure:
{
  "overallScore": number (1-10),
  "strengths": [array of 3-5 strings],
  "weaknesses": [array of 3-5 strings],
  "suggestions": [array of 5-7 actionable strings],
  "atsScore": number (1-10),
  "formatting": {
    "score": number (1-10),
    "feedback": string
  },
  "content": {
    "score": number (1-10),
    "feedback": string
  },
  "summary": string (2-3 sentences),
  "jobMatch": {
    "score": number (1-10),
    "feedback": string
  }
}
All scores must be whole numbers between 1 and 10. Respond with JSON only.`

// BuildMessages creates the chat messages for a critique request. The schema
// embedded in the system message gains a jobMatch dimension only when a job
// description is supplied.
func BuildMessages(resumeText, jobDescription string) []Message {
	if strings.TrimSpace(jobDescription) == "" {
		return []Message{
			{Role: "system", Content: systemPromptResumeOnly},
			{Role: "user", Content: fmt.Sprintf("Please analyze this resume:\n\n%s", resumeText)},
		}
	}
	return []Message{
		{Role: "system", Content: systemPromptWithJob},
		{Role: "user", Content: fmt.Sprintf("Please analyze this resume:\n\n%s\n\nJob Description:\n\n%s", resumeText, jobDescription)},
	}
}

// MaxTokensFor returns the response-size budget for a request.
func MaxTokensFor(jobDescription string) int {
	if strings.TrimSpace(jobDescription) == "" {
		return maxTokensResumeOnly
	}
	return maxTokensWithJob
}
