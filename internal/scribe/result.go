// Package scribe turns completion replies into weave results and
// explanations.
package scribe

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Davg883/Vibe-AI-Canvas/internal/llm"
)

// Example is the generated example code
type Example struct {
	Language string `json:"language"`
	Code     string `json:"code_with_comments"`
}

// Result is one validated weave reply. It is never modified after Decode
// returns it.
type Result struct {
	GoalSummary     string  `json:"user_goal_summary"`
	GeneratedPrompt string  `json:"generated_prompt_for_ai"`
	Example         Example `json:"example_output"`
}

// ResponseSchema constrains the weave reply
var ResponseSchema = &llm.Schema{
	Name: "ScribeResponse",
	Type: llm.TypeObject,
	Properties: map[string]*llm.Schema{
		"user_goal_summary": {
			Type:        llm.TypeString,
			Description: "A concise summary of the user's goal.",
		},
		"generated_prompt_for_ai": {
			Type:        llm.TypeString,
			Description: "The detailed, well-structured prompt generated for a coding AI.",
		},
		"example_output": {
			Type: llm.TypeObject,
			Properties: map[string]*llm.Schema{
				"language": {
					Type:        llm.TypeString,
					Description: "The programming language of the generated code (e.g., HTML, Python, JavaScript).",
				},
				"code_with_comments": {
					Type:        llm.TypeString,
					Description: "The example code with friendly, explanatory comments. For web pages, this should be a single, self-contained HTML file.",
				},
			},
			Required: []string{"language", "code_with_comments"},
		},
	},
	Required: []string{"user_goal_summary", "generated_prompt_for_ai", "example_output"},
}

// wireResult mirrors Result with pointers so absent fields can be told
// apart from empty ones.
type wireResult struct {
	GoalSummary     *string      `json:"user_goal_summary"`
	GeneratedPrompt *string      `json:"generated_prompt_for_ai"`
	Example         *wireExample `json:"example_output"`
}

type wireExample struct {
	Language *string `json:"language"`
	Code     *string `json:"code_with_comments"`
}

// errIncomplete is the message shown when required fields are missing.
const errIncomplete = "Received an incomplete response from the AI."

// Decode parses a raw weave reply. Every schema field must be present with
// the right type, and the prompt and example must be non-empty.
func Decode(raw string) (*Result, error) {
	text := llm.ExtractJSON(raw)
	if text == "" {
		return nil, llm.NewError(llm.KindMalformedResponse, nil, "Received an empty response from the AI.")
	}

	var w wireResult
	if err := json.Unmarshal([]byte(text), &w); err != nil {
		return nil, llm.NewError(llm.KindMalformedResponse, err, "Failed to parse the AI response: %v", err)
	}

	if w.Example == nil || w.GeneratedPrompt == nil || strings.TrimSpace(*w.GeneratedPrompt) == "" {
		return nil, llm.NewError(llm.KindMalformedResponse, nil, errIncomplete)
	}

	var missing []string
	if w.GoalSummary == nil {
		missing = append(missing, "user_goal_summary")
	}
	if w.Example.Language == nil {
		missing = append(missing, "example_output.language")
	}
	if w.Example.Code == nil {
		missing = append(missing, "example_output.code_with_comments")
	}
	if len(missing) > 0 {
		return nil, llm.NewError(llm.KindMalformedResponse, fmt.Errorf("missing fields: %s", strings.Join(missing, ", ")), errIncomplete)
	}

	return &Result{
		GoalSummary:     *w.GoalSummary,
		GeneratedPrompt: *w.GeneratedPrompt,
		Example: Example{
			Language: *w.Example.Language,
			Code:     *w.Example.Code,
		},
	}, nil
}
