package workflow

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"

	"github.com/agenthands/agentflow/internal/common"
	"github.com/agenthands/agentflow/internal/llm"
)

// DefaultConfidence is used when a supervisor response reports no score.
const DefaultConfidence = 95

var confidencePattern = regexp.MustCompile(`(?i)Confidence:\s*(\d+)`)

var supervisorSchema = &llm.ResponseSchema{
	Name: "supervisor_verdict",
	Fields: []llm.SchemaField{
		{Name: "output", Type: llm.TypeString, Description: "The full analysis followed by the final corrected version."},
		{Name: "confidence", Type: llm.TypeInteger, Description: "Confidence in the final solution, 0 to 100."},
	},
}

func supervisorPrompt(input string) string {
	return fmt.Sprintf(`Perform a multi-step analysis:
1. Review the input logic.
2. Identify potential performance or security risks.
3. Synthesize the final corrected version.
4. Provide a confidence score.

Input: %s`, input)
}

type supervisorVerdict struct {
	Output     string `json:"output"`
	Confidence *int   `json:"confidence"`
}

// decodeSupervisor reads a structured verdict. Responses that are not exactly
// one JSON object are treated as free text and scanned for "Confidence: N".
func decodeSupervisor(text string) (string, int) {
	v, err := common.ParseObject[supervisorVerdict](text)
	if err != nil || v.Output == "" {
		return text, scanConfidence(text)
	}
	if v.Confidence == nil {
		return v.Output, scanConfidence(v.Output)
	}
	return v.Output, clamp(*v.Confidence)
}

func scanConfidence(text string) int {
	m := confidencePattern.FindStringSubmatch(text)
	if m == nil {
		return DefaultConfidence
	}
	n, err := strconv.Atoi(m[1])
	if errors.Is(err, strconv.ErrRange) {
		return 100
	}
	if err != nil {
		return DefaultConfidence
	}
	return clamp(n)
}

func clamp(n int) int {
	switch {
	case n < 0:
		return 0
	case n > 100:
		return 100
	}
	return n
}
