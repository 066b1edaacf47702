// -----------------------------------------------------------------------
// Scoring schema - Strongly-typed structure for model scoring output
// -----------------------------------------------------------------------

package llm

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// scoreResponse is the JSON document the scoring model is instructed to
// return. All fields are validated using go-playground/validator tags.
type scoreResponse struct {
	Decision   string `json:"decision" validate:"required,oneof=BUY SELL HOLD"`
	Confidence int    `json:"confidence" validate:"min=0,max=100"`
	Rationale  string `json:"rationale" validate:"required"`
}

var validate = validator.New()

// parseScoreResponse extracts and validates the scoring document from a
// raw model response. Markdown code fences around the JSON are tolerated.
func parseScoreResponse(raw string) (*scoreResponse, error) {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	var resp scoreResponse
	if err := json.Unmarshal([]byte(cleaned), &resp); err != nil {
		return nil, fmt.Errorf("failed to parse scoring response: %w", err)
	}

	if err := validate.Struct(&resp); err != nil {
		return nil, fmt.Errorf("scoring response failed validation: %w", err)
	}

	return &resp, nil
}
