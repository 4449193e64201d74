package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/kaptinlin/jsonrepair"
)

const structuredAttempts = 3

// StructuredClient wraps a Client with schema-directed invocation: the model
// output is decoded into a caller-provided struct, retrying the whole call on
// decode failure up to a fixed bound.
type StructuredClient struct {
	client Client
}

func NewStructuredClient(client Client) *StructuredClient {
	return &StructuredClient{client: client}
}

// InvokeStructured invokes the model and decodes its output into out. It makes
// up to three attempts; when all of them fail to decode, the last response is
// returned together with the decode error so the caller can annotate the
// failure in-band instead of losing the raw text.
func (s *StructuredClient) InvokeStructured(ctx context.Context, request Request, out any) (*Response, error) {
	var (
		resp      *Response
		err       error
		decodeErr error
	)

	for attempt := 0; attempt < structuredAttempts; attempt++ {
		resp, err = s.client.InvokeWithRetry(ctx, request)
		if err != nil {
			return nil, fmt.Errorf("structured invoke attempt %d: %w", attempt+1, err)
		}

		decodeErr = DecodeJSON(resp.Content, out)
		if decodeErr == nil {
			return resp, nil
		}
	}

	return resp, fmt.Errorf("decode after %d attempts: %w", structuredAttempts, decodeErr)
}

// DecodeJSON decodes LLM output into out. It tolerates the usual model
// sloppiness: markdown code fences, prose around the JSON object, and minor
// syntax damage (repaired via jsonrepair as a last step).
func DecodeJSON(content string, out any) error {
	text := extractJSON(stripMarkdownCodeBlock(content))

	if err := json.Unmarshal([]byte(text), out); err == nil {
		return nil
	}

	repaired, repairErr := jsonrepair.JSONRepair(text)
	if repairErr != nil {
		return fmt.Errorf("repair json: %w", repairErr)
	}

	if err := json.Unmarshal([]byte(repaired), out); err != nil {
		return fmt.Errorf("unmarshal repaired json: %w", err)
	}

	return nil
}

// stripMarkdownCodeBlock removes ```json ... ``` fences when present.
func stripMarkdownCodeBlock(content string) string {
	content = strings.TrimSpace(content)

	if strings.HasPrefix(content, "```") {
		firstNewline := strings.Index(content, "\n")
		if firstNewline == -1 {
			return content
		}

		closingBackticks := strings.LastIndex(content, "```")
		if closingBackticks == -1 || closingBackticks <= firstNewline {
			return content
		}

		content = content[firstNewline+1 : closingBackticks]
		content = strings.TrimSpace(content)
	}

	return content
}

// extractJSON cuts the outermost object out of surrounding prose.
func extractJSON(content string) string {
	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start == -1 || end <= start {
		return content
	}
	return content[start : end+1]
}
