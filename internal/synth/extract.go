package synth

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/cioinsight/deckgen/internal/model"
)

var fencePattern = regexp.MustCompile("```(?:json)?\\s*")

// jobEvent is one entry of the event-list response shape.
type jobEvent struct {
	Type string `json:"type"`
	Data struct {
		Content string `json:"content"`
		Output  string `json:"output"`
	} `json:"data"`
}

// jobResult is the single-object response shape.
type jobResult struct {
	Output json.RawMessage `json:"output"`
	Result json.RawMessage `json:"result"`
}

// ExtractReport pulls the model's text out of a finished job response and
// parses it into a report. The response is either a list of events, where
// the JOB_ENDED event carries the text, or a single object whose output or
// result field carries it. The text may be wrapped in Markdown code fences
// and surrounded by prose, so fences are stripped and the outermost brace
// pair is sliced out before parsing. A response that still does not parse is
// fatal: a deck built from a half-understood report is worse than no deck.
func ExtractReport(raw []byte) (*model.Report, error) {
	text, err := payloadText(raw)
	if err != nil {
		return nil, err
	}

	return ParseReportText(text)
}

// ParseReportText cleans a raw model response and parses it into a report.
func ParseReportText(text string) (*model.Report, error) {
	text = fencePattern.ReplaceAllString(text, "")
	if start, end := strings.Index(text, "{"), strings.LastIndex(text, "}"); start != -1 && end > start {
		text = text[start : end+1]
	}

	var report model.Report
	if err := json.Unmarshal([]byte(text), &report); err != nil {
		return nil, fmt.Errorf("report payload is not valid JSON: %w", err)
	}
	return &report, nil
}

func payloadText(raw []byte) (string, error) {
	trimmed := strings.TrimSpace(string(raw))

	if strings.HasPrefix(trimmed, "[") {
		var events []jobEvent
		if err := json.Unmarshal(raw, &events); err != nil {
			return "", fmt.Errorf("decode job events: %w", err)
		}
		for _, ev := range events {
			if ev.Type != "JOB_ENDED" {
				continue
			}
			if ev.Data.Content != "" {
				return ev.Data.Content, nil
			}
			if ev.Data.Output != "" {
				return ev.Data.Output, nil
			}
		}
		return "", fmt.Errorf("no JOB_ENDED event with content in job response")
	}

	var result jobResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return "", fmt.Errorf("decode job result: %w", err)
	}
	for _, field := range []json.RawMessage{result.Output, result.Result} {
		if text, ok := rawText(field); ok {
			return text, nil
		}
	}
	return "", fmt.Errorf("job response carried no output")
}

// rawText unwraps an output field that is either a plain string or an
// object with a text or content member.
func rawText(raw json.RawMessage) (string, bool) {
	if len(raw) == 0 {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, s != ""
	}
	var obj struct {
		Text    string `json:"text"`
		Content string `json:"content"`
	}
	if err := json.Unmarshal(raw, &obj); err == nil {
		if obj.Text != "" {
			return obj.Text, true
		}
		if obj.Content != "" {
			return obj.Content, true
		}
	}
	return "", false
}
