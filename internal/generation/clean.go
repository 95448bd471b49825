package generation

import "strings"

// Models wrap their output in markdown fences inconsistently: sometimes a
// labeled ```latex block, sometimes a bare ``` block, sometimes explanatory
// prose around either, sometimes nothing. CleanResponse tries a priority list
// of extraction strategies and falls back to trimming the raw text. New
// heuristics slot into the list without touching control flow.

// extractStrategy returns the extracted payload and whether it matched.
type extractStrategy func(raw string) (string, bool)

var cleanStrategies = []extractStrategy{
	labeledFence("```latex"),
	genericFence,
}

// CleanResponse extracts the LaTeX payload from a raw model response.
// Cleaning an already-clean document returns it unchanged (modulo trimming),
// so the operation is idempotent.
func CleanResponse(raw string) string {
	for _, strategy := range cleanStrategies {
		if inner, ok := strategy(raw); ok {
			return strings.TrimSpace(inner)
		}
	}
	return strings.TrimSpace(raw)
}

// labeledFence extracts the span between the first fence with exactly the
// given label and the next closing fence. The label must end the fence line:
// "```latex-table" is a different fence, not a "```latex" match.
func labeledFence(label string) extractStrategy {
	return func(raw string) (string, bool) {
		start := strings.Index(raw, label)
		if start < 0 {
			return "", false
		}
		start += len(label)
		if start < len(raw) && !isFenceLabelEnd(raw[start]) {
			return "", false
		}
		end := strings.Index(raw[start:], "```")
		if end < 0 {
			return "", false
		}
		return raw[start : start+end], true
	}
}

func isFenceLabelEnd(b byte) bool {
	return b == '\n' || b == '\r' || b == ' ' || b == '\t'
}

// genericFence extracts the span between the first unlabeled fence pair.
func genericFence(raw string) (string, bool) {
	start := strings.Index(raw, "```")
	if start < 0 {
		return "", false
	}
	start += 3
	// Drop a language identifier on the opening fence line, if any.
	if newline := strings.Index(raw[start:], "\n"); newline >= 0 {
		firstLine := strings.TrimSpace(raw[start : start+newline])
		if firstLine != "" && len(firstLine) < 20 && !strings.ContainsAny(firstLine, " \\{") {
			start += newline + 1
		}
	}
	end := strings.Index(raw[start:], "```")
	if end < 0 {
		return "", false
	}
	return raw[start : start+end], true
}
