package extract

import (
	"encoding/json"
	"log"
	"strings"
)

var parseLog = log.New(log.Writer(), "[PARSE] ", log.LstdFlags)

// Records pulls a list of raw record maps out of free-form model output that
// is supposed to contain a JSON array or object. collectionKey names the
// wrapper field a model sometimes answers with (e.g. "opportunities").
//
// Strategies are tried in order, stopping at the first success:
//  1. parse the whole string
//  2. parse the substring between the first '[' and the last ']'
//  3. parse the substring between the first '{' and the last '}'
//
// A single object is wrapped into a one-element list. When nothing parses the
// result is an empty list; this function never returns an error because one
// malformed response must not abort a whole batch.
func Records(raw, collectionKey string) []map[string]any {
	raw = stripCodeFence(strings.TrimSpace(raw))

	if recs, ok := tryDecode(raw, collectionKey); ok {
		return recs
	}

	if start, end := strings.Index(raw, "["), strings.LastIndex(raw, "]"); start != -1 && end > start {
		if recs, ok := tryDecode(raw[start:end+1], collectionKey); ok {
			return recs
		}
	}

	if start, end := strings.Index(raw, "{"), strings.LastIndex(raw, "}"); start != -1 && end > start {
		if recs, ok := tryDecode(raw[start:end+1], collectionKey); ok {
			return recs
		}
	}

	parseLog.Printf("no parseable JSON in model response (%d chars)", len(raw))
	return []map[string]any{}
}

func tryDecode(s, collectionKey string) ([]map[string]any, bool) {
	var v any
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		return nil, false
	}
	switch t := v.(type) {
	case []any:
		return objectsOf(t), true
	case map[string]any:
		if inner, ok := t[collectionKey].([]any); ok && collectionKey != "" {
			return objectsOf(inner), true
		}
		return []map[string]any{t}, true
	default:
		return nil, false
	}
}

func objectsOf(items []any) []map[string]any {
	out := make([]map[string]any, 0, len(items))
	for _, it := range items {
		if m, ok := it.(map[string]any); ok {
			out = append(out, m)
		}
	}
	return out
}

// stripCodeFence unwraps a leading markdown code fence, with or without a
// language tag. Models frequently fence their JSON even when told not to.
func stripCodeFence(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}
	rest := s[3:]
	if idx := strings.IndexByte(rest, '\n'); idx != -1 {
		rest = rest[idx+1:]
	} else {
		return s
	}
	if end := strings.LastIndex(rest, "```"); end != -1 {
		rest = rest[:end]
	}
	return strings.TrimSpace(rest)
}
