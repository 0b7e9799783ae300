package results

import "fmt"

// Feedback is the normalized shape of client-supplied scoring signals.
// The output is always exactly these two lists, never nil.
type Feedback struct {
	GoodSignals []string `json:"good_signals"`
	RedFlags    []string `json:"red_flags"`
}

// NormalizeFeedback reconciles the two naming conventions used by producers
// of the feedback field. Non-object input yields empty lists. For each side
// the snake_case key wins; when it is absent, empty, or not a list, the
// camelCase spelling is consulted. Naming drift between producer and consumer
// is tolerated, not rejected.
func NormalizeFeedback(v any) Feedback {
	m, ok := v.(map[string]any)
	if !ok {
		return Feedback{GoodSignals: []string{}, RedFlags: []string{}}
	}
	return Feedback{
		GoodSignals: signalList(m, "good_signals", "goodSignals"),
		RedFlags:    signalList(m, "red_flags", "redFlags"),
	}
}

// Empty reports whether both signal lists are empty.
func (f Feedback) Empty() bool {
	return len(f.GoodSignals) == 0 && len(f.RedFlags) == 0
}

func signalList(m map[string]any, primary, alternate string) []string {
	out := stringList(m[primary])
	if len(out) == 0 {
		out = stringList(m[alternate])
	}
	return out
}

// stringList coerces a decoded JSON value into a list of strings.
// Anything that is not a list coerces to an empty list.
func stringList(v any) []string {
	items, ok := v.([]any)
	if !ok {
		return []string{}
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
			continue
		}
		out = append(out, fmt.Sprint(item))
	}
	return out
}
