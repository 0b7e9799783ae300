package results

// ToPairs projects a stored timeline sequence into ordered
// [timestamp, percentage] pairs for charting. Entries are expected to be
// objects with "timestamp" and "percentage" keys, or already two-element
// pairs. Anything else is dropped silently; missing keys project as null.
// Input order is preserved.
func ToPairs(v any) [][]any {
	items, ok := v.([]any)
	if !ok {
		return [][]any{}
	}
	pairs := make([][]any, 0, len(items))
	for _, item := range items {
		switch entry := item.(type) {
		case map[string]any:
			pairs = append(pairs, []any{entry["timestamp"], entry["percentage"]})
		case []any:
			if len(entry) == 2 {
				pairs = append(pairs, []any{entry[0], entry[1]})
			}
		}
	}
	return pairs
}

// ProjectTimelines projects both tracked signals out of a stored timelines
// object. Absent keys project as empty pair lists.
func ProjectTimelines(timelines any) (posture, eye [][]any) {
	m := AsObject(timelines)
	return ToPairs(m["posture_timeline"]), ToPairs(m["eye_timeline"])
}
