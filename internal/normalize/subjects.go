package normalize

import (
	"regexp"
	"strconv"
	"strings"
)

var subjectEntry = regexp.MustCompile(`^(.+?)\s*[:\-]\s*(\d+(?:\.\d+)?)$`)

// cleanSubjects parses subject-wise marks into a map of subject name to
// numeric mark. It accepts either a JSON object or a delimited string such
// as "Math: 95, Science - 90". Malformed entries are skipped individually;
// the field only fails when nothing usable remains.
func cleanSubjects(raw any) (any, bool) {
	switch v := raw.(type) {
	case map[string]any:
		subjects := make(map[string]float64, len(v))
		for name, mark := range v {
			parsed, ok := parseNumeric(mark)
			if !ok {
				continue
			}
			name = spaceRun.ReplaceAllString(strings.TrimSpace(name), " ")
			if name == "" {
				continue
			}
			subjects[titleCase(name)] = parsed
		}
		if len(subjects) == 0 {
			return nil, false
		}
		return subjects, true
	case string:
		return parseSubjectsString(v)
	default:
		return nil, false
	}
}

func parseSubjectsString(s string) (any, bool) {
	subjects := make(map[string]float64)
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		m := subjectEntry.FindStringSubmatch(part)
		if m == nil {
			continue
		}
		mark, err := strconv.ParseFloat(m[2], 64)
		if err != nil {
			continue
		}
		name := spaceRun.ReplaceAllString(strings.TrimSpace(m[1]), " ")
		if name == "" {
			continue
		}
		subjects[titleCase(name)] = mark
	}
	if len(subjects) == 0 {
		return nil, false
	}
	return subjects, true
}
