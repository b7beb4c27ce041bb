package normalize

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"intake-backend/internal/schema"
)

var (
	spaceRun    = regexp.MustCompile(`\s+`)
	nonDigit    = regexp.MustCompile(`\D`)
	leadingNum  = regexp.MustCompile(`-?\d+(?:\.\d+)?`)
	lowerJoiner = regexp.MustCompile(`\b(Of|The|And)\b`)
)

// cleanValue applies the cleaning transform for the field's kind. The second
// return value is false when the raw value cannot be cleaned into a valid
// canonical value.
func cleanValue(f schema.Field, raw any) (any, bool) {
	switch f.Kind {
	case schema.KindText:
		return cleanText(raw)
	case schema.KindName:
		return cleanName(raw)
	case schema.KindDate:
		return cleanDate(raw)
	case schema.KindAadhaar:
		return cleanAadhaar(raw)
	case schema.KindPhone:
		return cleanPhone(raw)
	case schema.KindYear:
		return cleanYear(raw)
	case schema.KindPercentage:
		return cleanPercentage(raw)
	case schema.KindNumber:
		return cleanNumber(raw)
	case schema.KindSubjects:
		return cleanSubjects(raw)
	case schema.KindEnum:
		return cleanEnum(raw, f.Allowed)
	default:
		return cleanText(raw)
	}
}

// asString renders scalar raw values as a trimmed string. Composite values
// (objects, arrays) are rejected.
func asString(raw any) (string, bool) {
	switch v := raw.(type) {
	case string:
		return strings.TrimSpace(v), true
	case float64:
		if v == math.Trunc(v) {
			return strconv.FormatInt(int64(v), 10), true
		}
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case int:
		return strconv.Itoa(v), true
	case bool:
		return strconv.FormatBool(v), true
	default:
		return "", false
	}
}

func cleanText(raw any) (any, bool) {
	s, ok := asString(raw)
	if !ok || s == "" {
		return nil, false
	}
	return spaceRun.ReplaceAllString(s, " "), true
}

// cleanName trims, collapses whitespace and title-cases, keeping short
// joining words lowercase ("Institute of Science").
func cleanName(raw any) (any, bool) {
	s, ok := asString(raw)
	if !ok || s == "" {
		return nil, false
	}
	s = spaceRun.ReplaceAllString(s, " ")
	s = titleCase(s)
	s = lowerJoiner.ReplaceAllStringFunc(s, strings.ToLower)
	return s, true
}

func titleCase(s string) string {
	words := strings.Fields(strings.ToLower(s))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// cleanAadhaar strips non-digits and regroups as "XXXX XXXX XXXX". Anything
// other than exactly 12 digits is invalid.
func cleanAadhaar(raw any) (any, bool) {
	s, ok := asString(raw)
	if !ok {
		return nil, false
	}
	digits := nonDigit.ReplaceAllString(s, "")
	if len(digits) != 12 {
		return nil, false
	}
	return fmt.Sprintf("%s %s %s", digits[:4], digits[4:8], digits[8:]), true
}

// cleanPhone strips non-digits and a leading 91 country code; the result
// must be a 10-digit Indian mobile number.
func cleanPhone(raw any) (any, bool) {
	s, ok := asString(raw)
	if !ok {
		return nil, false
	}
	digits := nonDigit.ReplaceAllString(s, "")
	if len(digits) == 12 && strings.HasPrefix(digits, "91") {
		digits = digits[2:]
	}
	if len(digits) != 10 {
		return nil, false
	}
	return digits, true
}

func cleanYear(raw any) (any, bool) {
	s, ok := asString(raw)
	if !ok {
		return nil, false
	}
	digits := nonDigit.ReplaceAllString(s, "")
	if len(digits) != 4 {
		return nil, false
	}
	year, err := strconv.Atoi(digits)
	if err != nil {
		return nil, false
	}
	return year, true
}

func cleanPercentage(raw any) (any, bool) {
	v, ok := parseNumeric(raw)
	if !ok || v < 0 || v > 100 {
		return nil, false
	}
	return math.Round(v*100) / 100, true
}

func cleanNumber(raw any) (any, bool) {
	v, ok := parseNumeric(raw)
	if !ok {
		return nil, false
	}
	return v, true
}

// parseNumeric accepts numbers directly and extracts the leading numeric run
// from strings, tolerating suffixes like "%" or "marks".
func parseNumeric(raw any) (float64, bool) {
	switch v := raw.(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case string:
		match := leadingNum.FindString(strings.TrimSpace(v))
		if match == "" {
			return 0, false
		}
		parsed, err := strconv.ParseFloat(match, 64)
		if err != nil {
			return 0, false
		}
		return parsed, true
	default:
		return 0, false
	}
}

// cleanEnum maps the raw value onto the allowed set, case-insensitively.
// Gender initials and pass/fail substrings are recognized because the model
// frequently emits them abbreviated.
func cleanEnum(raw any, allowed []string) (any, bool) {
	s, ok := asString(raw)
	if !ok || s == "" {
		return nil, false
	}
	lower := strings.ToLower(spaceRun.ReplaceAllString(s, " "))

	for _, a := range allowed {
		if strings.EqualFold(a, lower) {
			return a, true
		}
	}
	if containsFold(allowed, "Male") {
		switch lower {
		case "m":
			return "Male", true
		case "f":
			return "Female", true
		}
	}
	if containsFold(allowed, "Pass") {
		if strings.Contains(lower, "pass") {
			return "Pass", true
		}
		if strings.Contains(lower, "fail") {
			return "Fail", true
		}
	}
	return nil, false
}

func containsFold(values []string, target string) bool {
	for _, v := range values {
		if strings.EqualFold(v, target) {
			return true
		}
	}
	return false
}
