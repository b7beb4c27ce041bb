package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"intake-backend/internal/schema"
)

func TestCleanAadhaar(t *testing.T) {
	cases := []struct {
		in   any
		want any
		ok   bool
	}{
		{"123456789012", "1234 5678 9012", true},
		{"1234 5678 9012", "1234 5678 9012", true},
		{"1234-5678-9012", "1234 5678 9012", true},
		{"12345678901", nil, false},  // 11 digits
		{"1234567890123", nil, false}, // 13 digits
		{"", nil, false},
		{map[string]any{}, nil, false},
	}
	for _, c := range cases {
		got, ok := cleanAadhaar(c.in)
		assert.Equal(t, c.ok, ok, "input %v", c.in)
		assert.Equal(t, c.want, got, "input %v", c.in)
	}
}

func TestCleanPhone(t *testing.T) {
	cases := []struct {
		in   any
		want any
		ok   bool
	}{
		{"9876543210", "9876543210", true},
		{"+91 98765 43210", "9876543210", true},
		{"919876543210", "9876543210", true},
		{"98765", nil, false},
	}
	for _, c := range cases {
		got, ok := cleanPhone(c.in)
		assert.Equal(t, c.ok, ok, "input %v", c.in)
		assert.Equal(t, c.want, got, "input %v", c.in)
	}
}

func TestCleanDateFormats(t *testing.T) {
	valid := []string{
		"15/08/1995",
		"15-08-1995",
		"1995-08-15",
		"1995/08/15",
		"15 August 1995",
		"15 Aug 1995",
		"August 15, 1995",
	}
	for _, in := range valid {
		got, ok := cleanDate(in)
		require.True(t, ok, "input %q", in)
		assert.Equal(t, "1995-08-15", got, "input %q", in)
	}

	for _, in := range []string{"someday", "32/01/1995", "1995", ""} {
		_, ok := cleanDate(in)
		assert.False(t, ok, "input %q", in)
	}
}

func TestCleanName(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"john doe", "John Doe"},
		{"  priya   SHARMA ", "Priya Sharma"},
		{"indian institute of science", "Indian Institute of Science"},
		{"board of the and", "Board of the and"},
	}
	for _, c := range cases {
		got, ok := cleanName(c.in)
		require.True(t, ok, "input %q", c.in)
		assert.Equal(t, c.want, got, "input %q", c.in)
	}
}

func TestCleanYear(t *testing.T) {
	got, ok := cleanYear("2023")
	require.True(t, ok)
	assert.Equal(t, 2023, got)

	got, ok = cleanYear(2021.0)
	require.True(t, ok)
	assert.Equal(t, 2021, got)

	for _, in := range []any{"202", "20233", "year"} {
		_, ok := cleanYear(in)
		assert.False(t, ok, "input %v", in)
	}
}

func TestCleanPercentage(t *testing.T) {
	got, ok := cleanPercentage(87.456)
	require.True(t, ok)
	assert.Equal(t, 87.46, got)

	got, ok = cleanPercentage("92.5%")
	require.True(t, ok)
	assert.Equal(t, 92.5, got)

	for _, in := range []any{-1.0, 100.5, "high"} {
		_, ok := cleanPercentage(in)
		assert.False(t, ok, "input %v", in)
	}
}

func TestCleanNumberFromString(t *testing.T) {
	got, ok := cleanNumber("540 marks")
	require.True(t, ok)
	assert.Equal(t, 540.0, got)

	_, ok = cleanNumber("no digits here")
	assert.False(t, ok)
}

func TestCleanEnum(t *testing.T) {
	gender := []string{"Male", "Female", "Other"}
	result := []string{"Pass", "Fail"}

	got, ok := cleanEnum("male", gender)
	require.True(t, ok)
	assert.Equal(t, "Male", got)

	got, ok = cleanEnum("M", gender)
	require.True(t, ok)
	assert.Equal(t, "Male", got)

	got, ok = cleanEnum("f", gender)
	require.True(t, ok)
	assert.Equal(t, "Female", got)

	got, ok = cleanEnum("PASSED", result)
	require.True(t, ok)
	assert.Equal(t, "Pass", got)

	got, ok = cleanEnum("failed", result)
	require.True(t, ok)
	assert.Equal(t, "Fail", got)

	_, ok = cleanEnum("unknown", gender)
	assert.False(t, ok)
}

func TestCleanSubjectsMap(t *testing.T) {
	got, ok := cleanSubjects(map[string]any{
		"math":    95.0,
		"science": "90 marks",
		"junk":    "no number",
	})
	require.True(t, ok)
	assert.Equal(t, map[string]float64{"Math": 95, "Science": 90}, got)
}

func TestCleanSubjectsString(t *testing.T) {
	got, ok := cleanSubjects("Math: 95, Science - 90.5, garbage entry")
	require.True(t, ok)
	assert.Equal(t, map[string]float64{"Math": 95, "Science": 90.5}, got)

	_, ok = cleanSubjects("nothing parses here")
	assert.False(t, ok)

	_, ok = cleanSubjects(map[string]any{"only": "junk"})
	assert.False(t, ok)
}

func TestCleanValueDispatch(t *testing.T) {
	got, ok := cleanValue(schema.Field{Kind: schema.KindText}, "  some   text ")
	require.True(t, ok)
	assert.Equal(t, "some text", got)

	_, ok = cleanValue(schema.Field{Kind: schema.KindText}, []any{"composite"})
	assert.False(t, ok)
}
