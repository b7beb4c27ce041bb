package normalize

import "time"

// dateLayouts is the fixed ordered list of known source date formats. The
// first layout that parses wins.
var dateLayouts = []string{
	"02/01/2006",
	"2/1/2006",
	"02-01-2006",
	"2-1-2006",
	"2006-01-02",
	"2006/01/02",
	"02 January 2006",
	"2 January 2006",
	"02 Jan 2006",
	"2 Jan 2006",
	"January 2, 2006",
}

// cleanDate normalizes a raw date string to ISO YYYY-MM-DD.
func cleanDate(raw any) (any, bool) {
	s, ok := asString(raw)
	if !ok || s == "" {
		return nil, false
	}
	s = spaceRun.ReplaceAllString(s, " ")
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("2006-01-02"), true
		}
	}
	return nil, false
}
