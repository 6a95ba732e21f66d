package booking

import (
	"regexp"
	"slices"
	"strconv"
	"strings"
	"unicode"

	"pilgrimpath/models"
)

var (
	// "10:00", optionally followed by am/pm
	clockPattern = regexp.MustCompile(`(?i)(\d{1,2}):(\d{2})(?:\s*(am|pm)\b)?`)
	// "4 pm", but not the minutes of "5:00 pm"
	meridiemPattern = regexp.MustCompile(`(?i)(?:^|[^\d:])(\d{1,2})\s*(am|pm)\b`)
	hourPattern     = regexp.MustCompile(`(\d{1,2})`)
	countPattern    = regexp.MustCompile(`(\d+)`)
)

// normalizeDigits rewrites Devanagari and Gujarati digits as ASCII so the
// patterns above see them.
func normalizeDigits(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= '०' && r <= '९':
			return '0' + (r - '०')
		case r >= '૦' && r <= '૯':
			return '0' + (r - '૦')
		}
		return r
	}, s)
}

// to24h moves an hour read next to am/pm onto the 24h clock. An empty
// meridiem leaves the hour as written.
func to24h(hour int, meridiem string) int {
	switch strings.ToLower(meridiem) {
	case "pm":
		if hour < 12 {
			return hour + 12
		}
	case "am":
		if hour == 12 {
			return 0
		}
	}
	return hour
}

// hourCandidates extracts hour references in priority order: "10:00" (with
// an optional am/pm), "4 pm", then any bare number. The bare number is only
// used when no am/pm appears, so "8 pm" never falls back to 08:00.
func hourCandidates(utterance string) []int {
	hours, _ := parseHours(normalizeDigits(utterance))
	return hours
}

func parseHours(text string) (hours []int, meridiem bool) {
	if m := clockPattern.FindStringSubmatch(text); m != nil {
		if h, err := strconv.Atoi(m[1]); err == nil {
			hours = append(hours, to24h(h, m[3]))
			meridiem = m[3] != ""
		}
	}
	if m := meridiemPattern.FindStringSubmatch(text); m != nil {
		if h, err := strconv.Atoi(m[1]); err == nil {
			hours = append(hours, to24h(h, m[2]))
			meridiem = true
		}
	}
	if meridiem {
		return hours, true
	}
	if m := hourPattern.FindStringSubmatch(text); m != nil {
		if h, err := strconv.Atoi(m[1]); err == nil {
			hours = append(hours, h)
		}
	}
	return hours, false
}

// slotHour reads the start hour back out of the display range.
func slotHour(slot models.DarshanSlot) int {
	h, err := strconv.Atoi(strings.TrimSpace(strings.SplitN(slot.Time, ":", 2)[0]))
	if err != nil {
		return slot.Hour
	}
	return h
}

// MatchSlot finds the slot an utterance asks for. Hour references are tried
// against Available slots first; only when none of them hits does it fall
// back to looking for a slot's start or full display text in the utterance.
// A fallback hit on a slot that is not Available is no match, and a time
// given with am/pm never falls back: it names exactly one hour.
func MatchSlot(utterance string, slots []models.DarshanSlot) (models.DarshanSlot, bool) {
	text := normalizeDigits(utterance)
	hours, meridiem := parseHours(text)
	for _, hour := range hours {
		for _, slot := range slots {
			if slot.IsAvailable() && slotHour(slot) == hour {
				return slot, true
			}
		}
	}
	if meridiem {
		return models.DarshanSlot{}, false
	}

	lower := strings.ToLower(text)
	for _, slot := range slots {
		if strings.Contains(lower, strings.ToLower(slotStart(slot))) ||
			strings.Contains(lower, strings.ToLower(slot.Time)) {
			return slot, slot.IsAvailable()
		}
	}
	return models.DarshanSlot{}, false
}

type numberWord struct {
	word  string
	value int
}

// englishNumbers are matched as whole words, in this order, so "fourteen"
// and "someone" carry no count.
var englishNumbers = []numberWord{
	{"one", 1}, {"two", 2}, {"three", 3}, {"four", 4}, {"five", 5},
	{"six", 6}, {"seven", 7}, {"eight", 8}, {"nine", 9}, {"ten", 10},
}

// nativeNumbers are matched as whole words too: several Gujarati numerals
// are prefixes of everyday words (છ of છે, નવ of નવી).
var nativeNumbers = []numberWord{
	// Hindi
	{"एक", 1}, {"दो", 2}, {"तीन", 3}, {"चार", 4}, {"पांच", 5}, {"पाँच", 5},
	{"छह", 6}, {"छः", 6}, {"सात", 7}, {"आठ", 8}, {"नौ", 9}, {"दस", 10},
	// Gujarati
	{"એક", 1}, {"બે", 2}, {"ત્રણ", 3}, {"ચાર", 4}, {"પાંચ", 5},
	{"છ", 6}, {"સાત", 7}, {"આઠ", 8}, {"નવ", 9}, {"દસ", 10},
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsMark(r) || unicode.IsDigit(r)
}

// ParsePartySize reads a head count from an utterance. Number words win over
// digits; 0 means nothing was found.
func ParsePartySize(utterance string) int {
	lower := strings.ToLower(normalizeDigits(utterance))
	words := strings.FieldsFunc(lower, func(r rune) bool { return !isWordRune(r) })

	for _, table := range [][]numberWord{englishNumbers, nativeNumbers} {
		for _, nw := range table {
			if slices.Contains(words, nw.word) {
				return nw.value
			}
		}
	}

	m := countPattern.FindStringSubmatch(lower)
	if m == nil {
		return 0
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0
	}
	return n
}
