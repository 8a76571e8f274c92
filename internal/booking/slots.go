package booking

import "regexp"

var slotRe = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

// ValidSlot reports whether s is a zero-padded 24-hour HH:MM time.
func ValidSlot(s string) bool {
	return slotRe.MatchString(s)
}

// Sanitize drops malformed entries. The result is never nil.
func Sanitize(slots []string) []string {
	out := make([]string, 0, len(slots))
	for _, s := range slots {
		if ValidSlot(s) {
			out = append(out, s)
		}
	}
	return out
}

// Contains reports whether slot is one of slots.
func Contains(slots []string, slot string) bool {
	for _, v := range slots {
		if v == slot {
			return true
		}
	}
	return false
}

// Choose returns the first preferred time that is available. With no
// preferences it returns the earliest available slot. Slots compare as
// HH:MM strings, which sort chronologically.
func Choose(preferred, available []string) (string, bool) {
	available = Sanitize(available)
	if len(available) == 0 {
		return "", false
	}
	if len(preferred) == 0 {
		best := available[0]
		for _, s := range available[1:] {
			if s < best {
				best = s
			}
		}
		return best, true
	}
	for _, p := range preferred {
		if Contains(available, p) {
			return p, true
		}
	}
	return "", false
}
