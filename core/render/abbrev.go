package render

import (
	"strings"
	"unicode"
)

// DefaultAbbreviateMax is the label width used when none is configured.
const DefaultAbbreviateMax = 12

// Abbreviate shortens a subject name to at most max runes. Names that
// already fit are returned unchanged.
func Abbreviate(name string, max int) string {
	if max <= 0 {
		max = DefaultAbbreviateMax
	}
	if runeLen(name) <= max {
		return name
	}
	words := strings.Fields(name)
	var out string
	switch len(words) {
	case 0:
		out = name
	case 1:
		out = shortenWord(words[0], max)
	case 2:
		out = abbreviatePair(words[0], words[1], max)
	default:
		out = abbreviateMany(words, max)
	}
	return clamp(out, max)
}

func abbreviatePair(w1, w2 string, max int) string {
	l1, l2 := runeLen(w1), runeLen(w2)
	if l1 > l2 {
		if target := max - l2 - 1; target >= 1 {
			if s := shortenWord(w1, target) + " " + w2; runeLen(s) <= max {
				return s
			}
		}
	} else {
		if target := max - l1 - 1; target >= 1 {
			if s := w1 + " " + shortenWord(w2, target); runeLen(s) <= max {
				return s
			}
		}
	}
	available := max - 1
	t1 := l1
	if half := available / 2; half < t1 {
		t1 = half
	}
	t2 := available - t1
	return shortenWord(w1, t1) + " " + shortenWord(w2, t2)
}

func abbreviateMany(words []string, max int) string {
	last := words[len(words)-1]
	var initials strings.Builder
	for _, w := range words[:len(words)-1] {
		r := []rune(w)
		initials.WriteRune(unicode.ToUpper(r[0]))
	}
	ini := initials.String()
	if s := ini + " " + last; runeLen(s) <= max {
		return s
	}
	if remaining := max - runeLen(ini) - 1; remaining >= 2 {
		return ini + " " + shortenWord(last, remaining)
	}
	return shortenWord(words[0], max-runeLen(last)-1) + " " + last
}

// shortenWord keeps the first letter followed by consonants when there is
// room for at least four characters, and truncates with a trailing dot
// otherwise.
func shortenWord(word string, target int) string {
	r := []rune(word)
	if target <= 0 {
		return ""
	}
	if len(r) <= target {
		return word
	}
	if target >= 4 {
		out := []rune{r[0]}
		for _, c := range r[1:] {
			if len(out) >= target {
				break
			}
			if !isVowel(c) {
				out = append(out, c)
			}
		}
		return string(out)
	}
	if target == 1 {
		return string(r[:1])
	}
	return string(r[:target-1]) + "."
}

func clamp(s string, max int) string {
	s = strings.TrimSpace(s)
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	if max == 1 {
		return string(r[:1])
	}
	return string(r[:max-1]) + "."
}

func isVowel(r rune) bool {
	return strings.ContainsRune("aeiouAEIOU", r)
}

func runeLen(s string) int { return len([]rune(s)) }
