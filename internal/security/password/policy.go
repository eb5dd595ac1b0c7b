package password

import (
	"errors"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"
)

// MinLen is the shortest admin password accepted.
const MinLen = 8

var ErrTooShort = errors.New("password is too short")

// Warning describes a password that is accepted but weak.
type Warning struct {
	Score       int      `json:"score"` // 0..4
	Message     string   `json:"message"`
	Suggestions []string `json:"suggestions"`
}

// Hints splits account details such as the admin email and the library name
// into the lowercase words a password should not be built from.
func Hints(values ...string) []string {
	var out []string
	for _, v := range values {
		words := strings.FieldsFunc(strings.ToLower(v), func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsDigit(r)
		})
		for _, w := range words {
			if utf8.RuneCountInString(w) >= 3 && !slices.Contains(out, w) {
				out = append(out, w)
			}
		}
	}
	return out
}

// Validate trims pwd and rejects it below MinLen. Weak but acceptable
// passwords come back with a warning. Containing one of hints costs a
// character class unless the password is long.
func Validate(pwd string, hints ...string) (string, *Warning, error) {
	pwd = strings.TrimSpace(pwd)
	n := utf8.RuneCountInString(pwd)
	if n < MinLen {
		return pwd, nil, ErrTooShort
	}

	classes := charClasses(pwd)
	if n < 16 && containsAny(strings.ToLower(pwd), hints) {
		classes = max(1, classes-1)
	}
	if w := grade(n, classes); w.Score < 3 {
		return pwd, &w, nil
	}
	return pwd, nil, nil
}

func charClasses(pwd string) int {
	var lower, upper, digit, other bool
	for _, r := range pwd {
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		default:
			other = true
		}
	}
	n := 0
	for _, ok := range []bool{lower, upper, digit, other} {
		if ok {
			n++
		}
	}
	return n
}

func containsAny(lower string, hints []string) bool {
	for _, h := range hints {
		if h = strings.ToLower(strings.TrimSpace(h)); h != "" && strings.Contains(lower, h) {
			return true
		}
	}
	return false
}

func grade(length, classes int) Warning {
	switch {
	case length >= 14 && classes >= 3:
		return Warning{Score: 4}
	case length >= 12 && classes >= 3:
		return Warning{Score: 3, Suggestions: []string{"Consider a passphrase of three or four words."}}
	case length >= 10 && classes >= 2:
		return Warning{Score: 2, Message: "Short or low variety.", Suggestions: []string{"Add length and mix letters, numbers and symbols."}}
	default:
		return Warning{Score: 1, Message: "Too short or predictable.", Suggestions: []string{"Use at least 12 characters of mixed types."}}
	}
}
