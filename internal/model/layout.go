package model

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// LetterLayout valid seat letters and their priority classes
type LetterLayout struct {
	Min     byte
	Max     byte
	Window  []byte
	Middle  []byte
	Aisle   []byte
	Derived bool
}

// DefaultLayout a six-abreast A..F layout: A/F window, B/E middle, C/D aisle.
func DefaultLayout() LetterLayout {
	return LetterLayout{
		Min:    'A',
		Max:    'F',
		Window: []byte{'A', 'F'},
		Middle: []byte{'B', 'E'},
		Aisle:  []byte{'C', 'D'},
	}
}

// NewLayout validates bounds and class letters and builds a fixed layout.
func NewLayout(first, last byte, window, middle, aisle []byte) (LetterLayout, error) {
	first, last = upper(first), upper(last)
	if first < 'A' || first > 'Z' || last < 'A' || last > 'Z' {
		return LetterLayout{}, fmt.Errorf("letter bounds must be A-Z, got %q-%q", first, last)
	}
	if first > last {
		return LetterLayout{}, fmt.Errorf("min letter %q is after max letter %q", first, last)
	}
	l := LetterLayout{Min: first, Max: last}
	seen := make(map[byte]SeatClass)
	for _, group := range []struct {
		dst   *[]byte
		src   []byte
		class SeatClass
	}{
		{&l.Window, window, ClassWindow},
		{&l.Middle, middle, ClassMiddle},
		{&l.Aisle, aisle, ClassAisle},
	} {
		for _, c := range group.src {
			c = upper(c)
			if !l.Contains(c) {
				return LetterLayout{}, fmt.Errorf("%s letter %q outside %s", group.class, c, l.RowRange())
			}
			if prev, ok := seen[c]; ok {
				return LetterLayout{}, fmt.Errorf("letter %q listed as both %s and %s", c, prev, group.class)
			}
			seen[c] = group.class
			*group.dst = append(*group.dst, c)
		}
	}
	return l, nil
}

// DeriveLayout keeps the bounds of base and reclassifies from the letters
// actually observed: the alphabetically first and last are window seats,
// every other observed letter is aisle class.
func DeriveLayout(base LetterLayout, observed []byte) LetterLayout {
	l := LetterLayout{Min: base.Min, Max: base.Max, Derived: true}
	letters := distinctSorted(observed)
	if len(letters) == 0 {
		return l
	}
	first, last := letters[0], letters[len(letters)-1]
	l.Window = append(l.Window, first)
	if last != first {
		l.Window = append(l.Window, last)
	}
	if len(letters) > 2 {
		l.Aisle = append(l.Aisle, letters[1:len(letters)-1]...)
	}
	return l
}

// Contains reports whether letter lies in [Min, Max].
func (l LetterLayout) Contains(letter byte) bool {
	return letter >= l.Min && letter <= l.Max
}

// Class returns the priority class of letter.
func (l LetterLayout) Class(letter byte) SeatClass {
	switch {
	case indexOf(l.Window, letter):
		return ClassWindow
	case indexOf(l.Middle, letter):
		return ClassMiddle
	case indexOf(l.Aisle, letter):
		return ClassAisle
	}
	return ClassUnclassified
}

// RowRange e.g. "A-F"
func (l LetterLayout) RowRange() string {
	return string(l.Min) + "-" + string(l.Max)
}

// WindowLetters window letters as strings
func (l LetterLayout) WindowLetters() []string {
	return letterStrings(l.Window)
}

// MarshalJSON writes letters as strings rather than byte values.
func (l LetterLayout) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		RowRange string   `json:"rowRange"`
		Window   []string `json:"window"`
		Middle   []string `json:"middle"`
		Aisle    []string `json:"aisle"`
		Derived  bool     `json:"derived"`
	}{l.RowRange(), letterStrings(l.Window), letterStrings(l.Middle), letterStrings(l.Aisle), l.Derived})
}

// Describe e.g. "A-F (fixed) window=A,F middle=B,E aisle=C,D"
func (l LetterLayout) Describe() string {
	mode := "fixed"
	if l.Derived {
		mode = "derived"
	}
	return fmt.Sprintf("%s (%s) window=%s middle=%s aisle=%s", l.RowRange(), mode,
		strings.Join(letterStrings(l.Window), ","),
		strings.Join(letterStrings(l.Middle), ","),
		strings.Join(letterStrings(l.Aisle), ","))
}

func letterStrings(bs []byte) []string {
	out := make([]string, 0, len(bs))
	for _, b := range bs {
		out = append(out, string(b))
	}
	return out
}

func distinctSorted(bs []byte) []byte {
	set := make(map[byte]struct{}, len(bs))
	out := make([]byte, 0, len(bs))
	for _, b := range bs {
		if _, ok := set[b]; ok {
			continue
		}
		set[b] = struct{}{}
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func indexOf(bs []byte, b byte) bool {
	for _, x := range bs {
		if x == b {
			return true
		}
	}
	return false
}

func upper(b byte) byte {
	if b >= 'a' && b <= 'z' {
		return b - 'a' + 'A'
	}
	return b
}
