package teletext

import (
	"strconv"
	"strings"
)

// RGB is a packed 24-bit color, 0xRRGGBB.
type RGB uint32

const (
	DefaultForeground RGB = 0xFFFFFF
	DefaultBackground RGB = 0x000000
	maxRGB            RGB = 0xFFFFFF
)

func (c RGB) R() uint8 { return uint8(c >> 16) }
func (c RGB) G() uint8 { return uint8(c >> 8) }
func (c RGB) B() uint8 { return uint8(c) }

// ColorKind tells which plane a class token colors.
type ColorKind int

const (
	Foreground ColorKind = iota
	Background
)

func (k ColorKind) String() string {
	if k == Background {
		return "background"
	}
	return "foreground"
}

// ColorToken is one parsed color class.
type ColorToken struct {
	Kind  ColorKind
	Value RGB
}

// ParseColorToken parses a class name of the form c<hex> or bc<hex>.
// ok is false when the class is not a color class at all. err is non-nil
// when the prefix matched but the payload is not 1-6 hex digits.
func ParseColorToken(class string) (tok ColorToken, ok bool, err error) {
	var payload string
	switch {
	case strings.HasPrefix(class, "bc"):
		tok.Kind = Background
		payload = class[2:]
	case strings.HasPrefix(class, "c"):
		tok.Kind = Foreground
		payload = class[1:]
	default:
		return ColorToken{}, false, nil
	}

	if len(payload) == 0 || len(payload) > 6 {
		return ColorToken{}, true, &MalformedColorError{Class: class}
	}
	v, perr := strconv.ParseUint(payload, 16, 32)
	if perr != nil {
		return ColorToken{}, true, &MalformedColorError{Class: class, Err: perr}
	}
	tok.Value = RGB(v) & maxRGB
	return tok, true, nil
}

// ColorsFromClasses returns the foreground and background candidates from a
// class list. nil means no class supplied that plane. Later tokens win;
// malformed tokens are ignored.
func ColorsFromClasses(classes []string) (fg, bg *RGB) {
	for _, class := range classes {
		tok, ok, err := ParseColorToken(class)
		if !ok || err != nil {
			continue
		}
		fg, bg = apply(tok, fg, bg)
	}
	return fg, bg
}

// ColorsFromClassesStrict is ColorsFromClasses but fails on the first
// malformed color token.
func ColorsFromClassesStrict(classes []string) (fg, bg *RGB, err error) {
	for _, class := range classes {
		tok, ok, terr := ParseColorToken(class)
		if !ok {
			continue
		}
		if terr != nil {
			return nil, nil, terr
		}
		fg, bg = apply(tok, fg, bg)
	}
	return fg, bg, nil
}

func apply(tok ColorToken, fg, bg *RGB) (*RGB, *RGB) {
	v := tok.Value
	if tok.Kind == Background {
		return fg, &v
	}
	return &v, bg
}
