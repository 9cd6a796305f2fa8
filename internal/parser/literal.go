package parser

import (
	"strconv"
	"strings"

	"mslayout/internal/token"
)

// literalValue decodes an enum label id: a decimal (42, 1_000) or a based
// literal with an optional width (8'hFF, 'b101, 4'sd3, '0, '1).
// x/z/? digits have no numeric value and are rejected.
func literalValue(tok token.Token) (uint64, bool) {
	s := strings.ReplaceAll(tok.Text, "_", "")
	switch tok.Kind {
	case token.IntLit:
		v, err := strconv.ParseUint(s, 10, 64)
		return v, err == nil
	case token.SizedLit:
	default:
		return 0, false
	}

	q := strings.IndexByte(s, '\'')
	if q < 0 {
		return 0, false
	}
	rest := s[q+1:]
	switch rest {
	case "0":
		return 0, true
	case "1":
		// '1 — все биты в единицу; без известной ширины считаем как 1
		return 1, true
	}
	rest = strings.TrimLeft(rest, "sS")
	if rest == "" {
		return 0, false
	}
	var base int
	switch rest[0] {
	case 'b', 'B':
		base = 2
	case 'o', 'O':
		base = 8
	case 'd', 'D':
		base = 10
	case 'h', 'H':
		base = 16
	default:
		return 0, false
	}
	v, err := strconv.ParseUint(rest[1:], base, 64)
	return v, err == nil
}
