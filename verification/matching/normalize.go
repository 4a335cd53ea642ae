package matching

import (
	"strings"

	"github.com/pkg/errors"
)

// ErrMalformedHex indicates a bytecode string was not an even-length sequence of hexadecimal digit pairs. This is
// an input error, never a mismatch: callers should surface it instead of comparing the operands.
var ErrMalformedHex = errors.New("malformed hex bytecode")

// NormalizeHex strips an optional "0x" prefix from the provided hex string and lowercases it, so that prefix
// presence and digit casing never affect bytecode equality. The result must be an even-length string of hexadecimal
// digits, otherwise ErrMalformedHex is returned. NormalizeHex is idempotent over its own output.
func NormalizeHex(s string) (string, error) {
	normalized := normalizeHexBody(s)
	if err := validateHex(normalized, false); err != nil {
		return "", err
	}
	return normalized, nil
}

// NormalizeLinkable behaves like NormalizeHex but additionally accepts the `_` and `$` characters that make up
// library link placeholders, which are legal in unlinked Solidity artifact bytecode. Deployed bytecode and
// transaction input data never contain placeholders and must be normalized with NormalizeHex instead.
func NormalizeLinkable(s string) (string, error) {
	normalized := normalizeHexBody(s)
	if err := validateHex(normalized, true); err != nil {
		return "", err
	}
	return normalized, nil
}

// normalizeHexBody strips the optional "0x" prefix and lowercases the remainder without validating it.
func normalizeHexBody(s string) string {
	s = strings.TrimPrefix(s, "0x")
	s = strings.TrimPrefix(s, "0X")
	return strings.ToLower(s)
}

// validateHex verifies the provided string is an even-length sequence of lowercase hexadecimal digits. If
// allowPlaceholders is set, the link placeholder characters `_` and `$` are accepted as well.
func validateHex(s string, allowPlaceholders bool) error {
	if len(s)%2 != 0 {
		return errors.Wrapf(ErrMalformedHex, "odd-length hex string (%d characters)", len(s))
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') {
			continue
		}
		if allowPlaceholders && (c == '_' || c == '$') {
			continue
		}
		return errors.Wrapf(ErrMalformedHex, "invalid hex character %q at offset %d", c, i)
	}
	return nil
}
