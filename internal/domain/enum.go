package domain

import "fmt"

// parseEnum accepts the empty string (an unanswered field) or one of allowed.
func parseEnum[T ~string](field string, raw []byte, allowed ...T) (T, error) {
	v := T(raw)
	if v == "" {
		return v, nil
	}
	for _, a := range allowed {
		if v == a {
			return v, nil
		}
	}
	return "", fmt.Errorf("unknown %s %q", field, string(raw))
}

// ParseBundle maps a raw form answer onto the closed bundle set.
func ParseBundle(s string) (Bundle, error) {
	var b Bundle
	err := b.UnmarshalText([]byte(s))
	return b, err
}

func ParseBoardTier(s string) (BoardTier, error) {
	var t BoardTier
	err := t.UnmarshalText([]byte(s))
	return t, err
}

func ParseStore(s string) (Store, error) {
	var st Store
	err := st.UnmarshalText([]byte(s))
	return st, err
}
