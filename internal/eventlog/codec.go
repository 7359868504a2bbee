package eventlog

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

const (
	// EntrySeparator terminates every encoded event.
	EntrySeparator = ","

	// FieldSeparator splits a press token into timestamp and value.
	FieldSeparator = "|"
)

// ErrMalformedToken marks a token that could not be decoded.
var ErrMalformedToken = errors.New("malformed token")

// Entry is one decoded event.
// Value is only meaningful for KindPress entries.
type Entry struct {
	Kind  Kind  `json:"kind"`
	At    int64 `json:"at"`
	Value int   `json:"value,omitempty"`
}

// Issue describes a token skipped during Decode.
type Issue struct {
	Kind  Kind   // log being decoded
	Index int    // position of the token among all split tokens
	Token string // raw token text
	Err   error  // wraps ErrMalformedToken
}

func (i Issue) Error() string {
	return fmt.Sprintf("%s log token %d %q: %v", i.Kind, i.Index, i.Token, i.Err)
}

func (i Issue) Unwrap() error {
	return i.Err
}

// EncodePress returns the press log fragment for a counter value reached at ts.
func EncodePress(ts int64, value int) string {
	return strconv.FormatInt(ts, 10) + FieldSeparator + strconv.Itoa(value) + EntrySeparator
}

// EncodeShake returns the shake log fragment for a shake detected at ts.
func EncodeShake(ts int64) string {
	return strconv.FormatInt(ts, 10) + EntrySeparator
}

// Encode returns the fragment for e according to its kind.
func Encode(e Entry) (string, error) {
	switch e.Kind {
	case KindPress:
		return EncodePress(e.At, e.Value), nil
	case KindShake:
		return EncodeShake(e.At), nil
	default:
		return "", fmt.Errorf("encode: unknown kind %d", e.Kind)
	}
}

// Decode parses raw as a log of the given kind.
//
// Entries are returned in stored order. Empty tokens are ignored; malformed
// tokens are skipped and returned as issues. An empty raw value yields no
// entries and no issues.
func Decode(raw string, kind Kind) ([]Entry, []Issue) {
	if raw == "" {
		return nil, nil
	}

	var (
		entries []Entry
		issues  []Issue
	)
	for i, token := range strings.Split(raw, EntrySeparator) {
		if token == "" {
			continue
		}
		entry, err := decodeToken(token, kind)
		if err != nil {
			issues = append(issues, Issue{Kind: kind, Index: i, Token: token, Err: err})
			continue
		}
		entries = append(entries, entry)
	}
	return entries, issues
}

func decodeToken(token string, kind Kind) (Entry, error) {
	switch kind {
	case KindPress:
		tsText, valueText, ok := strings.Cut(token, FieldSeparator)
		if !ok {
			return Entry{}, fmt.Errorf("%w: missing value field", ErrMalformedToken)
		}
		// Extra fields after the value are ignored.
		valueText, _, _ = strings.Cut(valueText, FieldSeparator)
		ts, err := parseTimestamp(tsText)
		if err != nil {
			return Entry{}, err
		}
		value, err := strconv.Atoi(valueText)
		if err != nil {
			return Entry{}, fmt.Errorf("%w: value %q is not an integer", ErrMalformedToken, valueText)
		}
		return Entry{Kind: KindPress, At: ts, Value: value}, nil
	case KindShake:
		ts, err := parseTimestamp(token)
		if err != nil {
			return Entry{}, err
		}
		return Entry{Kind: KindShake, At: ts}, nil
	default:
		return Entry{}, fmt.Errorf("%w: unknown kind %d", ErrMalformedToken, kind)
	}
}

func parseTimestamp(s string) (int64, error) {
	ts, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: timestamp %q is not an integer", ErrMalformedToken, s)
	}
	return ts, nil
}
