package eventlog

import "fmt"

// Kind identifies which log an entry belongs to.
type Kind int

const (
	KindPress Kind = iota + 1
	KindShake
)

func (k Kind) String() string {
	switch k {
	case KindPress:
		return "press"
	case KindShake:
		return "shake"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// ParseKind converts "press" or "shake" to a Kind.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "press":
		return KindPress, nil
	case "shake":
		return KindShake, nil
	default:
		return 0, fmt.Errorf("unknown event kind %q", s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	if k != KindPress && k != KindShake {
		return nil, fmt.Errorf("marshal kind: unknown kind %d", int(k))
	}
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}
