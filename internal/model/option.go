package model

import (
	"encoding/json"
	"fmt"
	"strings"
)

// OptionKind distinguishes the two European option styles the engine prices.
type OptionKind int

const (
	Call OptionKind = iota
	Put
)

// Kinds lists every OptionKind in the order outputs are stored.
var Kinds = []OptionKind{Call, Put}

func (k OptionKind) String() string {
	switch k {
	case Call:
		return "call"
	case Put:
		return "put"
	default:
		return fmt.Sprintf("OptionKind(%d)", int(k))
	}
}

// ParseOptionKind accepts "call" or "put" in any case.
func ParseOptionKind(s string) (OptionKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "call", "c":
		return Call, nil
	case "put", "p":
		return Put, nil
	default:
		return 0, fmt.Errorf("%w: unknown option kind %q", ErrInvalidInput, s)
	}
}

func (k OptionKind) MarshalJSON() ([]byte, error) {
	if k != Call && k != Put {
		return nil, fmt.Errorf("marshal %s", k)
	}
	return json.Marshal(k.String())
}

func (k *OptionKind) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("%w: option kind must be a string", ErrInvalidInput)
	}
	parsed, err := ParseOptionKind(s)
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}
