package types

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// ID is a record identifier that can be unmarshaled from either a JSON number or a JSON string.
type ID uint64

// ParseID parses a decimal identifier, as found in query strings or token claims
func ParseID(s string) (ID, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("ID: empty value")
	}
	val, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("ID: invalid identifier %q: %w", s, err)
	}
	return ID(val), nil
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (id *ID) UnmarshalJSON(data []byte) error {
	if len(data) == 0 || string(data) == "null" {
		return nil
	}

	var n uint64
	if err := json.Unmarshal(data, &n); err == nil {
		*id = ID(n)
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		parsed, err := ParseID(s)
		if err != nil {
			return err
		}
		*id = parsed
		return nil
	}

	return fmt.Errorf("ID: unexpected type, expected number or string")
}

// Uint64 converts ID back to uint64.
func (id ID) Uint64() uint64 {
	return uint64(id)
}

func (id ID) String() string {
	return strconv.FormatUint(uint64(id), 10)
}
