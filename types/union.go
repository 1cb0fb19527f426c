package types

import (
	"encoding/json"
	"fmt"
	"slices"
)

// checkVariant makes sure data is a JSON object with exactly one key, and that
// the key is one of variants. This mirrors how externally tagged enums are
// decoded on the contract side: an unknown tag or a missing tag is an error,
// not an empty value.
func checkVariant(data []byte, name string, variants ...string) (string, error) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err != nil {
		return "", err
	}
	if len(obj) != 1 {
		return "", fmt.Errorf("expected exactly one variant of %s, got %d", name, len(obj))
	}
	for tag, payload := range obj {
		if !slices.Contains(variants, tag) {
			return "", fmt.Errorf("unknown variant `%s` of %s, expected one of %v", tag, name, variants)
		}
		if string(payload) == "null" {
			return "", fmt.Errorf("invalid type: null, expected variant `%s` of %s", tag, name)
		}
		return tag, nil
	}
	return "", nil // unreachable
}
