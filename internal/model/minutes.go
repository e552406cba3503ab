package model

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Minutes is a duration in whole minutes. Legacy payloads store durations as
// numeric strings ("25"), newer ones as numbers, so decoding accepts both.
type Minutes int

func (m Minutes) MarshalJSON() ([]byte, error) {
	return json.Marshal(int(m))
}

func (m *Minutes) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if raw == "null" || raw == `""` {
		*m = 0
		return nil
	}
	if strings.HasPrefix(raw, `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return fmt.Errorf("parse minutes %q: %w", s, err)
		}
		*m = Minutes(n)
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*m = Minutes(int(f))
	return nil
}
