package collection

import (
	"encoding/json"
	"fmt"

	"collectorsdream/domain/core"
)

// Settings holds UI preferences. Keys other than darkMode are kept as-is so
// newer front-ends can store preferences this version does not know about.
type Settings struct {
	DarkMode bool
	Extra    map[string]any
}

// DefaultSettings is used before any settings have been saved
func DefaultSettings() Settings {
	return Settings{DarkMode: false}
}

func (s Settings) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(s.Extra)+1)
	for k, v := range s.Extra {
		out[k] = v
	}
	out["darkMode"] = s.DarkMode
	return json.Marshal(out)
}

func (s *Settings) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("%w: %v", core.ErrInvalidSettings, err)
	}
	*s = DefaultSettings()
	if v, ok := raw["darkMode"]; ok {
		b, ok := v.(bool)
		if !ok {
			return core.NewValidationError(core.ErrInvalidSettings, "darkMode", "must be a boolean")
		}
		s.DarkMode = b
		delete(raw, "darkMode")
	}
	if len(raw) > 0 {
		s.Extra = raw
	}
	return nil
}
