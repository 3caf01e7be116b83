package nav

import (
	"encoding/json"
	"strings"
)

// RootField is the pseudo-field used for failures that do not map to a
// visible input.
const RootField = "root"

// Messages holds the message list for one error key. Servers send either a
// single string or an array of strings per key; both decode into Messages.
type Messages []string

// UnmarshalJSON accepts both the scalar and the array shape.
func (m *Messages) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*m = Messages{single}
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return err
	}
	*m = Messages(many)
	return nil
}

// Join collapses the list into a single display string, newline-separated.
// Empty entries are dropped.
func (m Messages) Join() string {
	out := make([]string, 0, len(m))
	for _, msg := range m {
		trimmed := strings.TrimSpace(msg)
		if trimmed == "" {
			continue
		}
		out = append(out, trimmed)
	}
	return strings.Join(out, "\n")
}

// ErrorBag is the server's field-keyed error map.
type ErrorBag map[string]Messages

// RootError builds a bag holding a single non-field message.
func RootError(message string) ErrorBag {
	return ErrorBag{RootField: Messages{message}}
}

// Root returns the joined root message, or "" when the bag has none.
func (b ErrorBag) Root() string {
	return b[RootField].Join()
}
