// Package output renders reports as JSON or plain text.
package output

import (
	"encoding/json"
)

// ToJSON serializes v to JSON, indented when pretty is set.
func ToJSON(v any, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(v, "", "  ")
	}
	return json.Marshal(v)
}
