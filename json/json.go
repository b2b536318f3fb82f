package json

import (
	"github.com/creasty/defaults"
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// MarshalIndent fills `default` tags on v before encoding.
func MarshalIndent(v any, prefix, indent string) ([]byte, error) {
	if err := defaults.Set(v); err != nil {
		return nil, err
	}
	return json.MarshalIndent(v, prefix, indent)
}
