package jsonrs

import (
	"io"

	jsoniter "github.com/json-iterator/go"
)

// jsoniterJSON is the github.com/json-iterator/go implementation, configured
// for drop-in compatibility with encoding/json.
type jsoniterJSON struct{}

var jsoniterAPI = jsoniter.ConfigCompatibleWithStandardLibrary

func (*jsoniterJSON) Marshal(v any) ([]byte, error) {
	return jsoniterAPI.Marshal(v)
}

func (*jsoniterJSON) MarshalIndent(v any, prefix, indent string) ([]byte, error) {
	return jsoniterAPI.MarshalIndent(v, prefix, indent)
}

func (*jsoniterJSON) MarshalToString(v any) (string, error) {
	return jsoniterAPI.MarshalToString(v)
}

func (*jsoniterJSON) Unmarshal(data []byte, v any) error {
	return jsoniterAPI.Unmarshal(data, v)
}

func (*jsoniterJSON) NewDecoder(r io.Reader) Decoder {
	return jsoniterAPI.NewDecoder(r)
}

func (*jsoniterJSON) NewEncoder(w io.Writer) Encoder {
	return jsoniterAPI.NewEncoder(w)
}
