package jsonrs

import (
	"encoding/json"
	"io"
)

// stdJSON is the encoding/json implementation.
type stdJSON struct{}

func (*stdJSON) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (*stdJSON) MarshalIndent(v any, prefix, indent string) ([]byte, error) {
	return json.MarshalIndent(v, prefix, indent)
}

func (*stdJSON) MarshalToString(v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (*stdJSON) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

func (*stdJSON) NewDecoder(r io.Reader) Decoder {
	return json.NewDecoder(r)
}

func (*stdJSON) NewEncoder(w io.Writer) Encoder {
	return json.NewEncoder(w)
}
