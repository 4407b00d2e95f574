// Package jsonrs is the JSON entrypoint for the toolkit. All first-party code
// marshals through it so the implementation can be swapped by configuration
// without touching call sites.
package jsonrs

import (
	"io"

	"github.com/rudderlabs/rudder-go-kit/config"
)

const (
	StdLib   = "std"
	Jsoniter = "jsoniter"
)

// JSON is the interface each implementation satisfies.
type JSON interface {
	Marshal(v any) ([]byte, error)
	MarshalIndent(v any, prefix, indent string) ([]byte, error)
	MarshalToString(v any) (string, error)
	Unmarshal(data []byte, v any) error
	NewDecoder(r io.Reader) Decoder
	NewEncoder(w io.Writer) Encoder
}

// Decoder reads JSON values from a stream.
type Decoder interface {
	Decode(v any) error
}

// Encoder writes JSON values to a stream.
type Encoder interface {
	Encode(v any) error
}

// Default is the implementation the package-level functions delegate to.
var Default = New(config.Default)

// New returns the JSON implementation selected by Json.Library.
func New(conf *config.Config) JSON {
	switch conf.GetString("Json.Library", Jsoniter) {
	case StdLib:
		return &stdJSON{}
	default:
		return &jsoniterJSON{}
	}
}

// Reset re-selects Default from configuration.
func Reset(conf *config.Config) {
	Default = New(conf)
}

func Marshal(v any) ([]byte, error) {
	return Default.Marshal(v)
}

func MarshalIndent(v any, prefix, indent string) ([]byte, error) {
	return Default.MarshalIndent(v, prefix, indent)
}

func MarshalToString(v any) (string, error) {
	return Default.MarshalToString(v)
}

func Unmarshal(data []byte, v any) error {
	return Default.Unmarshal(data, v)
}

func NewDecoder(r io.Reader) Decoder {
	return Default.NewDecoder(r)
}

func NewEncoder(w io.Writer) Encoder {
	return Default.NewEncoder(w)
}
