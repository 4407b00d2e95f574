package jsonrs

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rudderlabs/rudder-go-kit/config"
)

func TestImplementations(t *testing.T) {
	type payload struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}

	for _, library := range []string{StdLib, Jsoniter} {
		t.Run(library, func(t *testing.T) {
			conf := config.New()
			conf.Set("Json.Library", library)
			j := New(conf)

			in := payload{Name: "orders", Count: 3}

			b, err := j.Marshal(in)
			require.NoError(t, err)
			require.JSONEq(t, `{"name":"orders","count":3}`, string(b))

			s, err := j.MarshalToString(in)
			require.NoError(t, err)
			require.JSONEq(t, string(b), s)

			var out payload
			require.NoError(t, j.Unmarshal(b, &out))
			require.Equal(t, in, out)

			var buf bytes.Buffer
			require.NoError(t, j.NewEncoder(&buf).Encode(in))
			var decoded payload
			require.NoError(t, j.NewDecoder(strings.NewReader(buf.String())).Decode(&decoded))
			require.Equal(t, in, decoded)
		})
	}
}

func TestDefaultLibrary(t *testing.T) {
	require.IsType(t, &jsoniterJSON{}, New(config.New()))
}
