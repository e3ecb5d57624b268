package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecodeLaTeX(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`Jos{\'e}`, "Jos{é}"},
		{`Jos\'e`, "José"},
		{`Jos\'{e}`, "José"},
		{`{\AA}bo Akademi`, "{Å}bo Akademi"},
		{`M{\"u}ller`, "M{ü}ller"},
		{`Garc\'{\i}a`, "García"},
		{`Fran\c{c}ois`, "François"},
		{`Fran\c cois`, "François"},
		{`\v{S}koda`, "Škoda"},
		{`{\o}stfold`, "{ø}stfold"},
		{`Stra\ss{}e`, "Straße"},
		{`Erd\H{o}s`, "Erdős"},
		{`AT\&T`, "AT&T"},
		{`\emph{MIT}`, `\emph{MIT}`},
		{"plain text", "plain text"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, DecodeLaTeX(tt.in), tt.in)
	}
}

func TestDecodeLaTeXThenStripBraces(t *testing.T) {
	assert.Equal(t, "Åbo", StripBraces(DecodeLaTeX(`{\AA}bo`)))
	assert.Equal(t, "José", StripBraces(DecodeLaTeX(`Jos{\'e}`)))
}
