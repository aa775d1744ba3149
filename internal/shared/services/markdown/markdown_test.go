package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderer_Render(t *testing.T) {
	r := NewRenderer()

	out, err := r.Render([]byte("# Risks\n\n1. **Code** exploit\n2. Exchange rate"))
	require.NoError(t, err)

	assert.Contains(t, out, `<h1 id="risks">Risks</h1>`)
	assert.Contains(t, out, "<strong>Code</strong>")
	assert.Contains(t, out, "<ol>")
}

func TestRenderer_StripsScripts(t *testing.T) {
	r := NewRenderer()

	out, err := r.Render([]byte("hello <script>alert(1)</script> [x](javascript:alert(1))"))
	require.NoError(t, err)

	assert.NotContains(t, out, "<script>")
	assert.NotContains(t, out, "javascript:")
}
