package diagnostics

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithDoesNotAlias(t *testing.T) {
	base := New(Warn, CodeRejected, "Element rejected").With("id", "a")
	other := base.With("kind", "banner")

	assert.Len(t, base.Evidence, 1)
	assert.Len(t, other.Evidence, 2)
	assert.Equal(t, "a", other.Evidence["id"])
}

func TestJSONShape(t *testing.T) {
	b, err := json.Marshal(New(Info, CodeRegistered, "Element registered"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"severity":"info","code":"ELEMENT.REGISTERED","summary":"Element registered"}`, string(b))
}
