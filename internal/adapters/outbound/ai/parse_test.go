package ai

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseResponse_FullSections(t *testing.T) {
	material := ParseResponse(`**Explanation**: The service publishes a port that is already bound.
**Root Cause**: Another process owns the port.
**Fix**:
1. Stop the other process
2. Or change the published port
`)

	assert.Equal(t, "The service publishes a port that is already bound.", material.Explanation)
	assert.Equal(t, "Another process owns the port.", material.RootCause)
	require.Len(t, material.Steps, 2)
	assert.Equal(t, "Stop the other process", material.Steps[0])
	assert.Equal(t, "Or change the published port", material.Steps[1])
}

func TestParseResponse_BulletStyles(t *testing.T) {
	material := ParseResponse(`Fix:
- dash step
* star step
• bullet step
3. numbered step
`)

	assert.Equal(t, []string{
		"dash step", "star step", "bullet step", "numbered step",
	}, material.Steps)
}

func TestParseResponse_HeaderContentOnNextLine(t *testing.T) {
	material := ParseResponse(`Explanation:
The port mapping collides.
Root Cause:
Two services publish 8080.
`)

	assert.Equal(t, "The port mapping collides.", material.Explanation)
	assert.Equal(t, "Two services publish 8080.", material.RootCause)
}

func TestParseResponse_FirstMatchWins(t *testing.T) {
	material := ParseResponse(`Explanation: first answer
Explanation: second answer
`)

	assert.Equal(t, "first answer", material.Explanation)
}

func TestParseResponse_StepsOnlyAfterFixHeader(t *testing.T) {
	material := ParseResponse(`- premature step
Fix:
- real step
`)

	assert.Equal(t, []string{"real step"}, material.Steps)
}

func TestParseResponse_FallbackToFirst200Chars(t *testing.T) {
	raw := strings.Repeat("troubleshooting advice ", 20)
	material := ParseResponse(raw)

	assert.Len(t, material.Explanation, 200)
	assert.Equal(t, strings.TrimSpace(raw)[:200], material.Explanation)
	assert.Empty(t, material.Steps)
}

func TestParseResponse_ShortFallbackKeepsWhole(t *testing.T) {
	material := ParseResponse("just a sentence")
	assert.Equal(t, "just a sentence", material.Explanation)
}
