package store

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnchoredFoldMatchesWholeValueCaseInsensitively(t *testing.T) {
	pattern := anchoredFold("Paris")
	assert.Equal(t, "^Paris$", pattern.Pattern)
	assert.Equal(t, "i", pattern.Options)

	re, err := regexp.Compile("(?i)" + pattern.Pattern)
	require.NoError(t, err)

	assert.True(t, re.MatchString("paris"))
	assert.True(t, re.MatchString("PARIS"))
	assert.False(t, re.MatchString("Paris2"))
	assert.False(t, re.MatchString("South Paris"))
}

func TestAnchoredFoldQuotesRegexMetacharacters(t *testing.T) {
	pattern := anchoredFold("St. Louis")

	re, err := regexp.Compile("(?i)" + pattern.Pattern)
	require.NoError(t, err)

	assert.True(t, re.MatchString("st. louis"))
	assert.False(t, re.MatchString("stx louis"))
}
