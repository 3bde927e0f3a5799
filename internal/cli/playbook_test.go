package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trade-journal/internal/models"
)

func TestParseRuleSpec(t *testing.T) {
	rule, err := parseRuleSpec("before!:Trend up on H1")
	require.NoError(t, err)
	assert.Equal(t, models.PhaseBefore, rule.Phase)
	assert.True(t, rule.Required)
	assert.Equal(t, "Trend up on H1", rule.Text)

	rule, err = parseRuleSpec("During: Enter at the EMA")
	require.NoError(t, err)
	assert.Equal(t, models.PhaseDuring, rule.Phase)
	assert.False(t, rule.Required)
	assert.Equal(t, "Enter at the EMA", rule.Text)
}

func TestParseRuleSpecRejectsBadInput(t *testing.T) {
	_, err := parseRuleSpec("no separator")
	assert.ErrorContains(t, err, "want phase:text")

	_, err = parseRuleSpec("sometime:do the thing")
	assert.ErrorContains(t, err, "unknown rule phase")
}
