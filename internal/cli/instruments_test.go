package cli

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trade-journal/internal/config"
	apperrors "trade-journal/internal/errors"
	"trade-journal/internal/models"
)

func TestValidateCustomInstrument(t *testing.T) {
	valid := models.CustomInstrument{
		Symbol: "MYFUT", Category: models.Futures, Multiplier: 2,
		TickSize: 0.25, DisplayDecimals: 2,
	}
	require.NoError(t, validateCustomInstrument(valid))

	bad := valid
	bad.Category = "sideways"
	err := validateCustomInstrument(bad)
	require.Error(t, err)
	var verr *apperrors.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "category", verr.Field)

	bad = valid
	bad.Multiplier = 0
	require.ErrorAs(t, validateCustomInstrument(bad), &verr)
	assert.Equal(t, "multiplier", verr.Field)

	bad = valid
	bad.TickSize = -1
	assert.Error(t, validateCustomInstrument(bad))
}

func TestDisplayPrefs(t *testing.T) {
	app := &App{Config: &config.Config{Display: config.DisplayConfig{
		Format: "bogus", Currency: "EUR",
	}}}
	cmd := &cobra.Command{}
	cmd.Flags().String("format", "", "")
	cmd.Flags().String("currency", "", "")

	// An unknown persisted format falls back to dollars.
	format, curr := app.displayPrefs(cmd)
	assert.Equal(t, models.FormatDollars, format)
	assert.Equal(t, "EUR", curr)

	require.NoError(t, cmd.Flags().Set("format", "pips"))
	require.NoError(t, cmd.Flags().Set("currency", "GBP"))
	format, curr = app.displayPrefs(cmd)
	assert.Equal(t, models.FormatPips, format)
	assert.Equal(t, "GBP", curr)
}
