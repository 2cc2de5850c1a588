package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/combat-engine/internal/domain/damage"
	dnderr "github.com/KirkDiggler/combat-engine/internal/errors"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestParseResistance(t *testing.T) {
	tests := []struct {
		raw     string
		want    damage.Resistance
		wantErr bool
	}{
		{raw: "fire", want: damage.Resistance{Match: "fire", Effect: damage.EffectResistance, Label: "cli"}},
		{raw: "Poison:immunity", want: damage.Resistance{Match: "poison", Effect: damage.EffectImmunity, Label: "cli"}},
		{raw: "all:numeric:3", want: damage.Resistance{Match: "all", Effect: damage.EffectNumeric, Value: 3, Label: "cli"}},
		{raw: "all:numeric:-2", want: damage.Resistance{Match: "all", Effect: damage.EffectNumeric, Value: -2, Label: "cli"}},
		{raw: "fire:shrug", wantErr: true},
		{raw: "all:numeric:x", wantErr: true},
		{raw: ":resistance", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := parseResistance(tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, dnderr.IsInvalidArgument(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveCommand_BearTotem(t *testing.T) {
	out, err := execute(t, "resolve", "--amount", "12", "--type", "slashing", "--condition", "rage_bear", "--max-hp", "35")
	require.NoError(t, err)

	assert.Contains(t, out, "12 slashing -> 6")
	assert.Contains(t, out, "rage_bear")
	assert.Contains(t, out, "severity:")
}

func TestFeaturesCommand(t *testing.T) {
	out, err := execute(t, "features", "--class", "fighter", "--level", "2")
	require.NoError(t, err)

	assert.Contains(t, out, "second_wind")
	assert.Contains(t, out, "action_surge")
}

func TestFeaturesCommand_UnknownClass(t *testing.T) {
	_, err := execute(t, "features", "--class", "bard")
	require.Error(t, err)
	assert.True(t, dnderr.IsNotFound(err))
}
