package settings

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/quitwise/internal/cli/clitest"
)

func ptr[T any](v T) *T { return &v }

func TestSettingsCmd_List(t *testing.T) {
	ctx, out, _ := clitest.NewContext(t)

	require.NoError(t, (&SettingsCmd{List: true}).Run(ctx))
	assert.Contains(t, out.String(), "Pack Cost:             $12.00")
	assert.Contains(t, out.String(), "Cost Per Cigarette:    $0.60")
	assert.Contains(t, out.String(), "Daily Limit:           none")
}

func TestSettingsCmd_Update(t *testing.T) {
	tests := []struct {
		name  string
		cmd   SettingsCmd
		check func(t *testing.T, out string)
	}{
		{
			name:  "pack cost",
			cmd:   SettingsCmd{PackCost: ptr(15.0)},
			check: func(t *testing.T, out string) { assert.Contains(t, out, "Pack Cost:             $15.00") },
		},
		{
			name:  "pack size",
			cmd:   SettingsCmd{PerPack: ptr(25)},
			check: func(t *testing.T, out string) { assert.Contains(t, out, "Cigarettes Per Pack:   25") },
		},
		{
			name:  "toggles",
			cmd:   SettingsCmd{Notifications: ptr(false), DarkMode: ptr(true)},
			check: func(t *testing.T, out string) { assert.Contains(t, out, "Dark Mode:             true") },
		},
		{
			name:  "daily limit",
			cmd:   SettingsCmd{DailyLimit: ptr(5)},
			check: func(t *testing.T, out string) { assert.Contains(t, out, "Daily Limit:           5") },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, out, _ := clitest.NewContext(t)
			require.NoError(t, tt.cmd.Run(ctx))
			assert.Contains(t, out.String(), "Settings updated successfully.")
			tt.check(t, out.String())
		})
	}
}

func TestSettingsCmd_ClearDailyLimit(t *testing.T) {
	ctx, _, _ := clitest.NewContext(t)
	require.NoError(t, (&SettingsCmd{DailyLimit: ptr(3)}).Run(ctx))
	require.NoError(t, (&SettingsCmd{NoDailyLimit: true}).Run(ctx))
	assert.Nil(t, ctx.Ledger.Settings().DailyLimit)
}

func TestSettingsCmd_Invalid(t *testing.T) {
	ctx, _, _ := clitest.NewContext(t)

	assert.Error(t, (&SettingsCmd{PerPack: ptr(0)}).Run(ctx))
	assert.Error(t, (&SettingsCmd{PackCost: ptr(-1.0)}).Run(ctx))
	assert.Equal(t, 20, ctx.Ledger.Settings().CigarettesPerPack)
}

func TestSettingsCmd_NoChanges(t *testing.T) {
	ctx, out, _ := clitest.NewContext(t)

	require.NoError(t, (&SettingsCmd{}).Run(ctx))
	assert.Contains(t, out.String(), "No changes specified.")
}
