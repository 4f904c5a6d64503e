package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/quitwise/internal/cli/clitest"
	"github.com/julianstephens/quitwise/internal/models"
	"github.com/julianstephens/quitwise/internal/validation"
)

func TestSmokeCmd(t *testing.T) {
	ctx, out, _ := clitest.NewContext(t)

	cmd := &SmokeCmd{Trigger: "coffee", Mood: "neutral", Notes: "after breakfast", NoPrompt: true}
	require.NoError(t, cmd.Run(ctx))

	assert.Contains(t, out.String(), "trigger: coffee")
	assert.Contains(t, out.String(), "Today: 1 cigarette(s)")
	assert.Equal(t, 1, ctx.Ledger.TodayStats().CigaretteCount)
}

func TestSmokeCmd_BlankTagsRejected(t *testing.T) {
	ctx, _, _ := clitest.NewContext(t)

	err := (&SmokeCmd{Trigger: " ", Mood: "sad", NoPrompt: true}).Run(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, validation.ErrInvalidInput)
	assert.Equal(t, 0, ctx.Ledger.TodayStats().CigaretteCount)
}

func TestSmokeCmd_DailyLimitWarning(t *testing.T) {
	ctx, out, _ := clitest.NewContext(t)
	limit := 1
	_, err := ctx.Ledger.UpdateSettings(models.SettingsUpdate{DailyLimit: &limit})
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		require.NoError(t, (&SmokeCmd{Trigger: "stress", Mood: "stressed", NoPrompt: true}).Run(ctx))
	}
	assert.Contains(t, out.String(), "Over your daily limit of 1")
}

func TestUndoCmd(t *testing.T) {
	ctx, out, _ := clitest.NewContext(t)

	require.NoError(t, (&UndoCmd{}).Run(ctx))
	assert.Contains(t, out.String(), "Nothing to undo.")

	require.NoError(t, (&SmokeCmd{Trigger: "habit", Mood: "neutral", NoPrompt: true}).Run(ctx))
	out.Reset()
	require.NoError(t, (&UndoCmd{}).Run(ctx))
	assert.Contains(t, out.String(), "Today: 0")
	assert.Empty(t, ctx.Ledger.SmokeEvents(models.TimeRange{}))
}

func TestCraveCmd(t *testing.T) {
	ctx, out, rec := clitest.NewContext(t)

	minutes := 4.0
	cmd := &CraveCmd{Intensity: 4, Mood: "stressed", Duration: &minutes, NoPrompt: true}
	require.NoError(t, cmd.Run(ctx))

	assert.Contains(t, out.String(), "intensity 4/5")
	assert.Contains(t, out.String(), "Achievement unlocked: Craving Warrior")
	assert.Len(t, rec.Toasts, 1)
	assert.Equal(t, 1, ctx.Ledger.TodayStats().CravingsResisted)
}

func TestCraveCmd_InvalidIntensity(t *testing.T) {
	ctx, _, _ := clitest.NewContext(t)

	for _, intensity := range []int{0, 6} {
		err := (&CraveCmd{Intensity: intensity, Mood: "sad", NoPrompt: true}).Run(ctx)
		assert.ErrorIs(t, err, validation.ErrInvalidInput, "intensity %d", intensity)
	}
	assert.Empty(t, ctx.Ledger.CravingEvents(models.TimeRange{}))
}

func TestLogCmd(t *testing.T) {
	ctx, out, _ := clitest.NewContext(t)
	require.NoError(t, (&SmokeCmd{Trigger: "social", Mood: "happy", NoPrompt: true}).Run(ctx))
	require.NoError(t, (&CraveCmd{Intensity: 2, Mood: "neutral", NoPrompt: true}).Run(ctx))

	tests := []struct {
		name    string
		cmd     LogCmd
		want    []string
		notWant []string
	}{
		{name: "all", cmd: LogCmd{}, want: []string{"Cigarettes (1)", "Cravings (1)", "social"}},
		{name: "smoke only", cmd: LogCmd{Smoke: true}, want: []string{"Cigarettes (1)"}, notWant: []string{"Cravings"}},
		{name: "cravings only", cmd: LogCmd{Cravings: true}, want: []string{"Cravings (1)", "2/5"}, notWant: []string{"Cigarettes"}},
		{name: "range before events", cmd: LogCmd{To: "2000-01-01"}, want: []string{"Cigarettes (0)", "Cravings (0)"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out.Reset()
			require.NoError(t, tt.cmd.Run(ctx))
			for _, w := range tt.want {
				assert.Contains(t, out.String(), w)
			}
			for _, w := range tt.notWant {
				assert.NotContains(t, out.String(), w)
			}
		})
	}
}

func TestLogCmd_BadRange(t *testing.T) {
	ctx, _, _ := clitest.NewContext(t)

	assert.Error(t, (&LogCmd{From: "yesterday"}).Run(ctx))
	assert.Error(t, (&LogCmd{From: "2026-10-14", To: "2026-10-01"}).Run(ctx))
}
