package theme

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/achievo/internal/model"
	"github.com/nhle/achievo/tests/testutil"
)

func TestPriorityColor(t *testing.T) {
	assert.Equal(t, ColorRed, PriorityColor(model.PriorityHigh))
	assert.Equal(t, ColorYellow, PriorityColor(model.PriorityMedium))
	assert.Equal(t, ColorGreen, PriorityColor(model.PriorityLow))
	assert.Equal(t, ColorYellow, PriorityColor(model.Priority(0)))
}

func TestToggle(t *testing.T) {
	Apply(model.ThemeDark)
	assert.Equal(t, model.ThemeDark, Current())

	assert.Equal(t, model.ThemeLight, Toggle())
	assert.Equal(t, model.ThemeLight, Current())
	assert.Equal(t, model.ThemeDark, Toggle())
}

func TestLoadSave(t *testing.T) {
	ctx := context.Background()
	kv := testutil.NewTestStore(t)

	got, err := Load(ctx, kv, model.ThemeAuto)
	require.NoError(t, err)
	assert.Equal(t, model.ThemeAuto, got)

	require.NoError(t, Save(ctx, kv, model.ThemeLight))
	got, err = Load(ctx, kv, model.ThemeAuto)
	require.NoError(t, err)
	assert.Equal(t, model.ThemeLight, got)
}
