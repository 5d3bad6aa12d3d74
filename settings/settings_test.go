package settings

import (
	"testing"

	"github.com/quasilyte/gdata/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openStore(t *testing.T) *gdata.Manager {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("XDG_DATA_HOME", dir)
	t.Setenv("XDG_CONFIG_HOME", dir)

	store, err := gdata.Open(gdata.Config{AppName: "flagrun_test"})
	require.NoError(t, err)
	return store
}

func TestDefaults(t *testing.T) {
	m := New(nil)
	assert.Equal(t, Default(), m.Settings())
	assert.False(t, m.Persistent())
}

func TestMemoryOnlyToggles(t *testing.T) {
	m := New(nil)

	assert.True(t, m.ToggleMute())
	assert.False(t, m.ToggleMute())
	assert.True(t, m.ToggleFullscreen())
	assert.NoError(t, m.Save())

	m.SetVolume(3)
	assert.Equal(t, 1.0, m.Settings().Volume)
	m.SetVolume(-1)
	assert.Equal(t, 0.0, m.Settings().Volume)
}

func TestGain(t *testing.T) {
	m := New(nil)
	assert.Equal(t, 0.8, m.Gain())

	m.SetVolume(0.5)
	assert.Equal(t, 0.5, m.Gain())

	m.ToggleMute()
	assert.Zero(t, m.Gain())
	m.ToggleMute()
	assert.Equal(t, 0.5, m.Gain())
}

func TestPersistAcrossManagers(t *testing.T) {
	store := openStore(t)

	first := New(store)
	require.True(t, first.Persistent())
	first.ToggleMute()
	first.SetVolume(0.25)

	second := New(store)
	assert.Equal(t, Settings{Volume: 0.25, Muted: true}, second.Settings())
}

func TestLoadCorruptFallsBackToDefaults(t *testing.T) {
	store := openStore(t)
	require.NoError(t, store.SaveObjectProp(settingsObject, settingsProperty, []byte("volume: [")))

	m := New(store)
	assert.Equal(t, Default(), m.Settings())
	assert.Error(t, m.Load())
}
