package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dropgrip/internal/eventbus"
)

const sample = `
version = 1
title = "Order"

[ui]
watch_config = false
mouse = true

[[dropdowns]]
name = "size"
label = "Size"
placeholder = "Pick a size"
max_height = 4
options = [
  { value = "s", label = "Small" },
  { value = "m", label = "Medium" },
]

[[dropdowns]]
name = "extras"
multiple = true
search = true
portal = true
outlined = true
options = [{ value = "ice", label = "Ice" }]
`

func TestParse(t *testing.T) {
	cfg, err := Parse([]byte(sample))
	require.NoError(t, err)

	assert.Equal(t, "Order", cfg.Title)
	assert.False(t, cfg.UISettings.WatchConfig)
	assert.True(t, cfg.UISettings.Mouse)
	require.Len(t, cfg.Dropdowns, 2)

	size, ok := cfg.Dropdown("size")
	require.True(t, ok)
	assert.Equal(t, "Pick a size", size.Placeholder)
	assert.Equal(t, 4, size.MaxHeight)
	assert.Len(t, size.Options, 2)
	assert.Equal(t, "Medium", size.Options[1].Label)

	extras, ok := cfg.Dropdown("extras")
	require.True(t, ok)
	assert.True(t, extras.Multiple)
	assert.True(t, extras.Search)
	assert.True(t, extras.Portal)
	assert.True(t, extras.Outlined)

	_, ok = cfg.Dropdown("missing")
	assert.False(t, ok)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"duplicate name", `
[[dropdowns]]
name = "a"
[[dropdowns]]
name = "a"
`},
		{"duplicate value", `
[[dropdowns]]
name = "a"
options = [{ value = "x", label = "X" }, { value = "x", label = "Y" }]
`},
		{"negative height", `
[[dropdowns]]
name = "a"
max_height = -1
`},
		{"bad toml", `[[dropdowns`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			assert.Error(t, err)
		})
	}
}

func TestDefaultConfigIsValid(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())
}

func TestLoadFallsBackToDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.toml")
	svc := NewConfigServiceWithPath(path, nil)

	cfg, err := svc.Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	bus := eventbus.New()
	defer bus.Close()

	saved := make(chan eventbus.DomainEvent, 1)
	loaded := make(chan eventbus.DomainEvent, 1)
	bus.Subscribe(eventbus.EventConfigSaved, func(e eventbus.DomainEvent) { saved <- e })
	bus.Subscribe(eventbus.EventConfigLoaded, func(e eventbus.DomainEvent) { loaded <- e })

	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	svc := NewConfigServiceWithPath(path, bus)
	assert.Equal(t, path, svc.Path())

	require.NoError(t, svc.Save(DefaultConfig()))
	cfg, err := svc.Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)

	select {
	case e := <-saved:
		assert.Equal(t, path, e.(eventbus.ConfigSavedEvent).Path)
	case <-time.After(time.Second):
		t.Fatal("no ConfigSaved event")
	}
	select {
	case e := <-loaded:
		assert.Equal(t, 2, e.(eventbus.ConfigLoadedEvent).Dropdowns)
	case <-time.After(time.Second):
		t.Fatal("no ConfigLoaded event")
	}
}

func TestLoadReportsInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("title = "), 0644))

	_, err := NewConfigServiceWithPath(path, nil).Load()
	assert.Error(t, err)
}
