package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phanxgames/nestbox"
)

func TestFormatTreePlain(t *testing.T) {
	store := nestbox.NewStore()
	root := store.CreateBox(nestbox.NoBox, nestbox.Rect{X: 16, Y: 16, W: 64, H: 64})
	store.Box(root).Open()
	store.CreateBox(root, nestbox.Rect{X: 16, Y: 18, W: 16, H: 12})
	store.CreateBox(root, nestbox.Rect{X: 2.5, Y: 4, W: 8, H: 6})

	want := "#1 16,16 64x64 open x8\n" +
		"  #2 16,18 16x12 closed\n" +
		"  #3 2.5,4 8x6 closed\n"
	assert.Equal(t, want, formatTree(store, false))
}

func TestFormatTreeStyledKeepsContent(t *testing.T) {
	store := nestbox.NewEditor(nestbox.EditorConfig{}).Store()
	got := formatTree(store, true)
	assert.Contains(t, got, "#1")
	assert.Contains(t, got, "16,16 64x64")
	assert.Contains(t, got, "open x1")
}

func TestTreeCommandAfterScript(t *testing.T) {
	isolateConfig(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "script.json")
	require.NoError(t, os.WriteFile(path, []byte(createAndOpenScript), 0o644))

	var stdout bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs([]string{"tree", path})
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	require.NoError(t, rootCmd.Execute())
	out := stdout.String()
	for _, want := range []string{"#1", "16,16 64x64", "#2", "16,18 16x12", "open x8"} {
		assert.Contains(t, out, want)
	}

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "tree must not write snapshots")
}
