package configutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

type sample struct {
	Name  string   `json:"name"`
	Pages int      `json:"pages"`
	Tags  []string `json:"tags"`
}

func writeFile(t *testing.T, path, contents string) {
	t.Helper()
	err := os.WriteFile(path, []byte(contents), 0600)
	require.NoError(t, err)
}

func TestLocalName(t *testing.T) {
	testCases := []struct {
		name     string
		expected string
	}{
		{name: "brewmine.json5", expected: "brewmine.local.json5"},
		{name: "conf/telemetry.json5", expected: filepath.Join("conf", "telemetry.local.json5")},
		{name: "noext", expected: "noext.local"},
	}
	for _, test := range testCases {
		require.Equal(t, test.expected, LocalName(test.name))
	}
}

func TestReadConfigMergesLocal(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "brewmine.json5"), `{
		// comments are allowed
		name: "base",
		pages: 2,
		tags: ["a"],
	}`)
	writeFile(t, filepath.Join(dir, "brewmine.local.json5"), `{ pages: 6 }`)

	cfg, err := ReadConfig[sample](filepath.Join(dir, "brewmine.json5"))
	require.NoError(t, err)
	require.Equal(t, "base", cfg.Name)
	require.Equal(t, 6, cfg.Pages)
	require.Equal(t, []string{"a"}, cfg.Tags)
}

func TestReadConfigMissing(t *testing.T) {
	_, err := ReadConfig[sample](filepath.Join(t.TempDir(), "brewmine.json5"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestReadConfigInvalid(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "brewmine.json5"), `{ name: `)

	_, err := ReadConfig[sample](filepath.Join(dir, "brewmine.json5"))
	require.Error(t, err)
	require.NotErrorIs(t, err, os.ErrNotExist)
}

func TestReadRecursively(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0777))
	writeFile(t, filepath.Join(root, "telemetry.json5"), `{ name: "root" }`)

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(nested))
	defer os.Chdir(wd)

	cfg, err := ReadRecursively[sample]("telemetry.json5")
	require.NoError(t, err)
	require.Equal(t, "root", cfg.Name)
}
