package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name           string
		settings       IndexSettings
		expectedErrors int
		description    string
	}{
		{
			name:           "valid defaults",
			settings:       IndexSettings{Name: "pages", MinTermLength: 2, TitleBonus: 2},
			expectedErrors: 0,
			description:    "Default settings should validate",
		},
		{
			name:           "empty name",
			settings:       IndexSettings{Name: "   "},
			expectedErrors: 1,
			description:    "Whitespace-only names are rejected",
		},
		{
			name:           "path separator in name",
			settings:       IndexSettings{Name: "a/b"},
			expectedErrors: 1,
			description:    "Index names become directory names",
		},
		{
			name:           "leading dot in name",
			settings:       IndexSettings{Name: ".staging"},
			expectedErrors: 1,
			description:    "Dot-prefixed directories are reserved for the engine",
		},
		{
			name:           "negative values",
			settings:       IndexSettings{Name: "pages", MinTermLength: -1, TitleBonus: -3},
			expectedErrors: 2,
			description:    "Both negative knobs are reported",
		},
		{
			name:           "duplicate and empty stop words",
			settings:       IndexSettings{Name: "pages", StopWords: []string{"the", "the", " "}},
			expectedErrors: 2,
			description:    "Duplicates and blanks are reported separately",
		},
		{
			name:           "explicitly empty stop words",
			settings:       IndexSettings{Name: "pages", StopWords: []string{}},
			expectedErrors: 0,
			description:    "An empty list disables filtering and is valid",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errors := tt.settings.Validate()
			assert.Len(t, errors, tt.expectedErrors, "%s: %v", tt.description, errors)
		})
	}
}

func TestApplyDefaults(t *testing.T) {
	settings := IndexSettings{Name: "pages"}
	settings.ApplyDefaults()

	assert.Equal(t, DefaultMinTermLength, settings.MinTermLength)
	assert.Equal(t, DefaultTitleBonus, settings.TitleBonus)
	assert.Nil(t, settings.StopWords, "nil stop words must survive so the default list is selected")

	custom := IndexSettings{Name: "pages", MinTermLength: 3, TitleBonus: 5, StopWords: []string{}}
	custom.ApplyDefaults()
	assert.Equal(t, 3, custom.MinTermLength)
	assert.Equal(t, 5, custom.TitleBonus)
	assert.NotNil(t, custom.StopWords)
}

func TestLoad(t *testing.T) {
	t.Run("defaults without a file", func(t *testing.T) {
		cfg, err := Load("")
		require.NoError(t, err)
		assert.Equal(t, 8080, cfg.Server.Port)
		assert.Equal(t, "pages", cfg.Index.Name)
		assert.Equal(t, DefaultTitleBonus, cfg.Index.TitleBonus)
	})

	t.Run("yaml file with env override", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		content := `
server:
  port: 9090
dataDir: /tmp/idx
corpus:
  dir: ./input_pages
index:
  name: wiki
  minTermLength: 3
  titleBonus: 4
  stopWords: [the, of]
`
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
		t.Setenv("PAGESEARCH_PORT", "7070")

		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, 7070, cfg.Server.Port)
		assert.Equal(t, "/tmp/idx", cfg.DataDir)
		assert.Equal(t, "./input_pages", cfg.Corpus.Dir)
		assert.Equal(t, ".html", cfg.Corpus.Extension)
		assert.Equal(t, "wiki", cfg.Index.Name)
		assert.Equal(t, 3, cfg.Index.MinTermLength)
		assert.Equal(t, 4, cfg.Index.TitleBonus)
		assert.Equal(t, []string{"the", "of"}, cfg.Index.StopWords)
	})

	t.Run("invalid settings are rejected", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("index:\n  name: \"a/b\"\n"), 0o600))

		_, err := Load(path)
		assert.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})
}
