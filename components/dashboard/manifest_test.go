package dashboard

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleLayout = `
version: "1"
name: compact
areas:
  - code: backoffice.dashboard.main
    widgets:
      - id: orders
        definition: backoffice.widget.table
        configuration:
          table: orders
          page_size: 5
      - id: numbers
        definition: backoffice.widget.stats
`

func TestDecodeLayout(t *testing.T) {
	t.Parallel()
	doc, err := DecodeLayout(strings.NewReader(sampleLayout))
	require.NoError(t, err)
	assert.Equal(t, "compact", doc.Name)
	require.Len(t, doc.Areas, 1)
	require.Len(t, doc.Areas[0].Widgets, 2)
	assert.Equal(t, "orders", doc.Areas[0].Widgets[0].Configuration["table"])
	assert.Equal(t, 5, doc.Areas[0].Widgets[0].Configuration["page_size"])
}

func TestDecodeLayoutDefaultsVersion(t *testing.T) {
	t.Parallel()
	doc, err := DecodeLayout(strings.NewReader("areas: []\n"))
	require.NoError(t, err)
	assert.Equal(t, LayoutVersion, doc.Version)
}

func TestDecodeLayoutRejects(t *testing.T) {
	t.Parallel()
	cases := map[string]string{
		"empty":          "",
		"unknown key":    "version: \"1\"\ncolour: red\n",
		"bad version":    "version: \"9\"\nareas: []\n",
		"missing code":   "areas:\n  - widgets: []\n",
		"duplicate id":   "areas:\n  - code: a\n    widgets:\n      - {id: x, definition: d}\n  - code: b\n    widgets:\n      - {id: x, definition: d}\n",
		"no definition":  "areas:\n  - code: a\n    widgets:\n      - {id: x}\n",
		"duplicate area": "areas:\n  - code: a\n  - code: a\n",
	}
	for name, input := range cases {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			_, err := DecodeLayout(strings.NewReader(input))
			assert.Error(t, err)
		})
	}
}

func TestFileLayoutRereadsFile(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "layout.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleLayout), 0o600))

	source := FileLayout{Path: path}
	doc, err := source.Layout(context.Background())
	require.NoError(t, err)
	assert.Equal(t, path, doc.Source)
	assert.Len(t, doc.Areas[0].Widgets, 2)

	require.NoError(t, os.WriteFile(path, []byte("version: \"1\"\nareas: []\n"), 0o600))
	doc, err = source.Layout(context.Background())
	require.NoError(t, err)
	assert.Empty(t, doc.Areas)
}

func TestReadLayoutMissingFile(t *testing.T) {
	t.Parallel()
	_, err := ReadLayout(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestStaticLayoutDefaults(t *testing.T) {
	t.Parallel()
	doc, err := StaticLayout{}.Layout(context.Background())
	require.NoError(t, err)
	assert.Len(t, doc.Areas, 3)
}
