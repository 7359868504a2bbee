package harness

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScenarios_Golden(t *testing.T) {
	files, err := filepath.Glob("testdata/scenarios/*.yaml")
	require.NoError(t, err)
	require.NotEmpty(t, files)

	for _, file := range files {
		t.Run(filepath.Base(file), func(t *testing.T) {
			scenario, err := LoadScenario(file)
			require.NoError(t, err)

			result, err := RunWithGolden(t, scenario)
			require.NoError(t, err)
			assert.True(t, result.Pass, "assertion failures: %v", result.Errors)
		})
	}
}

func TestMarshalSnapshot_TrailingNewline(t *testing.T) {
	result := NewResult()
	data, err := MarshalSnapshot("empty", result)
	require.NoError(t, err)
	assert.Equal(t, byte('\n'), data[len(data)-1])
	assert.Contains(t, string(data), `"trace": []`)
	assert.Contains(t, string(data), `"history": []`)
}
