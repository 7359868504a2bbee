package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSample(t *testing.T) {
	now := func() int64 { return 42 }

	s, err := parseSample("1.5, 2, -3, 1000", now)
	require.NoError(t, err)
	assert.Equal(t, float32(1.5), s.X)
	assert.Equal(t, float32(-3), s.Z)
	assert.Equal(t, int64(1000), s.At)

	s, err = parseSample("0,0,0", now)
	require.NoError(t, err)
	assert.Equal(t, int64(42), s.At)

	_, err = parseSample("1,2", now)
	assert.Error(t, err)

	_, err = parseSample("a,b,c,1", now)
	assert.Error(t, err)
}

const shakeSamples = `# x,y,z,at
0,0,0,0
0,0,0,200
17,0,0,400
# debounced
99,0,0,450
`

func TestSenseRecordsShakes(t *testing.T) {
	db := tempDB(t)
	path := filepath.Join(t.TempDir(), "samples.csv")
	require.NoError(t, os.WriteFile(path, []byte(shakeSamples), 0o644))

	out, err := executeRoot(t, "sense", path, "--db", db)
	require.NoError(t, err)
	assert.Equal(t, "shake at 400\n4 samples, 1 shakes\n", out)

	out, err = executeRoot(t, "history", "--db", db)
	require.NoError(t, err)
	assert.Equal(t, "Shaken: 01/01/1970 at 00:00:00 UTC\n", out)
}

func TestSenseReadsStdin(t *testing.T) {
	cmd := NewRootCommand()
	out := &strings.Builder{}
	cmd.SetOut(out)
	cmd.SetErr(&strings.Builder{})
	cmd.SetIn(strings.NewReader(shakeSamples))
	cmd.SetArgs([]string{"sense", "--db", tempDB(t), "--format", "json"})

	require.NoError(t, cmd.Execute())
	assert.JSONEq(t, `{"status":"ok","data":{"samples":4,"shakes":[400]}}`, out.String())
}

func TestSenseMalformedLine(t *testing.T) {
	cmd := NewRootCommand()
	cmd.SetOut(&strings.Builder{})
	cmd.SetErr(&strings.Builder{})
	cmd.SetIn(strings.NewReader("0,0,0,0\nnot a sample\n"))
	cmd.SetArgs([]string{"sense", "--db", tempDB(t)})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}
