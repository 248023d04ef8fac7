package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const trainsCSV = `Train Number,Train Name,Train Type,Train Priority,Climatic Delays Mins,Urgency Score,Duration Mins
12951,Mumbai Rajdhani,Rajdhani,2,15,8.0,960
12259,Sealdah Duronto,Duronto,5,30,8.0,1020
12002,Bhopal Shatabdi,Shatabdi,9,5,3.5,480
`

func writeInput(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "trains.csv")
	require.NoError(t, os.WriteFile(path, []byte(trainsCSV), 0o600))
	return path
}

func runTool(args ...string) (int, string, string) {
	var stdout, stderr bytes.Buffer
	code := run(args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestRank(t *testing.T) {
	input := writeInput(t)

	code, out, _ := runTool("rank", "--input", input)
	require.Equal(t, 0, code)
	assert.Equal(t, "🚄 Sealdah Duronto | Urgency: 8.0\n🚄 Mumbai Rajdhani | Urgency: 8.0\n🚄 Bhopal Shatabdi | Urgency: 3.5\n", out)

	code, out, _ = runTool("rank", "--input", input, "--types", "Rajdhani,Shatabdi", "--top", "1")
	require.Equal(t, 0, code)
	assert.Equal(t, "🚄 Mumbai Rajdhani | Urgency: 8.0\n", out)

	code, out, _ = runTool("rank", "--input", input, "--min-urgency", "5")
	require.Equal(t, 0, code)
	assert.NotContains(t, out, "Shatabdi")

	code, out, _ = runTool("rank", "--input", input, "--types", "")
	require.Equal(t, 0, code)
	assert.Empty(t, out)
}

func TestRankErrors(t *testing.T) {
	code, _, stderr := runTool("rank")
	assert.Equal(t, 2, code)
	assert.Contains(t, stderr, "--input")

	code, _, _ = runTool("rank", "--input", writeInput(t), "--min-urgency", "12")
	assert.Equal(t, 2, code)

	code, _, stderr = runTool("rank", "--input", filepath.Join(t.TempDir(), "missing.csv"))
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "error:")
}

func TestConvertRoundTrip(t *testing.T) {
	input := writeInput(t)
	table := filepath.Join(t.TempDir(), "trains.cbor")

	code, out, _ := runTool("convert", "--input", input, "--output", table)
	require.Equal(t, 0, code)
	assert.Contains(t, out, "wrote 3 rows")

	code, out, _ = runTool("rank", "--input", table, "--top", "1")
	require.Equal(t, 0, code)
	assert.Equal(t, "🚄 Sealdah Duronto | Urgency: 8.0\n", out)

	code, _, _ = runTool("convert", "--input", input, "--output", filepath.Join(t.TempDir(), "trains.pkl"))
	assert.Equal(t, 1, code)
}

func TestSummary(t *testing.T) {
	code, out, _ := runTool("summary", "--input", writeInput(t))
	require.Equal(t, 0, code)
	assert.Contains(t, out, "Max urgency:         8.00")
	assert.Contains(t, out, "Min urgency:         3.50")
	assert.Contains(t, out, "Avg duration (mins): 820")
	assert.Contains(t, out, "Total trains:        3")
}

func TestUnknownCommand(t *testing.T) {
	code, _, stderr := runTool("explode")
	assert.Equal(t, 2, code)
	assert.Contains(t, stderr, "unknown command")

	code, out, _ := runTool("help")
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "usage:")
}

func TestSeedRequiresDatabase(t *testing.T) {
	t.Setenv("POSTGRES_HOST", "")
	code, _, stderr := runTool("seed", "--input", writeInput(t))
	assert.Equal(t, 2, code)
	assert.Contains(t, stderr, "POSTGRES_HOST")
}
