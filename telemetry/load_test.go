package telemetry

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0644))
}

func TestLoadMissingFile(t *testing.T) {
	dir := t.TempDir()
	s, res, err := Load(dir, Timeout.File(0), false)
	require.NoError(t, err)
	require.True(t, res.Missing)
	require.True(t, s.Empty())
	require.Equal(t, 0, len(s.Y))
}

func TestLoadParsesRows(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "client.rps.0.csv", "1700000000000000000,100\n1700000001000000000, 150.5\n\n")
	s, res, err := Load(dir, IncomingRate.File(0), false)
	require.NoError(t, err)
	require.False(t, res.Missing)
	require.Equal(t, 2, res.Rows)
	require.Equal(t, []float64{1700000000000000000, 1700000001000000000}, s.X)
	require.Equal(t, []float64{100, 150.5}, s.Y)
}

func TestLoadSkipsMalformedRows(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "f.csv", "1,2\nbogus\n3,x\n4,5\n")
	s, res, err := Load(dir, "f.csv", false)
	require.NoError(t, err)
	require.Equal(t, []float64{1, 4}, s.X)
	require.Equal(t, 4, res.Rows)
	require.Equal(t, 2, res.Malformed)
	require.Len(t, res.Errors, 2)
	require.Equal(t, 2, res.Errors[0].Line)
	require.Equal(t, 3, res.Errors[1].Line)
}

func TestLoadKeepsBoundedErrors(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "f.csv", strings.Repeat("nope\n", 20))
	_, res, err := Load(dir, "f.csv", false)
	require.NoError(t, err)
	require.Equal(t, 20, res.Malformed)
	require.Len(t, res.Errors, maxKeptErrors)
}

func TestLoadStrictAborts(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "f.csv", "1,2\n3\n")
	_, _, err := Load(dir, "f.csv", true)
	require.ErrorIs(t, err, ErrStrict)
	var rerr *RowError
	require.True(t, errors.As(err, &rerr))
	require.Equal(t, 2, rerr.Line)
	require.Equal(t, "3", rerr.Text)
}

func TestLoadRun(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, Latency.File(0), "10,0.5\n20,0.7\n")
	writeFile(t, dir, Timeout.File(0), "15,1\nbad row\n")

	reps, err := LoadRun(dir, 1, false)
	require.NoError(t, err)
	require.Len(t, reps, 1)
	r := reps[0]
	require.Equal(t, 0, r.Index)
	require.Equal(t, []float64{0.5, 0.7}, r.Get(Latency).Y)
	require.Equal(t, []float64{15}, r.Get(Timeout).X)
	require.Equal(t, 1, r.Malformed())
	require.Len(t, r.Missing(), len(Channels)-2)
	require.NotContains(t, r.Missing(), Latency)

	_, err = LoadRun(dir, 0, false)
	require.Error(t, err)
}

func TestChannelFile(t *testing.T) {
	require.Equal(t, "client.rq.timeout_origin.0.csv", TimeoutOrigin.File(0))
	require.Equal(t, "server.expected_latency.3.csv", ExpectedLatency.File(3))
}

func TestLoadSkipsNonFinite(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "f.csv", "1,2\n2,NaN\n3,Inf\n-Infinity,4\n5,6\n")
	s, res, err := Load(dir, "f.csv", false)
	require.NoError(t, err)
	require.Equal(t, []float64{1, 5}, s.X)
	require.Equal(t, []float64{2, 6}, s.Y)
	require.Equal(t, 3, res.Malformed)

	_, _, err = Load(dir, "f.csv", true)
	var rerr *RowError
	require.True(t, errors.As(err, &rerr))
	require.Equal(t, 2, rerr.Line)
}

func TestLoadSkipsLongRows(t *testing.T) {
	dir := t.TempDir()
	long := strings.Repeat("9", 70000)
	writeFile(t, dir, "f.csv", "1,2\n"+long+"\n3,4\n"+long)
	s, res, err := Load(dir, "f.csv", false)
	require.NoError(t, err)
	require.Equal(t, []float64{1, 3}, s.X)
	require.Equal(t, 4, res.Rows)
	require.Equal(t, 2, res.Malformed)
	require.ErrorIs(t, res.Errors[0], errRowTooLong)
	require.Equal(t, 2, res.Errors[0].Line)
	require.Equal(t, 4, res.Errors[1].Line)
	require.Len(t, res.Errors[0].Text, maxRowText)

	_, _, err = Load(dir, "f.csv", true)
	require.ErrorIs(t, err, errRowTooLong)
}
