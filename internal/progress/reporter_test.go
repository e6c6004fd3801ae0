package progress_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/catchbasin/flowroute/internal/progress"
)

func newTestReporter(buf *bytes.Buffer, opts ...progress.Option) *progress.Reporter {
	logger := slog.New(slog.NewJSONHandler(buf, nil))
	opts = append([]progress.Option{progress.WithLogger(logger)}, opts...)
	return progress.New(opts...)
}

func TestReport_FirstCallAlwaysEmits(t *testing.T) {
	var buf bytes.Buffer
	r := newTestReporter(&buf, progress.WithInterval(time.Hour))

	r.Report(1, 10)
	require.NotZero(t, buf.Len())

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	require.Equal(t, float64(1), line["done"])
	require.Equal(t, float64(10), line["total"])
}

func TestReport_ThrottlesWithinInterval(t *testing.T) {
	var buf bytes.Buffer
	r := newTestReporter(&buf, progress.WithInterval(time.Hour))

	r.Report(1, 10)
	firstLen := buf.Len()
	r.Report(2, 10)
	require.Equal(t, firstLen, buf.Len(), "second call within the interval must not emit")
}

func TestDone_AlwaysEmitsRegardlessOfThrottle(t *testing.T) {
	var buf bytes.Buffer
	r := newTestReporter(&buf, progress.WithInterval(time.Hour))

	r.Report(1, 10)
	firstLen := buf.Len()
	r.Done(10)
	require.Greater(t, buf.Len(), firstLen)
}

func TestReport_ZeroTotalReportsZeroFraction(t *testing.T) {
	var buf bytes.Buffer
	r := newTestReporter(&buf)

	r.Report(0, 0)

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	require.Equal(t, float64(0), line["fraction"])
}
