package marker

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/afs"
	"github.com/viant/marker/model/exam"
	"github.com/viant/marker/service/event"
	"github.com/viant/marker/service/worker"
)

const fastYAML = `
workers: 2
review: {min: 0s, max: 50us}
marking: {min: 10us, max: 100us}
retry: {min: 50us, max: 100us}
correctionRate: 1
seed: 5
`

func TestDecodeConfig(t *testing.T) {
	config, err := DecodeConfig([]byte(fastYAML))
	require.NoError(t, err)
	assert.Equal(t, 2, config.Workers)
	assert.Equal(t, worker.Delay{Min: 10 * time.Microsecond, Max: 100 * time.Microsecond}, config.Marking)
	assert.Equal(t, 1.0, config.CorrectionRate)
	assert.EqualValues(t, 5, config.Seed)
	require.NoError(t, config.Validate())

	partial, err := DecodeConfig([]byte("verbose: true\n"))
	require.NoError(t, err)
	assert.True(t, partial.Verbose)
	assert.Equal(t, DefaultConfig().Review, partial.Review)

	_, err = DecodeConfig([]byte("workers: [1"))
	assert.Error(t, err)
}

func TestConfig_Validate(t *testing.T) {
	testCases := []struct {
		description string
		mutate      func(c *Config)
		expectErr   bool
	}{
		{description: "defaults", mutate: func(c *Config) {}},
		{description: "no workers", mutate: func(c *Config) { c.Workers = 0 }, expectErr: true},
		{description: "inverted delay", mutate: func(c *Config) { c.Retry = worker.Delay{Min: time.Second, Max: time.Millisecond} }, expectErr: true},
		{description: "negative rate", mutate: func(c *Config) { c.CorrectionRate = -0.1 }, expectErr: true},
	}
	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			config := DefaultConfig()
			testCase.mutate(config)
			err := config.Validate()
			if testCase.expectErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestLoadConfig(t *testing.T) {
	t.Setenv("MARKER_WORKERS", "4")
	location := filepath.Join(t.TempDir(), "marker.yaml")
	require.NoError(t, os.WriteFile(location, []byte("workers: ${env.MARKER_WORKERS}\ncorrectionRate: 0.25\n"), 0o644))
	config, err := LoadConfig(context.Background(), afs.New(), location)
	require.NoError(t, err)
	assert.Equal(t, 4, config.Workers)

	_, err = LoadConfig(context.Background(), nil, filepath.Join(t.TempDir(), "none.yaml"))
	assert.Error(t, err)
}

func TestExpandEnv(t *testing.T) {
	t.Setenv("MARKER_TRACE", "/tmp/trace.json")
	testCases := []struct {
		input  string
		expect string
	}{
		{input: "workers: 2", expect: "workers: 2"},
		{input: "traceFile: ${env.MARKER_TRACE}", expect: "traceFile: /tmp/trace.json"},
		{input: "${env.MARKER_TRACE}|${env.MARKER_UNSET}|", expect: "/tmp/trace.json||"},
		{input: "a ${env.bad-key} b", expect: "a ${env.bad-key} b"},
		{input: "open ${env.MARKER_TRACE", expect: "open ${env.MARKER_TRACE"},
	}
	for _, testCase := range testCases {
		assert.Equal(t, testCase.expect, expandEnv(testCase.input), testCase.input)
	}
}

func TestService_Run(t *testing.T) {
	dir := t.TempDir()
	var exams []string
	for _, student := range []string{"1001", "1002", "1003"} {
		location := filepath.Join(dir, "exam"+student+".txt")
		require.NoError(t, os.WriteFile(location, []byte(student+"\n"), 0o644))
		exams = append(exams, location)
	}
	examList := filepath.Join(dir, "exams.txt")
	require.NoError(t, os.WriteFile(examList, []byte(strings.Join(exams, "\n")), 0o644))
	rubric := filepath.Join(dir, "rubric.txt")
	require.NoError(t, os.WriteFile(rubric, []byte("A, bad\nB\nC\nD\nE\n"), 0o644))

	config, err := DecodeConfig([]byte(fastYAML))
	require.NoError(t, err)
	output := &bytes.Buffer{}
	recorder := event.NewRecorder()
	srv := New(WithConfig(config), WithWorkers(3), WithVerbose(true), WithLogWriter(output), WithSinks(recorder))
	assert.Equal(t, 3, srv.Config().Workers)

	summary, err := srv.Run(context.Background(), examList, rubric)
	require.NoError(t, err)
	assert.Equal(t, 3, summary.Workers)
	assert.Equal(t, 2, summary.CurrentExam)
	assert.Equal(t, exam.Sentinel, summary.StudentNumber)
	assert.Equal(t, 15, summary.Progress.MarkedTasks)

	log := output.String()
	assert.Contains(t, log, "Supervisor: Loaded exam 0 (student 1001)")
	assert.Contains(t, log, "Marked question 5 for student 1003")
	assert.Contains(t, log, "student 9999 reached so stopping.")
	assert.Contains(t, log, "All TAs finished.")
	assert.NotEmpty(t, recorder.Filter(event.RubricCorrected))
	assert.Contains(t, log, "+A, c")

	_, err = New(WithWorkers(0)).Run(context.Background(), examList, rubric)
	assert.Error(t, err)
}
