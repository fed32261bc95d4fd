package rubric

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/afs"
	"github.com/viant/marker/model/exam"
	"github.com/viant/marker/service/dao"
)

func writeFile(t *testing.T, name, content string) string {
	location := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(location, []byte(content), 0o644))
	return location
}

func TestService_Load(t *testing.T) {
	long := strings.Repeat("x", exam.MaxLineLength+20)
	testCases := []struct {
		description string
		content     string
		expect      exam.Rubric
		expectErr   error
	}{
		{
			description: "five lines",
			content:     "1, a\n2, b\n3, c\n4, d\n5, e\n",
			expect:      exam.Rubric{"1, a", "2, b", "3, c", "4, d", "5, e"},
		},
		{
			description: "CRLF and extra lines",
			content:     "1, a\r\n2\r\n3\r\n4\r\n5\r\n6\r\n",
			expect:      exam.Rubric{"1, a", "2", "3", "4", "5"},
		},
		{
			description: "long line truncated",
			content:     long + "\n2\n3\n4\n5",
			expect:      exam.Rubric{long[:exam.MaxLineLength], "2", "3", "4", "5"},
		},
		{
			description: "short rubric",
			content:     "1\n2\n3\n",
			expectErr:   dao.ErrShortRead,
		},
	}
	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			srv := New(afs.New(), writeFile(t, "rubric.txt", testCase.content))
			actual, err := srv.Load(context.Background())
			if testCase.expectErr != nil {
				assert.ErrorIs(t, err, testCase.expectErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, testCase.expect, actual)
		})
	}
}

func TestService_LoadMissing(t *testing.T) {
	srv := New(nil, filepath.Join(t.TempDir(), "missing.txt"))
	_, err := srv.Load(context.Background())
	assert.ErrorIs(t, err, dao.ErrNotFound)
}

func TestService_Save(t *testing.T) {
	location := writeFile(t, "rubric.txt", "1, a\n2, b\n3, c\n4, d\n5, e\n")
	srv := New(afs.New(), location)
	rubric, err := srv.Load(context.Background())
	require.NoError(t, err)

	rubric[0] = "1, b"
	require.NoError(t, srv.Save(context.Background(), rubric))
	assert.Equal(t, 1, srv.Saves())

	data, err := os.ReadFile(location)
	require.NoError(t, err)
	assert.Equal(t, "1, b\n2, b\n3, c\n4, d\n5, e\n", string(data))

	reloaded, err := srv.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, rubric, reloaded)
}

func TestDiff(t *testing.T) {
	before := exam.Rubric{"A, bad", "2", "3", "4", "5"}
	after := before
	diff, err := Diff(before, after, "rubric.txt")
	require.NoError(t, err)
	assert.Empty(t, diff)

	after[0] = "A, cad"
	diff, err = Diff(before, after, "rubric.txt")
	require.NoError(t, err)
	assert.Contains(t, diff, "-A, bad")
	assert.Contains(t, diff, "+A, cad")
	assert.Contains(t, diff, "rubric.txt (after)")
}
