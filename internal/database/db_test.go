package database

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/aristath/investa/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestFile(t *testing.T, profile FileProfile) *File {
	t.Helper()
	f, err := New(Config{Path: filepath.Join(t.TempDir(), "nested", "assets.txt"), Profile: profile, Name: "assets"})
	require.NoError(t, err)
	return f
}

func TestNew_DefaultsAndDirectory(t *testing.T) {
	dir := t.TempDir()
	f, err := New(Config{Path: filepath.Join(dir, "a", "b", "goals.txt")})
	require.NoError(t, err)

	assert.Equal(t, ProfileStandard, f.Profile())
	assert.Equal(t, "goals", f.Name())
	assert.DirExists(t, filepath.Join(dir, "a", "b"))
	assert.False(t, f.Exists(), "file is created lazily")
}

func TestReadLines_MissingFile(t *testing.T) {
	f := newTestFile(t, ProfileStandard)

	lines, err := f.ReadLines()
	require.NoError(t, err)
	assert.Empty(t, lines)
}

func TestWriteLines_ReplacesContent(t *testing.T) {
	f := newTestFile(t, ProfileStandard)

	require.NoError(t, f.WriteLines([]string{"a", "b", "c"}))
	require.NoError(t, f.WriteLines([]string{"d"}))

	lines, err := f.ReadLines()
	require.NoError(t, err)
	assert.Equal(t, []string{"d"}, lines)

	entries, err := os.ReadDir(filepath.Dir(f.Path()))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files should be left behind")
}

func TestWriteLines_Empty(t *testing.T) {
	f := newTestFile(t, ProfileStandard)
	require.NoError(t, f.WriteLines([]string{"a"}))
	require.NoError(t, f.WriteLines(nil))

	data, err := os.ReadFile(f.Path())
	require.NoError(t, err)
	assert.Empty(t, data)
}

func TestWriteLines_FailureKeepsPreviousVersion(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permission checks do not apply to root")
	}

	f := newTestFile(t, ProfileStandard)
	require.NoError(t, f.WriteLines([]string{"Stocks,X,100"}))

	dir := filepath.Dir(f.Path())
	require.NoError(t, os.Chmod(dir, 0555))
	t.Cleanup(func() { _ = os.Chmod(dir, 0755) })

	err := f.WriteLines([]string{"Gold,Y,5"})
	require.Error(t, err)
	assert.True(t, domain.IsStorage(err))

	lines, err := f.ReadLines()
	require.NoError(t, err)
	assert.Equal(t, []string{"Stocks,X,100"}, lines)
}

func TestAppendLine(t *testing.T) {
	for _, profile := range []FileProfile{ProfileStandard, ProfileLedger} {
		t.Run(string(profile), func(t *testing.T) {
			f := newTestFile(t, profile)
			require.NoError(t, f.AppendLine("one"))
			require.NoError(t, f.AppendLine("two"))

			lines, err := f.ReadLines()
			require.NoError(t, err)
			assert.Equal(t, []string{"one", "two"}, lines)
		})
	}
}

func TestReadLines_StripsCarriageReturns(t *testing.T) {
	f := newTestFile(t, ProfileStandard)
	require.NoError(t, os.WriteFile(f.Path(), []byte("a\r\nb\r\n"), 0644))

	lines, err := f.ReadLines()
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, lines)
}

func TestReadLines_SkipsOversizedLines(t *testing.T) {
	f := newTestFile(t, ProfileStandard)
	huge := strings.Repeat("9", maxLineBytes+10)
	content := "Stocks,ok,100\nGold,big," + huge + "\nBonds,gov,5\n"
	require.NoError(t, os.WriteFile(f.Path(), []byte(content), 0644))

	lines, err := f.ReadLines()
	require.NoError(t, err)
	assert.Equal(t, []string{"Stocks,ok,100", "Bonds,gov,5"}, lines)
}

func TestReadLines_KeepsLinesAtTheLimit(t *testing.T) {
	f := newTestFile(t, ProfileStandard)
	long := strings.Repeat("a", maxLineBytes)
	require.NoError(t, os.WriteFile(f.Path(), []byte(long+"\nb"), 0644))

	lines, err := f.ReadLines()
	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.Len(t, lines[0], maxLineBytes)
	assert.Equal(t, "b", lines[1])
}

func TestUpdate_DropsOversizedLines(t *testing.T) {
	f := newTestFile(t, ProfileStandard)
	require.NoError(t, os.WriteFile(f.Path(), []byte(strings.Repeat("x", maxLineBytes+1)+"\nkeep\n"), 0644))

	err := f.Update(func(lines []string) ([]string, error) {
		return append(lines, "added"), nil
	})
	require.NoError(t, err)

	data, err := os.ReadFile(f.Path())
	require.NoError(t, err)
	assert.Equal(t, "keep\nadded\n", string(data))
}

func TestUpdate(t *testing.T) {
	f := newTestFile(t, ProfileStandard)
	require.NoError(t, f.WriteLines([]string{"a", "b"}))

	err := f.Update(func(lines []string) ([]string, error) {
		return append(lines, "c"), nil
	})
	require.NoError(t, err)

	lines, err := f.ReadLines()
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, lines)
}

func TestUpdate_CallbackErrorWritesNothing(t *testing.T) {
	f := newTestFile(t, ProfileStandard)
	require.NoError(t, f.WriteLines([]string{"a"}))

	sentinel := assert.AnError
	err := f.Update(func(lines []string) ([]string, error) {
		return nil, sentinel
	})
	assert.ErrorIs(t, err, sentinel)

	lines, err := f.ReadLines()
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, lines)
}

func TestAppendLine_Concurrent(t *testing.T) {
	f := newTestFile(t, ProfileStandard)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, f.AppendLine("Stocks,X,1"))
		}()
	}
	wg.Wait()

	lines, err := f.ReadLines()
	require.NoError(t, err)
	assert.Len(t, lines, 50)
	for _, l := range lines {
		assert.Equal(t, "Stocks,X,1", l)
	}
}

func TestRegistry_SharesFiles(t *testing.T) {
	dir := t.TempDir()
	r := NewRegistry("")

	a, err := r.Open(filepath.Join(dir, "assets.txt"), "assets")
	require.NoError(t, err)
	b, err := r.Open(filepath.Join(dir, ".", "assets.txt"), "assets")
	require.NoError(t, err)
	c, err := r.Open(filepath.Join(dir, "goals.txt"), "goals")
	require.NoError(t, err)

	assert.Same(t, a, b)
	assert.NotSame(t, a, c)
	assert.Equal(t, 2, r.Len())
}
