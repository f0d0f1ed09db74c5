package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rdeusser/venn/venn"
)

func writeInputs(t *testing.T, sets map[string]string) string {
	t.Helper()

	dir := t.TempDir()
	for name, content := range sets {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	return dir
}

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer

	cmd := NewRootCommand(&stdout, &stderr)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())

	return stdout.String(), stderr.String(), err
}

func TestSectionsText(t *testing.T) {
	dir := writeInputs(t, map[string]string{
		"a.txt": "1\n2\n3\n",
		"b.txt": "2\n3\n4\n# four\n\n",
	})

	out, _, err := run(t, "sections", filepath.Join(dir, "a.txt"), filepath.Join(dir, "b.txt"))
	require.NoError(t, err)
	assert.Equal(t, "OI\t1\nIO\t1\nII\t2\n", out)
}

func TestSectionsModes(t *testing.T) {
	dir := writeInputs(t, map[string]string{
		"a.txt": "1\n2\n3\n",
		"b.txt": "2\n3\n4\n",
	})
	a, b := filepath.Join(dir, "a.txt"), filepath.Join(dir, "b.txt")

	out, _, err := run(t, "sections", "--mode", "fraction", a, b)
	require.NoError(t, err)
	assert.Equal(t, "OI\t0.25\nIO\t0.25\nII\t0.5\n", out)

	out, _, err = run(t, "sections", "-m", "set", a, b)
	require.NoError(t, err)
	assert.Equal(t, "OI\t{4}\nIO\t{1}\nII\t{2, 3}\n", out)

	_, _, err = run(t, "sections", "--mode", "length", a, b)
	assert.ErrorContains(t, err, "invalid Mode")
}

func TestSectionsJSON(t *testing.T) {
	dir := writeInputs(t, map[string]string{
		"a.txt": "x\ny\n",
		"b.txt": "y\n",
	})

	out, _, err := run(t, "sections", "-f", "json", "-m", "set", filepath.Join(dir, "a.txt"), filepath.Join(dir, "b.txt"))
	require.NoError(t, err)

	var got []struct {
		Key   string   `json:"key"`
		Value []string `json:"value"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))

	require.Len(t, got, 3)
	assert.Equal(t, "OI", got[0].Key)
	assert.Empty(t, got[0].Value)
	assert.Equal(t, "IO", got[1].Key)
	assert.Equal(t, []string{"x"}, got[1].Value)
	assert.Equal(t, "II", got[2].Key)
	assert.Equal(t, []string{"y"}, got[2].Value)
}

func TestSectionsErrors(t *testing.T) {
	dir := writeInputs(t, map[string]string{
		"empty.txt": "\n",
		"a.txt":     "1\n",
	})

	_, _, err := run(t, "sections")
	assert.ErrorIs(t, err, venn.ErrConfiguration)

	_, _, err = run(t, "sections", "-m", "fraction", filepath.Join(dir, "empty.txt"), filepath.Join(dir, "empty.txt"))
	assert.ErrorIs(t, err, venn.ErrConfiguration)

	_, _, err = run(t, "sections", "-f", "yaml", filepath.Join(dir, "a.txt"))
	assert.ErrorIs(t, err, venn.ErrConfiguration)

	_, _, err = run(t, "sections", filepath.Join(dir, "missing.txt"))
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestSectionsConfig(t *testing.T) {
	dir := writeInputs(t, map[string]string{
		"a.txt":       "1\n2\n",
		"b.txt":       "2\n",
		"venndy.toml": "mode = \"fraction\"\n[log]\nlevel = \"debug\"\nformat = \"json\"\n",
	})
	a, b := filepath.Join(dir, "a.txt"), filepath.Join(dir, "b.txt")
	cfg := filepath.Join(dir, "venndy.toml")

	out, logs, err := run(t, "--config", cfg, "sections", a, b)
	require.NoError(t, err)
	assert.Equal(t, "OI\t0\nIO\t0.5\nII\t0.5\n", out)
	assert.Contains(t, logs, `"msg":"computing sections"`)

	out, _, err = run(t, "--config", cfg, "sections", "-m", "count", a, b)
	require.NoError(t, err)
	assert.Equal(t, "OI\t0\nIO\t1\nII\t1\n", out)
}

func TestDrawStdout(t *testing.T) {
	dir := writeInputs(t, map[string]string{
		"cats.txt": "tom\nfelix\n",
		"dogs.txt": "rex\nfelix\n",
	})

	out, _, err := run(t, "draw", "--labels", "Cats,Dogs", filepath.Join(dir, "cats.txt"), filepath.Join(dir, "dogs.txt"))
	require.NoError(t, err)
	assert.Contains(t, out, "<svg")
	assert.Contains(t, out, ">Cats</text>")
	assert.Contains(t, out, ">Dogs</text>")
}

func TestDrawFile(t *testing.T) {
	dir := writeInputs(t, map[string]string{
		"cats.txt": "tom\nfelix\n",
		"dogs.txt": "rex\nfelix\n",
	})
	output := filepath.Join(dir, "pets.svg")

	out, logs, err := run(t, "draw", "--file-labels", "-o", output, filepath.Join(dir, "cats.txt"), filepath.Join(dir, "dogs.txt"))
	require.NoError(t, err)
	assert.Empty(t, out)
	assert.Contains(t, logs, "wrote diagram")

	svg, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Contains(t, string(svg), ">cats</text>")
	assert.Contains(t, string(svg), ">dogs</text>")
	assert.Equal(t, 3, strings.Count(string(svg), ">1</text>"))
}

func TestDrawEmptyConfigLabels(t *testing.T) {
	dir := writeInputs(t, map[string]string{
		"cats.txt":    "tom\n",
		"dogs.txt":    "rex\n",
		"venndy.toml": "labels = []\n",
	})

	out, _, err := run(t, "--config", filepath.Join(dir, "venndy.toml"), "draw", filepath.Join(dir, "cats.txt"), filepath.Join(dir, "dogs.txt"))
	require.NoError(t, err)
	assert.Contains(t, out, ">A</text>")
	assert.Contains(t, out, ">B</text>")
}

func TestDrawErrors(t *testing.T) {
	sets := make(map[string]string)
	var paths []string
	for _, name := range []string{"a", "b", "c", "d", "e", "f"} {
		sets[name+".txt"] = name + "\n"
	}
	dir := writeInputs(t, sets)
	for _, name := range []string{"a", "b", "c", "d", "e", "f"} {
		paths = append(paths, filepath.Join(dir, name+".txt"))
	}

	_, _, err := run(t, append([]string{"draw"}, paths...)...)
	assert.ErrorIs(t, err, venn.ErrConfiguration)

	_, _, err = run(t, "draw", "--labels", "one", paths[0], paths[1])
	assert.ErrorIs(t, err, venn.ErrConfiguration)
}

func TestFileLabels(t *testing.T) {
	assert.Equal(t, []string{"cats", "dogs", "birds.old"}, fileLabels([]string{"/tmp/cats.txt", "dogs", "x/birds.old.csv"}))
}
