package render

import (
	"strings"
	"testing"
	"text/template"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/rdeusser/venn/venn"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestTemplatesAreComplete(t *testing.T) {
	tmpl, err := New().templates()
	require.NoError(t, err)

	for n := 1; n <= MaxSets; n++ {
		assert.NotNil(t, tmpl.Lookup(templateName(n)), "template for %d sets", n)
	}
}

func TestPlaceholders(t *testing.T) {
	got := Placeholders(2)
	assert.ElementsMatch(t, []string{"A", "B", "OI", "IO", "II"}, got.List())

	for n := 1; n <= MaxSets; n++ {
		assert.Equal(t, n+1<<n-1, Placeholders(n).Size())
	}
}

func TestCheckPlaceholders(t *testing.T) {
	tmpl := template.Must(template.New("2_set.svg").Parse(`{{.A}} {{.B}} {{.IO}} {{if .II}}{{.X}}{{end}}`))

	err := checkPlaceholders(tmpl, 2)
	require.ErrorIs(t, err, venn.ErrConfiguration)
	assert.Contains(t, err.Error(), "missing placeholders [OI]")
	assert.Contains(t, err.Error(), "unknown placeholders [X]")
}

func TestDraw(t *testing.T) {
	out, err := Draw(nil, [][]int{{1, 2, 3}, {2, 3, 4}}, nil)
	require.NoError(t, err)

	svg := string(out)
	assert.True(t, strings.HasPrefix(svg, "<?xml"))
	assert.Contains(t, svg, `fill="#e41a1c">A</text>`)
	assert.Contains(t, svg, `fill="#377eb8">B</text>`)
	assert.Contains(t, svg, `<text x="105" y="210">1</text>`)
	assert.Contains(t, svg, `<text x="295" y="210">1</text>`)
	assert.Contains(t, svg, `<text x="200" y="210">2</text>`)
	assert.NotContains(t, svg, "{{")
}

func TestDrawAllSizes(t *testing.T) {
	r := New()
	data := [][]string{{"a", "b"}, {"b", "c"}, {"c", "d"}, {"d", "e"}, {"e", "a"}}

	for n := 1; n <= MaxSets; n++ {
		out, err := Draw(r, data[:n], nil)
		require.NoError(t, err, "%d sets", n)
		assert.Contains(t, string(out), "<svg")
		assert.NotContains(t, string(out), "no value")
	}
}

func TestDrawLabels(t *testing.T) {
	out, err := Draw(nil, [][]string{{"x"}, {"y"}}, []string{"cats", "<dogs & co>"})
	require.NoError(t, err)

	svg := string(out)
	assert.Contains(t, svg, ">cats</text>")
	assert.Contains(t, svg, ">&lt;dogs &amp; co&gt;</text>")
}

func TestDrawFraction(t *testing.T) {
	out, err := Draw(New(WithMode(venn.ModeFraction)), [][]int{{1, 2, 3}, {2, 3, 4}}, nil)
	require.NoError(t, err)

	svg := string(out)
	assert.Contains(t, svg, ">0.25</text>")
	assert.Contains(t, svg, ">0.5</text>")
}

func TestDrawSets(t *testing.T) {
	out, err := Draw(New(WithMode(venn.ModeSet)), [][]string{{"a", "b"}, {"b"}}, nil)
	require.NoError(t, err)

	assert.Contains(t, string(out), ">{a}</text>")
	assert.Contains(t, string(out), ">{b}</text>")
}

func TestDrawErrors(t *testing.T) {
	testCases := []struct {
		testName string
		r        *Renderer
		data     [][]int
		labels   []string
	}{
		{"no sets", nil, nil, nil},
		{"too many sets", nil, [][]int{{1}, {2}, {3}, {4}, {5}, {6}}, nil},
		{"too few labels", nil, [][]int{{1}, {2}}, []string{"only"}},
		{"too many labels", nil, [][]int{{1}}, []string{"a", "b"}},
		{"empty labels", nil, [][]int{{1}}, []string{}},
		{"zero total", New(WithMode(venn.ModeFraction)), [][]int{{}, {}}, nil},
		{"unknown mode", New(WithMode(venn.Mode(0))), [][]int{{1}}, nil},
	}

	for _, tc := range testCases {
		t.Run(tc.testName, func(t *testing.T) {
			out, err := Draw(tc.r, tc.data, tc.labels)
			assert.Nil(t, out)
			assert.ErrorIs(t, err, venn.ErrConfiguration)
		})
	}
}

func TestLabelDict(t *testing.T) {
	dict, err := LabelDict(nil, 3)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"A": "A", "B": "B", "C": "C"}, dict)

	dict, err = LabelDict([]string{"x", "y"}, 2)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"A": "x", "B": "y"}, dict)

	_, err = LabelDict(nil, 6)
	assert.ErrorIs(t, err, venn.ErrConfiguration)
}

func TestRenderMissingSection(t *testing.T) {
	dict, err := LabelDict(nil, 2)
	require.NoError(t, err)

	_, err = New().Render(2, dict)
	assert.Error(t, err)
}

func TestDrawLogs(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	r := New(WithLogger(zap.New(core)))

	_, err := Draw(r, [][]int{{1}, {1, 2}}, nil)
	require.NoError(t, err)
	_, err = Draw(r, [][]int{{1}}, nil)
	require.NoError(t, err)

	assert.Equal(t, 1, logs.FilterMessage("parsed diagram templates").Len())
	assert.Equal(t, 2, logs.FilterMessage("drawing diagram").Len())
}
