package accessibility

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarizeStats(t *testing.T) {
	persons := []PersonAccessibility{
		{PersonID: "1", Accessibility: -1, Group: "1"},
		{PersonID: "2", Accessibility: -2, Group: "0"},
		{PersonID: "3", Accessibility: -3, Group: "1"},
		{PersonID: "4", Accessibility: -6, Group: "1"},
		{PersonID: "5", Accessibility: -4, Group: "0"},
	}
	got := Summarize(persons, true)
	require.Len(t, got, 2)

	no, yes := got[0], got[1]
	assert.Equal(t, "0", no.Group)
	assert.Equal(t, "no", no.Label)
	assert.Equal(t, 2, no.Count)
	assert.InDelta(t, -3, no.Mean, 1e-12)
	assert.InDelta(t, -3, no.Median, 1e-12)
	assert.InDelta(t, math.Sqrt2, no.Std, 1e-12)

	assert.Equal(t, "yes", yes.Label)
	assert.Equal(t, 3, yes.Count)
	assert.InDelta(t, -10.0/3, yes.Mean, 1e-12)
	assert.InDelta(t, -3, yes.Median, 1e-12)
	// sample variance of {-1,-3,-6}: ((7/3)^2+(1/3)^2+(8/3)^2)/2 = 19/3
	assert.InDelta(t, math.Sqrt(19.0/3), yes.Std, 1e-12)
}

func TestSummarizeSingleMember(t *testing.T) {
	got := Summarize([]PersonAccessibility{{PersonID: "1", Accessibility: -0.5, Group: "urban"}}, true)
	require.Len(t, got, 1)
	assert.Equal(t, "urban", got[0].Label)
	assert.Equal(t, -0.5, got[0].Mean)
	assert.Equal(t, -0.5, got[0].Median)
	assert.True(t, math.IsNaN(got[0].Std))
}

func TestSummarizeSkipsUngrouped(t *testing.T) {
	got := Summarize([]PersonAccessibility{
		{PersonID: "1", Accessibility: 1, Group: ""},
		{PersonID: "2", Accessibility: 2, Group: "b"},
	}, false)
	require.Len(t, got, 1)
	assert.Equal(t, "b", got[0].Group)
}

func TestBooleanLabels(t *testing.T) {
	labels, ok := BooleanLabels([]string{"0", "1"})
	require.True(t, ok)
	assert.Equal(t, map[string]string{"0": "no", "1": "yes"}, labels)

	labels, ok = BooleanLabels([]string{"1.0", "0.0"})
	require.True(t, ok)
	assert.Equal(t, "yes", labels["1.0"])

	for _, domain := range [][]string{{"0", "1", "2"}, {"1"}, {"0", "x"}, {"yes", "no"}, nil} {
		_, ok := BooleanLabels(domain)
		assert.False(t, ok, "domain %v", domain)
	}
}

func TestSummarizeNoRelabelOutsideBooleanDomain(t *testing.T) {
	got := Summarize([]PersonAccessibility{
		{PersonID: "1", Accessibility: 1, Group: "0"},
		{PersonID: "2", Accessibility: 2, Group: "2"},
	}, true)
	require.Len(t, got, 2)
	assert.Equal(t, "0", got[0].Label)
	assert.Equal(t, "2", got[1].Label)
}

func TestMedianEvenCount(t *testing.T) {
	assert.Equal(t, 2.5, median([]float64{4, 1, 3, 2}))
	assert.True(t, math.IsInf(median([]float64{math.Inf(-1), math.Inf(-1), 0}), -1))
}

func TestSummarizeSkipsNaN(t *testing.T) {
	got := Summarize([]PersonAccessibility{
		{PersonID: "1", Accessibility: math.NaN(), Group: "a"},
		{PersonID: "2", Accessibility: -1, Group: "a"},
		{PersonID: "3", Accessibility: -2, Group: "a"},
		{PersonID: "4", Accessibility: math.NaN(), Group: "b"},
	}, false)
	require.Len(t, got, 2)

	a := got[0]
	assert.Equal(t, 2, a.Count)
	assert.InDelta(t, -1.5, a.Mean, 1e-12)
	assert.InDelta(t, -1.5, a.Median, 1e-12)
	assert.InDelta(t, math.Sqrt(0.5), a.Std, 1e-12)

	b := got[1]
	assert.Equal(t, "b", b.Group)
	assert.Equal(t, 0, b.Count)
	assert.True(t, math.IsNaN(b.Mean))
	assert.True(t, math.IsNaN(b.Median))
	assert.True(t, math.IsNaN(b.Std))
}

func TestBooleanLabelsRejectsSameValueSpelledTwice(t *testing.T) {
	_, ok := BooleanLabels([]string{"0", "0.0", "1"})
	assert.False(t, ok)

	got := Summarize([]PersonAccessibility{
		{PersonID: "1", Accessibility: -1, Group: "0"},
		{PersonID: "2", Accessibility: -2, Group: "0.0"},
		{PersonID: "3", Accessibility: -3, Group: "1"},
	}, true)
	require.Len(t, got, 3)
	labels := map[string]bool{}
	for _, g := range got {
		assert.False(t, labels[g.Label], "duplicate label %q", g.Label)
		labels[g.Label] = true
	}
}
