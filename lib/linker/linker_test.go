package linker

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"
)

func TestLink(t *testing.T) {
	testCases := []struct {
		left  []string
		right []string
		// if Pair.Similarity == 0
		// the test will not assert the similarity to be equal
		expected []Pair
	}{
		{
			left:  []string{"a", "b", "c"},
			right: []string{"a", "b"},
			expected: []Pair{
				{Left: "a", Right: "a", Similarity: 1},
				{Left: "b", Right: "b", Similarity: 1},
			},
		},
		{
			left:  []string{"Kenya  Nyeri AA", "Ethiopia Guji"},
			right: []string{"ethiopia guji", "kenya nyeri aa"},
			expected: []Pair{
				{Left: "Ethiopia Guji", Right: "ethiopia guji", Similarity: 1},
				{Left: "Kenya  Nyeri AA", Right: "kenya nyeri aa", Similarity: 1},
			},
		},
		{
			left:  []string{"foo", "bar", "baz"},
			right: []string{"foob", "bar", "barr"},
			expected: []Pair{
				{Left: "bar", Right: "bar", Similarity: 1},
				{Left: "baz", Right: "barr"},
				{Left: "foo", Right: "foob"},
			},
		},
		{
			left:     []string{"foo", "bar", "baz"},
			right:    []string{},
			expected: nil,
		},
		{
			left:     []string{},
			right:    []string{},
			expected: nil,
		},
		{
			left:  []string{"foo", "bar", "baz"},
			right: []string{"baa"},
			expected: []Pair{
				{Left: "bar", Right: "baa"},
			},
		},
	}

	for _, test := range testCases {
		pairs := Link(test.left, test.right)
		for i, p := range pairs {
			for _, e := range test.expected {
				if e.Left == p.Left && e.Similarity == 0 {
					pairs[i].Similarity = 0
				}
			}
		}
		diff := cmp.Diff(
			test.expected,
			pairs,
			cmpopts.SortSlices(func(a, b Pair) bool {
				return a.Left < b.Left
			}),
		)
		if diff != "" {
			t.Fatal(diff)
		}
	}
}

func TestAgreement(t *testing.T) {
	browser := []string{
		"Ethiopia Guji Natural",
		"Kenya Nyeri AA",
		"How Decaf Is Made",
	}
	http := []string{
		"Kenya Nyeri AA",
		"Ethiopia Guji Natural ",
		"Panama Geisha Washed",
	}
	require.Equal(t, 2, Agreement(browser, http, DefaultThreshold))
	require.Equal(t, 3, Agreement(browser, http, 0))
}
