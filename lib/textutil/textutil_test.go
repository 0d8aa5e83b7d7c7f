package textutil

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizeName(t *testing.T) {
	require.Equal(t, "articlecontent", NormalizeName("  Article Content\n"))
}

func TestFindName(t *testing.T) {
	testCases := []struct {
		names    []string
		exact    string
		matchers []string
		expected int
	}{
		{names: []string{"title", "Content", "url"}, exact: "content", matchers: []string{"content", "text"}, expected: 1},
		{names: []string{"title", "body_text", "article content"}, exact: "content", matchers: []string{"content", "text"}, expected: 1},
		{names: []string{"title", "url"}, exact: "content", matchers: []string{"content", "text"}, expected: -1},
		{names: nil, exact: "content", matchers: nil, expected: -1},
	}
	for _, tc := range testCases {
		require.Equal(t, tc.expected, FindName(tc.names, tc.exact, tc.matchers), tc.names)
	}
}
