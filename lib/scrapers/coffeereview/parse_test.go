package coffeereview

import (
	"context"
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"
)

const listingPage = `<html><body>
<article class="post"><h2 class="entry-title"><a href="/review/ethiopia-guji/">Ethiopia Guji</a></h2></article>
<article class="post"><h2><a href="https://www.coffeereview.com/review/kenya-nyeri/"> Kenya
  Nyeri </a></h2></article>
<article class="post"><div>no title link here</div></article>
<article class="sidebar"><h2><a href="/ignored/">Ignored</a></h2></article>
</body></html>`

func TestParseListing(t *testing.T) {
	pageUrl, err := url.Parse("https://www.coffeereview.com/category/articles/page/2/")
	require.NoError(t, err)

	items, skipped, err := ParseListing(context.Background(), pageUrl, []byte(listingPage))
	require.NoError(t, err)
	require.Equal(t, 1, skipped)
	require.Equal(t, []ListingItem{
		{Title: "Ethiopia Guji", URL: "https://www.coffeereview.com/review/ethiopia-guji/"},
		{Title: "Kenya Nyeri", URL: "https://www.coffeereview.com/review/kenya-nyeri/"},
	}, items)
}

func TestParseListingFallsBackToAnyArticle(t *testing.T) {
	items, skipped, err := ParseListing(
		context.Background(), nil,
		[]byte(`<article><h1><a href="https://x.test/a/">A</a></h1></article>`),
	)
	require.NoError(t, err)
	require.Zero(t, skipped)
	require.Equal(t, []ListingItem{{Title: "A", URL: "https://x.test/a/"}}, items)
}

const articlePage = `<html><body>
<h1 class="entry-title">Ethiopia Guji Natural</h1>
<div class="entry-meta"><span class="entry-date">May 1, 2024</span>
<span class="entry-categories"><a href="#">Reviews</a><a href="#">Africa</a></span></div>
<div class="entry-content">
  <p>Floral and   juicy.</p>
  <p> </p>
  <p>Long, sweet finish.</p>
  <div class="rating">94</div>
</div>
</body></html>`

func TestParseArticle(t *testing.T) {
	testCases := []struct {
		name     string
		body     string
		fallback string
		mode     ContentMode
		expected ArticlePage
		err      error
	}{
		{
			name: "paragraphs",
			body: articlePage,
			mode: ParagraphContent,
			expected: ArticlePage{
				Title:    "Ethiopia Guji Natural",
				Date:     "May 1, 2024",
				Category: "Reviews, Africa",
				Content:  "Floral and juicy.\nLong, sweet finish.",
			},
		},
		{
			name: "container",
			body: articlePage,
			mode: ContainerContent,
			expected: ArticlePage{
				Title:    "Ethiopia Guji Natural",
				Date:     "May 1, 2024",
				Category: "Reviews, Africa",
				Content:  "Floral and juicy. Long, sweet finish. 94",
			},
		},
		{
			name:     "fallbacks",
			body:     `<div class="post-content">Just text, no paragraphs.</div>`,
			fallback: "Listing Title",
			mode:     ParagraphContent,
			expected: ArticlePage{
				Title:    "Listing Title",
				Date:     noDate,
				Category: noCategory,
				Content:  "Just text, no paragraphs.",
			},
		},
		{
			name:     "no content",
			body:     `<h1 class="entry-title">Empty</h1><div class="sidebar">x</div>`,
			mode:     ParagraphContent,
			expected: ArticlePage{Title: "Empty", Date: noDate, Category: noCategory},
			err:      ErrNoContent,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			page, err := ParseArticle([]byte(tc.body), tc.fallback, tc.mode)
			if tc.err != nil {
				require.ErrorIs(t, err, tc.err)
			} else {
				require.NoError(t, err)
			}
			require.Equal(t, tc.expected, page)
		})
	}
}
