package coffeereview

import (
	"bytes"
	"context"
	"errors"
	"net/url"
	"strings"

	"brewmine/lib/htmlutil"

	"github.com/PuerkitoBio/goquery"
)

var ErrNoContent = errors.New("article has no content")

const (
	noDate     = "No date available"
	noCategory = "No category available"
)

var contentSelectors = []string{
	".entry-content",
	".post-content",
	"article .content",
	".post .entry",
}

// ContentMode decides how the body of an article container becomes text.
type ContentMode int

const (
	// ParagraphContent joins the text of every non-empty <p> with newlines.
	ParagraphContent ContentMode = iota
	// ContainerContent takes the text of the whole container.
	ContainerContent
)

type ListingItem struct {
	Title string
	URL   string
}

// ParseListing extracts the article links of a listing page. Items without a
// usable title link are counted in `skipped`.
func ParseListing(ctx context.Context, pageUrl *url.URL, body []byte) (items []ListingItem, skipped int, err error) {
	ctx, span := tracer.Start(ctx, "ParseListing")
	defer span.End()

	doc, err := goquery.NewDocumentFromReader(bytes.NewBuffer(body))
	if err != nil {
		return nil, 0, err
	}

	posts := doc.Find("article.post")
	if posts.Length() == 0 {
		posts = doc.Find("article")
	}

	posts.Each(func(_ int, post *goquery.Selection) {
		anchors := htmlutil.GetAnchors(ctx, pageUrl, post.Find("h2 a, h1 a, .entry-title a").First())
		if len(anchors) == 0 || anchors[0].Href == "" || anchors[0].Name == "" {
			skipped++
			return
		}
		items = append(items, ListingItem{
			Title: anchors[0].Name,
			URL:   anchors[0].Href,
		})
	})

	return items, skipped, nil
}

type ArticlePage struct {
	Title    string
	Date     string
	Category string
	Content  string
}

func findContent(doc *goquery.Document, mode ContentMode) string {
	for _, sel := range contentSelectors {
		container := doc.Find(sel).First()
		if container.Length() == 0 {
			continue
		}
		if mode == ParagraphContent {
			var paragraphs []string
			container.Find("p").Each(func(_ int, p *goquery.Selection) {
				text := htmlutil.SelectionText(p)
				if text != "" {
					paragraphs = append(paragraphs, text)
				}
			})
			if len(paragraphs) > 0 {
				return strings.Join(paragraphs, "\n")
			}
		}
		return htmlutil.SelectionText(container)
	}
	return ""
}

// ParseArticle reads a review page. `fallbackTitle` is used when the page
// carries no heading of its own.
func ParseArticle(body []byte, fallbackTitle string, mode ContentMode) (ArticlePage, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewBuffer(body))
	if err != nil {
		return ArticlePage{}, err
	}

	page := ArticlePage{
		Title:    htmlutil.SelectionText(doc.Find("h1.entry-title").First()),
		Date:     htmlutil.SelectionText(doc.Find(".entry-meta .entry-date, .post-date").First()),
		Content:  findContent(doc, mode),
		Category: noCategory,
	}
	if page.Title == "" {
		page.Title = fallbackTitle
	}
	if page.Date == "" {
		page.Date = noDate
	}

	var categories []string
	doc.Find(".entry-meta .entry-categories a, .cat-links a").Each(func(_ int, a *goquery.Selection) {
		text := htmlutil.SelectionText(a)
		if text != "" {
			categories = append(categories, text)
		}
	})
	if len(categories) > 0 {
		page.Category = strings.Join(categories, ", ")
	}

	if page.Content == "" {
		return page, ErrNoContent
	}
	return page, nil
}
