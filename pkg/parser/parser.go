// Package parser extracts structured facts from the blog's HTML: archive
// links, post entries, and image sources. All functions are pure over the
// page text; any missing element or attribute is a structure error, because
// it signals the site markup changed and the crawl must stop rather than
// silently lose data.
package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"blogdl/pkg/errors"
	"blogdl/pkg/models"
)

const (
	archiveWidgetSelector = "aside.widget_archive"
	postSelector          = "article.post"
	postTitleSelector     = "h1.entry-title"
	contentSelector       = "div.entry-content"
)

// ExtractArchiveItems locates the sidebar archive widget and parses every
// anchor inside it into a DownloadItem. The result is the reverse of
// document order: the site lists newest months first, the crawl processes
// chronologically and refreshes only the final (most recent) item.
func ExtractArchiveItems(html string) ([]models.DownloadItem, error) {
	doc, err := parse(html)
	if err != nil {
		return nil, err
	}

	widget := doc.Find(archiveWidgetSelector).First()
	if widget.Length() == 0 {
		return nil, errors.NewStructure("archive widget not found", "")
	}

	var items []models.DownloadItem
	var extractErr error

	widget.Find("a").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		href, ok := sel.Attr("href")
		if !ok {
			extractErr = errors.NewStructure("archive list item missing href", "")
			return false
		}

		item, err := parseArchiveHref(href)
		if err != nil {
			extractErr = err
			return false
		}

		items = append(items, item)
		return true
	})
	if extractErr != nil {
		return nil, extractErr
	}

	// Oldest archive entry first.
	for i, j := 0, len(items)-1; i < j; i, j = i+1, j-1 {
		items[i], items[j] = items[j], items[i]
	}

	return items, nil
}

// parseArchiveHref parses an archive link of the form .../<year>/<month>/.
func parseArchiveHref(href string) (models.DownloadItem, error) {
	var tokens []string
	for _, part := range strings.Split(href, "/") {
		if part != "" {
			tokens = append(tokens, part)
		}
	}
	if len(tokens) < 2 {
		return models.DownloadItem{}, errors.NewStructure("archive href has no year/month segments", href)
	}

	// Trailing segments are <year>/<month>.
	month, err := strconv.Atoi(tokens[len(tokens)-1])
	if err != nil {
		return models.DownloadItem{}, errors.NewStructure(fmt.Sprintf("invalid archive month: %v", err), href)
	}
	year, err := strconv.Atoi(tokens[len(tokens)-2])
	if err != nil {
		return models.DownloadItem{}, errors.NewStructure(fmt.Sprintf("invalid archive year: %v", err), href)
	}

	return models.DownloadItem{Year: year, Month: month, Href: href}, nil
}

// ExtractPosts returns every post article on a listing page, in document
// order. A post missing its id attribute, title, or title link aborts
// extraction; malformed posts are not skippable.
func ExtractPosts(html string) ([]models.Post, error) {
	doc, err := parse(html)
	if err != nil {
		return nil, err
	}

	var posts []models.Post
	var extractErr error

	doc.Find(postSelector).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		id, ok := sel.Attr("id")
		if !ok {
			extractErr = errors.NewStructure("article missing id attribute", "")
			return false
		}

		title := sel.Find(postTitleSelector).First()
		if title.Length() == 0 {
			extractErr = errors.NewStructure(fmt.Sprintf("article title not found in article %q", id), "")
			return false
		}

		anchor := title.Find("a").First()
		if anchor.Length() == 0 {
			extractErr = errors.NewStructure(fmt.Sprintf("article address not found in article %q", id), "")
			return false
		}

		href, ok := anchor.Attr("href")
		if !ok {
			extractErr = errors.NewStructure(fmt.Sprintf("article address missing href in article %q", id), "")
			return false
		}

		posts = append(posts, models.Post{ID: id, Href: href})
		return true
	})
	if extractErr != nil {
		return nil, extractErr
	}

	return posts, nil
}

// ExtractImageSources collects the download candidates from a post page:
// every image source inside the main content block, plus the target of the
// enclosing link when the image is the direct child of an anchor (galleries
// link the full-size image from a thumbnail).
func ExtractImageSources(html string) ([]string, error) {
	doc, err := parse(html)
	if err != nil {
		return nil, err
	}

	content := doc.Find(contentSelector).First()
	if content.Length() == 0 {
		return nil, errors.NewStructure("content block not found", "")
	}

	var sources []string
	var extractErr error

	content.Find("img").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		src, ok := sel.Attr("src")
		if !ok {
			extractErr = errors.NewStructure("image missing src attribute", "")
			return false
		}
		sources = append(sources, src)

		parent := sel.Parent()
		if goquery.NodeName(parent) != "a" {
			return true
		}

		href, ok := parent.Attr("href")
		if !ok {
			extractErr = errors.NewStructure("image parent link missing href", src)
			return false
		}
		sources = append(sources, href)
		return true
	})
	if extractErr != nil {
		return nil, extractErr
	}

	return sources, nil
}

func parse(html string) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, errors.NewStructure(fmt.Sprintf("failed to parse HTML: %v", err), "")
	}
	return doc, nil
}
