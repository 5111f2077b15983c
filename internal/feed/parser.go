package feed

import (
	"regexp"
	"strings"

	"FinBoard/internal/domain/models"
)

// summaryCap bounds article summaries after HTML stripping.
const summaryCap = 300

// Upstream feeds are frequently malformed XML (unescaped ampersands, stray
// markup inside CDATA), so a strict XML decoder rejects feeds a browser
// renders fine. Field extraction is done with permissive regexes instead:
// a feed that matches nothing yields an empty list, never an error.
var (
	atomEntryRe = regexp.MustCompile(`(?s)<entry>(.*?)</entry>`)
	rssItemRe   = regexp.MustCompile(`(?s)<item>(.*?)</item>`)

	atomTitleRe   = regexp.MustCompile(`(?s)<title[^>]*>(?:<!\[CDATA\[)?(.*?)(?:\]\]>)?</title>`)
	atomLinkRe    = regexp.MustCompile(`<link[^>]*href="([^"]+)"`)
	atomLinkTagRe = regexp.MustCompile(`(?s)<link[^>]*>(.*?)</link>`)
	publishedRe   = regexp.MustCompile(`<published>(.*?)</published>`)
	updatedRe     = regexp.MustCompile(`<updated>(.*?)</updated>`)
	summaryRe     = regexp.MustCompile(`(?s)<summary[^>]*>(?:<!\[CDATA\[)?(.*?)(?:\]\]>)?</summary>`)

	rssTitleRe = regexp.MustCompile(`(?s)<title>(?:<!\[CDATA\[)?(.*?)(?:\]\]>)?</title>`)
	rssLinkRe  = regexp.MustCompile(`(?s)<link>(.*?)</link>`)
	rssGUIDRe  = regexp.MustCompile(`(?s)<guid[^>]*isPermaLink="true"[^>]*>(.*?)</guid>`)
	pubDateRe  = regexp.MustCompile(`<pubDate>(.*?)</pubDate>`)
	rssDescRe  = regexp.MustCompile(`(?s)<description>(?:<!\[CDATA\[)?(.*?)(?:\]\]>)?</description>`)

	htmlTagRe = regexp.MustCompile(`<[^>]+>`)
)

// Parse converts raw RSS or Atom XML into article records. Entries without a
// title are dropped; sentiment is left unset for the orchestrator to fill.
func Parse(xml, sourceName string) []models.ArticleRecord {
	if strings.Contains(xml, "<feed") {
		return parseAtom(xml, sourceName)
	}
	return parseRSS(xml, sourceName)
}

func parseAtom(xml, sourceName string) []models.ArticleRecord {
	var items []models.ArticleRecord
	for _, m := range atomEntryRe.FindAllStringSubmatch(xml, -1) {
		entry := m[1]

		title := strings.TrimSpace(first(atomTitleRe, entry))
		if title == "" {
			continue
		}

		// Prefer the href attribute form; some feeds put the URL in the
		// element body instead.
		link := first(atomLinkRe, entry)
		if link == "" {
			link = strings.TrimSpace(first(atomLinkTagRe, entry))
		}

		published := first(publishedRe, entry)
		if published == "" {
			published = first(updatedRe, entry)
		}

		items = append(items, models.ArticleRecord{
			Title:       title,
			URL:         link,
			PublishedAt: published,
			Summary:     cleanSummary(first(summaryRe, entry)),
			Source:      sourceName,
		})
	}
	return items
}

func parseRSS(xml, sourceName string) []models.ArticleRecord {
	var items []models.ArticleRecord
	for _, m := range rssItemRe.FindAllStringSubmatch(xml, -1) {
		item := m[1]

		title := strings.TrimSpace(first(rssTitleRe, item))
		if title == "" {
			continue
		}

		link := strings.TrimSpace(first(rssLinkRe, item))
		if link == "" {
			link = strings.TrimSpace(first(rssGUIDRe, item))
		}

		items = append(items, models.ArticleRecord{
			Title:       title,
			URL:         link,
			PublishedAt: first(pubDateRe, item),
			Summary:     cleanSummary(first(rssDescRe, item)),
			Source:      sourceName,
		})
	}
	return items
}

func first(re *regexp.Regexp, s string) string {
	if m := re.FindStringSubmatch(s); m != nil {
		return m[1]
	}
	return ""
}

func cleanSummary(s string) string {
	s = strings.TrimSpace(htmlTagRe.ReplaceAllString(s, ""))
	if r := []rune(s); len(r) > summaryCap {
		s = string(r[:summaryCap])
	}
	return s
}
