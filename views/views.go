// Package views holds the hand-written templ components that render the
// generated pages and the serve-mode dashboard. Dynamic values are escaped;
// post HTML fragments are written through as-is.
package views

import (
	"context"
	"html"
	"io"
	"strconv"
	"strings"

	"github.com/a-h/templ"
)

const siteCSS = `:root{color-scheme:light dark}body{max-width:46rem;margin:0 auto;padding:2rem 1rem;font-family:Georgia,serif;line-height:1.6}header nav{margin-bottom:2rem}h1,h2,h3{line-height:1.2}a{color:inherit}pre{overflow-x:auto;padding:1rem;background:rgba(128,128,128,.12)}code{font-family:ui-monospace,monospace}ul.posts{list-style:none;padding:0}ul.posts li{margin-bottom:1.5rem}ul.posts time{display:block;font-size:.85rem;opacity:.7}footer{margin-top:3rem;font-size:.85rem;opacity:.7}`

// page wraps a body writer in the shared document shell.
func page(site Site, meta PageMeta, jsonLD string, body func(b *strings.Builder)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString("<!DOCTYPE html>\n<html lang=\"en\"><head><meta charset=\"utf-8\"/>")
		b.WriteString(`<meta name="viewport" content="width=device-width, initial-scale=1"/>`)
		b.WriteString("<title>" + html.EscapeString(meta.Title) + "</title>")
		if meta.Description != "" {
			b.WriteString(`<meta name="description" content="` + html.EscapeString(meta.Description) + `"/>`)
		}
		if meta.URL != "" {
			b.WriteString(`<link rel="canonical" href="` + html.EscapeString(meta.URL) + `"/>`)
			b.WriteString(`<meta property="og:url" content="` + html.EscapeString(meta.URL) + `"/>`)
		}
		b.WriteString(`<meta property="og:title" content="` + html.EscapeString(meta.Title) + `"/>`)
		if meta.OGType != "" {
			b.WriteString(`<meta property="og:type" content="` + meta.OGType + `"/>`)
		}
		b.WriteString(`<link rel="alternate" type="application/rss+xml" title="` + html.EscapeString(site.Name) + `" href="/feed.xml"/>`)
		b.WriteString("<style>" + siteCSS + "</style>")
		if jsonLD != "" {
			b.WriteString(`<script type="application/ld+json">` + jsonLD + `</script>`)
		}
		b.WriteString("</head><body>")
		b.WriteString(`<header><nav><a href="/">` + html.EscapeString(site.Name) + `</a></nav></header>`)
		body(&b)
		b.WriteString("<footer>")
		if site.Author != "" {
			b.WriteString(html.EscapeString(site.Author) + " &middot; ")
		}
		b.WriteString(`<a href="/feed.xml">RSS</a></footer>`)
		b.WriteString("</body></html>\n")
		_, err := io.WriteString(w, b.String())
		return err
	})
}

// IndexPage renders the listing of all posts, newest first.
func IndexPage(site Site, entries []Entry) templ.Component {
	meta := PageMeta{
		Title:       site.Name,
		Description: site.Description,
		URL:         buildURL(site.URL),
		OGType:      "website",
	}
	return page(site, meta, WebsiteJsonLD(site), func(b *strings.Builder) {
		b.WriteString("<main><h1>" + html.EscapeString(site.Name) + "</h1>")
		if site.Description != "" {
			b.WriteString("<p>" + html.EscapeString(site.Description) + "</p>")
		}
		if len(entries) == 0 {
			b.WriteString("<p>No posts yet.</p>")
		} else {
			b.WriteString(`<ul class="posts">`)
			for _, e := range entries {
				b.WriteString("<li>")
				b.WriteString(`<time datetime="` + e.Date + `">` + FormatDate(e.Date) + "</time>")
				b.WriteString(`<a href="` + html.EscapeString(e.Link) + `">` + html.EscapeString(e.Title) + "</a>")
				if e.Summary != "" {
					b.WriteString("<p>" + html.EscapeString(e.Summary) + "</p>")
				}
				b.WriteString("</li>")
			}
			b.WriteString("</ul>")
		}
		b.WriteString("</main>")
	})
}

// PostPage renders a single post page around its pre-rendered HTML fragment.
func PostPage(site Site, post Post) templ.Component {
	meta := PageMeta{
		Title:       post.Title + " | " + site.Name,
		Description: post.Summary,
		URL:         buildURL(site.URL, post.Slug),
		OGType:      "article",
	}
	return page(site, meta, BlogPostingJsonLD(site, post), func(b *strings.Builder) {
		b.WriteString("<main><article>")
		b.WriteString("<h1>" + html.EscapeString(post.Title) + "</h1>")
		b.WriteString(`<p><time datetime="` + post.Date + `">` + FormatDate(post.Date) + "</time>")
		if len(post.Tags) > 0 {
			b.WriteString(" &middot; " + html.EscapeString(JoinTags(post.Tags)))
		}
		b.WriteString("</p>")
		b.WriteString(post.HTML)
		b.WriteString("</article></main>")
	})
}

// NotFound renders the serve-mode 404 page.
func NotFound(site Site) templ.Component {
	meta := PageMeta{Title: "Not found | " + site.Name}
	return page(site, meta, "", func(b *strings.Builder) {
		b.WriteString(`<main><h1>Page not found</h1><p><a href="/">Back to the index.</a></p></main>`)
	})
}

// StatsLogin renders the dashboard login form.
func StatsLogin(site Site, showError bool, csrfToken string) templ.Component {
	meta := PageMeta{Title: "Stats login | " + site.Name}
	return page(site, meta, "", func(b *strings.Builder) {
		b.WriteString("<main><h1>Stats</h1>")
		if showError {
			b.WriteString("<p>Wrong password.</p>")
		}
		b.WriteString(`<form method="post" action="/stats/login/">`)
		b.WriteString(`<input type="hidden" name="_csrf" value="` + html.EscapeString(csrfToken) + `"/>`)
		b.WriteString(`<input type="password" name="password" autofocus/> <button type="submit">Log in</button>`)
		b.WriteString("</form></main>")
	})
}

// StatsDashboard renders visit totals, top pages, and a per-day breakdown.
func StatsDashboard(site Site, s StatsSummary, csrfToken string) templ.Component {
	meta := PageMeta{Title: "Stats | " + site.Name}
	return page(site, meta, "", func(b *strings.Builder) {
		b.WriteString("<main><h1>Stats</h1>")
		b.WriteString("<p>" + strconv.Itoa(s.TotalVisits) + " visits from " + strconv.Itoa(s.UniqueVisitors) + " visitors in the last 30 days.</p>")
		b.WriteString("<h2>Top pages</h2><table><thead><tr><th>Path</th><th>Visits</th></tr></thead><tbody>")
		for _, p := range s.TopPages {
			b.WriteString("<tr><td>" + html.EscapeString(p.Path) + "</td><td>" + strconv.Itoa(p.Count) + "</td></tr>")
		}
		b.WriteString("</tbody></table>")
		b.WriteString("<h2>By day</h2><table><thead><tr><th>Day</th><th>Visits</th></tr></thead><tbody>")
		for _, d := range s.Days {
			b.WriteString("<tr><td>" + d.Day + "</td><td>" + strconv.Itoa(d.Count) + "</td></tr>")
		}
		b.WriteString("</tbody></table>")
		b.WriteString(`<form method="post" action="/stats/logout/">`)
		b.WriteString(`<input type="hidden" name="_csrf" value="` + html.EscapeString(csrfToken) + `"/>`)
		b.WriteString(`<button type="submit">Log out</button></form></main>`)
	})
}
