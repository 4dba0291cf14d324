package http

import (
	"io"
	"net/url"
	"strings"

	"github.com/beevik/etree"
	"github.com/s4ng4/winelist"
)

// SitemapNamespace is the XML namespace of a sitemap urlset.
const SitemapNamespace = "http://www.sitemaps.org/schemas/sitemap/0.9"

// Pages of the wine-list site.
const (
	PageHome    = "/"
	PageRegions = "/regions.html"
	PageWines   = "/wines.html"
	PageDetails = "/wine-details.html"
)

// SitemapURLs returns the page URLs of the site under baseURL: the home,
// regions and wines pages, one wines page per region and family present,
// and one details page per numbered wine. Duplicate wine numbers are
// listed once.
func SitemapURLs(baseURL string, c *winelist.Catalog) []string {
	base := strings.TrimRight(baseURL, "/")
	urls := []string{base + PageHome, base + PageRegions, base + PageWines}

	for _, region := range c.Regions() {
		urls = append(urls, base+PageWines+"?region="+url.QueryEscape(region))
	}

	families := c.Report().Families
	for _, f := range winelist.Families() {
		if families[f] > 0 {
			urls = append(urls, base+PageWines+"?family="+url.QueryEscape(string(f)))
		}
	}

	seen := make(map[string]bool)
	for _, w := range c.Wines() {
		if w.Number == "" || seen[w.Number] {
			continue
		}
		seen[w.Number] = true
		urls = append(urls, base+PageDetails+"?id="+url.QueryEscape(w.Number))
	}

	return urls
}

// WriteSitemap writes the sitemap of the site under baseURL to w.
func WriteSitemap(w io.Writer, baseURL string, c *winelist.Catalog) error {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	urlset := doc.CreateElement("urlset")
	urlset.CreateAttr("xmlns", SitemapNamespace)
	for _, u := range SitemapURLs(baseURL, c) {
		urlset.CreateElement("url").CreateElement("loc").SetText(u)
	}

	doc.Indent(2)
	_, err := doc.WriteTo(w)
	return err
}

// ParseSitemap returns the <loc> URLs of a sitemap urlset.
func ParseSitemap(r io.Reader) ([]string, error) {
	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(r); err != nil {
		return nil, winelist.Errorf(winelist.EINVALID, "invalid sitemap: %s", err)
	}

	root := doc.SelectElement("urlset")
	if root == nil {
		return nil, winelist.Errorf(winelist.EINVALID, "sitemap has no urlset")
	}

	var urls []string
	for _, urlEl := range root.SelectElements("url") {
		loc := urlEl.SelectElement("loc")
		if loc == nil {
			continue
		}
		if u := strings.TrimSpace(loc.Text()); u != "" {
			urls = append(urls, u)
		}
	}
	return urls, nil
}
