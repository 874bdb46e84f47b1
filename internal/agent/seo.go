package agent

import (
	"net/url"
	"regexp"
	"strings"
)

// MinInternalLinks is the number of internal links a page needs to avoid
// the internal-linking deduction.
const MinInternalLinks = 3

var (
	titleTagRegex       = regexp.MustCompile(`(?is)<title[^>]*>.*?</title>`)
	metaDescriptionRe   = regexp.MustCompile(`(?i)<meta[^>]+name\s*=\s*["']description["']`)
	jsonLDRegex         = regexp.MustCompile(`(?i)application/ld\+json`)
	hrefRegex           = regexp.MustCompile(`(?i)href\s*=\s*["']([^"']*)["']`)
	lazyLoadingRegex    = regexp.MustCompile(`(?i)loading\s*=\s*["']?lazy`)
	srcsetRegex         = regexp.MustCompile(`(?i)\bsrcset\s*=`)
	heavyResourceMarker = regexp.MustCompile(`(?i)large[\s_-]?image|heavy[\s_-]?script`)
)

// SEOAgent checks search metadata, structured data, linking and image loading.
//
// A link is internal when its href starts with "/" or with one of the site
// domains. The host of the audited url is always a site domain.
type SEOAgent struct {
	tableAgent

	// siteDomains are lower-cased hosts whose links count as internal.
	siteDomains []string
}

// NewSEOAgent creates a new SEOAgent.
func NewSEOAgent(opts ...Option) *SEOAgent {
	o := newOptions(opts)

	a := &SEOAgent{}
	for _, d := range o.SiteDomains {
		if d = normalizeHost(d); d != "" {
			a.siteDomains = append(a.siteDomains, d)
		}
	}

	a.tableAgent = tableAgent{
		id:    IDSEO,
		name:  NameSEO,
		clock: o.Clock,
		checks: []Check{
			{
				ID:             "missing_title",
				Deduction:      25,
				Issue:          "Missing title tag",
				Recommendation: "Add a unique, descriptive <title> of 50-60 characters",
				Failed:         missing(titleTagRegex),
			},
			{
				ID:             "missing_meta_description",
				Deduction:      20,
				Issue:          "Missing meta description",
				Recommendation: "Add <meta name=\"description\"> summarizing the page in 150-160 characters",
				Failed:         missing(metaDescriptionRe),
			},
			{
				ID:             "missing_structured_data",
				Deduction:      15,
				Issue:          "Missing structured data (JSON-LD)",
				Recommendation: "Add a <script type=\"application/ld+json\"> block describing the page entity",
				Failed:         missing(jsonLDRegex),
			},
			{
				ID:             "few_internal_links",
				Deduction:      10,
				Issue:          "Insufficient internal linking",
				Recommendation: "Link to at least 3 related pages on the same site",
				Failed: func(p Page) bool {
					return a.CountInternalLinks(p.URL, p.HTML) < MinInternalLinks
				},
			},
			{
				ID:             "images_not_optimized",
				Deduction:      10,
				Issue:          "Images without lazy loading or responsive srcset",
				Recommendation: "Add loading=\"lazy\" or a srcset to every image",
				Failed: func(p Page) bool {
					return anyImage(p.HTML, func(tag string) bool {
						return !lazyLoadingRegex.MatchString(tag) && !srcsetRegex.MatchString(tag)
					})
				},
			},
			{
				ID:             "heavy_resources",
				Deduction:      10,
				Issue:          "Large images or heavy scripts detected",
				Recommendation: "Compress large images and defer or split heavy scripts",
				Failed:         present(heavyResourceMarker),
			},
		},
	}

	return a
}

// CountInternalLinks counts href values that point inside the site.
func (a *SEOAgent) CountInternalLinks(pageURL, html string) int {
	domains := a.siteDomains
	if host := hostOf(pageURL); host != "" {
		domains = append([]string{host}, domains...)
	}

	count := 0
	for _, m := range hrefRegex.FindAllStringSubmatch(html, -1) {
		if isInternalHref(strings.TrimSpace(m[1]), domains) {
			count++
		}
	}
	return count
}

// isInternalHref reports whether href starts with "/" or a site domain,
// with or without an http(s) scheme.
func isInternalHref(href string, domains []string) bool {
	if strings.HasPrefix(href, "/") {
		return true
	}

	rest := strings.ToLower(href)
	for _, scheme := range []string{"https://", "http://"} {
		if strings.HasPrefix(rest, scheme) {
			rest = strings.TrimPrefix(rest, scheme)
			break
		}
	}

	for _, d := range domains {
		if !strings.HasPrefix(rest, d) {
			continue
		}
		tail := rest[len(d):]
		if tail == "" || strings.ContainsAny(tail[:1], "/:?#") {
			return true
		}
	}
	return false
}

// hostOf returns the lower-cased host of rawURL without a port.
func hostOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return strings.ToLower(u.Hostname())
}

// normalizeHost accepts either a bare host or a url and returns the host.
func normalizeHost(s string) string {
	s = strings.TrimSpace(s)
	if strings.Contains(s, "://") {
		return hostOf(s)
	}
	return strings.ToLower(strings.TrimSuffix(s, "/"))
}
