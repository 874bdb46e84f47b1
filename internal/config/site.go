package config

import (
	"net/url"
	"slices"
	"sort"
	"strings"
)

// SiteConfig holds site-specific configuration for a single host.
type SiteConfig struct {
	// SiteDomains are extra hosts whose absolute links count as internal
	// when auditing this site, e.g. a www alias or a blog subdomain.
	SiteDomains []string `yaml:"siteDomains,omitempty"`

	// IgnorePatterns are url path patterns to skip when loading pages.
	// Patterns use glob syntax.
	IgnorePatterns []string `yaml:"ignorePatterns,omitempty"`

	// FollowPatterns are url path patterns to audit.
	// If specified, only pages matching these patterns are audited.
	FollowPatterns []string `yaml:"followPatterns,omitempty"`
}

// File represents the structure of the .pageaudit configuration file.
type File struct {
	// Sites maps hosts to their site-specific configurations.
	// Keys are hosts without scheme or port (e.g., "shop.example.com").
	Sites map[string]SiteConfig `yaml:"sites,omitempty"`

	// Defaults contains default site configuration applied to all sites
	// unless overridden in the site-specific configuration.
	Defaults SiteConfig `yaml:"defaults,omitempty"`
}

// GetSiteConfig returns the configuration for a host.
// Site domains are merged with the defaults; patterns replace them.
func (cf *File) GetSiteConfig(host string) SiteConfig {
	result := SiteConfig{
		SiteDomains:    slices.Clone(cf.Defaults.SiteDomains),
		IgnorePatterns: cf.Defaults.IgnorePatterns,
		FollowPatterns: cf.Defaults.FollowPatterns,
	}

	siteConfig, ok := cf.Sites[strings.ToLower(host)]
	if !ok {
		return result
	}

	for _, d := range siteConfig.SiteDomains {
		if !slices.Contains(result.SiteDomains, d) {
			result.SiteDomains = append(result.SiteDomains, d)
		}
	}
	if len(siteConfig.IgnorePatterns) > 0 {
		result.IgnorePatterns = siteConfig.IgnorePatterns
	}
	if len(siteConfig.FollowPatterns) > 0 {
		result.FollowPatterns = siteConfig.FollowPatterns
	}
	return result
}

// GetSiteConfigForURL is GetSiteConfig keyed by the host of rawURL.
func (cf *File) GetSiteConfigForURL(rawURL string) SiteConfig {
	u, err := url.Parse(rawURL)
	if err != nil {
		return cf.GetSiteConfig("")
	}
	return cf.GetSiteConfig(u.Hostname())
}

// SiteDomains returns every host the file knows about: the site keys, their
// extra domains and the default domains, sorted and without duplicates.
// A run usually audits one site, so all of them count as internal.
func (cf *File) SiteDomains() []string {
	seen := make(map[string]struct{})
	add := func(d string) {
		d = strings.ToLower(strings.TrimSpace(d))
		if d != "" {
			seen[d] = struct{}{}
		}
	}

	for _, d := range cf.Defaults.SiteDomains {
		add(d)
	}
	for host, sc := range cf.Sites {
		add(host)
		for _, d := range sc.SiteDomains {
			add(d)
		}
	}

	domains := make([]string, 0, len(seen))
	for d := range seen {
		domains = append(domains, d)
	}
	sort.Strings(domains)
	return domains
}
