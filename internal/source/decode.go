package source

import (
	"bytes"
	"io"
	"net/url"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/charset"
)

// decodeHTML converts raw file bytes to a UTF-8 string.
func decodeHTML(data []byte) (string, error) {
	_, name, _ := charset.DetermineEncoding(data, "text/html")
	if name == "utf-8" {
		// Strip a UTF-8 byte order mark; the markup itself is already valid.
		return string(bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))), nil
	}

	r, err := charset.NewReader(bytes.NewReader(data), "text/html")
	if err != nil {
		return "", err
	}
	decoded, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	return string(decoded), nil
}

// canonicalURL returns the absolute http(s) href of the first
// <link rel="canonical"> in markup, or "" when there is none.
// Only the head is scanned; tokenizing stops at <body>.
func canonicalURL(markup string) string {
	z := html.NewTokenizer(strings.NewReader(markup))
	for {
		switch z.Next() {
		case html.ErrorToken:
			return ""
		case html.StartTagToken, html.SelfClosingTagToken:
			name, hasAttr := z.TagName()
			switch string(name) {
			case "body":
				return ""
			case "link":
				if !hasAttr {
					continue
				}
				if href := canonicalHref(z); href != "" {
					return href
				}
			}
		}
	}
}

func canonicalHref(z *html.Tokenizer) string {
	var rel, href string
	for {
		key, val, more := z.TagAttr()
		switch string(key) {
		case "rel":
			rel = strings.ToLower(string(val))
		case "href":
			href = strings.TrimSpace(string(val))
		}
		if !more {
			break
		}
	}

	if !containsToken(rel, "canonical") {
		return ""
	}
	u, err := url.Parse(href)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return ""
	}
	return u.String()
}

// containsToken reports whether the space-separated list has tok.
func containsToken(list, tok string) bool {
	for _, f := range strings.Fields(list) {
		if f == tok {
			return true
		}
	}
	return false
}
