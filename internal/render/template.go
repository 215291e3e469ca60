// Copyright (c) 2026 AMPBoard Team
// AMPBoard - local development dashboard
// This source code is licensed under the MIT license found in the LICENSE file.

package render

import (
	"bytes"
	"errors"
	"html"
	"io"
	"net/url"
	"strings"

	"github.com/ampboard/ampboard/internal/model"
	"github.com/ampboard/ampboard/internal/vhost"
	nethtml "golang.org/x/net/html"
)

// FallbackTemplateHTML is used when neither the requested nor the "basic"
// template exists.
const FallbackTemplateHTML = `<li><a href="/` + model.Placeholder + `">` + model.Placeholder + `</a></li>`

// keptTags survive link stripping; everything else loses its tags but keeps
// its text.
var keptTags = map[string]bool{"li": true, "div": true, "span": true}

// ResolveTemplate returns the HTML of the named template, falling back to the
// "basic" template and then to FallbackTemplateHTML.
func ResolveTemplate(name string, templates map[string]model.Template) string {
	if t, ok := templates[name]; ok {
		return t.HTML
	}
	if t, ok := templates[model.DefaultTemplateName]; ok {
		return t.HTML
	}
	return FallbackTemplateHTML
}

// Substitute replaces every placeholder in templateHTML with the HTML-escaped
// name.
func Substitute(templateHTML, name string) string {
	return strings.ReplaceAll(templateHTML, model.Placeholder, html.EscapeString(name))
}

// Item renders one list item. With disableLinks set, all tags other than
// li, div and span are removed.
func Item(templateHTML, name string, disableLinks bool) string {
	out := Substitute(templateHTML, name)
	if disableLinks {
		out = StripTags(out)
	}
	return out
}

// StripTags removes every tag except li, div and span, keeping text content.
// Comments and doctypes are dropped.
func StripTags(markup string) string {
	z := nethtml.NewTokenizer(strings.NewReader(markup))
	var b bytes.Buffer
	for {
		tt := z.Next()
		switch tt {
		case nethtml.ErrorToken:
			if !errors.Is(z.Err(), io.EOF) {
				b.Write(z.Raw())
			}
			return b.String()
		case nethtml.TextToken:
			b.Write(z.Raw())
		case nethtml.StartTagToken, nethtml.EndTagToken, nethtml.SelfClosingTagToken:
			raw := append([]byte(nil), z.Raw()...)
			name, _ := z.TagName()
			if keptTags[string(name)] {
				b.Write(raw)
			}
		}
	}
}

// ExtractHosts returns the lower-cased hosts of every href-like attribute in
// markup, without duplicates, in document order. Relative links have no host
// and contribute nothing.
func ExtractHosts(markup string) []string {
	z := nethtml.NewTokenizer(strings.NewReader(markup))
	var hosts []string
	seen := make(map[string]struct{})
	for {
		tt := z.Next()
		if tt == nethtml.ErrorToken {
			return hosts
		}
		if tt != nethtml.StartTagToken && tt != nethtml.SelfClosingTagToken {
			continue
		}
		_, hasAttr := z.TagName()
		for hasAttr {
			var key, val []byte
			key, val, hasAttr = z.TagAttr()
			if !isHrefAttr(string(key)) {
				continue
			}
			host := hrefHost(string(val))
			if host == "" {
				continue
			}
			if _, ok := seen[host]; ok {
				continue
			}
			seen[host] = struct{}{}
			hosts = append(hosts, host)
		}
	}
}

func isHrefAttr(key string) bool {
	return key == "href" || strings.HasSuffix(key, "-href")
}

func hrefHost(href string) string {
	u, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return ""
	}
	return vhost.NormalizeHost(u.Hostname())
}
