// Copyright (c) 2026 AMPBoard Team
// AMPBoard - local development dashboard
// This source code is licensed under the MIT license found in the LICENSE file.

package urlname

import (
	"fmt"
	"regexp"
	"strings"
)

// delimiters are the characters accepted around a PCRE-style pattern such
// as /^v\d+/i. Bracket pairs are not accepted so that a bare RE2 pattern
// like [a-z]+ keeps its meaning.
const delimiters = "/#~!@%|`;,"

// CompilePattern compiles a column pattern. Patterns written with delimiters
// and trailing flags (/^v\d+/i) are translated to RE2 syntax; anything else
// is compiled as RE2 directly.
func CompilePattern(pattern string) (*regexp.Regexp, error) {
	expr, err := translatePattern(strings.TrimSpace(pattern))
	if err != nil {
		return nil, err
	}
	return regexp.Compile(expr)
}

func translatePattern(p string) (string, error) {
	if len(p) < 2 || !strings.ContainsRune(delimiters, rune(p[0])) {
		return p, nil
	}
	delim := p[0]
	end := strings.LastIndexByte(p, delim)
	if end <= 0 {
		return p, nil
	}
	flags := p[end+1:]
	for _, r := range flags {
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') {
			// Not a delimited pattern after all.
			return p, nil
		}
	}

	body := p[1:end]
	var inline strings.Builder
	anchored := false
	for _, f := range flags {
		switch f {
		case 'i', 'm', 's', 'U':
			if !strings.ContainsRune(inline.String(), f) {
				inline.WriteRune(f)
			}
		case 'u', 'D':
			// RE2 is UTF-8 aware and $ already means end of text.
		case 'A':
			anchored = true
		default:
			return "", fmt.Errorf("unsupported pattern modifier %q", f)
		}
	}
	if anchored {
		body = `\A(?:` + body + `)`
	}
	if inline.Len() > 0 {
		body = "(?" + inline.String() + ")" + body
	}
	return body, nil
}
