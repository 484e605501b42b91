package service

import (
	"regexp"
	"strings"
)

// URL pattern to extract links from content
var urlPattern = regexp.MustCompile(`https?://[^\s<>"']+`)

// Shortened links hide their destination from the reader, so published
// marketing copy flags them for review
var shortenerDomains = []string{
	"bit.ly",
	"tinyurl.com",
	"goo.gl",
	"t.co",
	"ow.ly",
	"rebrand.ly",
}

// scanLinks flags shortened and non-HTTPS links in content
func scanLinks(content string) []Finding {
	var findings []Finding

	for _, loc := range urlPattern.FindAllStringIndex(content, -1) {
		url := content[loc[0]:loc[1]]
		lower := strings.ToLower(url)

		if shortened(lower) {
			findings = append(findings, Finding{
				Term:     url,
				Index:    loc[0],
				Severity: SeverityWarning,
				Message:  "shortened link hides its destination",
			})
			continue
		}
		if strings.HasPrefix(lower, "http://") {
			findings = append(findings, Finding{
				Term:     url,
				Index:    loc[0],
				Severity: SeverityWarning,
				Message:  "insecure link, use https",
			})
		}
	}
	return findings
}

func shortened(url string) bool {
	for _, domain := range shortenerDomains {
		if strings.Contains(url, domain+"/") || strings.HasSuffix(url, domain) {
			return true
		}
	}
	return false
}
