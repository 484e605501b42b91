package service

import (
	"regexp"
	"strings"
)

// Claim patterns marketing copy may not make without substantiation
var claimPattern = regexp.MustCompile(`(?i)\b(guaranteed|risk[- ]free|scientifically proven|no\.? ?1|cure[sd]?)\b`)

// FindingSeverity classifies a compliance finding
type FindingSeverity string

const (
	SeverityWarning FindingSeverity = "warning"
	SeverityBlocker FindingSeverity = "blocker"
)

// Finding one flagged span in scanned content
type Finding struct {
	Term     string          `json:"term"`
	Index    int             `json:"index"`
	Severity FindingSeverity `json:"severity"`
	Message  string          `json:"message"`
}

// ComplianceService scans marketing copy for banned phrases and
// unsupported claims. Findings are advisory: the scan never blocks
// persistence by itself.
type ComplianceService interface {
	Scan(content string) []Finding
}

type complianceService struct {
	bannedPhrases []string
}

// NewComplianceService creates a new ComplianceService. bannedPhrases
// come from tenant-independent platform config.
func NewComplianceService(bannedPhrases []string) ComplianceService {
	return &complianceService{bannedPhrases: bannedPhrases}
}

func (s *complianceService) Scan(content string) []Finding {
	findings := []Finding{}
	lower := strings.ToLower(content)

	for _, phrase := range s.bannedPhrases {
		p := strings.ToLower(phrase)
		if p == "" {
			continue
		}
		for idx := strings.Index(lower, p); idx >= 0; {
			findings = append(findings, Finding{
				Term:     phrase,
				Index:    idx,
				Severity: SeverityBlocker,
				Message:  "banned phrase",
			})
			next := strings.Index(lower[idx+len(p):], p)
			if next < 0 {
				break
			}
			idx = idx + len(p) + next
		}
	}

	for _, loc := range claimPattern.FindAllStringIndex(content, -1) {
		findings = append(findings, Finding{
			Term:     content[loc[0]:loc[1]],
			Index:    loc[0],
			Severity: SeverityWarning,
			Message:  "unsupported marketing claim",
		})
	}

	findings = append(findings, scanLinks(content)...)

	return findings
}
