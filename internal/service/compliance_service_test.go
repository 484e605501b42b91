package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComplianceScan(t *testing.T) {
	svc := NewComplianceService([]string{"miracle", "instant success"})

	tests := []struct {
		name       string
		content    string
		severities []FindingSeverity
	}{
		{
			name:       "clean copy",
			content:    "Our product helps teams write better content.",
			severities: nil,
		},
		{
			name:       "banned phrase",
			content:    "This miracle tool does it all.",
			severities: []FindingSeverity{SeverityBlocker},
		},
		{
			name:       "unsupported claim",
			content:    "Results are guaranteed within a week.",
			severities: []FindingSeverity{SeverityWarning},
		},
		{
			name:       "claim variants",
			content:    "A risk-free, scientifically proven approach.",
			severities: []FindingSeverity{SeverityWarning, SeverityWarning},
		},
		{
			name:       "mixed findings",
			content:    "Instant success, guaranteed.",
			severities: []FindingSeverity{SeverityBlocker, SeverityWarning},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			findings := svc.Scan(tt.content)
			require.Len(t, findings, len(tt.severities))
			for i, f := range findings {
				assert.Equal(t, tt.severities[i], f.Severity)
				assert.GreaterOrEqual(t, f.Index, 0)
				assert.NotEmpty(t, f.Term)
			}
		})
	}
}

func TestComplianceScanCaseInsensitive(t *testing.T) {
	svc := NewComplianceService([]string{"miracle"})

	findings := svc.Scan("MIRACLE results, Guaranteed!")
	require.Len(t, findings, 2)
	assert.Equal(t, SeverityBlocker, findings[0].Severity)
	assert.Equal(t, 0, findings[0].Index)
	assert.Equal(t, "Guaranteed", findings[1].Term)
}

func TestComplianceScanRepeatedPhrase(t *testing.T) {
	svc := NewComplianceService([]string{"miracle"})

	findings := svc.Scan("miracle after miracle")
	require.Len(t, findings, 2)
	assert.Less(t, findings[0].Index, findings[1].Index)
}
