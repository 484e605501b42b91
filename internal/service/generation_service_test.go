package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/draftforge/draftforge-backend/internal/domain"
)

func TestBlogDraft(t *testing.T) {
	svc := NewGenerationService("draftforge-copy-1")
	company := &domain.Company{Name: "Acme", Industry: "logistics", BrandVoice: "warm"}
	profile := &domain.WriterProfile{Tone: "confident", Audience: "operations leads"}

	copyOut := svc.BlogDraft(company, profile, "shipment tracking", "freight, visibility")

	assert.Contains(t, copyOut.Title, "Shipment Tracking")
	assert.Contains(t, copyOut.Body, "Acme")
	assert.Contains(t, copyOut.Body, "logistics")
	assert.Contains(t, copyOut.Body, "operations leads")
	assert.Contains(t, copyOut.Body, "Keywords: freight, visibility")
	assert.Contains(t, copyOut.Prompt, "confident")
	assert.Equal(t, "draftforge-copy-1", copyOut.Model)
	assert.NotEmpty(t, copyOut.Excerpt)
}

func TestBlogDraftVoiceFallbacks(t *testing.T) {
	svc := NewGenerationService("draftforge-copy-1")

	// Profile tone wins, then brand voice, then the default
	tests := []struct {
		name    string
		company *domain.Company
		profile *domain.WriterProfile
		voice   string
	}{
		{"profile tone", &domain.Company{Name: "A", BrandVoice: "warm"}, &domain.WriterProfile{Tone: "playful"}, "playful"},
		{"brand voice", &domain.Company{Name: "A", BrandVoice: "warm"}, &domain.WriterProfile{}, "warm"},
		{"default", &domain.Company{Name: "A"}, &domain.WriterProfile{}, "clear and direct"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			copyOut := svc.BlogDraft(tt.company, tt.profile, "topic", "")
			assert.Contains(t, copyOut.Prompt, "Voice: "+tt.voice)
		})
	}
}

func TestSocialDraft(t *testing.T) {
	svc := NewGenerationService("draftforge-copy-1")
	company := &domain.Company{Name: "Acme"}
	profile := &domain.WriterProfile{Tone: "playful"}

	copyOut := svc.SocialDraft(company, profile, domain.PlatformTwitter, "Remote Work Tips")

	assert.Contains(t, copyOut.Body, "Acme")
	assert.Equal(t, "#remote #work #tips", copyOut.Hashtags)
	assert.Contains(t, copyOut.Body, "give it a try")
	assert.Equal(t, "draftforge-copy-1", copyOut.Model)
}

func TestSocialDraftLinkedInLongForm(t *testing.T) {
	svc := NewGenerationService("draftforge-copy-1")
	company := &domain.Company{Name: "Acme"}
	profile := &domain.WriterProfile{}

	short := svc.SocialDraft(company, profile, domain.PlatformTwitter, "brand voice")
	long := svc.SocialDraft(company, profile, domain.PlatformLinkedIn, "brand voice")

	assert.Greater(t, len(long.Body), len(short.Body))
	assert.Contains(t, long.Body, "Three takeaways")
}

func TestGenerationIsDeterministic(t *testing.T) {
	svc := NewGenerationService("draftforge-copy-1")
	company := &domain.Company{Name: "Acme"}
	profile := &domain.WriterProfile{}

	a := svc.BlogDraft(company, profile, "pricing pages", "")
	b := svc.BlogDraft(company, profile, "pricing pages", "")
	assert.Equal(t, a, b)
}

func TestHashtagsStripPunctuation(t *testing.T) {
	svc := NewGenerationService("m")
	copyOut := svc.SocialDraft(&domain.Company{Name: "A"}, &domain.WriterProfile{}, domain.PlatformTwitter, "Q4 launch: what's next?")
	for _, tag := range strings.Fields(copyOut.Hashtags) {
		assert.Regexp(t, `^#[a-z0-9]+$`, tag)
	}
}
