package service

import (
	"fmt"
	"strings"

	"github.com/draftforge/draftforge-backend/internal/domain"
)

// GeneratedCopy templated draft produced by the mock model, with the
// provenance fields recorded in the revision log
type GeneratedCopy struct {
	Title    string
	Body     string
	Excerpt  string
	Hashtags string
	Prompt   string
	Model    string
}

// GenerationService produces templated marketing copy. It stands in
// for a real model behind the same interface: deterministic output
// assembled from the company's brand voice and the writer persona.
type GenerationService interface {
	BlogDraft(company *domain.Company, profile *domain.WriterProfile, topic, keywords string) GeneratedCopy
	SocialDraft(company *domain.Company, profile *domain.WriterProfile, platform domain.SocialPlatform, topic string) GeneratedCopy
}

type generationService struct {
	model string
}

// NewGenerationService creates a new GenerationService. model names
// the mock model recorded as provenance on generated revisions.
func NewGenerationService(model string) GenerationService {
	return &generationService{model: model}
}

func (g *generationService) BlogDraft(company *domain.Company, profile *domain.WriterProfile, topic, keywords string) GeneratedCopy {
	prompt := fmt.Sprintf("Write a blog post about %q for %s. Voice: %s. Audience: %s.",
		topic, company.Name, voiceOf(company, profile), profile.Audience)

	title := fmt.Sprintf("%s: What %s Wants You to Know", titleCase(topic), company.Name)
	intro := fmt.Sprintf("At %s, we think about %s every day.", company.Name, topic)
	if company.Industry != "" {
		intro = fmt.Sprintf("At %s, %s shapes everything we do in %s.", company.Name, topic, company.Industry)
	}

	var b strings.Builder
	b.WriteString(intro)
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("Here is our take on %s, written for %s.\n\n", topic, audienceOf(profile)))
	b.WriteString(fmt.Sprintf("## Why %s matters\n\n", topic))
	b.WriteString(fmt.Sprintf("Teams that get %s right move faster and communicate better. ", topic))
	b.WriteString("The rest of this post breaks down how we approach it.\n\n")
	b.WriteString("## Where to start\n\n")
	b.WriteString(fmt.Sprintf("Start small, measure, and iterate. %s\n", closingLine(profile)))
	if keywords != "" {
		b.WriteString(fmt.Sprintf("\nKeywords: %s\n", keywords))
	}

	return GeneratedCopy{
		Title:   title,
		Body:    b.String(),
		Excerpt: fmt.Sprintf("Our perspective on %s, from the team at %s.", topic, company.Name),
		Prompt:  prompt,
		Model:   g.model,
	}
}

func (g *generationService) SocialDraft(company *domain.Company, profile *domain.WriterProfile, platform domain.SocialPlatform, topic string) GeneratedCopy {
	prompt := fmt.Sprintf("Write a %s post about %q for %s. Voice: %s.",
		platform, topic, company.Name, voiceOf(company, profile))

	body := fmt.Sprintf("%s is changing how we work at %s. Here's what we learned. %s",
		titleCase(topic), company.Name, closingLine(profile))
	if platform == domain.PlatformLinkedIn {
		body = fmt.Sprintf("We've spent the last quarter rethinking %s at %s.\n\nThree takeaways:\n1. Start with the audience.\n2. Measure everything.\n3. Keep the voice consistent.\n\n%s",
			topic, company.Name, closingLine(profile))
	}

	return GeneratedCopy{
		Body:     body,
		Hashtags: hashtagsFor(topic),
		Prompt:   prompt,
		Model:    g.model,
	}
}

func voiceOf(company *domain.Company, profile *domain.WriterProfile) string {
	if profile.Tone != "" {
		return profile.Tone
	}
	if company.BrandVoice != "" {
		return company.BrandVoice
	}
	return "clear and direct"
}

func audienceOf(profile *domain.WriterProfile) string {
	if profile.Audience != "" {
		return profile.Audience
	}
	return "busy professionals"
}

func closingLine(profile *domain.WriterProfile) string {
	if profile.Tone == "playful" {
		return "Go on, give it a try."
	}
	return "We'd love to hear how your team handles it."
}

func hashtagsFor(topic string) string {
	words := strings.Fields(strings.ToLower(topic))
	tags := make([]string, 0, len(words))
	for _, w := range words {
		w = strings.Map(func(r rune) rune {
			if r >= 'a' && r <= 'z' || r >= '0' && r <= '9' {
				return r
			}
			return -1
		}, w)
		if w != "" {
			tags = append(tags, "#"+w)
		}
	}
	return strings.Join(tags, " ")
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		if len(w) > 0 {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}
