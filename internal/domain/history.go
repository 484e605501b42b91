package domain

import (
	"time"

	"github.com/draftforge/draftforge-backend/internal/diff"
)

// HistoryFilter narrows which log rows getContentHistory returns.
// Zero-value fields mean "no filtering on this dimension".
type HistoryFilter struct {
	Sources   []ChangeSource `json:"sources,omitempty"`
	ChangedBy []string       `json:"changed_by,omitempty"`
	StartDate *time.Time     `json:"start_date,omitempty"`
	EndDate   *time.Time     `json:"end_date,omitempty"`
	// Section scoping applies to revisions only; versions always cover
	// the whole entity
	SectionID      *string `json:"section_id,omitempty"`
	ParagraphIndex *int    `json:"paragraph_index,omitempty"`
}

// Unfiltered reports whether the filter narrows nothing, i.e. a query
// over the entity's complete history
func (f HistoryFilter) Unfiltered() bool {
	return len(f.Sources) == 0 && len(f.ChangedBy) == 0 &&
		f.StartDate == nil && f.EndDate == nil &&
		f.SectionID == nil && f.ParagraphIndex == nil
}

// Pagination page/limit input, defaulted and clamped by services
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

// Normalize applies default page 1 / limit 20 and clamps limit to 100
func (p *Pagination) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 || p.Limit > 100 {
		p.Limit = 20
	}
}

// Offset row offset for the current page
func (p Pagination) Offset() int { return (p.Page - 1) * p.Limit }

// ContributorStats per-actor change summary
type ContributorStats struct {
	ChangedBy    string    `json:"changed_by"`
	Changes      int       `json:"changes"`
	LastChangeAt time.Time `json:"last_change_at"`
}

// HistorySummary aggregate stats over an entity's full version log.
// Computed by scanning every version row, never paginated.
type HistorySummary struct {
	FirstVersionAt *time.Time         `json:"first_version_at,omitempty"`
	LastModifiedAt *time.Time         `json:"last_modified_at,omitempty"`
	TotalChanges   int                `json:"total_changes"`
	AIChanges      int                `json:"ai_changes"`
	HumanChanges   int                `json:"human_changes"`
	Contributors   []ContributorStats `json:"contributors"`
}

// ContentHistory the combined result of a history query. Version and
// revision pages share page/limit but are counted independently; the
// two lists are not guaranteed to cover the same time window.
type ContentHistory struct {
	Versions   []*ContentVersion  `json:"versions"`
	Revisions  []*ContentRevision `json:"revisions"`
	Page       int                `json:"page"`
	Limit      int                `json:"limit"`
	TotalPages int                `json:"total_pages"`
	Summary    HistorySummary     `json:"summary"`
}

// ComparisonSummary counts over a compared version range
type ComparisonSummary struct {
	FieldsAdded    int                  `json:"fields_added"`
	FieldsRemoved  int                  `json:"fields_removed"`
	FieldsModified int                  `json:"fields_modified"`
	VersionsInSpan int                  `json:"versions_in_span"`
	BySource       map[ChangeSource]int `json:"by_source"`
	ByActor        map[string]int       `json:"by_actor"`
}

// VersionComparison result of comparing two versions of one entity.
// Changes is directional from FromVersion to ToVersion exactly as the
// caller passed them; the summary covers the normalized numeric span.
type VersionComparison struct {
	EntityType  EntityType        `json:"entity_type"`
	EntityID    string            `json:"entity_id"`
	FromVersion int               `json:"from_version"`
	ToVersion   int               `json:"to_version"`
	Changes     []diff.FieldChange `json:"changes"`
	Summary     ComparisonSummary `json:"summary"`
}
