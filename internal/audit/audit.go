// Package audit scans agency and trip slugs for problems that break or
// degrade public URLs. It works on an in-memory snapshot supplied by the
// caller, performs no I/O, and never mutates its input.
package audit

import (
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/viajastore/backend/internal/domain"
	"github.com/viajastore/backend/internal/slug"
)

// minDigitTail is the shortest trailing digit run treated as a machine-made
// suffix (timestamps, random ids) rather than part of the name.
const minDigitTail = 4

var digitTail = regexp.MustCompile(fmt.Sprintf(`[0-9]{%d,}$`, minDigitTail))

// CollectionSummary counts records and findings for one collection.
type CollectionSummary struct {
	Records int                      `json:"records" yaml:"records"`
	ByType  map[domain.IssueType]int `json:"by_type" yaml:"by_type"`
}

// Summary aggregates counts across both collections.
// CriticalIssues counts empty, invalid and duplicate findings; Warnings
// counts warning and mismatch findings.
type Summary struct {
	Agencies       CollectionSummary `json:"agencies" yaml:"agencies"`
	Trips          CollectionSummary `json:"trips" yaml:"trips"`
	TotalIssues    int               `json:"total_issues" yaml:"total_issues"`
	CriticalIssues int               `json:"critical_issues" yaml:"critical_issues"`
	Warnings       int               `json:"warnings" yaml:"warnings"`
}

// Result is the structured outcome of Analyze.
//
// Duplicates maps collection → shared slug → every record holding it.
type Result struct {
	Summary    Summary                                               `json:"summary" yaml:"summary"`
	Empty      []domain.SlugIssue                                    `json:"empty" yaml:"empty"`
	Invalid    []domain.SlugIssue                                    `json:"invalid" yaml:"invalid"`
	Duplicate  []domain.SlugIssue                                    `json:"duplicate" yaml:"duplicate"`
	Warning    []domain.SlugIssue                                    `json:"warning" yaml:"warning"`
	Mismatch   []domain.SlugIssue                                    `json:"mismatch" yaml:"mismatch"`
	Duplicates map[domain.Collection]map[string][]domain.SlugRecord `json:"duplicates" yaml:"duplicates"`
}

// Issues returns the findings of type t.
func (r Result) Issues(t domain.IssueType) []domain.SlugIssue {
	switch t {
	case domain.IssueEmpty:
		return r.Empty
	case domain.IssueInvalid:
		return r.Invalid
	case domain.IssueDuplicate:
		return r.Duplicate
	case domain.IssueWarning:
		return r.Warning
	case domain.IssueMismatch:
		return r.Mismatch
	}
	return nil
}

// All returns every finding, critical types first.
func (r Result) All() []domain.SlugIssue {
	var out []domain.SlugIssue
	for _, t := range domain.IssueTypes {
		out = append(out, r.Issues(t)...)
	}
	return out
}

// HasCritical reports whether any finding breaks URL routing.
func (r Result) HasCritical() bool {
	return r.Summary.CriticalIssues > 0
}

// Analyze inspects every agency and trip slug and groups duplicates within
// each collection. Agencies and trips are independent namespaces: an agency
// and a trip sharing a slug is not a duplicate.
func Analyze(agencies, trips []domain.SlugRecord) Result {
	r := Result{
		Empty:     []domain.SlugIssue{},
		Invalid:   []domain.SlugIssue{},
		Duplicate: []domain.SlugIssue{},
		Warning:   []domain.SlugIssue{},
		Mismatch:  []domain.SlugIssue{},
		Duplicates: map[domain.Collection]map[string][]domain.SlugRecord{
			domain.CollectionAgencies: {},
			domain.CollectionTrips:    {},
		},
	}

	r.scan(domain.CollectionAgencies, agencies)
	r.scan(domain.CollectionTrips, trips)

	r.Summary.Agencies = summarize(domain.CollectionAgencies, agencies, r)
	r.Summary.Trips = summarize(domain.CollectionTrips, trips, r)
	for _, t := range domain.IssueTypes {
		n := len(r.Issues(t))
		r.Summary.TotalIssues += n
		if t.Critical() {
			r.Summary.CriticalIssues += n
		} else {
			r.Summary.Warnings += n
		}
	}

	return r
}

// scan runs the per-entity pass and then the duplicate pass for one collection.
func (r *Result) scan(c domain.Collection, records []domain.SlugRecord) {
	for _, rec := range records {
		issue, ok := inspect(c, rec)
		if !ok {
			continue
		}
		r.add(issue)
	}

	groups := map[string][]domain.SlugRecord{}
	for _, rec := range records {
		s := strings.TrimSpace(rec.Slug)
		if s == "" {
			continue
		}
		groups[s] = append(groups[s], rec)
	}

	keys := make([]string, 0, len(groups))
	for s, members := range groups {
		if len(members) > 1 {
			keys = append(keys, s)
		}
	}
	slices.Sort(keys)

	for _, s := range keys {
		members := groups[s]
		r.Duplicates[c][s] = members

		issue := domain.SlugIssue{
			Type:    domain.IssueDuplicate,
			Entity:  c.Entity(),
			Slug:    s,
			Message: fmt.Sprintf("%d %s share the slug %q", len(members), c, s),
		}
		for _, m := range members {
			issue.IDs = append(issue.IDs, m.ID)
			issue.Names = append(issue.Names, m.Name)
		}
		r.add(issue)
	}
}

func (r *Result) add(issue domain.SlugIssue) {
	switch issue.Type {
	case domain.IssueEmpty:
		r.Empty = append(r.Empty, issue)
	case domain.IssueInvalid:
		r.Invalid = append(r.Invalid, issue)
	case domain.IssueDuplicate:
		r.Duplicate = append(r.Duplicate, issue)
	case domain.IssueWarning:
		r.Warning = append(r.Warning, issue)
	case domain.IssueMismatch:
		r.Mismatch = append(r.Mismatch, issue)
	}
}

// inspect classifies a single record. The boolean is false when the slug is fine.
func inspect(c domain.Collection, rec domain.SlugRecord) (domain.SlugIssue, bool) {
	want := slug.Make(rec.Name)
	issue := domain.SlugIssue{
		Entity:    c.Entity(),
		IDs:       []uuid.UUID{rec.ID},
		Names:     []string{rec.Name},
		Slug:      rec.Slug,
		Suggested: want,
	}

	switch {
	case strings.TrimSpace(rec.Slug) == "":
		issue.Type = domain.IssueEmpty
		issue.Message = "slug is empty; the public URL cannot be resolved"
	case !slug.IsValid(rec.Slug):
		issue.Type = domain.IssueInvalid
		issue.Message = fmt.Sprintf("slug %q does not match the slug grammar", rec.Slug)
	case want == "" || rec.Slug == want:
		return domain.SlugIssue{}, false
	case lowQuality(rec.Slug, want):
		issue.Type = domain.IssueWarning
		issue.Message = fmt.Sprintf("slug %q looks machine-generated; %q reads better", rec.Slug, want)
	case isSuffixed(rec.Slug, want):
		return domain.SlugIssue{}, false
	default:
		issue.Type = domain.IssueMismatch
		issue.Message = fmt.Sprintf("slug %q no longer matches the name (expected %q)", rec.Slug, want)
	}

	return issue, true
}

// lowQuality flags a valid slug that lost the word structure of a
// multi-word name, or that ends in a long digit run.
func lowQuality(current, want string) bool {
	if !strings.Contains(current, "-") && strings.Contains(want, "-") {
		return true
	}
	return digitTail.MatchString(current) && !digitTail.MatchString(want)
}

// isSuffixed reports whether current is want plus a numeric disambiguator,
// the shape the unique slug generator produces for taken names.
func isSuffixed(current, want string) bool {
	rest, ok := strings.CutPrefix(current, want+"-")
	if !ok || rest == "" {
		return false
	}
	for _, r := range rest {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func summarize(c domain.Collection, records []domain.SlugRecord, r Result) CollectionSummary {
	s := CollectionSummary{Records: len(records), ByType: map[domain.IssueType]int{}}
	for _, t := range domain.IssueTypes {
		s.ByType[t] = 0
		for _, issue := range r.Issues(t) {
			if issue.Entity == c.Entity() {
				s.ByType[t]++
			}
		}
	}
	return s
}
