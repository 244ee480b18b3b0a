package audit

import (
	"fmt"
	"strings"

	"github.com/viajastore/backend/internal/domain"
)

// sectionTitles names each issue type in the text report.
var sectionTitles = map[domain.IssueType]string{
	domain.IssueEmpty:     "Empty slugs",
	domain.IssueInvalid:   "Invalid slugs",
	domain.IssueDuplicate: "Duplicate slugs",
	domain.IssueWarning:   "Low-quality slugs",
	domain.IssueMismatch:  "Slugs out of sync with their names",
}

// Report renders r as a multi-section plain-text report suitable for a
// terminal or an admin panel. Sections with no findings are omitted; a
// recommendations section is added when critical issues exist.
func Report(r Result) string {
	var b strings.Builder

	b.WriteString("SLUG AUDIT REPORT\n")
	b.WriteString("=================\n\n")

	s := r.Summary
	b.WriteString("Summary\n")
	fmt.Fprintf(&b, "  Agencies analyzed: %d\n", s.Agencies.Records)
	fmt.Fprintf(&b, "  Trips analyzed:    %d\n", s.Trips.Records)
	fmt.Fprintf(&b, "  Total issues:      %d\n", s.TotalIssues)
	fmt.Fprintf(&b, "  Critical issues:   %d\n", s.CriticalIssues)
	fmt.Fprintf(&b, "  Warnings:          %d\n", s.Warnings)

	if s.TotalIssues == 0 {
		b.WriteString("\nNo slug issues found.\n")
		return b.String()
	}

	for _, t := range domain.IssueTypes {
		issues := r.Issues(t)
		if len(issues) == 0 {
			continue
		}
		level := "WARNING"
		if t.Critical() {
			level = "CRITICAL"
		}
		fmt.Fprintf(&b, "\n[%s] %s (%d)\n", level, sectionTitles[t], len(issues))
		for _, issue := range issues {
			writeIssue(&b, issue)
		}
	}

	if r.HasCritical() {
		b.WriteString("\nRecommendations\n")
		if len(r.Empty) > 0 {
			b.WriteString("  - Regenerate slugs for entities with empty slugs; their public pages are unreachable.\n")
		}
		if len(r.Invalid) > 0 {
			b.WriteString("  - Replace invalid slugs with the suggested value (lowercase letters, digits, single hyphens).\n")
		}
		if len(r.Duplicate) > 0 {
			b.WriteString("  - Regenerate all but one slug in each duplicate group so every URL resolves to one entity.\n")
		}
		b.WriteString("  - Re-run the audit after fixing to confirm no critical issues remain.\n")
	}

	return b.String()
}

func writeIssue(b *strings.Builder, issue domain.SlugIssue) {
	if issue.Type == domain.IssueDuplicate {
		fmt.Fprintf(b, "  - %s slug %q used by %d entities:\n", issue.Entity, issue.Slug, len(issue.IDs))
		for i, id := range issue.IDs {
			fmt.Fprintf(b, "      * %q (id %s)\n", issue.Names[i], id)
		}
		return
	}

	fmt.Fprintf(b, "  - %s %q (id %s): %s\n", issue.Entity, issue.Names[0], issue.IDs[0], issue.Message)
	if issue.Suggested != "" && issue.Suggested != issue.Slug {
		fmt.Fprintf(b, "      suggested: %s\n", issue.Suggested)
	}
}
