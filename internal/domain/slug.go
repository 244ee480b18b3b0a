package domain

import "github.com/google/uuid"

// SlugRecord is the minimal view of an entity that owns a slug.
type SlugRecord struct {
	ID   uuid.UUID `json:"id" yaml:"id"`
	Name string    `json:"name" yaml:"name"`
	Slug string    `json:"slug" yaml:"slug"`
}

// IssueType classifies a slug audit finding.
type IssueType string

const (
	IssueEmpty     IssueType = "empty"
	IssueDuplicate IssueType = "duplicate"
	IssueInvalid   IssueType = "invalid"
	IssueMismatch  IssueType = "mismatch"
	IssueWarning   IssueType = "warning"
)

// IssueTypes lists every issue type in report order: critical first.
var IssueTypes = []IssueType{IssueEmpty, IssueInvalid, IssueDuplicate, IssueWarning, IssueMismatch}

// Critical reports whether the issue breaks URL routing.
func (t IssueType) Critical() bool {
	return t == IssueEmpty || t == IssueInvalid || t == IssueDuplicate
}

// SlugIssue is one audit finding. It exists only inside an audit result and
// is never persisted.
//
// IDs and Names are parallel slices: one entry for per-entity issues, one per
// member for duplicates. Suggested is empty when the name has nothing to
// slugify.
type SlugIssue struct {
	Type      IssueType   `json:"type" yaml:"type"`
	Entity    string      `json:"entity" yaml:"entity"`
	IDs       []uuid.UUID `json:"ids" yaml:"ids"`
	Names     []string    `json:"names" yaml:"names"`
	Slug      string      `json:"slug" yaml:"slug"`
	Suggested string      `json:"suggested,omitempty" yaml:"suggested,omitempty"`
	Message   string      `json:"message" yaml:"message"`
}
