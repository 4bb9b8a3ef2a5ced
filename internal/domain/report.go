package domain

import (
	"encoding/json"
	"time"
)

// AnalysisReport is the persisted result of one AI code review. Reports are
// immutable after creation; the fix endpoint reads them but never writes.
type AnalysisReport struct {
	ID           string          `json:"id"            db:"id"`
	RepositoryID string          `json:"repository_id" db:"repository_id"`
	DebtScore    int             `json:"debt_score"    db:"debt_score"`
	Summary      string          `json:"summary"       db:"summary"`
	CodeContent  string          `json:"code_content"  db:"code_content"` // empty for reports created before code was stored
	FullReport   json.RawMessage `json:"-"             db:"full_report"`
	CreatedAt    time.Time       `json:"created_at"    db:"created_at"`
}

// Issues extracts the issues list from the raw AI payload. The payload is
// semi-structured: the only guaranteed key is "issues". A missing, malformed
// or non-object payload yields an empty list, never an error.
func (r *AnalysisReport) Issues() []string {
	if len(r.FullReport) == 0 {
		return []string{}
	}
	var payload struct {
		Issues []string `json:"issues"`
	}
	if err := json.Unmarshal(r.FullReport, &payload); err != nil {
		return []string{}
	}
	if payload.Issues == nil {
		return []string{}
	}
	return payload.Issues
}

// ReportDetail is a report joined with the name of its owning repository.
type ReportDetail struct {
	AnalysisReport
	RepositoryName string `json:"repository_name"`
}

// HistoryItem is one row of a user's analysis history, newest first.
type HistoryItem struct {
	ID             string    `json:"id"`
	RepositoryName string    `json:"repository_name"`
	Score          int       `json:"score"`
	Summary        string    `json:"summary"`
	CreatedAt      time.Time `json:"created_at"`
}
