package model

import "time"

// Analysis is one stored "analyze my profile" run: the career paths the
// advisor returned, kept so GET /api/analyses can show history. Search
// results are not recorded — only full-profile analyses are.
type Analysis struct {
	ID          string       `json:"id"          db:"id"`
	UserID      string       `json:"-"           db:"user_id"`
	CareerPaths []CareerPath `json:"result"`
	CreatedAt   time.Time    `json:"created_at"  db:"created_at"`
}
