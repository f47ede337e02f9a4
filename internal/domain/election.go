package domain

import "time"

const (
	ElectionStatusScheduled = "scheduled"
	ElectionStatusOpen      = "open"
	ElectionStatusClosed    = "closed"
	ElectionStatusArchived  = "archived"
)

// Election is one ballot contest for a position within one grouping in one
// program year. Archiving is a soft delete; the row stays queryable.
type Election struct {
	ID            uint           `json:"id"`
	ProgramYearID uint           `json:"program_year_id"`
	PositionID    uint           `json:"position_id"`
	GroupingID    uint           `json:"grouping_id"`
	Method        ElectionMethod `json:"method"`
	StartTime     *time.Time     `json:"start_time,omitempty"`
	EndTime       *time.Time     `json:"end_time,omitempty"`
	Status        string         `json:"status"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

// ElectionVote records one ballot cast by a voter delegate for a candidate
// delegate. A voter casts at most one vote per election; the data layer
// rejects duplicates.
type ElectionVote struct {
	ID                  uint      `json:"id"`
	ElectionID          uint      `json:"election_id"`
	CandidateDelegateID uint      `json:"candidate_delegate_id"`
	VoterDelegateID     uint      `json:"voter_delegate_id"`
	VoteRank            *int      `json:"vote_rank,omitempty"`
	CreatedAt           time.Time `json:"created_at"`
}

// CandidateTally is the vote count credited to one candidate. Candidates
// with zero votes get no entry.
type CandidateTally struct {
	CandidateDelegateID uint `json:"candidate_delegate_id"`
	Count               int  `json:"count"`
}
