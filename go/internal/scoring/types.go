package scoring

import "github.com/google/uuid"

// JudgeScore is one judge's percentage for one team. Applicable is false when
// no criteria exist, in which case Percentage is meaningless.
type JudgeScore struct {
	JudgeID       uuid.UUID `json:"judge_id"`
	TeamID        uuid.UUID `json:"team_id"`
	Percentage    float64   `json:"percentage"`
	Applicable    bool      `json:"applicable"`
	YesVotes      int       `json:"yes_votes"`
	TotalCriteria int       `json:"total_criteria"`
}

// TeamScore is the aggregate score for one team. Scored is false when no
// judge has voted for the team or no criteria exist.
type TeamScore struct {
	TeamID     uuid.UUID `json:"team_id"`
	Score      float64   `json:"score"`
	Scored     bool      `json:"scored"`
	JudgeCount int       `json:"judge_count"`
	VoteCount  int       `json:"vote_count"`
	YesVotes   int       `json:"yes_votes"`
}

// LeaderboardEntry is one ranked row of the leaderboard
type LeaderboardEntry struct {
	Rank     int    `json:"rank"`
	TeamName string `json:"team_name"`
	TeamScore
}
