package voting

import "time"

type VoteStatus string

const (
	VoteActive VoteStatus = "ACTIVE"
	VoteClosed VoteStatus = "CLOSED"
)

type Choice string

const (
	ChoiceYes Choice = "YES"
	ChoiceNo  Choice = "NO"
)

func (c Choice) Valid() bool {
	return c == ChoiceYes || c == ChoiceNo
}

// Vote is a weekly attendance poll for one meeting date at one location.
// ACTIVE → CLOSED is one-way; the deadline sweep performs the transition.
type Vote struct {
	ID               string     `gorm:"type:uuid;primaryKey"`
	Title            string     `gorm:"not null"`
	Description      string
	LocationID       string     `gorm:"type:uuid;index;not null"`
	MeetingDate      time.Time  `gorm:"not null"`
	Deadline         time.Time  `gorm:"not null"`
	Status           VoteStatus `gorm:"type:text;not null;default:ACTIVE"`
	CreatedByAdminID *string    `gorm:"type:uuid"`
	CreatedAt        time.Time  `gorm:"autoCreateTime"`
}

func (Vote) TableName() string {
	return "votes"
}

// Response is a member's answer to a vote. At most one exists per
// (vote, member); the choice is mutable until the vote closes, and flipping
// YES→NO triggers the tiered cancellation penalty.
type Response struct {
	ID          string    `gorm:"type:uuid;primaryKey"`
	VoteID      string    `gorm:"type:uuid;not null;uniqueIndex:idx_vote_member,priority:1"`
	MemberID    string    `gorm:"type:uuid;not null;uniqueIndex:idx_vote_member,priority:2"`
	Choice      Choice    `gorm:"type:text;not null"`
	RespondedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
}

func (Response) TableName() string {
	return "vote_responses"
}

// ResponseWithVote pairs a response with its parent vote for week-window
// policy checks.
type ResponseWithVote struct {
	Response
	Vote Vote
}

type CreateVoteInput struct {
	Title            string
	Description      string
	LocationID       string
	MeetingDate      time.Time
	Deadline         time.Time
	CreatedByAdminID string
}

// SweepResult summarizes one vote processed by the deadline sweep.
type SweepResult struct {
	VoteID    string
	NonVoters int
	Warned    int
}
