package voting

import (
	"context"
	"time"
)

type Repository interface {
	CreateVote(ctx context.Context, v *Vote) error
	GetVote(ctx context.Context, id string) (*Vote, error)
	ListActiveVotes(ctx context.Context) ([]Vote, error)
	ListVoteHistory(ctx context.Context, limit int) ([]Vote, error)
	// ListExpiredActiveVotes returns ACTIVE votes whose deadline is at or
	// before now.
	ListExpiredActiveVotes(ctx context.Context, now time.Time) ([]Vote, error)
	UpdateVoteStatus(ctx context.Context, id string, status VoteStatus) error

	CreateResponse(ctx context.Context, r *Response) error
	UpdateResponse(ctx context.Context, r *Response) error
	GetResponse(ctx context.Context, voteID, memberID string) (*Response, error)
	ListResponses(ctx context.Context, voteID string) ([]Response, error)
	// ListMemberResponsesBetween returns the member's responses whose parent
	// vote's meeting date falls in [from, to).
	ListMemberResponsesBetween(ctx context.Context, memberID string, from, to time.Time) ([]ResponseWithVote, error)
	// HasYesResponseOn reports whether the member holds a YES response to any
	// vote whose meeting date falls in [dayStart, dayEnd).
	HasYesResponseOn(ctx context.Context, memberID string, dayStart, dayEnd time.Time) (bool, error)
}
