package voting

import (
	"context"
	"errors"
	"time"

	votingdomain "club-app-go/internal/domain/voting"
	"gorm.io/gorm"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) CreateVote(ctx context.Context, v *votingdomain.Vote) error {
	return r.db.WithContext(ctx).Create(v).Error
}

func (r *PostgresRepository) GetVote(ctx context.Context, id string) (*votingdomain.Vote, error) {
	var v votingdomain.Vote
	if err := r.db.WithContext(ctx).First(&v, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, votingdomain.ErrVoteNotFound
		}
		return nil, err
	}
	return &v, nil
}

func (r *PostgresRepository) ListActiveVotes(ctx context.Context) ([]votingdomain.Vote, error) {
	var votes []votingdomain.Vote
	err := r.db.WithContext(ctx).
		Where("status = ?", votingdomain.VoteActive).
		Order("meeting_date asc").
		Find(&votes).Error
	if err != nil {
		return nil, err
	}
	return votes, nil
}

func (r *PostgresRepository) ListVoteHistory(ctx context.Context, limit int) ([]votingdomain.Vote, error) {
	var votes []votingdomain.Vote
	query := r.db.WithContext(ctx).Order("meeting_date desc")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&votes).Error; err != nil {
		return nil, err
	}
	return votes, nil
}

func (r *PostgresRepository) ListExpiredActiveVotes(ctx context.Context, now time.Time) ([]votingdomain.Vote, error) {
	var votes []votingdomain.Vote
	err := r.db.WithContext(ctx).
		Where("status = ? AND deadline <= ?", votingdomain.VoteActive, now).
		Order("deadline asc").
		Find(&votes).Error
	if err != nil {
		return nil, err
	}
	return votes, nil
}

func (r *PostgresRepository) UpdateVoteStatus(ctx context.Context, id string, status votingdomain.VoteStatus) error {
	result := r.db.WithContext(ctx).
		Model(&votingdomain.Vote{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return votingdomain.ErrVoteNotFound
	}
	return nil
}

func (r *PostgresRepository) CreateResponse(ctx context.Context, resp *votingdomain.Response) error {
	if err := r.db.WithContext(ctx).Create(resp).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return votingdomain.ErrDuplicateResponse
		}
		return err
	}
	return nil
}

func (r *PostgresRepository) UpdateResponse(ctx context.Context, resp *votingdomain.Response) error {
	result := r.db.WithContext(ctx).Save(resp)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return votingdomain.ErrResponseNotFound
	}
	return nil
}

func (r *PostgresRepository) GetResponse(ctx context.Context, voteID, memberID string) (*votingdomain.Response, error) {
	var resp votingdomain.Response
	err := r.db.WithContext(ctx).
		First(&resp, "vote_id = ? AND member_id = ?", voteID, memberID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, votingdomain.ErrResponseNotFound
		}
		return nil, err
	}
	return &resp, nil
}

func (r *PostgresRepository) ListResponses(ctx context.Context, voteID string) ([]votingdomain.Response, error) {
	var responses []votingdomain.Response
	err := r.db.WithContext(ctx).
		Where("vote_id = ?", voteID).
		Order("responded_at asc").
		Find(&responses).Error
	if err != nil {
		return nil, err
	}
	return responses, nil
}

func (r *PostgresRepository) ListMemberResponsesBetween(ctx context.Context, memberID string, from, to time.Time) ([]votingdomain.ResponseWithVote, error) {
	var votes []votingdomain.Vote
	err := r.db.WithContext(ctx).
		Where("meeting_date >= ? AND meeting_date < ?", from, to).
		Find(&votes).Error
	if err != nil {
		return nil, err
	}
	if len(votes) == 0 {
		return nil, nil
	}
	voteIDs := make([]string, 0, len(votes))
	byID := make(map[string]votingdomain.Vote, len(votes))
	for _, v := range votes {
		voteIDs = append(voteIDs, v.ID)
		byID[v.ID] = v
	}
	var responses []votingdomain.Response
	err = r.db.WithContext(ctx).
		Where("member_id = ? AND vote_id IN ?", memberID, voteIDs).
		Find(&responses).Error
	if err != nil {
		return nil, err
	}
	out := make([]votingdomain.ResponseWithVote, 0, len(responses))
	for _, resp := range responses {
		out = append(out, votingdomain.ResponseWithVote{Response: resp, Vote: byID[resp.VoteID]})
	}
	return out, nil
}

func (r *PostgresRepository) HasYesResponseOn(ctx context.Context, memberID string, dayStart, dayEnd time.Time) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("vote_responses").
		Joins("JOIN votes ON votes.id = vote_responses.vote_id").
		Where("vote_responses.member_id = ? AND vote_responses.choice = ? AND votes.meeting_date >= ? AND votes.meeting_date < ?",
			memberID, votingdomain.ChoiceYes, dayStart, dayEnd).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
