package rooms

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"club-app-go/pkg/clock"
	"github.com/google/uuid"
)

// pairingHistoryDepth is how many recent assignments feed the
// pairing-avoidance counts.
const pairingHistoryDepth = 40

type Service struct {
	repo Repository
	rng  *rand.Rand
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		rng:  rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (s *Service) Create(ctx context.Context, input CreateInput) (*Assignment, error) {
	if strings.TrimSpace(input.RoomNumber) == "" {
		return nil, fmt.Errorf("room number is required")
	}
	if input.LeaderID == "" {
		return nil, fmt.Errorf("leader id is required")
	}
	if input.LocationID == "" {
		return nil, fmt.Errorf("location id is required")
	}
	if len(input.AssignedMemberIDs) == 0 {
		return nil, ErrNoMembers
	}

	a := Assignment{
		ID:                uuid.NewString(),
		MeetingDate:       input.MeetingDate,
		LocationID:        input.LocationID,
		RoomNumber:        strings.TrimSpace(input.RoomNumber),
		RoomName:          strings.TrimSpace(input.RoomName),
		LeaderID:          input.LeaderID,
		AssignedMemberIDs: input.AssignedMemberIDs,
	}
	if input.CreatedByAdminID != "" {
		a.CreatedByAdminID = &input.CreatedByAdminID
	}

	if err := s.repo.Create(ctx, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Assignment, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListByDate(ctx context.Context, date time.Time) ([]Assignment, error) {
	dayStart := clock.DayStart(date, time.UTC)
	return s.repo.ListByDate(ctx, dayStart, dayStart.AddDate(0, 0, 1))
}

func (s *Service) History(ctx context.Context) ([]Assignment, error) {
	return s.repo.ListRecent(ctx, pairingHistoryDepth)
}

// Suggest proposes a room split for the given members, avoiding pairs that
// shared a room recently; among equally unfamiliar rooms the pick is random.
func (s *Service) Suggest(ctx context.Context, memberIDs []string, roomCount int) ([]RoomPlan, error) {
	if len(memberIDs) == 0 {
		return nil, ErrNoMembers
	}
	if roomCount <= 0 || roomCount > len(memberIDs) {
		return nil, ErrInvalidRoomCount
	}

	history, err := s.repo.ListRecent(ctx, pairingHistoryDepth)
	if err != nil {
		return nil, err
	}

	return Allocate(memberIDs, roomCount, PairCounts(history), s.rng), nil
}
