package suggestion

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, memberID, title, content, imageURL string) (*Suggestion, error) {
	title = strings.TrimSpace(title)
	content = strings.TrimSpace(content)
	if title == "" || content == "" {
		return nil, fmt.Errorf("title and content are required")
	}

	sg := Suggestion{
		ID:       uuid.NewString(),
		MemberID: memberID,
		Title:    title,
		Content:  content,
		ImageURL: strings.TrimSpace(imageURL),
		Status:   StatusPending,
	}
	if err := s.repo.Create(ctx, &sg); err != nil {
		return nil, err
	}
	return &sg, nil
}

func (s *Service) List(ctx context.Context) ([]Suggestion, error) {
	return s.repo.List(ctx)
}

// MarkReviewed transitions PENDING → REVIEWED. The transition is one-way.
func (s *Service) MarkReviewed(ctx context.Context, id string) error {
	sg, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if sg.Status == StatusReviewed {
		return ErrAlreadyReviewed
	}
	return s.repo.SetStatus(ctx, id, StatusReviewed)
}
