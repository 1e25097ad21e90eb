package member

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

const generatedPasswordLength = 8

const passwordAlphabet = "abcdefghijkmnpqrstuvwxyz23456789"

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create registers a new member with a generated one-time password. The
// caller is expected to hand the plaintext password to the member; only the
// hash is stored, and the member must change it on first login.
func (s *Service) Create(ctx context.Context, input CreateInput) (*Member, string, error) {
	username := strings.TrimSpace(input.Username)
	if username == "" {
		return nil, "", fmt.Errorf("username is required")
	}

	tier := input.HonorTier
	if tier == "" {
		tier = HonorI
	}
	if !tier.Valid() {
		return nil, "", ErrInvalidTier
	}

	role := input.Role
	if role == "" {
		role = RoleMember
	}

	password, err := generatePassword()
	if err != nil {
		return nil, "", err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	m := Member{
		ID:                 uuid.NewString(),
		Username:           username,
		PasswordHash:       string(hash),
		KoreanName:         strings.TrimSpace(input.KoreanName),
		EnglishName:        strings.TrimSpace(input.EnglishName),
		PhoneNumber:        strings.TrimSpace(input.PhoneNumber),
		Industry:           input.Industry,
		LinkedinURL:        strings.TrimSpace(input.LinkedinURL),
		WebsiteURL:         strings.TrimSpace(input.WebsiteURL),
		Email:              strings.TrimSpace(input.Email),
		HonorTier:          tier,
		Role:               role,
		Status:             StatusActive,
		IsLead:             input.IsLead,
		IsSubLead:          input.IsSubLead,
		AttendanceRate:     decimal.Zero,
		MustChangePassword: true,
	}

	if err := s.repo.Create(ctx, &m); err != nil {
		return nil, "", err
	}

	return &m, password, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Member, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) GetByUsername(ctx context.Context, username string) (*Member, error) {
	return s.repo.GetByUsername(ctx, strings.TrimSpace(username))
}

func (s *Service) List(ctx context.Context) ([]Member, error) {
	return s.repo.List(ctx)
}

func (s *Service) ListActiveIDs(ctx context.Context) ([]string, error) {
	return s.repo.ListActiveIDs(ctx)
}

func (s *Service) Update(ctx context.Context, id string, input UpdateInput) (*Member, error) {
	var updated *Member
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		m, err := tx.GetByID(ctx, id)
		if err != nil {
			return err
		}

		applyString := func(dst *string, src *string) {
			if src != nil {
				*dst = strings.TrimSpace(*src)
			}
		}
		applyString(&m.KoreanName, input.KoreanName)
		applyString(&m.EnglishName, input.EnglishName)
		applyString(&m.PhoneNumber, input.PhoneNumber)
		applyString(&m.LinkedinURL, input.LinkedinURL)
		applyString(&m.WebsiteURL, input.WebsiteURL)
		applyString(&m.Email, input.Email)

		if input.Industry != nil {
			m.Industry = *input.Industry
		}
		if input.HonorTier != nil {
			if !input.HonorTier.Valid() {
				return ErrInvalidTier
			}
			m.HonorTier = *input.HonorTier
		}
		if input.Role != nil {
			m.Role = *input.Role
		}
		if input.IsLead != nil {
			m.IsLead = *input.IsLead
		}
		if input.IsSubLead != nil {
			m.IsSubLead = *input.IsSubLead
		}

		if err := tx.Update(ctx, m); err != nil {
			return err
		}
		updated = m
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *Service) SetStatus(ctx context.Context, id string, status Status, reason string) error {
	if !status.Valid() {
		return ErrInvalidStatus
	}
	return s.repo.SetStatus(ctx, id, status, reason)
}

func (s *Service) ChangePassword(ctx context.Context, id, current, next string) error {
	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(m.PasswordHash), []byte(current)); err != nil {
		return ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(next), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.repo.UpdatePassword(ctx, id, string(hash))
}

// RecalculateAttendanceRate recomputes the cached attendance percentage from
// the member's attendance history. PRESENT counts as attended; LATE does not
// raise the rate.
func (s *Service) RecalculateAttendanceRate(ctx context.Context, id string) (decimal.Decimal, error) {
	present, total, err := s.repo.AttendanceCounts(ctx, id)
	if err != nil {
		return decimal.Zero, err
	}

	rate := decimal.Zero
	if total > 0 {
		rate = decimal.NewFromInt(present).
			Div(decimal.NewFromInt(total)).
			Mul(decimal.NewFromInt(100)).
			Round(2)
	}

	if err := s.repo.SetAttendanceRate(ctx, id, rate); err != nil {
		return decimal.Zero, err
	}
	return rate, nil
}

// Rankings returns active members ordered by attendance rate, best first,
// ties broken by username for a stable order.
func (s *Service) Rankings(ctx context.Context) ([]Ranking, error) {
	members, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	rankings := make([]Ranking, 0, len(members))
	for _, m := range members {
		if m.Status != StatusActive {
			continue
		}
		rankings = append(rankings, Ranking{
			MemberID:       m.ID,
			Username:       m.Username,
			EnglishName:    m.EnglishName,
			KoreanName:     m.KoreanName,
			HonorTier:      m.HonorTier,
			AttendanceRate: m.AttendanceRate,
		})
	}

	sort.Slice(rankings, func(i, j int) bool {
		if !rankings[i].AttendanceRate.Equal(rankings[j].AttendanceRate) {
			return rankings[i].AttendanceRate.GreaterThan(rankings[j].AttendanceRate)
		}
		return rankings[i].Username < rankings[j].Username
	})

	return rankings, nil
}

func (s *Service) Stats(ctx context.Context) (Stats, error) {
	total, err := s.repo.CountByStatus(ctx, StatusActive)
	if err != nil {
		return Stats{}, err
	}
	absentees, err := s.repo.CountAbsenceStreaksAtLeast(ctx, 3)
	if err != nil {
		return Stats{}, err
	}
	return Stats{TotalMembers: total, ConsecutiveAbsentees: absentees}, nil
}

// Suspend, Activate, ResetAbsenceStreak and IncrementAbsenceStreak are the
// mutations the warning engine drives.

func (s *Service) Suspend(ctx context.Context, id, reason string) error {
	return s.repo.SetStatus(ctx, id, StatusSuspended, reason)
}

func (s *Service) Activate(ctx context.Context, id string) error {
	return s.repo.SetStatus(ctx, id, StatusActive, "")
}

func (s *Service) ResetAbsenceStreak(ctx context.Context, id string, attendedAt time.Time) error {
	return s.repo.ResetAbsenceStreak(ctx, id, attendedAt)
}

func (s *Service) IncrementAbsenceStreak(ctx context.Context, id string) (int, error) {
	return s.repo.IncrementAbsenceStreak(ctx, id)
}

func generatePassword() (string, error) {
	var b strings.Builder
	for i := 0; i < generatedPasswordLength; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(passwordAlphabet))))
		if err != nil {
			return "", err
		}
		b.WriteByte(passwordAlphabet[n.Int64()])
	}
	return b.String(), nil
}
