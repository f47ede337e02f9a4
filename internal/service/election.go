package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/civiclab/program-api/internal/domain"
	"github.com/civiclab/program-api/internal/repository"
)

var (
	ErrElectionNotFound    = repository.ErrElectionNotFound
	ErrProgramYearNotFound = repository.ErrProgramYearNotFound
	ErrDuplicateVote       = repository.ErrDuplicateVote
	ErrMissingElectionData = errors.New("position, grouping and method are required")
	ErrMissingVoteData     = errors.New("candidate and voter are required")
)

type ElectionsRepository interface {
	Create(ctx context.Context, election domain.Election) (domain.Election, error)
	FindByID(ctx context.Context, id uint) (domain.Election, error)
	FindByProgramYear(ctx context.Context, programYearID uint) ([]domain.Election, error)
	Update(ctx context.Context, election domain.Election) (domain.Election, error)
	CreateVote(ctx context.Context, vote domain.ElectionVote) (domain.ElectionVote, error)
	TallyVotes(ctx context.Context, electionID uint) ([]domain.CandidateTally, error)
}

type ElectionProgramYearRepository interface {
	FindByID(ctx context.Context, id uint) (domain.ProgramYear, error)
}

// ElectionUpdateInput merges onto a persisted election; nil means the
// caller omitted the field.
type ElectionUpdateInput struct {
	Status    *string
	StartTime *time.Time
	EndTime   *time.Time
}

// ElectionService owns the election lifecycle and the vote tally. All
// authorization checks run before any mutation; a rejected request leaves
// no partial side effects.
type ElectionService struct {
	repo            ElectionsRepository
	programYearRepo ElectionProgramYearRepository
	authz           Authorizer
	audit           AuditLogger
}

func NewElectionService(repo ElectionsRepository, programYearRepo ElectionProgramYearRepository, authz Authorizer, audit AuditLogger) *ElectionService {
	return &ElectionService{
		repo:            repo,
		programYearRepo: programYearRepo,
		authz:           authz,
		audit:           audit,
	}
}

// CreateElection schedules a contest for a position within a grouping.
// The caller must be an admin of the program owning the program year.
func (s *ElectionService) CreateElection(ctx context.Context, userID uint, election domain.Election) (domain.Election, error) {
	year, err := s.programYearRepo.FindByID(ctx, election.ProgramYearID)
	if err != nil {
		return domain.Election{}, fmt.Errorf("s.programYearRepo.FindByID -> %w", err)
	}

	isAdmin, err := s.authz.IsProgramAdmin(ctx, userID, year.ProgramID)
	if err != nil {
		return domain.Election{}, fmt.Errorf("s.authz.IsProgramAdmin -> %w", err)
	}
	if !isAdmin {
		return domain.Election{}, ErrNotProgramAdmin
	}

	if election.PositionID == 0 || election.GroupingID == 0 || election.Method == "" {
		return domain.Election{}, ErrMissingElectionData
	}
	if !election.Method.IsValid() {
		return domain.Election{}, ErrInvalidElectionMethod
	}

	created, err := s.repo.Create(ctx, election)
	if err != nil {
		return domain.Election{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	s.audit.Log(year.ProgramID, fmt.Sprintf("election %d scheduled for position %d by user %d", created.ID, created.PositionID, userID))

	return created, nil
}

// ListElections returns every election of a program year, archived ones
// included. The caller must be at least a member.
func (s *ElectionService) ListElections(ctx context.Context, userID, programYearID uint) ([]domain.Election, error) {
	year, err := s.programYearRepo.FindByID(ctx, programYearID)
	if err != nil {
		return nil, fmt.Errorf("s.programYearRepo.FindByID -> %w", err)
	}

	isMember, err := s.authz.IsProgramMember(ctx, userID, year.ProgramID)
	if err != nil {
		return nil, fmt.Errorf("s.authz.IsProgramMember -> %w", err)
	}
	if !isMember {
		return nil, ErrNotProgramMember
	}

	return s.repo.FindByProgramYear(ctx, programYearID)
}

func (s *ElectionService) GetElection(ctx context.Context, userID, electionID uint) (domain.Election, error) {
	election, year, err := s.findWithYear(ctx, electionID)
	if err != nil {
		return domain.Election{}, err
	}

	isMember, err := s.authz.IsProgramMember(ctx, userID, year.ProgramID)
	if err != nil {
		return domain.Election{}, fmt.Errorf("s.authz.IsProgramMember -> %w", err)
	}
	if !isMember {
		return domain.Election{}, ErrNotProgramMember
	}

	return election, nil
}

// UpdateElection merges status and schedule changes. Admin only.
func (s *ElectionService) UpdateElection(ctx context.Context, userID, electionID uint, input ElectionUpdateInput) (domain.Election, error) {
	election, year, err := s.findWithYear(ctx, electionID)
	if err != nil {
		return domain.Election{}, err
	}

	isAdmin, err := s.authz.IsProgramAdmin(ctx, userID, year.ProgramID)
	if err != nil {
		return domain.Election{}, fmt.Errorf("s.authz.IsProgramAdmin -> %w", err)
	}
	if !isAdmin {
		return domain.Election{}, ErrNotProgramAdmin
	}

	if input.Status != nil {
		election.Status = *input.Status
	}
	if input.StartTime != nil {
		election.StartTime = input.StartTime
	}
	if input.EndTime != nil {
		election.EndTime = input.EndTime
	}

	updated, err := s.repo.Update(ctx, election)
	if err != nil {
		return domain.Election{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	s.audit.Log(year.ProgramID, fmt.Sprintf("election %d updated by user %d", electionID, userID))

	return updated, nil
}

// ArchiveElection is the delete operation: it sets status to archived
// unconditionally and keeps the row queryable. Archiving an already
// archived election succeeds.
func (s *ElectionService) ArchiveElection(ctx context.Context, userID, electionID uint) (domain.Election, error) {
	election, year, err := s.findWithYear(ctx, electionID)
	if err != nil {
		return domain.Election{}, err
	}

	isAdmin, err := s.authz.IsProgramAdmin(ctx, userID, year.ProgramID)
	if err != nil {
		return domain.Election{}, fmt.Errorf("s.authz.IsProgramAdmin -> %w", err)
	}
	if !isAdmin {
		return domain.Election{}, ErrNotProgramAdmin
	}

	election.Status = domain.ElectionStatusArchived

	updated, err := s.repo.Update(ctx, election)
	if err != nil {
		return domain.Election{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	s.audit.Log(year.ProgramID, fmt.Sprintf("election %d archived by user %d", electionID, userID))

	return updated, nil
}

// CastVote records one ballot. Any program member may cast; voters are
// delegates, not admins. The (election, voter) pair is unique; a second
// vote by the same voter fails with ErrDuplicateVote.
func (s *ElectionService) CastVote(ctx context.Context, userID uint, vote domain.ElectionVote) (domain.ElectionVote, error) {
	_, year, err := s.findWithYear(ctx, vote.ElectionID)
	if err != nil {
		return domain.ElectionVote{}, err
	}

	isMember, err := s.authz.IsProgramMember(ctx, userID, year.ProgramID)
	if err != nil {
		return domain.ElectionVote{}, fmt.Errorf("s.authz.IsProgramMember -> %w", err)
	}
	if !isMember {
		return domain.ElectionVote{}, ErrNotProgramMember
	}

	if vote.CandidateDelegateID == 0 || vote.VoterDelegateID == 0 {
		return domain.ElectionVote{}, ErrMissingVoteData
	}

	created, err := s.repo.CreateVote(ctx, vote)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateVote) {
			return domain.ElectionVote{}, ErrDuplicateVote
		}

		return domain.ElectionVote{}, fmt.Errorf("s.repo.CreateVote -> %w", err)
	}

	s.audit.Log(year.ProgramID, fmt.Sprintf("vote recorded in election %d", vote.ElectionID))

	return created, nil
}

// TallyResults counts votes per candidate. Candidates with zero votes get
// no entry; the counts always sum to the number of recorded ballots.
// Counting is raw per-candidate regardless of the election method;
// instant-runoff resolution for ranked contests is not performed here.
func (s *ElectionService) TallyResults(ctx context.Context, userID, electionID uint) ([]domain.CandidateTally, error) {
	_, year, err := s.findWithYear(ctx, electionID)
	if err != nil {
		return nil, err
	}

	isMember, err := s.authz.IsProgramMember(ctx, userID, year.ProgramID)
	if err != nil {
		return nil, fmt.Errorf("s.authz.IsProgramMember -> %w", err)
	}
	if !isMember {
		return nil, ErrNotProgramMember
	}

	return s.repo.TallyVotes(ctx, electionID)
}

func (s *ElectionService) findWithYear(ctx context.Context, electionID uint) (domain.Election, domain.ProgramYear, error) {
	election, err := s.repo.FindByID(ctx, electionID)
	if err != nil {
		return domain.Election{}, domain.ProgramYear{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	year, err := s.programYearRepo.FindByID(ctx, election.ProgramYearID)
	if err != nil {
		return domain.Election{}, domain.ProgramYear{}, fmt.Errorf("s.programYearRepo.FindByID -> %w", err)
	}

	return election, year, nil
}
