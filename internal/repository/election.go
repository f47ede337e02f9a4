package repository

import (
	"context"
	"fmt"

	"github.com/civiclab/program-api/internal/domain"
	"github.com/civiclab/program-api/internal/repository/dao"
)

var (
	ErrElectionNotFound = dao.ErrElectionNotFound
	ErrDuplicateVote    = dao.ErrDuplicateVote
)

type ElectionDAO interface {
	Insert(ctx context.Context, election dao.Election) (dao.Election, error)
	FindByID(ctx context.Context, id uint) (dao.Election, error)
	FindByProgramYear(ctx context.Context, programYearID uint) ([]dao.Election, error)
	Update(ctx context.Context, election dao.Election) (dao.Election, error)
	InsertVote(ctx context.Context, vote dao.ElectionVote) (dao.ElectionVote, error)
	FindVotes(ctx context.Context, electionID uint) ([]dao.ElectionVote, error)
	CountVotesByCandidate(ctx context.Context, electionID uint) ([]dao.CandidateCount, error)
}

type ElectionRepository struct {
	dao ElectionDAO
}

func NewElectionRepository(dao ElectionDAO) *ElectionRepository {
	return &ElectionRepository{
		dao: dao,
	}
}

func (r *ElectionRepository) Create(ctx context.Context, election domain.Election) (domain.Election, error) {
	created, err := r.dao.Insert(ctx, dao.Election{
		ProgramYearID: election.ProgramYearID,
		PositionID:    election.PositionID,
		GroupingID:    election.GroupingID,
		Method:        string(election.Method),
		StartTime:     election.StartTime,
		EndTime:       election.EndTime,
		Status:        domain.ElectionStatusScheduled,
	})
	if err != nil {
		return domain.Election{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *ElectionRepository) FindByID(ctx context.Context, id uint) (domain.Election, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Election{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *ElectionRepository) FindByProgramYear(ctx context.Context, programYearID uint) ([]domain.Election, error) {
	found, err := r.dao.FindByProgramYear(ctx, programYearID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByProgramYear -> %w", err)
	}

	elections := make([]domain.Election, len(found))
	for i, e := range found {
		elections[i] = r.daoToDomain(e)
	}

	return elections, nil
}

func (r *ElectionRepository) Update(ctx context.Context, election domain.Election) (domain.Election, error) {
	updated, err := r.dao.Update(ctx, dao.Election{
		ID:            election.ID,
		ProgramYearID: election.ProgramYearID,
		PositionID:    election.PositionID,
		GroupingID:    election.GroupingID,
		Method:        string(election.Method),
		StartTime:     election.StartTime,
		EndTime:       election.EndTime,
		Status:        election.Status,
		CreatedAt:     election.CreatedAt,
	})
	if err != nil {
		return domain.Election{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return r.daoToDomain(updated), nil
}

func (r *ElectionRepository) CreateVote(ctx context.Context, vote domain.ElectionVote) (domain.ElectionVote, error) {
	created, err := r.dao.InsertVote(ctx, dao.ElectionVote{
		ElectionID:          vote.ElectionID,
		CandidateDelegateID: vote.CandidateDelegateID,
		VoterDelegateID:     vote.VoterDelegateID,
		VoteRank:            vote.VoteRank,
	})
	if err != nil {
		return domain.ElectionVote{}, fmt.Errorf("r.dao.InsertVote -> %w", err)
	}

	return domain.ElectionVote{
		ID:                  created.ID,
		ElectionID:          created.ElectionID,
		CandidateDelegateID: created.CandidateDelegateID,
		VoterDelegateID:     created.VoterDelegateID,
		VoteRank:            created.VoteRank,
		CreatedAt:           created.CreatedAt,
	}, nil
}

func (r *ElectionRepository) FindVotes(ctx context.Context, electionID uint) ([]domain.ElectionVote, error) {
	found, err := r.dao.FindVotes(ctx, electionID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindVotes -> %w", err)
	}

	votes := make([]domain.ElectionVote, len(found))
	for i, v := range found {
		votes[i] = domain.ElectionVote{
			ID:                  v.ID,
			ElectionID:          v.ElectionID,
			CandidateDelegateID: v.CandidateDelegateID,
			VoterDelegateID:     v.VoterDelegateID,
			VoteRank:            v.VoteRank,
			CreatedAt:           v.CreatedAt,
		}
	}

	return votes, nil
}

func (r *ElectionRepository) TallyVotes(ctx context.Context, electionID uint) ([]domain.CandidateTally, error) {
	counts, err := r.dao.CountVotesByCandidate(ctx, electionID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.CountVotesByCandidate -> %w", err)
	}

	tallies := make([]domain.CandidateTally, len(counts))
	for i, c := range counts {
		tallies[i] = domain.CandidateTally{
			CandidateDelegateID: c.CandidateDelegateID,
			Count:               c.Count,
		}
	}

	return tallies, nil
}

func (r *ElectionRepository) daoToDomain(e dao.Election) domain.Election {
	return domain.Election{
		ID:            e.ID,
		ProgramYearID: e.ProgramYearID,
		PositionID:    e.PositionID,
		GroupingID:    e.GroupingID,
		Method:        domain.ElectionMethod(e.Method),
		StartTime:     e.StartTime,
		EndTime:       e.EndTime,
		Status:        e.Status,
		CreatedAt:     e.CreatedAt,
		UpdatedAt:     e.UpdatedAt,
	}
}
