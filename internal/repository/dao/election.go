package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrElectionNotFound = errors.New("election not found")
	ErrDuplicateVote    = errors.New("voter has already voted in this election")
)

type Election struct {
	ID uint `gorm:"primaryKey"`

	ProgramYearID uint   `gorm:"not null;index"`
	PositionID    uint   `gorm:"not null"`
	GroupingID    uint   `gorm:"not null"`
	Method        string `gorm:"not null"`
	StartTime     *time.Time
	EndTime       *time.Time
	Status        string `gorm:"not null;default:scheduled"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// ElectionVote enforces one vote per voter per election through the
// composite unique index; violations surface as ErrDuplicateVote.
type ElectionVote struct {
	ID uint `gorm:"primaryKey"`

	ElectionID          uint `gorm:"not null;uniqueIndex:idx_votes_election_voter"`
	CandidateDelegateID uint `gorm:"not null"`
	VoterDelegateID     uint `gorm:"not null;uniqueIndex:idx_votes_election_voter"`
	VoteRank            *int

	CreatedAt time.Time `gorm:"not null"`
}

// CandidateCount is the grouped tally row for one candidate.
type CandidateCount struct {
	CandidateDelegateID uint
	Count               int
}

type ElectionDAO struct {
	db *gorm.DB
}

func NewElectionDAO(db *gorm.DB) *ElectionDAO {
	return &ElectionDAO{
		db: db,
	}
}

func (d *ElectionDAO) Insert(ctx context.Context, election Election) (Election, error) {
	result := d.db.WithContext(ctx).Create(&election)
	if result.Error != nil {
		return Election{}, result.Error
	}

	return election, nil
}

func (d *ElectionDAO) FindByID(ctx context.Context, id uint) (Election, error) {
	var election Election

	result := d.db.WithContext(ctx).First(&election, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Election{}, ErrElectionNotFound
		}

		return Election{}, result.Error
	}

	return election, nil
}

func (d *ElectionDAO) FindByProgramYear(ctx context.Context, programYearID uint) ([]Election, error) {
	var elections []Election

	result := d.db.WithContext(ctx).Order("id").Find(&elections, "program_year_id = ?", programYearID)
	if result.Error != nil {
		return nil, result.Error
	}

	return elections, nil
}

func (d *ElectionDAO) Update(ctx context.Context, election Election) (Election, error) {
	result := d.db.WithContext(ctx).Save(&election)
	if result.Error != nil {
		return Election{}, result.Error
	}

	return election, nil
}

func (d *ElectionDAO) InsertVote(ctx context.Context, vote ElectionVote) (ElectionVote, error) {
	result := d.db.WithContext(ctx).Create(&vote)
	if result.Error != nil {
		var err *pgconn.PgError
		if errors.As(result.Error, &err) && err.Code == pgerrcode.UniqueViolation {
			return ElectionVote{}, ErrDuplicateVote
		}

		return ElectionVote{}, result.Error
	}

	return vote, nil
}

func (d *ElectionDAO) FindVotes(ctx context.Context, electionID uint) ([]ElectionVote, error) {
	var votes []ElectionVote

	result := d.db.WithContext(ctx).Order("id").Find(&votes, "election_id = ?", electionID)
	if result.Error != nil {
		return nil, result.Error
	}

	return votes, nil
}

func (d *ElectionDAO) CountVotesByCandidate(ctx context.Context, electionID uint) ([]CandidateCount, error) {
	var counts []CandidateCount

	result := d.db.WithContext(ctx).
		Model(&ElectionVote{}).
		Select("candidate_delegate_id, count(*) as count").
		Where("election_id = ?", electionID).
		Group("candidate_delegate_id").
		Order("count desc, candidate_delegate_id").
		Scan(&counts)
	if result.Error != nil {
		return nil, result.Error
	}

	return counts, nil
}
