package request

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
)

type CreateElectionRequest struct {
	PositionID uint       `json:"position_id"`
	GroupingID uint       `json:"grouping_id"`
	Method     string     `json:"method"`
	StartTime  *time.Time `json:"start_time"`
	EndTime    *time.Time `json:"end_time"`
}

func (req *CreateElectionRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.PositionID, validation.Required),
		validation.Field(&req.GroupingID, validation.Required),
		validation.Field(&req.Method, validation.Required, validation.In("plurality", "majority", "ranked")),
	)
}

type UpdateElectionRequest struct {
	Status    *string    `json:"status"`
	StartTime *time.Time `json:"start_time"`
	EndTime   *time.Time `json:"end_time"`
}

func (req *UpdateElectionRequest) Validate() error {
	if req.Status == nil {
		return nil
	}

	return validation.Validate(*req.Status, validation.In("scheduled", "open", "closed", "archived"))
}

type CastVoteRequest struct {
	CandidateDelegateID uint `json:"candidate_delegate_id"`
	VoterDelegateID     uint `json:"voter_delegate_id"`
	VoteRank            *int `json:"vote_rank"`
}

func (req *CastVoteRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.CandidateDelegateID, validation.Required),
		validation.Field(&req.VoterDelegateID, validation.Required),
	)
}
