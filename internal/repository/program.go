package repository

import (
	"context"
	"fmt"

	"github.com/civiclab/program-api/internal/domain"
	"github.com/civiclab/program-api/internal/repository/dao"
)

var (
	ErrProgramNotFound     = dao.ErrProgramNotFound
	ErrAssignmentExists    = dao.ErrAssignmentExists
	ErrProgramRoleNotFound = dao.ErrProgramRoleNotFound
)

type ProgramDAO interface {
	Insert(ctx context.Context, program dao.Program) (dao.Program, error)
	FindByID(ctx context.Context, id uint) (dao.Program, error)
	FindAll(ctx context.Context) ([]dao.Program, error)
	Update(ctx context.Context, program dao.Program) (dao.Program, error)
	InsertAssignment(ctx context.Context, assignment dao.ProgramAssignment) (dao.ProgramAssignment, error)
	FindAssignment(ctx context.Context, userID, programID uint) (dao.ProgramAssignment, bool, error)
	FindAssignmentsByUser(ctx context.Context, userID uint) ([]dao.ProgramAssignment, error)
	InsertRole(ctx context.Context, role dao.ProgramRole) (dao.ProgramRole, error)
	FindRoleByID(ctx context.Context, id uint) (dao.ProgramRole, error)
	FindRolesByProgram(ctx context.Context, programID uint) ([]dao.ProgramRole, error)
}

type ProgramRepository struct {
	dao ProgramDAO
}

func NewProgramRepository(dao ProgramDAO) *ProgramRepository {
	return &ProgramRepository{
		dao: dao,
	}
}

func (r *ProgramRepository) Create(ctx context.Context, program domain.Program) (domain.Program, error) {
	created, err := r.dao.Insert(ctx, dao.Program{
		Name:        program.Name,
		Year:        program.Year,
		Config:      program.Config,
		Status:      domain.ProgramStatusActive,
		CreatedByID: program.CreatedByID,
	})
	if err != nil {
		return domain.Program{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.programToDomain(created), nil
}

func (r *ProgramRepository) FindByID(ctx context.Context, id uint) (domain.Program, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Program{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.programToDomain(found), nil
}

func (r *ProgramRepository) FindAll(ctx context.Context) ([]domain.Program, error) {
	found, err := r.dao.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	programs := make([]domain.Program, len(found))
	for i, p := range found {
		programs[i] = r.programToDomain(p)
	}

	return programs, nil
}

func (r *ProgramRepository) Update(ctx context.Context, program domain.Program) (domain.Program, error) {
	updated, err := r.dao.Update(ctx, dao.Program{
		ID:          program.ID,
		Name:        program.Name,
		Year:        program.Year,
		Config:      program.Config,
		Status:      program.Status,
		CreatedByID: program.CreatedByID,
		CreatedAt:   program.CreatedAt,
	})
	if err != nil {
		return domain.Program{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return r.programToDomain(updated), nil
}

func (r *ProgramRepository) CreateAssignment(ctx context.Context, assignment domain.ProgramAssignment) (domain.ProgramAssignment, error) {
	created, err := r.dao.InsertAssignment(ctx, dao.ProgramAssignment{
		UserID:        assignment.UserID,
		ProgramID:     assignment.ProgramID,
		Role:          assignment.Role,
		ProgramRoleID: assignment.ProgramRoleID,
	})
	if err != nil {
		return domain.ProgramAssignment{}, fmt.Errorf("r.dao.InsertAssignment -> %w", err)
	}

	return r.assignmentToDomain(created), nil
}

func (r *ProgramRepository) FindAssignment(ctx context.Context, userID, programID uint) (domain.ProgramAssignment, bool, error) {
	found, ok, err := r.dao.FindAssignment(ctx, userID, programID)
	if err != nil {
		return domain.ProgramAssignment{}, false, fmt.Errorf("r.dao.FindAssignment -> %w", err)
	}
	if !ok {
		return domain.ProgramAssignment{}, false, nil
	}

	return r.assignmentToDomain(found), true, nil
}

func (r *ProgramRepository) FindAssignmentsByUser(ctx context.Context, userID uint) ([]domain.AssignmentWithProgram, error) {
	found, err := r.dao.FindAssignmentsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAssignmentsByUser -> %w", err)
	}

	assignments := make([]domain.AssignmentWithProgram, len(found))
	for i, a := range found {
		assignments[i] = domain.AssignmentWithProgram{
			Assignment: r.assignmentToDomain(a),
			Program:    r.programToDomain(a.Program),
		}
	}

	return assignments, nil
}

func (r *ProgramRepository) CreateRole(ctx context.Context, role domain.ProgramRole) (domain.ProgramRole, error) {
	daoRole := dao.ProgramRole{
		ProgramID: role.ProgramID,
		Name:      role.Name,
	}
	for _, p := range role.Permissions {
		daoRole.Permissions = append(daoRole.Permissions, dao.ProgramRolePermission{
			Permission: string(p),
		})
	}

	created, err := r.dao.InsertRole(ctx, daoRole)
	if err != nil {
		return domain.ProgramRole{}, fmt.Errorf("r.dao.InsertRole -> %w", err)
	}

	return r.roleToDomain(created), nil
}

func (r *ProgramRepository) FindRoleByID(ctx context.Context, id uint) (domain.ProgramRole, error) {
	found, err := r.dao.FindRoleByID(ctx, id)
	if err != nil {
		return domain.ProgramRole{}, fmt.Errorf("r.dao.FindRoleByID -> %w", err)
	}

	return r.roleToDomain(found), nil
}

func (r *ProgramRepository) FindRolesByProgram(ctx context.Context, programID uint) ([]domain.ProgramRole, error) {
	found, err := r.dao.FindRolesByProgram(ctx, programID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindRolesByProgram -> %w", err)
	}

	roles := make([]domain.ProgramRole, len(found))
	for i, role := range found {
		roles[i] = r.roleToDomain(role)
	}

	return roles, nil
}

func (r *ProgramRepository) programToDomain(p dao.Program) domain.Program {
	return domain.Program{
		ID:          p.ID,
		Name:        p.Name,
		Year:        p.Year,
		Config:      p.Config,
		Status:      p.Status,
		CreatedByID: p.CreatedByID,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func (r *ProgramRepository) assignmentToDomain(a dao.ProgramAssignment) domain.ProgramAssignment {
	return domain.ProgramAssignment{
		ID:            a.ID,
		UserID:        a.UserID,
		ProgramID:     a.ProgramID,
		Role:          a.Role,
		ProgramRoleID: a.ProgramRoleID,
		CreatedAt:     a.CreatedAt,
	}
}

func (r *ProgramRepository) roleToDomain(role dao.ProgramRole) domain.ProgramRole {
	perms := make([]domain.Permission, len(role.Permissions))
	for i, p := range role.Permissions {
		perms[i] = domain.Permission(p.Permission)
	}

	return domain.ProgramRole{
		ID:          role.ID,
		ProgramID:   role.ProgramID,
		Name:        role.Name,
		Permissions: perms,
	}
}
