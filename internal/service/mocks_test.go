package service

import (
	"context"
	"errors"

	"github.com/civiclab/program-api/internal/domain"
)

var errNotImplemented = errors.New("not implemented")

// stubAuthorizer answers every admin/member question with fixed values.
type stubAuthorizer struct {
	admin  bool
	member bool
	err    error
}

func (a *stubAuthorizer) IsProgramAdmin(_ context.Context, _, _ uint) (bool, error) {
	return a.admin, a.err
}

func (a *stubAuthorizer) IsProgramMember(_ context.Context, _, _ uint) (bool, error) {
	return a.member, a.err
}

// recordingAudit captures audit messages so tests can assert on them.
type recordingAudit struct {
	entries []string
}

func (l *recordingAudit) Log(_ uint, message string) {
	l.entries = append(l.entries, message)
}

type mockProgramYearRepo struct {
	findByIDFunc func(ctx context.Context, id uint) (domain.ProgramYear, error)
}

func (m *mockProgramYearRepo) FindByID(ctx context.Context, id uint) (domain.ProgramYear, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return domain.ProgramYear{}, errNotImplemented
}

type mockProgramFinder struct {
	findByIDFunc func(ctx context.Context, id uint) (domain.Program, error)
}

func (m *mockProgramFinder) FindByID(ctx context.Context, id uint) (domain.Program, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return domain.Program{}, errNotImplemented
}
