package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/civiclab/program-api/internal/domain"
	"github.com/civiclab/program-api/internal/repository"
)

type mockAuthzProgramRepo struct {
	findAllFunc               func(ctx context.Context) ([]domain.Program, error)
	findAssignmentFunc        func(ctx context.Context, userID, programID uint) (domain.ProgramAssignment, bool, error)
	findAssignmentsByUserFunc func(ctx context.Context, userID uint) ([]domain.AssignmentWithProgram, error)
	findRoleByIDFunc          func(ctx context.Context, id uint) (domain.ProgramRole, error)
}

func (m *mockAuthzProgramRepo) FindAll(ctx context.Context) ([]domain.Program, error) {
	if m.findAllFunc != nil {
		return m.findAllFunc(ctx)
	}
	return nil, errNotImplemented
}

func (m *mockAuthzProgramRepo) FindAssignment(ctx context.Context, userID, programID uint) (domain.ProgramAssignment, bool, error) {
	if m.findAssignmentFunc != nil {
		return m.findAssignmentFunc(ctx, userID, programID)
	}
	return domain.ProgramAssignment{}, false, errNotImplemented
}

func (m *mockAuthzProgramRepo) FindAssignmentsByUser(ctx context.Context, userID uint) ([]domain.AssignmentWithProgram, error) {
	if m.findAssignmentsByUserFunc != nil {
		return m.findAssignmentsByUserFunc(ctx, userID)
	}
	return nil, errNotImplemented
}

func (m *mockAuthzProgramRepo) FindRoleByID(ctx context.Context, id uint) (domain.ProgramRole, error) {
	if m.findRoleByIDFunc != nil {
		return m.findRoleByIDFunc(ctx, id)
	}
	return domain.ProgramRole{}, errNotImplemented
}

type mockAuthzUserRepo struct {
	findByEmailFunc func(ctx context.Context, email string) (domain.User, error)
}

func (m *mockAuthzUserRepo) FindByEmail(ctx context.Context, email string) (domain.User, error) {
	if m.findByEmailFunc != nil {
		return m.findByEmailFunc(ctx, email)
	}
	return domain.User{}, errNotImplemented
}

func assignment(role string, roleID *uint) func(ctx context.Context, userID, programID uint) (domain.ProgramAssignment, bool, error) {
	return func(_ context.Context, userID, programID uint) (domain.ProgramAssignment, bool, error) {
		return domain.ProgramAssignment{
			UserID:        userID,
			ProgramID:     programID,
			Role:          role,
			ProgramRoleID: roleID,
		}, true, nil
	}
}

func noAssignment(_ context.Context, _, _ uint) (domain.ProgramAssignment, bool, error) {
	return domain.ProgramAssignment{}, false, nil
}

func TestAuthorizationService_IsProgramAdmin(t *testing.T) {
	tests := []struct {
		name           string
		findAssignment func(ctx context.Context, userID, programID uint) (domain.ProgramAssignment, bool, error)
		want           bool
	}{
		{
			name:           "admin assignment",
			findAssignment: assignment(domain.RoleAdmin, nil),
			want:           true,
		},
		{
			name:           "member assignment is not admin",
			findAssignment: assignment("member", nil),
			want:           false,
		},
		{
			name:           "role comparison is case-sensitive",
			findAssignment: assignment("Admin", nil),
			want:           false,
		},
		{
			name:           "no assignment",
			findAssignment: noAssignment,
			want:           false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewAuthorizationService(&mockAuthzProgramRepo{findAssignmentFunc: tt.findAssignment}, &mockAuthzUserRepo{}, false)

			got, err := svc.IsProgramAdmin(context.Background(), 1, 2)

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAuthorizationService_IsProgramMember(t *testing.T) {
	svc := NewAuthorizationService(&mockAuthzProgramRepo{findAssignmentFunc: assignment("member", nil)}, &mockAuthzUserRepo{}, false)

	got, err := svc.IsProgramMember(context.Background(), 1, 2)

	require.NoError(t, err)
	assert.True(t, got)

	svc = NewAuthorizationService(&mockAuthzProgramRepo{findAssignmentFunc: noAssignment}, &mockAuthzUserRepo{}, false)

	got, err = svc.IsProgramMember(context.Background(), 1, 2)

	require.NoError(t, err)
	assert.False(t, got)
}

func TestAuthorizationService_GetUserPermissions(t *testing.T) {
	roleID := uint(7)

	tests := []struct {
		name  string
		repo  *mockAuthzProgramRepo
		want  []domain.Permission
		wantN int
	}{
		{
			name:  "admin holds the full universe",
			repo:  &mockAuthzProgramRepo{findAssignmentFunc: assignment(domain.RoleAdmin, nil)},
			want:  domain.AllPermissions,
			wantN: len(domain.AllPermissions),
		},
		{
			name: "member with named role gets exactly its grants",
			repo: &mockAuthzProgramRepo{
				findAssignmentFunc: assignment("member", &roleID),
				findRoleByIDFunc: func(_ context.Context, id uint) (domain.ProgramRole, error) {
					return domain.ProgramRole{
						ID:          id,
						Permissions: []domain.Permission{domain.PermissionManageElections, domain.PermissionViewReports},
					}, nil
				},
			},
			want:  []domain.Permission{domain.PermissionManageElections, domain.PermissionViewReports},
			wantN: 2,
		},
		{
			name:  "member without role gets the empty set",
			repo:  &mockAuthzProgramRepo{findAssignmentFunc: assignment("member", nil)},
			wantN: 0,
		},
		{
			name:  "non-member gets the empty set",
			repo:  &mockAuthzProgramRepo{findAssignmentFunc: noAssignment},
			wantN: 0,
		},
		{
			name: "dangling role reference degrades to the empty set",
			repo: &mockAuthzProgramRepo{
				findAssignmentFunc: assignment("member", &roleID),
				findRoleByIDFunc: func(_ context.Context, _ uint) (domain.ProgramRole, error) {
					return domain.ProgramRole{}, repository.ErrProgramRoleNotFound
				},
			},
			wantN: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewAuthorizationService(tt.repo, &mockAuthzUserRepo{}, false)

			perms, err := svc.GetUserPermissions(context.Background(), 1, 2)

			require.NoError(t, err)
			assert.Len(t, perms, tt.wantN)
			for _, p := range tt.want {
				assert.True(t, perms.Has(p), "missing permission %q", p)
			}
		})
	}
}

func TestAuthorizationService_GetUserPrograms(t *testing.T) {
	userRepo := &mockAuthzUserRepo{
		findByEmailFunc: func(_ context.Context, email string) (domain.User, error) {
			return domain.User{ID: 42, Email: email}, nil
		},
	}

	t.Run("normal listing mirrors assignments", func(t *testing.T) {
		repo := &mockAuthzProgramRepo{
			findAssignmentsByUserFunc: func(_ context.Context, _ uint) ([]domain.AssignmentWithProgram, error) {
				return []domain.AssignmentWithProgram{
					{
						Assignment: domain.ProgramAssignment{Role: domain.RoleAdmin},
						Program:    domain.Program{ID: 1, Name: "Alpha State"},
					},
					{
						Assignment: domain.ProgramAssignment{Role: "member"},
						Program:    domain.Program{ID: 2, Name: "Beta State"},
					},
				}, nil
			},
		}
		svc := NewAuthorizationService(repo, userRepo, false)

		got, err := svc.GetUserPrograms(context.Background(), "counselor@example.com")

		require.NoError(t, err)
		assert.Equal(t, domain.NormalListing, got.Listing)
		require.Len(t, got.Programs, 2)
		assert.Equal(t, domain.RoleAdmin, got.Programs[0].Role)
		assert.Equal(t, "Beta State", got.Programs[1].ProgramName)
	})

	t.Run("unknown email maps to ErrUserNotFound", func(t *testing.T) {
		missing := &mockAuthzUserRepo{
			findByEmailFunc: func(_ context.Context, _ string) (domain.User, error) {
				return domain.User{}, repository.ErrUserNotFound
			},
		}
		svc := NewAuthorizationService(&mockAuthzProgramRepo{}, missing, false)

		_, err := svc.GetUserPrograms(context.Background(), "nobody@example.com")

		assert.ErrorIs(t, err, ErrUserNotFound)
	})

	devAssignments := func(_ context.Context, _ uint) ([]domain.AssignmentWithProgram, error) {
		return []domain.AssignmentWithProgram{
			{
				Assignment: domain.ProgramAssignment{Role: domain.RoleAdmin},
				Program:    domain.Program{ID: 99, Name: domain.DevProgramName},
			},
			{
				Assignment: domain.ProgramAssignment{Role: "member"},
				Program:    domain.Program{ID: 1, Name: "Alpha State"},
			},
		}, nil
	}
	allPrograms := func(_ context.Context) ([]domain.Program, error) {
		return []domain.Program{
			{ID: 1, Name: "Alpha State"},
			{ID: 2, Name: "Beta State"},
			{ID: 99, Name: domain.DevProgramName},
		}, nil
	}

	t.Run("development membership expands the listing when enabled", func(t *testing.T) {
		repo := &mockAuthzProgramRepo{
			findAssignmentsByUserFunc: devAssignments,
			findAllFunc:               allPrograms,
		}
		svc := NewAuthorizationService(repo, userRepo, true)

		got, err := svc.GetUserPrograms(context.Background(), "dev@example.com")

		require.NoError(t, err)
		assert.Equal(t, domain.DeveloperOverrideListing, got.Listing)
		require.Len(t, got.Programs, 3)

		byID := make(map[uint]domain.UserProgram, len(got.Programs))
		for _, p := range got.Programs {
			byID[p.ProgramID] = p
		}
		assert.Equal(t, "member", byID[1].Role, "real assignment keeps its role")
		assert.Equal(t, domain.RoleDeveloper, byID[2].Role, "unassigned program shows the sentinel role")
	})

	t.Run("override is inert when disabled", func(t *testing.T) {
		repo := &mockAuthzProgramRepo{
			findAssignmentsByUserFunc: devAssignments,
		}
		svc := NewAuthorizationService(repo, userRepo, false)

		got, err := svc.GetUserPrograms(context.Background(), "dev@example.com")

		require.NoError(t, err)
		assert.Equal(t, domain.NormalListing, got.Listing)
		assert.Len(t, got.Programs, 2)
	})
}
