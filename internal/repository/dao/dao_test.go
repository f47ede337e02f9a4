package dao

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"testing"
	"time"

	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testDB *gorm.DB

// TestMain starts a throwaway Postgres container for the DAO tests.
// Run with -short to skip everything that needs Docker.
func TestMain(m *testing.M) {
	flag.Parse()
	if testing.Short() {
		os.Exit(m.Run())
	}

	pool, err := dockertest.NewPool("")
	if err != nil {
		log.Fatalf("could not construct docker pool: %v", err)
	}
	if err = pool.Client.Ping(); err != nil {
		log.Fatalf("could not connect to docker: %v", err)
	}

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "postgres",
		Tag:        "16-alpine",
		Env: []string{
			"POSTGRES_USER=test",
			"POSTGRES_PASSWORD=test",
			"POSTGRES_DB=program_api_test",
		},
	}, func(config *docker.HostConfig) {
		config.AutoRemove = true
		config.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		log.Fatalf("could not start postgres container: %v", err)
	}

	dsn := fmt.Sprintf("host=localhost port=%v user=test password=test dbname=program_api_test sslmode=disable",
		resource.GetPort("5432/tcp"))

	pool.MaxWait = 2 * time.Minute
	if err = pool.Retry(func() error {
		db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		if err != nil {
			return err
		}

		testDB = db

		sqlDB, err := db.DB()
		if err != nil {
			return err
		}

		return sqlDB.Ping()
	}); err != nil {
		log.Fatalf("could not connect to postgres: %v", err)
	}

	if err = InitTables(testDB); err != nil {
		log.Fatalf("could not migrate tables: %v", err)
	}

	code := m.Run()

	if err = pool.Purge(resource); err != nil {
		log.Printf("could not purge postgres container: %v", err)
	}

	os.Exit(code)
}

func skipWithoutDocker(t *testing.T) {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
}

func TestUserDAO(t *testing.T) {
	skipWithoutDocker(t)
	ctx := context.Background()
	d := NewUserDAO(testDB)

	created, err := d.Insert(ctx, User{Email: "dao-user@example.com", Password: "hash", Name: "DAO User"})
	require.NoError(t, err)
	require.NotZero(t, created.ID)

	t.Run("duplicate email maps to ErrUserEmailExists", func(t *testing.T) {
		_, err := d.Insert(ctx, User{Email: "dao-user@example.com", Password: "hash"})
		assert.ErrorIs(t, err, ErrUserEmailExists)
	})

	t.Run("find by email", func(t *testing.T) {
		found, err := d.FindByEmail(ctx, "dao-user@example.com")
		require.NoError(t, err)
		assert.Equal(t, created.ID, found.ID)
	})

	t.Run("missing user maps to ErrUserNotFound", func(t *testing.T) {
		_, err := d.FindByID(ctx, 999999)
		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}

func TestProgramDAO_Assignments(t *testing.T) {
	skipWithoutDocker(t)
	ctx := context.Background()
	d := NewProgramDAO(testDB)

	program, err := d.Insert(ctx, Program{Name: "Assignment State", Year: 2026, CreatedByID: 1})
	require.NoError(t, err)

	assignment, err := d.InsertAssignment(ctx, ProgramAssignment{UserID: 7, ProgramID: program.ID, Role: "admin"})
	require.NoError(t, err)
	require.NotZero(t, assignment.ID)

	t.Run("second assignment for the pair maps to ErrAssignmentExists", func(t *testing.T) {
		_, err := d.InsertAssignment(ctx, ProgramAssignment{UserID: 7, ProgramID: program.ID, Role: "member"})
		assert.ErrorIs(t, err, ErrAssignmentExists)
	})

	t.Run("find assignment", func(t *testing.T) {
		found, ok, err := d.FindAssignment(ctx, 7, program.ID)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, "admin", found.Role)
	})

	t.Run("missing assignment reports not found without error", func(t *testing.T) {
		_, ok, err := d.FindAssignment(ctx, 7, 999999)
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestElectionDAO_Votes(t *testing.T) {
	skipWithoutDocker(t)
	ctx := context.Background()
	d := NewElectionDAO(testDB)

	election, err := d.Insert(ctx, Election{ProgramYearID: 1, PositionID: 1, GroupingID: 1, Method: "plurality", Status: "open"})
	require.NoError(t, err)

	_, err = d.InsertVote(ctx, ElectionVote{ElectionID: election.ID, CandidateDelegateID: 10, VoterDelegateID: 20})
	require.NoError(t, err)
	_, err = d.InsertVote(ctx, ElectionVote{ElectionID: election.ID, CandidateDelegateID: 11, VoterDelegateID: 21})
	require.NoError(t, err)
	_, err = d.InsertVote(ctx, ElectionVote{ElectionID: election.ID, CandidateDelegateID: 10, VoterDelegateID: 22})
	require.NoError(t, err)

	t.Run("unique index rejects a second ballot per voter", func(t *testing.T) {
		_, err := d.InsertVote(ctx, ElectionVote{ElectionID: election.ID, CandidateDelegateID: 11, VoterDelegateID: 20})
		assert.ErrorIs(t, err, ErrDuplicateVote)
	})

	t.Run("same voter may vote in a different election", func(t *testing.T) {
		other, err := d.Insert(ctx, Election{ProgramYearID: 1, PositionID: 2, GroupingID: 1, Method: "majority", Status: "open"})
		require.NoError(t, err)

		_, err = d.InsertVote(ctx, ElectionVote{ElectionID: other.ID, CandidateDelegateID: 10, VoterDelegateID: 20})
		assert.NoError(t, err)
	})

	t.Run("tally groups by candidate", func(t *testing.T) {
		counts, err := d.CountVotesByCandidate(ctx, election.ID)
		require.NoError(t, err)

		byCandidate := make(map[uint]int, len(counts))
		total := 0
		for _, c := range counts {
			byCandidate[c.CandidateDelegateID] = c.Count
			total += c.Count
		}

		assert.Equal(t, 2, byCandidate[10])
		assert.Equal(t, 1, byCandidate[11])
		assert.Equal(t, 3, total)
	})
}
