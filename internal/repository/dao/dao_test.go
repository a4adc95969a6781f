package dao

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var (
	testDB *gorm.DB
	seq    int64
)

func TestMain(m *testing.M) {
	flag.Parse()
	if testing.Short() {
		os.Exit(0)
	}

	pool, err := dockertest.NewPool("")
	if err == nil {
		err = pool.Client.Ping()
	}
	if err != nil {
		log.Printf("docker unavailable, skipping dao tests: %v", err)
		os.Exit(0)
	}

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "postgres",
		Tag:        "16-alpine",
		Env: []string{
			"POSTGRES_USER=hackarch",
			"POSTGRES_PASSWORD=secret",
			"POSTGRES_DB=hackarch_test",
		},
	}, func(config *docker.HostConfig) {
		config.AutoRemove = true
		config.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		log.Fatalf("could not start postgres container: %v", err)
	}
	_ = resource.Expire(180)

	dsn := fmt.Sprintf(
		"postgres://hackarch:secret@%s/hackarch_test?sslmode=disable",
		resource.GetHostPort("5432/tcp"),
	)

	pool.MaxWait = 2 * time.Minute
	if err = pool.Retry(func() error {
		db, openErr := gorm.Open(postgres.Open(dsn), &gorm.Config{
			Logger: gormlogger.Default.LogMode(gormlogger.Silent),
		})
		if openErr != nil {
			return openErr
		}

		sqlDB, dbErr := db.DB()
		if dbErr != nil {
			return dbErr
		}
		if pingErr := sqlDB.Ping(); pingErr != nil {
			return pingErr
		}

		testDB = db

		return nil
	}); err != nil {
		log.Fatalf("could not connect to postgres: %v", err)
	}

	if err = InitTables(testDB); err != nil {
		log.Fatalf("could not migrate tables: %v", err)
	}

	code := m.Run()

	if err = pool.Purge(resource); err != nil {
		log.Fatalf("could not purge postgres container: %v", err)
	}

	os.Exit(code)
}

func createUser(t *testing.T) User {
	t.Helper()

	user, err := NewUserDAO(testDB).Insert(context.Background(), User{
		Email:        fmt.Sprintf("user-%d@example.com", atomic.AddInt64(&seq, 1)),
		PasswordHash: "hash",
		FirstName:    "Test",
		LastName:     "User",
	})
	require.NoError(t, err)

	return user
}

func createHackathon(t *testing.T, organizerID uint) Hackathon {
	t.Helper()

	now := time.Now()
	hackathon, err := NewHackathonDAO(testDB).Insert(context.Background(), Hackathon{
		OrganizerID:           organizerID,
		Title:                 "Test Hack",
		RegistrationStartDate: now.Add(-time.Hour),
		RegistrationEndDate:   now.Add(time.Hour),
		StartDate:             now.Add(2 * time.Hour),
		EndDate:               now.Add(26 * time.Hour),
		MaxTeamSize:           4,
	})
	require.NoError(t, err)

	return hackathon
}

func createTeam(t *testing.T, hackathonID, leaderID uint) Team {
	t.Helper()

	team, err := NewTeamDAO(testDB).InsertWithEnrollment(context.Background(), Team{
		HackathonID:  hackathonID,
		TeamName:     "Gophers",
		TeamLeaderID: leaderID,
		TeamSize:     2,
	}, leaderID, time.Now())
	require.NoError(t, err)

	return team
}

func TestUserDAO_Insert_DuplicateEmail(t *testing.T) {
	d := NewUserDAO(testDB)
	user := createUser(t)

	_, err := d.Insert(context.Background(), User{
		Email:        user.Email,
		PasswordHash: "other",
	})
	assert.ErrorIs(t, err, ErrUserEmailExists)
}

func TestTeamDAO_InsertWithEnrollment_OnePerHackathon(t *testing.T) {
	organizer := createUser(t)
	leader := createUser(t)
	hackathon := createHackathon(t, organizer.ID)

	createTeam(t, hackathon.ID, leader.ID)

	_, err := NewTeamDAO(testDB).InsertWithEnrollment(context.Background(), Team{
		HackathonID:  hackathon.ID,
		TeamName:     "Second Attempt",
		TeamLeaderID: leader.ID,
		TeamSize:     2,
	}, leader.ID, time.Now())
	assert.ErrorIs(t, err, ErrAlreadyEnrolled)
}

func TestTeamDAO_RedeemInvitation(t *testing.T) {
	d := NewTeamDAO(testDB)
	organizer := createUser(t)
	leader := createUser(t)
	invitee := createUser(t)
	hackathon := createHackathon(t, organizer.ID)
	team := createTeam(t, hackathon.ID, leader.ID)

	invitation, err := d.InsertMemberWithInvitation(context.Background(), TeamMember{
		TeamID:   team.ID,
		UserID:   invitee.ID,
		JoinedAt: time.Now(),
	}, TeamInvitation{
		InvitationToken:  fmt.Sprintf("token-%d", atomic.AddInt64(&seq, 1)),
		ExpiresAt:        time.Now().Add(time.Hour),
		InvitationStatus: "pending",
	})
	require.NoError(t, err)

	t.Run("redeeming verifies the member", func(t *testing.T) {
		redeemed, err := d.RedeemInvitation(context.Background(), invitation.InvitationToken, time.Now())
		require.NoError(t, err)
		assert.Equal(t, invitee.ID, redeemed.InvitedUserID)

		member, err := d.FindMember(context.Background(), team.ID, invitee.ID)
		require.NoError(t, err)
		assert.True(t, member.Verified)
	})

	t.Run("a token redeems exactly once", func(t *testing.T) {
		_, err := d.RedeemInvitation(context.Background(), invitation.InvitationToken, time.Now())
		assert.ErrorIs(t, err, ErrInvitationInvalidOrExpired)
	})

	t.Run("an expired token never redeems", func(t *testing.T) {
		expired, err := d.InsertInvitation(context.Background(), TeamInvitation{
			TeamID:           team.ID,
			InvitedUserID:    invitee.ID,
			InvitationToken:  fmt.Sprintf("token-%d", atomic.AddInt64(&seq, 1)),
			ExpiresAt:        time.Now().Add(-time.Minute),
			InvitationStatus: "pending",
		})
		require.NoError(t, err)

		_, err = d.RedeemInvitation(context.Background(), expired.InvitationToken, time.Now())
		assert.ErrorIs(t, err, ErrInvitationInvalidOrExpired)
	})
}

func TestTeamDAO_InsertProject_OncePerTeam(t *testing.T) {
	d := NewTeamDAO(testDB)
	organizer := createUser(t)
	leader := createUser(t)
	hackathon := createHackathon(t, organizer.ID)
	team := createTeam(t, hackathon.ID, leader.ID)

	_, err := d.InsertProject(context.Background(), Project{
		TeamID:      team.ID,
		HackathonID: hackathon.ID,
		ProjectName: "HackTracker",
		SubmittedAt: time.Now(),
	})
	require.NoError(t, err)

	stored, err := d.FindByID(context.Background(), team.ID)
	require.NoError(t, err)
	assert.Equal(t, "Submitted", stored.ProjectStatus)

	_, err = d.InsertProject(context.Background(), Project{
		TeamID:      team.ID,
		HackathonID: hackathon.ID,
		ProjectName: "HackTracker v2",
		SubmittedAt: time.Now(),
	})
	assert.ErrorIs(t, err, ErrProjectAlreadySubmitted)
}

func TestJudgingDAO_Assignments(t *testing.T) {
	d := NewJudgingDAO(testDB)
	organizer := createUser(t)
	leader := createUser(t)
	judge := createUser(t)
	hackathon := createHackathon(t, organizer.ID)
	team := createTeam(t, hackathon.ID, leader.ID)

	assignment, err := d.InsertAssignment(context.Background(), JudgeAssignment{
		JudgeID:     judge.ID,
		TeamID:      team.ID,
		HackathonID: hackathon.ID,
		Status:      "pending",
		AssignedAt:  time.Now(),
	})
	require.NoError(t, err)

	t.Run("one assignment per judge and team", func(t *testing.T) {
		_, err := d.InsertAssignment(context.Background(), JudgeAssignment{
			JudgeID:     judge.ID,
			TeamID:      team.ID,
			HackathonID: hackathon.ID,
			Status:      "pending",
			AssignedAt:  time.Now(),
		})
		assert.ErrorIs(t, err, ErrJudgeAlreadyAssigned)
	})

	t.Run("another judge cannot move it", func(t *testing.T) {
		_, err := d.UpdateAssignmentStatus(context.Background(), assignment.ID, judge.ID+1000, "accepted")
		assert.ErrorIs(t, err, ErrAssignmentNotFound)
	})

	t.Run("pending moves to a terminal state once", func(t *testing.T) {
		updated, err := d.UpdateAssignmentStatus(context.Background(), assignment.ID, judge.ID, "accepted")
		require.NoError(t, err)
		assert.Equal(t, "accepted", updated.Status)

		_, err = d.UpdateAssignmentStatus(context.Background(), assignment.ID, judge.ID, "rejected")
		assert.ErrorIs(t, err, ErrAssignmentNotPending)
	})
}

func TestJudgingDAO_Scores(t *testing.T) {
	teamDAO := NewTeamDAO(testDB)
	d := NewJudgingDAO(testDB)
	organizer := createUser(t)
	leader := createUser(t)
	judge := createUser(t)
	hackathon := createHackathon(t, organizer.ID)
	team := createTeam(t, hackathon.ID, leader.ID)

	project, err := teamDAO.InsertProject(context.Background(), Project{
		TeamID:      team.ID,
		HackathonID: hackathon.ID,
		ProjectName: "HackTracker",
		SubmittedAt: time.Now(),
	})
	require.NoError(t, err)

	_, err = d.InsertScore(context.Background(), ProjectScore{
		ProjectID: project.ID,
		JudgeID:   judge.ID,
		Score:     7,
		Comments:  "first pass",
	})
	require.NoError(t, err)

	t.Run("one score per judge and project", func(t *testing.T) {
		_, err := d.InsertScore(context.Background(), ProjectScore{
			ProjectID: project.ID,
			JudgeID:   judge.ID,
			Score:     9,
		})
		assert.ErrorIs(t, err, ErrProjectAlreadyScored)
	})

	t.Run("updates rewrite the existing row", func(t *testing.T) {
		updated, err := d.UpdateScore(context.Background(), project.ID, judge.ID, 9, "revised")
		require.NoError(t, err)
		assert.Equal(t, 9, updated.Score)
		assert.Equal(t, "revised", updated.Comments)
	})

	t.Run("updating a missing score fails", func(t *testing.T) {
		_, err := d.UpdateScore(context.Background(), project.ID, judge.ID+1000, 5, "")
		assert.ErrorIs(t, err, ErrScoreNotFound)
	})
}

func TestHackathonDAO_InsertWinner_OncePerPrize(t *testing.T) {
	d := NewHackathonDAO(testDB)
	organizer := createUser(t)
	leader := createUser(t)
	hackathon := createHackathon(t, organizer.ID)
	team := createTeam(t, hackathon.ID, leader.ID)

	prize, err := d.InsertPrize(context.Background(), Prize{
		HackathonID: hackathon.ID,
		PrizeName:   "Grand Prize",
		Position:    1,
	})
	require.NoError(t, err)

	_, err = d.InsertWinner(context.Background(), Winner{
		PrizeID:   prize.ID,
		TeamID:    team.ID,
		AwardedAt: time.Now(),
	})
	require.NoError(t, err)

	_, err = d.InsertWinner(context.Background(), Winner{
		PrizeID:   prize.ID,
		TeamID:    team.ID,
		AwardedAt: time.Now(),
	})
	assert.ErrorIs(t, err, ErrPrizeAlreadyAwarded)
}
