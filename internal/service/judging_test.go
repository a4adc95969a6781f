package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hackarch/hackarch-api/internal/domain"
)

type judgingFixture struct {
	svc       *JudgingService
	teamSvc   *TeamService
	repo      *fakeJudgingRepo
	userRepo  *fakeUserRepo
	teamRepo  *fakeTeamRepo
	sender    *fakeSender
	organizer domain.User
	judge     domain.User
	team      domain.Team
	project   domain.Project
}

func newJudgingFixture(t *testing.T) *judgingFixture {
	t.Helper()

	userRepo := newFakeUserRepo()
	teamRepo := newFakeTeamRepo(userRepo)
	hackRepo := newFakeHackathonRepo()
	judgingRepo := newFakeJudgingRepo()
	sender := newFakeSender()

	organizer, err := userRepo.Create(context.Background(), domain.User{
		Email:    "org@example.com",
		UserType: domain.UserTypeOrganizer,
		Status:   domain.UserRegistered,
	})
	require.NoError(t, err)

	now := time.Now()
	hackathon, err := hackRepo.Create(context.Background(), domain.Hackathon{
		OrganizerID:           organizer.ID,
		Title:                 "Spring Hack",
		RegistrationStartDate: now.Add(-time.Hour),
		RegistrationEndDate:   now.Add(time.Hour),
		StartDate:             now.Add(2 * time.Hour),
		EndDate:               now.Add(26 * time.Hour),
		MaxTeamSize:           4,
	})
	require.NoError(t, err)

	topics, err := hackRepo.AddTopics(context.Background(), []domain.Topic{
		{HackathonID: hackathon.ID, Title: "AI"},
	})
	require.NoError(t, err)

	leader, err := userRepo.Create(context.Background(), domain.User{
		Email:    "leader@example.com",
		UserType: domain.UserTypeParticipant,
		Status:   domain.UserRegistered,
	})
	require.NoError(t, err)

	teamSvc := NewTeamService(teamRepo, userRepo, hackRepo, sender)
	team, err := teamSvc.Enroll(context.Background(), leader.ID, domain.Team{
		HackathonID: hackathon.ID,
		TeamName:    "Gophers",
		TeamSize:    1,
		TopicID:     topics[0].ID,
	})
	require.NoError(t, err)

	project, err := teamSvc.SubmitProject(context.Background(), leader.ID, domain.Project{
		TeamID:      team.ID,
		ProjectName: "HackTracker",
	})
	require.NoError(t, err)

	svc := NewJudgingService(judgingRepo, userRepo, teamRepo, hackRepo, sender)
	judge, err := svc.CreateJudge(context.Background(), domain.User{
		Email:     "judge@example.com",
		FirstName: "Jo",
	}, "Password1")
	require.NoError(t, err)

	return &judgingFixture{
		svc:       svc,
		teamSvc:   teamSvc,
		repo:      judgingRepo,
		userRepo:  userRepo,
		teamRepo:  teamRepo,
		sender:    sender,
		organizer: organizer,
		judge:     judge,
		team:      team,
		project:   project,
	}
}

func TestJudgingService_CreateJudge(t *testing.T) {
	f := newJudgingFixture(t)

	assert.Equal(t, domain.UserTypeJudge, f.judge.UserType)
	assert.Equal(t, domain.UserRegistered, f.judge.Status)

	judges, err := f.svc.ListJudges(context.Background())
	require.NoError(t, err)
	assert.Len(t, judges, 1)
}

func TestJudgingService_AssignJudge(t *testing.T) {
	t.Run("assigns and notifies the judge", func(t *testing.T) {
		f := newJudgingFixture(t)

		assignment, warnings, err := f.svc.AssignJudge(context.Background(), f.organizer.ID, f.judge.ID, f.team.ID)
		require.NoError(t, err)
		assert.Empty(t, warnings)
		assert.Equal(t, domain.AssignmentPending, assignment.Status)
		require.Len(t, f.sender.sent, 1)
		assert.Equal(t, "judge@example.com", f.sender.sent[0].email)
	})

	t.Run("rejects assigning a non-judge", func(t *testing.T) {
		f := newJudgingFixture(t)

		_, _, err := f.svc.AssignJudge(context.Background(), f.organizer.ID, f.organizer.ID, f.team.ID)
		assert.ErrorIs(t, err, ErrNotAJudge)
	})

	t.Run("rejects callers who do not run the hackathon", func(t *testing.T) {
		f := newJudgingFixture(t)

		_, _, err := f.svc.AssignJudge(context.Background(), f.organizer.ID+100, f.judge.ID, f.team.ID)
		assert.ErrorIs(t, err, ErrNotOrganizer)
	})

	t.Run("rejects a duplicate assignment", func(t *testing.T) {
		f := newJudgingFixture(t)

		_, _, err := f.svc.AssignJudge(context.Background(), f.organizer.ID, f.judge.ID, f.team.ID)
		require.NoError(t, err)

		_, _, err = f.svc.AssignJudge(context.Background(), f.organizer.ID, f.judge.ID, f.team.ID)
		assert.ErrorIs(t, err, ErrJudgeAlreadyAssigned)
	})

	t.Run("delivery failure is a warning, assignment stands", func(t *testing.T) {
		f := newJudgingFixture(t)
		f.sender.failEmails["judge@example.com"] = true

		_, warnings, err := f.svc.AssignJudge(context.Background(), f.organizer.ID, f.judge.ID, f.team.ID)
		require.NoError(t, err)
		assert.Len(t, warnings, 1)

		assignments, err := f.svc.GetAssignments(context.Background(), f.judge.ID)
		require.NoError(t, err)
		assert.Len(t, assignments, 1)
	})
}

func TestJudgingService_UpdateAssignmentStatus(t *testing.T) {
	t.Run("pending assignments accept or reject once", func(t *testing.T) {
		f := newJudgingFixture(t)

		assignment, _, err := f.svc.AssignJudge(context.Background(), f.organizer.ID, f.judge.ID, f.team.ID)
		require.NoError(t, err)

		updated, err := f.svc.UpdateAssignmentStatus(context.Background(), f.judge.ID, assignment.ID, domain.AssignmentAccepted)
		require.NoError(t, err)
		assert.Equal(t, domain.AssignmentAccepted, updated.Status)

		_, err = f.svc.UpdateAssignmentStatus(context.Background(), f.judge.ID, assignment.ID, domain.AssignmentRejected)
		assert.ErrorIs(t, err, ErrAssignmentNotPending)
	})

	t.Run("rejects an unknown status value", func(t *testing.T) {
		f := newJudgingFixture(t)

		_, err := f.svc.UpdateAssignmentStatus(context.Background(), f.judge.ID, 1, "maybe")
		assert.ErrorIs(t, err, ErrInvalidAssignmentStatus)
	})

	t.Run("a judge cannot touch someone else's assignment", func(t *testing.T) {
		f := newJudgingFixture(t)

		assignment, _, err := f.svc.AssignJudge(context.Background(), f.organizer.ID, f.judge.ID, f.team.ID)
		require.NoError(t, err)

		_, err = f.svc.UpdateAssignmentStatus(context.Background(), f.judge.ID+100, assignment.ID, domain.AssignmentAccepted)
		assert.ErrorIs(t, err, ErrAssignmentNotFound)
	})
}

func TestJudgingService_Scores(t *testing.T) {
	t.Run("scores a project once per judge", func(t *testing.T) {
		f := newJudgingFixture(t)

		_, _, err := f.svc.AssignJudge(context.Background(), f.organizer.ID, f.judge.ID, f.team.ID)
		require.NoError(t, err)

		score, err := f.svc.SubmitScore(context.Background(), f.judge.ID, f.project.ID, 8, "solid")
		require.NoError(t, err)
		assert.Equal(t, 8, score.Score)

		_, err = f.svc.SubmitScore(context.Background(), f.judge.ID, f.project.ID, 9, "again")
		assert.ErrorIs(t, err, ErrProjectAlreadyScored)
	})

	t.Run("rejects scores outside 1..10", func(t *testing.T) {
		f := newJudgingFixture(t)

		_, err := f.svc.SubmitScore(context.Background(), f.judge.ID, f.project.ID, 11, "")
		assert.ErrorIs(t, err, ErrScoreOutOfRange)

		_, err = f.svc.SubmitScore(context.Background(), f.judge.ID, f.project.ID, 0, "")
		assert.ErrorIs(t, err, ErrScoreOutOfRange)
	})

	t.Run("rejects scoring without an assignment", func(t *testing.T) {
		f := newJudgingFixture(t)

		_, err := f.svc.SubmitScore(context.Background(), f.judge.ID, f.project.ID, 5, "")
		assert.ErrorIs(t, err, ErrNotAssignedToTeam)
	})

	t.Run("updates an existing score in place", func(t *testing.T) {
		f := newJudgingFixture(t)

		_, _, err := f.svc.AssignJudge(context.Background(), f.organizer.ID, f.judge.ID, f.team.ID)
		require.NoError(t, err)

		_, err = f.svc.SubmitScore(context.Background(), f.judge.ID, f.project.ID, 6, "first pass")
		require.NoError(t, err)

		updated, err := f.svc.UpdateScore(context.Background(), f.judge.ID, f.project.ID, 9, "revised")
		require.NoError(t, err)
		assert.Equal(t, 9, updated.Score)

		stored, err := f.svc.GetScore(context.Background(), f.judge.ID, f.project.ID)
		require.NoError(t, err)
		assert.Equal(t, "revised", stored.Comments)
	})

	t.Run("updating a missing score fails", func(t *testing.T) {
		f := newJudgingFixture(t)

		_, err := f.svc.UpdateScore(context.Background(), f.judge.ID, f.project.ID, 5, "")
		assert.ErrorIs(t, err, ErrScoreNotFound)
	})
}
