package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hackarch/hackarch-api/internal/domain"
)

func validDates(now time.Time) domain.Hackathon {
	return domain.Hackathon{
		Title:                 "Spring Hack",
		RegistrationStartDate: now,
		RegistrationEndDate:   now.Add(24 * time.Hour),
		StartDate:             now.Add(48 * time.Hour),
		EndDate:               now.Add(72 * time.Hour),
		MaxTeamSize:           4,
	}
}

func TestHackathonService_CreateHackathon(t *testing.T) {
	t.Run("accepts a valid date ordering", func(t *testing.T) {
		svc := NewHackathonService(newFakeHackathonRepo(), newFakeTeamRepo(nil), newFakeUserRepo(), newFakeSender())

		h := validDates(time.Now())
		h.OrganizerID = 1

		created, err := svc.CreateHackathon(context.Background(), h)
		require.NoError(t, err)
		assert.NotZero(t, created.ID)
	})

	t.Run("rejects registration closing after the start", func(t *testing.T) {
		svc := NewHackathonService(newFakeHackathonRepo(), newFakeTeamRepo(nil), newFakeUserRepo(), newFakeSender())

		h := validDates(time.Now())
		h.RegistrationEndDate = h.StartDate.Add(time.Hour)

		_, err := svc.CreateHackathon(context.Background(), h)
		assert.ErrorIs(t, err, ErrInvalidDateOrder)
	})

	t.Run("rejects an inverted event window", func(t *testing.T) {
		svc := NewHackathonService(newFakeHackathonRepo(), newFakeTeamRepo(nil), newFakeUserRepo(), newFakeSender())

		h := validDates(time.Now())
		h.EndDate = h.StartDate.Add(-time.Hour)

		_, err := svc.CreateHackathon(context.Background(), h)
		assert.ErrorIs(t, err, ErrInvalidDateOrder)
	})
}

func TestHackathonService_UpdateHackathon(t *testing.T) {
	t.Run("only the organizer may edit", func(t *testing.T) {
		repo := newFakeHackathonRepo()
		svc := NewHackathonService(repo, newFakeTeamRepo(nil), newFakeUserRepo(), newFakeSender())

		h := validDates(time.Now())
		h.OrganizerID = 1
		created, err := svc.CreateHackathon(context.Background(), h)
		require.NoError(t, err)

		created.Title = "Renamed"
		_, err = svc.UpdateHackathon(context.Background(), 2, created)
		assert.ErrorIs(t, err, ErrNotOrganizer)

		updated, err := svc.UpdateHackathon(context.Background(), 1, created)
		require.NoError(t, err)
		assert.Equal(t, "Renamed", updated.Title)
	})
}

func TestHackathonService_DeclareWinner(t *testing.T) {
	type winnerFixture struct {
		svc       *HackathonService
		teamRepo  *fakeTeamRepo
		sender    *fakeSender
		prize     domain.Prize
		team      domain.Team
		otherTeam domain.Team
	}

	setup := func(t *testing.T) *winnerFixture {
		t.Helper()

		userRepo := newFakeUserRepo()
		teamRepo := newFakeTeamRepo(userRepo)
		hackRepo := newFakeHackathonRepo()
		sender := newFakeSender()
		svc := NewHackathonService(hackRepo, teamRepo, userRepo, sender)

		h := validDates(time.Now().Add(-time.Hour))
		h.OrganizerID = 1
		hackathon, err := svc.CreateHackathon(context.Background(), h)
		require.NoError(t, err)

		prize, err := hackRepo.AddPrize(context.Background(), domain.Prize{
			HackathonID: hackathon.ID,
			PrizeName:   "Grand Prize",
			Position:    1,
		})
		require.NoError(t, err)

		leader, err := userRepo.Create(context.Background(), domain.User{
			Email:  "winner-leader@example.com",
			Status: domain.UserRegistered,
		})
		require.NoError(t, err)

		team, err := teamRepo.CreateWithEnrollment(context.Background(), domain.Team{
			HackathonID:  hackathon.ID,
			TeamName:     "Gophers",
			TeamLeaderID: leader.ID,
			TeamSize:     1,
		}, time.Now())
		require.NoError(t, err)

		otherLeader, err := userRepo.Create(context.Background(), domain.User{
			Email:  "other-leader@example.com",
			Status: domain.UserRegistered,
		})
		require.NoError(t, err)

		otherTeam, err := teamRepo.CreateWithEnrollment(context.Background(), domain.Team{
			HackathonID:  hackathon.ID,
			TeamName:     "Rivals",
			TeamLeaderID: otherLeader.ID,
			TeamSize:     1,
		}, time.Now())
		require.NoError(t, err)

		return &winnerFixture{
			svc:       svc,
			teamRepo:  teamRepo,
			sender:    sender,
			prize:     prize,
			team:      team,
			otherTeam: otherTeam,
		}
	}

	t.Run("awards the prize, announces to every leader and congratulates the winner", func(t *testing.T) {
		f := setup(t)

		winner, warnings, err := f.svc.DeclareWinner(context.Background(), 1, f.prize.ID, f.team.ID)
		require.NoError(t, err)
		assert.Empty(t, warnings)
		assert.Equal(t, f.team.ID, winner.TeamID)

		announced := map[string]bool{}
		congratulated := map[string]bool{}
		for _, call := range f.sender.sent {
			switch call.kind {
			case "announcement":
				announced[call.email] = true
			case "congratulation":
				congratulated[call.email] = true
			}
		}

		assert.True(t, announced["winner-leader@example.com"])
		assert.True(t, announced["other-leader@example.com"])
		assert.True(t, congratulated["winner-leader@example.com"])
		assert.False(t, congratulated["other-leader@example.com"])
	})

	t.Run("a prize can only be awarded once", func(t *testing.T) {
		f := setup(t)

		_, _, err := f.svc.DeclareWinner(context.Background(), 1, f.prize.ID, f.team.ID)
		require.NoError(t, err)

		_, _, err = f.svc.DeclareWinner(context.Background(), 1, f.prize.ID, f.team.ID)
		assert.ErrorIs(t, err, ErrPrizeAlreadyAwarded)
	})

	t.Run("rejects non-organizers", func(t *testing.T) {
		f := setup(t)

		_, _, err := f.svc.DeclareWinner(context.Background(), 42, f.prize.ID, f.team.ID)
		assert.ErrorIs(t, err, ErrNotOrganizer)
	})

	t.Run("rejects a team from another hackathon", func(t *testing.T) {
		f := setup(t)

		stray, err := f.teamRepo.CreateWithEnrollment(context.Background(), domain.Team{
			HackathonID:  9999,
			TeamName:     "Strays",
			TeamLeaderID: 77,
			TeamSize:     1,
		}, time.Now())
		require.NoError(t, err)

		_, _, err = f.svc.DeclareWinner(context.Background(), 1, f.prize.ID, stray.ID)
		assert.ErrorIs(t, err, ErrTeamNotInHackathon)
	})

	t.Run("announcement failures become warnings, the award stands", func(t *testing.T) {
		f := setup(t)
		f.sender.failEmails["other-leader@example.com"] = true

		winner, warnings, err := f.svc.DeclareWinner(context.Background(), 1, f.prize.ID, f.team.ID)
		require.NoError(t, err)
		assert.NotZero(t, winner.ID)
		assert.Len(t, warnings, 1)

		congratulated := false
		for _, call := range f.sender.sent {
			if call.kind == "congratulation" && call.email == "winner-leader@example.com" {
				congratulated = true
			}
		}
		assert.True(t, congratulated)
	})
}
