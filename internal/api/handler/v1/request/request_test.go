package request

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func validSignup() SignupRequest {
	return SignupRequest{
		Email:           "user@example.com",
		Password:        "Password1",
		ConfirmPassword: "Password1",
		FirstName:       "Ada",
		LastName:        "Lovelace",
		CollegeName:     "Analytical College",
		Gender:          "female",
		UserType:        "participant",
	}
}

func TestSignupRequest_Validate(t *testing.T) {
	t.Run("accepts a well formed signup", func(t *testing.T) {
		req := validSignup()
		assert.NoError(t, req.Validate())
	})

	t.Run("password policy", func(t *testing.T) {
		cases := []struct {
			name     string
			password string
			valid    bool
		}{
			{"letters and digits, 8 chars", "abcdefg1", true},
			{"too short", "abc1234", false},
			{"no digit", "abcdefgh", false},
			{"no letter", "12345678", false},
			{"symbols allowed alongside", "abcd123!", true},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				req := validSignup()
				req.Password = tc.password
				req.ConfirmPassword = tc.password
				err := req.Validate()
				if tc.valid {
					assert.NoError(t, err)
				} else {
					assert.ErrorIs(t, err, errInvalidPassword)
				}
			})
		}
	})

	t.Run("rejects a confirm password mismatch", func(t *testing.T) {
		req := validSignup()
		req.ConfirmPassword = "Password2"
		assert.ErrorIs(t, req.Validate(), errConfirmPasswordMismatch)
	})

	t.Run("rejects a malformed email", func(t *testing.T) {
		req := validSignup()
		req.Email = "not-an-email"
		assert.Error(t, req.Validate())
	})

	t.Run("rejects an unknown user type", func(t *testing.T) {
		req := validSignup()
		req.UserType = "judge"
		assert.Error(t, req.Validate())
	})
}

func TestEnrollTeamRequest_Validate(t *testing.T) {
	valid := EnrollTeamRequest{
		HackathonID: 1,
		TeamName:    "Gophers",
		TeamSize:    3,
		TopicID:     2,
	}
	assert.NoError(t, valid.Validate())

	t.Run("requires a topic", func(t *testing.T) {
		req := valid
		req.TopicID = 0
		assert.Error(t, req.Validate())
	})

	t.Run("rejects a one letter team name", func(t *testing.T) {
		req := valid
		req.TeamName = "G"
		assert.Error(t, req.Validate())
	})

	t.Run("rejects a zero team size", func(t *testing.T) {
		req := valid
		req.TeamSize = 0
		assert.Error(t, req.Validate())
	})
}

func TestUpdateMembersRequest_Validate(t *testing.T) {
	entry := MemberEntry{
		FirstName: "Sam",
		LastName:  "Smith",
		Email:     "sam@example.com",
	}

	t.Run("accepts well formed entries", func(t *testing.T) {
		req := UpdateMembersRequest{Members: []MemberEntry{entry}}
		assert.NoError(t, req.Validate())
	})

	t.Run("requires at least one member", func(t *testing.T) {
		req := UpdateMembersRequest{}
		assert.Error(t, req.Validate())
	})

	t.Run("rejects an entry with a bad email", func(t *testing.T) {
		bad := entry
		bad.Email = "sam@"
		req := UpdateMembersRequest{Members: []MemberEntry{entry, bad}}
		assert.Error(t, req.Validate())
	})

	t.Run("rejects an entry missing names", func(t *testing.T) {
		bad := entry
		bad.FirstName = ""
		req := UpdateMembersRequest{Members: []MemberEntry{bad}}
		assert.Error(t, req.Validate())
	})
}

func TestSubmitProjectRequest_Validate(t *testing.T) {
	valid := SubmitProjectRequest{
		TeamID:      1,
		ProjectName: "HackTracker",
		GithubURL:   "https://github.com/gophers/hacktracker",
	}
	assert.NoError(t, valid.Validate())

	t.Run("requires a repository link", func(t *testing.T) {
		req := valid
		req.GithubURL = ""
		assert.Error(t, req.Validate())
	})

	t.Run("rejects a malformed demo link", func(t *testing.T) {
		req := valid
		req.DemoURL = "://broken"
		assert.Error(t, req.Validate())
	})
}

func TestCreateHackathonRequest_Validate(t *testing.T) {
	now := time.Now()
	valid := CreateHackathonRequest{
		Title:                 "Spring Hack",
		RegistrationStartDate: now,
		RegistrationEndDate:   now.Add(24 * time.Hour),
		StartDate:             now.Add(48 * time.Hour),
		EndDate:               now.Add(72 * time.Hour),
		MaxTeamSize:           4,
	}
	assert.NoError(t, valid.Validate())

	t.Run("requires every date", func(t *testing.T) {
		req := valid
		req.RegistrationEndDate = time.Time{}
		assert.Error(t, req.Validate())
	})

	t.Run("caps the team size", func(t *testing.T) {
		req := valid
		req.MaxTeamSize = 21
		assert.Error(t, req.Validate())
	})
}

func TestAddTopicsRequest_Validate(t *testing.T) {
	assert.NoError(t, (&AddTopicsRequest{Topics: []string{"AI", "FinTech"}}).Validate())
	assert.Error(t, (&AddTopicsRequest{}).Validate())
	assert.Error(t, (&AddTopicsRequest{Topics: []string{"A"}}).Validate())
}

func TestSubmitScoreRequest_Validate(t *testing.T) {
	assert.NoError(t, (&SubmitScoreRequest{Score: 1}).Validate())
	assert.NoError(t, (&SubmitScoreRequest{Score: 10, Comments: "great"}).Validate())
	assert.Error(t, (&SubmitScoreRequest{Score: 0}).Validate())
	assert.Error(t, (&SubmitScoreRequest{Score: 11}).Validate())
}

func TestUpdateAssignmentStatusRequest_Validate(t *testing.T) {
	assert.NoError(t, (&UpdateAssignmentStatusRequest{Status: "accepted"}).Validate())
	assert.NoError(t, (&UpdateAssignmentStatusRequest{Status: "rejected"}).Validate())
	assert.Error(t, (&UpdateAssignmentStatusRequest{Status: "pending"}).Validate())
	assert.Error(t, (&UpdateAssignmentStatusRequest{}).Validate())
}
