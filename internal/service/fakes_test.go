package service

import (
	"context"
	"fmt"
	"time"

	"github.com/hackarch/hackarch-api/internal/domain"
	"github.com/hackarch/hackarch-api/internal/repository"
)

// In-memory fakes backing the service tests. They enforce the same
// uniqueness rules as the real storage layer so conflict paths behave
// identically.

type fakeUserRepo struct {
	users  map[uint]domain.User
	nextID uint
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		users:  make(map[uint]domain.User),
		nextID: 1,
	}
}

func (f *fakeUserRepo) Create(_ context.Context, user domain.User) (domain.User, error) {
	for _, u := range f.users {
		if u.Email == user.Email {
			return domain.User{}, repository.ErrUserEmailExists
		}
	}

	user.ID = f.nextID
	f.nextID++
	f.users[user.ID] = user

	return user, nil
}

func (f *fakeUserRepo) Update(_ context.Context, user domain.User) (domain.User, error) {
	if _, ok := f.users[user.ID]; !ok {
		return domain.User{}, repository.ErrUserNotFound
	}
	f.users[user.ID] = user

	return user, nil
}

func (f *fakeUserRepo) UpdateProfile(_ context.Context, user domain.User) (domain.User, error) {
	existing, ok := f.users[user.ID]
	if !ok {
		return domain.User{}, repository.ErrUserNotFound
	}

	existing.FirstName = user.FirstName
	existing.LastName = user.LastName
	existing.CollegeName = user.CollegeName
	existing.Gender = user.Gender
	f.users[user.ID] = existing

	return existing, nil
}

func (f *fakeUserRepo) UpdatePassword(_ context.Context, id uint, passwordHash string) error {
	user, ok := f.users[id]
	if !ok {
		return repository.ErrUserNotFound
	}
	user.PasswordHash = passwordHash
	f.users[id] = user

	return nil
}

func (f *fakeUserRepo) FindByID(_ context.Context, id uint) (domain.User, error) {
	user, ok := f.users[id]
	if !ok {
		return domain.User{}, repository.ErrUserNotFound
	}

	return user, nil
}

func (f *fakeUserRepo) FindByEmail(_ context.Context, email string) (domain.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}

	return domain.User{}, repository.ErrUserNotFound
}

func (f *fakeUserRepo) FindByIDs(_ context.Context, ids []uint) ([]domain.User, error) {
	var result []domain.User
	for _, id := range ids {
		if u, ok := f.users[id]; ok {
			result = append(result, u)
		}
	}

	return result, nil
}

func (f *fakeUserRepo) FindByType(_ context.Context, userType string) ([]domain.User, error) {
	var result []domain.User
	for _, u := range f.users {
		if u.UserType == userType {
			result = append(result, u)
		}
	}

	return result, nil
}

type fakeHackathonRepo struct {
	hackathons map[uint]domain.Hackathon
	topics     map[uint]domain.Topic
	prizes     map[uint]domain.Prize
	winners    map[uint]domain.Winner
	nextID     uint
}

func newFakeHackathonRepo() *fakeHackathonRepo {
	return &fakeHackathonRepo{
		hackathons: make(map[uint]domain.Hackathon),
		topics:     make(map[uint]domain.Topic),
		prizes:     make(map[uint]domain.Prize),
		winners:    make(map[uint]domain.Winner),
		nextID:     1,
	}
}

func (f *fakeHackathonRepo) id() uint {
	id := f.nextID
	f.nextID++

	return id
}

func (f *fakeHackathonRepo) Create(_ context.Context, hackathon domain.Hackathon) (domain.Hackathon, error) {
	hackathon.ID = f.id()
	f.hackathons[hackathon.ID] = hackathon

	return hackathon, nil
}

func (f *fakeHackathonRepo) Update(_ context.Context, hackathon domain.Hackathon) (domain.Hackathon, error) {
	if _, ok := f.hackathons[hackathon.ID]; !ok {
		return domain.Hackathon{}, repository.ErrHackathonNotFound
	}
	f.hackathons[hackathon.ID] = hackathon

	return hackathon, nil
}

func (f *fakeHackathonRepo) FindByID(_ context.Context, id uint) (domain.Hackathon, error) {
	hackathon, ok := f.hackathons[id]
	if !ok {
		return domain.Hackathon{}, repository.ErrHackathonNotFound
	}

	return hackathon, nil
}

func (f *fakeHackathonRepo) FindOpenForRegistration(_ context.Context, now time.Time) ([]domain.Hackathon, error) {
	var result []domain.Hackathon
	for _, h := range f.hackathons {
		if h.RegistrationOpen(now) {
			result = append(result, h)
		}
	}

	return result, nil
}

func (f *fakeHackathonRepo) FindByOrganizerID(_ context.Context, organizerID uint) ([]domain.Hackathon, error) {
	var result []domain.Hackathon
	for _, h := range f.hackathons {
		if h.OrganizerID == organizerID {
			result = append(result, h)
		}
	}

	return result, nil
}

func (f *fakeHackathonRepo) AddTopics(_ context.Context, topics []domain.Topic) ([]domain.Topic, error) {
	created := make([]domain.Topic, len(topics))
	for i, t := range topics {
		t.ID = f.id()
		f.topics[t.ID] = t
		created[i] = t
	}

	return created, nil
}

func (f *fakeHackathonRepo) FindTopics(_ context.Context, hackathonID uint) ([]domain.Topic, error) {
	var result []domain.Topic
	for _, t := range f.topics {
		if t.HackathonID == hackathonID {
			result = append(result, t)
		}
	}

	return result, nil
}

func (f *fakeHackathonRepo) FindTopicByID(_ context.Context, id uint) (domain.Topic, error) {
	topic, ok := f.topics[id]
	if !ok {
		return domain.Topic{}, repository.ErrTopicNotFound
	}

	return topic, nil
}

func (f *fakeHackathonRepo) AddPrize(_ context.Context, prize domain.Prize) (domain.Prize, error) {
	prize.ID = f.id()
	f.prizes[prize.ID] = prize

	return prize, nil
}

func (f *fakeHackathonRepo) FindPrizeByID(_ context.Context, id uint) (domain.Prize, error) {
	prize, ok := f.prizes[id]
	if !ok {
		return domain.Prize{}, repository.ErrPrizeNotFound
	}

	return prize, nil
}

func (f *fakeHackathonRepo) FindPrizes(_ context.Context, hackathonID uint) ([]domain.Prize, error) {
	var result []domain.Prize
	for _, p := range f.prizes {
		if p.HackathonID == hackathonID {
			result = append(result, p)
		}
	}

	return result, nil
}

func (f *fakeHackathonRepo) DeclareWinner(_ context.Context, winner domain.Winner) (domain.Winner, error) {
	for _, w := range f.winners {
		if w.PrizeID == winner.PrizeID {
			return domain.Winner{}, repository.ErrPrizeAlreadyAwarded
		}
	}

	winner.ID = f.id()
	f.winners[winner.ID] = winner

	return winner, nil
}

func (f *fakeHackathonRepo) Stats(_ context.Context, _ uint) (domain.HackathonStats, error) {
	return domain.HackathonStats{}, nil
}

type fakeTeamRepo struct {
	teams       map[uint]domain.Team
	members     map[uint][]domain.TeamMember
	invitations map[string]domain.TeamInvitation
	enrollments map[string]bool
	projects    map[uint]domain.Project
	users       *fakeUserRepo
	nextID      uint
}

func newFakeTeamRepo(users *fakeUserRepo) *fakeTeamRepo {
	return &fakeTeamRepo{
		teams:       make(map[uint]domain.Team),
		members:     make(map[uint][]domain.TeamMember),
		invitations: make(map[string]domain.TeamInvitation),
		enrollments: make(map[string]bool),
		projects:    make(map[uint]domain.Project),
		users:       users,
		nextID:      1,
	}
}

func enrollmentKey(userID, hackathonID uint) string {
	return fmt.Sprintf("%d:%d", userID, hackathonID)
}

func (f *fakeTeamRepo) CreateWithEnrollment(_ context.Context, team domain.Team, now time.Time) (domain.Team, error) {
	key := enrollmentKey(team.TeamLeaderID, team.HackathonID)
	if f.enrollments[key] {
		return domain.Team{}, repository.ErrAlreadyEnrolled
	}

	team.ID = f.nextID
	f.nextID++
	f.teams[team.ID] = team
	f.enrollments[key] = true
	f.members[team.ID] = []domain.TeamMember{{
		TeamID:   team.ID,
		UserID:   team.TeamLeaderID,
		Verified: true,
		JoinedAt: now,
	}}

	return team, nil
}

func (f *fakeTeamRepo) FindByID(_ context.Context, id uint) (domain.Team, error) {
	team, ok := f.teams[id]
	if !ok {
		return domain.Team{}, repository.ErrTeamNotFound
	}

	return team, nil
}

func (f *fakeTeamRepo) FindByHackathonID(_ context.Context, hackathonID uint) ([]domain.Team, error) {
	var result []domain.Team
	for _, t := range f.teams {
		if t.HackathonID == hackathonID {
			result = append(result, t)
		}
	}

	return result, nil
}

func (f *fakeTeamRepo) FindByLeaderID(_ context.Context, leaderID uint) ([]domain.Team, error) {
	var result []domain.Team
	for _, t := range f.teams {
		if t.TeamLeaderID == leaderID {
			result = append(result, t)
		}
	}

	return result, nil
}

func (f *fakeTeamRepo) CountMembers(_ context.Context, teamID uint) (int, error) {
	return len(f.members[teamID]), nil
}

func (f *fakeTeamRepo) FindMembers(_ context.Context, teamID uint) ([]domain.TeamMember, error) {
	members := make([]domain.TeamMember, len(f.members[teamID]))
	copy(members, f.members[teamID])
	for i, m := range members {
		if f.users != nil {
			if user, ok := f.users.users[m.UserID]; ok {
				members[i].User = user
			}
		}
	}

	return members, nil
}

func (f *fakeTeamRepo) FindMember(_ context.Context, teamID, userID uint) (domain.TeamMember, error) {
	for _, m := range f.members[teamID] {
		if m.UserID == userID {
			if f.users != nil {
				if user, ok := f.users.users[userID]; ok {
					m.User = user
				}
			}

			return m, nil
		}
	}

	return domain.TeamMember{}, repository.ErrMemberNotFound
}

func (f *fakeTeamRepo) AddMemberWithInvitation(_ context.Context, teamID, userID uint, invitation domain.TeamInvitation, now time.Time) (domain.TeamInvitation, error) {
	f.members[teamID] = append(f.members[teamID], domain.TeamMember{
		TeamID:   teamID,
		UserID:   userID,
		Verified: false,
		JoinedAt: now,
	})
	invitation.ID = f.nextID
	f.nextID++
	f.invitations[invitation.InvitationToken] = invitation

	return invitation, nil
}

func (f *fakeTeamRepo) CreateInvitation(_ context.Context, invitation domain.TeamInvitation) (domain.TeamInvitation, error) {
	invitation.ID = f.nextID
	f.nextID++
	f.invitations[invitation.InvitationToken] = invitation

	return invitation, nil
}

func (f *fakeTeamRepo) RedeemInvitation(_ context.Context, token string, now time.Time) (domain.TeamInvitation, error) {
	invitation, ok := f.invitations[token]
	if !ok || invitation.Status != domain.InvitationPending || invitation.Expired(now) {
		return domain.TeamInvitation{}, repository.ErrInvitationInvalidOrExpired
	}

	invitation.Status = domain.InvitationAccepted
	f.invitations[token] = invitation

	members := f.members[invitation.TeamID]
	for i, m := range members {
		if m.UserID == invitation.InvitedUserID {
			members[i].Verified = true
		}
	}
	f.members[invitation.TeamID] = members

	return invitation, nil
}

func (f *fakeTeamRepo) IsEnrolled(_ context.Context, userID, hackathonID uint) (bool, error) {
	return f.enrollments[enrollmentKey(userID, hackathonID)], nil
}

func (f *fakeTeamRepo) CreateProject(_ context.Context, project domain.Project) (domain.Project, error) {
	for _, p := range f.projects {
		if p.TeamID == project.TeamID {
			return domain.Project{}, repository.ErrProjectAlreadySubmitted
		}
	}

	project.ID = f.nextID
	f.nextID++
	f.projects[project.ID] = project

	team := f.teams[project.TeamID]
	team.ProjectStatus = domain.ProjectSubmitted
	f.teams[project.TeamID] = team

	return project, nil
}

func (f *fakeTeamRepo) FindProjectByTeamID(_ context.Context, teamID uint) (domain.Project, error) {
	for _, p := range f.projects {
		if p.TeamID == teamID {
			return p, nil
		}
	}

	return domain.Project{}, repository.ErrProjectNotFound
}

func (f *fakeTeamRepo) FindProjectByID(_ context.Context, id uint) (domain.Project, error) {
	project, ok := f.projects[id]
	if !ok {
		return domain.Project{}, repository.ErrProjectNotFound
	}

	return project, nil
}

type fakeJudgingRepo struct {
	assignments map[uint]domain.JudgeAssignment
	scores      map[string]domain.ProjectScore
	nextID      uint
}

func newFakeJudgingRepo() *fakeJudgingRepo {
	return &fakeJudgingRepo{
		assignments: make(map[uint]domain.JudgeAssignment),
		scores:      make(map[string]domain.ProjectScore),
		nextID:      1,
	}
}

func scoreKey(projectID, judgeID uint) string {
	return fmt.Sprintf("%d:%d", projectID, judgeID)
}

func (f *fakeJudgingRepo) CreateAssignment(_ context.Context, assignment domain.JudgeAssignment) (domain.JudgeAssignment, error) {
	for _, a := range f.assignments {
		if a.JudgeID == assignment.JudgeID && a.TeamID == assignment.TeamID {
			return domain.JudgeAssignment{}, repository.ErrJudgeAlreadyAssigned
		}
	}

	assignment.ID = f.nextID
	f.nextID++
	f.assignments[assignment.ID] = assignment

	return assignment, nil
}

func (f *fakeJudgingRepo) FindAssignmentsByJudgeID(_ context.Context, judgeID uint) ([]domain.JudgeAssignment, error) {
	var result []domain.JudgeAssignment
	for _, a := range f.assignments {
		if a.JudgeID == judgeID {
			result = append(result, a)
		}
	}

	return result, nil
}

func (f *fakeJudgingRepo) HasAssignment(_ context.Context, judgeID, teamID uint) (bool, error) {
	for _, a := range f.assignments {
		if a.JudgeID == judgeID && a.TeamID == teamID {
			return true, nil
		}
	}

	return false, nil
}

func (f *fakeJudgingRepo) UpdateAssignmentStatus(_ context.Context, id, judgeID uint, status string) (domain.JudgeAssignment, error) {
	assignment, ok := f.assignments[id]
	if !ok || assignment.JudgeID != judgeID {
		return domain.JudgeAssignment{}, repository.ErrAssignmentNotFound
	}
	if assignment.Status != domain.AssignmentPending {
		return domain.JudgeAssignment{}, repository.ErrAssignmentNotPending
	}

	assignment.Status = status
	f.assignments[id] = assignment

	return assignment, nil
}

func (f *fakeJudgingRepo) CreateScore(_ context.Context, score domain.ProjectScore) (domain.ProjectScore, error) {
	key := scoreKey(score.ProjectID, score.JudgeID)
	if _, ok := f.scores[key]; ok {
		return domain.ProjectScore{}, repository.ErrProjectAlreadyScored
	}

	f.scores[key] = score

	return score, nil
}

func (f *fakeJudgingRepo) FindScore(_ context.Context, projectID, judgeID uint) (domain.ProjectScore, error) {
	score, ok := f.scores[scoreKey(projectID, judgeID)]
	if !ok {
		return domain.ProjectScore{}, repository.ErrScoreNotFound
	}

	return score, nil
}

func (f *fakeJudgingRepo) UpdateScore(_ context.Context, projectID, judgeID uint, value int, comments string) (domain.ProjectScore, error) {
	key := scoreKey(projectID, judgeID)
	score, ok := f.scores[key]
	if !ok {
		return domain.ProjectScore{}, repository.ErrScoreNotFound
	}

	score.Score = value
	score.Comments = comments
	f.scores[key] = score

	return score, nil
}

type sentCall struct {
	kind  string
	email string
	token string
}

type fakeSender struct {
	sent       []sentCall
	failEmails map[string]bool
}

func newFakeSender() *fakeSender {
	return &fakeSender{
		failEmails: make(map[string]bool),
	}
}

func (f *fakeSender) SendTeamInvitation(_ context.Context, email, _, _, token string, _ time.Time) error {
	if f.failEmails[email] {
		return fmt.Errorf("delivery to %v failed", email)
	}
	f.sent = append(f.sent, sentCall{kind: "invitation", email: email, token: token})

	return nil
}

func (f *fakeSender) SendJudgeAssignment(_ context.Context, email, _, _ string) error {
	if f.failEmails[email] {
		return fmt.Errorf("delivery to %v failed", email)
	}
	f.sent = append(f.sent, sentCall{kind: "assignment", email: email})

	return nil
}

func (f *fakeSender) SendWinnerAnnouncement(_ context.Context, email, _, _, _ string) error {
	if f.failEmails[email] {
		return fmt.Errorf("delivery to %v failed", email)
	}
	f.sent = append(f.sent, sentCall{kind: "announcement", email: email})

	return nil
}

func (f *fakeSender) SendWinnerCongratulation(_ context.Context, email, _, _, _ string) error {
	if f.failEmails[email] {
		return fmt.Errorf("delivery to %v failed", email)
	}
	f.sent = append(f.sent, sentCall{kind: "congratulation", email: email})

	return nil
}
