package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	ErrTeamNotFound               = errors.New("team not found")
	ErrMemberNotFound             = errors.New("team member not found")
	ErrAlreadyEnrolled            = errors.New("user already enrolled in hackathon")
	ErrInvitationInvalidOrExpired = errors.New("invalid or expired invitation")
	ErrProjectAlreadySubmitted    = errors.New("project already submitted by this team")
	ErrProjectNotFound            = errors.New("project not found")
)

type Team struct {
	ID          uint      `gorm:"primaryKey"`
	HackathonID uint      `gorm:"not null;index"`
	Hackathon   Hackathon `gorm:"foreignKey:HackathonID"`

	TeamName    string `gorm:"not null"`
	Description string

	TeamLeaderID uint `gorm:"not null;index"`
	TeamLeader   User `gorm:"foreignKey:TeamLeaderID"`

	TeamSize int  `gorm:"not null"`
	TopicID  uint `gorm:"index"`

	ProjectStatus string `gorm:"not null;default:'Not submitted'"` // "Submitted" or "Not submitted"

	CreatedAt time.Time
	UpdatedAt time.Time
}

type TeamMember struct {
	ID     uint `gorm:"primaryKey"`
	TeamID uint `gorm:"not null;uniqueIndex:idx_team_members_team_user"`
	Team   Team `gorm:"foreignKey:TeamID"`
	UserID uint `gorm:"not null;uniqueIndex:idx_team_members_team_user"`
	User   User `gorm:"foreignKey:UserID"`

	Verified bool      `gorm:"not null;default:false"`
	JoinedAt time.Time `gorm:"not null"`
}

// TeamInvitation rows are append-only: a resend inserts a fresh token
// instead of mutating the previous one.
type TeamInvitation struct {
	ID            uint `gorm:"primaryKey"`
	TeamID        uint `gorm:"not null;index"`
	Team          Team `gorm:"foreignKey:TeamID"`
	InvitedUserID uint `gorm:"not null;index"`
	InvitedUser   User `gorm:"foreignKey:InvitedUserID"`

	InvitationToken  string    `gorm:"not null;uniqueIndex:idx_team_invitations_token"`
	ExpiresAt        time.Time `gorm:"not null"`
	InvitationStatus string    `gorm:"not null;default:'pending'"` // "pending" or "accepted"

	CreatedAt time.Time
}

type Enrollment struct {
	ID          uint      `gorm:"primaryKey"`
	UserID      uint      `gorm:"not null;uniqueIndex:idx_enrollments_user_hackathon"`
	User        User      `gorm:"foreignKey:UserID"`
	HackathonID uint      `gorm:"not null;uniqueIndex:idx_enrollments_user_hackathon"`
	Hackathon   Hackathon `gorm:"foreignKey:HackathonID"`

	CreatedAt time.Time
}

type Project struct {
	ID          uint      `gorm:"primaryKey"`
	TeamID      uint      `gorm:"not null;uniqueIndex:idx_projects_team"`
	Team        Team      `gorm:"foreignKey:TeamID"`
	HackathonID uint      `gorm:"not null;index"`
	Hackathon   Hackathon `gorm:"foreignKey:HackathonID"`

	ProjectName string `gorm:"not null"`
	Description string
	GithubURL   string
	DemoURL     string

	SubmittedAt time.Time `gorm:"not null"`
}

type TeamDAO struct {
	db *gorm.DB
}

func NewTeamDAO(db *gorm.DB) *TeamDAO {
	return &TeamDAO{
		db: db,
	}
}

// InsertWithEnrollment creates the team, the leader's enrollment and the
// leader's verified member row in a single transaction, so a crash in the
// middle can never leave a half-created team behind.
func (d *TeamDAO) InsertWithEnrollment(ctx context.Context, team Team, leaderID uint, now time.Time) (Team, error) {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&team).Error; err != nil {
			return err
		}

		enrollment := Enrollment{
			UserID:      leaderID,
			HackathonID: team.HackathonID,
		}
		if err := tx.Create(&enrollment).Error; err != nil {
			if isUniqueViolation(err, "idx_enrollments_user_hackathon") {
				return ErrAlreadyEnrolled
			}

			return err
		}

		leader := TeamMember{
			TeamID:   team.ID,
			UserID:   leaderID,
			Verified: true,
			JoinedAt: now,
		}

		return tx.Create(&leader).Error
	})
	if err != nil {
		return Team{}, err
	}

	return team, nil
}

func (d *TeamDAO) FindByID(ctx context.Context, id uint) (Team, error) {
	var team Team

	result := d.db.WithContext(ctx).First(&team, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Team{}, ErrTeamNotFound
		}

		return Team{}, result.Error
	}

	return team, nil
}

func (d *TeamDAO) FindByHackathonID(ctx context.Context, hackathonID uint) ([]Team, error) {
	var teams []Team

	result := d.db.WithContext(ctx).Where("hackathon_id = ?", hackathonID).Find(&teams)
	if result.Error != nil {
		return nil, result.Error
	}

	return teams, nil
}

func (d *TeamDAO) FindByHackathonAndLeader(ctx context.Context, hackathonID, leaderID uint) (Team, error) {
	var team Team

	result := d.db.WithContext(ctx).
		Where("hackathon_id = ? AND team_leader_id = ?", hackathonID, leaderID).
		First(&team)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Team{}, ErrTeamNotFound
		}

		return Team{}, result.Error
	}

	return team, nil
}

func (d *TeamDAO) FindByLeaderID(ctx context.Context, leaderID uint) ([]Team, error) {
	var teams []Team

	result := d.db.WithContext(ctx).Where("team_leader_id = ?", leaderID).Find(&teams)
	if result.Error != nil {
		return nil, result.Error
	}

	return teams, nil
}

func (d *TeamDAO) CountMembers(ctx context.Context, teamID uint) (int64, error) {
	var count int64

	result := d.db.WithContext(ctx).Model(&TeamMember{}).Where("team_id = ?", teamID).Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}

	return count, nil
}

func (d *TeamDAO) FindMembers(ctx context.Context, teamID uint) ([]TeamMember, error) {
	var members []TeamMember

	result := d.db.WithContext(ctx).
		Preload("User").
		Where("team_id = ?", teamID).
		Order("joined_at ASC").
		Find(&members)
	if result.Error != nil {
		return nil, result.Error
	}

	return members, nil
}

func (d *TeamDAO) FindMember(ctx context.Context, teamID, userID uint) (TeamMember, error) {
	var member TeamMember

	result := d.db.WithContext(ctx).
		Where("team_id = ? AND user_id = ?", teamID, userID).
		First(&member)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return TeamMember{}, ErrMemberNotFound
		}

		return TeamMember{}, result.Error
	}

	return member, nil
}

// InsertMemberWithInvitation creates the unverified member row and its
// first invitation together. Failures for one member never touch rows
// already written for earlier members of the same roster update.
func (d *TeamDAO) InsertMemberWithInvitation(ctx context.Context, member TeamMember, invitation TeamInvitation) (TeamInvitation, error) {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&member).Error; err != nil {
			return err
		}

		invitation.TeamID = member.TeamID
		invitation.InvitedUserID = member.UserID

		return tx.Create(&invitation).Error
	})
	if err != nil {
		return TeamInvitation{}, err
	}

	return invitation, nil
}

func (d *TeamDAO) InsertInvitation(ctx context.Context, invitation TeamInvitation) (TeamInvitation, error) {
	result := d.db.WithContext(ctx).Create(&invitation)
	if result.Error != nil {
		return TeamInvitation{}, result.Error
	}

	return invitation, nil
}

// RedeemInvitation atomically accepts a pending, unexpired token and
// verifies the matching member. The conditional UPDATE is the whole
// race-safety story: of N concurrent redemptions exactly one sees
// RowsAffected == 1, the rest fail with ErrInvitationInvalidOrExpired.
func (d *TeamDAO) RedeemInvitation(ctx context.Context, token string, now time.Time) (TeamInvitation, error) {
	var invitation TeamInvitation

	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&TeamInvitation{}).
			Where("invitation_token = ? AND invitation_status = ? AND expires_at > ?", token, "pending", now).
			Update("invitation_status", "accepted")
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrInvitationInvalidOrExpired
		}

		if err := tx.Where("invitation_token = ?", token).First(&invitation).Error; err != nil {
			return err
		}

		return tx.Model(&TeamMember{}).
			Where("team_id = ? AND user_id = ?", invitation.TeamID, invitation.InvitedUserID).
			Update("verified", true).Error
	})
	if err != nil {
		return TeamInvitation{}, err
	}

	return invitation, nil
}

func (d *TeamDAO) FindEnrollment(ctx context.Context, userID, hackathonID uint) (Enrollment, error) {
	var enrollment Enrollment

	result := d.db.WithContext(ctx).
		Where("user_id = ? AND hackathon_id = ?", userID, hackathonID).
		First(&enrollment)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Enrollment{}, gorm.ErrRecordNotFound
		}

		return Enrollment{}, result.Error
	}

	return enrollment, nil
}

// InsertProject creates the project and flips the team's project_status
// in one transaction. The unique index on team_id is what enforces the
// one-shot submission.
func (d *TeamDAO) InsertProject(ctx context.Context, project Project) (Project, error) {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&project).Error; err != nil {
			if isUniqueViolation(err, "idx_projects_team") {
				return ErrProjectAlreadySubmitted
			}

			return err
		}

		return tx.Model(&Team{}).
			Where("id = ?", project.TeamID).
			Update("project_status", "Submitted").Error
	})
	if err != nil {
		return Project{}, err
	}

	return project, nil
}

func (d *TeamDAO) FindProjectByTeamID(ctx context.Context, teamID uint) (Project, error) {
	var project Project

	result := d.db.WithContext(ctx).Where("team_id = ?", teamID).First(&project)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Project{}, ErrProjectNotFound
		}

		return Project{}, result.Error
	}

	return project, nil
}

func (d *TeamDAO) FindProjectByID(ctx context.Context, id uint) (Project, error) {
	var project Project

	result := d.db.WithContext(ctx).First(&project, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Project{}, ErrProjectNotFound
		}

		return Project{}, result.Error
	}

	return project, nil
}
