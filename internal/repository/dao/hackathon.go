package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	ErrHackathonNotFound   = errors.New("hackathon not found")
	ErrPrizeNotFound       = errors.New("prize not found")
	ErrPrizeAlreadyAwarded = errors.New("prize already awarded")
	ErrTopicNotFound       = errors.New("topic not found")
)

type Hackathon struct {
	ID          uint `gorm:"primaryKey"`
	OrganizerID uint `gorm:"not null;index"`
	Organizer   User `gorm:"foreignKey:OrganizerID"`

	Title       string `gorm:"not null"`
	Description string

	StartDate             time.Time `gorm:"not null"`
	EndDate               time.Time `gorm:"not null"`
	RegistrationStartDate time.Time `gorm:"not null"`
	RegistrationEndDate   time.Time `gorm:"not null"`

	MaxTeamSize int `gorm:"not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

type Topic struct {
	ID          uint      `gorm:"primaryKey"`
	HackathonID uint      `gorm:"not null;index"`
	Hackathon   Hackathon `gorm:"foreignKey:HackathonID"`
	Title       string    `gorm:"not null"`
	CreatedBy   uint
}

type Prize struct {
	ID          uint      `gorm:"primaryKey"`
	HackathonID uint      `gorm:"not null;index"`
	Hackathon   Hackathon `gorm:"foreignKey:HackathonID"`
	PrizeName   string    `gorm:"not null"`
	Description string
	Position    int
	Winner      *Winner `gorm:"foreignKey:PrizeID"`
}

// Winner carries a unique index on PrizeID: at most one winner per prize
// is a hard invariant, and concurrent declarations race on this index
// rather than on a read-then-insert.
type Winner struct {
	ID        uint      `gorm:"primaryKey"`
	PrizeID   uint      `gorm:"not null;uniqueIndex:idx_winners_prize"`
	TeamID    uint      `gorm:"not null"`
	Team      Team      `gorm:"foreignKey:TeamID"`
	AwardedAt time.Time `gorm:"not null"`
}

type HackathonDAO struct {
	db *gorm.DB
}

func NewHackathonDAO(db *gorm.DB) *HackathonDAO {
	return &HackathonDAO{
		db: db,
	}
}

func (d *HackathonDAO) Insert(ctx context.Context, hackathon Hackathon) (Hackathon, error) {
	result := d.db.WithContext(ctx).Create(&hackathon)
	if result.Error != nil {
		return Hackathon{}, result.Error
	}

	return hackathon, nil
}

func (d *HackathonDAO) Update(ctx context.Context, hackathon Hackathon) (Hackathon, error) {
	result := d.db.WithContext(ctx).Model(&Hackathon{}).
		Where("id = ? AND organizer_id = ?", hackathon.ID, hackathon.OrganizerID).
		Updates(map[string]any{
			"title":                   hackathon.Title,
			"description":             hackathon.Description,
			"start_date":              hackathon.StartDate,
			"end_date":                hackathon.EndDate,
			"registration_start_date": hackathon.RegistrationStartDate,
			"registration_end_date":   hackathon.RegistrationEndDate,
			"max_team_size":           hackathon.MaxTeamSize,
		})
	if result.Error != nil {
		return Hackathon{}, result.Error
	}
	if result.RowsAffected == 0 {
		return Hackathon{}, ErrHackathonNotFound
	}

	return d.FindByID(ctx, hackathon.ID)
}

func (d *HackathonDAO) FindByID(ctx context.Context, id uint) (Hackathon, error) {
	var hackathon Hackathon

	result := d.db.WithContext(ctx).First(&hackathon, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Hackathon{}, ErrHackathonNotFound
		}

		return Hackathon{}, result.Error
	}

	return hackathon, nil
}

// FindOpenForRegistration lists hackathons whose registration window
// contains now, soonest-opening first.
func (d *HackathonDAO) FindOpenForRegistration(ctx context.Context, now time.Time) ([]Hackathon, error) {
	var hackathons []Hackathon

	result := d.db.WithContext(ctx).
		Where("registration_start_date <= ? AND registration_end_date >= ?", now, now).
		Order("registration_start_date ASC").
		Find(&hackathons)
	if result.Error != nil {
		return nil, result.Error
	}

	return hackathons, nil
}

func (d *HackathonDAO) FindByOrganizerID(ctx context.Context, organizerID uint) ([]Hackathon, error) {
	var hackathons []Hackathon

	result := d.db.WithContext(ctx).
		Where("organizer_id = ?", organizerID).
		Order("start_date DESC").
		Find(&hackathons)
	if result.Error != nil {
		return nil, result.Error
	}

	return hackathons, nil
}

func (d *HackathonDAO) InsertTopics(ctx context.Context, topics []Topic) ([]Topic, error) {
	result := d.db.WithContext(ctx).Create(&topics)
	if result.Error != nil {
		return nil, result.Error
	}

	return topics, nil
}

func (d *HackathonDAO) FindTopics(ctx context.Context, hackathonID uint) ([]Topic, error) {
	var topics []Topic

	result := d.db.WithContext(ctx).Where("hackathon_id = ?", hackathonID).Find(&topics)
	if result.Error != nil {
		return nil, result.Error
	}

	return topics, nil
}

func (d *HackathonDAO) FindTopicByID(ctx context.Context, id uint) (Topic, error) {
	var topic Topic

	result := d.db.WithContext(ctx).First(&topic, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Topic{}, ErrTopicNotFound
		}

		return Topic{}, result.Error
	}

	return topic, nil
}

func (d *HackathonDAO) InsertPrize(ctx context.Context, prize Prize) (Prize, error) {
	result := d.db.WithContext(ctx).Create(&prize)
	if result.Error != nil {
		return Prize{}, result.Error
	}

	return prize, nil
}

func (d *HackathonDAO) FindPrizeByID(ctx context.Context, id uint) (Prize, error) {
	var prize Prize

	result := d.db.WithContext(ctx).First(&prize, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Prize{}, ErrPrizeNotFound
		}

		return Prize{}, result.Error
	}

	return prize, nil
}

func (d *HackathonDAO) FindPrizes(ctx context.Context, hackathonID uint) ([]Prize, error) {
	var prizes []Prize

	result := d.db.WithContext(ctx).
		Preload("Winner").
		Where("hackathon_id = ?", hackathonID).
		Order("position ASC").
		Find(&prizes)
	if result.Error != nil {
		return nil, result.Error
	}

	return prizes, nil
}

// InsertWinner declares a winner. The unique index on prize_id makes the
// first declaration win; any later one surfaces as ErrPrizeAlreadyAwarded.
func (d *HackathonDAO) InsertWinner(ctx context.Context, winner Winner) (Winner, error) {
	result := d.db.WithContext(ctx).Create(&winner)
	if result.Error != nil {
		if isUniqueViolation(result.Error, "idx_winners_prize") {
			return Winner{}, ErrPrizeAlreadyAwarded
		}

		return Winner{}, result.Error
	}

	return winner, nil
}

func (d *HackathonDAO) CountStats(ctx context.Context, hackathonID uint) (teams, projects, prizes, judges int64, err error) {
	db := d.db.WithContext(ctx)

	if err = db.Model(&Team{}).Where("hackathon_id = ?", hackathonID).Count(&teams).Error; err != nil {
		return
	}
	if err = db.Model(&Project{}).Where("hackathon_id = ?", hackathonID).Count(&projects).Error; err != nil {
		return
	}
	if err = db.Model(&Prize{}).Where("hackathon_id = ?", hackathonID).Count(&prizes).Error; err != nil {
		return
	}
	err = db.Model(&JudgeAssignment{}).
		Where("hackathon_id = ?", hackathonID).
		Distinct("judge_id").
		Count(&judges).Error

	return
}
