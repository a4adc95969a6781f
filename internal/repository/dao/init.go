package dao

import "gorm.io/gorm"

func InitTables(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&Hackathon{},
		&Topic{},
		&Team{},
		&TeamMember{},
		&TeamInvitation{},
		&Enrollment{},
		&Project{},
		&JudgeAssignment{},
		&ProjectScore{},
		&Prize{},
		&Winner{},
	)
}
