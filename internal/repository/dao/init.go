package dao

import "gorm.io/gorm"

func InitTables(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&Program{},
		&ProgramAssignment{},
		&ProgramRole{},
		&ProgramRolePermission{},
		&ProgramYear{},
		&GroupingType{},
		&Grouping{},
		&ProgramYearGrouping{},
		&Party{},
		&ProgramYearParty{},
		&Position{},
		&ProgramYearPosition{},
		&Delegate{},
		&Staff{},
		&Parent{},
		&DelegateParentLink{},
		&Election{},
		&ElectionVote{},
	)
}
