package database

import "gorm.io/gorm"

// Default orders of the list views. Search ranking is stable, so these also
// break ties between equally relevant records.

func EmployeeOrder(db *gorm.DB) *gorm.DB {
	return db.Order("employees.id")
}

func InvitationOrder(db *gorm.DB) *gorm.DB {
	return db.Order("invitations.created_at DESC").Order("invitations.id DESC")
}

func TeamOrder(db *gorm.DB) *gorm.DB {
	return db.Order("teams.name").Order("teams.id")
}

func ProjectOrder(db *gorm.DB) *gorm.DB {
	return db.Order("projects.created_at DESC").Order("projects.name").Order("projects.id")
}

func TaskOrder(db *gorm.DB) *gorm.DB {
	return db.Order("tasks.is_completed").
		Order("tasks.priority").
		Order("tasks.deadline DESC").
		Order("tasks.name").
		Order("tasks.id")
}
