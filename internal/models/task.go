package models

import (
	"time"
)

// TaskPriority sorts lexically in urgency order, so "1" is the most urgent.
type TaskPriority string

const (
	PriorityUrgent TaskPriority = "1"
	PriorityHigh   TaskPriority = "2"
	PriorityMedium TaskPriority = "3"
	PriorityLow    TaskPriority = "4"
)

var priorityLabels = map[TaskPriority]string{
	PriorityUrgent: "Urgent",
	PriorityHigh:   "High",
	PriorityMedium: "Medium",
	PriorityLow:    "Low",
}

func (p TaskPriority) Valid() bool {
	_, ok := priorityLabels[p]
	return ok
}

func (p TaskPriority) Label() string {
	return priorityLabels[p]
}

type Task struct {
	ID            uint64       `gorm:"primarykey" json:"id"`
	Name          string       `gorm:"type:varchar(255);not null" json:"name"`
	Description   string       `gorm:"type:text" json:"description"`
	ProjectID     uint64       `gorm:"not null;index" json:"project_id"`
	Deadline      time.Time    `gorm:"not null" json:"deadline"`
	IsCompleted   bool         `gorm:"not null;default:false" json:"is_completed"`
	CompletedByID *uint64      `gorm:"index" json:"completed_by_id"`
	Priority      TaskPriority `gorm:"type:varchar(100);not null" json:"priority"`
	TaskTypeID    uint64       `gorm:"not null;index" json:"task_type_id"`
	Slug          string       `gorm:"type:varchar(255);uniqueIndex;not null" json:"slug"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`

	// Relations
	Project     Project    `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE" json:"project,omitempty"`
	CompletedBy *Employee  `gorm:"foreignKey:CompletedByID;constraint:OnDelete:SET NULL" json:"completed_by,omitempty"`
	TaskType    TaskType   `gorm:"foreignKey:TaskTypeID;constraint:OnDelete:RESTRICT" json:"task_type,omitempty"`
	Assignees   []Employee `gorm:"many2many:task_assignees" json:"assignees,omitempty"`
	Tags        []TaskTag  `gorm:"many2many:task_tags" json:"tags,omitempty"`
}

type TaskType struct {
	ID   uint64 `gorm:"primarykey" json:"id"`
	Name string `gorm:"type:varchar(100);not null" json:"name"`
}

type TaskTag struct {
	ID   uint64 `gorm:"primarykey" json:"id"`
	Name string `gorm:"type:varchar(100);not null" json:"name"`
}

// All lists every model in dependency order for AutoMigrate.
func All() []any {
	return []any{
		&Position{},
		&Employee{},
		&Invitation{},
		&Team{},
		&TaskType{},
		&TaskTag{},
		&Project{},
		&Task{},
	}
}

// CatalogEntry is implemented by the name-only lookup models.
type CatalogEntry interface {
	Position | TaskType | TaskTag
	EntryID() uint64
	EntryName() string
}

func (t TaskType) EntryID() uint64   { return t.ID }
func (t TaskType) EntryName() string { return t.Name }
func (t TaskTag) EntryID() uint64    { return t.ID }
func (t TaskTag) EntryName() string  { return t.Name }
