package models

import (
	"time"

	"gorm.io/datatypes"
)

type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "pendiente"
	TaskStatusInProgress TaskStatus = "en_progreso"
	TaskStatusCompleted  TaskStatus = "completada"
)

// Valid reports whether s is one of the known statuses.
func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusPending, TaskStatusInProgress, TaskStatusCompleted:
		return true
	}
	return false
}

type TaskPriority string

const (
	TaskPriorityHigh   TaskPriority = "alta"
	TaskPriorityMedium TaskPriority = "media"
	TaskPriorityLow    TaskPriority = "baja"
)

func (p TaskPriority) Valid() bool {
	switch p {
	case TaskPriorityHigh, TaskPriorityMedium, TaskPriorityLow:
		return true
	}
	return false
}

type Task struct {
	ID            uint64          `gorm:"primarykey" json:"id"`
	Title         string          `gorm:"type:varchar(255);not null" json:"title"`
	Description   string          `gorm:"type:text;not null" json:"description"`
	Priority      TaskPriority    `gorm:"type:varchar(20);not null;index" json:"priority"`
	Status        TaskStatus      `gorm:"type:varchar(20);not null;index" json:"status"`
	StartDate     *datatypes.Date `json:"startDate"`
	DueDate       *datatypes.Date `json:"dueDate"`
	CompletedDate *datatypes.Date `json:"completedDate"`
	AssignedTo    string          `gorm:"type:varchar(255)" json:"assignedTo"`
	ProjectID     *uint64         `gorm:"index" json:"projectId"`
	CreatedAt     time.Time       `gorm:"<-:create" json:"createdAt"`
	UpdatedAt     time.Time       `gorm:"index" json:"updatedAt"`

	// Relations
	Project *Project `gorm:"foreignKey:ProjectID" json:"-"`
}
