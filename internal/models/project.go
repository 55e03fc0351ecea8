package models

import "time"

type Project struct {
	ID           uint64     `gorm:"primarykey" json:"id"`
	Name         string     `gorm:"type:varchar(255);not null;index" json:"name"`
	Description  string     `gorm:"type:varchar(1024)" json:"description"`
	Status       string     `gorm:"type:varchar(50)" json:"status"`
	Tags         string     `gorm:"type:varchar(512)" json:"tags"`
	TechStack    string     `gorm:"type:varchar(512)" json:"techStack"`
	Informacion  string     `gorm:"type:text" json:"informacion"`
	CreationDate *time.Time `json:"creationDate"`

	// Relations
	Environments []Environment `gorm:"foreignKey:ProjectID" json:"environments,omitempty"`
}
