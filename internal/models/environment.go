package models

// Environment is a deployment target (dev, test, prod...) of a project on a server.
type Environment struct {
	ID                 uint64  `gorm:"primarykey" json:"id"`
	Type               string  `gorm:"type:varchar(50);index" json:"type"`
	DeployInstructions string  `gorm:"type:text" json:"deployInstructions"`
	Commands           string  `gorm:"type:text" json:"commands"`
	ProjectID          *uint64 `gorm:"index" json:"projectId"`
	ServerID           *uint64 `gorm:"index" json:"serverId"`

	// Relations
	Project *Project `gorm:"foreignKey:ProjectID" json:"-"`
	Server  *Server  `gorm:"foreignKey:ServerID" json:"server,omitempty"`
}
