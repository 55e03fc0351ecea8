package models

type Server struct {
	ID    uint64 `gorm:"primarykey" json:"id"`
	Name  string `gorm:"type:varchar(255);not null;index" json:"name"`
	IP    string `gorm:"type:varchar(64)" json:"ip"`
	OS    string `gorm:"type:varchar(128)" json:"os"`
	Notes string `gorm:"type:text" json:"notes"`
}
