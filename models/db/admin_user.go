package dbmodels

import (
	"time"
)

type AdminUser struct {
	BaseModel
	Login     string `gorm:"type:varchar(50);uniqueIndex"`
	Password  string `gorm:"type:varchar(128)"`
	FullName  string `gorm:"type:varchar(100)"`
	LastLogin time.Time
}
