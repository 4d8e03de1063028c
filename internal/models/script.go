package models

import (
	"time"

	"gorm.io/gorm"
)

// CallScript is reusable talking-point text. The body may contain the
// placeholder tokens @RepType, @LastName and @ZipCode, resolved at render
// time against the active call.
type CallScript struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Title     string    `json:"title" gorm:"size:200;not null"`
	Content   string    `json:"content" gorm:"type:text;not null"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

func (CallScript) TableName() string {
	return "call_scripts"
}

// ListScripts returns all scripts, newest first.
func ListScripts(db *gorm.DB) ([]CallScript, error) {
	var scripts []CallScript
	err := db.Order("created_at DESC").Find(&scripts).Error
	return scripts, err
}

// GetScript fetches one script by id.
func GetScript(db *gorm.DB, id uint) (*CallScript, error) {
	var script CallScript
	if err := db.First(&script, id).Error; err != nil {
		return nil, err
	}
	return &script, nil
}
