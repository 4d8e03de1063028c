package models

import (
	"time"

	"gorm.io/gorm"
)

// DefaultUserID tags every call log until multi-user support lands.
const DefaultUserID = "default_user"

// CallLog records the outcome of one placed call. Rows are immutable once
// created; there is no update path.
type CallLog struct {
	ID     uint   `json:"id" gorm:"primaryKey"`
	UserID string `json:"user_id" gorm:"size:100;not null;default:'default_user';index"`

	RepresentativeName string `json:"representative_name" gorm:"size:200;not null"`
	PhoneNumber        string `json:"phone_number" gorm:"size:50;not null"`
	PhoneType          string `json:"phone_type" gorm:"size:50;not null"`

	CallDatetime time.Time `json:"call_datetime" gorm:"not null;index"`
	CallOutcome  string    `json:"call_outcome" gorm:"size:50;not null"` // person, voicemail, failed
	CallNotes    string    `json:"call_notes" gorm:"type:text"`

	ScriptID    *uint  `json:"script_id,omitempty"`
	ScriptTitle string `json:"script_title,omitempty" gorm:"size:200"`

	SessionID  string    `json:"session_id" gorm:"size:100;index"` // groups calls from one workflow run
	IsTestData bool      `json:"is_test_data" gorm:"index"`
	CreatedAt  time.Time `json:"created_at" gorm:"autoCreateTime"`
}

func (CallLog) TableName() string {
	return "call_logs"
}

// CallLogFilters narrows queries and stats.
type CallLogFilters struct {
	UserID      string
	StartDate   *time.Time
	EndDate     *time.Time
	Outcome     string
	SessionID   string
	IncludeTest bool
}

func (f CallLogFilters) apply(db *gorm.DB) *gorm.DB {
	userID := f.UserID
	if userID == "" {
		userID = DefaultUserID
	}
	query := db.Model(&CallLog{}).Where("user_id = ?", userID)
	if f.StartDate != nil {
		query = query.Where("call_datetime >= ?", *f.StartDate)
	}
	if f.EndDate != nil {
		query = query.Where("call_datetime <= ?", *f.EndDate)
	}
	if f.Outcome != "" {
		query = query.Where("call_outcome = ?", f.Outcome)
	}
	if f.SessionID != "" {
		query = query.Where("session_id = ?", f.SessionID)
	}
	if !f.IncludeTest {
		query = query.Where("is_test_data = ?", false)
	}
	return query
}

// QueryCallLogs returns matching logs, most recent call first.
func QueryCallLogs(db *gorm.DB, filters CallLogFilters) ([]CallLog, error) {
	var logs []CallLog
	err := filters.apply(db).Order("call_datetime DESC").Find(&logs).Error
	return logs, err
}

// CallLogStatistics aggregates outcomes for the analytics charts.
type CallLogStatistics struct {
	TotalCalls     int            `json:"total_calls"`
	CallsByOutcome map[string]int `json:"calls_by_outcome"`
	CallsByDate    map[string]int `json:"calls_by_date"`
	CallsByRep     map[string]int `json:"calls_by_rep"`
	CallsByScript  map[string]int `json:"calls_by_script"`
}

// CallLogStats buckets matching logs by outcome, calendar date, representative
// and script title. Logs without a script title are excluded from the script
// bucket only.
func CallLogStats(db *gorm.DB, filters CallLogFilters) (*CallLogStatistics, error) {
	var logs []CallLog
	if err := filters.apply(db).Find(&logs).Error; err != nil {
		return nil, err
	}

	stats := &CallLogStatistics{
		TotalCalls:     len(logs),
		CallsByOutcome: make(map[string]int),
		CallsByDate:    make(map[string]int),
		CallsByRep:     make(map[string]int),
		CallsByScript:  make(map[string]int),
	}
	for _, log := range logs {
		stats.CallsByOutcome[log.CallOutcome]++
		stats.CallsByDate[log.CallDatetime.Format("2006-01-02")]++
		stats.CallsByRep[log.RepresentativeName]++
		if log.ScriptTitle != "" {
			stats.CallsByScript[log.ScriptTitle]++
		}
	}
	return stats, nil
}
