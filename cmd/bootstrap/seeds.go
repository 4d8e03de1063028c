package bootstrap

import (
	"fmt"
	"math/rand"
	"time"

	"gorm.io/gorm"

	"github.com/willtroppe/callrep/internal/models"
)

type SeedService struct {
	db *gorm.DB
}

func (s *SeedService) SeedAll() error {
	if err := s.seedScripts(); err != nil {
		return err
	}

	if err := s.seedCallLogs(); err != nil {
		return err
	}

	return nil
}

// seedScripts inserts the starter scripts once, on an empty table.
func (s *SeedService) seedScripts() error {
	var count int64
	if err := s.db.Model(&models.CallScript{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	samples := []models.CallScript{
		{
			Title:   "Healthcare Reform",
			Content: "Hi, I'm calling about healthcare reform. I believe everyone deserves access to affordable healthcare and I urge you to support policies that expand coverage and reduce costs.",
		},
		{
			Title:   "Climate Action",
			Content: "Hello, I'm calling as a concerned constituent about climate change. I believe we need immediate action to reduce emissions and transition to renewable energy sources.",
		},
		{
			Title:   "Education Funding",
			Content: "Hi there, I'm calling about education funding. I believe our schools need more resources and I'm asking you to support increased funding for public education.",
		},
	}
	return s.db.Create(&samples).Error
}

// seedCallLogs fills an empty call_logs table with a month of synthetic
// history so the analytics charts are not blank on first run. The rows are
// flagged as test data and excluded from queries by default.
func (s *SeedService) seedCallLogs() error {
	var count int64
	if err := s.db.Model(&models.CallLog{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	reps := []string{
		"Senator John Smith",
		"Representative Jane Doe",
		"Governor Bob Johnson",
		"Senator Alice Brown",
		"Representative Mike Wilson",
	}
	scriptTitles := []string{"Healthcare Reform", "Climate Action", "Education Funding", "Gun Control", "Immigration Reform"}
	phoneTypes := []string{"DC Office", "District Office", "Main", "Constituent Services"}

	var logs []models.CallLog
	now := time.Now()
	for day := 0; day < 30; day++ {
		date := now.AddDate(0, 0, -day)

		// weekdays see more calls; one high-activity day per week
		var dailyCalls int
		switch {
		case day%7 == 0:
			dailyCalls = 8 + rand.Intn(8)
		case date.Weekday() == time.Saturday || date.Weekday() == time.Sunday:
			dailyCalls = rand.Intn(3)
		default:
			dailyCalls = 2 + rand.Intn(7)
		}

		for i := 0; i < dailyCalls; i++ {
			hour := 9 + rand.Intn(9)
			// mornings reach people, afternoons hit voicemail
			var outcome string
			roll := rand.Float64()
			if hour < 12 {
				switch {
				case roll < 0.6:
					outcome = "person"
				case roll < 0.9:
					outcome = "voicemail"
				default:
					outcome = "failed"
				}
			} else {
				switch {
				case roll < 0.3:
					outcome = "person"
				case roll < 0.9:
					outcome = "voicemail"
				default:
					outcome = "failed"
				}
			}

			notes := ""
			if outcome == "failed" {
				notes = "Failed: no answer"
			}

			logs = append(logs, models.CallLog{
				UserID:             models.DefaultUserID,
				RepresentativeName: reps[rand.Intn(len(reps))],
				PhoneNumber:        fmt.Sprintf("(555) 123-%04d", 1000+rand.Intn(9000)),
				PhoneType:          phoneTypes[rand.Intn(len(phoneTypes))],
				CallDatetime:       time.Date(date.Year(), date.Month(), date.Day(), hour, rand.Intn(60), 0, 0, time.UTC),
				CallOutcome:        outcome,
				CallNotes:          notes,
				ScriptTitle:        scriptTitles[rand.Intn(len(scriptTitles))],
				IsTestData:         true,
			})
		}
	}
	if len(logs) == 0 {
		return nil
	}
	return s.db.CreateInBatches(&logs, 100).Error
}
