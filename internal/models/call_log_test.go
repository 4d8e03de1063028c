package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedCallLogs(t *testing.T, db *gorm.DB) {
	t.Helper()
	base := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	logs := []CallLog{
		{UserID: DefaultUserID, RepresentativeName: "Senator Jane Doe", PhoneNumber: "(202) 555-1234", PhoneType: "DC Office",
			CallDatetime: base, CallOutcome: "person", ScriptTitle: "Healthcare Reform", SessionID: "session_1"},
		{UserID: DefaultUserID, RepresentativeName: "Senator Jane Doe", PhoneNumber: "(415) 555-9876", PhoneType: "District Office",
			CallDatetime: base.Add(time.Hour), CallOutcome: "voicemail", ScriptTitle: "Healthcare Reform", SessionID: "session_1"},
		{UserID: DefaultUserID, RepresentativeName: "Rep. Bob Johnson", PhoneNumber: "(202) 555-4321", PhoneType: "DC Office",
			CallDatetime: base.Add(25 * time.Hour), CallOutcome: "failed", CallNotes: "Failed: no answer", SessionID: "session_2"},
		{UserID: DefaultUserID, RepresentativeName: "Rep. Bob Johnson", PhoneNumber: "(202) 555-4321", PhoneType: "DC Office",
			CallDatetime: base.Add(26 * time.Hour), CallOutcome: "person", SessionID: "session_2", IsTestData: true},
		{UserID: "someone_else", RepresentativeName: "Gov. Alice Brown", PhoneNumber: "(916) 555-0000", PhoneType: "Main",
			CallDatetime: base, CallOutcome: "person"},
	}
	for i := range logs {
		require.NoError(t, db.Create(&logs[i]).Error)
	}
}

func TestQueryCallLogs_Filters(t *testing.T) {
	db := setupTestDBWithSilentLogger(t, &CallLog{})
	seedCallLogs(t, db)

	// default user, test data excluded
	logs, err := QueryCallLogs(db, CallLogFilters{})
	require.NoError(t, err)
	assert.Len(t, logs, 3)
	// most recent first
	assert.Equal(t, "failed", logs[0].CallOutcome)

	// outcome filter
	logs, err = QueryCallLogs(db, CallLogFilters{Outcome: "voicemail"})
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, "(415) 555-9876", logs[0].PhoneNumber)

	// session filter includes test rows when asked
	logs, err = QueryCallLogs(db, CallLogFilters{SessionID: "session_2", IncludeTest: true})
	require.NoError(t, err)
	assert.Len(t, logs, 2)

	// date window
	start := time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC)
	logs, err = QueryCallLogs(db, CallLogFilters{StartDate: &start})
	require.NoError(t, err)
	assert.Len(t, logs, 1)
}

func TestCallLogStats(t *testing.T) {
	db := setupTestDBWithSilentLogger(t, &CallLog{})
	seedCallLogs(t, db)

	stats, err := CallLogStats(db, CallLogFilters{IncludeTest: true})
	require.NoError(t, err)

	assert.Equal(t, 4, stats.TotalCalls)
	assert.Equal(t, 2, stats.CallsByOutcome["person"])
	assert.Equal(t, 1, stats.CallsByOutcome["voicemail"])
	assert.Equal(t, 1, stats.CallsByOutcome["failed"])
	assert.Equal(t, 2, stats.CallsByDate["2026-03-02"])
	assert.Equal(t, 2, stats.CallsByDate["2026-03-03"])
	assert.Equal(t, 2, stats.CallsByRep["Senator Jane Doe"])
	// logs without a script title are not counted in the script bucket
	assert.Equal(t, 2, stats.CallsByScript["Healthcare Reform"])
	assert.Len(t, stats.CallsByScript, 1)
}
