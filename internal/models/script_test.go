package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestListScripts_NewestFirst(t *testing.T) {
	db := setupTestDBWithSilentLogger(t, &CallScript{})

	older := &CallScript{Title: "Healthcare Reform", Content: "Hi, I'm calling about healthcare reform."}
	require.NoError(t, db.Create(older).Error)
	// force distinct timestamps; sqlite stores what we give it
	require.NoError(t, db.Model(older).Update("created_at", time.Now().Add(-time.Hour)).Error)

	newer := &CallScript{Title: "Climate Action", Content: "Hello, I'm calling about climate change."}
	require.NoError(t, db.Create(newer).Error)

	scripts, err := ListScripts(db)
	require.NoError(t, err)
	require.Len(t, scripts, 2)
	assert.Equal(t, "Climate Action", scripts[0].Title)
	assert.Equal(t, "Healthcare Reform", scripts[1].Title)
}

func TestGetScript(t *testing.T) {
	db := setupTestDBWithSilentLogger(t, &CallScript{})

	script := &CallScript{Title: "Education Funding", Content: "Hi there, I'm calling about education funding."}
	require.NoError(t, db.Create(script).Error)

	got, err := GetScript(db, script.ID)
	require.NoError(t, err)
	assert.Equal(t, script.Title, got.Title)

	_, err = GetScript(db, script.ID+100)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
