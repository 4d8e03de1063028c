package workflow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func phoneA() PhoneSelection {
	return PhoneSelection{
		RepID: 1, PhoneIndex: 0,
		RepName: "Jane Doe", RepRole: "Senator",
		DisplayPhone: "(202) 555-1234", DialPhone: "(202) 555-1234",
		PhoneType: "DC Office",
	}
}

func phoneB() PhoneSelection {
	return PhoneSelection{
		RepID: 2, PhoneIndex: 0,
		RepName: "Bob Johnson", RepRole: "Representative",
		DisplayPhone: "(202) 555-4321", DialPhone: "(202) 555-4321",
		PhoneType: "DC Office",
	}
}

func phoneA2() PhoneSelection {
	// second phone of the same representative as phoneA
	return PhoneSelection{
		RepID: 1, PhoneIndex: 1,
		RepName: "Jane Doe", RepRole: "Senator",
		DisplayPhone: "(415) 555-9876", DialPhone: "(415) 555-9876",
		PhoneType: "District Office",
	}
}

func TestSelectionSet_ToggleIdempotent(t *testing.T) {
	set := NewSelectionSet()

	added := set.Toggle(phoneA())
	assert.True(t, added)
	assert.Equal(t, 1, set.Len())

	// toggling the same pair again removes it: two toggles net to nothing
	added = set.Toggle(phoneA())
	assert.False(t, added)
	assert.Equal(t, 0, set.Len())
}

func TestSelectionSet_NoDuplicateByKey(t *testing.T) {
	set := NewSelectionSet()
	set.Toggle(phoneA())

	// same key with different metadata is a removal, not a duplicate
	dup := phoneA()
	dup.PhoneType = "Changed"
	set.Toggle(dup)
	assert.Equal(t, 0, set.Len())

	// two phones of the same representative are distinct selections
	set.Toggle(phoneA())
	set.Toggle(phoneA2())
	assert.Equal(t, 2, set.Len())
}

func TestSelectionSet_InsertionOrder(t *testing.T) {
	set := NewSelectionSet()
	set.Toggle(phoneB())
	set.Toggle(phoneA())
	set.Toggle(phoneA2())

	list := set.List()
	require.Len(t, list, 3)
	assert.Equal(t, SelectionKey{RepID: 2, PhoneIndex: 0}, list[0].Key())
	assert.Equal(t, SelectionKey{RepID: 1, PhoneIndex: 0}, list[1].Key())
	assert.Equal(t, SelectionKey{RepID: 1, PhoneIndex: 1}, list[2].Key())
}

func TestSelectionSet_SelectAllKeepsExistingStatus(t *testing.T) {
	set := NewSelectionSet()
	set.Toggle(phoneA())
	set.SetStatus(phoneA().Key(), StatusCompleted)

	set.SelectAll([]PhoneSelection{phoneA(), phoneB()})
	assert.Equal(t, 2, set.Len())

	got, ok := set.Get(phoneA().Key())
	require.True(t, ok)
	assert.Equal(t, StatusCompleted, got.Status)

	got, ok = set.Get(phoneB().Key())
	require.True(t, ok)
	assert.Equal(t, StatusPending, got.Status)
}

func TestSelectionSet_DeselectAll(t *testing.T) {
	set := NewSelectionSet()
	set.SelectAll([]PhoneSelection{phoneA(), phoneB(), phoneA2()})
	require.Equal(t, 3, set.Len())

	set.DeselectAll()
	assert.Equal(t, 0, set.Len())
	assert.Empty(t, set.List())
}

func TestSelectionSet_ListReturnsCopies(t *testing.T) {
	set := NewSelectionSet()
	set.Toggle(phoneA())

	list := set.List()
	list[0].Status = StatusCompleted

	got, _ := set.Get(phoneA().Key())
	assert.Equal(t, StatusPending, got.Status)
}

func TestSelectionSet_DeactivateAll(t *testing.T) {
	set := NewSelectionSet()
	set.SelectAll([]PhoneSelection{phoneA(), phoneB()})
	set.SetStatus(phoneA().Key(), StatusActive)

	set.DeactivateAll()
	assert.Equal(t, 0, set.CountByStatus(StatusActive))
	assert.Equal(t, 2, set.CountByStatus(StatusPending))
}
