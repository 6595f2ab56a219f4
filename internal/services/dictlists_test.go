package services_test

import (
	"testing"

	"github.com/lexivault/lexivault/internal/services"
	"github.com/lexivault/lexivault/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateDictListValidation(t *testing.T) {
	db := newTestDB(t)
	owner := seedUser(t, db, "listowner")

	_, err := services.CreateDictList(db, owner.ID, services.CreateDictListInput{Name: ""})
	assert.Equal(t, types.KindInvalidArgument, types.KindOf(err))

	zero := 0
	_, err = services.CreateDictList(db, owner.ID, services.CreateDictListInput{Name: "Zero cap", MaxWordsLimit: &zero})
	assert.Equal(t, types.KindInvalidArgument, types.KindOf(err))

	xx := "xx"
	_, err = services.CreateDictList(db, owner.ID, services.CreateDictListInput{Name: "Ghost lang", LangCode: &xx})
	assert.Equal(t, types.KindNotFound, types.KindOf(err))
}

func TestCreateDictListUnlimitedByDefault(t *testing.T) {
	db := newTestDB(t)
	owner := seedUser(t, db, "listowner")

	list, err := services.CreateDictList(db, owner.ID, services.CreateDictListInput{Name: "No ceiling"})
	require.NoError(t, err)
	assert.Nil(t, list.MaxWordsLimit)
	assert.Nil(t, list.LangCode)
}

func TestGetOwnedDictList(t *testing.T) {
	db := newTestDB(t)
	owner := seedUser(t, db, "listowner")
	other := seedUser(t, db, "otheruser")

	list, err := services.CreateDictList(db, owner.ID, services.CreateDictListInput{Name: "Mine"})
	require.NoError(t, err)

	_, err = services.GetOwnedDictList(db, list.ID, owner.ID)
	assert.NoError(t, err)

	_, err = services.GetOwnedDictList(db, list.ID+1000, owner.ID)
	assert.Equal(t, types.KindNotFound, types.KindOf(err))

	_, err = services.GetOwnedDictList(db, list.ID, other.ID)
	assert.Equal(t, types.KindForbidden, types.KindOf(err))
}

func TestAssignWordsDeduplicates(t *testing.T) {
	db := newTestDB(t)
	seedLanguage(t, db, "en", "English")
	owner := seedUser(t, db, "listowner")

	list, err := services.CreateDictList(db, owner.ID, services.CreateDictListInput{Name: "Basics"})
	require.NoError(t, err)
	hello := seedWord(t, db, owner.ID, "en", "hello")
	world := seedWord(t, db, owner.ID, "en", "world")

	// Duplicate ids in one request collapse to one membership.
	require.NoError(t, services.AssignWords(db, list.ID, owner.ID, []uint64{hello.ID, hello.ID}))
	assert.EqualValues(t, 1, membershipCount(t, db, list.ID))

	// Re-assigning a member plus a new word only adds the new one.
	require.NoError(t, services.AssignWords(db, list.ID, owner.ID, []uint64{hello.ID, world.ID}))
	assert.EqualValues(t, 2, membershipCount(t, db, list.ID))
}

func TestAssignWordsCapacityAllOrNothing(t *testing.T) {
	db := newTestDB(t)
	seedLanguage(t, db, "en", "English")
	owner := seedUser(t, db, "listowner")

	limit := 2
	list, err := services.CreateDictList(db, owner.ID, services.CreateDictListInput{
		Name:          "Tiny",
		MaxWordsLimit: &limit,
	})
	require.NoError(t, err)

	first := seedWord(t, db, owner.ID, "en", "one")
	second := seedWord(t, db, owner.ID, "en", "two")
	third := seedWord(t, db, owner.ID, "en", "three")

	require.NoError(t, services.AssignWords(db, list.ID, owner.ID, []uint64{first.ID}))

	// Two more would exceed the cap of 2: neither is added.
	err = services.AssignWords(db, list.ID, owner.ID, []uint64{second.ID, third.ID})
	require.Error(t, err)
	assert.Equal(t, types.KindInvalidArgument, types.KindOf(err))
	assert.EqualValues(t, 1, membershipCount(t, db, list.ID))

	// Exactly filling the cap is fine.
	require.NoError(t, services.AssignWords(db, list.ID, owner.ID, []uint64{second.ID}))
	assert.EqualValues(t, 2, membershipCount(t, db, list.ID))

	// Already-member ids do not count against the remaining capacity.
	require.NoError(t, services.AssignWords(db, list.ID, owner.ID, []uint64{first.ID, second.ID}))
	assert.EqualValues(t, 2, membershipCount(t, db, list.ID))
}

func TestAssignWordsOwnership(t *testing.T) {
	db := newTestDB(t)
	seedLanguage(t, db, "en", "English")
	owner := seedUser(t, db, "listowner")
	other := seedUser(t, db, "otheruser")

	list, err := services.CreateDictList(db, owner.ID, services.CreateDictListInput{Name: "Private"})
	require.NoError(t, err)
	foreign := seedWord(t, db, other.ID, "en", "not yours")

	// A word owned by someone else cannot join the list.
	err = services.AssignWords(db, list.ID, owner.ID, []uint64{foreign.ID})
	assert.Equal(t, types.KindForbidden, types.KindOf(err))
	assert.Zero(t, membershipCount(t, db, list.ID))

	// Nor can another user assign into the list at all.
	mine := seedWord(t, db, owner.ID, "en", "mine")
	err = services.AssignWords(db, list.ID, other.ID, []uint64{mine.ID})
	assert.Equal(t, types.KindForbidden, types.KindOf(err))

	err = services.AssignWords(db, list.ID+1000, owner.ID, []uint64{mine.ID})
	assert.Equal(t, types.KindNotFound, types.KindOf(err))

	err = services.AssignWords(db, list.ID, owner.ID, nil)
	assert.Equal(t, types.KindInvalidArgument, types.KindOf(err))
}

func TestUnassignWordsIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	seedLanguage(t, db, "en", "English")
	owner := seedUser(t, db, "listowner")

	list, err := services.CreateDictList(db, owner.ID, services.CreateDictListInput{Name: "Basics"})
	require.NoError(t, err)
	hello := seedWord(t, db, owner.ID, "en", "hello")
	world := seedWord(t, db, owner.ID, "en", "world")
	require.NoError(t, services.AssignWords(db, list.ID, owner.ID, []uint64{hello.ID, world.ID}))

	require.NoError(t, services.UnassignWords(db, list.ID, owner.ID, []uint64{hello.ID}))
	assert.EqualValues(t, 1, membershipCount(t, db, list.ID))

	// Removing the same word again is not an error.
	require.NoError(t, services.UnassignWords(db, list.ID, owner.ID, []uint64{hello.ID}))
	assert.EqualValues(t, 1, membershipCount(t, db, list.ID))

	// The words themselves still exist.
	_, err = services.GetWord(db, hello.ID)
	assert.NoError(t, err)
}

func TestListDictListsFilters(t *testing.T) {
	db := newTestDB(t)
	seedLanguage(t, db, "en", "English")
	seedLanguage(t, db, "fr", "French")
	owner := seedUser(t, db, "listowner")
	other := seedUser(t, db, "otheruser")

	en, fr := "en", "fr"
	english, err := services.CreateDictList(db, owner.ID, services.CreateDictListInput{Name: "English", LangCode: &en})
	require.NoError(t, err)
	_, err = services.CreateDictList(db, owner.ID, services.CreateDictListInput{Name: "French", LangCode: &fr})
	require.NoError(t, err)
	_, err = services.CreateDictList(db, other.ID, services.CreateDictListInput{Name: "Not yours"})
	require.NoError(t, err)

	all, err := services.ListDictLists(db, owner.ID, services.DictListFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	byLang, err := services.ListDictLists(db, owner.ID, services.DictListFilter{LangCode: &en})
	require.NoError(t, err)
	require.Len(t, byLang, 1)
	assert.Equal(t, "English", byLang[0].Name)

	word := seedWord(t, db, owner.ID, "en", "hello")
	require.NoError(t, services.AssignWords(db, english.ID, owner.ID, []uint64{word.ID}))

	byWord, err := services.ListDictLists(db, owner.ID, services.DictListFilter{WordID: &word.ID})
	require.NoError(t, err)
	require.Len(t, byWord, 1)
	assert.Equal(t, english.ID, byWord[0].ID)
}

func TestUpdateDictList(t *testing.T) {
	db := newTestDB(t)
	seedLanguage(t, db, "en", "English")
	owner := seedUser(t, db, "listowner")

	en := "en"
	list, err := services.CreateDictList(db, owner.ID, services.CreateDictListInput{Name: "Old name", LangCode: &en})
	require.NoError(t, err)

	var patch services.DictListPatch
	patch.Name.Set = true
	patch.Name.Value = "New name"
	updated, err := services.UpdateDictList(db, list, patch)
	require.NoError(t, err)
	assert.Equal(t, "New name", updated.Name)
	require.NotNil(t, updated.LangCode)

	// Null clears the language, name stays.
	var clearLang services.DictListPatch
	clearLang.LangCode.Set = true
	clearLang.LangCode.Null = true
	updated, err = services.UpdateDictList(db, updated, clearLang)
	require.NoError(t, err)
	assert.Nil(t, updated.LangCode)
	assert.Equal(t, "New name", updated.Name)

	var nullName services.DictListPatch
	nullName.Name.Set = true
	nullName.Name.Null = true
	_, err = services.UpdateDictList(db, updated, nullName)
	assert.Equal(t, types.KindInvalidArgument, types.KindOf(err))
}

func TestDeleteDictListKeepsWords(t *testing.T) {
	db := newTestDB(t)
	seedLanguage(t, db, "en", "English")
	owner := seedUser(t, db, "listowner")

	list, err := services.CreateDictList(db, owner.ID, services.CreateDictListInput{Name: "Doomed"})
	require.NoError(t, err)
	word := seedWord(t, db, owner.ID, "en", "survivor")
	require.NoError(t, services.AssignWords(db, list.ID, owner.ID, []uint64{word.ID}))

	require.NoError(t, services.DeleteDictList(db, list))

	_, err = services.GetDictList(db, list.ID)
	assert.Equal(t, types.KindNotFound, types.KindOf(err))
	assert.Zero(t, membershipCount(t, db, list.ID))

	_, err = services.GetWord(db, word.ID)
	assert.NoError(t, err)
}
