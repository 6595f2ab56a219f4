package services_test

import (
	"testing"

	"github.com/lexivault/lexivault/internal/services"
	"github.com/lexivault/lexivault/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateLanguageValidation(t *testing.T) {
	db := newTestDB(t)

	for _, code := range []string{"EN", "eng", "en-gb", "e", ""} {
		_, err := services.CreateLanguage(db, code, "Whatever")
		assert.Equal(t, types.KindInvalidArgument, types.KindOf(err), "code %q should be rejected", code)
	}

	_, err := services.CreateLanguage(db, "en", "")
	assert.Equal(t, types.KindInvalidArgument, types.KindOf(err))

	for _, code := range []string{"en", "en-GB"} {
		_, err := services.CreateLanguage(db, code, "English")
		assert.NoError(t, err, "code %q should be accepted", code)
	}
}

func TestCreateLanguageDuplicate(t *testing.T) {
	db := newTestDB(t)
	seedLanguage(t, db, "en", "English")

	_, err := services.CreateLanguage(db, "en", "English again")
	require.Error(t, err)
	assert.Equal(t, types.KindAlreadyExists, types.KindOf(err))
}

func TestListLanguagesOrdered(t *testing.T) {
	db := newTestDB(t)
	seedLanguage(t, db, "fr", "French")
	seedLanguage(t, db, "de", "German")
	seedLanguage(t, db, "en", "English")

	langs, err := services.ListLanguages(db)
	require.NoError(t, err)
	require.Len(t, langs, 3)
	assert.Equal(t, "de", langs[0].Code)
	assert.Equal(t, "en", langs[1].Code)
	assert.Equal(t, "fr", langs[2].Code)
}

func TestUpdateLanguageName(t *testing.T) {
	db := newTestDB(t)
	seedLanguage(t, db, "en", "English")

	lang, err := services.UpdateLanguageName(db, "en", "English (US)")
	require.NoError(t, err)
	assert.Equal(t, "English (US)", lang.Name)

	// Renaming to the current name is rejected, not silently accepted.
	_, err = services.UpdateLanguageName(db, "en", "English (US)")
	assert.Equal(t, types.KindInvalidArgument, types.KindOf(err))

	_, err = services.UpdateLanguageName(db, "xx", "Missing")
	assert.Equal(t, types.KindNotFound, types.KindOf(err))
}

func TestDeleteLanguageNullsReferences(t *testing.T) {
	db := newTestDB(t)
	seedLanguage(t, db, "en", "English")
	owner := seedUser(t, db, "langowner")

	word := seedWord(t, db, owner.ID, "en", "hello")

	en := "en"
	list, err := services.CreateDictList(db, owner.ID, services.CreateDictListInput{
		Name:     "Greetings",
		LangCode: &en,
	})
	require.NoError(t, err)

	require.NoError(t, services.DeleteLanguage(db, "en"))

	_, err = services.GetLanguageByCode(db, "en")
	assert.Equal(t, types.KindNotFound, types.KindOf(err))

	gotWord, err := services.GetWord(db, word.ID)
	require.NoError(t, err)
	assert.Nil(t, gotWord.LangCode)

	gotList, err := services.GetDictList(db, list.ID)
	require.NoError(t, err)
	assert.Nil(t, gotList.LangCode)
}
