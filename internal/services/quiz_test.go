package services

import (
	"testing"

	"github.com/coderhafiz/Murajiah-sub001/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBrowseOnlyPublished(t *testing.T) {
	db := newTestDB(t)
	svc := NewQuizService(db)

	owner := createUser(t, db, "owner", models.RoleUser)
	createQuiz(t, db, owner.ID, "Tajweed rules", true)
	createQuiz(t, db, owner.ID, "Drafts only", false)
	createQuiz(t, db, owner.ID, "Fiqh of fasting", true)

	all, err := svc.Browse("")
	require.NoError(t, err)
	require.Len(t, all, 2)

	filtered, err := svc.Browse("TAJWEED")
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, "Tajweed rules", filtered[0].Title)
}

func TestGetPublicQuizHidesDrafts(t *testing.T) {
	db := newTestDB(t)
	svc := NewQuizService(db)

	owner := createUser(t, db, "owner", models.RoleUser)
	draft := createQuiz(t, db, owner.ID, "Draft", false)

	_, err := svc.GetPublicQuiz(draft.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	// The owner still reaches it through the owner-scoped lookup.
	quiz, err := svc.GetQuizByID(draft.ID, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, "Draft", quiz.Title)
}

func TestQuizOwnershipScoping(t *testing.T) {
	db := newTestDB(t)
	svc := NewQuizService(db)

	owner := createUser(t, db, "owner", models.RoleUser)
	other := createUser(t, db, "other", models.RoleUser)
	quiz := createQuiz(t, db, owner.ID, "Mine", false)

	_, err := svc.GetQuizByID(quiz.ID, other.ID)
	assert.Error(t, err)

	err = svc.DeleteQuiz(quiz.ID, other.ID)
	assert.Error(t, err)

	require.NoError(t, svc.DeleteQuiz(quiz.ID, owner.ID))
}

func TestAddQuestionOrdersSequentially(t *testing.T) {
	db := newTestDB(t)
	svc := NewQuizService(db)

	owner := createUser(t, db, "owner", models.RoleUser)
	quiz := createQuiz(t, db, owner.ID, "Quiz", false)

	q1, err := svc.AddQuestion(quiz.ID, owner.ID, "First?", []models.Option{
		{Text: "yes", IsCorrect: true},
		{Text: "no"},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, q1.OrderNum)

	q2, err := svc.AddQuestion(quiz.ID, owner.ID, "Second?", []models.Option{
		{Text: "yes"},
		{Text: "no", IsCorrect: true},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, q2.OrderNum)

	var optionCount int64
	db.Model(&models.Option{}).Where("question_id = ?", q1.ID).Count(&optionCount)
	assert.Equal(t, int64(2), optionCount)
}
