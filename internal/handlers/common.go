package handlers

import (
	"time"

	"github.com/lexivault/lexivault/internal/models"
)

// UserResponse is the public view of a user account.
type UserResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// LanguageResponse is the public view of a catalog language.
type LanguageResponse struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// WordResponse is the public view of a vocabulary entry.
type WordResponse struct {
	ID          uint64            `json:"id"`
	UserID      string            `json:"user_id"`
	NewWord     string            `json:"new_word"`
	Translation *string           `json:"translation"`
	Note        *string           `json:"note"`
	Language    *LanguageResponse `json:"language"`
	Contexts    []string          `json:"contexts"`
	CreatedAt   time.Time         `json:"created_at"`
}

// DictListResponse is the public view of a dictlist.
type DictListResponse struct {
	ID            uint64            `json:"id"`
	UserID        string            `json:"user_id"`
	Name          string            `json:"name"`
	Language      *LanguageResponse `json:"language"`
	MaxWordsLimit *int              `json:"max_words_limit"`
	WordCount     int               `json:"word_count"`
	CreatedAt     time.Time         `json:"created_at"`
}

func toUserResponse(u *models.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Role:      u.Role.String(),
		CreatedAt: u.CreatedAt,
	}
}

func toLanguageResponse(l *models.Language) *LanguageResponse {
	if l == nil {
		return nil
	}
	return &LanguageResponse{Code: l.Code, Name: l.Name}
}

func toWordResponse(w *models.Word) WordResponse {
	return WordResponse{
		ID:          w.ID,
		UserID:      w.UserID,
		NewWord:     w.NewWord,
		Translation: w.Translation,
		Note:        w.Note,
		Language:    toLanguageResponse(w.Language),
		Contexts:    w.ContextStrings(),
		CreatedAt:   w.CreatedAt,
	}
}

func toWordResponses(words []models.Word) []WordResponse {
	out := make([]WordResponse, len(words))
	for i := range words {
		out[i] = toWordResponse(&words[i])
	}
	return out
}

func toDictListResponse(l *models.DictList) DictListResponse {
	return DictListResponse{
		ID:            l.ID,
		UserID:        l.UserID,
		Name:          l.Name,
		Language:      toLanguageResponse(l.Language),
		MaxWordsLimit: l.MaxWordsLimit,
		WordCount:     len(l.Words),
		CreatedAt:     l.CreatedAt,
	}
}

func toDictListResponses(lists []models.DictList) []DictListResponse {
	out := make([]DictListResponse, len(lists))
	for i := range lists {
		out[i] = toDictListResponse(&lists[i])
	}
	return out
}
