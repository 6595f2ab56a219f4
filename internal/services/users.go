package services

import (
	"errors"
	"regexp"

	"github.com/google/uuid"
	"github.com/lexivault/lexivault/internal/models"
	"github.com/lexivault/lexivault/internal/types"
	"gorm.io/gorm"
)

var (
	usernameRe = regexp.MustCompile(`^\w{4,50}$`)
	emailRe    = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
)

const minPasswordLen = 6

// ValidateEmail rejects addresses that cannot receive a verification mail.
func ValidateEmail(email string) error {
	if !emailRe.MatchString(email) {
		return types.InvalidArgument("invalid email address")
	}
	return nil
}

// CreateUser registers a new account with the unauthorized role. Uniqueness
// of username and email is enforced by the storage constraints, not a
// pre-check, so concurrent registrations cannot both succeed.
func CreateUser(db *gorm.DB, creds *Credentials, username, email, password string) (*models.User, error) {
	if !usernameRe.MatchString(username) {
		return nil, types.InvalidArgument("username must be 4-50 word characters")
	}
	if err := ValidateEmail(email); err != nil {
		return nil, err
	}
	if len(password) < minPasswordLen {
		return nil, types.InvalidArgument("password must be at least %d characters", minPasswordLen)
	}

	hash, err := creds.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := models.User{
		ID:       uuid.NewString(),
		Username: username,
		Email:    email,
		Password: hash,
		Role:     models.RoleUnauthorized,
	}
	if err := db.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, types.AlreadyExists("username or email already taken")
		}
		return nil, err
	}

	return &user, nil
}

// GetUserByID fetches a user by primary key.
func GetUserByID(db *gorm.DB, id string) (*models.User, error) {
	var user models.User
	if err := db.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.NotFound("user not found")
		}
		return nil, err
	}
	return &user, nil
}

// GetUserByUsername fetches a user by its unique username.
func GetUserByUsername(db *gorm.DB, username string) (*models.User, error) {
	var user models.User
	if err := db.First(&user, "username = ?", username).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.NotFound("user not found")
		}
		return nil, err
	}
	return &user, nil
}

// GetUserByEmail fetches a user by its unique email.
func GetUserByEmail(db *gorm.DB, email string) (*models.User, error) {
	var user models.User
	if err := db.First(&user, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.NotFound("user not found")
		}
		return nil, err
	}
	return &user, nil
}

// ListUsers returns all users, optionally filtered by role.
func ListUsers(db *gorm.DB, role *models.Role) ([]models.User, error) {
	var users []models.User
	query := db.Order("created_at")
	if role != nil {
		query = query.Where("role = ?", *role)
	}
	if err := query.Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// DeleteUser removes a user and everything it owns. Words, dictlists,
// contexts and memberships go with it in one transaction.
func DeleteUser(db *gorm.DB, id string) error {
	return db.Transaction(func(tx *gorm.DB) error {
		user, err := GetUserByID(tx, id)
		if err != nil {
			return err
		}

		var wordIDs []uint64
		if err := tx.Model(&models.Word{}).Where("user_id = ?", id).Pluck("id", &wordIDs).Error; err != nil {
			return err
		}
		if len(wordIDs) > 0 {
			if err := tx.Where("word_id IN ?", wordIDs).Delete(&models.WordContext{}).Error; err != nil {
				return err
			}
			if err := tx.Exec("DELETE FROM dictlist_words WHERE word_id IN ?", wordIDs).Error; err != nil {
				return err
			}
		}

		var listIDs []uint64
		if err := tx.Model(&models.DictList{}).Where("user_id = ?", id).Pluck("id", &listIDs).Error; err != nil {
			return err
		}
		if len(listIDs) > 0 {
			if err := tx.Exec("DELETE FROM dictlist_words WHERE dictlist_id IN ?", listIDs).Error; err != nil {
				return err
			}
		}

		if err := tx.Where("user_id = ?", id).Delete(&models.Word{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&models.DictList{}).Error; err != nil {
			return err
		}
		return tx.Delete(user).Error
	})
}

// UpdateUsername changes the unique username, translating a constraint
// violation at commit into AlreadyExists.
func UpdateUsername(db *gorm.DB, user *models.User, username string) error {
	if !usernameRe.MatchString(username) {
		return types.InvalidArgument("username must be 4-50 word characters")
	}
	if err := db.Model(user).Update("username", username).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return types.AlreadyExists("username already taken")
		}
		return err
	}
	return nil
}

// UpdateEmail changes the unique email address.
func UpdateEmail(db *gorm.DB, user *models.User, email string) error {
	if err := ValidateEmail(email); err != nil {
		return err
	}
	if err := db.Model(user).Update("email", email).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return types.AlreadyExists("email already taken")
		}
		return err
	}
	return nil
}

// UpdatePassword stores a new password hash. Verifying the old password is
// the caller's responsibility via Credentials before calling this.
func UpdatePassword(db *gorm.DB, creds *Credentials, user *models.User, newPassword string) error {
	if len(newPassword) < minPasswordLen {
		return types.InvalidArgument("password must be at least %d characters", minPasswordLen)
	}
	hash, err := creds.HashPassword(newPassword)
	if err != nil {
		return err
	}
	return db.Model(user).Update("password", hash).Error
}

// PromoteRole raises a user's role. The ladder is monotonic: a promotion to a
// role at or below the current one is a no-op, never a demotion.
func PromoteRole(db *gorm.DB, user *models.User, role models.Role) error {
	if role <= user.Role {
		return nil
	}
	return db.Model(user).Update("role", role).Error
}
