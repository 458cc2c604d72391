package services

import (
	"fmt"
	"strings"

	"github.com/chroniclehq/chronicle/pkg/internal/models"
	"github.com/chroniclehq/chronicle/pkg/internal/security"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
	"gorm.io/gorm"
)

func bootstrapSuperuserEmail() string {
	return strings.ToLower(viper.GetString("security.superuser_email"))
}

func GetAccount(tx *gorm.DB, id uint) (models.Account, error) {
	var account models.Account
	if err := tx.Where("id = ?", id).First(&account).Error; err != nil {
		return account, err
	}
	return account, nil
}

func GetAccountByEmail(tx *gorm.DB, email string) (models.Account, error) {
	var account models.Account
	if err := tx.Where("email = ?", strings.ToLower(email)).First(&account).Error; err != nil {
		return account, err
	}
	return account, nil
}

// NewAccount registers an account with a freshly hashed credential.
// Emails are stored lowercased so the uniqueness index doubles as a
// case-insensitive lookup key. The unique indexes on username and email
// remain the true enforcement point; the pre-check only exists to give
// a friendlier error before the write.
func NewAccount(tx *gorm.DB, username, email, password string) (models.Account, error) {
	email = strings.ToLower(email)

	var probe int64
	if err := tx.Model(&models.Account{}).
		Where("username = ? OR email = ?", username, email).
		Count(&probe).Error; err != nil {
		return models.Account{}, err
	} else if probe > 0 {
		return models.Account{}, fmt.Errorf("an account with that username or email already exists: %w", gorm.ErrDuplicatedKey)
	}

	hashed, err := security.HashPassword(password)
	if err != nil {
		return models.Account{}, fmt.Errorf("unable to hash password: %v", err)
	}

	account := models.Account{
		Username: username,
		Email:    email,
		Password: hashed,
		Role:     models.RoleUser,
	}

	// The configured bootstrap address becomes the first superuser, so
	// the admin surface is reachable without touching the database by
	// hand.
	if bootstrap := bootstrapSuperuserEmail(); len(bootstrap) > 0 && bootstrap == email {
		account.Role = models.RoleAdmin
		account.IsSuperuser = true
	}

	if err := tx.Create(&account).Error; err != nil {
		return account, err
	}

	return account, nil
}

// AuthenticateAccount resolves the account matching the given email and
// plaintext credential. Lookup misses and hash mismatches are collapsed
// into the same error so callers cannot probe which one happened.
func AuthenticateAccount(tx *gorm.DB, email, password string) (models.Account, error) {
	account, err := GetAccountByEmail(tx, email)
	if err != nil || !security.VerifyPassword(account.Password, password) {
		return models.Account{}, fmt.Errorf("invalid credentials")
	}
	return account, nil
}

// SetAccountPassword re-hashes the credential exactly once per change.
func SetAccountPassword(tx *gorm.DB, account models.Account, password string) (models.Account, error) {
	hashed, err := security.HashPassword(password)
	if err != nil {
		return account, fmt.Errorf("unable to hash password: %v", err)
	}

	account.Password = hashed
	if err := tx.Model(&account).Update("password", hashed).Error; err != nil {
		return account, err
	}

	return account, nil
}

// BootstrapSuperuser promotes the account matching the configured
// bootstrap address when it already exists but carries no privileges
// yet. Runs once at boot; registration covers the address signing up
// after the setting was put in place.
func BootstrapSuperuser(tx *gorm.DB) {
	email := bootstrapSuperuserEmail()
	if len(email) == 0 {
		return
	}

	account, err := GetAccountByEmail(tx, email)
	if err != nil {
		return
	}
	if account.IsModerator() {
		return
	}

	if _, err := SetAccountRole(tx, account, models.RoleAdmin, true); err != nil {
		log.Error().Err(err).Msg("An error occurred when promoting the bootstrap superuser...")
		return
	}
	log.Info().Str("email", email).Msg("Promoted the bootstrap superuser.")
}

// SetAccountRole updates the role enumeration and superuser flag of an
// account. Only moderators may reach this through the admin surface.
func SetAccountRole(tx *gorm.DB, account models.Account, role string, superuser bool) (models.Account, error) {
	if role != models.RoleUser && role != models.RoleAdmin {
		return account, fmt.Errorf("unknown role: %s", role)
	}

	account.Role = role
	account.IsSuperuser = superuser
	if err := tx.Model(&account).Updates(map[string]any{
		"role":         role,
		"is_superuser": superuser,
	}).Error; err != nil {
		return account, err
	}

	return account, nil
}
