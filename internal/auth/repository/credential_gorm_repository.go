package repository

import (
	"errors"
	"time"

	authdomain "embox-backend/internal/auth/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// gormCredentialRepository persists credentials in Postgres for deployments
// that must survive restarts. Semantics match the in-memory store: one row
// per chat user, overwritten on every login.
type gormCredentialRepository struct {
	db *gorm.DB
}

func NewGormCredentialRepository(db *gorm.DB) CredentialRepository {
	return &gormCredentialRepository{
		db: db,
	}
}

func (r *gormCredentialRepository) Put(chatUserID, accessToken string) error {
	var cred authdomain.Credential
	err := r.db.Where("chat_user_id = ?", chatUserID).First(&cred).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		cred = authdomain.Credential{
			ID:          uuid.New().String(),
			ChatUserID:  chatUserID,
			AccessToken: accessToken,
			CreatedAt:   time.Now(),
			UpdatedAt:   time.Now(),
		}
		return r.db.Create(&cred).Error
	}
	if err != nil {
		return err
	}

	cred.AccessToken = accessToken
	cred.UpdatedAt = time.Now()
	return r.db.Save(&cred).Error
}

func (r *gormCredentialRepository) Get(chatUserID string) (string, bool, error) {
	var cred authdomain.Credential
	err := r.db.Where("chat_user_id = ?", chatUserID).First(&cred).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return cred.AccessToken, true, nil
}

func (r *gormCredentialRepository) Delete(chatUserID string) error {
	return r.db.Where("chat_user_id = ?", chatUserID).Delete(&authdomain.Credential{}).Error
}
