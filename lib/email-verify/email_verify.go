package emailverify

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"carelink-backend/config"
	"carelink-backend/db"
	emailverifystore "carelink-backend/lib/email-verify/store"
	userstore "carelink-backend/lib/auth/store"
	"carelink-backend/lib/smtp"
	dbmodels "carelink-backend/models/db"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const daysToExpires = 14
const letterBytes = "ABCDEFGHIJKLMNOPQRSTUVWXYZ1234567890"

type Provider interface {
	SendVerifyCode(email string) error
	VerifyCode(code string) error
}

func NewInstance(emailFrom string) Provider {
	return &impl{
		verifyStore: emailverifystore.NewInstance(db.DB),
		emailFrom:   emailFrom,
	}
}

type impl struct {
	verifyStore emailverifystore.Provider
	emailFrom   string
}

func (i impl) SendVerifyCode(email string) error {
	exist, err := i.verifyStore.ExistActive(email)
	if err != nil {
		return err
	}
	if exist {
		return errors.New("a verification code was already issued for this address")
	}
	verifyData := dbmodels.EmailVerify{
		Email:         email,
		Code:          i.generateCode(),
		DateGenerated: time.Now(),
		DateExpires:   time.Now().Add(time.Hour * 24 * daysToExpires),
	}
	err = i.verifyStore.Create(verifyData)
	if err != nil {
		return err
	}
	message := fmt.Sprintf("Confirm your email address: %s/api/v1/auth/verify-email?code=%s", config.Conf.Smtp.DomainForVerifyLink, verifyData.Code)
	err = smtp.Instance.SendEMail(i.emailFrom, email, message, "Email Confirmation")
	if err != nil {
		return err
	}
	return nil
}

func (i impl) VerifyCode(code string) error {
	err := db.DB.Transaction(func(tx *gorm.DB) error {
		verifyStore := emailverifystore.NewInstance(tx)
		users := userstore.NewInstance(tx)

		email, err := applyCode(code, verifyStore)
		if err != nil {
			return err
		}
		return markUserVerified(email, users)
	})
	return err
}

func applyCode(code string, verifyStore emailverifystore.Provider) (email string, err error) {
	verifyData, err := verifyStore.GetByCode(code)
	if err != nil {
		return "", err
	}
	if verifyData == nil {
		return "", errors.New("verification code not found")
	}
	if !verifyData.DateUsed.IsZero() {
		return "", errors.New("verification code was already used")
	}
	if verifyData.DateExpires.Before(time.Now()) {
		return "", errors.New("verification code has expired")
	}
	logger := log.WithField("email", verifyData.Email)

	updMap := map[string]interface{}{
		"date_used": time.Now(),
	}
	err = verifyStore.UpdateByCode(code, updMap)
	if err != nil {
		logger.WithError(err).Error("email not verified, EmailVerify update failed")
		return "", errors.New("verification code could not be applied")
	}
	return verifyData.Email, nil
}

func markUserVerified(email string, users userstore.Provider) error {
	logger := log.WithField("email", email)

	user, err := users.FindByEmail(email)
	if err != nil {
		logger.WithError(err).Error("email not verified, user read failed")
		return errors.New("user read failed")
	}
	if user == nil {
		logger.Error("email not verified, user not found")
		return errors.New("user not found")
	}
	updMap := map[string]interface{}{
		"is_email_verified": true,
	}
	err = users.Update(user.ID, updMap)
	if err != nil {
		logger.WithError(err).Error("user verification flag update failed")
		return err
	}
	return nil
}

func (i impl) generateCode() string {
	sb := strings.Builder{}
	sb.Grow(24)
	for i := 0; i < 24; i++ {
		idx := rand.Int63() % int64(len(letterBytes))
		sb.WriteByte(letterBytes[idx])
	}
	return sb.String()
}
