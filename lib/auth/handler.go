package auth

import (
	"carelink-backend/config"
	"carelink-backend/db"
	userstore "carelink-backend/lib/auth/store"
	emailverify "carelink-backend/lib/email-verify"
	authutils "carelink-backend/lib/utils/auth-utils"
	authapimodels "carelink-backend/models/api/auth"
	dbmodels "carelink-backend/models/db"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type Provider interface {
	Register(request authapimodels.RegisterRequest) error
	Login(request authapimodels.LoginRequest) (authapimodels.TokenResponse, error)
	VerifyEmail(code string) error
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		users:       userstore.NewInstance(db.DB),
		emailVerify: emailverify.NewInstance(config.Conf.Smtp.EmailFrom),
	}
}

type impl struct {
	users       userstore.Provider
	emailVerify emailverify.Provider
}

func (i impl) Register(request authapimodels.RegisterRequest) error {
	exist, err := i.users.ExistByEmail(request.Email)
	if err != nil {
		return errors.Wrap(err, "user read failed")
	}
	if exist {
		return errors.New("this email is already registered")
	}
	rec := dbmodels.User{
		Email:     request.Email,
		Password:  authutils.GetMD5Hash(request.Password),
		FirstName: request.FirstName,
		LastName:  request.LastName,
		Phone:     request.Phone,
		Role:      request.Role,
	}
	userID, err := i.users.Create(rec)
	if err != nil {
		return errors.Wrap(err, "user create failed")
	}
	logger := log.
		WithField("user_id", userID).
		WithField("role", request.Role)
	logger.Info("user registered")

	// Verification mail is best effort, registration stands either way.
	if err = i.emailVerify.SendVerifyCode(request.Email); err != nil {
		logger.WithError(err).Error("verification mail send failed")
	}
	return nil
}

func (i impl) Login(request authapimodels.LoginRequest) (authapimodels.TokenResponse, error) {
	user, err := i.users.FindByEmail(request.Email)
	if err != nil {
		return authapimodels.TokenResponse{}, errors.Wrap(err, "user read failed")
	}
	if user == nil || user.Password != authutils.GetMD5Hash(request.Password) {
		return authapimodels.TokenResponse{}, errors.New("invalid email or password")
	}
	accessToken, err := authutils.GetToken(user.ID, user.DisplayName(), user.Role)
	if err != nil {
		return authapimodels.TokenResponse{}, errors.Wrap(err, "token issue failed")
	}
	refreshToken, err := authutils.GetRefreshToken(user.ID, user.DisplayName())
	if err != nil {
		return authapimodels.TokenResponse{}, errors.Wrap(err, "token issue failed")
	}
	return authapimodels.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		Role:         user.Role,
	}, nil
}

func (i impl) VerifyEmail(code string) error {
	return i.emailVerify.VerifyCode(code)
}
