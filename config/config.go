package config

import (
	"github.com/gotify/configor"
)

var Conf *Configuration

type Configuration struct {
	App struct {
		ListenAddr string `default:"" env:"APP_HOST"`
		Port       int    `default:"8080"  env:"APP_PORT"`
	}
	Database struct {
		Host           string `default:"127.0.0.1" env:"DB_HOST"`
		Port           string `default:"5432" env:"DB_PORT"`
		Name           string `default:"carelink" env:"DB_NAME"`
		User           string `default:"postgres" env:"DB_USER"`
		Password       string `default:"postgres" env:"DB_PASSWORD"`
		MigrateOnStart *bool  `default:"true" env:"DB_MIGRATE_ON_START"`
		DebugMode      *bool  `default:"false" env:"DB_DEBUG_MODE"`
	}
	Auth struct {
		JWTSecret             string `default:"" env:"JWT_SECRET"`
		JWTExpireInSec        int    `default:"86400" env:"JWT_EXPIRE_IN_SEC"`
		JWTRefreshExpireInSec int    `default:"604800" env:"JWT_REFRESH_EXPIRE_IN_SEC"`
	}
	S3 struct {
		Endpoint        string `default:"127.0.0.1:9000" env:"S3_ENDPOINT"`
		AccessKeyID     string `default:"" env:"S3_ACCESS_KEY_ID"`
		SecretAccessKey string `default:"" env:"S3_SECRET_ACCESS_KEY"`
		BucketName      string `default:"carelink" env:"S3_BUCKET_NAME"`
		UseSSL          *bool  `default:"false" env:"S3_USE_SSL"`
	}
	Smtp struct {
		User                string `default:"" env:"SMTP_USER"`
		Password            string `default:"" env:"SMTP_PASSWORD"`
		Host                string `default:"" env:"SMTP_HOST"`
		Port                string `default:"" env:"SMTP_PORT"`
		TLSEnabled          *bool  `default:"true" env:"SMTP_TLS_ENABLED"`
		EmailFrom           string `default:"" env:"EMAIL_FROM"`
		DomainForVerifyLink string `default:"http://localhost:8000" env:"DOMAIN_FOR_VERIFY_LINK"`
	}
	// Mail is the transactional mail provider used for welcome messages.
	// ApiKey and SenderEmail are both mandatory for sends to be attempted.
	Mail struct {
		Host        string `default:"smtp.sendgrid.net" env:"MAIL_HOST"`
		Port        int    `default:"587" env:"MAIL_PORT"`
		ApiKey      string `default:"" env:"MAIL_API_KEY"`
		SenderEmail string `default:"" env:"MAIL_SENDER_EMAIL"`
		SenderName  string `default:"CareLink" env:"MAIL_SENDER_NAME"`
	}
	Cleanup struct {
		RunIntervalMin  int `default:"60" env:"CLEANUP_RUN_INTERVAL_MIN"`
		GracePeriodHour int `default:"24" env:"CLEANUP_GRACE_PERIOD_HOUR"`
	}
}

func configFiles() []string {
	return []string{"config.yml"}
}

func InitConfig() {
	if Conf != nil {
		return
	}
	conf := new(Configuration)
	err := configor.New(&configor.Config{}).Load(conf, configFiles()...)
	if err != nil {
		panic(err)
	}
	Conf = conf
}
