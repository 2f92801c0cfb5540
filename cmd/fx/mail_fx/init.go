package mail_fx

import (
	"os"
	"strconv"

	"go.uber.org/fx"

	"splitly/internal/services"
)

var Module = fx.Provide(
	provideMailService)

func provideMailService() (services.IMailService, error) {
	port, _ := strconv.Atoi(os.Getenv("SMTP_PORT"))

	return services.NewSMTPMailService(services.SMTPConfig{
		Host:     os.Getenv("SMTP_HOST"),
		Port:     port,
		Username: os.Getenv("SMTP_USERNAME"),
		Password: os.Getenv("SMTP_PASSWORD"),
		From:     os.Getenv("SMTP_FROM"),
		FromName: os.Getenv("SMTP_FROM_NAME"),
		UseSSL:   port == 465,
		AppName:  "Splitly",
	})
}
