package utils

import (
	"strconv"

	"gopkg.in/gomail.v2"
)

func smtpPortOr587(port string) int {
	p, err := strconv.Atoi(port)
	if err != nil || p <= 0 {
		return 587
	}
	return p
}

func SendEmail(to, subject, body, smtpHost, smtpPort, smtpUser, smtpPass string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", smtpUser)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	d := gomail.NewDialer(smtpHost, smtpPortOr587(smtpPort), smtpUser, smtpPass)
	return d.DialAndSend(m)
}
