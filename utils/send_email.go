package utils

import (
	"fmt"
	"net/smtp"
	"os"
)

// SendEmail envía un correo HTML vía SMTP. Se usa para avisar al alumno
// cuando su inscripción es aprobada o rechazada; los errores se registran
// pero nunca bloquean la respuesta de la API.
func SendEmail(to, subject, body string) error {
	from := os.Getenv("SMTP_EMAIL")
	if from == "" {
		return fmt.Errorf("SMTP_EMAIL no está configurado")
	}
	pass := os.Getenv("SMTP_PASSWORD")
	host := os.Getenv("SMTP_HOST")
	if host == "" {
		host = "smtp.gmail.com"
	}

	// Headers: UTF-8 y HTML
	msg := ""
	msg += "MIME-Version: 1.0\r\n"
	msg += "Content-Type: text/html; charset=\"UTF-8\"\r\n"
	msg += fmt.Sprintf("From: %s\r\n", from)
	msg += fmt.Sprintf("To: %s\r\n", to)
	msg += fmt.Sprintf("Subject: %s\r\n", subject)
	msg += "\r\n" + body

	err := smtp.SendMail(
		host+":587",
		smtp.PlainAuth("", from, pass, host),
		from,
		[]string{to},
		[]byte(msg),
	)
	if err != nil {
		return fmt.Errorf("no se pudo enviar el email: %v", err)
	}
	return nil
}
