package utils

import (
	"net/mail"
	"strings"
)

// IsValidEmail valida el formato del email con la misma intención que el
// filter_var de la versión original: dirección parseable y con dominio.
func IsValidEmail(email string) bool {
	addr, err := mail.ParseAddress(email)
	if err != nil {
		return false
	}
	// mail.ParseAddress acepta "Nombre <a@b>"; aquí solo queremos la dirección
	if addr.Address != email {
		return false
	}
	at := strings.LastIndex(email, "@")
	return at > 0 && strings.Contains(email[at:], ".")
}
