// Package viewmodel contiene los contenedores de estado de UI: validación de
// formularios, invocación de repositorios y estado observable por pantalla.
//
// Las operaciones (Login, Save, etc.) son sincrónicas: el caller las lanza en
// su propia goroutine y las cancela vía ctx cuando la pantalla se destruye.
// El estado se lee por Watch (stream reactivo) o State (último valor).
package viewmodel

import (
	"regexp"
	"strings"
)

var emailPattern = regexp.MustCompile(`^[A-Za-z0-9+_.-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)

func isValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
