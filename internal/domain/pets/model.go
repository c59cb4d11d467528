// Package pets define el perfil de mascota y sus contratos de repositorio.
package pets

// Pet representa el perfil de una mascota registrada por un usuario.
// UserID (el dueño) no cambia después de la creación.
type Pet struct {
	ID       string
	Name     string
	Species  string // Perro, Gato, etc.
	Breed    string
	Age      int     // años, 0..50
	Weight   float64 // kg, (0, 200]
	Gender   string  // Macho, Hembra
	Color    string
	ImageURL string // opcional
	UserID   string
}
