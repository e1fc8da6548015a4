package identities

import "time"

// UnknownName es el placeholder para ids que no resuelven a ninguna identidad.
const UnknownName = "Unknown"

// Slot es un turno ofrecido por un doctor.
type Slot struct {
	DateTime time.Time
	IsBooked bool
}

// Identity es un usuario registrado (paciente, staff, doctor).
// Solo lectura: la administra el servicio de usuarios.
type Identity struct {
	ID   string
	Name string
	Role string

	// Solo doctores.
	AvailableSlots []Slot
}
