package completion

import (
	"context"
	"errors"
)

// ErrUpstream envuelve cualquier falla del servicio de generación.
var ErrUpstream = errors.New("generation upstream error")

// Generator envía un prompt al servicio externo y devuelve el texto generado.
// Un texto vacío no es error: el caller decide el fallback.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
