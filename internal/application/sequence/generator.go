// Package sequence genera los códigos internos legibles (FLT-, FAC-, GES-) a partir de contadores atómicos.
package sequence

import (
	"context"
	"fmt"

	"github.com/jhoicas/fletes-api/internal/domain"
	"github.com/jhoicas/fletes-api/internal/domain/repository"
)

// Spec describe una secuencia nombrada y dónde vive el código que genera.
type Spec struct {
	Name       string // _id del documento en "counters"
	Prefix     string
	Pad        int
	Collection string // colección donde se verifica unicidad
	Field      string
}

// Secuencias del sistema.
var (
	Fletes    = Spec{Name: "fletes", Prefix: "FLT-", Pad: 10, Collection: "fletes", Field: "codigo_flete"}
	Facturas  = Spec{Name: "facturacion", Prefix: "FAC-", Pad: 10, Collection: "facturacion", Field: "codigo_factura"}
	Gestiones = Spec{Name: "facturacion_gestion", Prefix: "GES-", Pad: 10, Collection: "facturacion_gestion", Field: "codigo_gestion"}
)

// DuplicateCodeError el código generado ya existe en la colección destino
// (contador desalineado, p. ej. tras una restauración de datos).
type DuplicateCodeError struct {
	Code       string
	Collection string
}

func (e *DuplicateCodeError) Error() string {
	return fmt.Sprintf("código %s ya existe en %s", e.Code, e.Collection)
}

// Is permite errors.Is(err, domain.ErrDuplicate).
func (e *DuplicateCodeError) Is(target error) bool { return target == domain.ErrDuplicate }

// Generator emite códigos únicos y monótonos por secuencia.
type Generator struct {
	repo repository.SequenceRepository
}

// NewGenerator construye el generador.
func NewGenerator(repo repository.SequenceRepository) *Generator {
	return &Generator{repo: repo}
}

// Next incrementa el contador de s y devuelve el código formateado.
// Dos llamadas concurrentes nunca obtienen el mismo valor; los huecos son aceptables.
func (g *Generator) Next(ctx context.Context, s Spec) (string, error) {
	n, err := g.repo.Next(ctx, s.Name)
	if err != nil {
		return "", domain.Upstream("sequence: incrementar "+s.Name, err)
	}
	code := Format(s.Prefix, n, s.Pad)
	exists, err := g.repo.CodeExists(ctx, s.Collection, s.Field, code)
	if err != nil {
		return "", domain.Upstream("sequence: verificar "+code, err)
	}
	if exists {
		return "", &DuplicateCodeError{Code: code, Collection: s.Collection}
	}
	return code, nil
}

// Format antepone prefix al número rellenado con ceros hasta pad dígitos.
func Format(prefix string, n int64, pad int) string {
	return fmt.Sprintf("%s%0*d", prefix, pad, n)
}
