package repository

import "context"

// SequenceRepository contador atómico por secuencia (colección "counters").
type SequenceRepository interface {
	// Next incrementa atómicamente el contador (creándolo si no existe) y devuelve el nuevo valor.
	Next(ctx context.Context, sequence string) (int64, error)
	// CodeExists verifica si algún documento de collection ya usa code en field.
	CodeExists(ctx context.Context, collection, field, code string) (bool, error)
}
