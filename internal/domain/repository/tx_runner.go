package repository

import "context"

// TxRunner ejecuta fn dentro de una transacción multi-documento cuando el almacén la soporta.
// Los repositorios usan el ctx recibido por fn para participar de la transacción.
type TxRunner interface {
	Run(ctx context.Context, fn func(ctx context.Context) error) error
	// Transactional indica si Run ofrece atomicidad real; si es false el caller aplica compensaciones.
	Transactional() bool
}
