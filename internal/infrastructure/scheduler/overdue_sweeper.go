// Package scheduler ejecuta tareas periódicas de cobranza.
package scheduler

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/jhoicas/fletes-api/internal/application/dto"
)

// LockKey clave del lock del barrido de vencidos.
const LockKey = "fletes:overdue-sweep"

// ErrLockNotObtained otra réplica ya ejecuta el barrido.
var ErrLockNotObtained = errors.New("lock no obtenido")

// Lock lock adquirido.
type Lock interface {
	Release(ctx context.Context) error
}

// Locker lock distribuido entre réplicas.
type Locker interface {
	Obtain(ctx context.Context, key string, ttl time.Duration) (Lock, error)
}

// OverdueMarker caso de uso que marca los registros vencidos.
type OverdueMarker interface {
	MarkOverdueBatch(ctx context.Context) (*dto.MarcarVencidasResponse, error)
}

// OverdueSweeper corre MarkOverdueBatch cada interval. Con locker nil corre sin coordinación.
type OverdueSweeper struct {
	marker   OverdueMarker
	locker   Locker
	interval time.Duration
}

func NewOverdueSweeper(marker OverdueMarker, locker Locker, interval time.Duration) *OverdueSweeper {
	return &OverdueSweeper{marker: marker, locker: locker, interval: interval}
}

// Run ejecuta un barrido inmediato y luego uno por tick, hasta que ctx se cancele.
func (s *OverdueSweeper) Run(ctx context.Context) {
	if s.interval <= 0 {
		return
	}
	log.Info().Dur("interval", s.interval).Bool("lock", s.locker != nil).Msg("barrido de vencidos iniciado")
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		if _, err := s.RunOnce(ctx); err != nil && ctx.Err() == nil {
			log.Error().Err(err).Msg("barrido de vencidos falló")
		}
		select {
		case <-ctx.Done():
			log.Info().Msg("barrido de vencidos detenido")
			return
		case <-ticker.C:
		}
	}
}

// RunOnce un barrido. Devuelve false si el lock lo tiene otra réplica.
// El TTL del lock es el intervalo: un proceso caído no bloquea más de un tick.
func (s *OverdueSweeper) RunOnce(ctx context.Context) (bool, error) {
	if s.locker != nil {
		lock, err := s.locker.Obtain(ctx, LockKey, s.interval)
		if errors.Is(err, ErrLockNotObtained) {
			log.Debug().Msg("barrido de vencidos en otra réplica; se omite")
			return false, nil
		}
		if err != nil {
			return false, err
		}
		defer func() {
			if err := lock.Release(context.WithoutCancel(ctx)); err != nil {
				log.Warn().Err(err).Msg("liberar lock de barrido")
			}
		}()
	}

	res, err := s.marker.MarkOverdueBatch(ctx)
	if err != nil {
		return true, err
	}
	if res.Actualizadas > 0 {
		log.Info().Int("actualizadas", res.Actualizadas).Msg("gestiones marcadas como vencidas")
	}
	return true, nil
}
