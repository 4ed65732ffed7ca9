package inventory

import (
	"context"
	"errors"
)

// ErrNoChangeBus consulta en vivo sin ChangeBus configurado.
var ErrNoChangeBus = errors.New("consulta en vivo sin bus de cambios")

// Result valor (o error) de una evaluación de consulta en vivo.
type Result[T any] struct {
	Value T
	Err   error
}

// Live evalúa query de inmediato y de nuevo después de cada cambio confirmado que toque tables.
// Los avisos que llegan mientras una evaluación está en curso se agrupan en una sola re-evaluación.
// El canal se cierra cuando ctx termina. Con bus nil entrega un único ErrNoChangeBus y se cierra.
func Live[T any](ctx context.Context, bus *ChangeBus, tables []Table, query func(context.Context) (T, error)) <-chan Result[T] {
	out := make(chan Result[T], 1)
	if bus == nil {
		out <- Result[T]{Err: ErrNoChangeBus}
		close(out)
		return out
	}
	dirty := make(chan struct{}, 1)

	// Suscribirse antes de la primera evaluación para no perder cambios intermedios.
	cancel := bus.Subscribe(tables, func(Change) {
		select {
		case dirty <- struct{}{}:
		default:
		}
	})

	go func() {
		defer close(out)
		defer cancel()

		eval := func() bool {
			v, err := query(ctx)
			select {
			case out <- Result[T]{Value: v, Err: err}:
				return true
			case <-ctx.Done():
				return false
			}
		}

		if !eval() {
			return
		}
		for {
			select {
			case <-ctx.Done():
				return
			case <-dirty:
				if !eval() {
					return
				}
			}
		}
	}()

	return out
}
