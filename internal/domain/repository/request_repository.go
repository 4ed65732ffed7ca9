package repository

import (
	"context"
	"time"

	"github.com/jhoicas/inventory-ledger/internal/domain/entity"
)

// RequestRepository puerto para solicitudes de departamentos.
type RequestRepository interface {
	Create(ctx context.Context, req *entity.Request) error
	GetByID(ctx context.Context, id int64) (*entity.Request, error)
	ListByStatus(ctx context.Context, status entity.RequestStatus) ([]*entity.Request, error)
	// Transition cambia el estado solo si la fila sigue en from; devuelve false si no se aplicó.
	Transition(ctx context.Context, id int64, from, to entity.RequestStatus, by string, at time.Time) (bool, error)
}
