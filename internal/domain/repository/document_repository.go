package repository

import (
	"context"

	"github.com/jhoicas/inventory-ledger/internal/domain/entity"
)

// DocumentRepository define el puerto de persistencia para cabeceras de documento.
// No hay Update ni Delete: los documentos son inmutables.
type DocumentRepository interface {
	Create(ctx context.Context, doc *entity.Document) error
	GetByID(ctx context.Context, id int64) (*entity.Document, error)
	Lines(ctx context.Context, docID int64) ([]*entity.DocumentLine, error)
}
