package inventory

import (
	"context"
	"fmt"

	"github.com/jhoicas/inventory-ledger/internal/domain"
	"github.com/jhoicas/inventory-ledger/internal/domain/entity"
)

// VoucherUseCase arma el comprobante PDF de un documento contabilizado.
type VoucherUseCase struct {
	tx        TxRunner
	generator VoucherGenerator
}

// NewVoucherUseCase construye el caso de uso.
func NewVoucherUseCase(tx TxRunner, generator VoucherGenerator) *VoucherUseCase {
	return &VoucherUseCase{tx: tx, generator: generator}
}

// Voucher devuelve el PDF y el número de documento (para el nombre del archivo).
func (uc *VoucherUseCase) Voucher(ctx context.Context, docID int64) ([]byte, string, error) {
	var (
		doc   *entity.Document
		wh    *entity.Warehouse
		lines []*entity.DocumentLine
	)
	err := uc.tx.RunReadOnly(ctx, func(repos Repos) error {
		var err error
		doc, err = repos.Documents.GetByID(ctx, docID)
		if err != nil {
			return err
		}
		if doc == nil {
			return domain.ErrNotFound
		}
		wh, err = repos.Warehouses.GetByID(ctx, doc.WarehouseID)
		if err != nil {
			return err
		}
		lines, err = repos.Documents.Lines(ctx, docID)
		return err
	})
	if err != nil {
		return nil, "", fmt.Errorf("load voucher data: %w", err)
	}
	if wh == nil {
		wh = &entity.Warehouse{ID: doc.WarehouseID}
	}

	pdf, err := uc.generator.GenerateVoucherPDF(ctx, doc, wh, lines)
	if err != nil {
		return nil, "", fmt.Errorf("generate voucher: %w", err)
	}
	return pdf, doc.DocNumber, nil
}
