package seed

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/unicode/norm"

	"github.com/jhoicas/inventory-ledger/internal/domain/entity"
)

//go:embed dataset.json
var embeddedDataset []byte

// Dataset catálogo canónico de la carga inicial.
type Dataset struct {
	Departments []struct {
		Code string `json:"code"`
		Name string `json:"name"`
	} `json:"departments"`
	Divisions []struct {
		Code           string `json:"code"`
		DepartmentCode string `json:"department_code"`
		Name           string `json:"name"`
	} `json:"divisions"`
	Units []struct {
		Code         string `json:"code"`
		DivisionCode string `json:"division_code"`
		Name         string `json:"name"`
	} `json:"units"`
	Suppliers []struct {
		Code  string  `json:"code"`
		Name  string  `json:"name"`
		Phone *string `json:"phone"`
	} `json:"suppliers"`
	Warehouses []struct {
		Code       string  `json:"code"`
		Name       string  `json:"name"`
		Address    *string `json:"address"`
		ParentCode string  `json:"parent_code"`
		Active     bool    `json:"active"`
	} `json:"warehouses"`
	Items []struct {
		Code     string           `json:"code"`
		Name     string           `json:"name"`
		Unit     string           `json:"unit"`
		Price    *decimal.Decimal `json:"price"`
		Category *string          `json:"category"`
		MinStock *decimal.Decimal `json:"min_stock"`
	} `json:"items"`
	// StockedWarehouses almacenes que reciben saldos iniciales.
	StockedWarehouses []string `json:"stocked_warehouses"`
}

// LoadDataset lee el dataset de path, o el embebido si path está vacío.
func LoadDataset(path string) (*Dataset, error) {
	raw := embeddedDataset
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read seed file: %w", err)
		}
		raw = b
	}
	return ParseDataset(raw)
}

// ParseDataset decodifica y valida un dataset.
func ParseDataset(raw []byte) (*Dataset, error) {
	var ds Dataset
	if err := json.Unmarshal(raw, &ds); err != nil {
		return nil, fmt.Errorf("decode seed dataset: %w", err)
	}
	if err := ds.validate(); err != nil {
		return nil, err
	}
	return &ds, nil
}

func (ds *Dataset) validate() error {
	seen := make(map[string]struct{}, len(ds.Items))
	for i, it := range ds.Items {
		if strings.TrimSpace(it.Code) == "" || strings.TrimSpace(it.Name) == "" {
			return fmt.Errorf("seed dataset: items[%d] sin código o nombre", i)
		}
		if _, dup := seen[it.Code]; dup {
			return fmt.Errorf("seed dataset: código de artículo repetido %s", it.Code)
		}
		seen[it.Code] = struct{}{}
	}
	whs := make(map[string]struct{}, len(ds.Warehouses))
	for _, w := range ds.Warehouses {
		whs[w.Code] = struct{}{}
	}
	for _, code := range ds.StockedWarehouses {
		if _, ok := whs[code]; !ok {
			return fmt.Errorf("seed dataset: almacén con saldo %s no está en warehouses", code)
		}
	}
	return nil
}

// Catalog convierte el dataset en entidades; los textos se normalizan a NFC
// para que búsquedas y orden no dependan de cómo se tecleó el árabe.
func (ds *Dataset) Catalog() *entity.Catalog {
	c := &entity.Catalog{}
	for _, d := range ds.Departments {
		c.Departments = append(c.Departments, entity.Department{Code: d.Code, Name: nfc(d.Name)})
	}
	for _, d := range ds.Divisions {
		c.Divisions = append(c.Divisions, entity.CatalogDivision{
			Division:       entity.Division{Code: d.Code, Name: nfc(d.Name)},
			DepartmentCode: d.DepartmentCode,
		})
	}
	for _, u := range ds.Units {
		c.Units = append(c.Units, entity.CatalogUnit{
			Unit:         entity.Unit{Code: u.Code, Name: nfc(u.Name)},
			DivisionCode: u.DivisionCode,
		})
	}
	for _, s := range ds.Suppliers {
		c.Suppliers = append(c.Suppliers, entity.Supplier{Code: s.Code, Name: nfc(s.Name), Phone: s.Phone})
	}
	for _, w := range ds.Warehouses {
		c.Warehouses = append(c.Warehouses, entity.CatalogWarehouse{
			Warehouse:  entity.Warehouse{Code: w.Code, Name: nfc(w.Name), Address: nfcPtr(w.Address), IsActive: w.Active},
			ParentCode: w.ParentCode,
		})
	}
	for _, it := range ds.Items {
		c.Items = append(c.Items, entity.Item{
			Code:     it.Code,
			Name:     nfc(it.Name),
			Unit:     nfc(it.Unit),
			Price:    it.Price,
			Category: nfcPtr(it.Category),
			MinStock: it.MinStock,
		})
	}
	return c
}

func nfc(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

func nfcPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := nfc(*s)
	return &v
}
