package inventory

import (
	"context"
	"sync"
	"time"
)

// Table nombre de una tabla observable del almacén.
type Table string

const (
	TableItems      Table = "items"
	TableWarehouses Table = "warehouses"
	TableInventory  Table = "inventory"
	TableDocuments  Table = "documents"
	TableMovements  Table = "movements"
	TableRequests   Table = "requests"
	TableCustody    Table = "custody"
)

// Change aviso emitido después de un commit.
type Change struct {
	Tables     []Table   `json:"tables"`
	DocumentID int64     `json:"document_id,omitempty"`
	RequestID  int64     `json:"request_id,omitempty"`
	At         time.Time `json:"at"`
}

// Touches indica si el cambio afecta alguna de las tablas dadas (vacío = todas).
func (c Change) Touches(tables map[Table]struct{}) bool {
	if len(tables) == 0 {
		return true
	}
	for _, t := range c.Tables {
		if _, ok := tables[t]; ok {
			return true
		}
	}
	return false
}

// ChangeNotifier recibe los cambios confirmados.
type ChangeNotifier interface {
	Notify(ctx context.Context, change Change)
}

type subscription struct {
	tables map[Table]struct{}
	fn     func(Change)
}

// ChangeBus registro de observadores por conjunto de tablas.
// Los callbacks se invocan de forma síncrona, fuera de la transacción y sin el lock tomado;
// deben ser rápidos y no bloquear.
type ChangeBus struct {
	mu   sync.RWMutex
	next uint64
	subs map[uint64]subscription
}

var _ ChangeNotifier = (*ChangeBus)(nil)

// NewChangeBus construye el bus vacío.
func NewChangeBus() *ChangeBus {
	return &ChangeBus{subs: make(map[uint64]subscription)}
}

// Subscribe registra fn para los cambios que toquen alguna de las tablas (nil = todas).
// Devuelve la función para cancelar la suscripción; es segura de llamar varias veces.
func (b *ChangeBus) Subscribe(tables []Table, fn func(Change)) (cancel func()) {
	set := make(map[Table]struct{}, len(tables))
	for _, t := range tables {
		set[t] = struct{}{}
	}

	b.mu.Lock()
	b.next++
	id := b.next
	b.subs[id] = subscription{tables: set, fn: fn}
	b.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.subs, id)
			b.mu.Unlock()
		})
	}
}

// Notify entrega el cambio a los suscriptores interesados.
func (b *ChangeBus) Notify(_ context.Context, change Change) {
	b.mu.RLock()
	targets := make([]func(Change), 0, len(b.subs))
	for _, s := range b.subs {
		if change.Touches(s.tables) {
			targets = append(targets, s.fn)
		}
	}
	b.mu.RUnlock()

	for _, fn := range targets {
		fn(change)
	}
}

// Subscribers cantidad de suscripciones activas.
func (b *ChangeBus) Subscribers() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}
