package entity

// Warehouse representa un almacén. Puede tener almacenes hijos (árbol solo para agrupación visual;
// los saldos no se agregan a través de la jerarquía).
type Warehouse struct {
	ID       int64   `db:"id"`
	Code     string  `db:"code"`
	Name     string  `db:"name"`
	Address  *string `db:"address"`
	IsActive bool    `db:"is_active"`
	ParentID *int64  `db:"parent_id"`

	Children []*Warehouse `db:"-"`
}

// BuildWarehouseTree arma el árbol a partir de una lista plana conservando el orden de entrada.
// Los nodos cuyo padre no está en la lista quedan como raíces.
func BuildWarehouseTree(flat []*Warehouse) []*Warehouse {
	byID := make(map[int64]*Warehouse, len(flat))
	for _, w := range flat {
		w.Children = nil
		byID[w.ID] = w
	}
	roots := make([]*Warehouse, 0)
	for _, w := range flat {
		if w.ParentID != nil {
			if parent, ok := byID[*w.ParentID]; ok && parent != w {
				parent.Children = append(parent.Children, w)
				continue
			}
		}
		roots = append(roots, w)
	}
	return roots
}
