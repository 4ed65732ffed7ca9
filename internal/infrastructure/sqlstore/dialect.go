package sqlstore

import (
	"database/sql"
	"strings"
)

// dialect diferencias entre motores; el SQL de los repositorios es común y usa ? + Rebind.
type dialect struct {
	name       string // nombre del driver para sqlx (define el estilo de placeholders)
	forUpdate  string // sufijo de bloqueo de fila en lecturas dentro de transacción
	readOnly   *sql.TxOptions
	ddlReplace *strings.Replacer
}

var sqliteDialect = &dialect{
	name: "sqlite",
	// SQLite serializa escritores con una sola conexión; no hay bloqueo de fila.
	forUpdate: "",
	readOnly:  nil,
	ddlReplace: strings.NewReplacer(
		"{{pk}}", "INTEGER PRIMARY KEY AUTOINCREMENT",
		"{{ts}}", "DATETIME",
		"{{json}}", "TEXT",
	),
}

var postgresDialect = &dialect{
	name:      "pgx",
	forUpdate: " FOR UPDATE",
	readOnly:  &sql.TxOptions{ReadOnly: true, Isolation: sql.LevelRepeatableRead},
	ddlReplace: strings.NewReplacer(
		"{{pk}}", "BIGSERIAL PRIMARY KEY",
		"{{ts}}", "TIMESTAMPTZ",
		"{{json}}", "JSONB",
	),
}

func (d *dialect) ddl(stmt string) string {
	return d.ddlReplace.Replace(stmt)
}
