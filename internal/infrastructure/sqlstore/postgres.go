package sqlstore

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"

	"github.com/jhoicas/inventory-ledger/pkg/config"
)

// openPostgres abre PostgreSQL vía pgx/stdlib (database/sql) para compartir los repositorios sqlx.
// Si está definido DATABASE_URL, se usa y se fuerza IPv4 cuando sea posible (Docker suele no tener IPv6).
func openPostgres(ctx context.Context, cfg config.DBConfig) (*sqlx.DB, error) {
	hosts := newHostResolver()
	var dsn string
	if cfg.DatabaseURL != "" {
		dsn = hosts.URL(cfg.DatabaseURL)
	} else {
		dsnCfg := cfg
		if ipv4, err := hosts.IPv4(cfg.Host); err == nil {
			dsnCfg.Host = ipv4
		}
		dsn = dsnCfg.DSN()
	}

	connConfig, err := pgx.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse DSN: %w", err)
	}
	// Supabase puede resolver solo AAAA: el dial también va por IPv4.
	connConfig.DialFunc = hosts.Dial

	db := sqlx.NewDb(stdlib.OpenDB(*connConfig), postgresDialect.name)
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(time.Hour)
	db.SetConnMaxIdleTime(30 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping DB: %w", err)
	}
	return db, nil
}

// ipv4Lookup devuelve las direcciones IPv4 de host.
type ipv4Lookup func(ctx context.Context, host string) ([]net.IP, error)

// hostResolver traduce hostnames a IPv4 probando cada lookup en orden.
type hostResolver struct {
	lookups []ipv4Lookup
	timeout time.Duration
}

// newHostResolver usa el resolver del sistema y, si falla, uno externo (8.8.8.8)
// por si el DNS del contenedor solo devuelve IPv6.
func newHostResolver() *hostResolver {
	external := &net.Resolver{
		PreferGo: true,
		Dial: func(ctx context.Context, _, _ string) (net.Conn, error) {
			var d net.Dialer
			return d.DialContext(ctx, "udp", "8.8.8.8:53")
		},
	}
	return &hostResolver{
		lookups: []ipv4Lookup{lookupWith(net.DefaultResolver), lookupWith(external)},
		timeout: 5 * time.Second,
	}
}

func lookupWith(r *net.Resolver) ipv4Lookup {
	return func(ctx context.Context, host string) ([]net.IP, error) {
		return r.LookupIP(ctx, "ip4", host)
	}
}

// IPv4 dirección IPv4 de host. Un literal IPv4 se devuelve tal cual; un literal IPv6 es error.
func (r *hostResolver) IPv4(host string) (string, error) {
	if ip := net.ParseIP(host); ip != nil {
		if v4 := ip.To4(); v4 != nil {
			return v4.String(), nil
		}
		return "", fmt.Errorf("host %s: dirección IPv6", host)
	}
	lastErr := fmt.Errorf("host %s: sin IPv4", host)
	for _, lookup := range r.lookups {
		ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
		ips, err := lookup(ctx, host)
		cancel()
		if err != nil {
			lastErr = err
			continue
		}
		for _, ip := range ips {
			if v4 := ip.To4(); v4 != nil {
				return v4.String(), nil
			}
		}
	}
	return "", lastErr
}

// URL reemplaza el host de la URL por su IPv4 (puerto 5432 si no trae uno).
// Si la URL no se puede leer o el host no resuelve, la devuelve sin cambios.
func (r *hostResolver) URL(databaseURL string) string {
	u, err := url.Parse(databaseURL)
	if err != nil || u.Hostname() == "" {
		return databaseURL
	}
	port := u.Port()
	if port == "" {
		port = "5432"
	}
	ipv4, err := r.IPv4(u.Hostname())
	if err != nil {
		return databaseURL
	}
	u.Host = net.JoinHostPort(ipv4, port)
	return u.String()
}

// Dial conecta por tcp4 cuando addr resuelve a IPv4; si no, hace el dial normal.
func (r *hostResolver) Dial(ctx context.Context, network, addr string) (net.Conn, error) {
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return nil, err
	}
	var d net.Dialer
	ipv4, err := r.IPv4(host)
	if err != nil {
		return d.DialContext(ctx, network, addr)
	}
	return d.DialContext(ctx, "tcp4", net.JoinHostPort(ipv4, port))
}
