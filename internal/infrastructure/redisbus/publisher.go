// Package redisbus publica los cambios confirmados del almacén en un canal Redis
// para que otros procesos (pantallas, reportes) refresquen sus vistas.
package redisbus

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/inventory-ledger/internal/application/inventory"
	"github.com/jhoicas/inventory-ledger/pkg/config"
	"github.com/jhoicas/inventory-ledger/pkg/logger"
)

// DefaultChannel canal usado cuando la configuración no define uno.
const DefaultChannel = "inventory:changes"

const (
	queueSize      = 256
	publishTimeout = 2 * time.Second
)

// Publisher implementa inventory.ChangeNotifier. Notify nunca bloquea al que contabiliza:
// encola el cambio y una goroutine lo publica. Si la cola está llena el cambio se descarta.
type Publisher struct {
	client  *redis.Client
	channel string
	log     *logger.Logger

	queue     chan inventory.Change
	done      chan struct{}
	closeOnce sync.Once
	mu        sync.RWMutex
	closed    bool
}

var _ inventory.ChangeNotifier = (*Publisher)(nil)

// New crea el cliente y arranca el worker de publicación. No verifica la conexión (ver Ping).
func New(cfg config.RedisConfig, log *logger.Logger) *Publisher {
	client := redis.NewClient(&redis.Options{
		Addr:        cfg.Addr,
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: publishTimeout,
		MaxRetries:  1,
	})
	return NewWithClient(client, cfg.Channel, log)
}

// NewWithClient usa un cliente ya construido.
func NewWithClient(client *redis.Client, channel string, log *logger.Logger) *Publisher {
	if channel == "" {
		channel = DefaultChannel
	}
	if log == nil {
		log = logger.Nop()
	}
	p := &Publisher{
		client:  client,
		channel: channel,
		log:     log.Component("redisbus"),
		queue:   make(chan inventory.Change, queueSize),
		done:    make(chan struct{}),
	}
	go p.run()
	return p
}

// Channel nombre del canal de publicación.
func (p *Publisher) Channel() string { return p.channel }

// Ping verifica la conexión con Redis.
func (p *Publisher) Ping(ctx context.Context) error {
	if err := p.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping: %w", err)
	}
	return nil
}

// Notify encola el cambio para publicarlo.
func (p *Publisher) Notify(_ context.Context, change inventory.Change) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return
	}
	if change.At.IsZero() {
		change.At = time.Now().UTC()
	}
	select {
	case p.queue <- change:
	default:
		p.log.Warn().Strs("tables", tableNames(change.Tables)).Msg("cola de publicación llena, cambio descartado")
	}
}

// Close publica lo pendiente, detiene el worker y cierra el cliente.
func (p *Publisher) Close() error {
	var err error
	p.closeOnce.Do(func() {
		p.mu.Lock()
		p.closed = true
		close(p.queue)
		p.mu.Unlock()
		<-p.done
		err = p.client.Close()
	})
	return err
}

func (p *Publisher) run() {
	defer close(p.done)
	for change := range p.queue {
		if err := p.publish(change); err != nil {
			p.log.Warn().Err(err).Str("channel", p.channel).Msg("no se pudo publicar el cambio")
		}
	}
}

func (p *Publisher) publish(change inventory.Change) error {
	payload, err := json.Marshal(change)
	if err != nil {
		return fmt.Errorf("marshal change: %w", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()
	if err := p.client.Publish(ctx, p.channel, payload).Err(); err != nil {
		return fmt.Errorf("publish %s: %w", p.channel, err)
	}
	return nil
}

// Subscribe escucha el canal y entrega cada cambio decodificado a fn hasta que ctx termine.
// Lo usa quien consume los avisos desde otro proceso.
func Subscribe(ctx context.Context, client *redis.Client, channel string, fn func(inventory.Change)) error {
	if channel == "" {
		channel = DefaultChannel
	}
	sub := client.Subscribe(ctx, channel)
	defer sub.Close()
	if _, err := sub.Receive(ctx); err != nil {
		return fmt.Errorf("subscribe %s: %w", channel, err)
	}
	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			var change inventory.Change
			if err := json.Unmarshal([]byte(msg.Payload), &change); err != nil {
				continue
			}
			fn(change)
		}
	}
}

func tableNames(tables []inventory.Table) []string {
	out := make([]string, len(tables))
	for i, t := range tables {
		out[i] = string(t)
	}
	return out
}
