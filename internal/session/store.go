package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/beyondslim/checkout-api/internal/checkout"
	"github.com/beyondslim/checkout-api/internal/domain"
	"github.com/beyondslim/checkout-api/internal/payment"
	"github.com/beyondslim/checkout-api/pkg/errors"
)

// Session is the unit of ownership for one in-progress checkout: the
// collector, the dispatcher and the artifacts they produce are confined to
// it. One logical writer at a time; callers hold the lock across reads and
// mutations of the exported fields.
type Session struct {
	sync.Mutex

	ID         uuid.UUID
	Collector  *checkout.Collector
	Dispatcher *payment.Dispatcher
	Draft      *domain.DraftOrder
	Pricing    *domain.PricingBreakdown

	touchedAt time.Time
}

// Store holds active checkout sessions in memory and sweeps abandoned ones
// after the configured TTL.
type Store struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*Session
	ttl      time.Duration
	logger   *zap.Logger
	stop     chan struct{}
	stopOnce sync.Once
}

// NewStore creates a session store and starts its sweeper.
func NewStore(ttl time.Duration, logger *zap.Logger) *Store {
	st := &Store{
		sessions: make(map[uuid.UUID]*Session),
		ttl:      ttl,
		logger:   logger,
		stop:     make(chan struct{}),
	}
	go st.sweep()
	return st
}

// Open creates a new checkout session around a catalog line item.
func (st *Store) Open(item domain.LineItem, variant checkout.Variant, gateway payment.Gateway) *Session {
	id := uuid.New()
	sess := &Session{
		ID:         id,
		Collector:  checkout.NewCollector(item, variant),
		Dispatcher: payment.NewDispatcher(id.String(), gateway, st.logger),
		touchedAt:  time.Now(),
	}

	st.mu.Lock()
	st.sessions[id] = sess
	st.mu.Unlock()

	st.logger.Info("Checkout session opened", zap.String("session_id", id.String()))
	return sess
}

// Get returns an active session and refreshes its TTL.
func (st *Store) Get(id uuid.UUID) (*Session, error) {
	st.mu.RLock()
	sess, ok := st.sessions[id]
	st.mu.RUnlock()
	if !ok {
		return nil, &errors.ErrNotFound{Resource: "checkout session", ID: id.String()}
	}

	sess.Lock()
	sess.touchedAt = time.Now()
	sess.Unlock()
	return sess, nil
}

// Remove drops a session, typically after its order is finalized.
func (st *Store) Remove(id uuid.UUID) {
	st.mu.Lock()
	delete(st.sessions, id)
	st.mu.Unlock()
}

// Close stops the sweeper.
func (st *Store) Close() {
	st.stopOnce.Do(func() { close(st.stop) })
}

func (st *Store) sweep() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-st.stop:
			return
		case now := <-ticker.C:
			st.mu.Lock()
			for id, sess := range st.sessions {
				sess.Lock()
				expired := now.Sub(sess.touchedAt) > st.ttl
				sess.Unlock()
				if expired {
					delete(st.sessions, id)
					st.logger.Info("Abandoned checkout session swept",
						zap.String("session_id", id.String()))
				}
			}
			st.mu.Unlock()
		}
	}
}
