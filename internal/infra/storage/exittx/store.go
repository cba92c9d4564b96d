package exittx

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ParkingDesk/internal/domain"
)

type entry struct {
	sem     chan struct{} // Блокировка транзакции, емкость 1
	tx      *domain.ExitTransaction
	touched time.Time
}

// Store хранит транзакции выезда в памяти.
// Операции над одной транзакцией выполняются строго по очереди
type Store struct {
	mu    sync.Mutex
	items map[string]*entry
	ttl   time.Duration
	now   func() time.Time
}

// NewStore создает хранилище. Транзакции, не менявшиеся дольше ttl, удаляет Sweep
func NewStore(ttl time.Duration) *Store {
	return &Store{
		items: make(map[string]*entry),
		ttl:   ttl,
		now:   time.Now,
	}
}

// Create создает транзакцию в состоянии SEARCHING
func (s *Store) Create() *domain.ExitTransaction {
	now := s.now()
	tx := &domain.ExitTransaction{
		ID:        uuid.NewString(),
		State:     domain.ExitSearching,
		CreatedAt: now,
		UpdatedAt: now,
	}

	s.mu.Lock()
	s.items[tx.ID] = &entry{
		sem:     make(chan struct{}, 1),
		tx:      tx,
		touched: now,
	}
	s.mu.Unlock()

	return tx.Clone()
}

// Get возвращает снимок транзакции
func (s *Store) Get(id string) (*domain.ExitTransaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.items[id]
	if !ok {
		return nil, ErrNotFound
	}
	return e.tx.Clone(), nil
}

// Update захватывает транзакцию и вызывает fn с ее копией.
// Если fn вернула nil, копия сохраняется. Параллельные вызовы для одного id ждут друг друга
func (s *Store) Update(ctx context.Context, id string, fn func(tx *domain.ExitTransaction) error) (*domain.ExitTransaction, error) {
	s.mu.Lock()
	e, ok := s.items[id]
	s.mu.Unlock()
	if !ok {
		return nil, ErrNotFound
	}

	select {
	case e.sem <- struct{}{}:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	defer func() { <-e.sem }()

	s.mu.Lock()
	current, ok := s.items[id]
	if !ok || current != e {
		s.mu.Unlock()
		return nil, ErrNotFound
	}
	working := e.tx.Clone()
	s.mu.Unlock()

	if err := fn(working); err != nil {
		return nil, err
	}

	now := s.now()
	working.UpdatedAt = now

	s.mu.Lock()
	e.tx = working
	e.touched = now
	s.mu.Unlock()

	return working.Clone(), nil
}

// Delete удаляет транзакцию
func (s *Store) Delete(id string) {
	s.mu.Lock()
	delete(s.items, id)
	s.mu.Unlock()
}

// Sweep удаляет транзакции, которые не менялись дольше ttl и сейчас не заняты.
// Возвращает число удаленных
func (s *Store) Sweep() int {
	if s.ttl <= 0 {
		return 0
	}
	deadline := s.now().Add(-s.ttl)

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, e := range s.items {
		if e.touched.After(deadline) {
			continue
		}
		select {
		case e.sem <- struct{}{}:
			delete(s.items, id)
			<-e.sem
			removed++
		default:
		}
	}
	return removed
}

// Len возвращает число транзакций в памяти
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}
