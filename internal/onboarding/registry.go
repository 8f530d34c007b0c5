package onboarding

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/loyalty-platform/internal/models"
)

// ErrScopeNotFound — область не существует, истекла или принадлежит другому пользователю.
var ErrScopeNotFound = errors.New("onboarding scope not found")

// MaxScopesPerOwner — сколько областей один пользователь держит одновременно.
// Start сверх лимита вытесняет самую давно использованную область владельца.
const MaxScopesPerOwner = 5

// Snapshot — копия состояния области на момент чтения.
type Snapshot struct {
	ID           string
	Step         Step
	SelectedPlan *models.Plan
}

type scope struct {
	owner    string
	state    State
	lastSeen time.Time
}

// Registry хранит активные области мастера. Область заканчивается явно
// через End или после ttl бездействия.
type Registry struct {
	mu     sync.Mutex
	scopes map[string]*scope
	ttl    time.Duration
	now    func() time.Time
}

// NewRegistry создаёт реестр. ttl <= 0 отключает истечение.
func NewRegistry(ttl time.Duration) *Registry {
	return &Registry{
		scopes: make(map[string]*scope),
		ttl:    ttl,
		now:    time.Now,
	}
}

// Start открывает новую область для owner и возвращает её ID.
func (r *Registry) Start(owner string) string {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.sweepLocked()
	r.evictLocked(owner)
	id := uuid.NewString()
	r.scopes[id] = &scope{owner: owner, lastSeen: r.now()}
	return id
}

// Get возвращает снимок области.
func (r *Registry) Get(id, owner string) (Snapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	sc, err := r.lookupLocked(id, owner)
	if err != nil {
		return Snapshot{}, err
	}
	return snapshot(id, sc), nil
}

// SelectPlan заменяет выбранный тариф области.
func (r *Registry) SelectPlan(id, owner string, p models.Plan) (Snapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	sc, err := r.lookupLocked(id, owner)
	if err != nil {
		return Snapshot{}, err
	}
	sc.state.SetSelectedPlan(p)
	return snapshot(id, sc), nil
}

// ClearPlan сбрасывает выбор тарифа области.
func (r *Registry) ClearPlan(id, owner string) (Snapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	sc, err := r.lookupLocked(id, owner)
	if err != nil {
		return Snapshot{}, err
	}
	sc.state.ClearSelectedPlan()
	return snapshot(id, sc), nil
}

// End закрывает область. Состояние удаляется вместе с ней.
func (r *Registry) End(id, owner string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, err := r.lookupLocked(id, owner); err != nil {
		return err
	}
	delete(r.scopes, id)
	return nil
}

// Len возвращает число живых областей.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.sweepLocked()
	return len(r.scopes)
}

func (r *Registry) lookupLocked(id, owner string) (*scope, error) {
	sc, ok := r.scopes[id]
	if !ok {
		return nil, ErrScopeNotFound
	}
	if r.expired(sc) {
		delete(r.scopes, id)
		return nil, ErrScopeNotFound
	}
	if sc.owner != owner {
		return nil, ErrScopeNotFound
	}
	sc.lastSeen = r.now()
	return sc, nil
}

func (r *Registry) sweepLocked() {
	for id, sc := range r.scopes {
		if r.expired(sc) {
			delete(r.scopes, id)
		}
	}
}

func (r *Registry) evictLocked(owner string) {
	var (
		count  int
		oldest string
		seen   time.Time
	)
	for id, sc := range r.scopes {
		if sc.owner != owner {
			continue
		}
		count++
		if oldest == "" || sc.lastSeen.Before(seen) {
			oldest, seen = id, sc.lastSeen
		}
	}
	if count >= MaxScopesPerOwner {
		delete(r.scopes, oldest)
	}
}

func (r *Registry) expired(sc *scope) bool {
	return r.ttl > 0 && r.now().Sub(sc.lastSeen) > r.ttl
}

func snapshot(id string, sc *scope) Snapshot {
	s := Snapshot{ID: id, Step: sc.state.Step()}
	if p, ok := sc.state.SelectedPlan(); ok {
		s.SelectedPlan = &p
	}
	return s
}
