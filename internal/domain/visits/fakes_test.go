package visits

import (
	"context"
	"sort"
	"sync"
	"time"

	"gestor-visitas/internal/domain/traces"
	"gestor-visitas/internal/platform/sentinel"
)

// fakeStore implementa Repository, traces.Repository y TxRunner.
// RunInTx serializa y restaura un snapshot si fn falla.
type fakeStore struct {
	mu   sync.Mutex
	txMu sync.Mutex

	visits map[int64]Visit
	trail  []traces.Entry
	nextID int64

	failAppend error
}

func newFakeStore() *fakeStore {
	return &fakeStore{visits: map[int64]Visit{}}
}

func (s *fakeStore) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.Lock()
	snapVisits := make(map[int64]Visit, len(s.visits))
	for k, v := range s.visits {
		snapVisits[k] = v
	}
	snapTrail := append([]traces.Entry(nil), s.trail...)
	snapID := s.nextID
	s.mu.Unlock()

	if err := fn(ctx); err != nil {
		s.mu.Lock()
		s.visits, s.trail, s.nextID = snapVisits, snapTrail, snapID
		s.mu.Unlock()
		return err
	}
	return nil
}

func (s *fakeStore) Create(ctx context.Context, v Visit) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	v.ID = s.nextID
	s.visits[v.ID] = v
	return v.ID, nil
}

func (s *fakeStore) GetByID(ctx context.Context, id int64) (Visit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.visits[id]
	if !ok {
		return Visit{}, sentinel.ErrNotFound
	}
	return v, nil
}

func (s *fakeStore) List(ctx context.Context, f ListFilter) ([]Visit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Visit, 0)
	for _, v := range s.visits {
		if f.AsesorID != nil && v.AsesorID != *f.AsesorID {
			continue
		}
		if f.Estado != nil && v.Estado != *f.Estado {
			continue
		}
		if f.Fecha != "" && v.FechaProgramada.UTC().Format("2006-01-02") != f.Fecha {
			continue
		}
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FechaProgramada.After(out[j].FechaProgramada) })
	return out, nil
}

func (s *fakeStore) Update(ctx context.Context, id int64, fields UpdateFields, expected State) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.visits[id]
	if !ok {
		return sentinel.ErrNotFound
	}
	if v.Estado != expected {
		return sentinel.ErrConflict
	}
	s.visits[id] = fields.Apply(v)
	return nil
}

func (s *fakeStore) Append(ctx context.Context, e traces.Entry) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failAppend != nil {
		return 0, s.failAppend
	}
	e.ID = int64(len(s.trail) + 1)
	s.trail = append(s.trail, e)
	return e.ID, nil
}

func (s *fakeStore) ListByVisit(ctx context.Context, visitaID int64) ([]traces.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]traces.Entry, 0)
	for _, e := range s.trail {
		if e.VisitaID == visitaID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (s *fakeStore) traceCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.trail)
}

type fakeUsers map[int64]bool

func (u fakeUsers) IsAsesor(ctx context.Context, id int64) (bool, error) {
	return u[id], nil
}

type fakeReasons map[int64]bool

func (r fakeReasons) Exists(ctx context.Context, id int64) (bool, error) {
	return r[id], nil
}

type countingObserver struct {
	mu     sync.Mutex
	counts map[string]int
}

func (o *countingObserver) ObserveTransition(action, result string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.counts == nil {
		o.counts = map[string]int{}
	}
	o.counts[action+"/"+result]++
}

// steppingClock avanza un minuto por llamada.
type steppingClock struct {
	mu  sync.Mutex
	cur time.Time
}

func (c *steppingClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cur = c.cur.Add(time.Minute)
	return c.cur
}
