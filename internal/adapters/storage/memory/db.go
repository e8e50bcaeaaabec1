package memory

import (
	"context"
	"sync"
	"time"

	"gestor-visitas/internal/domain/access"
	"gestor-visitas/internal/domain/reasons"
	"gestor-visitas/internal/domain/traces"
	"gestor-visitas/internal/domain/users"
	"gestor-visitas/internal/domain/visits"
)

// DB es el almacenamiento in-memory compartido por todos los repos (modo dev y tests).
// Las escrituras dentro de RunInTx registran su inversa; si fn falla se deshacen.
type DB struct {
	mu   sync.RWMutex
	txMu sync.Mutex

	users   map[int64]users.User
	reasons map[int64]reasons.Reason
	visits  map[int64]visits.Visit
	trail   []traces.Entry

	nextVisitID int64
	nextTraceID int64
}

func NewDB() *DB {
	return &DB{
		users:   make(map[int64]users.User),
		reasons: make(map[int64]reasons.Reason),
		visits:  make(map[int64]visits.Visit),
	}
}

type undoKey struct{}

type undoLog struct {
	ops []func()
}

// RunInTx serializa las transacciones. Implementa visits.TxRunner.
func (db *DB) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	// Anidada: reusa la transacción externa.
	if _, ok := ctx.Value(undoKey{}).(*undoLog); ok {
		return fn(ctx)
	}

	db.txMu.Lock()
	defer db.txMu.Unlock()

	log := &undoLog{}
	if err := fn(context.WithValue(ctx, undoKey{}, log)); err != nil {
		db.mu.Lock()
		for i := len(log.ops) - 1; i >= 0; i-- {
			log.ops[i]()
		}
		db.mu.Unlock()
		return err
	}
	return nil
}

// onRollback registra op si ctx está en una transacción. Llamar con db.mu tomado.
func (db *DB) onRollback(ctx context.Context, op func()) {
	if log, ok := ctx.Value(undoKey{}).(*undoLog); ok {
		log.ops = append(log.ops, op)
	}
}

// AddUser y AddReason cargan datos de referencia (se provisionan fuera del sistema).
func (db *DB) AddUser(u users.User) {
	db.mu.Lock()
	defer db.mu.Unlock()
	u.Email = users.NormalizeEmail(u.Email)
	db.users[u.ID] = u
}

func (db *DB) AddReason(m reasons.Reason) {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.reasons[m.ID] = m
}

// Seed carga usuarios y motivos de ejemplo para levantar el servicio sin Postgres.
func (db *DB) Seed() {
	created := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	for _, u := range []users.User{
		{ID: 1, Nombre: "Laura Gómez", Email: "jefe@comfacauca.com", Rol: access.RoleJefe, Area: "Comercial"},
		{ID: 7, Nombre: "Carlos Muñoz", Email: "carlos.munoz@comfacauca.com", Rol: access.RoleAsesor, Area: "Comercial"},
		{ID: 9, Nombre: "Ana Ruiz", Email: "ana.ruiz@comfacauca.com", Rol: access.RoleAsesor, Area: "Comercial"},
	} {
		u.CreatedAt = created
		db.AddUser(u)
	}
	for _, m := range []reasons.Reason{
		{ID: 1, Nombre: "Cliente no disponible", Descripcion: "El cliente no atendió la visita"},
		{ID: 2, Nombre: "Reprogramación solicitada", Descripcion: "El cliente pidió otra fecha"},
		{ID: 3, Nombre: "Asesor no disponible", Descripcion: "El asesor no puede asistir"},
		{ID: 4, Nombre: "Otro", Descripcion: "Otro motivo"},
	} {
		db.AddReason(m)
	}
}
