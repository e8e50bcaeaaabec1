package reasons

// Reason es un motivo de cancelación (dato de referencia estático).
type Reason struct {
	ID          int64
	Nombre      string
	Descripcion string
}
