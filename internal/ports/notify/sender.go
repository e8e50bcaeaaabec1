package notify

import "context"

// CodeSender entrega un código de un solo uso al correo indicado.
type CodeSender interface {
	SendCode(ctx context.Context, email, code string) error
}
