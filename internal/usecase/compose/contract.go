package compose

import "context"

// Completer is the text-completion capability. May be nil when no backend is
// configured.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}
