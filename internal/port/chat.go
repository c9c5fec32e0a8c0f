package port

import "context"

// ChatProvider answers free-form assistant questions.
type ChatProvider interface {
	Reply(ctx context.Context, message string) (string, error)
}
