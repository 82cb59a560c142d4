package ports

import "context"

// MessageConsumer — фоновый приём событий витрины.
// Run блокируется до отмены ctx или фатальной ошибки источника; Close идемпотентен.
type MessageConsumer interface {
	Run(ctx context.Context) error
	Close() error
}
