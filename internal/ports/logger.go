package ports

import "context"

// Logger — логгер прикладного слоя. Реализация сама достаёт из ctx request_id, trace_id и span_id;
// сообщения пишутся по-английски в виде "event key=value ...".
type Logger interface {
	Infof(ctx context.Context, format string, args ...any)
	Warnf(ctx context.Context, format string, args ...any)
	Errorf(ctx context.Context, format string, args ...any)
}
