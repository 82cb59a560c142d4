// Package reqtoken — монотонные токены запросов: ответ на устаревший запрос отбрасывается,
// а не применяется поверх более свежего.
package reqtoken

import "sync"

// Token — номер запроса в пределах ключа. Нулевой токен не выдаётся.
type Token uint64

// Sequencer — выдаёт токены по ключам и помнит последний выданный.
// Безопасен для конкурентного использования.
type Sequencer struct {
	mu     sync.Mutex
	issued map[string]Token
}

// New — пустой Sequencer.
func New() *Sequencer {
	return &Sequencer{issued: make(map[string]Token)}
}

// Issue — выдать новый токен для key; все ранее выданные по этому ключу становятся устаревшими.
func (s *Sequencer) Issue(key string) Token {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.issued[key]++
	return s.issued[key]
}

// latest — последний выданный токен по ключу (0, если не выдавался).
func (s *Sequencer) latest(key string) Token {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.issued[key]
}

// current — true, если tok всё ещё последний выданный для key.
func (s *Sequencer) current(key string, tok Token) bool {
	return tok != 0 && s.latest(key) == tok
}

// Commit — выполнить apply, только если tok актуален; проверка и применение атомарны
// относительно Issue. Возвращает false, если ответ устарел и был отброшен.
func (s *Sequencer) Commit(key string, tok Token, apply func()) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if tok == 0 || s.issued[key] != tok {
		return false
	}
	if apply != nil {
		apply()
	}
	return true
}
