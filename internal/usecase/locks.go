package usecase

import "sync"

// idLocks сериализует конкурентные мутации одного товара.
// Последовательность "чтение строки — удаление старого файла — запись нового —
// коммит" не атомарна, поэтому операции над одним id выполняются по очереди.
type idLocks struct {
	mu    sync.Mutex
	locks map[int64]*idLock
}

type idLock struct {
	mu   sync.Mutex
	refs int
}

func newIDLocks() *idLocks {
	return &idLocks{locks: make(map[int64]*idLock)}
}

func (l *idLocks) lock(id int64) {
	l.mu.Lock()
	entry, ok := l.locks[id]
	if !ok {
		entry = &idLock{}
		l.locks[id] = entry
	}
	entry.refs++
	l.mu.Unlock()

	entry.mu.Lock()
}

func (l *idLocks) unlock(id int64) {
	l.mu.Lock()
	entry := l.locks[id]
	entry.refs--
	if entry.refs == 0 {
		delete(l.locks, id)
	}
	l.mu.Unlock()

	entry.mu.Unlock()
}
