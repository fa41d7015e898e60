package service

import "sync"

// что пользователь собирался сделать, когда открыл меню пар
const (
	awaitPrice = "price"
	awaitOrder = "order"
)

type awaitStore struct {
	mu sync.Mutex
	m  map[int64]string // chatID -> key
}

func newAwaitStore() *awaitStore {
	return &awaitStore{m: make(map[int64]string)}
}

func (s *awaitStore) set(chatID int64, key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[chatID] = key
}

func (s *awaitStore) peek(chatID int64) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key, ok := s.m[chatID]
	return key, ok
}

func (s *awaitStore) clear(chatID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.m, chatID)
}
