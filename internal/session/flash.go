package session

import "sync"

// flashStore holds one-shot messages keyed by session id. Messages are removed
// on the first read. State is in-process only, matching the single-process
// request model of the application.
type flashStore struct {
	mu       sync.Mutex
	messages map[string]map[string]string
}

func newFlashStore() *flashStore {
	return &flashStore{messages: make(map[string]map[string]string)}
}

func (s *flashStore) put(sessionID, key, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	bucket, ok := s.messages[sessionID]
	if !ok {
		bucket = make(map[string]string)
		s.messages[sessionID] = bucket
	}
	bucket[key] = message
}

func (s *flashStore) pop(sessionID, key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	bucket, ok := s.messages[sessionID]
	if !ok {
		return "", false
	}
	message, ok := bucket[key]
	if !ok {
		return "", false
	}
	delete(bucket, key)
	if len(bucket) == 0 {
		delete(s.messages, sessionID)
	}
	return message, true
}

func (s *flashStore) drop(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.messages, sessionID)
}
