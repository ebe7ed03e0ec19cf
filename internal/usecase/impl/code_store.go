package impl

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

const authorizationCodeTTL = 5 * time.Minute

// authorizationCode binds a one-time code to the principal and client it was
// issued for.
type authorizationCode struct {
	subject     string
	clientID    string
	redirectURI string
	expiresAt   time.Time
}

// codeStore keeps pending authorization codes in process memory. Codes are
// single-use and short-lived; expired entries are purged lazily on access,
// so no background sweeper is needed.
type codeStore struct {
	mu    sync.Mutex
	codes map[string]authorizationCode
	now   func() time.Time
}

func newCodeStore() *codeStore {
	return &codeStore{
		codes: make(map[string]authorizationCode),
		now:   time.Now,
	}
}

// Issue mints a new one-time code for the subject/client pair.
func (s *codeStore) Issue(subject, clientID, redirectURI string) string {
	code := uuid.New().String()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.purgeLocked()
	s.codes[code] = authorizationCode{
		subject:     subject,
		clientID:    clientID,
		redirectURI: redirectURI,
		expiresAt:   s.now().Add(authorizationCodeTTL),
	}

	return code
}

// Redeem consumes a code. A code can be redeemed at most once; expired or
// unknown codes report ok=false.
func (s *codeStore) Redeem(code string) (authorizationCode, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.codes[code]
	if !ok {
		return authorizationCode{}, false
	}
	delete(s.codes, code)

	if s.now().After(entry.expiresAt) {
		return authorizationCode{}, false
	}

	return entry, true
}

func (s *codeStore) purgeLocked() {
	now := s.now()
	for code, entry := range s.codes {
		if now.After(entry.expiresAt) {
			delete(s.codes, code)
		}
	}
}
