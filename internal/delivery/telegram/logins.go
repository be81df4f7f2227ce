package telegram

import (
	"strconv"
	"sync"
)

// chatLogins remembers which user is logged in from which chat.
type chatLogins struct {
	mu     sync.RWMutex
	logins map[int64]string
}

func newChatLogins() *chatLogins {
	return &chatLogins{logins: make(map[int64]string)}
}

func (l *chatLogins) set(chatID int64, username string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.logins[chatID] = username
}

func (l *chatLogins) get(chatID int64) (string, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	username, ok := l.logins[chatID]
	return username, ok
}

func (l *chatLogins) delete(chatID int64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.logins, chatID)
}

// sessionID keys the quiz session of a chat in the shared session store.
func sessionID(chatID int64) string {
	return "tg-" + strconv.FormatInt(chatID, 10)
}
