package utils

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"
)

const sessionTTL = 72 * time.Hour

// SessionStore keeps the authenticated user's identity in Redis, keyed by an
// opaque session id. It is set on login and cleared on logout.
type SessionStore struct {
	RDB *redis.Client
}

type SessionUser struct {
	Name        string `json:"name"`
	PhoneNumber string `json:"phoneNumber"`
}

func NewSessionStore(rdb *redis.Client) *SessionStore {
	return &SessionStore{RDB: rdb}
}

func GenerateSessionID() string {
	b := make([]byte, 16)
	rand.Read(b)
	return hex.EncodeToString(b)
}

func (s *SessionStore) Save(sessionID string, user SessionUser) error {
	data, _ := json.Marshal(user)
	return s.RDB.Set(RedisCtx(), "session:"+sessionID, data, sessionTTL).Err()
}

func (s *SessionStore) Get(sessionID string) (SessionUser, error) {
	var user SessionUser
	data, err := s.RDB.Get(RedisCtx(), "session:"+sessionID).Result()
	if err != nil {
		return user, err
	}
	err = json.Unmarshal([]byte(data), &user)
	return user, err
}

func (s *SessionStore) Delete(sessionID string) {
	s.RDB.Del(RedisCtx(), "session:"+sessionID)
}
