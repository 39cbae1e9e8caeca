package redis

import (
	"context"
	"fmt"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/ngocanhdo/engkids-backend/internal/platform/envutil"
	"github.com/ngocanhdo/engkids-backend/internal/platform/logger"
)

// Session keys. Each role writes its own identity key so one browser can hold
// several logins at once (a teacher demoing the student view, for instance).
const (
	KeyCurrentStudent = "current_student"
	KeyCurrentTeacher = "current_teacher"
	KeyCurrentParent  = "current_parent"
	KeyCurrentAdmin   = "current_admin"
	KeyStudentPin     = "student_pin"
	KeyIsGuest        = "is_guest"
)

// RoleKeys is everything Logout must clear. Leaving any of these behind lets
// a stale identity resurface on the next visit.
func RoleKeys() []string {
	return []string{
		KeyCurrentStudent,
		KeyCurrentTeacher,
		KeyCurrentParent,
		KeyCurrentAdmin,
		KeyStudentPin,
		KeyIsGuest,
	}
}

type SessionStore interface {
	Get(ctx context.Context, sessionID, key string) (string, bool, error)
	Set(ctx context.Context, sessionID, key, value string) error
	Remove(ctx context.Context, sessionID string, keys ...string) error
	Close() error
}

type sessionStore struct {
	log *logger.Logger
	rdb *goredis.Client
	ttl time.Duration
}

func NewSessionStore(log *logger.Logger) (SessionStore, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}

	addr := strings.TrimSpace(envutil.GetEnv("REDIS_ADDR", "localhost:6379", log))
	ttlHours := envutil.GetEnvAsInt("SESSION_TTL_HOURS", 720, log)

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &sessionStore{
		log: log.With("service", "RedisSessionStore"),
		rdb: rdb,
		ttl: time.Duration(ttlHours) * time.Hour,
	}, nil
}

func sessionKey(sessionID, key string) string {
	return "sess:" + sessionID + ":" + key
}

func (s *sessionStore) Get(ctx context.Context, sessionID, key string) (string, bool, error) {
	if s == nil || s.rdb == nil {
		return "", false, fmt.Errorf("session store not initialized")
	}
	val, err := s.rdb.Get(ctx, sessionKey(sessionID, key)).Result()
	if err == goredis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return val, true, nil
}

func (s *sessionStore) Set(ctx context.Context, sessionID, key, value string) error {
	if s == nil || s.rdb == nil {
		return fmt.Errorf("session store not initialized")
	}
	return s.rdb.Set(ctx, sessionKey(sessionID, key), value, s.ttl).Err()
}

func (s *sessionStore) Remove(ctx context.Context, sessionID string, keys ...string) error {
	if s == nil || s.rdb == nil {
		return fmt.Errorf("session store not initialized")
	}
	if len(keys) == 0 {
		return nil
	}
	full := make([]string, 0, len(keys))
	for _, k := range keys {
		full = append(full, sessionKey(sessionID, k))
	}
	return s.rdb.Del(ctx, full...).Err()
}

func (s *sessionStore) Close() error {
	if s == nil || s.rdb == nil {
		return nil
	}
	return s.rdb.Close()
}
