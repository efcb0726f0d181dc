package application

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/oksasatya/courseitda/internal/domain/entity"
)

// Keys of the persisted client state. They are namespaced per user by the stores below.
const (
	TokenKey        = "courseitda_token"
	UserKey         = "courseitda_user"
	KakaoRestKeyKey = "courseitda_kakao_rest_key"
	KakaoJSKeyKey   = "courseitda_kakao_js_key"
)

// KeyValueStore persists plain string entries.
type KeyValueStore interface {
	Load(ctx context.Context, key string) (value string, ok bool, err error)
	Save(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

func userKey(userID, name string) string {
	return "user:" + userID + ":" + name
}

// Session is the current token and user, as last saved by Login.
type Session struct {
	Token string       `json:"token"`
	User  *entity.User `json:"user"`
}

type SessionStore struct {
	KV KeyValueStore
}

func NewSessionStore(kv KeyValueStore) *SessionStore {
	return &SessionStore{KV: kv}
}

func (s *SessionStore) Save(ctx context.Context, u *entity.User, token string) error {
	b, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("marshal session user: %w", err)
	}
	if err := s.KV.Save(ctx, userKey(u.ID, TokenKey), token); err != nil {
		return err
	}
	return s.KV.Save(ctx, userKey(u.ID, UserKey), string(b))
}

// Load returns nil without error when no session is recorded.
func (s *SessionStore) Load(ctx context.Context, userID string) (*Session, error) {
	token, ok, err := s.KV.Load(ctx, userKey(userID, TokenKey))
	if err != nil || !ok {
		return nil, err
	}
	sess := &Session{Token: token}
	raw, ok, err := s.KV.Load(ctx, userKey(userID, UserKey))
	if err != nil {
		return nil, err
	}
	if ok {
		var u entity.User
		if err := json.Unmarshal([]byte(raw), &u); err != nil {
			return nil, fmt.Errorf("unmarshal session user: %w", err)
		}
		sess.User = &u
	}
	return sess, nil
}

func (s *SessionStore) Clear(ctx context.Context, userID string) error {
	if err := s.KV.Delete(ctx, userKey(userID, TokenKey)); err != nil {
		return err
	}
	return s.KV.Delete(ctx, userKey(userID, UserKey))
}

// Settings holds the per-user map API keys.
type Settings struct {
	KakaoRestKey string `json:"kakaoRestKey"`
	KakaoJSKey   string `json:"kakaoJsKey"`
}

type SettingsService struct {
	KV KeyValueStore
}

func NewSettingsService(kv KeyValueStore) *SettingsService {
	return &SettingsService{KV: kv}
}

func (s *SettingsService) Get(ctx context.Context, userID string) (Settings, error) {
	var out Settings
	rest, _, err := s.KV.Load(ctx, userKey(userID, KakaoRestKeyKey))
	if err != nil {
		return out, err
	}
	js, _, err := s.KV.Load(ctx, userKey(userID, KakaoJSKeyKey))
	if err != nil {
		return out, err
	}
	out.KakaoRestKey = rest
	out.KakaoJSKey = js
	return out, nil
}

// SetKakaoRestKey stores the key; an empty key removes it.
func (s *SettingsService) SetKakaoRestKey(ctx context.Context, userID, key string) error {
	return s.set(ctx, userKey(userID, KakaoRestKeyKey), key)
}

func (s *SettingsService) SetKakaoJSKey(ctx context.Context, userID, key string) error {
	return s.set(ctx, userKey(userID, KakaoJSKeyKey), key)
}

func (s *SettingsService) set(ctx context.Context, key, value string) error {
	if value == "" {
		return s.KV.Delete(ctx, key)
	}
	return s.KV.Save(ctx, key, value)
}
