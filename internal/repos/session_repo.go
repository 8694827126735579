package repos

import (
	"context"
	"encoding/json"
	"fmt"

	"artspace/internal/domain"
)

type SessionRepo struct{ store Store }

func NewSessionRepo(s Store) *SessionRepo { return &SessionRepo{store: s} }

// Load returns nil when the visitor has no session record.
func (r *SessionRepo) Load(ctx context.Context, sid string) (*domain.Session, error) {
	raw, ok, err := r.store.Get(ctx, sid, SessionKey)
	if err != nil || !ok || raw == "" {
		return nil, err
	}
	var s domain.Session
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		return nil, fmt.Errorf("%w: session: %v", ErrCorrupt, err)
	}
	return &s, nil
}

// SaveRaw stores the backend payload as received so no profile field is lost.
func (r *SessionRepo) SaveRaw(ctx context.Context, sid string, payload []byte) error {
	return r.store.Set(ctx, sid, SessionKey, string(payload))
}

func (r *SessionRepo) Clear(ctx context.Context, sid string) error {
	return r.store.Delete(ctx, sid, SessionKey)
}
