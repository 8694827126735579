package repos

import (
	"context"
	"encoding/json"

	"artspace/internal/domain"
)

// NoticeRepo queues one-shot messages for the next rendered page.
type NoticeRepo struct{ store Store }

func NewNoticeRepo(s Store) *NoticeRepo { return &NoticeRepo{store: s} }

func (r *NoticeRepo) Push(ctx context.Context, sid string, n domain.Notice) error {
	list, err := r.peek(ctx, sid)
	if err != nil {
		return err
	}
	list = append(list, n)
	b, err := json.Marshal(list)
	if err != nil {
		return err
	}
	return r.store.Set(ctx, sid, NoticeKey, string(b))
}

// Pop returns and forgets every queued notice.
func (r *NoticeRepo) Pop(ctx context.Context, sid string) ([]domain.Notice, error) {
	list, err := r.peek(ctx, sid)
	if err != nil || len(list) == 0 {
		return nil, err
	}
	return list, r.store.Delete(ctx, sid, NoticeKey)
}

func (r *NoticeRepo) peek(ctx context.Context, sid string) ([]domain.Notice, error) {
	raw, ok, err := r.store.Get(ctx, sid, NoticeKey)
	if err != nil || !ok {
		return nil, err
	}
	var list []domain.Notice
	if json.Unmarshal([]byte(raw), &list) != nil {
		return nil, nil
	}
	return list, nil
}
