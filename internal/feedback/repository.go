package feedback

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/cleancity/pickup-service/internal/domain"
	"github.com/cleancity/pickup-service/internal/kvstore"
)

const feedbackKey = "cc:feedback"

// Repository persists feedback entries. Only append and list exist; there
// is no lifecycle beyond that.
type Repository interface {
	Create(ctx context.Context, entry *domain.Feedback) error
	List(ctx context.Context) ([]domain.Feedback, error)
}

type kvRepository struct {
	mu sync.Mutex
	kv kvstore.Store
}

// NewKVRepository stores feedback as a JSON array in the key-value store.
func NewKVRepository(kv kvstore.Store) Repository {
	return &kvRepository{kv: kv}
}

func (r *kvRepository) Create(ctx context.Context, entry *domain.Feedback) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	entries, err := r.load(ctx)
	if err != nil {
		return err
	}
	entries = append(entries, *entry)
	raw, err := json.Marshal(entries)
	if err != nil {
		return err
	}
	return r.kv.Set(ctx, feedbackKey, raw)
}

func (r *kvRepository) List(ctx context.Context) ([]domain.Feedback, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.load(ctx)
}

func (r *kvRepository) load(ctx context.Context) ([]domain.Feedback, error) {
	raw, err := r.kv.Get(ctx, feedbackKey)
	if err != nil {
		if errors.Is(err, kvstore.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, err
	}
	var entries []domain.Feedback
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("decode feedback: %w", err)
	}
	return entries, nil
}
