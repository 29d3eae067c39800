// Package mockapi simulates the remote pickup REST backend over an
// in-memory list. Every call pays a fixed artificial round-trip delay;
// failures carry HTTP-style statuses like a real gateway would return.
package mockapi

import (
	"context"
	"sync"
	"time"

	"github.com/cleancity/pickup-service/internal/domain"
	apperrors "github.com/cleancity/pickup-service/pkg/util"
)

// Client is the simulated pickup backend. State mutation happens under the
// lock after the latency wait, so an in-flight call never observes another
// call's partial write.
type Client struct {
	mu      sync.Mutex
	latency time.Duration
	nextID  int64
	pickups []domain.PickupRequest
}

// CreateInput carries the fields the caller supplies; the server assigns
// id, status and timestamps.
type CreateInput struct {
	UserID    string
	Address   string
	Date      string
	TimeSlot  domain.TimeSlot
	WasteType string
	Notes     string
}

// New builds a client with the given artificial latency per call.
func New(latency time.Duration) *Client {
	return &Client{latency: latency, nextID: 1}
}

// Create appends a new pickup with a server-assigned incrementing id,
// status "scheduled" and creation/update timestamps.
func (c *Client) Create(ctx context.Context, input CreateInput) (*domain.PickupRequest, error) {
	if err := c.wait(ctx); err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now().UTC()
	pickup := domain.PickupRequest{
		ID:        c.nextID,
		UserID:    input.UserID,
		Address:   input.Address,
		Date:      input.Date,
		TimeSlot:  input.TimeSlot,
		WasteType: input.WasteType,
		Notes:     input.Notes,
		Status:    domain.PickupStatusScheduled,
		CreatedAt: now,
		UpdatedAt: now,
	}
	c.nextID++
	c.pickups = append(c.pickups, pickup)

	created := pickup
	return &created, nil
}

// ListByOwner returns the owner's pickups in insertion order.
func (c *Client) ListByOwner(ctx context.Context, userID string) ([]domain.PickupRequest, error) {
	if err := c.wait(ctx); err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]domain.PickupRequest, 0)
	for _, pickup := range c.pickups {
		if pickup.UserID == userID {
			out = append(out, pickup)
		}
	}
	return out, nil
}

// GetByIDAndOwner returns the pickup matching both id and owner.
func (c *Client) GetByIDAndOwner(ctx context.Context, id int64, userID string) (*domain.PickupRequest, error) {
	if err := c.wait(ctx); err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for _, pickup := range c.pickups {
		if pickup.ID == id && pickup.UserID == userID {
			found := pickup
			return &found, nil
		}
	}
	return nil, apperrors.NewNotFound("pickup", map[string]any{"id": id})
}

// UpdateStatus overwrites the status and update timestamp of the pickup
// matching both id and owner.
func (c *Client) UpdateStatus(ctx context.Context, id int64, status domain.PickupStatus, userID string) (*domain.PickupRequest, error) {
	if err := c.wait(ctx); err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.pickups {
		if c.pickups[i].ID != id || c.pickups[i].UserID != userID {
			continue
		}
		c.pickups[i].Status = status
		c.pickups[i].UpdatedAt = time.Now().UTC()
		updated := c.pickups[i]
		return &updated, nil
	}
	return nil, apperrors.NewNotFound("pickup", map[string]any{"id": id})
}

// Count returns the number of stored pickups across all owners.
func (c *Client) Count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.pickups)
}

// Reset clears the list and the identifier counter. Administrative
// capability for tests, not part of the production contract.
func (c *Client) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pickups = nil
	c.nextID = 1
}

// wait simulates network latency. The caller may stop waiting via ctx, but
// the store itself never observes a half-applied mutation.
func (c *Client) wait(ctx context.Context) error {
	if c.latency <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(c.latency)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
