package memory

import (
	"context"
	"slices"
	"sync"
	"time"

	leaveDatamodel "github.com/frahmantamala/leave-management/internal/core/datamodel/leave"
	"github.com/frahmantamala/leave-management/internal/leave"
)

// Repository keeps leave requests in a map. Inserts and status swaps run
// under the write lock; reads return copies.
type Repository struct {
	mu       sync.RWMutex
	nextID   int64
	requests map[int64]*leaveDatamodel.LeaveRequest
}

func NewLeaveRepository() *Repository {
	return &Repository{requests: make(map[int64]*leaveDatamodel.LeaveRequest)}
}

var _ leave.RepositoryAPI = (*Repository)(nil)

func (r *Repository) Create(_ context.Context, l *leaveDatamodel.LeaveRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	l.ID = r.nextID
	r.requests[l.ID] = clone(l)
	return nil
}

func (r *Repository) GetByID(_ context.Context, id int64) (*leaveDatamodel.LeaveRequest, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	l, ok := r.requests[id]
	if !ok {
		return nil, false, nil
	}
	return clone(l), true, nil
}

func (r *Repository) ListByRequester(_ context.Context, requester string) ([]*leaveDatamodel.LeaveRequest, error) {
	return r.filter(func(l *leaveDatamodel.LeaveRequest) bool { return l.Requester == requester }), nil
}

func (r *Repository) ListByStatus(_ context.Context, status string) ([]*leaveDatamodel.LeaveRequest, error) {
	return r.filter(func(l *leaveDatamodel.LeaveRequest) bool { return l.Status == status }), nil
}

func (r *Repository) ListAll(_ context.Context) ([]*leaveDatamodel.LeaveRequest, error) {
	return r.filter(func(*leaveDatamodel.LeaveRequest) bool { return true }), nil
}

func (r *Repository) TransitionStatus(_ context.Context, id int64, from, to, decidedBy string, at time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	l, ok := r.requests[id]
	if !ok || l.Status != from {
		return false, nil
	}
	l.Status = to
	l.DecidedBy = &decidedBy
	l.DecidedAt = &at
	l.UpdatedAt = at
	return true, nil
}

// Delete removes the request. Its id is not handed out again.
func (r *Repository) Delete(_ context.Context, id int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.requests[id]; !ok {
		return false, nil
	}
	delete(r.requests, id)
	return true, nil
}

func (r *Repository) filter(keep func(*leaveDatamodel.LeaveRequest) bool) []*leaveDatamodel.LeaveRequest {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*leaveDatamodel.LeaveRequest, 0)
	for _, l := range r.requests {
		if keep(l) {
			out = append(out, clone(l))
		}
	}
	slices.SortFunc(out, func(a, b *leaveDatamodel.LeaveRequest) int {
		switch {
		case a.ID < b.ID:
			return -1
		case a.ID > b.ID:
			return 1
		}
		return 0
	})
	return out
}

func clone(l *leaveDatamodel.LeaveRequest) *leaveDatamodel.LeaveRequest {
	cp := *l
	if l.DecidedBy != nil {
		by := *l.DecidedBy
		cp.DecidedBy = &by
	}
	if l.DecidedAt != nil {
		at := *l.DecidedAt
		cp.DecidedAt = &at
	}
	return &cp
}
