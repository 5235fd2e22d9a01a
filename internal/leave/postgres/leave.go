package postgres

import (
	"context"
	"errors"
	"time"

	leaveDatamodel "github.com/frahmantamala/leave-management/internal/core/datamodel/leave"
	"github.com/frahmantamala/leave-management/internal/leave"
	"gorm.io/gorm"
)

// LeaveRepository implements leave.RepositoryAPI on GORM. It serves both the
// PostgreSQL and SQLite dialects; ids come from the database sequence.
type LeaveRepository struct {
	db *gorm.DB
}

func NewLeaveRepository(db *gorm.DB) leave.RepositoryAPI {
	return &LeaveRepository{db: db}
}

func (r *LeaveRepository) Create(ctx context.Context, l *leaveDatamodel.LeaveRequest) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *LeaveRepository) GetByID(ctx context.Context, id int64) (*leaveDatamodel.LeaveRequest, bool, error) {
	var l leaveDatamodel.LeaveRequest
	err := r.db.WithContext(ctx).Where("id = ?", id).Take(&l).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return &l, true, nil
}

func (r *LeaveRepository) ListByRequester(ctx context.Context, requester string) ([]*leaveDatamodel.LeaveRequest, error) {
	var requests []*leaveDatamodel.LeaveRequest
	err := r.db.WithContext(ctx).
		Where("requester = ?", requester).
		Order("id ASC").
		Find(&requests).Error
	return requests, err
}

func (r *LeaveRepository) ListByStatus(ctx context.Context, status string) ([]*leaveDatamodel.LeaveRequest, error) {
	var requests []*leaveDatamodel.LeaveRequest
	err := r.db.WithContext(ctx).
		Where("status = ?", status).
		Order("id ASC"). // FIFO for reviewers
		Find(&requests).Error
	return requests, err
}

func (r *LeaveRepository) ListAll(ctx context.Context) ([]*leaveDatamodel.LeaveRequest, error) {
	var requests []*leaveDatamodel.LeaveRequest
	err := r.db.WithContext(ctx).Order("id ASC").Find(&requests).Error
	return requests, err
}

// TransitionStatus is one UPDATE guarded on the current status.
func (r *LeaveRepository) TransitionStatus(ctx context.Context, id int64, from, to, decidedBy string, at time.Time) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&leaveDatamodel.LeaveRequest{}).
		Where("id = ? AND status = ?", id, from).
		Updates(map[string]interface{}{
			"status":     to,
			"decided_by": decidedBy,
			"decided_at": at,
			"updated_at": at,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *LeaveRepository) Delete(ctx context.Context, id int64) (bool, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&leaveDatamodel.LeaveRequest{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}
