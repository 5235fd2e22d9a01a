package leave

import (
	"strings"
	"time"

	"github.com/frahmantamala/leave-management/internal/category"
	leaveDatamodel "github.com/frahmantamala/leave-management/internal/core/datamodel/leave"
)

// DateLayout is the wire and storage format of start and end dates.
const DateLayout = "2006-01-02"

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusApproved  Status = "APPROVED"
	StatusDenied    Status = "DENIED"
	StatusCancelled Status = "CANCELLED"
)

// IsTerminal reports whether no transition leaves the status.
func (s Status) IsTerminal() bool {
	return s == StatusApproved || s == StatusDenied || s == StatusCancelled
}

// CanTransition reports whether the state machine allows from -> to.
func CanTransition(from, to Status) bool {
	return from == StatusPending && to.IsTerminal()
}

// Outcome is a reviewer's decision.
type Outcome string

const (
	OutcomeApprove Outcome = "APPROVE"
	OutcomeDeny    Outcome = "DENY"
)

// Status is the status a request ends in after the outcome is applied.
func (o Outcome) Status() Status {
	if o == OutcomeApprove {
		return StatusApproved
	}
	return StatusDenied
}

type LeaveRequest struct {
	ID            int64
	Requester     string
	StartDate     time.Time
	EndDate       time.Time
	Category      category.Name
	Justification string
	Status        Status
	DecidedBy     string
	DecidedAt     *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Days counts calendar days covered, both ends included.
func (l *LeaveRequest) Days() int {
	return int(l.EndDate.Sub(l.StartDate).Hours()/24) + 1
}

func (l *LeaveRequest) ToResponse() LeaveResponse {
	resp := LeaveResponse{
		ID:            l.ID,
		Requester:     l.Requester,
		StartDate:     l.StartDate.Format(DateLayout),
		EndDate:       l.EndDate.Format(DateLayout),
		Days:          l.Days(),
		Category:      string(l.Category),
		Justification: l.Justification,
		Status:        string(l.Status),
		DecidedBy:     l.DecidedBy,
		CreatedAt:     l.CreatedAt,
		UpdatedAt:     l.UpdatedAt,
	}
	if l.DecidedAt != nil {
		at := *l.DecidedAt
		resp.DecidedAt = &at
	}
	return resp
}

// ParseDate reads a calendar date in DateLayout as UTC midnight.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, strings.TrimSpace(s), time.UTC)
}

func ToDataModel(l *LeaveRequest) *leaveDatamodel.LeaveRequest {
	m := &leaveDatamodel.LeaveRequest{
		ID:            l.ID,
		Requester:     l.Requester,
		StartDate:     l.StartDate,
		EndDate:       l.EndDate,
		Category:      string(l.Category),
		Justification: l.Justification,
		Status:        string(l.Status),
		DecidedAt:     l.DecidedAt,
		CreatedAt:     l.CreatedAt,
		UpdatedAt:     l.UpdatedAt,
	}
	if l.DecidedBy != "" {
		by := l.DecidedBy
		m.DecidedBy = &by
	}
	return m
}

func FromDataModel(m *leaveDatamodel.LeaveRequest) *LeaveRequest {
	l := &LeaveRequest{
		ID:            m.ID,
		Requester:     m.Requester,
		StartDate:     m.StartDate.UTC(),
		EndDate:       m.EndDate.UTC(),
		Category:      category.Name(m.Category),
		Justification: m.Justification,
		Status:        Status(m.Status),
		DecidedAt:     m.DecidedAt,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
	if m.DecidedBy != nil {
		l.DecidedBy = *m.DecidedBy
	}
	return l
}

func FromDataModelSlice(models []*leaveDatamodel.LeaveRequest) []*LeaveRequest {
	result := make([]*LeaveRequest, len(models))
	for i, m := range models {
		result[i] = FromDataModel(m)
	}
	return result
}
