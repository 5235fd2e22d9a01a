package leave

import (
	"time"
)

const MaxJustificationLength = 255

// CreateLeaveDTO is the payload for a new leave request. Dates use DateLayout.
type CreateLeaveDTO struct {
	StartDate     string `json:"start_date"`
	EndDate       string `json:"end_date"`
	Category      string `json:"category"`
	Justification string `json:"justification"`
}

type LeaveResponse struct {
	ID            int64      `json:"id"`
	Requester     string     `json:"requester"`
	StartDate     string     `json:"start_date"`
	EndDate       string     `json:"end_date"`
	Days          int        `json:"days"`
	Category      string     `json:"category"`
	Justification string     `json:"justification"`
	Status        string     `json:"status"`
	DecidedBy     string     `json:"decided_by,omitempty"`
	DecidedAt     *time.Time `json:"decided_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

type LeavesResponse struct {
	Leaves []LeaveResponse `json:"leaves"`
}

func ToResponses(requests []*LeaveRequest) LeavesResponse {
	out := LeavesResponse{Leaves: make([]LeaveResponse, 0, len(requests))}
	for _, l := range requests {
		out.Leaves = append(out.Leaves, l.ToResponse())
	}
	return out
}
