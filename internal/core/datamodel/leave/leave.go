package leave

import "time"

// LeaveRequest is the persisted form of a leave request. Start and end are
// calendar dates stored at UTC midnight.
type LeaveRequest struct {
	ID            int64      `gorm:"column:id;primaryKey;autoIncrement"`
	Requester     string     `gorm:"column:requester;size:50;not null;index"`
	StartDate     time.Time  `gorm:"column:start_date;type:date;not null"`
	EndDate       time.Time  `gorm:"column:end_date;type:date;not null"`
	Category      string     `gorm:"column:category;size:50;not null"`
	Justification string     `gorm:"column:justification;size:255;not null"`
	Status        string     `gorm:"column:status;size:20;not null;index"`
	DecidedBy     *string    `gorm:"column:decided_by;size:50"`
	DecidedAt     *time.Time `gorm:"column:decided_at"`
	CreatedAt     time.Time  `gorm:"column:created_at;not null"`
	UpdatedAt     time.Time  `gorm:"column:updated_at;not null"`
}

func (LeaveRequest) TableName() string {
	return "leave_requests"
}
