package leave

import (
	"context"
	"log/slog"
	"time"

	errors "github.com/frahmantamala/leave-management/internal"
	"github.com/frahmantamala/leave-management/internal/category"
	"github.com/frahmantamala/leave-management/internal/core/common/validation"
	leaveDatamodel "github.com/frahmantamala/leave-management/internal/core/datamodel/leave"
	coreuser "github.com/frahmantamala/leave-management/internal/core/user"
)

type RepositoryAPI interface {
	// Create assigns the next id and inserts the request as one atomic step.
	Create(ctx context.Context, l *leaveDatamodel.LeaveRequest) error
	GetByID(ctx context.Context, id int64) (*leaveDatamodel.LeaveRequest, bool, error)
	ListByRequester(ctx context.Context, requester string) ([]*leaveDatamodel.LeaveRequest, error)
	ListByStatus(ctx context.Context, status string) ([]*leaveDatamodel.LeaveRequest, error)
	ListAll(ctx context.Context) ([]*leaveDatamodel.LeaveRequest, error)
	// TransitionStatus moves the request from one status to another only if it
	// is still in from, and reports whether it did.
	TransitionStatus(ctx context.Context, id int64, from, to, decidedBy string, at time.Time) (bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

type CategoryCatalog interface {
	Parse(raw string) (category.Name, bool)
}

type ServiceAPI interface {
	Create(ctx context.Context, actor coreuser.Actor, dto CreateLeaveDTO) (*LeaveRequest, error)
	Get(ctx context.Context, actor coreuser.Actor, id int64) (*LeaveRequest, error)
	ListFor(ctx context.Context, actor coreuser.Actor, username string) ([]*LeaveRequest, error)
	ListPending(ctx context.Context, actor coreuser.Actor) ([]*LeaveRequest, error)
	ListAll(ctx context.Context, actor coreuser.Actor) ([]*LeaveRequest, error)
	Decide(ctx context.Context, actor coreuser.Actor, id int64, outcome Outcome) (*LeaveRequest, error)
	Cancel(ctx context.Context, actor coreuser.Actor, id int64) (*LeaveRequest, error)
}

type Service struct {
	repo       RepositoryAPI
	categories CategoryCatalog
	now        func() time.Time
	logger     *slog.Logger
}

func NewService(repo RepositoryAPI, categories CategoryCatalog, logger *slog.Logger) *Service {
	return &Service{
		repo:       repo,
		categories: categories,
		now:        time.Now,
		logger:     logger,
	}
}

func (s *Service) Create(ctx context.Context, actor coreuser.Actor, dto CreateLeaveDTO) (*LeaveRequest, error) {
	if !actor.IsAuthenticated() {
		return nil, errors.ErrForbidden
	}

	start, startErr := ParseDate(dto.StartDate)
	end, endErr := ParseDate(dto.EndDate)
	cat, catOK := s.categories.Parse(dto.Category)

	v := validation.NewValidator()
	v.Field("start_date", start).
		Check(func(interface{}) bool { return startErr == nil }, "start_date must be a date in YYYY-MM-DD format", errors.ErrCodeInvalidDate)
	v.Field("end_date", end).
		Check(func(interface{}) bool { return endErr == nil }, "end_date must be a date in YYYY-MM-DD format", errors.ErrCodeInvalidDate).
		NotBefore(start, startErr == nil && endErr == nil, "start_date", errors.ErrCodeInvalidDateRange)
	v.Field("category", dto.Category).
		Required(errors.ErrCodeInvalidCategory).
		Check(func(interface{}) bool { return catOK }, "category is not one of the allowed categories", errors.ErrCodeInvalidCategory)
	v.Field("justification", dto.Justification).
		Required(errors.ErrCodeInvalidReason).
		MaxLength(MaxJustificationLength, errors.ErrCodeInvalidReason)
	if appErr := v.Validate(); appErr != nil {
		return nil, appErr
	}

	now := s.now().UTC()
	l := &LeaveRequest{
		Requester:     actor.Username,
		StartDate:     start,
		EndDate:       end,
		Category:      cat,
		Justification: dto.Justification,
		Status:        StatusPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	model := ToDataModel(l)
	if err := s.repo.Create(ctx, model); err != nil {
		s.logger.Error("failed to store leave request", "requester", actor.Username, "error", err)
		return nil, errors.NewInternalError("Failed to create leave request", err)
	}
	l.ID = model.ID

	s.logger.Info("leave request created",
		"leave_id", l.ID,
		"requester", l.Requester,
		"category", l.Category,
		"start_date", dto.StartDate,
		"end_date", dto.EndDate)
	return l, nil
}

// Get returns one request to its requester or to an ADMIN.
func (s *Service) Get(ctx context.Context, actor coreuser.Actor, id int64) (*LeaveRequest, error) {
	model, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.Owns(model.Requester) && !actor.IsAdmin() {
		s.logger.Warn("leave request view denied", "leave_id", id, "actor", actor.Username)
		return nil, errors.ErrForbidden
	}
	return FromDataModel(model), nil
}

// ListFor returns the requests filed by username. Only that user may list them.
func (s *Service) ListFor(ctx context.Context, actor coreuser.Actor, username string) ([]*LeaveRequest, error) {
	if !actor.Owns(username) {
		s.logger.Warn("leave listing denied", "actor", actor.Username, "username", username)
		return nil, errors.ErrForbidden
	}
	models, err := s.repo.ListByRequester(ctx, username)
	if err != nil {
		s.logger.Error("failed to list leave requests", "requester", username, "error", err)
		return nil, errors.NewInternalError("Failed to list leave requests", err)
	}
	return FromDataModelSlice(models), nil
}

func (s *Service) ListPending(ctx context.Context, actor coreuser.Actor) ([]*LeaveRequest, error) {
	if !actor.IsAdmin() {
		s.logger.Warn("pending listing denied", "actor", actor.Username)
		return nil, errors.ErrForbidden
	}
	models, err := s.repo.ListByStatus(ctx, string(StatusPending))
	if err != nil {
		s.logger.Error("failed to list pending leave requests", "error", err)
		return nil, errors.NewInternalError("Failed to list leave requests", err)
	}
	return FromDataModelSlice(models), nil
}

func (s *Service) ListAll(ctx context.Context, actor coreuser.Actor) ([]*LeaveRequest, error) {
	if !actor.IsAdmin() {
		s.logger.Warn("full listing denied", "actor", actor.Username)
		return nil, errors.ErrForbidden
	}
	models, err := s.repo.ListAll(ctx)
	if err != nil {
		s.logger.Error("failed to list leave requests", "error", err)
		return nil, errors.NewInternalError("Failed to list leave requests", err)
	}
	return FromDataModelSlice(models), nil
}

// Decide applies an ADMIN's outcome to a pending request.
func (s *Service) Decide(ctx context.Context, actor coreuser.Actor, id int64, outcome Outcome) (*LeaveRequest, error) {
	if !actor.IsAdmin() {
		s.logger.Warn("leave decision denied", "leave_id", id, "actor", actor.Username)
		return nil, errors.ErrForbidden
	}
	if outcome != OutcomeApprove && outcome != OutcomeDeny {
		return nil, errors.NewValidationFieldError("outcome", "outcome must be APPROVE or DENY", errors.ErrCodeInvalidOutcome)
	}

	model, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	l, err := s.transition(ctx, actor, model, outcome.Status())
	if err != nil {
		return nil, err
	}
	s.logger.Info("leave request decided", "leave_id", id, "status", l.Status, "decided_by", actor.Username)
	return l, nil
}

// Cancel withdraws a pending request. Only the requester may cancel; the ADMIN
// role grants nothing here.
func (s *Service) Cancel(ctx context.Context, actor coreuser.Actor, id int64) (*LeaveRequest, error) {
	model, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.Owns(model.Requester) {
		s.logger.Warn("leave cancellation denied", "leave_id", id, "actor", actor.Username)
		return nil, errors.ErrForbidden
	}

	l, err := s.transition(ctx, actor, model, StatusCancelled)
	if err != nil {
		return nil, err
	}
	s.logger.Info("leave request cancelled", "leave_id", id, "requester", actor.Username)
	return l, nil
}

func (s *Service) load(ctx context.Context, id int64) (*leaveDatamodel.LeaveRequest, error) {
	model, found, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("failed to load leave request", "leave_id", id, "error", err)
		return nil, errors.NewInternalError("Failed to load leave request", err)
	}
	if !found {
		return nil, errors.ErrLeaveNotFound
	}
	return model, nil
}

func (s *Service) transition(ctx context.Context, actor coreuser.Actor, model *leaveDatamodel.LeaveRequest, to Status) (*LeaveRequest, error) {
	if !CanTransition(Status(model.Status), to) {
		return nil, errors.ErrAlreadyDecided
	}

	now := s.now().UTC()
	swapped, err := s.repo.TransitionStatus(ctx, model.ID, string(StatusPending), string(to), actor.Username, now)
	if err != nil {
		s.logger.Error("failed to update leave status", "leave_id", model.ID, "status", to, "error", err)
		return nil, errors.NewInternalError("Failed to update leave request", err)
	}
	if !swapped {
		// lost the race; the request was decided, cancelled or deleted meanwhile
		if _, err := s.load(ctx, model.ID); err != nil {
			return nil, err
		}
		return nil, errors.ErrAlreadyDecided
	}

	l := FromDataModel(model)
	l.Status = to
	l.DecidedBy = actor.Username
	l.DecidedAt = &now
	l.UpdatedAt = now
	return l, nil
}
