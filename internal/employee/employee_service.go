package employee

import (
	"context"
	"errors"
	"regexp"
	"strconv"
	"strings"
	"time"

	"go-ems/internal/assignment"
	"go-ems/internal/domain"
	employeeerrors "go-ems/internal/employee/errors"
	"go-ems/internal/events"
	"go-ems/internal/messaging/kafka"
	"go-ems/internal/rbac"
	"go-ems/internal/shared/apperror"
	"go-ems/internal/shared/contextutil"
	"go-ems/internal/shared/dateutil"
	"go-ems/internal/shared/money"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	validate  = validator.New()
	ssnFormat = regexp.MustCompile(`^\d{3}-?\d{2}-?\d{4}$`)
)

type Service interface {
	Create(ctx context.Context, actor domain.Principal, req CreateEmployeeRequest) (EmployeeResponse, error)
	GetAll(ctx context.Context, actor domain.Principal, filter ListFilter) ([]EmployeeResponse, error)
	GetByID(ctx context.Context, actor domain.Principal, id int64) (EmployeeResponse, error)
	Update(ctx context.Context, actor domain.Principal, id int64, req UpdateEmployeeRequest) (EmployeeResponse, error)
	// Terminate flips the status to TERMINATED. Payroll and assignment rows
	// are left untouched.
	Terminate(ctx context.Context, actor domain.Principal, id int64) (EmployeeResponse, error)
}

type service struct {
	db          *gorm.DB
	repo        Repository
	assignments assignment.Repository
	outbox      kafka.OutboxRepository
	rbac        rbac.Service
	logger      *zap.Logger
}

func NewService(
	db *gorm.DB,
	repo Repository,
	assignments assignment.Repository,
	outboxRepo kafka.OutboxRepository,
	rbacService rbac.Service,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
	}
	return &service{
		db:          db,
		repo:        repo,
		assignments: assignments,
		outbox:      outboxRepo,
		rbac:        rbacService,
		logger:      l,
	}
}

// draft is the validated form of a create or update request.
type draft struct {
	number    string
	firstName string
	lastName  string
	email     string
	ssn       string
	hireDate  time.Time
	salary    decimal.Decimal
	address   *Address
}

func buildDraft(number, firstName, lastName, email, ssn, hireDate string, salary money.Text, addr *AddressRequest) (draft, error) {
	d := draft{
		number:    strings.TrimSpace(number),
		firstName: strings.TrimSpace(firstName),
		lastName:  strings.TrimSpace(lastName),
		email:     strings.ToLower(strings.TrimSpace(email)),
		ssn:       strings.TrimSpace(ssn),
	}

	switch {
	case d.firstName == "":
		return draft{}, apperror.RequiredField("First Name")
	case d.lastName == "":
		return draft{}, apperror.RequiredField("Last Name")
	case d.number == "":
		return draft{}, apperror.RequiredField("Employee Number")
	case d.email == "":
		return draft{}, apperror.RequiredField("Email")
	case validate.Var(d.email, "email") != nil:
		return draft{}, apperror.InvalidField("Email")
	case d.ssn == "":
		return draft{}, apperror.RequiredField("SSN")
	case !ssnFormat.MatchString(d.ssn):
		return draft{}, apperror.InvalidField("SSN")
	}
	d.ssn = canonicalSSN(d.ssn)

	hd, err := dateutil.Parse(strings.TrimSpace(hireDate))
	if errors.Is(err, dateutil.ErrEmpty) {
		return draft{}, apperror.RequiredField("Hire Date")
	}
	if err != nil {
		return draft{}, apperror.InvalidField("Hire Date")
	}
	d.hireDate = hd

	amount, ok, err := salary.Parse()
	switch {
	case !ok:
		return draft{}, apperror.RequiredField("Salary")
	case err != nil:
		return draft{}, apperror.InvalidField("Salary")
	case amount.IsNegative():
		return draft{}, employeeerrors.ErrNegativeSalary
	}
	d.salary = money.Round2(amount)

	if addr != nil {
		a, err := buildAddress(addr)
		if err != nil {
			return draft{}, err
		}
		d.address = a
	}
	return d, nil
}

// canonicalSSN stores every accepted spelling as ddd-dd-dddd so uniqueness
// checks and uq_employee_ssn see one value per person.
func canonicalSSN(ssn string) string {
	digits := strings.ReplaceAll(ssn, "-", "")
	return digits[:3] + "-" + digits[3:5] + "-" + digits[5:]
}

func buildAddress(req *AddressRequest) (*Address, error) {
	dob, err := dateutil.ParseOptional(strings.TrimSpace(req.DateOfBirth))
	if err != nil {
		return nil, apperror.InvalidField("Date Of Birth")
	}
	return &Address{
		Street:      strings.TrimSpace(req.Street),
		CityID:      req.CityID,
		StateID:     req.StateID,
		Zip:         strings.TrimSpace(req.Zip),
		Gender:      strings.TrimSpace(req.Gender),
		Race:        strings.TrimSpace(req.Race),
		DateOfBirth: dob,
		Phone:       strings.TrimSpace(req.Phone),
	}, nil
}

// checkUnique runs before the insert or update so a duplicate is reported
// as a field error and no row is written.
func checkUnique(ctx context.Context, repo Repository, d draft, excludeID int64) error {
	checks := []struct {
		exists func(context.Context, string, int64) (bool, error)
		value  string
		err    error
	}{
		{repo.ExistsByNumber, d.number, employeeerrors.ErrEmployeeNumberExists},
		{repo.ExistsByEmail, d.email, employeeerrors.ErrEmailExists},
		{repo.ExistsBySSN, d.ssn, employeeerrors.ErrSSNExists},
	}
	for _, c := range checks {
		taken, err := c.exists(ctx, c.value, excludeID)
		if err != nil {
			return err
		}
		if taken {
			return c.err
		}
	}
	return nil
}

func (s *service) Create(ctx context.Context, actor domain.Principal, req CreateEmployeeRequest) (EmployeeResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)
	if err := s.rbac.Authorize(actor, domain.ResourceEmployee, domain.ActionCreate); err != nil {
		log.Warn("create employee denied", zap.Int64("user_id", actor.UserID))
		return EmployeeResponse{}, err
	}

	d, err := buildDraft(req.EmployeeNumber, req.FirstName, req.LastName, req.Email, req.SSN, req.HireDate, req.Salary, req.Address)
	if err != nil {
		log.Warn("create employee validation failed", zap.Error(err))
		return EmployeeResponse{}, err
	}

	empl := &Employee{
		EmployeeNumber: d.number,
		FirstName:      d.firstName,
		LastName:       d.lastName,
		Email:          d.email,
		SSN:            d.ssn,
		HireDate:       d.hireDate,
		Salary:         d.salary,
		Status:         StatusActive,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)
		if err := checkUnique(ctx, qtx, d, 0); err != nil {
			return err
		}

		if err := qtx.Create(ctx, empl); err != nil {
			return mapRepositoryError(err)
		}

		if d.address != nil {
			d.address.EmployeeID = empl.ID
			if err := qtx.UpsertAddress(ctx, d.address); err != nil {
				return err
			}
			empl.Address = d.address
		}

		if err := s.assignInitial(ctx, tx, empl, req.DivisionID, req.JobTitleID); err != nil {
			return err
		}

		return s.writeEvent(ctx, tx, actor, events.EmployeeCreated, empl)
	})
	if err != nil {
		log.Warn("create employee failed",
			zap.String("employee_number", d.number),
			zap.Error(err),
		)
		return EmployeeResponse{}, err
	}

	log.Info("create employee success",
		zap.Int64("employee_id", empl.ID),
		zap.String("employee_number", empl.EmployeeNumber),
	)
	return s.withAssignments(ctx, mapToResponse(*empl), empl.ID), nil
}

func (s *service) assignInitial(ctx context.Context, tx *gorm.DB, empl *Employee, divisionID, jobTitleID *int64) error {
	if s.assignments == nil {
		return nil
	}
	atx := s.assignments.WithTx(tx)

	initial := []struct {
		kind     assignment.Kind
		targetID *int64
		notFound error
	}{
		{assignment.KindDivision, divisionID, employeeerrors.ErrDivisionNotFound},
		{assignment.KindJobTitle, jobTitleID, employeeerrors.ErrJobTitleNotFound},
	}
	for _, a := range initial {
		if a.targetID == nil {
			continue
		}
		ok, err := atx.TargetExists(ctx, a.kind, *a.targetID)
		if err != nil {
			return err
		}
		if !ok {
			return a.notFound
		}
		if err := atx.Create(ctx, a.kind, assignment.Assignment{
			EmployeeID: empl.ID,
			TargetID:   *a.targetID,
			StartDate:  empl.HireDate,
			IsCurrent:  true,
		}); err != nil {
			return err
		}
	}
	return nil
}

func (s *service) GetAll(ctx context.Context, actor domain.Principal, filter ListFilter) ([]EmployeeResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)
	if err := s.rbac.Authorize(actor, domain.ResourceEmployee, domain.ActionRead); err != nil {
		return nil, err
	}

	filter.Q = strings.TrimSpace(filter.Q)
	filter.Status = strings.ToUpper(strings.TrimSpace(filter.Status))
	if filter.Status != "" && filter.Status != StatusActive && filter.Status != StatusTerminated {
		return nil, employeeerrors.ErrInvalidStatus
	}

	employees, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		log.Error("get all employees failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}
	return mapToListResponse(employees), nil
}

func (s *service) GetByID(ctx context.Context, actor domain.Principal, id int64) (EmployeeResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)
	if err := s.rbac.AuthorizeOwn(actor, domain.ResourceEmployee, id); err != nil {
		log.Warn("get employee denied",
			zap.Int64("user_id", actor.UserID),
			zap.Int64("employee_id", id),
		)
		return EmployeeResponse{}, err
	}

	empl, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return EmployeeResponse{}, mapRepositoryError(err)
	}
	return s.withAssignments(ctx, mapToResponse(*empl), id), nil
}

func (s *service) Update(ctx context.Context, actor domain.Principal, id int64, req UpdateEmployeeRequest) (EmployeeResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)
	if err := s.rbac.Authorize(actor, domain.ResourceEmployee, domain.ActionUpdate); err != nil {
		log.Warn("update employee denied", zap.Int64("user_id", actor.UserID))
		return EmployeeResponse{}, err
	}

	d, err := buildDraft(req.EmployeeNumber, req.FirstName, req.LastName, req.Email, req.SSN, req.HireDate, req.Salary, req.Address)
	if err != nil {
		return EmployeeResponse{}, err
	}

	var empl *Employee
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)

		var err error
		empl, err = qtx.FindByID(ctx, id)
		if err != nil {
			return mapRepositoryError(err)
		}
		if err := checkUnique(ctx, qtx, d, id); err != nil {
			return err
		}

		empl.EmployeeNumber = d.number
		empl.FirstName = d.firstName
		empl.LastName = d.lastName
		empl.Email = d.email
		empl.SSN = d.ssn
		empl.HireDate = d.hireDate
		empl.Salary = d.salary
		if err := qtx.Update(ctx, empl); err != nil {
			return mapRepositoryError(err)
		}

		if d.address != nil {
			d.address.EmployeeID = id
			if err := qtx.UpsertAddress(ctx, d.address); err != nil {
				return err
			}
			empl.Address = d.address
		}

		return s.writeEvent(ctx, tx, actor, events.EmployeeUpdated, empl)
	})
	if err != nil {
		log.Warn("update employee failed", zap.Int64("employee_id", id), zap.Error(err))
		return EmployeeResponse{}, err
	}

	log.Info("update employee success", zap.Int64("employee_id", id))
	return s.withAssignments(ctx, mapToResponse(*empl), id), nil
}

func (s *service) Terminate(ctx context.Context, actor domain.Principal, id int64) (EmployeeResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)
	if err := s.rbac.Authorize(actor, domain.ResourceEmployee, domain.ActionDelete); err != nil {
		log.Warn("terminate employee denied", zap.Int64("user_id", actor.UserID))
		return EmployeeResponse{}, err
	}

	var empl *Employee
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)

		var err error
		empl, err = qtx.FindByID(ctx, id)
		if err != nil {
			return mapRepositoryError(err)
		}
		if empl.Status == StatusTerminated {
			return employeeerrors.ErrEmployeeAlreadyTerminated
		}

		if err := qtx.UpdateStatus(ctx, id, StatusTerminated); err != nil {
			return err
		}
		empl.Status = StatusTerminated

		return s.writeEvent(ctx, tx, actor, events.EmployeeTerminated, empl)
	})
	if err != nil {
		log.Warn("terminate employee failed", zap.Int64("employee_id", id), zap.Error(err))
		return EmployeeResponse{}, err
	}

	log.Info("terminate employee success", zap.Int64("employee_id", id))
	return mapToResponse(*empl), nil
}

func (s *service) writeEvent(ctx context.Context, tx *gorm.DB, actor domain.Principal, eventType string, empl *Employee) error {
	if s.outbox == nil {
		return nil
	}

	ev, err := kafka.NewOutboxEvent(ctx, "employee", strconv.FormatInt(empl.ID, 10), eventType, events.EmployeeLifecycleTopic,
		events.EmployeeEvent{
			Meta:           events.NewMeta(eventType, contextutil.GetRequestID(ctx), actor.UserID),
			EmployeeID:     empl.ID,
			EmployeeNumber: empl.EmployeeNumber,
			Status:         empl.Status,
		})
	if err != nil {
		return err
	}
	return s.outbox.WithTx(tx).Create(ctx, ev)
}

// withAssignments fills in the current division and job title. A lookup
// failure leaves them empty rather than failing the read.
func (s *service) withAssignments(ctx context.Context, resp EmployeeResponse, id int64) EmployeeResponse {
	if s.assignments == nil {
		return resp
	}
	log := contextutil.GetLogger(ctx, s.logger)

	if d, err := s.assignments.Current(ctx, assignment.KindDivision, id); err != nil {
		log.Error("load current division failed", zap.Int64("employee_id", id), zap.Error(err))
	} else if d != nil {
		resp.Division = &RefResponse{ID: d.TargetID, Name: d.TargetName}
	}

	if j, err := s.assignments.Current(ctx, assignment.KindJobTitle, id); err != nil {
		log.Error("load current job title failed", zap.Int64("employee_id", id), zap.Error(err))
	} else if j != nil {
		resp.JobTitle = &RefResponse{ID: j.TargetID, Name: j.TargetName}
	}
	return resp
}

func mapToResponse(empl Employee) EmployeeResponse {
	resp := EmployeeResponse{
		ID:             empl.ID,
		EmployeeNumber: empl.EmployeeNumber,
		FirstName:      empl.FirstName,
		LastName:       empl.LastName,
		Email:          empl.Email,
		SSN:            empl.SSN,
		HireDate:       dateutil.Format(empl.HireDate),
		Salary:         money.Format(empl.Salary),
		Status:         empl.Status,
	}
	if !empl.CreatedAt.IsZero() {
		resp.CreatedAt = empl.CreatedAt.Format(time.RFC3339)
	}
	if !empl.UpdatedAt.IsZero() {
		resp.UpdatedAt = empl.UpdatedAt.Format(time.RFC3339)
	}
	if a := empl.Address; a != nil {
		resp.Address = &AddressResponse{
			Street:      a.Street,
			CityID:      a.CityID,
			StateID:     a.StateID,
			Zip:         a.Zip,
			Gender:      a.Gender,
			Race:        a.Race,
			DateOfBirth: dateutil.FormatPtr(a.DateOfBirth),
			Phone:       a.Phone,
		}
	}
	return resp
}

func mapToListResponse(employees []Employee) []EmployeeResponse {
	res := make([]EmployeeResponse, len(employees))
	for i, e := range employees {
		res[i] = mapToResponse(e)
	}
	return res
}
