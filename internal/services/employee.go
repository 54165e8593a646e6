package services

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/empgraph/apiserver/internal/store"
	"github.com/empgraph/apiserver/internal/validate"
	"github.com/empgraph/apiserver/types"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// EmployeeRepository defines persistence operations for employees.
type EmployeeRepository interface {
	Create(ctx context.Context, employee types.Employee) (types.Employee, error)
	List(ctx context.Context) ([]types.Employee, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (types.Employee, error)
	GetByEmail(ctx context.Context, email string) (types.Employee, error)
	Search(ctx context.Context, designation, department string) ([]types.Employee, error)
	Update(ctx context.Context, employee types.Employee) (types.Employee, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// PhotoUploader converts a raw photo payload into a durable URL.
// Failures propagate to the caller unchanged; uploads are not retried.
type PhotoUploader interface {
	Upload(ctx context.Context, payload string) (string, error)
}

// EmployeeEvents receives employee lifecycle notifications.
type EmployeeEvents interface {
	Created(ctx context.Context, employee types.Employee) error
	Updated(ctx context.Context, employee types.Employee) error
	Deleted(ctx context.Context, employee types.Employee) error
}

// EmployeeService encapsulates employee use-cases.
type EmployeeService struct {
	repo   EmployeeRepository
	photos PhotoUploader
	events EmployeeEvents
}

// NewEmployeeService constructs an EmployeeService. events may be nil,
// in which case no lifecycle notifications are published.
func NewEmployeeService(repo EmployeeRepository, photos PhotoUploader, events EmployeeEvents) *EmployeeService {
	return &EmployeeService{repo: repo, photos: photos, events: events}
}

// Create validates the input, enforces email uniqueness, uploads the photo
// payload and persists the normalized record. The upload and the write are
// not transactional: if persistence fails the uploaded asset is orphaned.
func (s *EmployeeService) Create(ctx context.Context, in types.EmployeeInput) (types.Employee, error) {
	err := validate.Fields(
		func() error { return validate.NonEmpty(in.FirstName, "first_name") },
		func() error { return validate.NonEmpty(in.LastName, "last_name") },
		func() error { return validate.Email(in.Email) },
		func() error { return validate.NonEmpty(in.Gender, "gender") },
		func() error { return validate.NonEmpty(in.Designation, "designation") },
		func() error { return validate.NonEmpty(in.Department, "department") },
		func() error { return validate.NonEmpty(in.EmployeePhoto, "employee_photo") },
		func() error {
			_, err := validate.Date(in.DateOfJoining, "date_of_joining")
			return err
		},
		func() error { return validate.Salary(in.Salary) },
	)
	if err != nil {
		return types.Employee{}, err
	}
	if err := validate.Gender(in.Gender); err != nil {
		return types.Employee{}, err
	}

	email := strings.ToLower(strings.TrimSpace(in.Email))
	if err := s.ensureUniqueEmail(ctx, email, primitive.NilObjectID); err != nil {
		return types.Employee{}, err
	}

	dateOfJoining, err := validate.Date(in.DateOfJoining, "date_of_joining")
	if err != nil {
		return types.Employee{}, err
	}

	photoURL, err := s.photos.Upload(ctx, in.EmployeePhoto)
	if err != nil {
		return types.Employee{}, err
	}

	employee, err := s.repo.Create(ctx, types.Employee{
		FirstName:     strings.TrimSpace(in.FirstName),
		LastName:      strings.TrimSpace(in.LastName),
		Email:         email,
		Gender:        in.Gender,
		Designation:   strings.TrimSpace(in.Designation),
		Salary:        in.Salary,
		DateOfJoining: dateOfJoining,
		Department:    strings.TrimSpace(in.Department),
		EmployeePhoto: photoURL,
	})
	if err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return types.Employee{}, &ConflictError{Message: "Employee email already exists."}
		}
		return types.Employee{}, err
	}

	s.notify(ctx, "created", employee)
	return employee, nil
}

// List returns all employees, newest first.
func (s *EmployeeService) List(ctx context.Context) ([]types.Employee, error) {
	return s.repo.List(ctx)
}

// GetByID looks up an employee. A malformed id is a validation error, not
// a not-found condition.
func (s *EmployeeService) GetByID(ctx context.Context, id string) (types.Employee, error) {
	oid, err := validate.ObjectID(id, "employee id")
	if err != nil {
		return types.Employee{}, err
	}
	return s.repo.GetByID(ctx, oid)
}

// Search returns employees whose designation or department contains the
// respective filter, case-insensitively, newest first. At least one filter
// must be non-blank.
func (s *EmployeeService) Search(ctx context.Context, designation, department string) ([]types.Employee, error) {
	designation = strings.TrimSpace(designation)
	department = strings.TrimSpace(department)
	if designation == "" && department == "" {
		return nil, &validate.Error{Message: "Provide designation or department."}
	}
	return s.repo.Search(ctx, designation, department)
}

// Update applies a partial update. Only fields present in the input are
// re-validated and replaced; absent fields keep their stored values. A new
// photo payload is re-uploaded and the stored URL replaced.
func (s *EmployeeService) Update(ctx context.Context, id string, in types.EmployeeUpdateInput) (types.Employee, error) {
	oid, err := validate.ObjectID(id, "employee id")
	if err != nil {
		return types.Employee{}, err
	}

	employee, err := s.repo.GetByID(ctx, oid)
	if err != nil {
		return types.Employee{}, err
	}

	if in.FirstName != nil {
		if err := validate.NonEmpty(*in.FirstName, "first_name"); err != nil {
			return types.Employee{}, err
		}
		employee.FirstName = strings.TrimSpace(*in.FirstName)
	}

	if in.LastName != nil {
		if err := validate.NonEmpty(*in.LastName, "last_name"); err != nil {
			return types.Employee{}, err
		}
		employee.LastName = strings.TrimSpace(*in.LastName)
	}

	if in.Email != nil {
		if err := validate.Email(*in.Email); err != nil {
			return types.Employee{}, err
		}
		email := strings.ToLower(strings.TrimSpace(*in.Email))
		if err := s.ensureUniqueEmail(ctx, email, oid); err != nil {
			return types.Employee{}, err
		}
		employee.Email = email
	}

	if in.Gender != nil {
		if err := validate.NonEmpty(*in.Gender, "gender"); err != nil {
			return types.Employee{}, err
		}
		if err := validate.Gender(*in.Gender); err != nil {
			return types.Employee{}, err
		}
		employee.Gender = *in.Gender
	}

	if in.Designation != nil {
		if err := validate.NonEmpty(*in.Designation, "designation"); err != nil {
			return types.Employee{}, err
		}
		employee.Designation = strings.TrimSpace(*in.Designation)
	}

	if in.Salary != nil {
		if err := validate.Salary(*in.Salary); err != nil {
			return types.Employee{}, err
		}
		employee.Salary = *in.Salary
	}

	if in.DateOfJoining != nil {
		dateOfJoining, err := validate.Date(*in.DateOfJoining, "date_of_joining")
		if err != nil {
			return types.Employee{}, err
		}
		employee.DateOfJoining = dateOfJoining
	}

	if in.Department != nil {
		if err := validate.NonEmpty(*in.Department, "department"); err != nil {
			return types.Employee{}, err
		}
		employee.Department = strings.TrimSpace(*in.Department)
	}

	if in.EmployeePhoto != nil {
		if err := validate.NonEmpty(*in.EmployeePhoto, "employee_photo"); err != nil {
			return types.Employee{}, err
		}
		photoURL, err := s.photos.Upload(ctx, *in.EmployeePhoto)
		if err != nil {
			return types.Employee{}, err
		}
		employee.EmployeePhoto = photoURL
	}

	updated, err := s.repo.Update(ctx, employee)
	if err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return types.Employee{}, &ConflictError{Message: "Employee email already exists."}
		}
		return types.Employee{}, err
	}

	s.notify(ctx, "updated", updated)
	return updated, nil
}

// Delete removes an employee by id. A malformed id is a validation error;
// a missing record surfaces as store.ErrNotFound.
func (s *EmployeeService) Delete(ctx context.Context, id string) error {
	oid, err := validate.ObjectID(id, "employee id")
	if err != nil {
		return err
	}

	employee, err := s.repo.GetByID(ctx, oid)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, oid); err != nil {
		return err
	}

	s.notify(ctx, "deleted", employee)
	return nil
}

// ensureUniqueEmail rejects an email already used by another employee.
// The employee identified by self is excluded, so an update may keep its
// own address.
func (s *EmployeeService) ensureUniqueEmail(ctx context.Context, email string, self primitive.ObjectID) error {
	existing, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil
		}
		return err
	}
	if existing.ID == self {
		return nil
	}
	return &ConflictError{Message: "Employee email already exists."}
}

// notify publishes a lifecycle event best-effort. A broker failure never
// fails the enclosing mutation.
func (s *EmployeeService) notify(ctx context.Context, kind string, employee types.Employee) {
	if s.events == nil {
		return
	}
	var err error
	switch kind {
	case "created":
		err = s.events.Created(ctx, employee)
	case "updated":
		err = s.events.Updated(ctx, employee)
	case "deleted":
		err = s.events.Deleted(ctx, employee)
	}
	if err != nil {
		log.Printf("publish employee event: %v", err)
	}
}
