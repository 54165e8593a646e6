package types

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Valid values for the Employee Gender field.
const (
	GenderMale   = "Male"
	GenderFemale = "Female"
	GenderOther  = "Other"
)

// Employee represents a record in the employee directory.
type Employee struct {
	// ID is the store-assigned unique identifier of the employee.
	ID primitive.ObjectID `json:"_id" bson:"_id,omitempty"`

	// FirstName is the employee's given name, stored trimmed.
	FirstName string `json:"first_name" bson:"first_name"`

	// LastName is the employee's family name, stored trimmed.
	LastName string `json:"last_name" bson:"last_name"`

	// Email is the employee's work email, stored trimmed and lowercased.
	// It is unique among employees.
	Email string `json:"email" bson:"email"`

	// Gender is one of Male, Female or Other.
	Gender string `json:"gender" bson:"gender"`

	// Designation is the employee's job title.
	Designation string `json:"designation" bson:"designation"`

	// Salary is the employee's salary. It is always >= 1000.
	Salary float64 `json:"salary" bson:"salary"`

	// DateOfJoining is the calendar date the employee joined.
	DateOfJoining time.Time `json:"date_of_joining" bson:"date_of_joining"`

	// Department is the organisational unit the employee belongs to.
	Department string `json:"department" bson:"department"`

	// EmployeePhoto is the durable URL produced by the photo store.
	// Raw photo payloads are never persisted.
	EmployeePhoto string `json:"employee_photo" bson:"employee_photo"`

	// CreatedAt is the timestamp when the record was created.
	CreatedAt time.Time `json:"created_at" bson:"created_at"`

	// UpdatedAt is the timestamp of the most recent update to the record.
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

// EmployeeInput carries the fields required to create an employee.
// EmployeePhoto holds the raw photo payload handed to the photo store,
// not a stored URL.
type EmployeeInput struct {
	FirstName     string  `json:"first_name"`
	LastName      string  `json:"last_name"`
	Email         string  `json:"email"`
	Gender        string  `json:"gender"`
	Designation   string  `json:"designation"`
	Salary        float64 `json:"salary"`
	DateOfJoining string  `json:"date_of_joining"`
	Department    string  `json:"department"`
	EmployeePhoto string  `json:"employee_photo"`
}

// EmployeeUpdateInput carries a partial update. Nil fields were not
// supplied by the caller and leave the stored value untouched.
type EmployeeUpdateInput struct {
	FirstName     *string  `json:"first_name"`
	LastName      *string  `json:"last_name"`
	Email         *string  `json:"email"`
	Gender        *string  `json:"gender"`
	Designation   *string  `json:"designation"`
	Salary        *float64 `json:"salary"`
	DateOfJoining *string  `json:"date_of_joining"`
	Department    *string  `json:"department"`
	EmployeePhoto *string  `json:"employee_photo"`
}
