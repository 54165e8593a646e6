package graph

import (
	"errors"

	"github.com/empgraph/apiserver/internal/services"
	"github.com/empgraph/apiserver/internal/store"
	"github.com/empgraph/apiserver/types"
	"github.com/graphql-go/graphql"
)

// Resolver is the root resolver; it holds the services the schema
// dispatches to.
type Resolver struct {
	Accounts  *services.AccountService
	Employees *services.EmployeeService
}

// AuthResponse is the envelope for signup and login.
type AuthResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	User    *types.User `json:"user"`
}

// EmployeeResponse is the envelope for single-employee operations.
type EmployeeResponse struct {
	Success  bool            `json:"success"`
	Message  string          `json:"message"`
	Employee *types.Employee `json:"employee"`
}

// DeleteResponse is the envelope for delete operations.
type DeleteResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func (r *Resolver) login(p graphql.ResolveParams) (interface{}, error) {
	user, err := r.Accounts.Login(p.Context, types.LoginInput{
		Username: stringArg(p.Args, "username"),
		Email:    stringArg(p.Args, "email"),
		Password: stringArg(p.Args, "password"),
	})
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			return AuthResponse{Success: false, Message: "Invalid credentials.", User: nil}, nil
		}
		return nil, err
	}
	return AuthResponse{Success: true, Message: "Login successful.", User: &user}, nil
}

func (r *Resolver) getAllEmployees(p graphql.ResolveParams) (interface{}, error) {
	return r.Employees.List(p.Context)
}

func (r *Resolver) searchEmployeeByEid(p graphql.ResolveParams) (interface{}, error) {
	employee, err := r.Employees.GetByID(p.Context, stringArg(p.Args, "eid"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return EmployeeResponse{Success: false, Message: "Employee not found.", Employee: nil}, nil
		}
		return nil, err
	}
	return EmployeeResponse{Success: true, Message: "Employee fetched successfully.", Employee: &employee}, nil
}

func (r *Resolver) searchEmployeeByDesignationOrDepartment(p graphql.ResolveParams) (interface{}, error) {
	return r.Employees.Search(p.Context, stringArg(p.Args, "designation"), stringArg(p.Args, "department"))
}

func (r *Resolver) signup(p graphql.ResolveParams) (interface{}, error) {
	input, ok := p.Args["input"].(map[string]interface{})
	if !ok {
		return nil, errors.New("invalid signup input")
	}

	user, err := r.Accounts.Signup(p.Context, types.SignupInput{
		Username: stringArg(input, "username"),
		Email:    stringArg(input, "email"),
		Password: stringArg(input, "password"),
	})
	if err != nil {
		return nil, err
	}
	return AuthResponse{Success: true, Message: "Signup successful.", User: &user}, nil
}

func (r *Resolver) addNewEmployee(p graphql.ResolveParams) (interface{}, error) {
	input, ok := p.Args["input"].(map[string]interface{})
	if !ok {
		return nil, errors.New("invalid employee input")
	}

	employee, err := r.Employees.Create(p.Context, types.EmployeeInput{
		FirstName:     stringArg(input, "first_name"),
		LastName:      stringArg(input, "last_name"),
		Email:         stringArg(input, "email"),
		Gender:        stringArg(input, "gender"),
		Designation:   stringArg(input, "designation"),
		Salary:        floatArg(input, "salary"),
		DateOfJoining: stringArg(input, "date_of_joining"),
		Department:    stringArg(input, "department"),
		EmployeePhoto: stringArg(input, "employee_photo"),
	})
	if err != nil {
		return nil, err
	}
	return EmployeeResponse{Success: true, Message: "Employee added successfully.", Employee: &employee}, nil
}

func (r *Resolver) updateEmployeeByEid(p graphql.ResolveParams) (interface{}, error) {
	input, ok := p.Args["input"].(map[string]interface{})
	if !ok {
		return nil, errors.New("invalid employee update input")
	}

	employee, err := r.Employees.Update(p.Context, stringArg(p.Args, "eid"), types.EmployeeUpdateInput{
		FirstName:     optStringArg(input, "first_name"),
		LastName:      optStringArg(input, "last_name"),
		Email:         optStringArg(input, "email"),
		Gender:        optStringArg(input, "gender"),
		Designation:   optStringArg(input, "designation"),
		Salary:        optFloatArg(input, "salary"),
		DateOfJoining: optStringArg(input, "date_of_joining"),
		Department:    optStringArg(input, "department"),
		EmployeePhoto: optStringArg(input, "employee_photo"),
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return EmployeeResponse{Success: false, Message: "Employee not found.", Employee: nil}, nil
		}
		return nil, err
	}
	return EmployeeResponse{Success: true, Message: "Employee updated successfully.", Employee: &employee}, nil
}

func (r *Resolver) deleteEmployeeByEid(p graphql.ResolveParams) (interface{}, error) {
	err := r.Employees.Delete(p.Context, stringArg(p.Args, "eid"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return DeleteResponse{Success: false, Message: "Employee not found."}, nil
		}
		return nil, err
	}
	return DeleteResponse{Success: true, Message: "Employee deleted successfully."}, nil
}

func stringArg(args map[string]interface{}, key string) string {
	if value, ok := args[key].(string); ok {
		return value
	}
	return ""
}

func floatArg(args map[string]interface{}, key string) float64 {
	switch value := args[key].(type) {
	case float64:
		return value
	case int:
		return float64(value)
	}
	return 0
}

// optStringArg distinguishes an absent key from an empty value. An explicit
// null counts as present and fails the per-field validation downstream,
// matching the create rules.
func optStringArg(args map[string]interface{}, key string) *string {
	value, ok := args[key]
	if !ok {
		return nil
	}
	text, _ := value.(string)
	return &text
}

func optFloatArg(args map[string]interface{}, key string) *float64 {
	value, ok := args[key]
	if !ok {
		return nil
	}
	var number float64
	switch typed := value.(type) {
	case float64:
		number = typed
	case int:
		number = float64(typed)
	}
	return &number
}
