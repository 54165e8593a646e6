package graph

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/empgraph/apiserver/internal/services"
	"github.com/empgraph/apiserver/internal/store"
	"github.com/empgraph/apiserver/types"
	"github.com/graphql-go/graphql"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var objectIDHex = regexp.MustCompile(`^[0-9a-f]{24}$`)

type stubUserRepo struct {
	users []types.User
}

func (s *stubUserRepo) GetByUsername(_ context.Context, username string) (types.User, error) {
	for _, user := range s.users {
		if user.Username == username {
			return user, nil
		}
	}
	return types.User{}, store.ErrNotFound
}

func (s *stubUserRepo) GetByEmail(_ context.Context, email string) (types.User, error) {
	for _, user := range s.users {
		if user.Email == email {
			return user, nil
		}
	}
	return types.User{}, store.ErrNotFound
}

func (s *stubUserRepo) Create(_ context.Context, user types.User) (types.User, error) {
	now := time.Now().UTC()
	user.ID = primitive.NewObjectID()
	user.CreatedAt = now
	user.UpdatedAt = now
	s.users = append(s.users, user)
	return user, nil
}

type stubEmployeeRepo struct {
	employees []types.Employee
	clock     time.Time
}

func newStubEmployeeRepo() *stubEmployeeRepo {
	return &stubEmployeeRepo{clock: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (s *stubEmployeeRepo) tick() time.Time {
	s.clock = s.clock.Add(time.Second)
	return s.clock
}

func (s *stubEmployeeRepo) Create(_ context.Context, employee types.Employee) (types.Employee, error) {
	for _, existing := range s.employees {
		if existing.Email == employee.Email {
			return types.Employee{}, store.ErrDuplicate
		}
	}
	now := s.tick()
	employee.ID = primitive.NewObjectID()
	employee.CreatedAt = now
	employee.UpdatedAt = now
	s.employees = append(s.employees, employee)
	return employee, nil
}

func (s *stubEmployeeRepo) List(_ context.Context) ([]types.Employee, error) {
	out := make([]types.Employee, len(s.employees))
	copy(out, s.employees)
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *stubEmployeeRepo) GetByID(_ context.Context, id primitive.ObjectID) (types.Employee, error) {
	for _, employee := range s.employees {
		if employee.ID == id {
			return employee, nil
		}
	}
	return types.Employee{}, store.ErrNotFound
}

func (s *stubEmployeeRepo) GetByEmail(_ context.Context, email string) (types.Employee, error) {
	for _, employee := range s.employees {
		if employee.Email == email {
			return employee, nil
		}
	}
	return types.Employee{}, store.ErrNotFound
}

func (s *stubEmployeeRepo) Search(_ context.Context, designation, department string) ([]types.Employee, error) {
	matches := make([]types.Employee, 0)
	for _, employee := range s.employees {
		if designation != "" && strings.Contains(strings.ToLower(employee.Designation), strings.ToLower(designation)) {
			matches = append(matches, employee)
			continue
		}
		if department != "" && strings.Contains(strings.ToLower(employee.Department), strings.ToLower(department)) {
			matches = append(matches, employee)
		}
	}
	sort.Slice(matches, func(i, j int) bool { return matches[i].CreatedAt.After(matches[j].CreatedAt) })
	return matches, nil
}

func (s *stubEmployeeRepo) Update(_ context.Context, employee types.Employee) (types.Employee, error) {
	for i, existing := range s.employees {
		if existing.ID == employee.ID {
			employee.UpdatedAt = s.tick()
			s.employees[i] = employee
			return employee, nil
		}
	}
	return types.Employee{}, store.ErrNotFound
}

func (s *stubEmployeeRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	for i, employee := range s.employees {
		if employee.ID == id {
			s.employees = append(s.employees[:i], s.employees[i+1:]...)
			return nil
		}
	}
	return store.ErrNotFound
}

type stubUploader struct {
	uploads int
}

func (s *stubUploader) Upload(_ context.Context, _ string) (string, error) {
	s.uploads++
	return fmt.Sprintf("https://photos.test/%d.png", s.uploads), nil
}

func newTestSchema(t *testing.T) graphql.Schema {
	t.Helper()
	resolver := &Resolver{
		Accounts:  services.NewAccountService(&stubUserRepo{}),
		Employees: services.NewEmployeeService(newStubEmployeeRepo(), &stubUploader{}, nil),
	}
	schema, err := NewSchema(resolver)
	if err != nil {
		t.Fatalf("build schema: %v", err)
	}
	return schema
}

func execute(t *testing.T, schema graphql.Schema, query string, variables map[string]interface{}) *graphql.Result {
	t.Helper()
	return graphql.Do(graphql.Params{
		Schema:         schema,
		RequestString:  query,
		VariableValues: variables,
		Context:        context.Background(),
	})
}

// envelope digs the named top-level field out of a result that must have
// executed without errors.
func envelope(t *testing.T, result *graphql.Result, field string) map[string]interface{} {
	t.Helper()
	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	data, ok := result.Data.(map[string]interface{})
	if !ok {
		t.Fatalf("unexpected data shape: %T", result.Data)
	}
	env, ok := data[field].(map[string]interface{})
	if !ok {
		t.Fatalf("field %q missing or not an object: %v", field, data[field])
	}
	return env
}

func firstErrorMessage(result *graphql.Result) string {
	if len(result.Errors) == 0 {
		return ""
	}
	return result.Errors[0].Message
}

const signupMutation = `
mutation ($input: SignupInput!) {
	signup(input: $input) {
		success
		message
		user { _id username email created_at updated_at }
	}
}`

const loginQuery = `
query ($username: String, $email: String, $password: String!) {
	login(username: $username, email: $email, password: $password) {
		success
		message
		user { _id username email }
	}
}`

const addEmployeeMutation = `
mutation ($input: EmployeeInput!) {
	addNewEmployee(input: $input) {
		success
		message
		employee { _id first_name last_name email gender designation salary date_of_joining department employee_photo }
	}
}`

const updateEmployeeMutation = `
mutation ($eid: ID!, $input: EmployeeUpdateInput!) {
	updateEmployeeByEid(eid: $eid, input: $input) {
		success
		message
		employee { _id first_name last_name email salary designation department employee_photo }
	}
}`

const deleteEmployeeMutation = `
mutation ($eid: ID!) {
	deleteEmployeeByEid(eid: $eid) { success message }
}`

const searchByEidQuery = `
query ($eid: ID!) {
	searchEmployeeByEid(eid: $eid) {
		success
		message
		employee { _id email }
	}
}`

func employeeVariables(email string) map[string]interface{} {
	return map[string]interface{}{
		"input": map[string]interface{}{
			"first_name":      "Ada",
			"last_name":       "Lovelace",
			"email":           email,
			"gender":          "Female",
			"designation":     "Senior Engineer",
			"salary":          85000.0,
			"date_of_joining": "2023-06-15",
			"department":      "Engineering",
			"employee_photo":  "data:image/png;base64,aGVsbG8=",
		},
	}
}

func TestSignupAndLogin(t *testing.T) {
	schema := newTestSchema(t)

	result := execute(t, schema, signupMutation, map[string]interface{}{
		"input": map[string]interface{}{
			"username": "ada",
			"email":    "Ada@Example.com",
			"password": "s3cret",
		},
	})
	env := envelope(t, result, "signup")
	if env["success"] != true || env["message"] != "Signup successful." {
		t.Fatalf("unexpected signup envelope: %v", env)
	}
	user := env["user"].(map[string]interface{})
	if !objectIDHex.MatchString(user["_id"].(string)) {
		t.Fatalf("_id is not a hex object id: %v", user["_id"])
	}
	if user["username"] != "ada" || user["email"] != "ada@example.com" {
		t.Fatalf("unexpected user fields: %v", user)
	}
	if _, err := time.Parse(time.RFC3339, user["created_at"].(string)); err != nil {
		t.Fatalf("created_at is not RFC3339: %v", user["created_at"])
	}

	result = execute(t, schema, loginQuery, map[string]interface{}{
		"username": "ada",
		"password": "s3cret",
	})
	env = envelope(t, result, "login")
	if env["success"] != true || env["message"] != "Login successful." {
		t.Fatalf("unexpected login envelope: %v", env)
	}

	// Email works as the lookup key too.
	result = execute(t, schema, loginQuery, map[string]interface{}{
		"email":    "ADA@example.com",
		"password": "s3cret",
	})
	env = envelope(t, result, "login")
	if env["success"] != true {
		t.Fatalf("login by email failed: %v", env)
	}

	// A wrong password yields a failure envelope, not a transport error.
	result = execute(t, schema, loginQuery, map[string]interface{}{
		"username": "ada",
		"password": "wrong",
	})
	env = envelope(t, result, "login")
	if env["success"] != false || env["message"] != "Invalid credentials." {
		t.Fatalf("unexpected envelope for wrong password: %v", env)
	}
	if env["user"] != nil {
		t.Fatalf("user must be null on failed login: %v", env["user"])
	}
}

func TestSignupConflictsSurfaceAsErrors(t *testing.T) {
	schema := newTestSchema(t)

	variables := map[string]interface{}{
		"input": map[string]interface{}{
			"username": "ada",
			"email":    "ada@example.com",
			"password": "s3cret",
		},
	}
	if result := execute(t, schema, signupMutation, variables); len(result.Errors) > 0 {
		t.Fatalf("first signup failed: %v", result.Errors)
	}

	result := execute(t, schema, signupMutation, variables)
	if msg := firstErrorMessage(result); msg != "Username already exists." {
		t.Fatalf("expected username conflict, got %q", msg)
	}

	variables["input"].(map[string]interface{})["username"] = "grace"
	result = execute(t, schema, signupMutation, variables)
	if msg := firstErrorMessage(result); msg != "Email already exists." {
		t.Fatalf("expected email conflict, got %q", msg)
	}
}

func TestLoginRequiresLookupKey(t *testing.T) {
	schema := newTestSchema(t)

	result := execute(t, schema, loginQuery, map[string]interface{}{"password": "s3cret"})
	if msg := firstErrorMessage(result); msg != "Provide username or email for login." {
		t.Fatalf("expected lookup-key error, got %q", msg)
	}
}

func TestEmployeeLifecycle(t *testing.T) {
	schema := newTestSchema(t)

	result := execute(t, schema, addEmployeeMutation, employeeVariables("ada.lovelace@example.com"))
	env := envelope(t, result, "addNewEmployee")
	if env["success"] != true || env["message"] != "Employee added successfully." {
		t.Fatalf("unexpected add envelope: %v", env)
	}
	employee := env["employee"].(map[string]interface{})
	eid := employee["_id"].(string)
	if !objectIDHex.MatchString(eid) {
		t.Fatalf("_id is not a hex object id: %v", eid)
	}
	if employee["employee_photo"] != "https://photos.test/1.png" {
		t.Fatalf("photo not replaced by uploaded URL: %v", employee["employee_photo"])
	}
	if employee["date_of_joining"] != "2023-06-15T00:00:00Z" {
		t.Fatalf("unexpected date_of_joining: %v", employee["date_of_joining"])
	}

	result = execute(t, schema, searchByEidQuery, map[string]interface{}{"eid": eid})
	env = envelope(t, result, "searchEmployeeByEid")
	if env["success"] != true || env["message"] != "Employee fetched successfully." {
		t.Fatalf("unexpected fetch envelope: %v", env)
	}

	// Partial update: only salary changes.
	result = execute(t, schema, updateEmployeeMutation, map[string]interface{}{
		"eid":   eid,
		"input": map[string]interface{}{"salary": 120000.0},
	})
	env = envelope(t, result, "updateEmployeeByEid")
	if env["success"] != true || env["message"] != "Employee updated successfully." {
		t.Fatalf("unexpected update envelope: %v", env)
	}
	updated := env["employee"].(map[string]interface{})
	if updated["salary"] != 120000.0 {
		t.Fatalf("salary not updated: %v", updated["salary"])
	}
	if updated["first_name"] != "Ada" || updated["designation"] != "Senior Engineer" {
		t.Fatalf("untouched fields changed: %v", updated)
	}
	if updated["employee_photo"] != "https://photos.test/1.png" {
		t.Fatalf("photo must not be re-uploaded without a new payload: %v", updated["employee_photo"])
	}

	result = execute(t, schema, deleteEmployeeMutation, map[string]interface{}{"eid": eid})
	env = envelope(t, result, "deleteEmployeeByEid")
	if env["success"] != true || env["message"] != "Employee deleted successfully." {
		t.Fatalf("unexpected delete envelope: %v", env)
	}

	// A second delete and a fetch both report not-found envelopes.
	result = execute(t, schema, deleteEmployeeMutation, map[string]interface{}{"eid": eid})
	env = envelope(t, result, "deleteEmployeeByEid")
	if env["success"] != false || env["message"] != "Employee not found." {
		t.Fatalf("unexpected second delete envelope: %v", env)
	}
	result = execute(t, schema, searchByEidQuery, map[string]interface{}{"eid": eid})
	env = envelope(t, result, "searchEmployeeByEid")
	if env["success"] != false || env["message"] != "Employee not found." {
		t.Fatalf("unexpected fetch-after-delete envelope: %v", env)
	}
	if env["employee"] != nil {
		t.Fatalf("employee must be null when not found: %v", env["employee"])
	}
}

func TestUpdateUnknownAndMalformedID(t *testing.T) {
	schema := newTestSchema(t)

	result := execute(t, schema, updateEmployeeMutation, map[string]interface{}{
		"eid":   primitive.NewObjectID().Hex(),
		"input": map[string]interface{}{"salary": 2000.0},
	})
	env := envelope(t, result, "updateEmployeeByEid")
	if env["success"] != false || env["message"] != "Employee not found." {
		t.Fatalf("unexpected envelope for unknown id: %v", env)
	}

	result = execute(t, schema, updateEmployeeMutation, map[string]interface{}{
		"eid":   "not-an-id",
		"input": map[string]interface{}{"salary": 2000.0},
	})
	if msg := firstErrorMessage(result); msg != "Invalid employee id." {
		t.Fatalf("expected invalid-id error, got %q", msg)
	}
}

func TestAddEmployeeValidationErrors(t *testing.T) {
	schema := newTestSchema(t)

	variables := employeeVariables("ada.lovelace@example.com")
	variables["input"].(map[string]interface{})["salary"] = 999.0
	result := execute(t, schema, addEmployeeMutation, variables)
	if msg := firstErrorMessage(result); msg != "Salary must be a number and >= 1000." {
		t.Fatalf("expected salary error, got %q", msg)
	}

	variables = employeeVariables("ada.lovelace@example.com")
	variables["input"].(map[string]interface{})["gender"] = "Robot"
	result = execute(t, schema, addEmployeeMutation, variables)
	if msg := firstErrorMessage(result); msg != "Gender must be Male, Female or Other." {
		t.Fatalf("expected gender error, got %q", msg)
	}
}

func TestListAndSearchQueries(t *testing.T) {
	schema := newTestSchema(t)

	seed := []struct {
		email       string
		designation string
		department  string
	}{
		{"a@example.com", "Software Engineer", "Engineering"},
		{"b@example.com", "Recruiter", "People Ops"},
	}
	for _, s := range seed {
		variables := employeeVariables(s.email)
		input := variables["input"].(map[string]interface{})
		input["designation"] = s.designation
		input["department"] = s.department
		if result := execute(t, schema, addEmployeeMutation, variables); len(result.Errors) > 0 {
			t.Fatalf("seed add failed: %v", result.Errors)
		}
	}

	result := execute(t, schema, `{ getAllEmployees { _id email } }`, nil)
	if len(result.Errors) > 0 {
		t.Fatalf("getAllEmployees failed: %v", result.Errors)
	}
	all := result.Data.(map[string]interface{})["getAllEmployees"].([]interface{})
	if len(all) != 2 {
		t.Fatalf("expected 2 employees, got %d", len(all))
	}
	// Newest first.
	if all[0].(map[string]interface{})["email"] != "b@example.com" {
		t.Fatalf("expected newest-first ordering: %v", all)
	}

	searchQuery := `
	query ($designation: String, $department: String) {
		searchEmployeeByDesignationOrDepartment(designation: $designation, department: $department) { email }
	}`

	result = execute(t, schema, searchQuery, map[string]interface{}{"designation": "engineer"})
	if len(result.Errors) > 0 {
		t.Fatalf("search failed: %v", result.Errors)
	}
	matches := result.Data.(map[string]interface{})["searchEmployeeByDesignationOrDepartment"].([]interface{})
	if len(matches) != 1 || matches[0].(map[string]interface{})["email"] != "a@example.com" {
		t.Fatalf("unexpected designation matches: %v", matches)
	}

	result = execute(t, schema, searchQuery, nil)
	if msg := firstErrorMessage(result); msg != "Provide designation or department." {
		t.Fatalf("expected blank-filter error, got %q", msg)
	}
}
