// Package graph defines the GraphQL schema and binds it to the account and
// employee services. Resolvers unpack arguments, call the services and
// shape results into response envelopes; no business logic lives here.
package graph

import (
	"time"

	"github.com/empgraph/apiserver/types"
	"github.com/graphql-go/graphql"
)

// NewSchema builds the executable schema over the provided resolver.
func NewSchema(r *Resolver) (graphql.Schema, error) {
	userType := graphql.NewObject(graphql.ObjectConfig{
		Name: "User",
		Fields: graphql.Fields{
			"_id": &graphql.Field{
				Type: graphql.NewNonNull(graphql.ID),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					user, ok := userFromSource(p.Source)
					if !ok {
						return nil, nil
					}
					return user.ID.Hex(), nil
				},
			},
			"username": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"email":    &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"created_at": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					user, ok := userFromSource(p.Source)
					if !ok {
						return nil, nil
					}
					return formatTime(user.CreatedAt), nil
				},
			},
			"updated_at": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					user, ok := userFromSource(p.Source)
					if !ok {
						return nil, nil
					}
					return formatTime(user.UpdatedAt), nil
				},
			},
		},
	})

	employeeType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Employee",
		Fields: graphql.Fields{
			"_id": &graphql.Field{
				Type: graphql.NewNonNull(graphql.ID),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					employee, ok := employeeFromSource(p.Source)
					if !ok {
						return nil, nil
					}
					return employee.ID.Hex(), nil
				},
			},
			"first_name":  &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"last_name":   &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"email":       &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"gender":      &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"designation": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"salary":      &graphql.Field{Type: graphql.NewNonNull(graphql.Float)},
			"date_of_joining": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					employee, ok := employeeFromSource(p.Source)
					if !ok {
						return nil, nil
					}
					return formatTime(employee.DateOfJoining), nil
				},
			},
			"department":     &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"employee_photo": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"created_at": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					employee, ok := employeeFromSource(p.Source)
					if !ok {
						return nil, nil
					}
					return formatTime(employee.CreatedAt), nil
				},
			},
			"updated_at": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					employee, ok := employeeFromSource(p.Source)
					if !ok {
						return nil, nil
					}
					return formatTime(employee.UpdatedAt), nil
				},
			},
		},
	})

	authResponseType := graphql.NewObject(graphql.ObjectConfig{
		Name: "AuthResponse",
		Fields: graphql.Fields{
			"success": &graphql.Field{Type: graphql.NewNonNull(graphql.Boolean)},
			"message": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"user":    &graphql.Field{Type: userType},
		},
	})

	employeeResponseType := graphql.NewObject(graphql.ObjectConfig{
		Name: "EmployeeResponse",
		Fields: graphql.Fields{
			"success":  &graphql.Field{Type: graphql.NewNonNull(graphql.Boolean)},
			"message":  &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"employee": &graphql.Field{Type: employeeType},
		},
	})

	deleteResponseType := graphql.NewObject(graphql.ObjectConfig{
		Name: "DeleteResponse",
		Fields: graphql.Fields{
			"success": &graphql.Field{Type: graphql.NewNonNull(graphql.Boolean)},
			"message": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		},
	})

	signupInputType := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "SignupInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"username": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"email":    &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"password": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		},
	})

	employeeInputType := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "EmployeeInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"first_name":      &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"last_name":       &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"email":           &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"gender":          &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"designation":     &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"salary":          &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.Float)},
			"date_of_joining": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"department":      &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"employee_photo":  &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		},
	})

	employeeUpdateInputType := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "EmployeeUpdateInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"first_name":      &graphql.InputObjectFieldConfig{Type: graphql.String},
			"last_name":       &graphql.InputObjectFieldConfig{Type: graphql.String},
			"email":           &graphql.InputObjectFieldConfig{Type: graphql.String},
			"gender":          &graphql.InputObjectFieldConfig{Type: graphql.String},
			"designation":     &graphql.InputObjectFieldConfig{Type: graphql.String},
			"salary":          &graphql.InputObjectFieldConfig{Type: graphql.Float},
			"date_of_joining": &graphql.InputObjectFieldConfig{Type: graphql.String},
			"department":      &graphql.InputObjectFieldConfig{Type: graphql.String},
			"employee_photo":  &graphql.InputObjectFieldConfig{Type: graphql.String},
		},
	})

	queryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"login": &graphql.Field{
				Type: graphql.NewNonNull(authResponseType),
				Args: graphql.FieldConfigArgument{
					"username": &graphql.ArgumentConfig{Type: graphql.String},
					"email":    &graphql.ArgumentConfig{Type: graphql.String},
					"password": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: r.login,
			},
			"getAllEmployees": &graphql.Field{
				Type:    graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(employeeType))),
				Resolve: r.getAllEmployees,
			},
			"searchEmployeeByEid": &graphql.Field{
				Type: graphql.NewNonNull(employeeResponseType),
				Args: graphql.FieldConfigArgument{
					"eid": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: r.searchEmployeeByEid,
			},
			"searchEmployeeByDesignationOrDepartment": &graphql.Field{
				Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(employeeType))),
				Args: graphql.FieldConfigArgument{
					"designation": &graphql.ArgumentConfig{Type: graphql.String},
					"department":  &graphql.ArgumentConfig{Type: graphql.String},
				},
				Resolve: r.searchEmployeeByDesignationOrDepartment,
			},
		},
	})

	mutationType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"signup": &graphql.Field{
				Type: graphql.NewNonNull(authResponseType),
				Args: graphql.FieldConfigArgument{
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(signupInputType)},
				},
				Resolve: r.signup,
			},
			"addNewEmployee": &graphql.Field{
				Type: graphql.NewNonNull(employeeResponseType),
				Args: graphql.FieldConfigArgument{
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(employeeInputType)},
				},
				Resolve: r.addNewEmployee,
			},
			"updateEmployeeByEid": &graphql.Field{
				Type: graphql.NewNonNull(employeeResponseType),
				Args: graphql.FieldConfigArgument{
					"eid":   &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(employeeUpdateInputType)},
				},
				Resolve: r.updateEmployeeByEid,
			},
			"deleteEmployeeByEid": &graphql.Field{
				Type: graphql.NewNonNull(deleteResponseType),
				Args: graphql.FieldConfigArgument{
					"eid": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: r.deleteEmployeeByEid,
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query:    queryType,
		Mutation: mutationType,
	})
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func userFromSource(source interface{}) (*types.User, bool) {
	switch user := source.(type) {
	case *types.User:
		return user, user != nil
	case types.User:
		return &user, true
	}
	return nil, false
}

func employeeFromSource(source interface{}) (*types.Employee, bool) {
	switch employee := source.(type) {
	case *types.Employee:
		return employee, employee != nil
	case types.Employee:
		return &employee, true
	}
	return nil, false
}
