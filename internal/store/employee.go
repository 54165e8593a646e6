package store

import (
	"context"
	"errors"
	"regexp"
	"time"

	"github.com/empgraph/apiserver/types"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EmployeeRepository handles persistence for employees.
type EmployeeRepository struct {
	collection *mongo.Collection
}

func NewEmployeeRepository(collection *mongo.Collection) *EmployeeRepository {
	return &EmployeeRepository{collection: collection}
}

func (r *EmployeeRepository) Create(ctx context.Context, employee types.Employee) (types.Employee, error) {
	now := time.Now().UTC()
	employee.CreatedAt = now
	employee.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, employee)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return types.Employee{}, ErrDuplicate
		}
		return types.Employee{}, err
	}
	if id, ok := result.InsertedID.(primitive.ObjectID); ok {
		employee.ID = id
	}
	return employee, nil
}

// List returns all employees, newest first.
func (r *EmployeeRepository) List(ctx context.Context) ([]types.Employee, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}

	employees := make([]types.Employee, 0)
	if err := cursor.All(ctx, &employees); err != nil {
		return nil, err
	}
	return employees, nil
}

func (r *EmployeeRepository) GetByID(ctx context.Context, id primitive.ObjectID) (types.Employee, error) {
	var employee types.Employee
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&employee)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return types.Employee{}, ErrNotFound
		}
		return types.Employee{}, err
	}
	return employee, nil
}

func (r *EmployeeRepository) GetByEmail(ctx context.Context, email string) (types.Employee, error) {
	var employee types.Employee
	err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&employee)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return types.Employee{}, ErrNotFound
		}
		return types.Employee{}, err
	}
	return employee, nil
}

// Search returns employees whose designation or department contains the
// respective filter, case-insensitively. Blank filters are ignored by the
// caller; at least one is expected to be set. Results are newest first.
func (r *EmployeeRepository) Search(ctx context.Context, designation, department string) ([]types.Employee, error) {
	orConditions := make([]bson.M, 0, 2)
	if designation != "" {
		orConditions = append(orConditions, bson.M{
			"designation": primitive.Regex{Pattern: regexp.QuoteMeta(designation), Options: "i"},
		})
	}
	if department != "" {
		orConditions = append(orConditions, bson.M{
			"department": primitive.Regex{Pattern: regexp.QuoteMeta(department), Options: "i"},
		})
	}
	if len(orConditions) == 0 {
		return []types.Employee{}, nil
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"$or": orConditions}, opts)
	if err != nil {
		return nil, err
	}

	employees := make([]types.Employee, 0)
	if err := cursor.All(ctx, &employees); err != nil {
		return nil, err
	}
	return employees, nil
}

// Update replaces the stored document and refreshes updated_at.
func (r *EmployeeRepository) Update(ctx context.Context, employee types.Employee) (types.Employee, error) {
	employee.UpdatedAt = time.Now().UTC()

	result, err := r.collection.ReplaceOne(ctx, bson.M{"_id": employee.ID}, employee)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return types.Employee{}, ErrDuplicate
		}
		return types.Employee{}, err
	}
	if result.MatchedCount == 0 {
		return types.Employee{}, ErrNotFound
	}
	return employee, nil
}

// Delete atomically finds and removes the employee with the given id.
func (r *EmployeeRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	err := r.collection.FindOneAndDelete(ctx, bson.M{"_id": id}).Err()
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrNotFound
		}
		return err
	}
	return nil
}
