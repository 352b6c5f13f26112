package jobs

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/qri-io/jsonschema"

	"github.com/garnizeh/employees/internal/service"
	"github.com/garnizeh/employees/pkg/models"
)

// Payloads are gated against this schema before decoding, so a corrupt row
// in the jobs table fails loudly instead of half-decoding into an employee.
const employeeSchemaJSON = `{
	"type": "object",
	"required": ["firstName", "lastName"],
	"properties": {
		"employeeId": {"type": "integer"},
		"firstName": {"type": "string"},
		"lastName": {"type": "string"},
		"departmentId": {"type": ["integer", "null"]},
		"jobTitle": {"type": "string"},
		"gender": {"enum": ["MALE", "FEMALE", "UNSPECIFIED"]},
		"dateOfBirth": {"type": "string"}
	}
}`

var employeeSchema = mustSchema(employeeSchemaJSON)

func mustSchema(s string) *jsonschema.Schema {
	rs := &jsonschema.Schema{}
	if err := json.Unmarshal([]byte(s), rs); err != nil {
		panic(fmt.Sprintf("compile employee schema: %v", err))
	}
	return rs
}

// CreateEmployeeHandler returns the employee.create consumer: validate the
// payload shape, decode, and persist through the same service create path
// the synchronous API uses.
func CreateEmployeeHandler(svc *service.EmployeeService, logger *slog.Logger) Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return func(ctx context.Context, j *Job) error {
		keyErrs, err := employeeSchema.ValidateBytes(ctx, j.Payload)
		if err != nil {
			return fmt.Errorf("validate employee payload: %w", err)
		}
		if len(keyErrs) > 0 {
			return fmt.Errorf("invalid employee payload: %s", keyErrs[0].Message)
		}

		var e models.Employee
		if err := json.Unmarshal(j.Payload, &e); err != nil {
			return fmt.Errorf("decode employee payload: %w", err)
		}

		created, err := svc.Create(ctx, &e)
		if err != nil {
			return fmt.Errorf("create employee from queue: %w", err)
		}
		logger.Info("employee created from queue", "employeeId", created.EmployeeID, "jobId", j.ID)
		return nil
	}
}
