package postgres // import "github.com/openscholar/contribution-processor/pkg/persistence/postgres"

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
)

// JsonbPayload is the jsonb payload type for a postgres table column
type JsonbPayload map[string]interface{}

// Value implements the driver.Valuer interface for JsonbPayload
func (jp JsonbPayload) Value() (driver.Value, error) {
	return json.Marshal(jp)
}

// Scan implements the sql.Scanner interface for JsonbPayload
func (jp *JsonbPayload) Scan(src interface{}) error {
	source, ok := src.([]byte)
	if !ok {
		return fmt.Errorf("Type assertion .([]byte) failed for jsonb scan")
	}
	var payload map[string]interface{}
	err := json.Unmarshal(source, &payload)
	if err != nil {
		return err
	}
	*jp = payload
	return nil
}

// DbFieldNameFromModelName returns the db struct tag name on the db struct
// for a given model field name
func DbFieldNameFromModelName(exampleStruct interface{}, modelName string) (string, error) {
	structType := reflect.TypeOf(exampleStruct)
	field, ok := structType.FieldByName(modelName)
	if !ok {
		return "", fmt.Errorf("No field named %v on %v", modelName, structType.Name())
	}
	return field.Tag.Get("db"), nil
}

// GetAllStructFieldsForQuery returns the fields of a db struct as strings
// for a SQL query. If colon is true, the second return has the fields
// prepended with ":" for a named insert query, else it is empty.
func GetAllStructFieldsForQuery(exampleStruct interface{}, colon bool) (string, string) {
	structType := reflect.TypeOf(exampleStruct)
	fields := make([]string, 0, structType.NumField())
	colonFields := make([]string, 0, structType.NumField())
	for i := 0; i < structType.NumField(); i++ {
		dbName := structType.Field(i).Tag.Get("db")
		if dbName == "" {
			continue
		}
		fields = append(fields, dbName)
		if colon {
			colonFields = append(colonFields, ":"+dbName)
		}
	}
	return strings.Join(fields, ", "), strings.Join(colonFields, ", ")
}

// UpdateAssignmentsForFields returns the "col=:col" assignment strings for
// an UPDATE query given the model field names to update
func UpdateAssignmentsForFields(exampleStruct interface{}, updatedFields []string) ([]string, error) {
	assignments := make([]string, len(updatedFields))
	for i, modelName := range updatedFields {
		dbName, err := DbFieldNameFromModelName(exampleStruct, modelName)
		if err != nil {
			return nil, err
		}
		assignments[i] = fmt.Sprintf("%s=:%s", dbName, dbName)
	}
	return assignments, nil
}

// ListStringToString converts a list of strings to a single comma delimited
// string for storage
// NOTE: golang<->postgres doesn't support list of strings, so lists
// are stored as comma delimited strings
func ListStringToString(list []string) string {
	return strings.Join(list, ",")
}

// StringToListString converts a comma delimited string to a list of strings
func StringToListString(joined string) []string {
	if joined == "" {
		return []string{}
	}
	return strings.Split(joined, ",")
}
