package services

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/SimpleYM/SimpleYM-Backend/src/models"
)

type FieldType string

const (
	FieldString    FieldType = "String"
	FieldInteger   FieldType = "Integer"
	FieldNumber    FieldType = "Number"
	FieldBoolean   FieldType = "Boolean"
	FieldTimestamp FieldType = "Timestamp"
)

type SchemaField struct {
	Name string
	Type FieldType
}

// Collection describes one record table reachable through the generic record endpoints.
type Collection struct {
	Name       string
	Model      func() any
	Fields     []SchemaField
	Insertable bool
}

var collections = []Collection{
	{
		Name:  "trailer_master",
		Model: func() any { return &models.TrailerModel{} },
		Fields: []SchemaField{
			{"id", FieldString},
			{"year", FieldInteger},
			{"length", FieldInteger},
			{"manufacturer", FieldString},
			{"roll_up_door", FieldBoolean},
			{"reefer", FieldBoolean},
			{"zones", FieldInteger},
			{"timestamp", FieldTimestamp},
			{"timestamp_est", FieldTimestamp},
			{"updated_at", FieldTimestamp},
			{"updated_at_est", FieldTimestamp},
		},
		Insertable: true,
	},
	{
		Name:  "user_master",
		Model: func() any { return &models.UserModel{} },
		Fields: []SchemaField{
			{"id", FieldString},
			{"name", FieldString},
			{"email", FieldString},
			{"role", FieldString},
		},
	},
	{
		Name:  "moves",
		Model: func() any { return &models.MoveModel{} },
		Fields: []SchemaField{
			{"id", FieldString},
			{"trailer_id", FieldString},
			{"from_wh_yard", FieldString},
			{"from_door", FieldString},
			{"to_location", FieldString},
			{"to_door", FieldString},
			{"status", FieldString},
			{"timestamp", FieldTimestamp},
			{"timestamp_est", FieldTimestamp},
			{"picked_up_at", FieldTimestamp},
			{"completed_at", FieldTimestamp},
			{"user_id", FieldString},
			{"email", FieldString},
			{"updated_at", FieldTimestamp},
			{"updated_at_est", FieldTimestamp},
		},
		Insertable: true,
	},
	{
		Name:  "temperature_checks",
		Model: func() any { return &models.TemperatureCheckModel{} },
		Fields: []SchemaField{
			{"id", FieldString},
			{"trailer_id", FieldString},
			{"clr_temp", FieldNumber},
			{"fzr_temp", FieldNumber},
			{"timestamp", FieldTimestamp},
			{"user_id", FieldString},
			{"email", FieldString},
		},
		Insertable: true,
	},
	{
		Name:  "inbound_pos",
		Model: func() any { return &models.InboundPOModel{} },
		Fields: []SchemaField{
			{"id", FieldString},
			{"po_numbers", FieldString},
			{"trailer_id", FieldString},
			{"status", FieldString},
			{"timestamp", FieldTimestamp},
			{"timestamp_est", FieldTimestamp},
		},
		Insertable: true,
	},
	{
		Name:  "load_submission",
		Model: func() any { return &models.LoadSubmissionModel{} },
		Fields: []SchemaField{
			{"id", FieldString},
			{"user_id", FieldString},
			{"trailer_id", FieldString},
			{"from_wh", FieldString},
			{"from_door", FieldString},
			{"timestamp", FieldTimestamp},
			{"timestamp_est", FieldTimestamp},
		},
		Insertable: true,
	},
	{
		Name:  "locations",
		Model: func() any { return &models.LocationModel{} },
		Fields: []SchemaField{
			{"id", FieldString},
			{"name", FieldString},
			{"type", FieldString},
			{"capacity", FieldInteger},
			{"description", FieldString},
			{"active", FieldBoolean},
			{"created_at", FieldTimestamp},
		},
		Insertable: true,
	},
}

// LookupCollection finds a registered collection by table name.
func LookupCollection(name string) (Collection, error) {
	for _, c := range collections {
		if c.Name == name {
			return c, nil
		}
	}
	return Collection{}, fmt.Errorf("%w: %q", ErrUnknownCollection, name)
}

// Collections lists every registered collection.
func Collections() []Collection {
	out := make([]Collection, len(collections))
	copy(out, collections)
	return out
}

// Models returns a fresh model per collection, in registry order.
func Models() []any {
	out := make([]any, 0, len(collections))
	for _, c := range collections {
		out = append(out, c.Model())
	}
	return out
}

// Schema returns the field types of every collection as published by /collection-schema.
func Schema() map[string]map[string]string {
	out := make(map[string]map[string]string, len(collections))
	for _, c := range collections {
		fields := make(map[string]string, len(c.Fields))
		for _, f := range c.Fields {
			t := f.Type
			if t == FieldInteger {
				t = FieldNumber
			}
			fields[f.Name] = string(t)
		}
		out[c.Name] = fields
	}
	return out
}

func (c Collection) Columns() []string {
	out := make([]string, len(c.Fields))
	for i, f := range c.Fields {
		out[i] = f.Name
	}
	return out
}

func (c Collection) field(name string) (SchemaField, bool) {
	for _, f := range c.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return SchemaField{}, false
}

func (c Collection) HasField(name string) bool {
	_, ok := c.field(name)
	return ok
}

// Normalize maps raw input keys onto the collection's columns and coerces each value to
// the column type. Keys that are not columns are returned in dropped.
func (c Collection) Normalize(raw map[string]any) (row map[string]any, dropped []string, err error) {
	row = make(map[string]any, len(raw))
	for key, value := range raw {
		name := NormalizeHeader(key)
		f, ok := c.field(name)
		if !ok {
			dropped = append(dropped, key)
			continue
		}
		v, err := coerce(f.Type, value)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %s.%s: %v", ErrValidation, c.Name, name, err)
		}
		row[name] = v
	}
	return row, dropped, nil
}

// NormalizeHeader turns a spreadsheet or payload key into a column name.
func NormalizeHeader(key string) string {
	key = strings.ToLower(strings.TrimSpace(key))
	key = strings.Join(strings.Fields(key), "_")
	return strings.ReplaceAll(key, "-", "_")
}

func coerce(t FieldType, value any) (any, error) {
	if value == nil {
		return nil, nil
	}
	switch t {
	case FieldString, FieldTimestamp:
		switch v := value.(type) {
		case string:
			return strings.TrimSpace(v), nil
		case float64:
			return strconv.FormatFloat(v, 'f', -1, 64), nil
		case time.Time:
			return v.Format(time.RFC3339), nil
		default:
			return fmt.Sprint(v), nil
		}
	case FieldInteger:
		switch v := value.(type) {
		case float64:
			if v != math.Trunc(v) {
				return nil, fmt.Errorf("%v is not a whole number", v)
			}
			return int64(v), nil
		case int:
			return int64(v), nil
		case int64:
			return v, nil
		case string:
			s := strings.TrimSpace(v)
			if s == "" {
				return nil, nil
			}
			n, err := strconv.ParseFloat(s, 64)
			if err != nil || n != math.Trunc(n) {
				return nil, fmt.Errorf("%q is not a whole number", v)
			}
			return int64(n), nil
		}
	case FieldNumber:
		switch v := value.(type) {
		case float64:
			return v, nil
		case int:
			return float64(v), nil
		case int64:
			return float64(v), nil
		case string:
			s := strings.TrimSpace(v)
			if s == "" {
				return nil, nil
			}
			n, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return nil, fmt.Errorf("%q is not a number", v)
			}
			return n, nil
		}
	case FieldBoolean:
		switch v := value.(type) {
		case bool:
			return v, nil
		case float64:
			return v != 0, nil
		case string:
			switch strings.ToLower(strings.TrimSpace(v)) {
			case "true", "yes", "y", "1", "x":
				return true, nil
			case "false", "no", "n", "0", "":
				return false, nil
			}
			return nil, fmt.Errorf("%q is not a yes/no value", v)
		}
	}
	return nil, fmt.Errorf("unsupported value %v", value)
}
