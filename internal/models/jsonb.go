package models

import (
	"database/sql/driver"
	"errors"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// JSONB holds a schemaless document body.
type JSONB map[string]any

func (j JSONB) Value() (driver.Value, error) {
	if j == nil {
		return "{}", nil
	}
	b, err := json.Marshal(j)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (j *JSONB) Scan(value any) error {
	var b []byte
	switch v := value.(type) {
	case nil:
		*j = JSONB{}
		return nil
	case []byte:
		b = v
	case string:
		b = []byte(v)
	default:
		return errors.New("jsonb: unsupported scan type")
	}
	out := JSONB{}
	if err := json.Unmarshal(b, &out); err != nil {
		return err
	}
	*j = out
	return nil
}

func (JSONB) GormDataType() string {
	return "jsonb"
}
