package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
)

// JSONB tipo JSON genérico para documentos dinámicos
type JSONB map[string]interface{}

// JSONBArray arreglo de documentos JSONB
type JSONBArray []JSONB

// Implementación de la interfaz Scanner
func (j *JSONB) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New("aserción de tipo fallida: no es []byte ni string")
	}
	return json.Unmarshal(bytes, j)
}

// Implementación de la interfaz Valuer
func (j JSONB) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	return json.Marshal(j)
}

func (j *JSONBArray) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New("aserción de tipo fallida: no es []byte ni string")
	}
	return json.Unmarshal(bytes, j)
}

func (j JSONBArray) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	return json.Marshal(j)
}
