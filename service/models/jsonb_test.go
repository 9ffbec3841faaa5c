package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestJSONBScanValue ida y vuelta por las interfaces Valuer y Scanner
func TestJSONBScanValue(t *testing.T) {
	original := JSONB{"upid": "UNP-1", "avance_obra": 42.5}

	raw, err := original.Value()
	require.NoError(t, err)

	var restored JSONB
	require.NoError(t, restored.Scan(raw))
	assert.Equal(t, "UNP-1", restored["upid"])
	assert.Equal(t, 42.5, restored["avance_obra"])

	// Cadena también aceptada por el Scanner
	var fromString JSONB
	require.NoError(t, fromString.Scan(`{"estado":"Terminado"}`))
	assert.Equal(t, "Terminado", fromString["estado"])
}

// TestJSONBNil el mapa nulo viaja como NULL
func TestJSONBNil(t *testing.T) {
	var j JSONB
	value, err := j.Value()
	require.NoError(t, err)
	assert.Nil(t, value)

	var restored JSONB
	require.NoError(t, restored.Scan(nil))
	assert.Nil(t, restored)

	assert.Error(t, restored.Scan(123))
}
