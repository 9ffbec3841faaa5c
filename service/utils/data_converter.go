/*
 * @module service/utils/data_converter
 * @description Utilidades de conversión de datos: coerción numérica tolerante
 * (montos con símbolos de moneda, separadores de miles) y normalización de texto
 * @architecture Funciones utilitarias sin estado
 * @documentReference dev_docs/calidad_datos_req.md
 * @stateFlow Sin estado: entrada -> conversión -> salida
 * @rules Los valores no interpretables se reportan como no disponibles, nunca como error
 * @dependencies github.com/spf13/cast, golang.org/x/text
 * @refs service/quality/scanner.go, service/quality/rules.go
 */

package utils

import (
	"strings"
	"unicode"

	"github.com/spf13/cast"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var diacriticRemover = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// ParseNumeric interpreta representaciones numéricas heterogéneas (números nativos,
// cadenas con símbolos de moneda o separadores de miles) y retorna el valor y un
// indicador de éxito. La coerción fallida no es un error: el llamador decide si el
// valor ausente cuenta como violación.
func ParseNumeric(value interface{}) (float64, bool) {
	if value == nil {
		return 0, false
	}

	switch v := value.(type) {
	case string:
		cleaned := cleanNumericString(v)
		if cleaned == "" {
			return 0, false
		}
		parsed, err := cast.ToFloat64E(cleaned)
		if err != nil {
			return 0, false
		}
		return parsed, true
	default:
		parsed, err := cast.ToFloat64E(value)
		if err != nil {
			return 0, false
		}
		return parsed, true
	}
}

// cleanNumericString elimina símbolos de moneda, separadores de miles y espacios
func cleanNumericString(s string) string {
	s = strings.TrimSpace(s)
	replacer := strings.NewReplacer("$", "", ",", "", "COP", "", "%", "", " ", "")
	return replacer.Replace(s)
}

// RemoveDiacritics elimina las marcas diacríticas de una cadena ("ejecución" -> "ejecucion")
func RemoveDiacritics(s string) string {
	result, _, err := transform.String(diacriticRemover, s)
	if err != nil {
		return s
	}
	return result
}
