package mapping

import "strings"

// SerialTypes - PostgreSQL auto-increment column types
// Usage: SerialTypes["BIGINT"] returns "BIGSERIAL"; anything else becomes SERIAL
var SerialTypes = map[string]string{
	"BIGINT":   "BIGSERIAL",
	"INT8":     "BIGSERIAL",
	"SMALLINT": "SMALLSERIAL",
	"INT2":     "SMALLSERIAL",
}

// SerialType returns the PostgreSQL serial type for a declared column type.
func SerialType(declared string) string {
	if serial, ok := SerialTypes[strings.ToUpper(strings.TrimSpace(declared))]; ok {
		return serial
	}
	return "SERIAL"
}
