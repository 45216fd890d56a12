package classify

import (
	"fmt"
	"strings"
)

// DataKind is the semantic category of a declared type.
type DataKind int

const (
	DataKindUnknown DataKind = iota
	DataKindString
	DataKindInteger
	DataKindBoolean
	DataKindNumber
	DataKindArray
	DataKindFile
	DataKindObject
	DataKindEnum
)

var dataKindNames = [...]string{
	DataKindUnknown: "UNKNOWN",
	DataKindString:  "STRING",
	DataKindInteger: "INTEGER",
	DataKindBoolean: "BOOLEAN",
	DataKindNumber:  "NUMBER",
	DataKindArray:   "ARRAY",
	DataKindFile:    "FILE",
	DataKindObject:  "OBJECT",
	DataKindEnum:    "ENUM",
}

// String returns the upper-case name of the DataKind.
func (k DataKind) String() string {
	if k < 0 || int(k) >= len(dataKindNames) {
		return dataKindNames[DataKindUnknown]
	}

	return dataKindNames[k]
}

// IsContainer reports whether nodes of this kind may carry children.
func (k DataKind) IsContainer() bool {
	return k == DataKindObject || k == DataKindArray
}

// ParseDataKind parses a DataKind name, case-insensitively.
func ParseDataKind(s string) (DataKind, error) {
	for i, name := range dataKindNames {
		if strings.EqualFold(name, strings.TrimSpace(s)) {
			return DataKind(i), nil
		}
	}

	return DataKindUnknown, fmt.Errorf("unknown data kind %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (k DataKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *DataKind) UnmarshalText(text []byte) error {
	parsed, err := ParseDataKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed

	return nil
}
