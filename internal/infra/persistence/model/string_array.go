// Package model contains the GORM persistence models mirroring the database schema.
package model

import (
	"database/sql/driver"
	"strings"

	"github.com/pkg/errors"
)

// StringArray maps a []string onto a PostgreSQL text[] column. The role names
// stored through it are plain identifiers, so the codec only needs the
// unquoted array literal form.
type StringArray []string

// Value implements driver.Valuer, rendering the slice as a Postgres array literal.
func (a StringArray) Value() (driver.Value, error) {
	if len(a) == 0 {
		return "{}", nil
	}

	var sb strings.Builder
	sb.WriteByte('{')
	for i, s := range a {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteByte('"')
		sb.WriteString(strings.ReplaceAll(strings.ReplaceAll(s, `\`, `\\`), `"`, `\"`))
		sb.WriteByte('"')
	}
	sb.WriteByte('}')

	return sb.String(), nil
}

// Scan implements sql.Scanner, parsing the Postgres array literal form.
func (a *StringArray) Scan(src any) error {
	var raw string
	switch v := src.(type) {
	case nil:
		*a = nil

		return nil
	case string:
		raw = v
	case []byte:
		raw = string(v)
	default:
		return errors.Errorf("unsupported source type %T for StringArray", src)
	}

	raw = strings.TrimPrefix(raw, "{")
	raw = strings.TrimSuffix(raw, "}")
	if raw == "" {
		*a = StringArray{}

		return nil
	}

	parts := strings.Split(raw, ",")
	out := make(StringArray, 0, len(parts))
	for _, part := range parts {
		part = strings.Trim(part, `"`)
		part = strings.ReplaceAll(part, `\"`, `"`)
		part = strings.ReplaceAll(part, `\\`, `\`)
		out = append(out, part)
	}
	*a = out

	return nil
}

// GormDataType tells GORM the column type for migrations.
func (StringArray) GormDataType() string {
	return "text[]"
}
