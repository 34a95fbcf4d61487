// Package template fetches the backend's template documents and flattens
// them into a uniform shape the synthesis engine can draw defaults and
// option lists from.
package template

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/mifos-community/mifosx-mcp/internal/codes"
	"github.com/mifos-community/mifosx-mcp/internal/dates"
)

// Kind names a template endpoint for error reporting.
type Kind string

const (
	KindSavingsAccount     Kind = "savings account"
	KindSavingsTransaction Kind = "savings transaction"
	KindLoanProduct        Kind = "loan product"
	KindLoanApplication    Kind = "loan application"
	KindLoanApproval       Kind = "loan approval"
	KindLoanTransaction    Kind = "loan transaction"
)

// UnavailableError signals that a template document could not be fetched or
// decoded. Operations that depend on a template abort without posting
// anything when they see this.
type UnavailableError struct {
	Kind Kind
	Err  error
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("%s template unavailable: %v", e.Kind, e.Err)
}

func (e *UnavailableError) Unwrap() error { return e.Err }

// Document is a flattened template: context-derived default values keyed by
// template vocabulary, plus the option lists embedded in the document.
// Values hold typed Go data: dates.Date, float64, int64, string, or
// json.RawMessage for passthrough lists.
type Document struct {
	Kind    Kind
	Values  map[string]interface{}
	Options map[string]codes.Group
}

// Date returns the date default under key, if present and valid.
func (d *Document) Date(key string) (dates.Date, bool) {
	v, ok := d.Values[key].(dates.Date)
	return v, ok
}

// Number returns the numeric default under key.
func (d *Document) Number(key string) (float64, bool) {
	switch v := d.Values[key].(type) {
	case float64:
		return v, true
	case int64:
		return float64(v), true
	}
	return 0, false
}

// Int returns the integer default under key.
func (d *Document) Int(key string) (int64, bool) {
	switch v := d.Values[key].(type) {
	case int64:
		return v, true
	case float64:
		return int64(v), true
	}
	return 0, false
}

// Text returns the string default under key.
func (d *Document) Text(key string) (string, bool) {
	v, ok := d.Values[key].(string)
	return v, ok
}

// Raw returns a passthrough JSON value under key.
func (d *Document) Raw(key string) (json.RawMessage, bool) {
	v, ok := d.Values[key].(json.RawMessage)
	return v, ok
}

// OptionList returns the named option list, or an empty group when the
// document does not carry it.
func (d *Document) OptionList(name string) codes.Group {
	if g, ok := d.Options[name]; ok {
		return g
	}
	return codes.Group{Name: name}
}

// typeRef is the {id, code, value} shape templates use for enumerated
// selections.
type typeRef struct {
	ID    *int64 `json:"id"`
	Code  string `json:"code"`
	Value string `json:"value"`
}

func (d *Document) putInt(key string, v *int64) {
	if v != nil {
		d.Values[key] = *v
	}
}

func (d *Document) putNumber(key string, v *float64) {
	if v != nil {
		d.Values[key] = *v
	}
}

func (d *Document) putText(key string, v *string) {
	if v != nil {
		d.Values[key] = *v
	}
}

func (d *Document) putRef(key string, ref *typeRef) {
	if ref != nil && ref.ID != nil {
		d.Values[key] = *ref.ID
	}
}

// putBool stores booleans as "true"/"false" text. The backend renders these
// flags as JSON booleans in templates but expects quoted strings back in
// request payloads.
func (d *Document) putBool(key string, v *bool) {
	if v != nil {
		d.Values[key] = strconv.FormatBool(*v)
	}
}

func (d *Document) putDate(key string, f dates.FlexDate) {
	if f.Valid {
		d.Values[key] = f.Date
	}
}

func (d *Document) putOptions(name string, values []codes.Value) {
	if values != nil {
		d.Options[name] = codes.Group{Name: name, Values: values}
	}
}

func newDocument(kind Kind) *Document {
	return &Document{
		Kind:    kind,
		Values:  make(map[string]interface{}),
		Options: make(map[string]codes.Group),
	}
}
