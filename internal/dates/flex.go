package dates

import (
	"encoding/json"
	"fmt"
)

// FlexDate decodes the date shapes that appear in template documents: a
// [year, month, day] integer array, a canonical "dd MMMM yyyy" string, an ISO
// "yyyy-MM-dd" string, or null. Mirrors the array handling the backend uses
// for template date fields.
type FlexDate struct {
	Date  Date
	Valid bool
}

func (f *FlexDate) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*f = FlexDate{}
		return nil
	}

	var triplet []int
	if err := json.Unmarshal(data, &triplet); err == nil {
		d, err := FromTriplet(triplet)
		if err != nil {
			return err
		}
		*f = FlexDate{Date: d, Valid: true}
		return nil
	}

	var text string
	if err := json.Unmarshal(data, &text); err != nil {
		return fmt.Errorf("date field is neither array nor string: %s", data)
	}
	if text == "" {
		*f = FlexDate{}
		return nil
	}
	if d, err := ParseCanonical(text); err == nil {
		*f = FlexDate{Date: d, Valid: true}
		return nil
	}
	d, err := Parse(text, ISOLayout)
	if err != nil {
		return err
	}
	*f = FlexDate{Date: d, Valid: true}
	return nil
}

func (f FlexDate) MarshalJSON() ([]byte, error) {
	if !f.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(f.Date.Canonical())
}
