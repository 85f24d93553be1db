package twelvedata

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// The upstream API quotes every numeric quantity as a JSON string (to keep
// trailing-zero precision) and ships a few composite values as delimited
// text. The codec types below absorb those irregular wire formats so that
// the response shapes read like plain JSON schemas.

const (
	dateTimeLayout = "2006-01-02 15:04:05"
	dateOnlyLayout = "2006-01-02"
)

// DateTime accepts either a full timestamp or a bare date on the wire; a
// bare date decodes to midnight of that day. Exactly one of the two layouts
// must match, full timestamp first.
type DateTime struct {
	time.Time
}

func parseDateTime(value string) (time.Time, error) {
	t, fullErr := time.Parse(dateTimeLayout, value)
	if fullErr == nil {
		return t, nil
	}
	t, dateErr := time.Parse(dateOnlyLayout, value)
	if dateErr == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("unexpected datetime format %q: %v; %v", value, fullErr, dateErr)
}

func (d *DateTime) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	t, err := parseDateTime(s)
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

func (d DateTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Format(dateTimeLayout))
}

// rangeSeparator is the literal three-character separator between the two
// range operands; the first occurrence splits them.
const rangeSeparator = " - "

// Range is a (low, high) pair carried on the wire as "<low> - <high>".
type Range struct {
	Low  float64
	High float64
}

func parseRange(value string) (Range, error) {
	idx := strings.Index(value, rangeSeparator)
	if idx < 0 {
		return Range{}, fmt.Errorf("range separator not found in %q", value)
	}
	low, err := strconv.ParseFloat(value[:idx], 64)
	if err != nil {
		return Range{}, fmt.Errorf("parsing first range value: %w", err)
	}
	high, err := strconv.ParseFloat(value[idx+len(rangeSeparator):], 64)
	if err != nil {
		return Range{}, fmt.Errorf("parsing second range value: %w", err)
	}
	return Range{Low: low, High: high}, nil
}

func (r *Range) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := parseRange(s)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

func (r Range) MarshalJSON() ([]byte, error) {
	low := strconv.FormatFloat(r.Low, 'f', -1, 64)
	high := strconv.FormatFloat(r.High, 'f', -1, 64)
	return json.Marshal(low + rangeSeparator + high)
}

// Float is a float64 that travels as a quoted decimal string. Optional
// numeric fields are declared *Float so that an absent value decodes to nil
// rather than zero.
type Float float64

func (f *Float) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("parsing numeric string %q: %w", s, err)
	}
	*f = Float(v)
	return nil
}

func (f Float) MarshalJSON() ([]byte, error) {
	return json.Marshal(strconv.FormatFloat(float64(f), 'f', -1, 64))
}
