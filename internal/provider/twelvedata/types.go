package twelvedata

import (
	"net/url"
	"strconv"
	"strings"
)

// Interval is the bar width accepted by the time_series and quote endpoints.
type Interval string

const (
	IntervalMinute           Interval = "1min"
	IntervalFiveMinutes      Interval = "5min"
	IntervalFifteenMinutes   Interval = "15min"
	IntervalThirtyMinutes    Interval = "30min"
	IntervalFortyFiveMinutes Interval = "45min"
	IntervalHour             Interval = "1h"
	IntervalTwoHours         Interval = "2h"
	IntervalFourHours        Interval = "4h"
	IntervalDay              Interval = "1day"
	IntervalWeek             Interval = "1week"
	IntervalMonth            Interval = "1month"
)

// Order selects ascending or descending time series values.
type Order string

const (
	OrderAscending  Order = "ASC"
	OrderDescending Order = "DESC"
)

// InstrumentType narrows a request to one class of instrument.
type InstrumentType string

const (
	InstrumentTypeStock InstrumentType = "Stock"
	InstrumentTypeIndex InstrumentType = "Index"
	InstrumentTypeETF   InstrumentType = "ETF"
	InstrumentTypeREIT  InstrumentType = "REIT"
)

// OutputFormat selects the response body format.
type OutputFormat string

const (
	OutputFormatJSON OutputFormat = "JSON"
	OutputFormatCSV  OutputFormat = "CSV"
)

// queryParam is one key=value pair of an encoded request.
type queryParam struct {
	key   string
	value string
}

type queryParams []queryParam

// encode joins the pairs in declared order, URL-escaping both sides. Absent
// optional fields never make it into the slice, so they are never emitted.
func (p queryParams) encode() string {
	var b strings.Builder
	for i, kv := range p {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(kv.key))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(kv.value))
	}
	return b.String()
}

// queryRequest is implemented by every endpoint request type.
type queryRequest interface {
	encode() queryParams
}

// CommonQueryParameters is the optional filter bag shared by several
// endpoints. Its set fields are encoded at the same query-string level as
// the owning request's own fields. The zero value sets nothing.
type CommonQueryParameters struct {
	exchange       *string
	micCode        *string
	country        *string
	instrumentType *InstrumentType
	format         *OutputFormat
	delimiter      *string
	decimalPlaces  *uint8
	timezone       *string
}

func (c CommonQueryParameters) WithExchange(exchange string) CommonQueryParameters {
	c.exchange = &exchange
	return c
}

func (c CommonQueryParameters) WithMicCode(micCode string) CommonQueryParameters {
	c.micCode = &micCode
	return c
}

func (c CommonQueryParameters) WithCountry(country string) CommonQueryParameters {
	c.country = &country
	return c
}

func (c CommonQueryParameters) WithInstrumentType(instrumentType InstrumentType) CommonQueryParameters {
	c.instrumentType = &instrumentType
	return c
}

func (c CommonQueryParameters) WithFormat(format OutputFormat) CommonQueryParameters {
	c.format = &format
	return c
}

func (c CommonQueryParameters) WithDelimiter(delimiter string) CommonQueryParameters {
	c.delimiter = &delimiter
	return c
}

// WithDecimalPlaces sets the number of decimals in floating values ("dp" on
// the wire).
func (c CommonQueryParameters) WithDecimalPlaces(decimalPlaces uint8) CommonQueryParameters {
	c.decimalPlaces = &decimalPlaces
	return c
}

func (c CommonQueryParameters) WithTimezone(timezone string) CommonQueryParameters {
	c.timezone = &timezone
	return c
}

func (c CommonQueryParameters) params() queryParams {
	var p queryParams
	if c.exchange != nil {
		p = append(p, queryParam{key: "exchange", value: *c.exchange})
	}
	if c.micCode != nil {
		p = append(p, queryParam{key: "mic_code", value: *c.micCode})
	}
	if c.country != nil {
		p = append(p, queryParam{key: "country", value: *c.country})
	}
	if c.instrumentType != nil {
		p = append(p, queryParam{key: "type", value: string(*c.instrumentType)})
	}
	if c.format != nil {
		p = append(p, queryParam{key: "format", value: string(*c.format)})
	}
	if c.delimiter != nil {
		p = append(p, queryParam{key: "delimiter", value: *c.delimiter})
	}
	if c.decimalPlaces != nil {
		p = append(p, queryParam{key: "dp", value: strconv.Itoa(int(*c.decimalPlaces))})
	}
	if c.timezone != nil {
		p = append(p, queryParam{key: "timezone", value: *c.timezone})
	}
	return p
}
