package v1

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"slices"
	"strconv"
	"time"

	"gamestore-admin/internal/validation"

	"github.com/goccy/go-json"
	"github.com/shopspring/decimal"
)

var errMalformedBody = errors.New("malformed JSON body")

// Accepted due date / release date layouts, most specific first.
var timeLayouts = []string{
	time.RFC3339,
	"02/01/2006 - 15:04:05",
	"2006-01-02",
}

// timeZone places the layouts without an offset.
var timeZone = time.UTC

// SetTimeZone sets the zone for submitted times that carry no offset.
func SetTimeZone(loc *time.Location) {
	if loc != nil {
		timeZone = loc
	}
}

// params is the permitted subset of the object sent under a resource's root
// key. Accessors return nil for fields that were not sent and record a field
// error when a value has the wrong type.
type params struct {
	fields map[string]json.RawMessage
	errs   validation.Errors
}

// bindParams reads {root: {...}} from the body and keeps only the permitted
// keys. A missing body or root yields empty params.
func bindParams(r *http.Request, root string, permitted ...string) (*params, error) {
	p := &params{fields: map[string]json.RawMessage{}, errs: validation.Errors{}}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return p, nil
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, errMalformedBody
	}
	raw, ok := envelope[root]
	if !ok || isNull(raw) {
		return p, nil
	}

	var attrs map[string]json.RawMessage
	if err := json.Unmarshal(raw, &attrs); err != nil {
		return nil, errMalformedBody
	}
	for k, v := range attrs {
		if slices.Contains(permitted, k) {
			p.fields[k] = v
		}
	}
	return p, nil
}

// Err returns the type errors recorded by the accessors, if any.
func (p *params) Err() error {
	if p.errs.Any() {
		return p.errs
	}
	return nil
}

func (p *params) String(name string) *string {
	raw, ok := p.fields[name]
	if !ok {
		return nil
	}
	if isNull(raw) {
		return new(string)
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return &s
	}
	// numbers and booleans are taken as their literal text
	switch raw[0] {
	case '{', '[':
		p.errs.Add(name, validation.MsgInvalid)
		return nil
	}
	s = string(raw)
	return &s
}

func (p *params) Decimal(name string) *decimal.Decimal {
	raw, ok := p.fields[name]
	if !ok {
		return nil
	}
	if isBlank(raw) {
		p.errs.Add(name, validation.MsgBlank)
		return nil
	}

	var d decimal.Decimal
	if err := json.Unmarshal(raw, &d); err != nil {
		p.errs.Add(name, validation.MsgNotNumber)
		return nil
	}
	return &d
}

func (p *params) Time(name string) *time.Time {
	raw, ok := p.fields[name]
	if !ok {
		return nil
	}
	if isBlank(raw) {
		p.errs.Add(name, validation.MsgBlank)
		return nil
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		for _, layout := range timeLayouts {
			if t, err := time.ParseInLocation(layout, s, timeZone); err == nil {
				return &t
			}
		}
	}
	p.errs.Add(name, validation.MsgInvalid)
	return nil
}

// Int64 treats null as 0 so Required reports it.
func (p *params) Int64(name string) *int64 {
	raw, ok := p.fields[name]
	if !ok {
		return nil
	}
	if isBlank(raw) {
		return new(int64)
	}

	id, ok := parseID(raw)
	if !ok {
		p.errs.Add(name, validation.MsgNotNumber)
		return nil
	}
	return &id
}

// Int64s reads an id list. null clears the list.
func (p *params) Int64s(name string) []int64 {
	raw, ok := p.fields[name]
	if !ok {
		return nil
	}
	if isNull(raw) {
		return []int64{}
	}

	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		p.errs.Add(name, validation.MsgInvalid)
		return nil
	}

	ids := make([]int64, 0, len(items))
	for _, item := range items {
		if isBlank(item) {
			continue
		}
		id, ok := parseID(item)
		if !ok {
			p.errs.Add(name, validation.MsgInvalid)
			return nil
		}
		ids = append(ids, id)
	}
	return ids
}

// parseID accepts a JSON integer or a numeric string.
func parseID(raw json.RawMessage) (int64, bool) {
	var id int64
	if err := json.Unmarshal(raw, &id); err == nil {
		return id, true
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return 0, false
	}
	id, err := strconv.ParseInt(s, 10, 64)
	return id, err == nil
}

func isNull(raw json.RawMessage) bool {
	return string(bytes.TrimSpace(raw)) == "null"
}

func isBlank(raw json.RawMessage) bool {
	v := string(bytes.TrimSpace(raw))
	return v == "null" || v == `""`
}
