// Package extjson implements the typed-literal JSON envelopes understood by
// document-database bulk importers ({"$oid": ...}, {"$numberDouble": ...},
// {"$date": {"$numberLong": ...}}) plus the float text form used when writing
// bare numbers.
package extjson

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrInvalidObjectID is returned for identifiers that are not 24 hex characters.
var ErrInvalidObjectID = errors.New("invalid object id")

// FormatDouble renders f as the shortest text that round-trips, always with a
// fractional part or an exponent. Exponent form is used below 1e-4 and from
// 1e16 upward.
func FormatDouble(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	}

	sci := strconv.FormatFloat(f, 'e', -1, 64)
	exp, err := strconv.Atoi(sci[strings.IndexByte(sci, 'e')+1:])
	if err != nil {
		return sci
	}
	if f != 0 && (exp < -4 || exp >= 16) {
		return sci
	}

	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.ContainsAny(s, ".") {
		s += ".0"
	}
	return s
}

// ParseDouble is the inverse of FormatDouble. It also accepts the lowercase
// spellings "nan", "inf" and "-inf".
func ParseDouble(s string) (float64, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "nan":
		return math.NaN(), nil
	case "infinity", "inf", "+infinity", "+inf":
		return math.Inf(1), nil
	case "-infinity", "-inf":
		return math.Inf(-1), nil
	}
	return strconv.ParseFloat(strings.TrimSpace(s), 64)
}

// Float is a bare JSON number written with FormatDouble, so integral values
// keep their ".0".
type Float float64

// MarshalJSON implements json.Marshaler.
func (f Float) MarshalJSON() ([]byte, error) {
	v := float64(f)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, fmt.Errorf("extjson: unsupported float value %v", v)
	}
	return []byte(FormatDouble(v)), nil
}

// Double is a float carried in a {"$numberDouble": "<text>"} envelope.
type Double float64

type doubleEnvelope struct {
	NumberDouble string `json:"$numberDouble"`
}

// MarshalJSON implements json.Marshaler.
func (d Double) MarshalJSON() ([]byte, error) {
	return json.Marshal(doubleEnvelope{NumberDouble: FormatDouble(float64(d))})
}

// UnmarshalJSON accepts the envelope, {"$numberInt": "..."} and bare numbers.
func (d *Double) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] != '{' {
		var f float64
		if err := json.Unmarshal(data, &f); err != nil {
			return err
		}
		*d = Double(f)
		return nil
	}

	var env struct {
		NumberDouble *string `json:"$numberDouble"`
		NumberInt    *string `json:"$numberInt"`
	}
	if err := json.Unmarshal(data, &env); err != nil {
		return err
	}
	var text string
	switch {
	case env.NumberDouble != nil:
		text = *env.NumberDouble
	case env.NumberInt != nil:
		text = *env.NumberInt
	default:
		return fmt.Errorf("extjson: expected $numberDouble envelope, got %s", data)
	}
	f, err := ParseDouble(text)
	if err != nil {
		return fmt.Errorf("extjson: $numberDouble %q: %w", text, err)
	}
	*d = Double(f)
	return nil
}

// Date is a millisecond Unix timestamp carried in a
// {"$date": {"$numberLong": "<ms>"}} envelope.
type Date int64

type longEnvelope struct {
	NumberLong string `json:"$numberLong"`
}

type dateEnvelope struct {
	Date longEnvelope `json:"$date"`
}

// MarshalJSON implements json.Marshaler.
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(dateEnvelope{Date: longEnvelope{NumberLong: strconv.FormatInt(int64(d), 10)}})
}

// UnmarshalJSON accepts the canonical envelope, {"$date": <ms>} and a bare
// millisecond number.
func (d *Date) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] != '{' {
		ms, err := parseMillis(data)
		if err != nil {
			return err
		}
		*d = Date(ms)
		return nil
	}

	var env struct {
		Date json.RawMessage `json:"$date"`
	}
	if err := json.Unmarshal(data, &env); err != nil {
		return err
	}
	if len(env.Date) == 0 {
		return fmt.Errorf("extjson: expected $date envelope, got %s", data)
	}

	inner := bytes.TrimSpace(env.Date)
	if len(inner) > 0 && inner[0] == '{' {
		var long longEnvelope
		if err := json.Unmarshal(inner, &long); err != nil {
			return err
		}
		ms, err := strconv.ParseInt(long.NumberLong, 10, 64)
		if err != nil {
			return fmt.Errorf("extjson: $numberLong %q: %w", long.NumberLong, err)
		}
		*d = Date(ms)
		return nil
	}

	ms, err := parseMillis(inner)
	if err != nil {
		return err
	}
	*d = Date(ms)
	return nil
}

func parseMillis(data []byte) (int64, error) {
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return 0, err
	}
	if ms, err := n.Int64(); err == nil {
		return ms, nil
	}
	f, err := n.Float64()
	if err != nil {
		return 0, fmt.Errorf("extjson: timestamp %s: %w", data, err)
	}
	return int64(f), nil
}

// ObjectID is a 24-character hex document reference, carried in a
// {"$oid": "<hex>"} envelope.
type ObjectID string

// ObjectIDFromHex validates s and returns it as an ObjectID.
func ObjectIDFromHex(s string) (ObjectID, error) {
	if len(s) != 24 {
		return "", fmt.Errorf("%w: %q has length %d", ErrInvalidObjectID, s, len(s))
	}
	if _, err := hex.DecodeString(s); err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidObjectID, s)
	}
	return ObjectID(strings.ToLower(s)), nil
}

// Hex returns the identifier text.
func (id ObjectID) Hex() string { return string(id) }

type oidEnvelope struct {
	OID string `json:"$oid"`
}

// MarshalJSON implements json.Marshaler.
func (id ObjectID) MarshalJSON() ([]byte, error) {
	return json.Marshal(oidEnvelope{OID: string(id)})
}

// UnmarshalJSON accepts the envelope or a bare string.
func (id *ObjectID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ObjectID(s)
		return nil
	}
	var env oidEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return err
	}
	if env.OID == "" {
		return fmt.Errorf("extjson: expected $oid envelope, got %s", data)
	}
	*id = ObjectID(env.OID)
	return nil
}
