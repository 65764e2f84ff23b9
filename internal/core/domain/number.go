package domain

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"reflect"
	"strconv"
	"strings"
)

// Number is a numeric column value that also accepts its JSON string form,
// so {"amount": "250"} binds like {"amount": 250}. An empty string or null
// decodes to zero.
type Number float64

func (n *Number) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)

	if bytes.Equal(data, []byte("null")) {
		*n = 0
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}

		s = strings.TrimSpace(s)
		if s == "" {
			*n = 0
			return nil
		}

		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return &json.UnmarshalTypeError{Value: "string " + strconv.Quote(s), Type: reflect.TypeOf(float64(0))}
		}

		*n = Number(v)
		return nil
	}

	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}

	*n = Number(v)
	return nil
}

func (n Number) Value() (driver.Value, error) {
	return float64(n), nil
}
