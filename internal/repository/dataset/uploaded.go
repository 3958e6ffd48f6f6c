package dataset

import (
	"bytes"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/buger/jsonparser"
	"gonum.org/v1/gonum/mat"
)

// decodeRecords turns a JSON array of flat objects into a matrix.
// Feature names follow the key order of the first record; every later
// record must carry exactly the same keys. jsonparser walks the raw bytes,
// so object key order is preserved.
func decodeRecords(raw []byte, maxRows int) (*mat.Dense, []string, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, nil, fmt.Errorf("uploaded data must be an array of records")
	}

	var (
		names   []string
		index   map[string]int
		data    []float64
		rows    int
		walkErr error
	)

	_, err := jsonparser.ArrayEach(trimmed, func(value []byte, dt jsonparser.ValueType, _ int, err error) {
		if walkErr != nil {
			return
		}
		if err != nil {
			walkErr = fmt.Errorf("record %d: %w", rows, err)
			return
		}
		if maxRows > 0 && rows >= maxRows {
			walkErr = fmt.Errorf("uploaded data exceeds %d rows", maxRows)
			return
		}
		if dt != jsonparser.Object {
			walkErr = fmt.Errorf("record %d is %s, expected object", rows, dt)
			return
		}

		if names == nil {
			names, index, walkErr = recordKeys(value)
			if walkErr != nil {
				walkErr = fmt.Errorf("record %d: %w", rows, walkErr)
				return
			}
			if len(names) == 0 {
				walkErr = fmt.Errorf("uploaded records have no fields")
				return
			}
		}

		row, err := recordValues(value, names, index)
		if err != nil {
			walkErr = fmt.Errorf("record %d: %w", rows, err)
			return
		}
		data = append(data, row...)
		rows++
	})
	if walkErr != nil {
		return nil, nil, walkErr
	}
	if err != nil {
		return nil, nil, fmt.Errorf("malformed uploaded data: %w", err)
	}
	if rows == 0 {
		return nil, nil, fmt.Errorf("uploaded data is empty")
	}

	return mat.NewDense(rows, len(names), data), names, nil
}

// recordKeys collects the keys of the first record in order.
func recordKeys(obj []byte) ([]string, map[string]int, error) {
	names := []string{}
	index := make(map[string]int)
	err := jsonparser.ObjectEach(obj, func(k, _ []byte, _ jsonparser.ValueType, _ int) error {
		key, err := jsonparser.ParseString(k)
		if err != nil {
			return fmt.Errorf("bad key: %w", err)
		}
		if _, dup := index[key]; dup {
			return fmt.Errorf("duplicate key %q", key)
		}
		index[key] = len(names)
		names = append(names, key)
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return names, index, nil
}

// recordValues decodes one record into a row ordered by names.
func recordValues(obj []byte, names []string, index map[string]int) ([]float64, error) {
	row := make([]float64, len(names))
	seen := make([]bool, len(names))
	err := jsonparser.ObjectEach(obj, func(k, v []byte, dt jsonparser.ValueType, _ int) error {
		key, err := jsonparser.ParseString(k)
		if err != nil {
			return fmt.Errorf("bad key: %w", err)
		}
		col, ok := index[key]
		if !ok {
			return fmt.Errorf("unexpected key %q", key)
		}
		if seen[col] {
			return fmt.Errorf("duplicate key %q", key)
		}
		f, err := cellValue(v, dt)
		if err != nil {
			return fmt.Errorf("field %q: %w", key, err)
		}
		row[col] = f
		seen[col] = true
		return nil
	})
	if err != nil {
		return nil, err
	}
	for i, ok := range seen {
		if !ok {
			return nil, fmt.Errorf("missing key %q", names[i])
		}
	}
	return row, nil
}

// cellValue accepts JSON numbers and numeric strings.
func cellValue(v []byte, dt jsonparser.ValueType) (float64, error) {
	var (
		f   float64
		err error
	)
	switch dt {
	case jsonparser.Number:
		f, err = jsonparser.ParseFloat(v)
	case jsonparser.String:
		var s string
		s, err = jsonparser.ParseString(v)
		if err == nil {
			f, err = strconv.ParseFloat(strings.TrimSpace(s), 64)
			if err != nil {
				err = fmt.Errorf("non-numeric value %q", s)
			}
		}
	default:
		return 0, fmt.Errorf("non-numeric %s value", dt)
	}
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("non-finite value")
	}
	return f, nil
}
