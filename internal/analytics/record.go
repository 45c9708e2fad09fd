package analytics

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
)

// Number is a float that decodes leniently: JSON numbers, numeric strings
// and null are all accepted. Null, empty, unparseable and non-finite values
// decode to 0.
type Number float64

func (n *Number) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*n = 0
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			*n = 0
			return nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			*n = 0
			return nil
		}
		*n = Number(f)
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		*n = 0
		return nil
	}
	*n = Number(f)
	return nil
}

// Record is one month of aggregated consumption as returned by
// GET /analytics/fuel_consumption.
type Record struct {
	Month         string `json:"month"`
	TotalFuel     Number `json:"total_fuel"`
	AvgEfficiency Number `json:"avg_efficiency"`
}

// DecodeRecords parses an analytics response body. A JSON null body yields
// no records.
func DecodeRecords(data []byte) ([]Record, error) {
	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, err
	}
	return records, nil
}
