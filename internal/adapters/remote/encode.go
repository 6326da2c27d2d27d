package remote

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"

	"github.com/okian/progno/internal/domain/scoring"
)

// encodePayload serializes the dataframe_split wire shape:
//
//	{"dataframe_split": {"columns": [...], "index": [0], "data": [[...]]}}
//
// encoding/json refuses non-finite floats, but feature pipelines can carry
// NaN and infinities and the serving endpoint owns rejecting them. The row
// values are therefore written by hand with the NaN / Infinity /
// -Infinity spellings the endpoint's Python-side decoder accepts.
func encodePayload(req scoring.Request) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(`{"dataframe_split":{"columns":`)

	cols, err := json.Marshal(req.Columns)
	if err != nil {
		return nil, err
	}
	buf.Write(cols)

	buf.WriteString(`,"index":`)
	idx, err := json.Marshal(req.Index)
	if err != nil {
		return nil, err
	}
	buf.Write(idx)

	buf.WriteString(`,"data":[`)
	for i, row := range req.Rows {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteByte('[')
		for j, v := range row {
			if j > 0 {
				buf.WriteByte(',')
			}
			appendFloat(&buf, v)
		}
		buf.WriteByte(']')
	}
	buf.WriteString(`]}}`)

	return buf.Bytes(), nil
}

// appendFloat writes one row value, spelling non-finite values the way a
// permissive JSON encoder does.
func appendFloat(buf *bytes.Buffer, v float64) {
	switch {
	case math.IsNaN(v):
		buf.WriteString("NaN")
	case math.IsInf(v, 1):
		buf.WriteString("Infinity")
	case math.IsInf(v, -1):
		buf.WriteString("-Infinity")
	default:
		buf.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
	}
}
