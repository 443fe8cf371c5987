package format

import (
	"math"
	"strconv"
)

var sizeUnits = [...]string{"Bytes", "KB", "MB", "GB"}

// FileSize renders a byte count with binary units and at most two decimals.
// Values past the largest unit stay in GB; non-positive counts are "0 Bytes".
func FileSize(bytes int64) string {
	if bytes <= 0 {
		return "0 Bytes"
	}

	v := float64(bytes)
	i := 0
	for v >= 1024 && i < len(sizeUnits)-1 {
		v /= 1024
		i++
	}
	v = math.Round(v*100) / 100
	return strconv.FormatFloat(v, 'f', -1, 64) + " " + sizeUnits[i]
}
