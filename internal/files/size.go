package files

import (
	"fmt"
	"math"
	"strconv"
)

var sizeUnits = []string{"Bytes", "KB", "MB", "GB"}

// FormatSize renders a byte count the way the upload widget shows it, e.g. "1.5 MB".
func FormatSize(bytes int64) string {
	if bytes <= 0 {
		return "0 Bytes"
	}
	const k = 1024.0
	i := int(math.Floor(math.Log(float64(bytes)) / math.Log(k)))
	if i >= len(sizeUnits) {
		i = len(sizeUnits) - 1
	}
	v := float64(bytes) / math.Pow(k, float64(i))
	// two decimals, trailing zeros trimmed
	return fmt.Sprintf("%s %s", strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64), sizeUnits[i])
}

// AcceptedFormatsHint is the helper text shown under an empty upload field.
func AcceptedFormatsHint() string {
	return fmt.Sprintf("Accepted formats: PDF, DOC, DOCX (max %dMB)", MaxSize/1024/1024)
}
