package extract

import (
	"encoding/json"

	"github.com/goodnatureofminers/opreturn-explorer-backend/internal/opreturn/model"
)

const printableThreshold = 0.8

// Classify assigns a data type to decoded payload text. It never returns model.DataTypeBinary.
func Classify(text *string) model.DataType {
	if text == nil {
		return model.DataTypeHex
	}
	if json.Valid([]byte(*text)) {
		return model.DataTypeJSON
	}
	if printableRatio(*text) > printableThreshold {
		return model.DataTypeText
	}
	return model.DataTypeOther
}

func printableRatio(s string) float64 {
	if len(s) == 0 {
		return 0
	}
	var printable int
	for i := 0; i < len(s); i++ {
		if s[i] >= 0x20 && s[i] <= 0x7e {
			printable++
		}
	}
	return float64(printable) / float64(len(s))
}
