package model

import "errors"

// DataType classifies an extracted payload.
type DataType string

const (
	DataTypeText   DataType = "text"
	DataTypeHex    DataType = "hex"
	DataTypeBinary DataType = "binary"
	DataTypeJSON   DataType = "json"
	DataTypeOther  DataType = "other"
)

// ErrDuplicateExtractedData is returned when a record for the transaction already exists.
var ErrDuplicateExtractedData = errors.New("extracted data already exists")

// ExtractedData is the OP_RETURN payload record of a single transaction.
type ExtractedData struct {
	TxHash        string
	PayloadText   *string
	PayloadHex    string
	FeeSats       uint64
	SenderAddress *string
	DataSizeBytes uint32
	DataType      DataType
	IsUTF8Valid   bool
}
