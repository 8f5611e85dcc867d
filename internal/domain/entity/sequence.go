package entity

// BillNumberSequence names the counter that hands out bill numbers
const BillNumberSequence = "bill_number"

// Sequence is a named monotonic counter
type Sequence struct {
	Name  string `gorm:"size:64;primaryKey"`
	Value int64  `gorm:"not null"`
}

// TableName returns the table name for the Sequence model
func (Sequence) TableName() string {
	return "sequences"
}
