package entity

import "time"

// DocumentSequence correlativo de numeración por (empresa, tipo de documento, electrónico).
// Los números emitidos son estrictamente crecientes y nunca se reutilizan.
type DocumentSequence struct {
	ID           int64
	CompanyID    int64
	DocumentType string
	IsElectronic bool
	Prefix       string
	Suffix       string
	NextNumber   int64
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
