package dto

import "time"

// CreateSequenceRequest body para POST /api/document-sequences.
type CreateSequenceRequest struct {
	DocumentType string `json:"DocumentType" validate:"required,max=40"`
	IsElectronic bool   `json:"IsElectronic"`
	Prefix       string `json:"Prefix,omitempty" validate:"max=20"`
	Suffix       string `json:"Suffix,omitempty" validate:"max=20"`
	NextNumber   int64  `json:"NextNumber" validate:"min=0"`
	IsActive     *bool  `json:"IsActive,omitempty"`
}

// UpdateSequenceRequest body para PUT /api/document-sequences/:id. NextNumber solo puede avanzar.
type UpdateSequenceRequest struct {
	Prefix     *string `json:"Prefix,omitempty" validate:"omitempty,max=20"`
	Suffix     *string `json:"Suffix,omitempty" validate:"omitempty,max=20"`
	NextNumber *int64  `json:"NextNumber,omitempty" validate:"omitempty,gt=0"`
	IsActive   *bool   `json:"IsActive,omitempty"`
}

// SequenceResponse correlativo en respuestas.
type SequenceResponse struct {
	ID           int64     `json:"ID"`
	DocumentType string    `json:"DocumentType"`
	IsElectronic bool      `json:"IsElectronic"`
	Prefix       string    `json:"Prefix"`
	Suffix       string    `json:"Suffix"`
	NextNumber   int64     `json:"NextNumber"`
	IsActive     bool      `json:"IsActive"`
	UpdatedAt    time.Time `json:"UpdatedAt"`
}
