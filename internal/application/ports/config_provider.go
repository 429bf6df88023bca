package ports

import (
	"context"

	"github.com/shopspring/decimal"
)

// CompanyConfig valores por defecto de una empresa (o de un empleado dentro de ella).
type CompanyConfig struct {
	DefaultDocumentType string
	DefaultTaxPct       decimal.Decimal
	ElectronicByDefault bool
}

// ConfigProvider entrega la configuración vigente para una empresa/empleado.
// El almacenamiento de configuración es externo; basta con cumplir este contrato.
type ConfigProvider interface {
	GetConfig(ctx context.Context, companyID int64, employeeID *int64) (CompanyConfig, error)
}
