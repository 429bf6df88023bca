package settings

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/erp-api/internal/application/ports"
	"github.com/jhoicas/erp-api/pkg/config"
)

// StaticConfigProvider entrega la misma configuración ERP a todas las empresas,
// tomada de las variables de entorno al arrancar.
type StaticConfigProvider struct {
	cfg ports.CompanyConfig
}

var _ ports.ConfigProvider = (*StaticConfigProvider)(nil)

// NewStaticConfigProvider construye el proveedor desde la config de la aplicación.
func NewStaticConfigProvider(erp config.ERPConfig) *StaticConfigProvider {
	return &StaticConfigProvider{cfg: ports.CompanyConfig{
		DefaultDocumentType: erp.DefaultDocumentType,
		DefaultTaxPct:       decimal.NewFromInt(int64(erp.DefaultTaxPct)),
		ElectronicByDefault: erp.ElectronicByDefault,
	}}
}

// GetConfig implementa ports.ConfigProvider.
func (p *StaticConfigProvider) GetConfig(_ context.Context, _ int64, _ *int64) (ports.CompanyConfig, error) {
	return p.cfg, nil
}
