package dto

import "github.com/shopspring/decimal"

// ── Query parameters ──────────────────────────────────────────────────────────

// TraceabilityReportRequest parámetros para GET /api/traceability/report.
type TraceabilityReportRequest struct {
	ProductID string `query:"product_id"` // UUID; opcional si se envía lot_id
	Direction string `query:"direction"`  // backward (default) | forward
	FromDate  string `query:"from_date"`  // YYYY-MM-DD
	ToDate    string `query:"to_date"`    // YYYY-MM-DD
	LotID     string `query:"lot_id"`     // UUID; solo con seguimiento de lotes
	Format    string `query:"format"`     // json (default) | html | pdf
}

// ── Respuesta ─────────────────────────────────────────────────────────────────

// UnitDTO unidad de medida en la respuesta.
type UnitDTO struct {
	ID     string `json:"id"`
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
}

// LotRefDTO lote en la respuesta.
type LotRefDTO struct {
	ID             string `json:"id"`
	Number         string `json:"number"`
	ExpirationDate string `json:"expiration_date,omitempty"` // YYYY-MM-DD
}

// ProductionRefDTO orden de procedencia con su enlace.
type ProductionRefDTO struct {
	ID            string `json:"id"`
	Number        string `json:"number"`
	EffectiveDate string `json:"effective_date"`
	Link          string `json:"link"`
}

// TraceabilityEntryDTO aporte de una orden a un par producto/lote.
type TraceabilityEntryDTO struct {
	Production     ProductionRefDTO `json:"production"`
	Quantity       decimal.Decimal  `json:"quantity"`
	QuantityUOM    UnitDTO          `json:"quantity_uom"`
	Consumption    decimal.Decimal  `json:"consumption"`
	ConsumptionUOM UnitDTO          `json:"consumption_uom"`
}

// TraceabilityLotDTO entradas de un lote; Lot nil = sin lote.
type TraceabilityLotDTO struct {
	Lot     *LotRefDTO             `json:"lot"`
	Entries []TraceabilityEntryDTO `json:"entries"`
}

// TraceabilityTotalsDTO totales del producto contraparte.
type TraceabilityTotalsDTO struct {
	Quantity       decimal.Decimal `json:"quantity"`
	QuantityUOM    UnitDTO         `json:"quantity_uom"`
	Consumption    decimal.Decimal `json:"consumption"`
	ConsumptionUOM UnitDTO         `json:"consumption_uom"`
}

// TraceabilityProductDTO registros y totales de un producto contraparte.
type TraceabilityProductDTO struct {
	ProductID string                `json:"product_id"`
	Code      string                `json:"code"`
	Name      string                `json:"name"`
	Lots      []TraceabilityLotDTO  `json:"lots"`
	Totals    TraceabilityTotalsDTO `json:"totals"`
}

// TraceabilityParametersDTO eco de la consulta resuelta.
type TraceabilityParametersDTO struct {
	CompanyID      string     `json:"company_id"`
	CompanyName    string     `json:"company_name"`
	ProductID      string     `json:"product_id"`
	ProductName    string     `json:"product_name"`
	Direction      string     `json:"direction"`
	DirectionLabel string     `json:"direction_label"`
	FromDate       string     `json:"from_date"`
	ToDate         string     `json:"to_date"`
	ShowDate       bool       `json:"show_date"`
	Lot            *LotRefDTO `json:"lot,omitempty"`
	BaseURL        string     `json:"base_url"`
}

// TraceabilityReportDTO respuesta completa de GET /api/traceability/report.
type TraceabilityReportDTO struct {
	Parameters  TraceabilityParametersDTO `json:"parameters"`
	Productions int                       `json:"productions"`
	Products    []TraceabilityProductDTO  `json:"products"`
	GeneratedAt string                    `json:"generated_at"`
	Empty       bool                      `json:"empty"`
}
