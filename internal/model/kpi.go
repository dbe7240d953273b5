package model

// KPI value data types.
const (
	KPITypeCurrency = "currency"
	KPITypePercent  = "percent"
	KPITypeRatio    = "ratio"
	KPITypeCount    = "count"
	KPITypeMinutes  = "minutes"
)

// KPIResult is the computed value of one registered KPI. Value is nil when
// the KPI's defining population is empty (never NaN, never an error).
type KPIResult struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Unit     string   `json:"unit"`
	DataType string   `json:"dataType"`
	Value    *float64 `json:"value"`
}
