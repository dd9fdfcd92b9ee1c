package domain

type Classification string

const (
	ClassificationNone               Classification = "none"
	ClassificationAvailable          Classification = "available"
	ClassificationAvailableButClosed Classification = "available_but_closed"
	ClassificationNotAvailable       Classification = "not_available"
)

type AvailabilitySummary struct {
	Medicine       string         `json:"medicine,omitempty"`
	OpenAvailable  int            `json:"open_available"`
	AnyAvailable   int            `json:"any_available"`
	TotalInRadius  int            `json:"total_in_radius"`
	TotalStock     int            `json:"total_stock"`
	Classification Classification `json:"classification"`
}
