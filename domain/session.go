package domain

// ViewState is the page the presentation layer should show.
type ViewState string

const (
	ViewSearch            ViewState = "search"
	ViewPharmacyLogin     ViewState = "pharmacy_login"
	ViewPharmacyDashboard ViewState = "pharmacy_dashboard"
)

type DashboardSession struct {
	Token     string    `json:"token,omitempty"`
	Pharmacy  Pharmacy  `json:"pharmacy"`
	ViewState ViewState `json:"view_state"`
}
