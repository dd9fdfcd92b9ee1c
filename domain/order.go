package domain

type Order struct {
	ID              string `db:"id" json:"id"`
	Pharmacy        string `db:"pharmacy_name" json:"pharmacy"`
	PharmacyPhone   string `db:"pharmacy_phone" json:"pharmacy_phone"`
	Medicine        string `db:"medicine_name" json:"medicine"`
	Quantity        int    `db:"quantity" json:"quantity"`
	CustomerName    string `db:"customer_name" json:"customer_name"`
	CustomerPhone   string `db:"customer_phone" json:"customer_phone"`
	CustomerAddress string `db:"customer_address" json:"customer_address,omitempty"`
	CreatedAt       string `db:"created_at" json:"created_at"`
}

type NotifyRequest struct {
	ID        string `db:"id" json:"id"`
	Medicine  string `db:"medicine_name" json:"medicine,omitempty"`
	Email     string `db:"email" json:"email"`
	Phone     string `db:"phone" json:"phone,omitempty"`
	CreatedAt string `db:"created_at" json:"created_at"`
}
