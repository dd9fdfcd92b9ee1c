package domain

type StockEntry struct {
	PharmacyID int64  `db:"pharmacy_id" json:"pharmacy_id"`
	Medicine   string `db:"medicine_name" json:"medicine"`
	Quantity   int    `db:"quantity" json:"quantity"`
	UpdatedAt  string `db:"updated_at" json:"updated_at"`
}
