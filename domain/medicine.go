package domain

type Medicine struct {
	Name        string `db:"name" json:"name"`
	Uses        string `db:"uses" json:"uses"`
	Category    string `db:"category" json:"category"`
	SideEffects string `db:"side_effects" json:"side_effects"`
	Emergency   bool   `db:"emergency" json:"emergency"`
}
