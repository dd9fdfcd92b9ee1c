package catalog

import "pharmanear/m/domain"

var defaultMedicines = []domain.Medicine{
	{
		Name:        "Paracetamol",
		Uses:        "Fever, mild pain relief",
		Category:    "Analgesic",
		SideEffects: "Nausea, rash, liver issues",
		Emergency:   true,
	},
	{
		Name:        "Amoxicillin",
		Uses:        "Bacterial infections",
		Category:    "Antibiotic",
		SideEffects: "Diarrhea, allergic reactions",
		Emergency:   false,
	},
	{
		Name:        "Adrenaline",
		Uses:        "Anaphylaxis, cardiac arrest",
		Category:    "Life-saving",
		SideEffects: "Palpitations, anxiety",
		Emergency:   true,
	},
}

var defaultPharmacies = []domain.Pharmacy{
	{
		Name:      "Green Pharmacy",
		Location:  domain.Location{Lat: 12.9716, Lng: 77.5946},
		Address:   "Main Street, Bangalore",
		IsOpen:    true,
		Phone:     "9876543210",
		OpenTime:  "9:00 AM",
		CloseTime: "10:00 PM",
		Rating:    4.5,
		Stock:     map[string]int{"Paracetamol": 25, "Amoxicillin": 10, "Adrenaline": 5},
	},
	{
		Name:      "HealthPlus",
		Location:  domain.Location{Lat: 12.9700, Lng: 77.5900},
		Address:   "Park Avenue, Bangalore",
		IsOpen:    true,
		Phone:     "9123456780",
		OpenTime:  "8:00 AM",
		CloseTime: "9:00 PM",
		Rating:    4.2,
		Stock:     map[string]int{"Paracetamol": 15, "Amoxicillin": 0, "Adrenaline": 8},
	},
	{
		Name:      "MediCare",
		Location:  domain.Location{Lat: 12.9750, Lng: 77.5980},
		Address:   "Health Plaza, Bangalore",
		IsOpen:    false,
		Phone:     "9988776655",
		OpenTime:  "10:00 AM",
		CloseTime: "8:00 PM",
		Rating:    3.9,
		Stock:     map[string]int{"Paracetamol": 10, "Amoxicillin": 5, "Adrenaline": 0},
	},
	{
		Name:      "Apollo Pharmacy",
		Location:  domain.Location{Lat: 12.9680, Lng: 77.5850},
		Address:   "Tech Park, Bangalore",
		IsOpen:    true,
		Phone:     "9876123456",
		OpenTime:  "8:30 AM",
		CloseTime: "10:30 PM",
		Rating:    4.7,
		Stock:     map[string]int{"Paracetamol": 30, "Amoxicillin": 12, "Adrenaline": 7},
	},
	{
		Name:      "Care Pharmacy",
		Location:  domain.Location{Lat: 12.9800, Lng: 77.6000},
		Address:   "Medical Hub, Bangalore",
		IsOpen:    true,
		Phone:     "9654321098",
		OpenTime:  "9:30 AM",
		CloseTime: "9:30 PM",
		Rating:    4.3,
		Stock:     map[string]int{"Paracetamol": 20, "Amoxicillin": 6, "Adrenaline": 3},
	},
}
