package catalog

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFindMedicine(t *testing.T) {
	c := Default()

	med, ok := c.FindMedicine("paracetamol", false)
	require.True(t, ok)
	require.Equal(t, "Paracetamol", med.Name)

	med, ok = c.FindMedicine("  PARACETAMOL ", true)
	require.True(t, ok)
	require.True(t, med.Emergency)

	_, ok = c.FindMedicine("amoxicillin", true)
	require.False(t, ok)

	med, ok = c.FindMedicine("amoxicillin", false)
	require.True(t, ok)
	require.Equal(t, "Antibiotic", med.Category)

	_, ok = c.FindMedicine("ibuprofen", false)
	require.False(t, ok)

	_, ok = c.FindMedicine("", false)
	require.False(t, ok)
}

func TestPharmaciesKeepCatalogOrder(t *testing.T) {
	names := []string{}
	for _, p := range Default().Pharmacies() {
		names = append(names, p.Name)
	}
	require.Equal(t, []string{"Green Pharmacy", "HealthPlus", "MediCare", "Apollo Pharmacy", "Care Pharmacy"}, names)
}

func TestAccessorsReturnCopies(t *testing.T) {
	c := Default()

	ps := c.Pharmacies()
	ps[0].Stock["Paracetamol"] = 0
	ps[0].Name = "changed"

	p, ok := c.Pharmacy("green pharmacy")
	require.True(t, ok)
	require.Equal(t, 25, p.Stock["Paracetamol"])

	p.Stock["Paracetamol"] = 1
	require.Equal(t, 25, Default().Pharmacies()[0].Stock["Paracetamol"])
	require.Equal(t, 25, c.Pharmacies()[0].Stock["Paracetamol"])

	_, ok = c.Pharmacy("unknown")
	require.False(t, ok)
}

func TestNewDoesNotAliasInput(t *testing.T) {
	src := Default().Pharmacies()
	c := New(Default().Medicines(), src)
	src[1].Stock["Adrenaline"] = 99

	p, ok := c.Pharmacy("HealthPlus")
	require.True(t, ok)
	require.Equal(t, 8, p.Stock["Adrenaline"])
	require.Len(t, c.Medicines(), 3)
}
