// Package seed содержит статический стартовый каталог аптеки.
// Записи проверяются сервисом каталога при загрузке.
package seed

import (
	"github.com/shopspring/decimal"

	"pharmapos/internal/domain"
)

func price(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// Products стартовый набор товаров
func Products() []domain.Product {
	return []domain.Product{
		{
			Name:                 "Amoxicillin 500mg",
			Description:          "Broad-spectrum antibiotic capsules, 21 count",
			SKU:                  "RX-AMOX-500",
			Price:                price("12.99"),
			Stock:                42,
			ReorderPoint:         15,
			RequiresPrescription: true,
			Category:             domain.CategoryPrescription,
		},
		{
			Name:                 "Lisinopril 10mg",
			Description:          "ACE inhibitor tablets for blood pressure, 30 count",
			SKU:                  "RX-LISI-010",
			Price:                price("8.49"),
			Stock:                58,
			ReorderPoint:         20,
			RequiresPrescription: true,
			Category:             domain.CategoryPrescription,
		},
		{
			Name:                 "Atorvastatin 20mg",
			Description:          "Cholesterol-lowering statin tablets, 30 count",
			SKU:                  "RX-ATOR-020",
			Price:                price("15.75"),
			Stock:                12,
			ReorderPoint:         15,
			RequiresPrescription: true,
			Category:             domain.CategoryPrescription,
		},
		{
			Name:         "Ibuprofen 200mg",
			Description:  "Pain and fever relief tablets, 100 count",
			SKU:          "OTC-IBUP-200",
			Price:        price("7.25"),
			Stock:        120,
			ReorderPoint: 40,
			Category:     domain.CategoryOTC,
		},
		{
			Name:         "Acetaminophen 500mg",
			Description:  "Extra strength pain reliever, 50 count",
			SKU:          "OTC-ACET-500",
			Price:        price("6.89"),
			Stock:        95,
			ReorderPoint: 30,
			Category:     domain.CategoryOTC,
		},
		{
			Name:         "Loratadine 10mg",
			Description:  "Non-drowsy allergy relief, 30 count",
			SKU:          "OTC-LORA-010",
			Price:        price("11.50"),
			Stock:        27,
			ReorderPoint: 25,
			Category:     domain.CategoryOTC,
		},
		{
			Name:         "Vitamin D3 2000 IU",
			Description:  "Daily immune support softgels, 90 count",
			SKU:          "WEL-VITD-2K",
			Price:        price("9.99"),
			Stock:        64,
			ReorderPoint: 20,
			Category:     domain.CategoryWellness,
		},
		{
			Name:         "Omega-3 Fish Oil 1000mg",
			Description:  "Heart health supplement softgels, 60 count",
			SKU:          "WEL-OMG3-1K",
			Price:        price("14.25"),
			Stock:        33,
			ReorderPoint: 15,
			Category:     domain.CategoryWellness,
		},
		{
			Name:         "Digital Thermometer",
			Description:  "Fast-read oral thermometer with flexible tip",
			SKU:          "MED-THERM-01",
			Price:        price("13.49"),
			Stock:        18,
			ReorderPoint: 10,
			Category:     domain.CategoryMedicalSupplies,
		},
		{
			Name:         "Adhesive Bandages",
			Description:  "Assorted sterile bandages, 80 count",
			SKU:          "MED-BAND-80",
			Price:        price("4.99"),
			Stock:        140,
			ReorderPoint: 50,
			Category:     domain.CategoryMedicalSupplies,
		},
		{
			Name:         "Blood Pressure Monitor",
			Description:  "Automatic upper-arm cuff with large display",
			SKU:          "MED-BPM-100",
			Price:        price("49.99"),
			Stock:        9,
			ReorderPoint: 5,
			Category:     domain.CategoryMedicalSupplies,
		},
	}
}
