package database

import (
	"log"

	"tolvuleiga/models"
	"tolvuleiga/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Seed loads a small catalogue when the products tables are empty. Prices
// come from the legacy free-text fields through the parse shim, so seeded
// rows look exactly like imported ones.
func Seed(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.PC{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	pcs := []models.PC{
		{Name: "Leigutölva Basic", CPU: "Ryzen 5 5600", GPU: "RTX 4060", RAM: "16GB", Storage: "512GB NVMe", LegacyPrice: "14.990 kr", ImageFolder: "basic"},
		{Name: "Leigutölva Pro", CPU: "Ryzen 7 7700X", GPU: "RTX 4070 Super", RAM: "32GB", Storage: "1TB NVMe", LegacyPrice: "19.990 kr", ImageFolder: "pro"},
		{Name: "Leigutölva Ultra", CPU: "Ryzen 9 7950X", GPU: "RTX 4090", RAM: "64GB", Storage: "2TB NVMe", LegacyPrice: "34.990 kr", ImageFolder: "ultra"},
	}
	for i := range pcs {
		pcs[i].ID = uuid.NewString()
		pcs[i].PriceISK = utils.ParsePriceISK(pcs[i].LegacyPrice)
	}
	if err := db.Create(&pcs).Error; err != nil {
		return err
	}

	consoles := []models.Console{
		{Name: "PlayStation 5", Capacity: "825GB", LegacyPrice: "9.990 kr", ControllerPriceISK: 1500, MaxExtraControllers: 3, ImageFolder: "ps5"},
		{Name: "Xbox Series X", Capacity: "1TB", LegacyPrice: "9.990 kr", ControllerPriceISK: 1500, MaxExtraControllers: 3, ImageFolder: "xsx"},
		{Name: "Nintendo Switch OLED", Capacity: "64GB", LegacyPrice: "6.990 kr", ControllerPriceISK: 1200, MaxExtraControllers: 2, ImageFolder: "switch"},
	}
	for i := range consoles {
		consoles[i].ID = uuid.NewString()
		consoles[i].PriceISK = utils.ParsePriceISK(consoles[i].LegacyPrice)
	}
	if err := db.Create(&consoles).Error; err != nil {
		return err
	}

	accessories := []models.Accessory{
		{Type: models.AccessoryTypeScreen, Name: "27\" 165Hz skjár", LegacyPrice: "2.000 kr"},
		{Type: models.AccessoryTypeKeyboard, Name: "Vélrænt lyklaborð", LegacyPrice: "900 kr"},
		{Type: models.AccessoryTypeMouse, Name: "Þráðlaus leikjamús", LegacyPrice: "600 kr"},
	}
	for i := range accessories {
		accessories[i].ID = uuid.NewString()
		accessories[i].PriceISK = utils.ParsePriceISK(accessories[i].LegacyPrice)
	}
	if err := db.Create(&accessories).Error; err != nil {
		return err
	}

	// Every PC offers every accessory type.
	var links []models.ProductAccessory
	for _, pc := range pcs {
		for _, acc := range accessories {
			links = append(links, models.ProductAccessory{
				ProductID:     pc.ID,
				ProductKind:   models.ProductKindPC,
				AccessoryType: acc.Type,
				AccessoryID:   acc.ID,
			})
		}
	}
	if err := db.Create(&links).Error; err != nil {
		return err
	}

	log.Printf("Seeded %d PCs, %d consoles, %d accessories", len(pcs), len(consoles), len(accessories))
	return nil
}
