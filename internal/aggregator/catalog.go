package aggregator

import "github.com/Besher-Hamze/airport-management-system-backend/internal/domain"

// defaultCatalog is the display metadata for the three airports. It is
// independent of the live flight data and never mutated at runtime.
var defaultCatalog = []domain.Airport{
	{
		ID:          "sham",
		Name:        "مطار الشام",
		Code:        "SHA",
		Description: "بوابتك إلى سوريا الجميلة، حيث تلتقي الحضارة العريقة بالخدمات العصرية",
		Location:    "دمشق، سوريا",
		ImageURL:    "/images/sham.png",
		Stats:       domain.AirportStats{Flights: 24, Destinations: 15},
		Features:    []string{"صالات VIP", "خدمة 24/7", "مواقف مجانية"},
	},
	{
		ID:          "emirates",
		Name:        "مطار الإمارات",
		Code:        "EMA",
		Description: "اكتشف روعة دبي عبر مطار عالمي المستوى يجمع بين الفخامة والراحة",
		Location:    "دبي، الإمارات",
		ImageURL:    "/images/emirate.png",
		Stats:       domain.AirportStats{Flights: 36, Destinations: 28},
		Features:    []string{"تسوق حر", "مطاعم فاخرة", "خدمة الليموزين"},
	},
	{
		ID:          "qatar",
		Name:        "مطار قطر",
		Code:        "QTA",
		Description: "تجربة سفر استثنائية في واحد من أفضل مطارات العالم",
		Location:    "الدوحة، قطر",
		ImageURL:    "/images/qatar.png",
		Stats:       domain.AirportStats{Flights: 42, Destinations: 32},
		Features:    []string{"صالة رجال أعمال", "خدمات صحية", "نقل مجاني"},
	},
}
