package domain

// ProductType categorizes what a product is.
type ProductType string

const (
	TypeFruit      ProductType = "fruit"
	TypeHardware   ProductType = "hardware"
	TypeDaily      ProductType = "daily_necessities"
	TypeDigital    ProductType = "digital_products"
	TypeApparel    ProductType = "apparel"
	TypeFoodstuff  ProductType = "foodstuff"
	TypeSport      ProductType = "sport"
	TypeHealthcare ProductType = "healthcare"
	TypeBoutique   ProductType = "boutique"
	TypeCosmetics  ProductType = "cosmetics"
	TypeBooks      ProductType = "books"
	TypeHousehold  ProductType = "household"
)

// ProductTypes lists every valid product type, in catalog order.
var ProductTypes = []ProductType{
	TypeFruit, TypeHardware, TypeDaily, TypeDigital, TypeApparel,
	TypeFoodstuff, TypeSport, TypeHealthcare, TypeBoutique,
	TypeCosmetics, TypeBooks, TypeHousehold,
}

func (t ProductType) Valid() bool {
	for _, known := range ProductTypes {
		if t == known {
			return true
		}
	}
	return false
}

// UnitType is a unit of measure. Each unit carries a conversion factor
// against its base unit (kilogram for weight, meter for length, litre
// for volume, single item for count).
type UnitType string

const (
	UnitCatty      UnitType = "catty" // Taiwanese catty
	UnitTael       UnitType = "tael"  // 1/16 catty
	UnitGram       UnitType = "gram"
	UnitKilogram   UnitType = "kilogram"
	UnitPound      UnitType = "pound"
	UnitMeter      UnitType = "meter"
	UnitCentimeter UnitType = "centimeter"
	UnitLitre      UnitType = "litre"
	UnitMillilitre UnitType = "millilitre"
	UnitGallon     UnitType = "gallon"
	UnitPiece      UnitType = "piece"
	UnitPair       UnitType = "pair"
	UnitDozen      UnitType = "dozen"
	UnitSet        UnitType = "set"
	UnitRoll       UnitType = "roll"
	UnitCase       UnitType = "case"
)

type unitInfo struct {
	Label  string
	Factor float64
}

var unitCatalog = map[UnitType]unitInfo{
	UnitCatty:      {"catty", 0.6},
	UnitTael:       {"tael", 0.0375},
	UnitGram:       {"gram", 0.001},
	UnitKilogram:   {"kilogram", 1},
	UnitPound:      {"pound", 0.453592},
	UnitMeter:      {"meter", 1},
	UnitCentimeter: {"centimeter", 0.01},
	UnitLitre:      {"litre", 1},
	UnitMillilitre: {"millilitre", 0.001},
	UnitGallon:     {"gallon", 3.78541},
	UnitPiece:      {"piece", 1},
	UnitPair:       {"pair", 2},
	UnitDozen:      {"dozen", 12},
	UnitSet:        {"set", 1},
	UnitRoll:       {"roll", 1},
	UnitCase:       {"case", 1},
}

// UnitTypes lists every valid unit of measure, in catalog order.
var UnitTypes = []UnitType{
	UnitCatty, UnitTael, UnitGram, UnitKilogram, UnitPound,
	UnitMeter, UnitCentimeter, UnitLitre, UnitMillilitre, UnitGallon,
	UnitPiece, UnitPair, UnitDozen, UnitSet, UnitRoll, UnitCase,
}

func (u UnitType) Valid() bool {
	_, ok := unitCatalog[u]
	return ok
}

// Label returns the display name of the unit.
func (u UnitType) Label() string {
	if info, ok := unitCatalog[u]; ok {
		return info.Label
	}
	return string(u)
}

// Factor returns the multiplier against the unit's base unit.
func (u UnitType) Factor() float64 {
	if info, ok := unitCatalog[u]; ok {
		return info.Factor
	}
	return 1
}

// Level is a person's access level.
type Level string

const (
	LevelAdmin     Level = "admin"
	LevelConsignor Level = "consignor"
	LevelBoss      Level = "boss"
	LevelEmployee  Level = "employee"
)

var Levels = []Level{LevelAdmin, LevelConsignor, LevelBoss, LevelEmployee}

func (l Level) Valid() bool {
	for _, known := range Levels {
		if l == known {
			return true
		}
	}
	return false
}
