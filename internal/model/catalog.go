package model

// EcoPractice is a catalog entry for a sustainable farming method.
type EcoPractice struct {
	ID             string
	Name           LocalizedText
	Icon           string
	CarbonImpact   float64 // sequestration coefficient
	Description    string
	IncomeIncrease int64 // rupees per year on a 5-acre baseline
}

// CropType is a catalog entry for a crop with its carbon factor.
type CropType struct {
	ID           string
	Name         LocalizedText
	CarbonFactor float64
}

// DefaultCarbonFactor applies to crops missing from the catalog.
const DefaultCarbonFactor = 1.0

// EcoPractices is the fixed practice catalog, in display order.
var EcoPractices = []EcoPractice{
	{
		ID:             "organic",
		Name:           LocalizedText{En: "Organic Farming", Hi: "जैविक खेती", Mr: "सेंद्रिय शेती"},
		Icon:           "🌱",
		CarbonImpact:   1.2,
		Description:    "No chemical fertilizers or pesticides",
		IncomeIncrease: 15000,
	},
	{
		ID:             "agroforestry",
		Name:           LocalizedText{En: "Tree Plantation / Agroforestry", Hi: "वृक्षारोपण / कृषि वानिकी", Mr: "वृक्षारोपण / कृषी वनीकरण"},
		Icon:           "🌳",
		CarbonImpact:   2.5,
		Description:    "Growing trees alongside crops",
		IncomeIncrease: 35000,
	},
	{
		ID:             "reduced_tillage",
		Name:           LocalizedText{En: "Reduced Tillage", Hi: "कम जुताई", Mr: "कमी नांगरणी"},
		Icon:           "🚜",
		CarbonImpact:   1.5,
		Description:    "Minimal soil disturbance",
		IncomeIncrease: 12000,
	},
	{
		ID:             "residue_management",
		Name:           LocalizedText{En: "Crop Residue Management", Hi: "फसल अवशेष प्रबंधन", Mr: "पीक अवशेष व्यवस्थापन"},
		Icon:           "♻️",
		CarbonImpact:   1.3,
		Description:    "Using crop waste effectively",
		IncomeIncrease: 8000,
	},
	{
		ID:             "efficient_irrigation",
		Name:           LocalizedText{En: "Efficient Irrigation", Hi: "कुशल सिंचाई", Mr: "कार्यक्षम सिंचन"},
		Icon:           "💧",
		CarbonImpact:   1.1,
		Description:    "Drip or sprinkler irrigation",
		IncomeIncrease: 18000,
	},
}

// CropTypes is the fixed crop catalog.
var CropTypes = []CropType{
	{ID: "wheat", Name: LocalizedText{En: "Wheat", Hi: "गेहूं", Mr: "गहू"}, CarbonFactor: 1.0},
	{ID: "rice", Name: LocalizedText{En: "Rice", Hi: "धान", Mr: "तांदूळ"}, CarbonFactor: 0.9},
	{ID: "cotton", Name: LocalizedText{En: "Cotton", Hi: "कपास", Mr: "कापूस"}, CarbonFactor: 1.1},
	{ID: "sugarcane", Name: LocalizedText{En: "Sugarcane", Hi: "गन्ना", Mr: "ऊस"}, CarbonFactor: 1.3},
	{ID: "vegetables", Name: LocalizedText{En: "Vegetables", Hi: "सब्जियां", Mr: "भाज्या"}, CarbonFactor: 0.8},
	{ID: "pulses", Name: LocalizedText{En: "Pulses", Hi: "दालें", Mr: "डाळी"}, CarbonFactor: 1.2},
}

// PracticeByID looks up a catalog practice.
func PracticeByID(id string) (EcoPractice, bool) {
	for _, p := range EcoPractices {
		if p.ID == id {
			return p, true
		}
	}
	return EcoPractice{}, false
}

// CropByID looks up a catalog crop.
func CropByID(id string) (CropType, bool) {
	for _, c := range CropTypes {
		if c.ID == id {
			return c, true
		}
	}
	return CropType{}, false
}

// CarbonFactorFor returns the crop's factor or DefaultCarbonFactor when unknown.
func CarbonFactorFor(cropType string) float64 {
	if c, ok := CropByID(cropType); ok {
		return c.CarbonFactor
	}
	return DefaultCarbonFactor
}
