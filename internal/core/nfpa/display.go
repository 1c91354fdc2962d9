package nfpa

const colorUnknown = "#808080"

var flammabilityColors = map[int]string{
	0: "#FFFFFF",
	1: "#FF0000",
	2: "#FFA500",
	3: "#FFFF00",
	4: "#FF0000",
}

var flammabilityDescriptions = map[int]string{
	0: "Materials that will not burn under typical fire conditions.",
	1: "Materials that require considerable preheating before ignition can occur.",
	2: "Materials that must be moderately heated or exposed to relatively high ambient temperature before ignition can occur.",
	3: "Liquids and solids that can be ignited under almost all ambient temperature conditions.",
	4: "Materials that will rapidly or completely vaporize at normal atmospheric pressure and temperature, or are readily dispersed in air and will burn readily.",
}

func FlammabilityColor(rating int) string {
	if c, ok := flammabilityColors[rating]; ok {
		return c
	}
	return colorUnknown
}

func FlammabilityDescription(rating int) string {
	if d, ok := flammabilityDescriptions[rating]; ok {
		return d
	}
	return "Unknown"
}

// NotClassified is the record shown when a translation has no match.
func NotClassified() Classification {
	return Classification{
		NFPAClass:               "Not classified",
		Flammability:            0,
		FireCodeType:            "Not classified",
		FlashPointDescription:   "Not available",
		BoilingPointDescription: "Not available",
	}
}
