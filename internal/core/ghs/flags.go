package ghs

import (
	"regexp"

	"github.com/kirillkom/chemical-safety-registry/internal/core/domain"
)

// HazardFlags are independent keyword-presence tests; any combination may hold.
type HazardFlags struct {
	Flammable bool
	Explosive bool
	Oxidizing bool
	Toxic     bool
	Corrosive bool
}

var (
	flammableRe = regexp.MustCompile(`(?i)flammable|combustible`)
	explosiveRe = regexp.MustCompile(`(?i)explosive|explosion`)
	oxidizingRe = regexp.MustCompile(`(?i)oxidiz(?:ing|er)|oxidation`)
	toxicRe     = regexp.MustCompile(`(?i)toxic|poison`)
	corrosiveRe = regexp.MustCompile(`(?i)corrosive|corrosion`)
)

func Flags(normalized string) HazardFlags {
	return HazardFlags{
		Flammable: flammableRe.MatchString(normalized),
		Explosive: explosiveRe.MatchString(normalized),
		Oxidizing: oxidizingRe.MatchString(normalized),
		Toxic:     toxicRe.MatchString(normalized),
		Corrosive: corrosiveRe.MatchString(normalized),
	}
}

func applyFlags(info *domain.HazardInfo, flags HazardFlags) {
	info.Flammable = flags.Flammable
	info.Explosive = flags.Explosive
	info.Oxidizing = flags.Oxidizing
	info.Toxic = flags.Toxic
	info.Corrosive = flags.Corrosive
}
