package ghs

import (
	"regexp"
	"strings"

	"github.com/kirillkom/chemical-safety-registry/internal/core/domain"
)

// Topic is one of the health/environment hazard classes captured as free text.
type Topic string

const (
	TopicAcuteToxicity            Topic = "acute_toxicity"
	TopicSeriousEyeDamage         Topic = "serious_eye_damage"
	TopicSkinCorrosion            Topic = "skin_corrosion"
	TopicReproductiveToxicity     Topic = "reproductive_toxicity"
	TopicCarcinogenicity          Topic = "carcinogenicity"
	TopicGermCellMutagenicity     Topic = "germ_cell_mutagenicity"
	TopicRespiratorySensitization Topic = "respiratory_sensitization"
	TopicAquaticToxicity          Topic = "aquatic_toxicity"
)

// A topic phrase is its lead words, an optional qualifier such as "(oral)" and
// an optional category token such as "Category 1B".
const topicSuffix = `(?:\s*\(?(?:oral|dermal|inhalation|acute|chronic|single exposure|repeated exposure)\)?)?` +
	`(?:\s*[:,\-]?\s*(?:category|cat\.)?\s*[1-5][AB]?\b)?`

var topicPatterns = []struct {
	topic Topic
	re    *regexp.Regexp
}{
	{TopicAcuteToxicity, topicRe(`acute\s+toxicity`)},
	{TopicSeriousEyeDamage, topicRe(`serious\s+eye\s+damage(?:\s*/\s*eye\s+irritation)?`)},
	{TopicSkinCorrosion, topicRe(`skin\s+corrosion(?:\s*/\s*irritation)?`)},
	{TopicReproductiveToxicity, topicRe(`reproductive\s+toxicity`)},
	{TopicCarcinogenicity, topicRe(`carcinogenicity`)},
	{TopicGermCellMutagenicity, topicRe(`germ[\s-]*cell\s+mutagenicity`)},
	{TopicRespiratorySensitization, topicRe(`respiratory\s+sensiti[sz]ation`)},
	{TopicAquaticToxicity, topicRe(`(?:(?:acute|chronic)\s+)?aquatic\s+toxicity`)},
}

func topicRe(lead string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)` + lead + topicSuffix)
}

// Categories returns the first matched phrase per topic. Topics without a
// match are absent from the map.
func Categories(normalized string) map[Topic]string {
	out := make(map[Topic]string, len(topicPatterns))
	for _, p := range topicPatterns {
		if m := Category(normalized, p.re); m != "" {
			out[p.topic] = m
		}
	}
	return out
}

func Category(normalized string, re *regexp.Regexp) string {
	return strings.TrimSpace(re.FindString(normalized))
}

func applyCategories(info *domain.HazardInfo, found map[Topic]string) {
	info.AcuteToxicity = found[TopicAcuteToxicity]
	info.SeriousEyeDamage = found[TopicSeriousEyeDamage]
	info.SkinCorrosion = found[TopicSkinCorrosion]
	info.ReproductiveToxicity = found[TopicReproductiveToxicity]
	info.Carcinogenicity = found[TopicCarcinogenicity]
	info.GermCellMutagenicity = found[TopicGermCellMutagenicity]
	info.RespiratorySensitization = found[TopicRespiratorySensitization]
	info.AquaticToxicity = found[TopicAquaticToxicity]
}
