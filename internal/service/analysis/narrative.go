package analysis

import (
	"fmt"
	"strings"

	"georisk/internal/domain/risk"
)

// Human-facing finding groups, mapped 1:1 from the first four keyword
// categories.
const (
	GroupNaturalRisks        = "natural_risks"
	GroupInfrastructureRisks = "infrastructure_risks"
	GroupSocialRisks         = "social_risks"
	GroupEnvironmentalHealth = "environmental_health"
)

// Fixed "no concern" sentences, one per finding group. The summary
// builder compares against these to decide which groups carry findings.
const (
	noNaturalRisks        = "No significant natural hazards detected"
	noInfrastructureRisks = "Infrastructure conditions appear normal"
	noSocialRisks         = "No major social safety concerns"
	noEnvironmentalHealth = "Environmental conditions within normal range"
)

// maxPrecautions caps the recommended precaution list.
const maxPrecautions = 6

// findingsPerGroup caps how many keyword entries one group renders.
const findingsPerGroup = 3

// Findings renders keyword findings into the four human-facing groups.
// A group with matches renders its first three entries behind the
// group's fixed verb; an empty group gets its single no-concern
// sentence.
func Findings(keywords risk.KeywordFindings) map[string][]string {
	return map[string][]string{
		GroupNaturalRisks:        renderGroup(keywords[CategoryNaturalHazards], "Detected", noNaturalRisks),
		GroupInfrastructureRisks: renderGroup(keywords[CategoryInfrastructure], "Reported", noInfrastructureRisks),
		GroupSocialRisks:         renderGroup(keywords[CategorySocialSafety], "Alert", noSocialRisks),
		GroupEnvironmentalHealth: renderGroup(keywords[CategoryHealthEnvironment], "Noted", noEnvironmentalHealth),
	}
}

func renderGroup(entries []string, verb, fallback string) []string {
	if len(entries) == 0 {
		return []string{fallback}
	}
	if len(entries) > findingsPerGroup {
		entries = entries[:findingsPerGroup]
	}
	rendered := make([]string, len(entries))
	for i, entry := range entries {
		rendered[i] = fmt.Sprintf("%s: %s", verb, entry)
	}
	return rendered
}

// Precautions builds the recommended precaution list: one or two
// level-specific openers followed by conditional advice gated on which
// keyword categories matched, truncated to six in this fixed order.
func Precautions(level risk.Level, keywords risk.KeywordFindings) []string {
	var precautions []string

	switch level {
	case risk.LevelSevere:
		precautions = append(precautions,
			"Avoid travel to this region if possible",
			"Monitor local news and government advisories closely")
	case risk.LevelHigh:
		precautions = append(precautions,
			"Exercise extreme caution if traveling",
			"Check route conditions before departure")
	case risk.LevelModerate:
		precautions = append(precautions,
			"Stay alert to local conditions",
			"Keep emergency contacts and supplies ready")
	default:
		precautions = append(precautions,
			"Normal conditions; standard travel precautions apply")
	}

	if len(keywords[CategoryNaturalHazards]) > 0 {
		precautions = append(precautions, "Monitor weather forecasts and natural hazard warnings")
	}
	if len(keywords[CategoryInfrastructure]) > 0 {
		precautions = append(precautions, "Check for road closures and alternate routes")
	}
	if len(keywords[CategorySocialSafety]) > 0 {
		precautions = append(precautions, "Avoid crowded areas and follow local security advisories")
	}
	if len(keywords[CategoryPrecautionIndicators]) > 0 {
		precautions = append(precautions, "Follow official warnings and evacuation orders if issued")
	}

	if len(precautions) > maxPrecautions {
		precautions = precautions[:maxPrecautions]
	}
	return precautions
}

// Summary renders the one-paragraph assessment text: a level-keyed
// opener, the list of finding groups that raised concerns, an optional
// sentiment clause, and a fixed closing sentence.
func Summary(location string, level risk.Level, findings map[string][]string, metrics risk.SentimentMetrics) string {
	var b strings.Builder

	switch level {
	case risk.LevelHigh:
		fmt.Fprintf(&b, "%s: High risk detected. ", location)
	case risk.LevelModerate:
		fmt.Fprintf(&b, "%s: Moderate risk detected. ", location)
	default:
		fmt.Fprintf(&b, "%s: Low risk. ", location)
	}

	var keyRisks []string
	if first(findings[GroupNaturalRisks]) != noNaturalRisks {
		keyRisks = append(keyRisks, "natural hazards")
	}
	if first(findings[GroupInfrastructureRisks]) != noInfrastructureRisks {
		keyRisks = append(keyRisks, "infrastructure issues")
	}
	if first(findings[GroupSocialRisks]) != noSocialRisks {
		keyRisks = append(keyRisks, "social safety concerns")
	}

	if len(keyRisks) > 0 {
		fmt.Fprintf(&b, "Key concerns: %s. ", strings.Join(keyRisks, ", "))
	} else {
		b.WriteString("No major risks identified. ")
	}

	if metrics.PositivePercent > metrics.NegativePercent*2 {
		b.WriteString("Public sentiment is generally positive. ")
	} else if metrics.NegativePercent > 30 {
		b.WriteString("Public sentiment reflects concerns. ")
	}

	b.WriteString("Check latest advisories before travel.")
	return b.String()
}

func first(entries []string) string {
	if len(entries) == 0 {
		return ""
	}
	return entries[0]
}
