// Canvasync - Real-Time Business Model Canvas Collaboration
// Copyright 2026 M. Keller (mkeller0x)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mkeller0x/canvasync

package suggest

import (
	"fmt"

	"github.com/mkeller0x/canvasync/internal/models"
)

// SystemPrompt sets the generation persona. Responses are expected in
// Markdown so the browser's preview pane can render them directly.
const SystemPrompt = `You are an expert business model analyst.
Your task is to provide targeted recommendations for a specific section of a
business model canvas, based on the supplementary material the user provides.

When analyzing the material:
1. Understand the core value and goals of the business
2. Consider industry characteristics and the market environment
3. Focus on existing strengths and potential opportunities
4. Identify likely challenges and constraints

Make sure every recommendation is:
- Concrete and actionable
- Closely tied to the supplementary material
- Commercially sound
- Innovative and sustainable

Format your answer in Markdown.`

// noSupplementsPlaceholder is used when the supplement store is empty so the
// model knows no context was provided rather than receiving a blank block.
const noSupplementsPlaceholder = "No supplementary material provided."

// sectionPrompts maps each canvas section to its instruction template. Every
// template asks for exactly three recommendations with a justification
// structure appropriate to the section.
var sectionPrompts = map[models.Section]string{
	models.SectionKeyPartners: `Based on the supplementary material, identify the 3 most suitable potential partners.
For each recommendation:
1. Explain why this partner matters to the business
2. Describe how it creates synergy with existing operations
3. Estimate the concrete value it could bring`,

	models.SectionKeyActivities: `Based on the business described in the supplementary material, recommend 3 key business activities.
For each recommendation:
1. Explain how the activity supports the core business
2. Describe how it would be carried out
3. State its expected effect and importance`,

	models.SectionValuePropositions: `Based on the business information in the supplementary material, propose the 3 most competitive value propositions.
For each recommendation:
1. State the customer pain point it solves
2. Explain the differentiation from competitors
3. Explain how the proposition would be delivered`,

	models.SectionCustomerRelations: `Based on the business characteristics in the supplementary material, propose 3 ways to maintain customer relationships.
For each recommendation:
1. Explain how it strengthens customer retention
2. Describe the concrete implementation steps
3. State the expected effect`,

	models.SectionCustomerSegments: `Based on the supplementary material, identify the 3 most promising customer segments.
For each recommendation:
1. Describe the characteristics of the segment
2. Explain why the segment is valuable
3. Describe how to serve the segment`,

	models.SectionKeyResources: `Based on the supplementary material, recommend 3 key resources the business needs to grow.
For each recommendation:
1. State what the resource would be used for
2. Explain how to acquire or build it
3. Estimate the value it would bring`,

	models.SectionChannels: `Based on the business model in the supplementary material, propose the 3 most suitable channel strategies.
For each recommendation:
1. Explain why this channel is the right choice
2. Describe how it would operate
3. State the expected effect and cost`,

	models.SectionCostStructure: `Based on the business characteristics in the supplementary material, propose the 3 main cost components.
For each recommendation:
1. Explain why the cost item is necessary
2. Estimate its rough share of total cost
3. Suggest possible optimizations`,

	models.SectionRevenueStreams: `Based on the supplementary material, recommend the 3 most viable revenue streams.
For each recommendation:
1. Describe the concrete form of the revenue stream
2. Suggest an appropriate pricing strategy
3. Estimate the potential revenue scale`,
}

// SectionPrompt returns the instruction template for a section and whether
// the section is one of the nine canvas sections.
func SectionPrompt(section models.Section) (string, bool) {
	prompt, ok := sectionPrompts[section]
	return prompt, ok
}

// UserMessage combines the supplement snapshot with the section template
// into the single user message of the two-message prompt. An empty snapshot
// is replaced by an explicit placeholder.
func UserMessage(section models.Section, supplements string) (string, error) {
	prompt, ok := sectionPrompts[section]
	if !ok {
		return "", fmt.Errorf("unknown canvas section %q", section)
	}
	if supplements == "" {
		supplements = noSupplementsPlaceholder
	}
	return fmt.Sprintf("Supplementary material:\n%s\n\n%s", supplements, prompt), nil
}
