// Package reference holds the regulatory sources, producing states and report
// narrative that accompany an estimate.
package reference

import (
	"strings"

	"github.com/sustainamine/sustainamine/internal/estimation"
)

const (
	StateNotSpecified = "Not specified"

	Disclaimer = "This tool provides illustrative computations and policy references. " +
		"Replace default parameters with validated process data and local SPCB thresholds before using for compliance submission. " +
		"It assists compliance and does not replace statutory approvals."
)

// Source is a public document backing the default factors or compliance flags.
type Source struct {
	Key   string `json:"key"`
	Title string `json:"title"`
	URL   string `json:"url"`
}

var sources = []Source{
	{
		Key:   "CPCB_RedMud_Guidelines",
		Title: "CPCB Guidelines for Handling & Management of Red Mud",
		URL:   "https://cpcb.nic.in/uploads/hwmd/Guidelines_HW_6.pdf",
	},
	{
		Key:   "Hazardous_Waste_Rules_2016",
		Title: "Hazardous & Other Wastes (Management and Transboundary Movement) Rules, 2016",
		URL:   "https://www.npcindia.gov.in/NPC/Files/delhiOFC/EM/Hazardous-waste-management-rules-2016.pdf",
	},
	{
		Key:   "Minerals_Aluminium_page",
		Title: "Ministry of Mines - Aluminium",
		URL:   "https://mines.gov.in/webportal/content/Aluminium",
	},
	{
		Key:   "RedMud_Brochure_JNARDDC",
		Title: "JNARDDC Red Mud Brochure",
		URL:   "https://www.jnarddc.gov.in/Files/Red_Mud_Brochure.pdf",
	},
	{
		Key:   "Indian_Minerals_Yearbook_Copper",
		Title: "Indian Minerals Yearbook 2022 - Copper",
		URL:   "https://ibm.gov.in/writereaddata/files/1715685346664347e2b0816Copper_2022.pdf",
	},
	{
		Key:   "CPCB_Technical_Guidelines",
		Title: "CPCB Technical Guidelines",
		URL:   "https://cpcb.nic.in/technical-guidelines/",
	},
}

var producingStates = map[estimation.Metal][]string{
	estimation.MetalAluminium: {"Odisha", "Gujarat", "Maharashtra", "Chhattisgarh", "Jharkhand", "Other"},
	estimation.MetalCopper:    {"Rajasthan", "Madhya Pradesh", "Jharkhand", "Other/Import"},
}

// Sources returns a copy of the reference list in display order.
func Sources() []Source {
	res := make([]Source, len(sources))
	copy(res, sources)
	return res
}

// ProducingStates returns the extraction states offered for the metal.
func ProducingStates(m estimation.Metal) []string {
	states := producingStates[m]
	res := make([]string, len(states))
	copy(res, states)
	return res
}

// NormalizeState maps state to its canonical spelling for the metal. An empty state is accepted.
func NormalizeState(m estimation.Metal, state string) (string, error) {
	state = strings.TrimSpace(state)
	if state == "" {
		return "", nil
	}
	for _, s := range producingStates[m] {
		if strings.EqualFold(s, state) {
			return s, nil
		}
	}
	return "", estimation.NewValidationError("state", "%q is not a known %s producing state", state, m)
}

// DisplayState returns the state as shown in reports.
func DisplayState(state string) string {
	if state == "" {
		return StateNotSpecified
	}
	return state
}

// ByProductNarrative describes the valorisation routes of the metal's main by-product.
func ByProductNarrative(m estimation.Metal) string {
	if m == estimation.MetalCopper {
		return "Captured SO2 can be converted to sulfuric acid (H2SO4), a valuable industrial chemical for fertilizers and chemicals."
	}
	return "Red mud valorisation routes: cement substitute, pigment (iron oxides), rare earth recovery (pilot scale). See CPCB red mud guidelines."
}
