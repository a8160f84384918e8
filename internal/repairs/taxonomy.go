// Package repairs holds the shop's static repair catalogue and resolves the
// category ids stored on transactions into printable labels.
package repairs

import "strings"

// CustomPrefix marks a free-form repair tag typed in by staff.
const CustomPrefix = "custom:"

// PathSeparator joins labels from the root category down to a leaf.
const PathSeparator = " > "

// Category is one node of the repair catalogue.
type Category struct {
	ID       string     `json:"id"`
	Label    string     `json:"label"`
	Children []Category `json:"children,omitempty"`
}

var catalogue = []Category{
	{ID: "none", Label: "None"},
	{
		ID:    "screen_repair",
		Label: "Screen Repair",
		Children: []Category{
			{
				ID:    "aftermaket_incell",
				Label: "aftermaket incell",
				Children: []Category{
					{ID: "incell_80_90hz", Label: "80-90hz"},
					{ID: "incell_120hz", Label: "120hz"},
					{ID: "standard_aftermaket_incell", Label: "standard aftermaket"},
				},
			},
			{
				ID:    "aftermaket_hard",
				Label: "aftermaket hard",
				Children: []Category{
					{ID: "hard_80_90hz", Label: "80-90hz"},
					{ID: "hard_120hz", Label: "120hz"},
					{ID: "standard_aftermaket_hard", Label: "standard aftermaket"},
				},
			},
			{ID: "aftermaket_soft_120hz", Label: "aftermaket soft 120hz"},
			{ID: "service_pack", Label: "service pack"},
			{ID: "oem", Label: "oem"},
		},
	},
	{
		ID:    "accessory_repair",
		Label: "Accessory Repair",
		Children: []Category{
			{
				ID:    "camera",
				Label: "camera",
				Children: []Category{
					{ID: "front_camera", Label: "front"},
					{ID: "rear_camera", Label: "rear"},
				},
			},
			{
				ID:    "charging_port",
				Label: "charging port",
				Children: []Category{
					{ID: "microphone", Label: "microphone"},
					{ID: "barometer", Label: "barometer"},
				},
			},
			{
				ID:    "sensor",
				Label: "sensor",
				Children: []Category{
					{ID: "wifi", Label: "wifi"},
					{ID: "bluetooth", Label: "bluetooth"},
					{ID: "light", Label: "light"},
				},
			},
			{
				ID:    "battery",
				Label: "battery",
				Children: []Category{
					{ID: "aftermaket_battery", Label: "aftermaket"},
					{ID: "sp_battery", Label: "sp"},
				},
			},
			{
				ID:    "glass",
				Label: "glass",
				Children: []Category{
					{ID: "back_glass", Label: "back"},
					{ID: "camera_glass", Label: "camera"},
				},
			},
			{
				ID:    "speaker",
				Label: "speaker",
				Children: []Category{
					{ID: "loud_speaker", Label: "loud"},
					{ID: "front_speaker", Label: "front"},
				},
			},
		},
	},
}

// paths maps every category id to its labels from the root, built once.
var paths = indexPaths(catalogue, nil, map[string][]string{})

func indexPaths(nodes []Category, parent []string, out map[string][]string) map[string][]string {
	for _, node := range nodes {
		chain := make([]string, len(parent)+1)
		copy(chain, parent)
		chain[len(parent)] = node.Label
		if _, seen := out[node.ID]; !seen {
			out[node.ID] = chain
		}
		indexPaths(node.Children, chain, out)
	}
	return out
}

// Tree returns a deep copy of the catalogue for display.
func Tree() []Category {
	return cloneCategories(catalogue)
}

func cloneCategories(nodes []Category) []Category {
	if nodes == nil {
		return nil
	}
	out := make([]Category, len(nodes))
	for i, node := range nodes {
		out[i] = Category{ID: node.ID, Label: node.Label, Children: cloneCategories(node.Children)}
	}
	return out
}

// Known reports whether id names a catalogue node.
func Known(id string) bool {
	_, ok := paths[id]
	return ok
}

// FullLabelPath resolves id to its " > " joined label chain. Unknown ids
// resolve to "".
func FullLabelPath(id string) string {
	chain, ok := paths[id]
	if !ok {
		return ""
	}
	return strings.Join(chain, PathSeparator)
}

// CustomText returns the free-form text of a custom tag.
func CustomText(item string) (string, bool) {
	if !strings.HasPrefix(item, CustomPrefix) {
		return "", false
	}
	return strings.TrimPrefix(item, CustomPrefix), true
}

// Describe resolves a selection of repair items into display labels, keeping
// the input order. Custom tags are shown without their prefix and items that
// resolve to nothing are skipped.
func Describe(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if text, ok := CustomText(item); ok {
			if text != "" {
				out = append(out, text)
			}
			continue
		}
		if label := FullLabelPath(item); label != "" {
			out = append(out, label)
		}
	}
	return out
}
