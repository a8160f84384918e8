package repairs

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFullLabelPath(t *testing.T) {
	cases := map[string]string{
		"none":                     "None",
		"screen_repair":            "Screen Repair",
		"incell_120hz":             "Screen Repair > aftermaket incell > 120hz",
		"standard_aftermaket_hard": "Screen Repair > aftermaket hard > standard aftermaket",
		"oem":                      "Screen Repair > oem",
		"sp_battery":               "Accessory Repair > battery > sp",
		"front_speaker":            "Accessory Repair > speaker > front",
		"does_not_exist":           "",
		"":                         "",
	}
	for id, want := range cases {
		require.Equal(t, want, FullLabelPath(id), "id %q", id)
	}
}

func TestDescribeMixesCustomAndCatalogueItems(t *testing.T) {
	got := Describe([]string{"screen_repair", "custom:water clean", "unknown", "custom:", "camera_glass"})
	require.Equal(t, []string{"Screen Repair", "water clean", "Accessory Repair > glass > camera"}, got)
	require.Empty(t, Describe(nil))
}

func TestTreeIsACopy(t *testing.T) {
	tree := Tree()
	require.NotEmpty(t, tree)
	tree[1].Label = "mutated"
	tree[1].Children[0].Label = "mutated"
	require.Equal(t, "Screen Repair", FullLabelPath("screen_repair"))
	require.Equal(t, "Screen Repair", Tree()[1].Label)
	require.True(t, Known("wifi"))
	require.False(t, Known("custom:wifi"))
}
