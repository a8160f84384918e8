package types

import (
	"testing"

	"github.com/phonemechanic/repair-ledger/pkg/enums"
	"github.com/stretchr/testify/require"
)

func TestDevicesScanAcceptsBytesAndString(t *testing.T) {
	var fromBytes Devices
	require.NoError(t, fromBytes.Scan([]byte(`[{"model":"iPhone 13","price":"550","policy_type":"sale"}]`)))
	require.Len(t, fromBytes, 1)
	require.NotNil(t, fromBytes[0].PolicyType)
	require.Equal(t, enums.PolicyTypeSale, *fromBytes[0].PolicyType)

	var fromString Devices
	require.NoError(t, fromString.Scan(`[{"model":"Pixel 8","price":"400","storage":"128GB"}]`))
	require.Equal(t, "128GB", fromString[0].Storage)
	require.Nil(t, fromString[0].PolicyType)
}

func TestDevicesValueNilIsEmptyArray(t *testing.T) {
	var devices Devices
	value, err := devices.Value()
	require.NoError(t, err)
	require.Equal(t, "[]", value)
}

func TestRepairLineItemsScanRejectsUnknownType(t *testing.T) {
	var items RepairLineItems
	require.Error(t, items.Scan(42))
	require.NoError(t, items.Scan(nil))
	require.Nil(t, items)
}
