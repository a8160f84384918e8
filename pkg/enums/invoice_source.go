package enums

// InvoiceSource names which pricing representation produced invoice lines.
type InvoiceSource string

const (
	InvoiceSourceDevices     InvoiceSource = "devices"
	InvoiceSourceRepairLines InvoiceSource = "repair_lines"
	InvoiceSourceLegacy      InvoiceSource = "legacy"
)

// String implements fmt.Stringer.
func (s InvoiceSource) String() string {
	return string(s)
}
