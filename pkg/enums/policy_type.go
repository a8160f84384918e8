package enums

import "fmt"

// PolicyType selects the warranty terms printed on an invoice.
type PolicyType string

const (
	PolicyTypeStandard  PolicyType = "standard"
	PolicyTypeWater     PolicyType = "water"
	PolicyTypeMainboard PolicyType = "mainboard"
	PolicyTypeSale      PolicyType = "sale"
	PolicyTypeCustom    PolicyType = "custom"
)

var validPolicyTypes = []PolicyType{
	PolicyTypeStandard,
	PolicyTypeWater,
	PolicyTypeMainboard,
	PolicyTypeSale,
	PolicyTypeCustom,
}

// String implements fmt.Stringer.
func (p PolicyType) String() string {
	return string(p)
}

// IsValid reports whether the value is a known PolicyType.
func (p PolicyType) IsValid() bool {
	for _, candidate := range validPolicyTypes {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParsePolicyType converts raw input into a PolicyType.
func ParsePolicyType(value string) (PolicyType, error) {
	for _, candidate := range validPolicyTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid policy type %q", value)
}
