package payload

import (
	"fmt"
	"sort"

	"github.com/andrei-cloud/go_segop/pkg/errorcodes"
)

type metadataCode struct {
	code        byte
	description string
}

// tierCodes maps BUDS tier names to the value byte of a tier record.
var tierCodes = map[string]metadataCode{
	"T1_METADATA":    {0x10, "Metadata, indexing and hints"},
	"T2_OPERATIONAL": {0x20, "Operational protocol data"},
	"T3_ARBITRARY":   {0x30, "Arbitrary or bulk data"},
}

// kindCodes maps BUDS data-kind names to the value byte of a kind record.
var kindCodes = map[string]metadataCode{
	"TEXT_NOTE":       {0x01, "Human-readable note"},
	"L2_STATE_ANCHOR": {0x02, "Layer-2 state anchor"},
	"PROOF_REF":       {0x03, "Reference to an external proof"},
}

// TierCode returns the byte code for a tier name.
func TierCode(name string) (byte, error) {
	c, ok := tierCodes[name]
	if !ok {
		return 0, fmt.Errorf("%w: tier %q", errorcodes.ErrUnknownMetadataCode, name)
	}

	return c.code, nil
}

// KindCode returns the byte code for a data-kind name.
func KindCode(name string) (byte, error) {
	c, ok := kindCodes[name]
	if !ok {
		return 0, fmt.Errorf("%w: kind %q", errorcodes.ErrUnknownMetadataCode, name)
	}

	return c.code, nil
}

// TierDescription returns the description of a tier name, or "" if unknown.
func TierDescription(name string) string {
	return tierCodes[name].description
}

// KindDescription returns the description of a data-kind name, or "" if unknown.
func KindDescription(name string) string {
	return kindCodes[name].description
}

// TierNames returns the known tier names in code order.
func TierNames() []string {
	return sortedNames(tierCodes)
}

// KindNames returns the known data-kind names in code order.
func KindNames() []string {
	return sortedNames(kindCodes)
}

func sortedNames(table map[string]metadataCode) []string {
	names := make([]string, 0, len(table))
	for name := range table {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		return table[names[i]].code < table[names[j]].code
	})

	return names
}
