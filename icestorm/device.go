package icestorm

import (
	"fmt"
	"strings"

	"golang.org/x/exp/slices"

	"github.com/Technosystem-Labs/litex/util"
)

// Device identifies a supported part by family, nextpnr architecture and
// physical package.
type Device struct {
	Family       string
	Architecture string
	Package      string
}

func (d Device) String() string {
	return d.Family + "-" + d.Architecture + "-" + d.Package
}

var supportedFamilies = []string{"ice40"}

// architecturePackages maps each architecture to its valid packages. Entries
// with a ":4k" suffix select parts constrained to 4k logic cells and are
// distinct members, not aliases of the plain package.
var architecturePackages = util.NewOrderedMapFrom(map[string][]string{
	"lp384": {"qn32", "cm36", "cm49"},
	"lp1k":  {"swg16tr", "cm36", "cm49", "cm81", "cb81", "qn84", "cm121", "cb121"},
	"hx1k":  {"vq100", "cb132", "tq144"},
	"lp8k":  {"cm81", "cm81:4k", "cm121", "cm121:4k", "cm225", "cm225:4k"},
	"hx8k": {"bg121", "bg121:4k", "cb132", "cb132:4k", "cm121",
		"cm121:4k", "cm225", "cm225:4k", "cm81", "cm81:4k",
		"ct256", "tq144:4k"},
	"up3k": {"sg48", "uwg30"},
	"up5k": {"sg48", "uwg30"},
	"u4k":  {"sg48"},
})

// ParseDevice decomposes a device identifier of the form
// "family-architecture-package" and validates each field against the
// supported part taxonomy.
func ParseDevice(device string) (Device, error) {
	fields := strings.Split(device, "-")
	if len(fields) != 3 {
		return Device{}, &ValidationError{Device: device, Reason: "expected the form family-architecture-package"}
	}
	family, architecture, pkg := fields[0], fields[1], fields[2]

	if !slices.Contains(supportedFamilies, family) {
		return Device{}, &ValidationError{Device: device, Reason: fmt.Sprintf("unknown family %q", family)}
	}
	packages, ok := architecturePackages.Lookup(architecture)
	if !ok {
		return Device{}, &ValidationError{Device: device, Reason: fmt.Sprintf("unknown architecture %q", architecture)}
	}
	if !slices.Contains(packages, pkg) {
		return Device{}, &ValidationError{Device: device, Reason: fmt.Sprintf("unknown package %q for architecture %q", pkg, architecture)}
	}

	return Device{Family: family, Architecture: architecture, Package: pkg}, nil
}

// SupportedDevices returns the identifiers of all supported parts, grouped by
// architecture in a stable order.
func SupportedDevices() []string {
	devices := []string{}
	for _, family := range supportedFamilies {
		for _, entry := range architecturePackages.Entries() {
			for _, pkg := range entry.Value {
				devices = append(devices, family+"-"+entry.Key+"-"+pkg)
			}
		}
	}
	return devices
}
