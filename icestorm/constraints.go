package icestorm

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/Technosystem-Labs/litex/hdl"
)

// ClockConstraint binds a clock signal to a period in nanoseconds.
type ClockConstraint struct {
	Signal hdl.Signal
	Period float64
}

// BuildPCF renders the pin placement constraints (.pcf) consumed by nextpnr.
// A multi-bit signal gets one indexed line per pin in declaration order, a
// single-bit signal one unindexed line. The free-form platform constraint
// blocks follow verbatim, separated by blank lines.
func BuildPCF(signals []hdl.SignalConstraint, platformConstraints []string) string {
	var pcf strings.Builder
	for _, signal := range signals {
		if len(signal.Pins) > 1 {
			for bit, pin := range signal.Pins {
				fmt.Fprintf(&pcf, "set_io %s[%d] %s\n", signal.Name, bit, pin)
			}
		} else {
			fmt.Fprintf(&pcf, "set_io %s %s\n", signal.Name, signal.Pins[0])
		}
	}
	if len(platformConstraints) > 0 {
		pcf.WriteString("\n" + strings.Join(platformConstraints, "\n\n"))
	}
	return pcf.String()
}

// BuildPrePack renders the pre-pack script that registers every constrained
// clock with nextpnr's timing engine, in the order the constraints were
// added. Periods are in nanoseconds, the timing API wants megahertz.
func BuildPrePack(namespace hdl.Namespace, clocks []ClockConstraint) string {
	var prePack strings.Builder
	for _, clock := range clocks {
		fmt.Fprintf(&prePack, "ctx.addClock(\"%s\", %s)\n",
			namespace.SignalName(clock.Signal), pythonFloat(1e3/clock.Period))
	}
	return prePack.String()
}

// pythonFloat formats a float the way python prints it. The pre-pack file is
// evaluated by nextpnr's python interpreter and keeping the exact rendering
// makes generated files reproducible across tool versions.
func pythonFloat(value float64) string {
	abs := math.Abs(value)
	if abs != 0 && (abs < 1e-4 || abs >= 1e16) {
		return strconv.FormatFloat(value, 'e', -1, 64)
	}
	s := strconv.FormatFloat(value, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
