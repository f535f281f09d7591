package utils

import (
	"fmt"
	"io"
	"strings"

	"elevsim/src/sim"
)

// PrintStatus writes a one line summary of the snapshot, overwriting the
// current terminal line.
func PrintStatus(w io.Writer, snap sim.Snapshot) {
	var b strings.Builder
	for _, e := range snap.Elevators {
		fmt.Fprintf(&b, "E%d:L%d %s/%s(%d) ", e.ID, e.Floor+1, e.State, e.Direction, len(e.Onboard))
	}
	fmt.Fprintf(w, "\r%s | %sin transit: %d | arrived: %d | mean: %.1fs   ",
		snap.Time.Format("15:04:05"), b.String(),
		snap.Stats.InTransit, snap.Stats.Arrived, snap.Stats.MeanTravelTime)
}

// PrintBuilding renders every floor from the top down, one line each.
func PrintBuilding(w io.Writer, snap sim.Snapshot) {
	for i := len(snap.Floors) - 1; i >= 0; i-- {
		f := snap.Floors[i]
		up, down := " ", " "
		if f.CallUp {
			up = "^"
		}
		if f.CallDown {
			down = "v"
		}
		fmt.Fprintf(w, "L%-2d %s%s %s waiting: %s\n", f.Index+1, up, down, f.SlotsString(), f.WaitingString())
	}
	for _, e := range snap.Elevators {
		fmt.Fprintln(w, e)
	}
}
