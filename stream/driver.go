package stream

import (
	"strings"

	"github.com/projectdiscovery/gologger"

	"github.com/coregx/hyperpattern/engine"
)

// Driver repeatedly reads from every track's Source and feeds each
// line into an engine.Engine as it arrives, closing tracks as their
// sources are exhausted and draining the engine's remaining matching
// attempts once every track is done. Grounded on
// reading_scheduler.rs's ReadingScheduler.
type Driver struct {
	coordinator engine.Engine
	reader      *MultiReader
}

// NewDriver pairs coordinator with reader; reader must have the same
// number of tracks coordinator was constructed with.
func NewDriver(coordinator engine.Engine, reader *MultiReader) *Driver {
	return &Driver{coordinator: coordinator, reader: reader}
}

// Run drives every track to completion: polling each not-yet-closed
// track for a line, feeding it to the coordinator, and closing the
// track once its source reports no more data, until every track is
// closed — then drains any still-pending matching attempts.
func (d *Driver) Run() {
	n := d.reader.Size()
	done := make([]bool, n)

	for anyPending(done) {
		for i := 0; i < n; i++ {
			if done[i] {
				continue
			}
			available, availErr := d.reader.Available(i)
			if availErr != nil {
				done[i] = true
			} else if !available {
				// no data yet and not closed: nothing to feed this round
			} else {
				line, err := d.reader.ReadLine(i)
				if err != nil {
					done[i] = true
				} else {
					d.coordinator.Feed(strings.TrimRight(line, "\r\n"), i)
					available, availErr = d.reader.Available(i)
					done[i] = availErr != nil || !available
				}
			}
			if done[i] {
				gologger.Debug().Msgf("stream %d closed", i)
				d.coordinator.SetEOF(i)
			}
		}
	}

	d.coordinator.ConsumeRemaining()
}

func anyPending(done []bool) bool {
	for _, d := range done {
		if !d {
			return true
		}
	}
	return false
}
