package coupling

import (
	"fmt"
	"time"

	"github.com/notargets/gofvm/logging"
)

/*
	External application synchronization: a co-simulated code (system
	thermal-hydraulics, structure solver) negotiates the shared time step
	and the stop point with this side once per iteration. The smallest
	time step and the earliest stop win on both sides.
*/

// Syncer is one coupled external application.
type Syncer interface {
	// NegotiateDt proposes this side's time step and returns the agreed
	// shared step.
	NegotiateDt(proposed float64) (float64, error)
	// NegotiateStop proposes this side's last iteration number and
	// returns the agreed one.
	NegotiateStop(ntmax int) (int, error)
}

// ChannelSyncer couples two in-process solvers over a pair of channels;
// each side owns one direction. The Timeout guards against a stalled
// partner.
type ChannelSyncer struct {
	Name    string
	Send    chan<- float64
	Recv    <-chan float64
	Timeout time.Duration
}

func (cs *ChannelSyncer) NegotiateDt(proposed float64) (float64, error) {
	other, err := cs.roundTrip(proposed)
	if err != nil {
		return 0, err
	}
	agreed := proposed
	if other < agreed {
		agreed = other
	}
	logging.Sub("coupling").Debugf("%s: dt %g proposed, %g agreed", cs.Name, proposed, agreed)
	return agreed, nil
}

func (cs *ChannelSyncer) NegotiateStop(ntmax int) (int, error) {
	other, err := cs.roundTrip(float64(ntmax))
	if err != nil {
		return 0, err
	}
	if int(other) < ntmax {
		ntmax = int(other)
	}
	return ntmax, nil
}

func (cs *ChannelSyncer) roundTrip(v float64) (float64, error) {
	timeout := cs.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	select {
	case cs.Send <- v:
	case <-time.After(timeout):
		return 0, fmt.Errorf("coupling %s: partner not reading", cs.Name)
	}
	select {
	case other, ok := <-cs.Recv:
		if !ok {
			return 0, fmt.Errorf("coupling %s: partner closed", cs.Name)
		}
		return other, nil
	case <-time.After(timeout):
		return 0, fmt.Errorf("coupling %s: partner not writing", cs.Name)
	}
}
