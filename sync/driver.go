// Package sync implements the sync driver (C8): the batch-pull loop that
// feeds blocks to the UTXO tracker, its adaptive batching and checkpoint
// fork recovery, and the polling mode entered once the tip is reached.
package sync

import (
	"context"
	"sort"
	stdsync "sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"coinwallet/noderpc"
	"coinwallet/types"
	"coinwallet/utxo"
	"coinwallet/walleterr"
)

const (
	// BlocksPerBatch is the default batch size requested per iteration.
	BlocksPerBatch = 20
	// MinBlockCount is the floor adaptive batching will not halve below.
	MinBlockCount = 5
	// RetryDelay is how long the driver waits between empty-batch retries.
	RetryDelay = 2 * time.Second
	// MaxEmptyRetries bounds how many consecutive empty, non-synced
	// batches are tolerated before surfacing an error.
	MaxEmptyRetries = 3
	// DefaultPollInterval is how often the driver polls /info once caught up.
	DefaultPollInterval = 5 * time.Second
	// maxRecordedErrors bounds the sync-error list kept for inspection.
	maxRecordedErrors = 20
	// maxCheckpointsSent is the most checkpoints offered per request (§6.2).
	maxCheckpointsSent = 50
)

// ConnectionStatusFunc is fired on every connected/disconnected edge.
type ConnectionStatusFunc func(connected bool, latency time.Duration)

// State is the externally queryable snapshot of sync progress.
type State struct {
	CurrentHeight uint64
	NetworkHeight uint64
	Idle          bool
	Connected     bool
	LastLatency   time.Duration
	Errors        []error
}

// Driver runs the batch/poll sync loop against a Transport, feeding
// decoded blocks into a Tracker. Per §5 it is a single logical actor:
// callers must not invoke PerformSync concurrently with itself.
type Driver struct {
	transport noderpc.Transport
	tracker   *utxo.Tracker
	log       *zap.Logger

	pollInterval time.Duration
	now          func() time.Time

	onConnectionStatusChange ConnectionStatusFunc

	stop atomic.Bool

	mu            stdsync.Mutex
	batchSize     uint64
	emptyRetries  int
	lastConnected bool
	everConnected bool
	state         State
}

// New builds a driver against transport/tracker with default timing
// parameters. pollInterval of 0 uses DefaultPollInterval.
func New(transport noderpc.Transport, tracker *utxo.Tracker, pollInterval time.Duration, onConnectionStatusChange ConnectionStatusFunc, log *zap.Logger) *Driver {
	if pollInterval <= 0 {
		pollInterval = DefaultPollInterval
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Driver{
		transport:                transport,
		tracker:                  tracker,
		log:                      log,
		pollInterval:             pollInterval,
		now:                      time.Now,
		onConnectionStatusChange: onConnectionStatusChange,
		batchSize:                BlocksPerBatch,
	}
}

// Stop sets the cooperative stop flag. It is edge-monotonic: once set, a
// driver never clears it (§5); build a new Driver to sync again.
func (d *Driver) Stop() {
	d.stop.Store(true)
}

func (d *Driver) stopped() bool {
	return d.stop.Load()
}

// GetSyncState returns a snapshot of the driver's progress.
func (d *Driver) GetSyncState() State {
	d.mu.Lock()
	defer d.mu.Unlock()
	s := d.state
	s.CurrentHeight = d.tracker.CurrentHeight()
	s.Errors = append([]error(nil), d.state.Errors...)
	return s
}

func (d *Driver) recordError(err error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.state.Errors = append(d.state.Errors, err)
	if len(d.state.Errors) > maxRecordedErrors {
		d.state.Errors = d.state.Errors[len(d.state.Errors)-maxRecordedErrors:]
	}
	if d.batchSize > MinBlockCount {
		d.batchSize /= 2
		if d.batchSize < MinBlockCount {
			d.batchSize = MinBlockCount
		}
	}
}

func (d *Driver) updateConnectionStatus(connected bool, latency time.Duration) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.state.LastLatency = latency
	if !d.everConnected || connected != d.lastConnected {
		d.everConnected = true
		d.lastConnected = connected
		d.state.Connected = connected
		if d.onConnectionStatusChange != nil {
			d.onConnectionStatusChange(connected, latency)
		}
	}
}

// PerformSync runs the batch-pull loop (§4.8) until the tracker catches
// up with the network tip, then falls through into polling mode
// (pollLoop) until Stop is called or ctx is cancelled. Transport errors
// do not cause PerformSync to return an error: they are recorded on the
// sync state for the caller to observe via GetSyncState, per §7's
// propagation policy. Only an explicit Stop (or context cancellation)
// ends the call with a non-nil error.
func (d *Driver) PerformSync(ctx context.Context) error {
	for {
		if d.stopped() {
			return walleterr.New(walleterr.Stopped, "sync stopped")
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		done, err := d.batchIteration(ctx)
		if err != nil {
			d.recordError(err)
			return nil
		}
		if done {
			d.mu.Lock()
			d.state.Idle = true
			d.mu.Unlock()
			return d.pollLoop(ctx)
		}
	}
}

// newestCheckpoints trims cps to the newest maxCheckpointsSent entries.
func newestCheckpoints(cps []types.Checkpoint) []types.Checkpoint {
	sort.Slice(cps, func(i, j int) bool { return cps[i].Height > cps[j].Height })
	if len(cps) > maxCheckpointsSent {
		cps = cps[:maxCheckpointsSent]
	}
	return cps
}
