package sync

import "coinwallet/walleterr"

// errNoProgress is recorded when empty, non-synced batches exhaust
// MaxEmptyRetries (§4.8 step 4).
var errNoProgress = walleterr.New(walleterr.Transport, "no progress after max empty retries")
