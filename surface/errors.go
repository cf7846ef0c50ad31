package surface

import "errors"

// ErrNoActive is returned by consumers when the registry holds no surface.
// The message is surfaced verbatim to orchestrators, so it is part of the
// wire contract.
var ErrNoActive = errors.New("No active browser view is available.")
