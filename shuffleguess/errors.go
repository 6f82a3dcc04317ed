package shuffleguess

import "errors"

// ErrEpisodeOver is returned by Step once an episode has reached its
// configured card count.
var ErrEpisodeOver = errors.New("shuffleguess: episode already over")
