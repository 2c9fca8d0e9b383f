package cboe

import "errors"

var (
	ErrNotFound    = errors.New("no delayed quotes for this ticker")
	ErrRateLimited = errors.New("rate limited by quote CDN")
	ErrNoSnapshot  = errors.New("no cached snapshot for this ticker")
)
