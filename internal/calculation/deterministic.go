package calculation

import "time"

// nowFunc stamps Projection.GeneratedAt.
var nowFunc = time.Now

// SetNowFunc replaces the clock used for projection timestamps. Tests only.
func SetNowFunc(f func() time.Time) { nowFunc = f }

// seedFunc supplies the seed when neither the scenario nor WithSeed sets one.
var seedFunc = func() int64 { return time.Now().UnixNano() }

// SetSeedFunc replaces the fallback seed source. Tests only.
func SetSeedFunc(f func() int64) { seedFunc = f }
