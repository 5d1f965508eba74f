package scheduler

import "time"

// Engine limits. The generator's constraint checks and the validator's
// error thresholds share these constants so the two never disagree about
// what counts as a violation.
const (
	// MaxConsecutiveShows is the ceiling on a performer's consecutive-show
	// run. A run counts appearances whose shows are at most
	// maxConsecutiveGap apart; the generator rejects any assignment that
	// would push a run past this value and the validator reports runs that
	// reach it as critical.
	MaxConsecutiveShows = 6

	// ConsecutiveWarning is the run length at which the validator starts
	// warning about fatigue, below the hard ceiling.
	ConsecutiveWarning = 4

	// MaxShowsPerWeek caps the number of distinct shows a performer can be
	// booked into during one schedule week.
	MaxShowsPerWeek = 6

	// MaxGenerationAttempts bounds the randomized retry loop. Each attempt
	// is a full shuffle-and-fill pass; if every attempt fails the engine
	// falls back to the best-effort partial pass.
	MaxGenerationAttempts = 50

	// RedLimitSingleShowDay and RedLimitDoubleShowDay cap how many OFF
	// performers can be granted an uninterruptible RED day on a given date.
	RedLimitSingleShowDay = 3
	RedLimitDoubleShowDay = 1
)

// maxConsecutiveGap is the largest date+time distance between two
// appearances that still counts as consecutive.
const maxConsecutiveGap = 48 * time.Hour
