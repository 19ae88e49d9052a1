package pkg

// enum of planning environment. the set is closed: every pose
// representation the cost model understands is listed here.
type EnvironmentType uint8

const (
	ENV_XY      EnvironmentType = iota // planar position only
	ENV_XYTHETA                        // planar position + orientation
	ENV_SHERPA                         // planar position + orientation + footprint class
)

func (e EnvironmentType) String() string {
	switch e {
	case ENV_XY:
		return "xy"
	case ENV_XYTHETA:
		return "xytheta"
	case ENV_SHERPA:
		return "sherpa"
	}
	return "unknown"
}

// EnvironmentTypeFromString. parse env type from config file value.
func EnvironmentTypeFromString(s string) (EnvironmentType, bool) {
	switch s {
	case "xy":
		return ENV_XY, true
	case "xytheta":
		return ENV_XYTHETA, true
	case "sherpa":
		return ENV_SHERPA, true
	}
	return ENV_XY, false
}

const (
	// driveability of a traversability class is in [0,1].
	// 0 = impassable, 1 = traversable at full speed.
	MIN_DRIVEABILITY = 0.0
	MAX_DRIVEABILITY = 1.0

	// default footprint adaptation parameters (sherpa-like systems).
	// time to move the footprint from min to max class, in seconds.
	DEFAULT_TIME_TO_ADAPT_FOOTPRINT = 40.0
	DEFAULT_ADAPT_FOOTPRINT_PENALTY = 20.0
	DEFAULT_NUM_FOOTPRINT_CLASSES   = 10
	DEFAULT_FORWARD_SPEED_METER_SEC = 0.5
)

const (
	DEBUG = false
)
