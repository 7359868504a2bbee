package counter

// Preference keys. The names match the original preference file so an
// exported store can be imported unchanged.
const (
	KeyCounter  = "cntrVal"
	KeyPressLog = "cntrValLabel"
	KeyShakeLog = "cntrShake"
)
