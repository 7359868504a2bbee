// Package motion turns a stream of accelerometer samples into discrete shake
// events.
//
// Detection is a single-state machine. A sample arriving within the debounce
// window of the last accepted sample is discarded. Otherwise the change in
// summed acceleration is scaled by elapsed time into a speed, and a shake is
// emitted when that speed is strictly greater than the threshold. The
// accepted sample always becomes the new reference, emitted or not.
//
// The initial reference is the sentinel sample (-1, -1, -1) at time -1, so
// the first sample is always accepted. With real epoch timestamps the elapsed
// time is so large that the first sample never produces a shake.
package motion
