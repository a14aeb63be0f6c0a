// Package frame provides animation-frame schedulers and viewports for the beam field.
//
// Loop drives frames from a ticker on a single goroutine and runs posted work, such as
// resize notifications, on that same goroutine. Manual advances only when told to and is
// used for offline rendering and tests.
package frame
