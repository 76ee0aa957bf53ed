// Package rp provides the hardware abstraction layer for the RP2350 peripherals
// used by the capture pipeline.
//
// Peripherals are reached through small capability interfaces so the same
// driver code runs on the chip and against the models in package sim. The
// target implementations live in files built with the tinygo and rp2350 tags.
// All of them are low level and in general unsafe to use concurrently; the
// drivers packages serialize access.
package rp

// RP2350 datasheet
// https://datasheets.raspberrypi.com/rp2350/rp2350-datasheet.pdf
