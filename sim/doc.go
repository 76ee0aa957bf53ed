// Package sim models the hardware around the RP2350 closely enough to run the
// capture pipeline on a host: the MT9M001 sensor with its two-wire interface
// and pixel bus, the PIO state machine running the capture program, DMA
// channels, the APS6404L PSRAM behind the memory interface and the FM25L16B
// FRAM.
//
// Simulated time only advances while the firmware waits for hardware, i.e.
// when it polls a DMA channel or calls Delay on the Clock. This makes runs
// deterministic and independent of the host's speed.
package sim
