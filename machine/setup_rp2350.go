//go:build tinygo && rp2350

package machine

import (
	"device/rp"
	mcu "machine"
	"runtime/volatile"

	rppio "github.com/tinygo-org/pio/rp2-pio"

	"github.com/monocap/monocap/drivers/camera"
	"github.com/monocap/monocap/drivers/fram"
	"github.com/monocap/monocap/drivers/imagefs"
	"github.com/monocap/monocap/drivers/mt9m001"
	"github.com/monocap/monocap/drivers/psram"
	"github.com/monocap/monocap/drivers/status"
	"github.com/monocap/monocap/firmware"
	rphal "github.com/monocap/monocap/rp"
	"github.com/monocap/monocap/rp/dma"
	"github.com/monocap/monocap/rp/pio"
	"github.com/monocap/monocap/rp/qmi"
)

// IO_BANK0 function selects: GPOUT0 on GPIO21, XIP_CS1 on GPIO0.
const (
	funcselGPOUT  = 9
	funcselXIPCS1 = 9
	funcselMsk    = rp.IO_BANK0_GPIO0_CTRL_FUNCSEL_Msk >> rp.IO_BANK0_GPIO0_CTRL_FUNCSEL_Pos
	funcselPos    = rp.IO_BANK0_GPIO0_CTRL_FUNCSEL_Pos
)

// clockOutput drives the sensor clock from clk_sys through GPOUT0.
type clockOutput struct {
	ctrl *volatile.Register32
}

func newClockOutput(pin mcu.Pin, freq uint32) clockOutput {
	pin.Configure(mcu.PinConfig{Mode: mcu.PinOutput})
	rp.IO_BANK0.GPIO21_CTRL.ReplaceBits(funcselGPOUT, funcselMsk, funcselPos)

	// 16.16 fixed point divider
	div := uint32(uint64(Sysclk) << 16 / uint64(freq))
	rp.CLOCKS.CLK_GPOUT0_DIV.Set(div)
	rp.CLOCKS.CLK_GPOUT0_CTRL.ReplaceBits(rp.CLOCKS_CLK_GPOUT0_CTRL_AUXSRC_CLK_SYS,
		rp.CLOCKS_CLK_GPOUT0_CTRL_AUXSRC_Msk>>rp.CLOCKS_CLK_GPOUT0_CTRL_AUXSRC_Pos,
		rp.CLOCKS_CLK_GPOUT0_CTRL_AUXSRC_Pos)
	return clockOutput{ctrl: &rp.CLOCKS.CLK_GPOUT0_CTRL}
}

func (c clockOutput) Enable()  { c.ctrl.SetBits(rp.CLOCKS_CLK_GPOUT0_CTRL_ENABLE) }
func (c clockOutput) Disable() { c.ctrl.ClearBits(rp.CLOCKS_CLK_GPOUT0_CTRL_ENABLE) }

func output(pin mcu.Pin, high bool) mcu.Pin {
	pin.Configure(mcu.PinConfig{Mode: mcu.PinOutput})
	pin.Set(high)
	return pin
}

// LED returns the status LED, usable before Setup.
func LED() *status.LED {
	return status.New(output(PinLED, false), rphal.Spin)
}

// Setup configures the peripherals and returns the board as the firmware
// sees it. The sensor is left in standby with its clock stopped. Failures are
// reported as faults of the stage that needs the failing peripheral.
func Setup(led *status.LED) (*firmware.Hardware, error) {
	mcu.Pin(PinPSRAMCS).Configure(mcu.PinConfig{Mode: mcu.PinOutput})
	rp.IO_BANK0.GPIO0_CTRL.ReplaceBits(funcselXIPCS1, funcselMsk, funcselPos)

	err := mcu.I2C1.Configure(mcu.I2CConfig{
		Frequency: I2CFrequency,
		SDA:       PinSDA,
		SCL:       PinSCL,
	})
	if err != nil {
		return nil, &firmware.Fault{Code: status.UnknownSensor, Err: err}
	}
	clock := newClockOutput(PinClockOut, SensorFrequency)
	clock.Disable()
	sensor := camera.New(mt9m001.New(mcu.I2C1), camera.Pins{
		Clock:   clock,
		Standby: output(PinStandby, true),
		Trigger: output(PinTrigger, false),
	}, rphal.Spin, Camera())

	sm, err := pio.Claim(rppio.PIO0)
	if err != nil {
		return nil, &firmware.Fault{Code: status.Capture, Err: err}
	}
	rx, dreq := sm.RxFIFO(), sm.DREQ()
	stream := dma.NewStream(dma.NewHardware(0, rx, dreq))

	err = mcu.SPI0.Configure(mcu.SPIConfig{
		Frequency: FRAMFrequency,
		SCK:       PinFRAMSCK,
		SDO:       PinFRAMSDO,
		SDI:       PinFRAMSDI,
		Mode:      0,
	})
	if err != nil {
		return nil, &firmware.Fault{Code: status.Counter, Err: err}
	}
	counter := firmware.NewCounter(fram.New(mcu.SPI0, output(PinFRAMCS, true)))

	card, err := imagefs.NewCard(mcu.SPI1, PinSDSCK, PinSDSDO, PinSDSDI, PinSDCS, SDFrequency)
	if err != nil {
		return nil, &firmware.Fault{Code: status.ImageWrite, Err: err}
	}

	return &firmware.Hardware{
		QMI:    qmi.Bus,
		Sysclk: Sysclk,
		Delay:  rphal.Spin,
		Map: func() (*psram.Device, error) {
			return psram.Map(), nil
		},
		Sensor:  sensor,
		Strobe:  PinStrobe,
		SM:      sm,
		Stream:  stream,
		Counter: counter,
		Images:  card,
		LED:     led,
	}, nil
}
