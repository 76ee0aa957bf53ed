package mt9m001

const (
	RegChipVersion                   Reg = 0x00
	RegRowStart                      Reg = 0x01
	RegColumnStart                   Reg = 0x02
	RegRowSize                       Reg = 0x03
	RegColumnSize                    Reg = 0x04
	RegHorizontalBlanking            Reg = 0x05
	RegVerticalBlanking              Reg = 0x06
	RegOutputControl                 Reg = 0x07
	RegShutterWidth                  Reg = 0x09
	RegRestart                       Reg = 0x0b
	RegShutterDelay                  Reg = 0x0c
	RegReset                         Reg = 0x0d
	RegReadOptions1                  Reg = 0x1e
	RegReadOptions2                  Reg = 0x20
	RegEvenRowEvenColumnGain         Reg = 0x2b
	RegOddRowEvenColumnGain          Reg = 0x2c
	RegEvenRowOddColumnGain          Reg = 0x2d
	RegOddRowOddColumnGain           Reg = 0x2e
	RegGlobalGain                    Reg = 0x35
	RegCalThreshold                  Reg = 0x5f
	RegEvenRowEvenColumnAnalogOffset Reg = 0x60
	RegOddRowOddColumnAnalogOffset   Reg = 0x61
	RegCalCtrl                       Reg = 0x62
	RegEvenRowOddColumnAnalogOffset  Reg = 0x63
	RegOddRowEvenColumnAnalogOffset  Reg = 0x64
	RegChipEnable                    Reg = 0xf1
)

var catalog = map[Reg]register{
	RegChipVersion:                   {name: "ChipVersion", def: 0x8431, writable: 0x0000, fixed: 0x0000, min: 0, parity: parityAny, readOnly: true},
	RegRowStart:                      {name: "RowStart", def: 0x000c, writable: 0x07ff, fixed: 0x0000, min: 0, parity: parityAny, readOnly: false},
	RegColumnStart:                   {name: "ColumnStart", def: 0x0014, writable: 0x07ff, fixed: 0x0000, min: 0, parity: parityEven, readOnly: false},
	RegRowSize:                       {name: "RowSize", def: 0x03ff, writable: 0x07ff, fixed: 0x0000, min: 2, parity: parityAny, readOnly: false},
	RegColumnSize:                    {name: "ColumnSize", def: 0x04ff, writable: 0x07ff, fixed: 0x0000, min: 3, parity: parityOdd, readOnly: false},
	RegHorizontalBlanking:            {name: "HorizontalBlanking", def: 0x0009, writable: 0x07ff, fixed: 0x0000, min: 0, parity: parityAny, readOnly: false},
	RegVerticalBlanking:              {name: "VerticalBlanking", def: 0x0019, writable: 0x07ff, fixed: 0x0000, min: 0, parity: parityAny, readOnly: false},
	RegOutputControl:                 {name: "OutputControl", def: 0x0002, writable: 0x0043, fixed: 0x0000, min: 0, parity: parityAny, readOnly: false},
	RegShutterWidth:                  {name: "ShutterWidth", def: 0x0419, writable: 0x3fff, fixed: 0x0000, min: 0, parity: parityAny, readOnly: false},
	RegRestart:                       {name: "Restart", def: 0x0000, writable: 0x0001, fixed: 0x0000, min: 0, parity: parityAny, readOnly: false},
	RegShutterDelay:                  {name: "ShutterDelay", def: 0x0000, writable: 0x07ff, fixed: 0x0000, min: 0, parity: parityAny, readOnly: false},
	RegReset:                         {name: "Reset", def: 0x0000, writable: 0x0001, fixed: 0x0000, min: 0, parity: parityAny, readOnly: false},
	RegReadOptions1:                  {name: "ReadOptions1", def: 0x8000, writable: 0x0f3c, fixed: 0x8000, min: 0, parity: parityAny, readOnly: false},
	RegReadOptions2:                  {name: "ReadOptions2", def: 0x1104, writable: 0xc699, fixed: 0x1104, min: 0, parity: parityAny, readOnly: false},
	RegEvenRowEvenColumnGain:         {name: "EvenRowEvenColumnGain", def: 0x0008, writable: 0x007f, fixed: 0x0000, min: 0, parity: parityAny, readOnly: false},
	RegOddRowEvenColumnGain:          {name: "OddRowEvenColumnGain", def: 0x0008, writable: 0x007f, fixed: 0x0000, min: 0, parity: parityAny, readOnly: false},
	RegEvenRowOddColumnGain:          {name: "EvenRowOddColumnGain", def: 0x0008, writable: 0x007f, fixed: 0x0000, min: 0, parity: parityAny, readOnly: false},
	RegOddRowOddColumnGain:           {name: "OddRowOddColumnGain", def: 0x0008, writable: 0x007f, fixed: 0x0000, min: 0, parity: parityAny, readOnly: false},
	RegGlobalGain:                    {name: "GlobalGain", def: 0x0008, writable: 0x007f, fixed: 0x0000, min: 0, parity: parityAny, readOnly: false},
	RegCalThreshold:                  {name: "CalThreshold", def: 0x0904, writable: 0xffff, fixed: 0x0000, min: 0, parity: parityAny, readOnly: false},
	RegEvenRowEvenColumnAnalogOffset: {name: "EvenRowEvenColumnAnalogOffset", def: 0x0000, writable: 0x01ff, fixed: 0x0000, min: 0, parity: parityAny, readOnly: false},
	RegOddRowOddColumnAnalogOffset:   {name: "OddRowOddColumnAnalogOffset", def: 0x0000, writable: 0x01ff, fixed: 0x0000, min: 0, parity: parityAny, readOnly: false},
	RegCalCtrl:                       {name: "CalCtrl", def: 0x0498, writable: 0x9807, fixed: 0x0498, min: 0, parity: parityAny, readOnly: false},
	RegEvenRowOddColumnAnalogOffset:  {name: "EvenRowOddColumnAnalogOffset", def: 0x0000, writable: 0x01ff, fixed: 0x0000, min: 0, parity: parityAny, readOnly: false},
	RegOddRowEvenColumnAnalogOffset:  {name: "OddRowEvenColumnAnalogOffset", def: 0x0000, writable: 0x01ff, fixed: 0x0000, min: 0, parity: parityAny, readOnly: false},
	RegChipEnable:                    {name: "ChipEnable", def: 0x0001, writable: 0x0003, fixed: 0x0000, min: 0, parity: parityAny, readOnly: false},
}

type OutputControl uint16

const OutputControlDefault OutputControl = 0x0002

func (v OutputControl) SynchronizeChanges() bool                   { return v&(1<<0) != 0 }
func (v OutputControl) SetSynchronizeChanges(b bool) OutputControl { return setBit(v, 0, b) }

func (v OutputControl) ChipEnable() bool                   { return v&(1<<1) != 0 }
func (v OutputControl) SetChipEnable(b bool) OutputControl { return setBit(v, 1, b) }

func (v OutputControl) UseTestData() bool                   { return v&(1<<6) != 0 }
func (v OutputControl) SetUseTestData(b bool) OutputControl { return setBit(v, 6, b) }

type ReadOptions1 uint16

const ReadOptions1Default ReadOptions1 = 0x8000

func (v ReadOptions1) ColumnSkip4() bool                  { return v&(1<<2) != 0 }
func (v ReadOptions1) SetColumnSkip4(b bool) ReadOptions1 { return setBit(v, 2, b) }

func (v ReadOptions1) RowSkip4() bool                  { return v&(1<<3) != 0 }
func (v ReadOptions1) SetRowSkip4(b bool) ReadOptions1 { return setBit(v, 3, b) }

func (v ReadOptions1) ColumnSkip8() bool                  { return v&(1<<4) != 0 }
func (v ReadOptions1) SetColumnSkip8(b bool) ReadOptions1 { return setBit(v, 4, b) }

func (v ReadOptions1) RowSkip8() bool                  { return v&(1<<5) != 0 }
func (v ReadOptions1) SetRowSkip8(b bool) ReadOptions1 { return setBit(v, 5, b) }

func (v ReadOptions1) SnapshotMode() bool                  { return v&(1<<8) != 0 }
func (v ReadOptions1) SetSnapshotMode(b bool) ReadOptions1 { return setBit(v, 8, b) }

func (v ReadOptions1) StrobeEnable() bool                  { return v&(1<<9) != 0 }
func (v ReadOptions1) SetStrobeEnable(b bool) ReadOptions1 { return setBit(v, 9, b) }

func (v ReadOptions1) StrobeWidth() bool                  { return v&(1<<10) != 0 }
func (v ReadOptions1) SetStrobeWidth(b bool) ReadOptions1 { return setBit(v, 10, b) }

func (v ReadOptions1) StrobeOverride() bool                  { return v&(1<<11) != 0 }
func (v ReadOptions1) SetStrobeOverride(b bool) ReadOptions1 { return setBit(v, 11, b) }

type CalCtrl uint16

const CalCtrlDefault CalCtrl = 0x0498

func (v CalCtrl) ManualBlackLevelOverride() bool             { return v&(1<<0) != 0 }
func (v CalCtrl) SetManualBlackLevelOverride(b bool) CalCtrl { return setBit(v, 0, b) }

type ChipEnable uint16

const ChipEnableDefault ChipEnable = 0x0001

func (v ChipEnable) ChipEnable() bool                { return v&(1<<0) != 0 }
func (v ChipEnable) SetChipEnable(b bool) ChipEnable { return setBit(v, 0, b) }

func (v ChipEnable) SynchronizeChanges() bool                { return v&(1<<1) != 0 }
func (v ChipEnable) SetSynchronizeChanges(b bool) ChipEnable { return setBit(v, 1, b) }

func (d *Device) ChipVersion() (uint16, error) { return d.Get(RegChipVersion) }

func (d *Device) RowStart() (uint16, error) { return d.Get(RegRowStart) }

func (d *Device) SetRowStart(v uint16) error { return d.Set(RegRowStart, v) }

func (d *Device) ColumnStart() (uint16, error) { return d.Get(RegColumnStart) }

func (d *Device) SetColumnStart(v uint16) error { return d.Set(RegColumnStart, v) }

func (d *Device) RowSize() (uint16, error) { return d.Get(RegRowSize) }

func (d *Device) SetRowSize(v uint16) error { return d.Set(RegRowSize, v) }

func (d *Device) ColumnSize() (uint16, error) { return d.Get(RegColumnSize) }

func (d *Device) SetColumnSize(v uint16) error { return d.Set(RegColumnSize, v) }

func (d *Device) HorizontalBlanking() (uint16, error) { return d.Get(RegHorizontalBlanking) }

func (d *Device) SetHorizontalBlanking(v uint16) error { return d.Set(RegHorizontalBlanking, v) }

func (d *Device) VerticalBlanking() (uint16, error) { return d.Get(RegVerticalBlanking) }

func (d *Device) SetVerticalBlanking(v uint16) error { return d.Set(RegVerticalBlanking, v) }

func (d *Device) OutputControl() (OutputControl, error) {
	v, err := d.Get(RegOutputControl)
	return OutputControl(v), err
}

func (d *Device) SetOutputControl(v OutputControl) error { return d.Set(RegOutputControl, uint16(v)) }

func (d *Device) ShutterWidth() (uint16, error) { return d.Get(RegShutterWidth) }

func (d *Device) SetShutterWidth(v uint16) error { return d.Set(RegShutterWidth, v) }

func (d *Device) Restart() (uint16, error) { return d.Get(RegRestart) }

func (d *Device) SetRestart(v uint16) error { return d.Set(RegRestart, v) }

func (d *Device) ShutterDelay() (uint16, error) { return d.Get(RegShutterDelay) }

func (d *Device) SetShutterDelay(v uint16) error { return d.Set(RegShutterDelay, v) }

func (d *Device) Reset() (uint16, error) { return d.Get(RegReset) }

func (d *Device) SetReset(v uint16) error { return d.Set(RegReset, v) }

func (d *Device) ReadOptions1() (ReadOptions1, error) {
	v, err := d.Get(RegReadOptions1)
	return ReadOptions1(v), err
}

func (d *Device) SetReadOptions1(v ReadOptions1) error { return d.Set(RegReadOptions1, uint16(v)) }

func (d *Device) ReadOptions2() (uint16, error) { return d.Get(RegReadOptions2) }

func (d *Device) SetReadOptions2(v uint16) error { return d.Set(RegReadOptions2, v) }

func (d *Device) EvenRowEvenColumnGain() (uint16, error) { return d.Get(RegEvenRowEvenColumnGain) }

func (d *Device) SetEvenRowEvenColumnGain(v uint16) error { return d.Set(RegEvenRowEvenColumnGain, v) }

func (d *Device) OddRowEvenColumnGain() (uint16, error) { return d.Get(RegOddRowEvenColumnGain) }

func (d *Device) SetOddRowEvenColumnGain(v uint16) error { return d.Set(RegOddRowEvenColumnGain, v) }

func (d *Device) EvenRowOddColumnGain() (uint16, error) { return d.Get(RegEvenRowOddColumnGain) }

func (d *Device) SetEvenRowOddColumnGain(v uint16) error { return d.Set(RegEvenRowOddColumnGain, v) }

func (d *Device) OddRowOddColumnGain() (uint16, error) { return d.Get(RegOddRowOddColumnGain) }

func (d *Device) SetOddRowOddColumnGain(v uint16) error { return d.Set(RegOddRowOddColumnGain, v) }

func (d *Device) GlobalGain() (uint16, error) { return d.Get(RegGlobalGain) }

func (d *Device) SetGlobalGain(v uint16) error { return d.Set(RegGlobalGain, v) }

func (d *Device) CalThreshold() (uint16, error) { return d.Get(RegCalThreshold) }

func (d *Device) SetCalThreshold(v uint16) error { return d.Set(RegCalThreshold, v) }

func (d *Device) EvenRowEvenColumnAnalogOffset() (uint16, error) {
	return d.Get(RegEvenRowEvenColumnAnalogOffset)
}

func (d *Device) SetEvenRowEvenColumnAnalogOffset(v uint16) error {
	return d.Set(RegEvenRowEvenColumnAnalogOffset, v)
}

func (d *Device) OddRowOddColumnAnalogOffset() (uint16, error) {
	return d.Get(RegOddRowOddColumnAnalogOffset)
}

func (d *Device) SetOddRowOddColumnAnalogOffset(v uint16) error {
	return d.Set(RegOddRowOddColumnAnalogOffset, v)
}

func (d *Device) CalCtrl() (CalCtrl, error) {
	v, err := d.Get(RegCalCtrl)
	return CalCtrl(v), err
}

func (d *Device) SetCalCtrl(v CalCtrl) error { return d.Set(RegCalCtrl, uint16(v)) }

func (d *Device) EvenRowOddColumnAnalogOffset() (uint16, error) {
	return d.Get(RegEvenRowOddColumnAnalogOffset)
}

func (d *Device) SetEvenRowOddColumnAnalogOffset(v uint16) error {
	return d.Set(RegEvenRowOddColumnAnalogOffset, v)
}

func (d *Device) OddRowEvenColumnAnalogOffset() (uint16, error) {
	return d.Get(RegOddRowEvenColumnAnalogOffset)
}

func (d *Device) SetOddRowEvenColumnAnalogOffset(v uint16) error {
	return d.Set(RegOddRowEvenColumnAnalogOffset, v)
}

func (d *Device) ChipEnable() (ChipEnable, error) {
	v, err := d.Get(RegChipEnable)
	return ChipEnable(v), err
}

func (d *Device) SetChipEnable(v ChipEnable) error { return d.Set(RegChipEnable, uint16(v)) }
