package radio

import (
	"fmt"
	"math"

	"gobot.io/x/gobot/drivers/gpio"
)

// SeekMode selects whether a seek wraps at the band limits.
type SeekMode int

//goland:noinspection GoUnnecessarilyExportedIdentifiers
const (
	// SeekWrap wraps around at the end of the band (default).
	SeekWrap SeekMode = iota
	// SeekNoWrap stops at the end of the band.
	SeekNoWrap
)

// SeekDirection selects the seek direction.
type SeekDirection int

//goland:noinspection GoUnnecessarilyExportedIdentifiers
const (
	// SeekDown seeks downwards in frequency (default).
	SeekDown SeekDirection = iota
	// SeekUp seeks upwards in frequency.
	SeekUp
)

// SeekSNRThreshold is the channel SNR required for a valid seek stop.
// When enabled, Stops ranges from 1 (minimum threshold, most stops) to
// 7 (maximum threshold, fewest stops).
type SeekSNRThreshold struct {
	Enabled bool
	Stops   uint8
}

// SeekImpulseThreshold is the allowed number of FM impulses for a
// valid seek stop. When enabled, Stops ranges from 1 (most stops) to
// 15 (fewest stops).
type SeekImpulseThreshold struct {
	Enabled bool
	Stops   uint8
}

// TuneChannel designates the channel a Tune operation should go to,
// either as a raw 10-bit channel index or as a frequency in MHz.
type TuneChannel struct {
	mhz   float64
	raw   uint16
	isRaw bool
}

// TuneChannelRaw designates a raw 10-bit channel index.
func TuneChannelRaw(raw uint16) TuneChannel {
	return TuneChannel{raw: raw, isRaw: true}
}

// TuneChannelMHz designates a frequency in MHz. It is converted into a
// raw channel index using the band and channel spacing configured at
// the time the tune operation starts.
func TuneChannelMHz(mhz float64) TuneChannel {
	return TuneChannel{mhz: mhz}
}

// The seek and tune operations share one protocol: set the enable bit
// and wait for the chip to raise the seek/tune complete flag, then
// clear the enable bit and wait for the flag to drop. The flag is
// level-triggered and stays up until the enable bit is cleared, so
// accepting (enable cleared, flag set) as instant completion would
// race with the flag still being asserted from a previous operation.
// The extra acknowledge phase removes that race.
type operationState int

const (
	stateIdle operationState = iota
	stateBusy
	stateWaitingForSTCToClear
)

// operation tracks one operation class (seek or tune). The success
// flag is latched at the moment the chip reports completion, the only
// instant at which the failure flags are meaningful.
type operation struct {
	state   operationState
	success bool
}

// Seek starts or continues a seek for the next valid channel.
//
// The call never blocks: it performs at most one bus round-trip and
// reports done=false while the operation is still in progress. Invoke
// it repeatedly, with a pause of some tens of milliseconds between
// calls, until done is reported. ErrSeekFailed together with done
// means the seek exhausted the band without finding a channel.
//
// A bus error leaves the operation state untouched, so the caller can
// resume polling once the bus is healthy again.
func (s *Si4703Driver) Seek(mode SeekMode, direction SeekDirection) (bool, error) {
	setStart := func(regs *[16]uint16) (int, error) {
		regs[REG_POWERCFG] = powerCfgForSeek(regs[REG_POWERCFG]|SEEK, mode, direction)
		return REG_POWERCFG, nil
	}
	return s.tuneSeek(&s.seekOp, REG_POWERCFG, SEEK, setStart)
}

// SeekWithSTCPin seeks like Seek, but uses the chip's GPIO2 interrupt
// output, wired to the given adaptor pin, to avoid needless bus
// traffic: while the operation is in flight the pin is sampled first,
// and as long as the interrupt has not fired the call returns
// immediately without touching the bus.
//
// Entering the operation reconfigures GPIO2 as interrupt output and
// enables seek/tune complete interrupts if they are not already set
// up, folded into the same register write where possible.
func (s *Si4703Driver) SeekWithSTCPin(mode SeekMode, direction SeekDirection, pin string) (bool, error) {
	if s.seekOp.state == stateBusy {
		fired, err := s.stcInterruptFired(pin)
		if err != nil {
			return false, err
		}
		if !fired {
			return false, nil
		}
	}
	setStart := func(regs *[16]uint16) (int, error) {
		regs[REG_POWERCFG] = powerCfgForSeek(regs[REG_POWERCFG]|SEEK, mode, direction)
		return routeSTCInterrupt(regs, REG_POWERCFG), nil
	}
	return s.tuneSeek(&s.seekOp, REG_POWERCFG, SEEK, setStart)
}

// Tune starts or continues tuning to the given channel.
//
// The polling protocol is the same as for Seek. An out-of-range raw
// index or an out-of-band frequency is rejected with ErrInvalidInput
// before the operation starts.
func (s *Si4703Driver) Tune(channel TuneChannel) (bool, error) {
	if channel.isRaw && channel.raw >= 1<<10 {
		return false, ErrInvalidInput
	}
	setStart := func(regs *[16]uint16) (int, error) {
		raw, err := rawTuneChannel(regs[REG_SYSCONFIG2], channel)
		if err != nil {
			return 0, err
		}
		regs[REG_CHANNEL] = TUNE | raw
		return REG_CHANNEL, nil
	}
	return s.tuneSeek(&s.tuneOp, REG_CHANNEL, TUNE, setStart)
}

// TuneWithSTCPin tunes like Tune, using the GPIO2 interrupt pin to
// skip bus reads while the operation is in flight, like SeekWithSTCPin.
func (s *Si4703Driver) TuneWithSTCPin(channel TuneChannel, pin string) (bool, error) {
	if channel.isRaw && channel.raw >= 1<<10 {
		return false, ErrInvalidInput
	}
	if s.tuneOp.state == stateBusy {
		fired, err := s.stcInterruptFired(pin)
		if err != nil {
			return false, err
		}
		if !fired {
			return false, nil
		}
	}
	setStart := func(regs *[16]uint16) (int, error) {
		raw, err := rawTuneChannel(regs[REG_SYSCONFIG2], channel)
		if err != nil {
			return 0, err
		}
		regs[REG_CHANNEL] = TUNE | raw
		return routeSTCInterrupt(regs, REG_CHANNEL), nil
	}
	return s.tuneSeek(&s.tuneOp, REG_CHANNEL, TUNE, setStart)
}

// ConfigureSeek sets the RSSI, SNR and FM impulse detection thresholds
// that decide which channels a seek stops at.
func (s *Si4703Driver) ConfigureSeek(rssiThreshold uint8, snr SeekSNRThreshold, impulse SeekImpulseThreshold) error {
	var snrMask, cntMask uint16
	if snr.Enabled {
		if snr.Stops == 0 || snr.Stops > 7 {
			return ErrInvalidInput
		}
		snrMask = uint16(snr.Stops) << 4
	}
	if impulse.Enabled {
		if impulse.Stops == 0 || impulse.Stops > 15 {
			return ErrInvalidInput
		}
		cntMask = uint16(impulse.Stops)
	}

	regs, err := s.readRegisters()
	if err != nil {
		return err
	}
	regs[REG_SYSCONFIG2] &= 0x00FF
	regs[REG_SYSCONFIG2] |= uint16(rssiThreshold) << 8
	regs[REG_SYSCONFIG3] &= 0xFF00
	regs[REG_SYSCONFIG3] |= snrMask | cntMask
	return s.writeRegisters(regs[:REG_SYSCONFIG3+1])
}

// tuneSeek advances the shared three-phase seek/tune protocol by one
// step, based on a single fresh read of the register image. setStart
// folds the operation parameters into the image on entry and reports
// the highest register it touched, which sizes the write burst.
func (s *Si4703Driver) tuneSeek(op *operation, register int, flag uint16, setStart func(regs *[16]uint16) (int, error)) (bool, error) {
	regs, err := s.readRegisters()
	if err != nil {
		return false, err
	}
	enabled := regs[register]&flag != 0
	stc := regs[REG_STATUSRSSI]&STC != 0
	failed := regs[REG_STATUSRSSI]&SF_BL != 0
	afcRailed := regs[REG_STATUSRSSI]&AFCRL != 0

	switch {
	case op.state == stateIdle && !enabled && !stc:
		last, err := setStart(&regs)
		if err != nil {
			return false, err
		}
		if err := s.writeRegisters(regs[:last+1]); err != nil {
			return false, err
		}
		op.state = stateBusy
		return false, nil

	case op.state == stateBusy && enabled && stc:
		regs[register] &^= flag
		if err := s.writeRegisters(regs[:register+1]); err != nil {
			return false, err
		}
		// The failure flags are only meaningful at the instant the
		// chip reports completion, so latch the outcome now.
		op.state = stateWaitingForSTCToClear
		op.success = !failed && !afcRailed
		return false, nil

	case op.state == stateWaitingForSTCToClear && !enabled && !stc:
		op.state = stateIdle
		if !op.success {
			return true, ErrSeekFailed
		}
		return true, nil
	}

	return false, nil
}

func powerCfgForSeek(powercfg uint16, mode SeekMode, direction SeekDirection) uint16 {
	if mode == SeekNoWrap {
		powercfg |= SKMODE
	} else {
		powercfg &^= SKMODE
	}
	if direction == SeekUp {
		powercfg |= SEEKUP
	} else {
		powercfg &^= SEEKUP
	}
	return powercfg
}

// routeSTCInterrupt configures GPIO2 as interrupt output and enables
// seek/tune complete interrupts. When the routing already matches, the
// write span stays at last; otherwise it extends to SYSCONFIG1 so the
// new routing goes out in the same burst as the enable bit.
func routeSTCInterrupt(regs *[16]uint16, last int) int {
	previous := regs[REG_SYSCONFIG1]
	regs[REG_SYSCONFIG1] &= 0xFFF3
	regs[REG_SYSCONFIG1] |= uint16(GPIO2STCRDSInterrupt) << 2
	regs[REG_SYSCONFIG1] |= STCIEN
	if regs[REG_SYSCONFIG1] != previous {
		return REG_SYSCONFIG1
	}
	return last
}

// stcInterruptFired samples the GPIO2 interrupt pin through the
// adaptor. The pin sits at logic high and drops low when the seek/tune
// complete interrupt fires.
func (s *Si4703Driver) stcInterruptFired(pin string) (bool, error) {
	dr, ok := s.i2cConnector.(gpio.DigitalReader)
	if !ok {
		return false, fmt.Errorf("i2c connector does not have a digital reader capability")
	}
	val, err := dr.DigitalRead(pin)
	if err != nil {
		return false, err
	}
	return val == low, nil
}

func rawTuneChannel(sysconfig2 uint16, channel TuneChannel) (uint16, error) {
	if channel.isRaw {
		if channel.raw >= 1<<10 {
			return 0, ErrInvalidInput
		}
		return channel.raw, nil
	}
	bandMin, bandMax := bandLimits(sysconfig2)
	if channel.mhz < bandMin || channel.mhz > bandMax {
		return 0, ErrInvalidInput
	}
	return uint16(math.Floor((channel.mhz - bandMin) / spacingMHz(sysconfig2))), nil
}

func bandLimits(sysconfig2 uint16) (min, max float64) {
	switch (sysconfig2 >> 6) & 0x3 {
	case 0:
		return 87.5, 108.0
	case 1:
		return 76.0, 108.0
	default:
		return 76.0, 90.0
	}
}

func spacingMHz(sysconfig2 uint16) float64 {
	switch (sysconfig2 >> 4) & 0x3 {
	case 0:
		return 0.2
	case 1:
		return 0.1
	default:
		return 0.05
	}
}
