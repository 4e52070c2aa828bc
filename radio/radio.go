// Package radio implements the driver for the Silicon Labs Si4702 and
// Si4703 FM tuners, as found on the popular breakout boards from
// Sparkfun and others.
//
// The main implementation is under the Si4703Driver and it requires
// some additional configuration via the Config structure. The Si4702
// variant is identical except that it lacks the RDS decoder; use
// NewSi4702Driver for it and the RDS operations will be rejected.
//
// The chip exposes no command interface, only a flat image of sixteen
// 16-bit registers transferred in bulk. A bus read always starts at the
// status register and wraps around, a bus write always starts at the
// power configuration register, so every operation here is a
// read-modify-write of the register image.
//
// To read about the specifications of the tuner, read the following documents:
// https://www.silabs.com/documents/public/data-sheets/Si4702-03-C19.pdf
// https://www.silabs.com/documents/public/application-notes/AN230.pdf
package radio

import (
	"errors"
	"fmt"
	"time"

	"github.com/hashicorp/go-multierror"
	"gobot.io/x/gobot"
	"gobot.io/x/gobot/drivers/gpio"
	"gobot.io/x/gobot/drivers/i2c"
)

const (
	low  = 0x0
	high = 0x1
)

// Errors the driver reports besides plain bus failures.
var (
	// ErrInvalidInput is returned when a caller-supplied parameter is
	// outside its valid domain. No bus write has happened when it is
	// returned, so the call can simply be repeated with a corrected
	// value.
	ErrInvalidInput = errors.New("invalid input data")

	// ErrSeekFailed is returned at the end of a seek or tune operation
	// when the chip reached the band limit or landed on an invalid
	// channel. It is an expected outcome, not a defect.
	ErrSeekFailed = errors.New("seek failed: band limit reached or channel invalid")

	// ErrNoRDS is returned for RDS operations on the Si4702, which has
	// no RDS decoder.
	ErrNoRDS = errors.New("device has no RDS support")
)

// DeEmphasis selects the FM de-emphasis time constant.
type DeEmphasis int

//goland:noinspection GoUnnecessarilyExportedIdentifiers
const (
	// DeEmphasis75us is used in the USA (default).
	DeEmphasis75us DeEmphasis = iota
	// DeEmphasis50us is used in Europe, Australia and Japan.
	DeEmphasis50us
)

// Band selects the frequency range the tuner operates in.
type Band int

//goland:noinspection GoUnnecessarilyExportedIdentifiers
const (
	// Band875_108MHz covers 87.5-108 MHz (USA, Europe) (default).
	Band875_108MHz Band = iota
	// Band76_108MHz covers 76-108 MHz (Japan wide band).
	Band76_108MHz
	// Band76_90MHz covers 76-90 MHz (Japan).
	Band76_90MHz
)

// ChannelSpacing selects the frequency step between channels.
type ChannelSpacing int

//goland:noinspection GoUnnecessarilyExportedIdentifiers
const (
	// Spacing200kHz is used in the USA and Australia (default).
	Spacing200kHz ChannelSpacing = iota
	// Spacing100kHz is used in Europe and Japan.
	Spacing100kHz
	// Spacing50kHz is the finest spacing the chip supports.
	Spacing50kHz
)

// OutputMode selects stereo or forced mono audio output.
type OutputMode int

//goland:noinspection GoUnnecessarilyExportedIdentifiers
const (
	// OutputStereo is the default.
	OutputStereo OutputMode = iota
	// OutputMono forces mono output.
	OutputMono
)

// StereoToMonoBlendLevel adjusts the RSSI range over which the chip
// blends from stereo to mono. The constant values are the hardware
// field codes.
type StereoToMonoBlendLevel int

//goland:noinspection GoUnnecessarilyExportedIdentifiers
const (
	// Blend31_49dBuV is the default range.
	Blend31_49dBuV StereoToMonoBlendLevel = iota
	// Blend37_55dBuV raises the range by 6 dB.
	Blend37_55dBuV
	// Blend19_37dBuV lowers the range by 12 dB.
	Blend19_37dBuV
	// Blend25_43dBuV lowers the range by 6 dB.
	Blend25_43dBuV
)

// GPIO1Config selects the function of the GPIO1 pin.
type GPIO1Config int

//goland:noinspection GoUnnecessarilyExportedIdentifiers
const (
	// GPIO1HighImpedance leaves the pin floating (default).
	GPIO1HighImpedance GPIO1Config = iota
	_
	// GPIO1Low drives the pin low.
	GPIO1Low
	// GPIO1High drives the pin high.
	GPIO1High
)

// GPIO2Config selects the function of the GPIO2 pin.
type GPIO2Config int

//goland:noinspection GoUnnecessarilyExportedIdentifiers
const (
	// GPIO2HighImpedance leaves the pin floating (default).
	GPIO2HighImpedance GPIO2Config = iota
	// GPIO2STCRDSInterrupt routes the seek/tune complete and RDS
	// interrupts to the pin. The pin sits at logic high and drops low
	// when an interrupt fires.
	GPIO2STCRDSInterrupt
	// GPIO2Low drives the pin low.
	GPIO2Low
	// GPIO2High drives the pin high.
	GPIO2High
)

// GPIO3Config selects the function of the GPIO3 pin.
type GPIO3Config int

//goland:noinspection GoUnnecessarilyExportedIdentifiers
const (
	// GPIO3HighImpedance leaves the pin floating (default).
	GPIO3HighImpedance GPIO3Config = iota
	// GPIO3MonoStereoIndicator drives the pin low for mono and high
	// for stereo reception.
	GPIO3MonoStereoIndicator
	// GPIO3Low drives the pin low.
	GPIO3Low
	// GPIO3High drives the pin high.
	GPIO3High
)

// SoftmuteRate selects the softmute attack/recover rate.
type SoftmuteRate int

//goland:noinspection GoUnnecessarilyExportedIdentifiers
const (
	// SoftmuteFastest is the default.
	SoftmuteFastest SoftmuteRate = iota
	SoftmuteFast
	SoftmuteSlow
	SoftmuteSlowest
)

// SoftmuteAttenuation selects the softmute attenuation depth.
type SoftmuteAttenuation int

//goland:noinspection GoUnnecessarilyExportedIdentifiers
const (
	// Softmute16dB is the default.
	Softmute16dB SoftmuteAttenuation = iota
	Softmute14dB
	Softmute12dB
	Softmute10dB
)

// Volume is a step on the 31-step dBFS output volume scale. The steps
// from VolumeMinus58dBFS through VolumeMinus30dBFS belong to the
// extended volume range and make the driver additionally set the
// VOLEXT bit.
type Volume int

//goland:noinspection GoUnnecessarilyExportedIdentifiers
const (
	// VolumeMute silences the output (default).
	VolumeMute Volume = iota
	VolumeMinus58dBFS
	VolumeMinus56dBFS
	VolumeMinus54dBFS
	VolumeMinus52dBFS
	VolumeMinus50dBFS
	VolumeMinus48dBFS
	VolumeMinus46dBFS
	VolumeMinus44dBFS
	VolumeMinus42dBFS
	VolumeMinus40dBFS
	VolumeMinus38dBFS
	VolumeMinus36dBFS
	VolumeMinus34dBFS
	VolumeMinus32dBFS
	VolumeMinus30dBFS
	VolumeMinus28dBFS
	VolumeMinus26dBFS
	VolumeMinus24dBFS
	VolumeMinus22dBFS
	VolumeMinus20dBFS
	VolumeMinus18dBFS
	VolumeMinus16dBFS
	VolumeMinus14dBFS
	VolumeMinus12dBFS
	VolumeMinus10dBFS
	VolumeMinus8dBFS
	VolumeMinus6dBFS
	VolumeMinus4dBFS
	VolumeMinus2dBFS
	// Volume0dBFS is the maximum.
	Volume0dBFS
)

// Si4703Driver holds the implementation to talk to the Si4702/Si4703
// FM tuner over I2C.
//
//goland:noinspection GoUnnecessarilyExportedIdentifiers
type Si4703Driver struct {
	name string

	i2cAddr      int
	conn         i2c.Connection
	i2cConnector i2c.Connector
	i2c.Config

	debugMode bool
	debugLog  func(format string, v ...interface{})
	log       func(format string, v ...interface{})

	hasRDS bool

	resetPin string
	sdaPin   string

	volume     uint8
	band       Band
	spacing    ChannelSpacing
	deemphasis DeEmphasis

	seekOp operation
	tuneOp operation
}

// Config holds the additional configuration needed for Si4703Driver.
type Config struct {
	// Volume is the startup volume on the 0..15 scale.
	Volume uint8

	// Band, ChannelSpacing and DeEmphasis are applied during Start.
	Band           Band
	ChannelSpacing ChannelSpacing
	DeEmphasis     DeEmphasis

	// ResetPin and SDAPin are toggled to reset the chip and select I2C
	// mode before the first bus transaction. Leave ResetPin empty when
	// the reset sequence is handled externally.
	ResetPin string
	SDAPin   string

	DebugMode bool
	DebugLog  func(format string, v ...interface{})
	Log       func(format string, v ...interface{})
}

// Validate ensures that our Si4703Driver configuration is valid.
//
//noinspection GoUnnecessarilyExportedIdentifiers
func (c *Config) Validate() error {
	if c.Log == nil {
		panic("logging function cannot be nil. Use something like log.Printf or an empty function instead")
	}
	if c.DebugMode && c.DebugLog == nil {
		panic("cannot use debugging mode without configuring a DebugLog function, e.g. log.Printf")
	}

	if c.ResetPin != "" && c.SDAPin == "" {
		return fmt.Errorf("resetting the tuner requires the SDA pin to select I2C mode")
	}

	if c.Volume > 15 {
		c.Log("Volume %d > 15. Adjusting to maximum of 15.\n", c.Volume)
		c.Volume = 15
	}

	return nil
}

// NewSi4703Driver creates a new GoBot driver for the Si4703 FM tuner.
func NewSi4703Driver(connector i2c.Connector, cfg Config, options ...func(i2c.Config)) (*Si4703Driver, error) {
	return newDriver(connector, cfg, true, options...)
}

// NewSi4702Driver creates a new GoBot driver for the Si4702 FM tuner,
// which is the same device without the RDS decoder.
func NewSi4702Driver(connector i2c.Connector, cfg Config, options ...func(i2c.Config)) (*Si4703Driver, error) {
	return newDriver(connector, cfg, false, options...)
}

func newDriver(connector i2c.Connector, cfg Config, hasRDS bool, options ...func(i2c.Config)) (*Si4703Driver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	res := &Si4703Driver{
		name:         gobot.DefaultName("Si4703Driver"),
		i2cConnector: connector,
		Config:       i2c.NewConfig(),
		i2cAddr:      Address,

		hasRDS:     hasRDS,
		resetPin:   cfg.ResetPin,
		sdaPin:     cfg.SDAPin,
		volume:     cfg.Volume,
		band:       cfg.Band,
		spacing:    cfg.ChannelSpacing,
		deemphasis: cfg.DeEmphasis,
		debugMode:  cfg.DebugMode,
		debugLog:   cfg.DebugLog,
		log:        cfg.Log,
	}

	for _, option := range options {
		option(res)
	}

	return res, nil
}

// Name of our device.
func (s *Si4703Driver) Name() string {
	return s.name
}

// SetName set the name of our device.
func (s *Si4703Driver) SetName(name string) {
	s.name = name
}

// Connection retrieves the i2c connection to the device.
func (s *Si4703Driver) Connection() gobot.Connection {
	return s.i2cConnector.(gobot.Connection)
}

// Start powers the tuner up and applies the configured band, spacing,
// de-emphasis and volume.
func (s *Si4703Driver) Start() error {
	if s.resetPin != "" {
		if err := s.reset(); err != nil {
			return err
		}
	}

	bus := s.GetBusOrDefault(s.i2cConnector.GetDefaultBus())
	var err error
	s.conn, err = s.i2cConnector.GetConnection(s.i2cAddr, bus)
	if err != nil {
		return err
	}

	if err = s.EnableOscillator(); err != nil {
		return err
	}
	// Wait for the oscillator to stabilize.
	time.Sleep(500 * time.Millisecond)

	if err = s.Enable(); err != nil {
		return err
	}
	// Powerup time, at most 110ms on the Si4703.
	time.Sleep(110 * time.Millisecond)

	if err = s.SetBand(s.band); err != nil {
		return err
	}
	if err = s.SetChannelSpacing(s.spacing); err != nil {
		return err
	}
	if err = s.SetDeemphasis(s.deemphasis); err != nil {
		return err
	}
	if err = s.SetVolume(s.volume); err != nil {
		return err
	}

	return s.Unmute()
}

// Halt stops the device in a graceful way: mute first, then power down.
func (s *Si4703Driver) Halt() error {
	var result *multierror.Error
	if err := s.Mute(); err != nil {
		result = multierror.Append(result, err)
	}
	if err := s.PowerDown(); err != nil {
		result = multierror.Append(result, err)
	}
	return result.ErrorOrNil()
}

// Resets the chip and selects I2C mode: with SDA held low, RST is
// pulsed low. The millisecond delays let the pins settle.
func (s *Si4703Driver) reset() error {
	dw, ok := s.i2cConnector.(gpio.DigitalWriter)
	if !ok {
		return fmt.Errorf("i2c connector does not have a digital writer capability")
	}

	if err := dw.DigitalWrite(s.sdaPin, low); err != nil {
		return err
	}
	if err := dw.DigitalWrite(s.resetPin, low); err != nil {
		return err
	}
	time.Sleep(1 * time.Millisecond)

	if err := dw.DigitalWrite(s.resetPin, high); err != nil {
		return err
	}
	time.Sleep(1 * time.Millisecond)

	return nil
}

// EnableOscillator turns on the internal crystal oscillator.
//
// This must be done before enabling the device on breakout boards that
// run the crystal on GPIO3. After calling this, a minimum of 500ms must
// be waited for the oscillator to power up.
func (s *Si4703Driver) EnableOscillator() error {
	regs, err := s.readRegisters()
	if err != nil {
		return err
	}
	regs[REG_TEST1] = XOSCEN | 0x0100
	return s.writeRegisters(regs[:REG_TEST1+1])
}

// Enable powers the device up.
//
// After calling this it must be waited for the device to power up.
// See: powerup time in the datasheet. On the Si4703, this is a maximum
// of 110ms.
func (s *Si4703Driver) Enable() error {
	return s.writePowerCfg(ENABLE)
}

// PowerDown puts the device in the low-power disabled state. The
// register configuration is retained while powered down.
func (s *Si4703Driver) PowerDown() error {
	powercfg, err := s.readPowerCfg()
	if err != nil {
		return err
	}
	return s.writePowerCfg(powercfg | DISABLE | ENABLE)
}

// Unmute disables audio mute.
func (s *Si4703Driver) Unmute() error {
	powercfg, err := s.readPowerCfg()
	if err != nil {
		return err
	}
	return s.writePowerCfg(powercfg | DMUTE)
}

// Mute enables audio mute.
func (s *Si4703Driver) Mute() error {
	powercfg, err := s.readPowerCfg()
	if err != nil {
		return err
	}
	return s.writePowerCfg(powercfg &^ DMUTE)
}

// EnableSoftmute enables softmute.
func (s *Si4703Driver) EnableSoftmute() error {
	powercfg, err := s.readPowerCfg()
	if err != nil {
		return err
	}
	return s.writePowerCfg(powercfg &^ DSMUTE)
}

// DisableSoftmute disables softmute.
func (s *Si4703Driver) DisableSoftmute() error {
	powercfg, err := s.readPowerCfg()
	if err != nil {
		return err
	}
	return s.writePowerCfg(powercfg | DSMUTE)
}

// SetSoftmuteRate sets the softmute attack/recover rate.
func (s *Si4703Driver) SetSoftmuteRate(rate SoftmuteRate) error {
	if rate < SoftmuteFastest || rate > SoftmuteSlowest {
		return ErrInvalidInput
	}
	regs, err := s.readRegisters()
	if err != nil {
		return err
	}
	regs[REG_SYSCONFIG3] &= 0x3FFF
	regs[REG_SYSCONFIG3] |= uint16(rate) << 14
	return s.writeRegisters(regs[:REG_SYSCONFIG3+1])
}

// SetSoftmuteAttenuation sets the softmute attenuation depth.
func (s *Si4703Driver) SetSoftmuteAttenuation(attenuation SoftmuteAttenuation) error {
	if attenuation < Softmute16dB || attenuation > Softmute10dB {
		return ErrInvalidInput
	}
	regs, err := s.readRegisters()
	if err != nil {
		return err
	}
	regs[REG_SYSCONFIG3] &= 0xCFFF
	regs[REG_SYSCONFIG3] |= uint16(attenuation) << 12
	return s.writeRegisters(regs[:REG_SYSCONFIG3+1])
}

// SetOutputMode selects stereo or forced mono output.
func (s *Si4703Driver) SetOutputMode(mode OutputMode) error {
	powercfg, err := s.readPowerCfg()
	if err != nil {
		return err
	}
	switch mode {
	case OutputStereo:
		powercfg &^= MONO
	case OutputMono:
		powercfg |= MONO
	default:
		return ErrInvalidInput
	}
	return s.writePowerCfg(powercfg)
}

// SetVolume sets the volume on the simple 0..15 scale. Values greater
// than 15 are rejected with ErrInvalidInput before any bus access.
// The extended volume range bit is left alone; see SetVolumeExtended.
func (s *Si4703Driver) SetVolume(volume uint8) error {
	if volume > 15 {
		return ErrInvalidInput
	}
	regs, err := s.readRegisters()
	if err != nil {
		return err
	}
	regs[REG_SYSCONFIG2] &= 0xFFF0
	regs[REG_SYSCONFIG2] |= uint16(volume)
	return s.writeRegisters(regs[:REG_SYSCONFIG2+1])
}

// SetVolumeExtended sets the volume on the full 31-step dBFS scale.
// Steps below -30 dBFS use the extended volume range, which requires
// setting the VOLEXT bit in a different register, so the write span
// extends to cover that register too.
func (s *Si4703Driver) SetVolumeExtended(volume Volume) error {
	if volume < VolumeMute || volume > Volume0dBFS {
		return ErrInvalidInput
	}
	regs, err := s.readRegisters()
	if err != nil {
		return err
	}

	if volume == VolumeMute {
		regs[REG_SYSCONFIG2] &= 0xFFF0
		return s.writeRegisters(regs[:REG_SYSCONFIG2+1])
	}

	nibble := uint16(volume)
	if volume <= VolumeMinus30dBFS {
		regs[REG_SYSCONFIG3] |= VOLEXT
	} else {
		nibble -= 15
		regs[REG_SYSCONFIG3] &^= VOLEXT
	}
	regs[REG_SYSCONFIG2] &= 0xFFF0
	regs[REG_SYSCONFIG2] |= nibble
	return s.writeRegisters(regs[:REG_SYSCONFIG3+1])
}

// SetBand selects the frequency band.
func (s *Si4703Driver) SetBand(band Band) error {
	if band < Band875_108MHz || band > Band76_90MHz {
		return ErrInvalidInput
	}
	regs, err := s.readRegisters()
	if err != nil {
		return err
	}
	regs[REG_SYSCONFIG2] &= 0xFF3F
	regs[REG_SYSCONFIG2] |= uint16(band) << 6
	return s.writeRegisters(regs[:REG_SYSCONFIG2+1])
}

// SetChannelSpacing selects the channel spacing.
func (s *Si4703Driver) SetChannelSpacing(spacing ChannelSpacing) error {
	if spacing < Spacing200kHz || spacing > Spacing50kHz {
		return ErrInvalidInput
	}
	regs, err := s.readRegisters()
	if err != nil {
		return err
	}
	regs[REG_SYSCONFIG2] &= 0xFFCF
	regs[REG_SYSCONFIG2] |= uint16(spacing) << 4
	return s.writeRegisters(regs[:REG_SYSCONFIG2+1])
}

// SetDeemphasis selects the de-emphasis time constant.
func (s *Si4703Driver) SetDeemphasis(de DeEmphasis) error {
	regs, err := s.readRegisters()
	if err != nil {
		return err
	}
	switch de {
	case DeEmphasis75us:
		regs[REG_SYSCONFIG1] &^= DE
	case DeEmphasis50us:
		regs[REG_SYSCONFIG1] |= DE
	default:
		return ErrInvalidInput
	}
	return s.writeRegisters(regs[:REG_SYSCONFIG1+1])
}

// EnableAutoGainControl enables the automatic gain control.
func (s *Si4703Driver) EnableAutoGainControl() error {
	regs, err := s.readRegisters()
	if err != nil {
		return err
	}
	regs[REG_SYSCONFIG1] &^= AGCD
	return s.writeRegisters(regs[:REG_SYSCONFIG1+1])
}

// DisableAutoGainControl disables the automatic gain control.
func (s *Si4703Driver) DisableAutoGainControl() error {
	regs, err := s.readRegisters()
	if err != nil {
		return err
	}
	regs[REG_SYSCONFIG1] |= AGCD
	return s.writeRegisters(regs[:REG_SYSCONFIG1+1])
}

// SetStereoToMonoBlendLevel adjusts the stereo to mono blend RSSI range.
func (s *Si4703Driver) SetStereoToMonoBlendLevel(level StereoToMonoBlendLevel) error {
	if level < Blend31_49dBuV || level > Blend25_43dBuV {
		return ErrInvalidInput
	}
	regs, err := s.readRegisters()
	if err != nil {
		return err
	}
	regs[REG_SYSCONFIG1] &= 0xFF3F
	regs[REG_SYSCONFIG1] |= uint16(level) << 6
	return s.writeRegisters(regs[:REG_SYSCONFIG1+1])
}

// SetGPIO1 sets the GPIO1 pin function / status.
func (s *Si4703Driver) SetGPIO1(config GPIO1Config) error {
	if config < GPIO1HighImpedance || config > GPIO1High {
		return ErrInvalidInput
	}
	regs, err := s.readRegisters()
	if err != nil {
		return err
	}
	regs[REG_SYSCONFIG1] &= 0xFFFC
	regs[REG_SYSCONFIG1] |= uint16(config)
	return s.writeRegisters(regs[:REG_SYSCONFIG1+1])
}

// SetGPIO2 sets the GPIO2 pin function / status.
func (s *Si4703Driver) SetGPIO2(config GPIO2Config) error {
	if config < GPIO2HighImpedance || config > GPIO2High {
		return ErrInvalidInput
	}
	regs, err := s.readRegisters()
	if err != nil {
		return err
	}
	regs[REG_SYSCONFIG1] &= 0xFFF3
	regs[REG_SYSCONFIG1] |= uint16(config) << 2
	return s.writeRegisters(regs[:REG_SYSCONFIG1+1])
}

// SetGPIO3 sets the GPIO3 pin function / status.
func (s *Si4703Driver) SetGPIO3(config GPIO3Config) error {
	if config < GPIO3HighImpedance || config > GPIO3High {
		return ErrInvalidInput
	}
	regs, err := s.readRegisters()
	if err != nil {
		return err
	}
	regs[REG_SYSCONFIG1] &= 0xFFCF
	regs[REG_SYSCONFIG1] |= uint16(config) << 4
	return s.writeRegisters(regs[:REG_SYSCONFIG1+1])
}

// EnableSTCInterrupts enables seek/tune complete interrupts. The
// interrupt fires on the GPIO2 pin once that pin is configured as
// interrupt output, see SetGPIO2.
func (s *Si4703Driver) EnableSTCInterrupts() error {
	regs, err := s.readRegisters()
	if err != nil {
		return err
	}
	regs[REG_SYSCONFIG1] |= STCIEN
	return s.writeRegisters(regs[:REG_SYSCONFIG1+1])
}

// DisableSTCInterrupts disables seek/tune complete interrupts.
func (s *Si4703Driver) DisableSTCInterrupts() error {
	regs, err := s.readRegisters()
	if err != nil {
		return err
	}
	regs[REG_SYSCONFIG1] &^= STCIEN
	return s.writeRegisters(regs[:REG_SYSCONFIG1+1])
}

// EnableAudioHighZ places the audio outputs in High-Z. Unlike
// EnableOscillator this preserves the reserved TEST1 bits read from
// the chip.
func (s *Si4703Driver) EnableAudioHighZ() error {
	regs, err := s.readRegisters()
	if err != nil {
		return err
	}
	regs[REG_TEST1] |= AHIZEN
	return s.writeRegisters(regs[:REG_TEST1+1])
}

// DisableAudioHighZ takes the audio outputs out of High-Z.
func (s *Si4703Driver) DisableAudioHighZ() error {
	regs, err := s.readRegisters()
	if err != nil {
		return err
	}
	regs[REG_TEST1] &^= AHIZEN
	return s.writeRegisters(regs[:REG_TEST1+1])
}

// Channel reports the frequency in MHz the tuner is currently set to,
// derived from the current band and spacing configuration.
func (s *Si4703Driver) Channel() (float64, error) {
	regs, err := s.readRegisters()
	if err != nil {
		return 0, err
	}
	bandMin, _ := bandLimits(regs[REG_SYSCONFIG2])
	return bandMin + spacingMHz(regs[REG_SYSCONFIG2])*float64(regs[REG_READCHAN]&0x3FF), nil
}

// DeviceID reports the part number and the manufacturer ID.
func (s *Si4703Driver) DeviceID() (partNumber, manufacturerID uint16, err error) {
	regs, err := s.readRegisters()
	if err != nil {
		return 0, 0, err
	}
	return regs[REG_DEVICE_ID] >> 12, regs[REG_DEVICE_ID] & 0x0FFF, nil
}

// ChipID reports the chip revision, device and firmware version.
func (s *Si4703Driver) ChipID() (revision, device, firmware uint16, err error) {
	regs, err := s.readRegisters()
	if err != nil {
		return 0, 0, 0, err
	}
	return regs[REG_CHIP_ID] >> 10, (regs[REG_CHIP_ID] >> 6) & 0xF, regs[REG_CHIP_ID] & 0x3F, nil
}
