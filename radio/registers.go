package radio

import "fmt"

// Misc constants.
//
//goland:noinspection GoUnusedConst,GoUnnecessarilyExportedIdentifiers,GoSnakeCaseUsage
const (
	// Address is the fixed device address of the Si4702/Si4703 on the bus.
	Address = 0x10

	// READ_OFFSET is the logical register a bus read burst starts at.
	// The chip always begins reading at STATUSRSSI and wraps around.
	READ_OFFSET = 0xA

	// WRITE_OFFSET is the logical register a bus write burst starts at.
	// Writes begin at POWERCFG and run forward without wrapping.
	WRITE_OFFSET = 0x2
)

// Indices of the registers in the 16-word shadow image.
//
//goland:noinspection GoUnusedConst,GoUnnecessarilyExportedIdentifiers,GoSnakeCaseUsage
const (
	// REG_DEVICE_ID holds the part number and manufacturer ID.
	REG_DEVICE_ID = 0x0

	// REG_CHIP_ID holds the chip revision, device and firmware version.
	REG_CHIP_ID = 0x1

	// REG_POWERCFG holds power, mute, mono and seek control bits.
	REG_POWERCFG = 0x2

	// REG_CHANNEL holds the tune enable bit and the raw channel index.
	REG_CHANNEL = 0x3

	// REG_SYSCONFIG1 holds interrupt, RDS, de-emphasis, AGC, blend
	// and GPIO configuration.
	REG_SYSCONFIG1 = 0x4

	// REG_SYSCONFIG2 holds the seek RSSI threshold, band, channel
	// spacing and volume.
	REG_SYSCONFIG2 = 0x5

	// REG_SYSCONFIG3 holds softmute configuration, the extended volume
	// range bit and the seek SNR / FM impulse thresholds.
	REG_SYSCONFIG3 = 0x6

	// REG_TEST1 holds the crystal oscillator and audio High-Z bits.
	REG_TEST1 = 0x7

	// REG_STATUSRSSI holds the RDS/seek/tune status flags and the
	// current RSSI.
	REG_STATUSRSSI = 0xA

	// REG_READCHAN holds the RDS block B-D error levels and the channel
	// the chip is currently tuned to.
	REG_READCHAN = 0xB

	// REG_RDSA..REG_RDSD hold the last received RDS group blocks.
	REG_RDSA = 0xC
	REG_RDSB = 0xD
	REG_RDSC = 0xE
	REG_RDSD = 0xF
)

// POWERCFG register bits.
//
//goland:noinspection GoUnusedConst,GoUnnecessarilyExportedIdentifiers,GoSnakeCaseUsage
const (
	// DSMUTE disables softmute when set.
	DSMUTE uint16 = 1 << 15

	// DMUTE disables audio mute when set.
	DMUTE uint16 = 1 << 14

	// MONO forces mono audio output.
	MONO uint16 = 1 << 13

	// RDSM selects RDS verbose mode.
	RDSM uint16 = 1 << 11

	// SKMODE stops seeking at the band limits instead of wrapping.
	SKMODE uint16 = 1 << 10

	// SEEKUP seeks upwards in frequency.
	SEEKUP uint16 = 1 << 9

	// SEEK starts a seek operation.
	SEEK uint16 = 1 << 8

	// DISABLE powers the device down when set together with ENABLE.
	DISABLE uint16 = 1 << 6

	// ENABLE powers the device up.
	ENABLE uint16 = 1
)

// CHANNEL register bits.
//
//goland:noinspection GoUnnecessarilyExportedIdentifiers,GoSnakeCaseUsage
const (
	// TUNE starts a tune operation to the channel in the low 10 bits.
	TUNE uint16 = 1 << 15
)

// SYSCONFIG1 register bits.
//
//goland:noinspection GoUnusedConst,GoUnnecessarilyExportedIdentifiers,GoSnakeCaseUsage
const (
	// RDSIEN enables RDS interrupts on GPIO2.
	RDSIEN uint16 = 1 << 15

	// STCIEN enables seek/tune complete interrupts on GPIO2.
	STCIEN uint16 = 1 << 14

	// RDS enables the RDS decoder.
	RDS uint16 = 1 << 12

	// DE selects 50 us de-emphasis instead of 75 us.
	DE uint16 = 1 << 11

	// AGCD disables the automatic gain control when set.
	AGCD uint16 = 1 << 10
)

// SYSCONFIG3 register bits.
//
//goland:noinspection GoUnnecessarilyExportedIdentifiers,GoSnakeCaseUsage
const (
	// VOLEXT lowers the volume scale by 30 dB (extended volume range).
	VOLEXT uint16 = 1 << 8
)

// TEST1 register bits.
//
//goland:noinspection GoUnusedConst,GoUnnecessarilyExportedIdentifiers,GoSnakeCaseUsage
const (
	// XOSCEN enables the internal crystal oscillator.
	XOSCEN uint16 = 1 << 15

	// AHIZEN places the audio outputs in High-Z.
	AHIZEN uint16 = 1 << 14
)

// STATUSRSSI register bits.
//
//goland:noinspection GoUnusedConst,GoUnnecessarilyExportedIdentifiers,GoSnakeCaseUsage
const (
	// RDSR signals that a new RDS group is ready.
	RDSR uint16 = 1 << 15

	// STC signals that a seek or tune operation has completed. It stays
	// set until the SEEK or TUNE bit is cleared.
	STC uint16 = 1 << 14

	// SF_BL signals that a seek failed or hit the band limit.
	SF_BL uint16 = 1 << 13

	// AFCRL signals that the AFC railed, i.e. the tuned channel is
	// not valid.
	AFCRL uint16 = 1 << 12

	// RDSS signals RDS synchronization (verbose mode only).
	RDSS uint16 = 1 << 11

	// ST signals stereo reception.
	ST uint16 = 1 << 8
)

// toRegisters reconstructs the logical register image from a wire
// buffer. Word i of the buffer holds logical register (i+offset)%16,
// high byte first. Buffers shorter than 32 bytes leave the registers
// they do not reach at zero.
func toRegisters(data []byte, offset int) [16]uint16 {
	var regs [16]uint16
	for i := 0; i+1 < len(data); i += 2 {
		regs[(i/2+offset)%len(regs)] = uint16(data[i])<<8 | uint16(data[i+1])
	}
	return regs
}

// fromRegisters is the inverse of toRegisters. It produces exactly as
// many wire words as needed to cover the supplied register slice, so
// that the chip commits no register beyond the last one the caller
// modified.
func fromRegisters(regs []uint16, offset int) []byte {
	data := make([]byte, (len(regs)-offset)*2)
	for i := 0; 2*i < len(data); i++ {
		reg := regs[(i+offset)%16]
		data[2*i] = byte(reg >> 8)
		data[2*i+1] = byte(reg)
	}
	return data
}

// readRegisters fetches the full 16-register shadow image in a single
// 32-byte bus read.
func (s *Si4703Driver) readRegisters() ([16]uint16, error) {
	data, err := s.busRead(32)
	if err != nil {
		return [16]uint16{}, err
	}
	return toRegisters(data, READ_OFFSET), nil
}

// readPowerCfg fetches only the POWERCFG register. Reading 18 bytes is
// just enough for the wrapped read burst to reach it, saving the rest
// of the full 32-byte transfer.
func (s *Si4703Driver) readPowerCfg() (uint16, error) {
	data, err := s.busRead(18)
	if err != nil {
		return 0, err
	}
	regs := toRegisters(data, READ_OFFSET)
	return regs[REG_POWERCFG], nil
}

// readStatus fetches only the STATUSRSSI register, which is the first
// word of every read burst.
func (s *Si4703Driver) readStatus() (uint16, error) {
	data, err := s.busRead(2)
	if err != nil {
		return 0, err
	}
	return uint16(data[0])<<8 | uint16(data[1]), nil
}

// readRDS fetches STATUSRSSI, READCHAN and the four RDS blocks. Those
// are the first six words on the wire, so 12 bytes suffice.
func (s *Si4703Driver) readRDS() ([16]uint16, error) {
	data, err := s.busRead(12)
	if err != nil {
		return [16]uint16{}, err
	}
	return toRegisters(data, READ_OFFSET), nil
}

// writePowerCfg writes just the POWERCFG register, the first word of
// every write burst.
func (s *Si4703Driver) writePowerCfg(value uint16) error {
	return s.busWrite([]byte{byte(value >> 8), byte(value)})
}

// writeRegisters writes the register slice from POWERCFG up to and
// including the last supplied register. Callers must always slice the
// image from register 0 through the highest register they modified:
// the chip commits every register up to the last transmitted word, so
// a wrongly sized burst silently reverts unrelated registers.
func (s *Si4703Driver) writeRegisters(regs []uint16) error {
	return s.busWrite(fromRegisters(regs, WRITE_OFFSET))
}

func (s *Si4703Driver) busRead(size int) ([]byte, error) {
	buf := make([]byte, size)
	n, err := s.conn.Read(buf)
	if err != nil {
		return nil, err
	}
	if n != size {
		return nil, fmt.Errorf("failed to read %d bytes from the bus, read %d -> %s", size, n, s.sliceToString(buf[:n]))
	}
	if s.debugMode {
		s.debugLog("read %d bytes: %s\n", size, s.sliceToString(buf))
	}
	return buf, nil
}

func (s *Si4703Driver) busWrite(data []byte) error {
	if s.debugMode {
		s.debugLog("*** Write: %s\n", s.sliceToString(data))
	}
	_, err := s.conn.Write(data)
	return err
}

func (s *Si4703Driver) sliceToString(val []byte) string {
	res := ""
	for idx := range val {
		res += fmt.Sprintf("[%d]=0x%x(%d) ", idx, val[idx], val[idx])
	}
	return res
}
