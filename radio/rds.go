package radio

// RDSMode selects the RDS decoder verbosity.
type RDSMode int

//goland:noinspection GoUnnecessarilyExportedIdentifiers
const (
	// RDSStandard is the default mode.
	RDSStandard RDSMode = iota
	// RDSVerbose additionally exposes block errors and the
	// synchronization status.
	RDSVerbose
)

// RDSBlockErrors is the error classification for one received RDS
// block, derived from the 2-bit error count field. The numeric values
// are the hardware field codes.
type RDSBlockErrors int

//goland:noinspection GoUnnecessarilyExportedIdentifiers
const (
	// RDSErrorsNone means the block was received clean.
	RDSErrorsNone RDSBlockErrors = iota
	// RDSErrorsOneOrTwo means 1-2 errors were corrected.
	RDSErrorsOneOrTwo
	// RDSErrorsThreeToFive means 3-5 errors were corrected.
	RDSErrorsThreeToFive
	// RDSErrorsTooMany means 6 or more errors, the block is unusable.
	RDSErrorsTooMany
)

// RDSBlock is one 16-bit RDS block together with its error
// classification.
type RDSBlock struct {
	Data   uint16
	Errors RDSBlockErrors
}

// RDSData is one received RDS group of four blocks.
type RDSData struct {
	A, B, C, D RDSBlock
}

// RadioText is the radiotext contribution of a single RDS group.
type RadioText struct {
	// ScreenClear reports that the station requested the display
	// buffer to be cleared.
	ScreenClear bool

	// Text is the 2- or 4-character segment carried by the group, nil
	// when the carrying blocks were too damaged to use.
	Text []byte

	// Offset is the write position of the segment in the 64-character
	// radiotext buffer.
	Offset int
}

// EnableRDS enables the RDS decoder. In verbose mode the chip
// additionally exposes block errors and the synchronization status.
func (s *Si4703Driver) EnableRDS(mode RDSMode) error {
	if !s.hasRDS {
		return ErrNoRDS
	}
	regs, err := s.readRegisters()
	if err != nil {
		return err
	}
	regs[REG_SYSCONFIG1] |= RDS
	switch mode {
	case RDSStandard:
		regs[REG_POWERCFG] &^= RDSM
	case RDSVerbose:
		regs[REG_POWERCFG] |= RDSM
	default:
		return ErrInvalidInput
	}
	return s.writeRegisters(regs[:REG_SYSCONFIG1+1])
}

// DisableRDS disables the RDS decoder.
func (s *Si4703Driver) DisableRDS() error {
	if !s.hasRDS {
		return ErrNoRDS
	}
	regs, err := s.readRegisters()
	if err != nil {
		return err
	}
	regs[REG_SYSCONFIG1] &^= RDS
	return s.writeRegisters(regs[:REG_SYSCONFIG1+1])
}

// EnableRDSInterrupts makes the chip raise an interrupt on GPIO2 when
// a new RDS group arrives, see SetGPIO2.
func (s *Si4703Driver) EnableRDSInterrupts() error {
	if !s.hasRDS {
		return ErrNoRDS
	}
	regs, err := s.readRegisters()
	if err != nil {
		return err
	}
	regs[REG_SYSCONFIG1] |= RDSIEN
	return s.writeRegisters(regs[:REG_SYSCONFIG1+1])
}

// DisableRDSInterrupts disables RDS interrupts.
func (s *Si4703Driver) DisableRDSInterrupts() error {
	if !s.hasRDS {
		return ErrNoRDS
	}
	regs, err := s.readRegisters()
	if err != nil {
		return err
	}
	regs[REG_SYSCONFIG1] &^= RDSIEN
	return s.writeRegisters(regs[:REG_SYSCONFIG1+1])
}

// RDSReady reports whether a new RDS group is ready to be read.
func (s *Si4703Driver) RDSReady() (bool, error) {
	if !s.hasRDS {
		return false, ErrNoRDS
	}
	status, err := s.readStatus()
	if err != nil {
		return false, err
	}
	return status&RDSR != 0, nil
}

// RDSSynchronized reports the RDS synchronization status. It is only
// meaningful in verbose mode.
func (s *Si4703Driver) RDSSynchronized() (bool, error) {
	if !s.hasRDS {
		return false, ErrNoRDS
	}
	status, err := s.readStatus()
	if err != nil {
		return false, err
	}
	return status&RDSS != 0, nil
}

// RDSData reads the current RDS group with the per-block error
// classification.
func (s *Si4703Driver) RDSData() (RDSData, error) {
	if !s.hasRDS {
		return RDSData{}, ErrNoRDS
	}
	regs, err := s.readRDS()
	if err != nil {
		return RDSData{}, err
	}
	return RDSData{
		A: RDSBlock{Data: regs[REG_RDSA], Errors: blockErrors(regs[REG_STATUSRSSI], 9)},
		B: RDSBlock{Data: regs[REG_RDSB], Errors: blockErrors(regs[REG_READCHAN], 14)},
		C: RDSBlock{Data: regs[REG_RDSC], Errors: blockErrors(regs[REG_READCHAN], 12)},
		D: RDSBlock{Data: regs[REG_RDSD], Errors: blockErrors(regs[REG_READCHAN], 10)},
	}, nil
}

// blockErrors extracts a 2-bit block error field. The field codes map
// directly onto the RDSBlockErrors values.
func blockErrors(word uint16, shift uint) RDSBlockErrors {
	return RDSBlockErrors((word >> shift) & 0x3)
}

// GetRDSRadioText decodes the radiotext contribution of one RDS group.
// It reports ok=false when the group is not a usable radiotext group:
// block B damaged beyond repair or a different group type.
//
// See Radio Text here: https://en.wikipedia.org/wiki/Radio_Data_System
func GetRDSRadioText(data RDSData) (RadioText, bool) {
	const radioTextGroupType = 0x2 << 12

	if data.B.Errors > RDSErrorsOneOrTwo {
		return RadioText{}, false
	}
	if data.B.Data&(0xF<<12) != radioTextGroupType {
		return RadioText{}, false
	}

	text := RadioText{
		ScreenClear: data.B.Data&(1<<4) != 0,
	}
	segment := int(data.B.Data & 0xF)

	if data.B.Data&(1<<11) == 0 {
		// A/B flag 0: four characters from blocks C and D.
		if data.C.Errors != RDSErrorsTooMany && data.D.Errors != RDSErrorsTooMany {
			text.Text = []byte{
				byte(data.C.Data >> 8), byte(data.C.Data),
				byte(data.D.Data >> 8), byte(data.D.Data),
			}
			text.Offset = segment * 4
		}
		return text, true
	}

	// A/B flag 1: two characters from block D alone.
	if data.D.Errors != RDSErrorsTooMany {
		text.Text = []byte{byte(data.D.Data >> 8), byte(data.D.Data)}
		text.Offset = segment * 2
	}
	return text, true
}

// FillRDSRadioText applies the radiotext contribution of one RDS group
// to a 64-character buffer. It needs to be called repeatedly with each
// new group. It reports whether the station requested a screen clear;
// clearing the buffer is left to the caller, which may want to debounce
// it.
func FillRDSRadioText(text *[64]byte, data RDSData) bool {
	rt, ok := GetRDSRadioText(data)
	if !ok {
		return false
	}
	for i, ch := range rt.Text {
		if rt.Offset+i < len(text) {
			text[rt.Offset+i] = ch
		}
	}
	return rt.ScreenClear
}
