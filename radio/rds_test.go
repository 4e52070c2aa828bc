package radio

import (
	"bytes"
	"testing"
)

func TestEnableRDSVerbose(t *testing.T) {
	d, adaptor := initTestDriver(true)
	adaptor.queueRegisterRead([16]uint16{}, 32)

	if err := d.EnableRDS(RDSVerbose); err != nil {
		t.Fatal(err)
	}
	assertWrites(t, adaptor, []byte{0x08, 0x00, 0x00, 0x00, 0x10, 0x00})
}

func TestEnableRDSStandardClearsVerboseMode(t *testing.T) {
	d, adaptor := initTestDriver(true)
	var regs [16]uint16
	regs[REG_POWERCFG] = RDSM
	adaptor.queueRegisterRead(regs, 32)

	if err := d.EnableRDS(RDSStandard); err != nil {
		t.Fatal(err)
	}
	assertWrites(t, adaptor, []byte{0x00, 0x00, 0x00, 0x00, 0x10, 0x00})
}

func TestDisableRDS(t *testing.T) {
	d, adaptor := initTestDriver(true)
	var regs [16]uint16
	regs[REG_SYSCONFIG1] = RDS | DE
	adaptor.queueRegisterRead(regs, 32)

	if err := d.DisableRDS(); err != nil {
		t.Fatal(err)
	}
	assertWrites(t, adaptor, []byte{0x00, 0x00, 0x00, 0x00, 0x08, 0x00})
}

func TestRDSInterrupts(t *testing.T) {
	d, adaptor := initTestDriver(true)
	adaptor.queueRegisterRead([16]uint16{}, 32)
	var regs [16]uint16
	regs[REG_SYSCONFIG1] = RDSIEN
	adaptor.queueRegisterRead(regs, 32)

	if err := d.EnableRDSInterrupts(); err != nil {
		t.Fatal(err)
	}
	if err := d.DisableRDSInterrupts(); err != nil {
		t.Fatal(err)
	}
	assertWrites(t, adaptor,
		[]byte{0x00, 0x00, 0x00, 0x00, 0x80, 0x00},
		[]byte{0x00, 0x00, 0x00, 0x00, 0x00, 0x00},
	)
}

func TestRDSReady(t *testing.T) {
	d, adaptor := initTestDriver(true)
	var regs [16]uint16
	regs[REG_STATUSRSSI] = RDSR
	adaptor.queueRegisterRead(regs, 2)
	adaptor.queueRegisterRead([16]uint16{}, 2)

	ready, err := d.RDSReady()
	if err != nil || !ready {
		t.Fatalf("RDSReady = (%v, %v), want ready", ready, err)
	}
	ready, err = d.RDSReady()
	if err != nil || ready {
		t.Fatalf("RDSReady = (%v, %v), want not ready", ready, err)
	}
}

func TestRDSData(t *testing.T) {
	d, adaptor := initTestDriver(true)
	var regs [16]uint16
	regs[REG_STATUSRSSI] = RDSR | 1<<9 // block A: 1-2 errors corrected
	regs[REG_READCHAN] = 2<<12 | 3<<10 // blocks C and D damaged
	regs[REG_RDSA] = 0x1111
	regs[REG_RDSB] = 0x2222
	regs[REG_RDSC] = 0x3333
	regs[REG_RDSD] = 0x4444
	adaptor.queueRegisterRead(regs, 12)

	data, err := d.RDSData()
	if err != nil {
		t.Fatal(err)
	}
	want := RDSData{
		A: RDSBlock{Data: 0x1111, Errors: RDSErrorsOneOrTwo},
		B: RDSBlock{Data: 0x2222, Errors: RDSErrorsNone},
		C: RDSBlock{Data: 0x3333, Errors: RDSErrorsThreeToFive},
		D: RDSBlock{Data: 0x4444, Errors: RDSErrorsTooMany},
	}
	if data != want {
		t.Fatalf("RDSData = %+v, want %+v", data, want)
	}
}

func TestRDSOperationsRejectedOnSi4702(t *testing.T) {
	d, adaptor := initTestDriver(false)

	if err := d.EnableRDS(RDSStandard); err != ErrNoRDS {
		t.Fatalf("EnableRDS = %v, want ErrNoRDS", err)
	}
	if _, err := d.RDSReady(); err != ErrNoRDS {
		t.Fatalf("RDSReady = %v, want ErrNoRDS", err)
	}
	if _, err := d.RDSData(); err != ErrNoRDS {
		t.Fatalf("RDSData = %v, want ErrNoRDS", err)
	}
	if len(adaptor.writes) != 0 {
		t.Fatal("expected no bus traffic on the Si4702")
	}
}

func TestGetRDSRadioTextFourCharacterSegment(t *testing.T) {
	data := RDSData{
		B: RDSBlock{Data: 0x2000 | 3}, // group 2A, segment 3
		C: RDSBlock{Data: 0x4142},
		D: RDSBlock{Data: 0x4344},
	}

	rt, ok := GetRDSRadioText(data)
	if !ok {
		t.Fatal("expected a radiotext group")
	}
	if !bytes.Equal(rt.Text, []byte("ABCD")) || rt.Offset != 12 {
		t.Fatalf("radiotext = %q at %d, want \"ABCD\" at 12", rt.Text, rt.Offset)
	}
}

func TestGetRDSRadioTextTwoCharacterSegment(t *testing.T) {
	data := RDSData{
		B: RDSBlock{Data: 0x2000 | 1<<11 | 2}, // group 2B, segment 2
		D: RDSBlock{Data: 0x4546},
	}

	rt, ok := GetRDSRadioText(data)
	if !ok {
		t.Fatal("expected a radiotext group")
	}
	if !bytes.Equal(rt.Text, []byte("EF")) || rt.Offset != 4 {
		t.Fatalf("radiotext = %q at %d, want \"EF\" at 4", rt.Text, rt.Offset)
	}
}

func TestGetRDSRadioTextScreenClear(t *testing.T) {
	data := RDSData{
		B: RDSBlock{Data: 0x2000 | 1<<4},
		C: RDSBlock{Data: 0x2020},
		D: RDSBlock{Data: 0x2020},
	}

	rt, ok := GetRDSRadioText(data)
	if !ok || !rt.ScreenClear {
		t.Fatalf("radiotext = (%+v, %v), want a screen clear", rt, ok)
	}
}

func TestGetRDSRadioTextRejectsOtherGroups(t *testing.T) {
	data := RDSData{
		B: RDSBlock{Data: 0x3000},
		C: RDSBlock{Data: 0x4142},
		D: RDSBlock{Data: 0x4344},
	}

	if _, ok := GetRDSRadioText(data); ok {
		t.Fatal("expected a non-radiotext group to be rejected")
	}
}

func TestGetRDSRadioTextRejectsDamagedBlockB(t *testing.T) {
	data := RDSData{
		B: RDSBlock{Data: 0x2000, Errors: RDSErrorsThreeToFive},
	}

	if _, ok := GetRDSRadioText(data); ok {
		t.Fatal("expected a damaged block B to be rejected")
	}
}

func TestGetRDSRadioTextSkipsDamagedCharacters(t *testing.T) {
	data := RDSData{
		B: RDSBlock{Data: 0x2000 | 5},
		C: RDSBlock{Data: 0x4142, Errors: RDSErrorsTooMany},
		D: RDSBlock{Data: 0x4344},
	}

	rt, ok := GetRDSRadioText(data)
	if !ok {
		t.Fatal("expected the group itself to remain usable")
	}
	if rt.Text != nil {
		t.Fatalf("radiotext = %q, want the damaged segment to be dropped", rt.Text)
	}
}

func TestFillRDSRadioText(t *testing.T) {
	var text [64]byte
	for i := range text {
		text[i] = ' '
	}

	segments := []RDSData{
		{
			B: RDSBlock{Data: 0x2000 | 0},
			C: RDSBlock{Data: 0x4845}, // HE
			D: RDSBlock{Data: 0x4C4C}, // LL
		},
		{
			B: RDSBlock{Data: 0x2000 | 1},
			C: RDSBlock{Data: 0x4F21}, // O!
			D: RDSBlock{Data: 0x2020},
		},
	}
	for _, data := range segments {
		if FillRDSRadioText(&text, data) {
			t.Fatal("unexpected screen clear request")
		}
	}

	if got := string(text[:8]); got != "HELLO!  " {
		t.Fatalf("radiotext buffer = %q, want \"HELLO!  \"", got)
	}

	clear := RDSData{B: RDSBlock{Data: 0x2000 | 1<<4}}
	if !FillRDSRadioText(&text, clear) {
		t.Fatal("expected a screen clear request")
	}
}
