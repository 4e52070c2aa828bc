// Package display implements a small station display for the FM tuner
// on an I2C LCD1602 module: the tuned frequency on the first line and
// the RDS radiotext, scrolled through a 16-character viewport, on the
// second.
package display

import (
	"fmt"
	"strings"
	"time"

	"gobot.io/x/gobot"
	"gobot.io/x/gobot/drivers/i2c"
)

const (
	// command signals that we want to send a command to the screen
	command = 0x04

	// data signals that we want to send data to the screen
	data = 0x05

	// address is our default address
	address = 0x27

	// cols is the width of one display line
	cols = 16
)

// StationDisplayDriver renders the tuner state on the LCD 1602.
//
//goland:noinspection GoUnnecessarilyExportedIdentifiers
type StationDisplayDriver struct {
	name         string
	i2cConnector i2c.Connector
	i2c.Config
	gobot.Commander

	i2cAddr int
	conn    i2c.Connection

	backlightEnabled bool

	radioText  string
	scrollPos  int
	lastStatus string
}

// Name of our device.
func (lcd *StationDisplayDriver) Name() string {
	return lcd.name
}

// SetName set the name of our device.
func (lcd *StationDisplayDriver) SetName(name string) {
	lcd.name = name
}

// Start the device work.
func (lcd *StationDisplayDriver) Start() error {
	bus := lcd.GetBusOrDefault(lcd.i2cConnector.GetDefaultBus())

	var err error
	lcd.conn, err = lcd.i2cConnector.GetConnection(lcd.i2cAddr, bus)
	if err != nil {
		return err
	}

	commands := []byte{0x33, 0x32, 0x28, 0x0C}
	for _, cmd := range commands {
		if err = lcd.sendCommand(cmd); err != nil {
			return err
		}
		time.Sleep(5 * time.Millisecond)
	}

	return lcd.ClearScreen()
}

// Halt stops the device in a graceful way.
func (lcd *StationDisplayDriver) Halt() error {
	lcd.backlightEnabled = false
	return lcd.ClearScreen()
}

// Connection retrieves the i2c connection to the device.
func (lcd *StationDisplayDriver) Connection() gobot.Connection {
	return lcd.i2cConnector.(gobot.Connection)
}

// ShowFrequency renders the tuned frequency on the first line,
// e.g. "FM 104.30 MHz".
func (lcd *StationDisplayDriver) ShowFrequency(mhz float64) error {
	return lcd.showStatus(fmt.Sprintf("FM %.2f MHz", mhz))
}

// ShowStatus renders a free-form status on the first line, e.g.
// "Seeking..." while a seek is in flight.
func (lcd *StationDisplayDriver) ShowStatus(status string) error {
	return lcd.showStatus(status)
}

func (lcd *StationDisplayDriver) showStatus(status string) error {
	if status == lcd.lastStatus {
		return nil
	}
	lcd.lastStatus = status
	return lcd.writeLine(0, status)
}

// SetRadioText replaces the radiotext shown on the second line and
// resets the scroll position.
func (lcd *StationDisplayDriver) SetRadioText(text string) error {
	lcd.radioText = strings.TrimRight(text, " \x00")
	lcd.scrollPos = 0
	return lcd.writeLine(1, radioTextViewport(lcd.radioText, 0))
}

// ScrollRadioText advances the radiotext viewport by one character and
// redraws the second line. Call it on a timer for a marquee effect;
// texts that fit the display are left alone.
func (lcd *StationDisplayDriver) ScrollRadioText() error {
	if len(lcd.radioText) <= cols {
		return nil
	}
	lcd.scrollPos++
	if lcd.scrollPos > len(lcd.radioText)+2 {
		lcd.scrollPos = 0
	}
	return lcd.writeLine(1, radioTextViewport(lcd.radioText, lcd.scrollPos))
}

// radioTextViewport cuts a 16-character window out of the radiotext,
// wrapping around with a gap so the scroll reads naturally.
func radioTextViewport(text string, pos int) string {
	if len(text) <= cols {
		return text
	}
	wrapped := text + "   " + text
	pos %= len(text) + 3
	if pos+cols > len(wrapped) {
		pos = 0
	}
	return wrapped[pos : pos+cols]
}

// writeLine renders one padded line of text on row y.
func (lcd *StationDisplayDriver) writeLine(y int, msg string) error {
	if len(msg) < cols {
		msg += strings.Repeat(" ", cols-len(msg))
	}

	// Move the cursor to the start of the row.
	addr := byte(0x80 + 0x40*y)
	if err := lcd.sendCommand(addr); err != nil {
		return err
	}

	for _, ch := range []byte(msg[:cols]) {
		if err := lcd.sendData(ch); err != nil {
			return err
		}
	}
	return nil
}

// EnableBacklight turns on the screen backlight.
func (lcd *StationDisplayDriver) EnableBacklight() error {
	err := lcd.write(0x08)
	time.Sleep(2 * time.Millisecond)
	return err
}

// DisableBacklight turns off the screen backlight.
func (lcd *StationDisplayDriver) DisableBacklight() error {
	err := lcd.write(0x07)
	time.Sleep(2 * time.Millisecond)
	return err
}

// ClearScreen removes any message from the LCD screen.
func (lcd *StationDisplayDriver) ClearScreen() error {
	lcd.lastStatus = ""
	lcd.radioText = ""
	lcd.scrollPos = 0

	// The screen clearing command needs to be
	// sent with the backlight turned on.
	tmp := lcd.backlightEnabled
	lcd.backlightEnabled = true
	if err := lcd.sendCommand(0x01); err != nil {
		return err
	}

	time.Sleep(2 * time.Millisecond)

	lcd.backlightEnabled = tmp

	if lcd.backlightEnabled {
		return lcd.EnableBacklight()
	}
	return lcd.DisableBacklight()
}

// Send a command to the LCD.
func (lcd *StationDisplayDriver) sendCommand(cmd byte) (err error) {
	return lcd.communicate(command, cmd)
}

// Send data to the LCD.
func (lcd *StationDisplayDriver) sendData(cmd byte) (err error) {
	return lcd.communicate(data, cmd)
}

// write handles the actual data writing to the LCD i2c connection.
func (lcd *StationDisplayDriver) write(data byte) error {
	temp := data
	if lcd.backlightEnabled {
		temp |= 0x08
	} else {
		temp |= 0x07
	}

	return lcd.conn.WriteByte(temp)
}

// Communicate with the LCD by sending either a command or data.
func (lcd *StationDisplayDriver) communicate(cmdType byte, cmd byte) error {
	// Send bit7-4 firstly
	buf := cmd & 0xF0
	buf |= cmdType // RS = 0, RW = 0, EN = 1
	if err := lcd.write(buf); err != nil {
		return err
	}

	time.Sleep(2 * time.Millisecond)

	buf &= 0xFB // Make EN = 0
	if err := lcd.write(buf); err != nil {
		return err
	}

	// Send bit3-0 secondly
	buf = (cmd & 0x0F) << 4
	buf |= cmdType // RS = 0, RW = 0, EN = 1
	if err := lcd.write(buf); err != nil {
		return err
	}

	time.Sleep(2 * time.Millisecond)
	buf &= 0xFB // Make EN = 0
	return lcd.write(buf)
}

// NewStationDisplayDriver creates a new GoBot driver for the station
// display.
func NewStationDisplayDriver(connector i2c.Connector, options ...func(i2c.Config)) (*StationDisplayDriver, error) {
	lcd := &StationDisplayDriver{
		name:             gobot.DefaultName("StationDisplayDriver"),
		i2cConnector:     connector,
		Config:           i2c.NewConfig(),
		i2cAddr:          address,
		backlightEnabled: true,
	}

	for _, option := range options {
		option(lcd)
	}

	return lcd, nil
}
