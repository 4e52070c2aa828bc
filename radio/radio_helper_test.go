package radio

import (
	"errors"
	"fmt"
	"sync"

	"gobot.io/x/gobot/drivers/i2c"
)

// I2CTestAdaptor is useful to implement tests for
// passing i2c messages back and forth.
//
// Bus reads consume the queued response buffers one per call, bus
// writes are recorded one transaction per call. The digital pins can
// be scripted through pinValues; unscripted pins read back high.
type I2CTestAdaptor struct {
	name          string
	mtx           sync.Mutex
	i2cConnectErr bool
	i2cReadImpl   func(*I2CTestAdaptor, []byte) (int, error)
	i2cWriteImpl  func(*I2CTestAdaptor, []byte) (int, error)

	reads     [][]byte
	writes    [][]byte
	pinValues map[string]int
	pinWrites []string
}

func (t *I2CTestAdaptor) DigitalWrite(pin string, val byte) (err error) {
	t.mtx.Lock()
	defer t.mtx.Unlock()
	t.pinWrites = append(t.pinWrites, fmt.Sprintf("%s=%d", pin, val))
	return nil
}

func (t *I2CTestAdaptor) DigitalRead(pin string) (val int, err error) {
	t.mtx.Lock()
	defer t.mtx.Unlock()
	if v, ok := t.pinValues[pin]; ok {
		return v, nil
	}
	return high, nil
}

func (t *I2CTestAdaptor) Read(b []byte) (count int, err error) {
	t.mtx.Lock()
	defer t.mtx.Unlock()
	return t.i2cReadImpl(t, b)
}

func (t *I2CTestAdaptor) Write(b []byte) (count int, err error) {
	t.mtx.Lock()
	defer t.mtx.Unlock()
	tx := make([]byte, len(b))
	copy(tx, b)
	t.writes = append(t.writes, tx)
	return t.i2cWriteImpl(t, b)
}

func (t *I2CTestAdaptor) Close() error {
	return nil
}

func (t *I2CTestAdaptor) ReadByte() (val byte, err error) {
	t.mtx.Lock()
	defer t.mtx.Unlock()
	bytes := []byte{0}
	bytesRead, err := t.i2cReadImpl(t, bytes)
	if err != nil {
		return 0, err
	}
	if bytesRead != 1 {
		return 0, fmt.Errorf("buffer underrun")
	}
	val = bytes[0]
	return
}

func (t *I2CTestAdaptor) ReadByteData(/* reg */ uint8) (val uint8, err error) {
	t.mtx.Lock()
	defer t.mtx.Unlock()
	bytes := []byte{0}
	bytesRead, err := t.i2cReadImpl(t, bytes)
	if err != nil {
		return 0, err
	}
	if bytesRead != 1 {
		return 0, fmt.Errorf("buffer underrun")
	}
	val = bytes[0]
	return
}

func (t *I2CTestAdaptor) ReadWordData(/* reg */ uint8) (val uint16, err error) {
	t.mtx.Lock()
	defer t.mtx.Unlock()
	bytes := []byte{0, 0}
	bytesRead, err := t.i2cReadImpl(t, bytes)
	if err != nil {
		return 0, err
	}
	if bytesRead != 2 {
		return 0, fmt.Errorf("buffer underrun")
	}
	l, h := bytes[0], bytes[1]
	return (uint16(h) << 8) | uint16(l), err
}

func (t *I2CTestAdaptor) WriteByte(val byte) (err error) {
	t.mtx.Lock()
	defer t.mtx.Unlock()
	t.writes = append(t.writes, []byte{val})
	bytes := []byte{val}
	_, err = t.i2cWriteImpl(t, bytes)
	return
}

func (t *I2CTestAdaptor) WriteByteData(reg uint8, val uint8) (err error) {
	t.mtx.Lock()
	defer t.mtx.Unlock()
	t.writes = append(t.writes, []byte{reg, val})
	bytes := []byte{val}
	_, err = t.i2cWriteImpl(t, bytes)
	return
}

func (t *I2CTestAdaptor) WriteWordData(reg uint8, val uint16) (err error) {
	t.mtx.Lock()
	defer t.mtx.Unlock()
	l := uint8(val & 0xff)
	h := uint8((val >> 8) & 0xff)
	t.writes = append(t.writes, []byte{reg, l, h})
	bytes := []byte{l, h}
	_, err = t.i2cWriteImpl(t, bytes)
	return
}

func (t *I2CTestAdaptor) WriteBlockData(reg uint8, b []byte) (err error) {
	t.mtx.Lock()
	defer t.mtx.Unlock()
	t.writes = append(t.writes, append([]byte{reg}, b...))
	_, err = t.i2cWriteImpl(t, b)
	return
}

func (t *I2CTestAdaptor) GetConnection( /* address */ int, /* bus */ int) (connection i2c.Connection, err error) {
	if t.i2cConnectErr {
		return nil, errors.New("invalid i2c connection")
	}
	return t, nil
}

func (t *I2CTestAdaptor) GetDefaultBus() int {
	return 0
}

func (t *I2CTestAdaptor) Name() string          { return t.name }
func (t *I2CTestAdaptor) SetName(n string)      { t.name = n }
func (t *I2CTestAdaptor) Connect() (err error)  { return }
func (t *I2CTestAdaptor) Finalize() (err error) { return }

func NewI2cTestAdaptor() *I2CTestAdaptor {
	val := &I2CTestAdaptor{
		i2cConnectErr: false,
		pinValues:     map[string]int{},
	}

	val.i2cReadImpl = func(t *I2CTestAdaptor, buff []byte) (int, error) {
		if len(t.reads) == 0 {
			return 0, errors.New("no queued bus response")
		}
		next := t.reads[0]
		t.reads = t.reads[1:]
		return copy(buff, next), nil
	}

	val.i2cWriteImpl = func(t *I2CTestAdaptor, buff []byte) (int, error) {
		return len(buff), nil
	}

	return val
}

// queueRegisterRead queues one bus read response holding the given
// register image, marshalled the way the chip streams it: starting at
// STATUSRSSI, wrapping around, truncated to size bytes.
func (t *I2CTestAdaptor) queueRegisterRead(regs [16]uint16, size int) {
	data := make([]byte, size)
	for i := 0; 2*i+1 < size; i++ {
		reg := regs[(i+READ_OFFSET)%16]
		data[2*i] = byte(reg >> 8)
		data[2*i+1] = byte(reg)
	}
	t.reads = append(t.reads, data)
}

func initTestDriver(hasRDS bool) (*Si4703Driver, *I2CTestAdaptor) {
	adaptor := NewI2cTestAdaptor()
	cfg := Config{
		Log: func(format string, v ...interface{}) {},
	}
	var d *Si4703Driver
	var err error
	if hasRDS {
		d, err = NewSi4703Driver(adaptor, cfg)
	} else {
		d, err = NewSi4702Driver(adaptor, cfg)
	}
	if err != nil {
		panic(err)
	}
	d.conn, _ = adaptor.GetConnection(Address, 0)
	return d, adaptor
}
