package radio_test

import (
	"log"
	"time"

	"fmtuner/radio"

	"gobot.io/x/gobot"
	"gobot.io/x/gobot/platforms/raspi"
)

func ExampleSi4703Driver() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	adaptor := raspi.NewAdaptor()

	radioConfig := radio.Config{
		Volume:         10,
		Band:           radio.Band875_108MHz,
		ChannelSpacing: radio.Spacing100kHz,
		DeEmphasis:     radio.DeEmphasis50us,
		ResetPin:       "16",
		SDAPin:         "3",
		DebugMode:      false,
		Log:            log.Printf,
		DebugLog:       nil,
	}
	tuner, err := radio.NewSi4703Driver(adaptor, radioConfig)
	if err != nil {
		log.Fatalln(err)
	}

	work := func() {
		if err = tuner.EnableRDS(radio.RDSStandard); err != nil {
			log.Fatalln(err)
		}

		gobot.Every(50*time.Millisecond, func() {
			done, err := tuner.Seek(radio.SeekWrap, radio.SeekUp)
			if err != nil && err != radio.ErrSeekFailed {
				log.Fatalln(err)
			}
			if !done {
				return
			}

			mhz, err := tuner.Channel()
			if err != nil {
				log.Fatalln(err)
			}
			log.Printf("tuned to %.2f MHz", mhz)
		})
	}

	robot := gobot.NewRobot("FM Receiver Station demo",
		[]gobot.Connection{adaptor},
		[]gobot.Device{tuner},
		work,
	)

	if err = robot.Start(); err != nil {
		log.Fatalln(err)
	}
}
