package main

import (
	"log"
	"time"

	"fmtuner/display"
	"fmtuner/radio"

	"gobot.io/x/gobot"
	"gobot.io/x/gobot/platforms/raspi"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	adaptor := raspi.NewAdaptor()

	radioConfig := radio.Config{
		Volume:         10,
		Band:           radio.Band875_108MHz,
		ChannelSpacing: radio.Spacing100kHz,
		DeEmphasis:     radio.DeEmphasis50us,
		ResetPin:       "16",
		SDAPin:         "3",
		Log:            log.Printf,
	}
	tuner, err := radio.NewSi4703Driver(adaptor, radioConfig)
	if err != nil {
		log.Fatalln(err)
	}

	lcd, err := display.NewStationDisplayDriver(adaptor)
	if err != nil {
		log.Fatalln(err)
	}

	work := func() {
		if err = lcd.ShowStatus("Seeking..."); err != nil {
			log.Fatalln(err)
		}

		if err = tuner.EnableRDS(radio.RDSStandard); err != nil {
			log.Fatalln(err)
		}

		var radioText [64]byte
		for i := range radioText {
			radioText[i] = ' '
		}
		seeking := true

		gobot.Every(50*time.Millisecond, func() {
			if seeking {
				done, err := tuner.SeekWithSTCPin(radio.SeekWrap, radio.SeekUp, "18")
				if err != nil {
					log.Println(err)
					seeking = false
					return
				}
				if !done {
					return
				}
				seeking = false

				mhz, err := tuner.Channel()
				if err != nil {
					log.Fatalln(err)
				}
				if err = lcd.ShowFrequency(mhz); err != nil {
					log.Fatalln(err)
				}
				return
			}

			ready, err := tuner.RDSReady()
			if err != nil {
				log.Fatalln(err)
			}
			if !ready {
				return
			}

			data, err := tuner.RDSData()
			if err != nil {
				log.Fatalln(err)
			}
			if radio.FillRDSRadioText(&radioText, data) {
				for i := range radioText {
					radioText[i] = ' '
				}
			}
			if err = lcd.SetRadioText(string(radioText[:])); err != nil {
				log.Fatalln(err)
			}
		})

		gobot.Every(400*time.Millisecond, func() {
			if err = lcd.ScrollRadioText(); err != nil {
				log.Fatalln(err)
			}
		})
	}

	robot := gobot.NewRobot("FM Receiver Station demo",
		[]gobot.Connection{adaptor},
		[]gobot.Device{tuner, lcd},
		work,
	)

	if err = robot.Start(); err != nil {
		log.Fatalln(err)
	}
}
