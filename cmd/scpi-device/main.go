// Command scpi-device is a toy example wiring the dispatcher to a
// line-oriented TCP listener. It is not part of the library surface; it
// exists to give the core a runnable home.
package main

import (
	"flag"
	"os"

	"github.com/gpa-robotics/scpi"
	"github.com/sirupsen/logrus"
)

// exampleDevice is the minimal capability set the core requires
// (spec.md §6). A real instrument embeds *scpi.IEEE488Core the same way
// and fills in the hooks with its own hardware access.
type exampleDevice struct {
	*scpi.IEEE488Core
}

func newExampleDevice() scpi.ScpiDevice {
	return &exampleDevice{IEEE488Core: scpi.NewIEEE488Core(scpi.DefaultQueueCapacity)}
}

func (d *exampleDevice) Cls() error { return nil }
func (d *exampleDevice) Rst() error { return nil }
func (d *exampleDevice) Tst() (int16, error) { return 0, nil }

func (d *exampleDevice) Idn() (mfr, model, serial, firmware string) {
	return "GPA-Robotics", "T800-101", "0", "0"
}

func (d *exampleDevice) MessageAvailable() bool { return false }

func main() {
	addr := flag.String("addr", ":5025", "listen address")
	flag.Parse()

	lg := logrus.New()
	root := scpi.NewRoot()

	srv := scpi.NewServer(*addr, root, newExampleDevice, scpi.WithLogger(lg))
	lg.Infof("scpi-device: listening on %s", *addr)
	if err := srv.Serve(); err != nil {
		lg.Errorf("scpi-device: %v", err)
		os.Exit(1)
	}
}
