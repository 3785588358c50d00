package main

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/viant/marketplace/onboard"
	_ "github.com/viant/scy/kms/blowfish"
)

func main() {
	if err := onboard.Run(os.Args[1:]); err != nil {
		logrus.Fatalf("marketplace-onboard: %v", err)
	}
}
