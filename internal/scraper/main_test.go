package scraper

import (
	"github.com/flatwatch/olx-estate-notifier/internal/log"
	"github.com/flatwatch/olx-estate-notifier/internal/util"
	"os"
	"testing"
)

func TestMain(m *testing.M) {
	log.InitLogger(util.NewConfig())
	os.Exit(m.Run())
}
