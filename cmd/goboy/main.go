package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/thelolagemann/gbcore/internal/cartridge"
	"github.com/thelolagemann/gbcore/internal/gameboy"
	"github.com/thelolagemann/gbcore/pkg/log"
)

func main() {
	romFile := flag.String("rom", "", "The rom file to load")
	bootROM := flag.String("boot", "", "The boot rom file to load")
	frames := flag.Int("frames", 60, "The number of frames to run for")
	level := flag.String("log", "info", "The log level (error, info, debug)")
	flag.Parse()

	logger, err := log.NewWithLevel(*level)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if *romFile == "" {
		flag.Usage()
		os.Exit(2)
	}

	// open the rom file
	rom, err := cartridge.ReadFile(*romFile)
	if err != nil {
		logger.Errorf("%v", err)
		os.Exit(1)
	}

	opts := []gameboy.Opt{gameboy.WithLogger(logger)}
	if *bootROM != "" {
		boot, err := cartridge.ReadFile(*bootROM)
		if err != nil {
			logger.Errorf("%v", err)
			os.Exit(1)
		}
		opts = append(opts, gameboy.WithBootROM(boot))
	}

	gb, err := gameboy.NewGameBoy(rom, opts...)
	if err != nil {
		logger.Errorf("creating machine: %v", err)
		os.Exit(1)
	}
	defer gb.Close()

	var runErr error
	for i := 0; i < *frames && runErr == nil; i++ {
		runErr = gb.Frame()
	}
	logger.Infof("%d cycles (%.3fs): %s", gb.Cycles(), gb.Elapsed().Seconds(), gb.CPU)
	if runErr != nil {
		logger.Debugf("next instruction: %s", gb.CPU.Peek())
		gb.Close()
		os.Exit(1)
	}
}
