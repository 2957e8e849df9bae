// Package options contains the program options.
package options

// Parameters contains positional arguments.
type Parameters struct {
	Input string `arg:"positional" usage:"program file to run"`
}

// Flags contains command line flags.
type Flags struct {
	Frequency int `flag:"f,freq" usage:"instruction frequency in Hz" default:"500"`
}

// Environment contains settings read from environment variables.
type Environment struct {
	Display string // display backend name or "auto"
	Scale   int    // window pixel scale
	WebAddr string // listen address of the web backend
	Debug   bool   // debug logging
	Quiet   bool   // error logging only
	Trace   bool   // log every executed instruction
	Mute    bool   // disable audio output
}

// Program options of the emulator.
type Program struct {
	Parameters
	Flags
	Environment
}
