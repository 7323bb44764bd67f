// Package app runs one contextualization: load a motion file, build the
// contextual records and export them beside the input.
//
// Run is the whole program minus process concerns. It takes the arguments and
// an Env (stdout, logger, config, telemetry) and returns the exit code, so the
// main package only has to wire the environment and call os.Exit:
//
//	os.Exit(app.Run(ctx, os.Args[1:], app.Env{Logger: logger, Config: cfg}))
//
// Exit codes are asymmetric: a bad command line or an input with fewer than
// 21 samples exits 1, while an unreadable input or a failed export is reported
// and exits 0. A missing file therefore prints two messages and exits 1,
// because the empty sequence it leaves behind is too short.
package app
