// Package logging provides structured logging for obslist runs.
//
// Records are JSON objects produced by log/slog. A run writes either to
// stderr or to obslist.log inside a configured directory:
//
//	logger, err := logging.NewLogger(cfg.Logging.Dir, cfg.Logging.Level)
//	if err != nil {
//	    return err
//	}
//	defer logger.Close()
//
//	propLog := logger.WithProposal("OTE01-1134.xml")
//	propLog.Info("observations extracted", "retained", 12, "total", 14)
//
// Output:
//
//	{"time":"...","level":"INFO","msg":"observations extracted","proposal":"OTE01-1134.xml","retained":12,"total":14}
//
// Child loggers created with With, WithProposal and WithObservation share the
// parent's writer; closing any of them closes the file once.
package logging
