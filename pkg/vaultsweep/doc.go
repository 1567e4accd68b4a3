// Package vaultsweep provides embeddable bulk delete and discard runs against
// a CDD Vault.
//
// A run counts a vault collection once, walks it page by page and applies one
// request per record. A rejected record is logged and the walk continues; the
// run then reports [ErrPartialFailure]. A failed count or page fetch ends the
// run.
//
// # Basic Usage
//
//	cfg := vaultsweep.DefaultConfig()
//	cfg.VaultID = 1234
//	cfg.Token = "your-api-token"
//
//	s, err := vaultsweep.New(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	report, err := s.Run(ctx, vaultsweep.ToolDeleteSamples, "")
//	if err != nil {
//	    log.Printf("%d of %d samples failed: %v", report.Failed, report.Attempted, err)
//	}
//
// # Tools
//
// Records are not interchangeable. [ToolDeleteSamples] removes inventory
// samples, [ToolDeleteBatches] detaches batches from every project,
// [ToolDiscardELNs] discards ELN entries and [ToolDeleteFile] removes the one
// file named by the record id passed to [Vaultsweep.Run].
//
// # Dependency Injection
//
// Callers can supply their own HTTP client, logger and run observer:
//
//	s, err := vaultsweep.New(cfg,
//	    vaultsweep.WithHTTPClient(mockClient),
//	    vaultsweep.WithLogger(customLogger),
//	    vaultsweep.WithObserver(recorder),
//	)
package vaultsweep
