// Package logtail reads the end of forkify's JSON log file.
//
// Read keeps a ring buffer of the last maxLines lines, so memory stays
// bounded by the tail size rather than the file size. Tail decodes each
// line written by the zap production encoder into an Entry and drops the
// ones below a minimum level:
//
//	entries, err := logtail.Tail(cfg.LogFile, 50, zapcore.WarnLevel)
//	for _, e := range entries {
//		fmt.Println(e.Format())
//	}
//
// Lines that are not JSON (a crash dump, a hand edit) are kept verbatim in
// Entry.Raw and treated as info.
package logtail
