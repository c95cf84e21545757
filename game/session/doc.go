// Package session keeps the in-memory set of live push-fight boards.
//
// Each session owns one engine.Board built from a layout. The Manager is safe
// for concurrent use; access to a single board goes through
// service.Session.WithBoard, which serializes calls into the engine.
//
// Session IDs are 8 hex characters taken from a random UUID and are matched
// case-insensitively. Sessions live until they are deleted or swept by
// CleanupExpiredSessions; nothing is written to disk.
//
// Usage:
//
//	manager := session.NewManagerWithSink(func(id string) engine.Sink {
//		return diag.NewLogrusSink(logger.WithField("session", id))
//	})
//
//	sess, err := manager.Create("", engine.ReferenceLayout())
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	sess.WithBoard(func(b *engine.Board) {
//		b.TryMove(0, 4, 0, 5)
//	})
package session
