// Package watcher turns file system notifications for a receiver's output
// directory into a bounded queue of snapshot paths.
//
// Only Create events for files whose base name matches the configured pattern
// are queued. The receiver renames finished snapshots into the directory, which
// fsnotify reports as Create. The queue never blocks the event loop: when the consumer
// falls behind and the queue is full, the notification is dropped and reported
// through the drop hook.
//
// # Usage
//
//	w, err := watcher.New(cfg.Watcher, log, watcher.WithDropHook(func(path string) { ... }))
//	go w.Run(ctx)
//	for path := range w.Queue() {
//	    ...
//	}
package watcher
