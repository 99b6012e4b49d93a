// Package eventrelay carries dispatch events between service instances through
// PostgreSQL LISTEN/NOTIFY.
//
// Every instance publishes through a Notifier, which turns each event into a
// pg_notify call on a shared channel. Every instance also runs a Listener on the
// same channel that decodes the payloads and republishes them into its local
// broadcaster, so an order observed on one instance hears about changes
// committed on another. An instance hears its own notifications the same way,
// which keeps a single delivery path.
//
// Notifications are fire and forget: a listener that is disconnected when an
// event is sent never sees it, matching the broadcaster's no-history contract.
//
// Usage:
//
//	notifier := eventrelay.NewNotifier(db, eventrelay.DefaultChannel, logger)
//	uowFactory := postgres.NewGormUnitOfWorkFactory(db, notifier)
//
//	listener, err := eventrelay.NewListener(dsn, eventrelay.DefaultChannel, broadcaster, logger)
//	if err != nil {
//	    return err
//	}
//	go listener.Run(ctx)
package eventrelay
